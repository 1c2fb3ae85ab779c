package catalog_repo

import (
	"strings"
	"testing"

	"retailhub/internal/domain/catalogs/store"
	"retailhub/internal/domain/filter"
)

func newTestRepo() *BaseCatalogRepo[*store.Store] {
	return NewBaseCatalogRepo(
		nil,
		"cat_stores",
		[]string{"id", "code", "name", "status", "deletion_mark", "version"},
		func() *store.Store { return &store.Store{} },
	)
}

func TestApplyAdvancedFilters(t *testing.T) {
	r := newTestRepo()

	tests := []struct {
		name    string
		item    filter.Item
		wantSQL string
		wantErr bool
	}{
		{
			name:    "equal",
			item:    filter.Item{Field: "status", Operator: filter.Equal, Value: "active"},
			wantSQL: "status = $1",
		},
		{
			name:    "contains becomes ilike",
			item:    filter.Item{Field: "name", Operator: filter.Contains, Value: "shop"},
			wantSQL: "name ILIKE $1",
		},
		{
			name:    "null check",
			item:    filter.Item{Field: "parent_id", Operator: filter.IsNull},
			wantSQL: "parent_id IS NULL",
		},
		{
			name:    "unknown column rejected",
			item:    filter.Item{Field: "password; DROP TABLE", Operator: filter.Equal, Value: "x"},
			wantErr: true,
		},
		{
			name:    "unknown operator rejected",
			item:    filter.Item{Field: "name", Operator: "regex", Value: "x"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := r.applyAdvancedFilters(r.baseSelect(), []filter.Item{tt.item})
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			sql, _, err := q.ToSql()
			if err != nil {
				t.Fatalf("ToSql: %v", err)
			}
			if !strings.Contains(sql, tt.wantSQL) {
				t.Errorf("sql = %q, want substring %q", sql, tt.wantSQL)
			}
		})
	}
}

func TestParseOrderBy(t *testing.T) {
	r := newTestRepo()

	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"", "name ASC", false},
		{"code", "code ASC", false},
		{"-code", "code DESC", false},
		{"+name", "name ASC", false},
		{"no_such_column", "", true},
		{"name; DROP TABLE cat_stores", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := r.parseOrderBy(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseOrderBy(%q): expected error", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("parseOrderBy(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
