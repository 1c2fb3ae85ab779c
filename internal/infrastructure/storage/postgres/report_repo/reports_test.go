package report_repo

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestIsUndefinedTable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			"undefined table",
			&pgconn.PgError{Code: "42P01", Message: "relation does not exist"},
			true,
		},
		{
			"wrapped undefined table",
			fmt.Errorf("fetch orders from %s: %w", legacyTable,
				&pgconn.PgError{Code: "42P01"}),
			true,
		},
		{
			"other pg error",
			&pgconn.PgError{Code: "42703", Message: "column does not exist"},
			false,
		},
		{
			"connection failure",
			errors.New("dial tcp 127.0.0.1:5432: connect: connection refused"),
			false,
		},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isUndefinedTable(tt.err); got != tt.want {
				t.Errorf("isUndefinedTable(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
