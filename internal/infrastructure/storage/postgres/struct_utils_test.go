package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"retailhub/internal/domain/catalogs/store"
)

type taggedStruct struct {
	ID      string `db:"id"`
	Name    string `db:"name"`
	Skipped string `db:"-"`
	NoTag   string
}

func TestExtractDBColumns(t *testing.T) {
	cols := ExtractDBColumns[taggedStruct]()
	assert.Equal(t, []string{"id", "name"}, cols)
}

func TestExtractDBColumns_Embedded(t *testing.T) {
	cols := ExtractDBColumns[store.Store]()

	// From entity.BaseEntity via entity.Catalog.
	assert.Contains(t, cols, "id")
	assert.Contains(t, cols, "deletion_mark")
	assert.Contains(t, cols, "version")
	// From entity.Catalog.
	assert.Contains(t, cols, "code")
	assert.Contains(t, cols, "name")
	// Own fields.
	assert.Contains(t, cols, "status")
	assert.Contains(t, cols, "address")
}

func TestStructToMap(t *testing.T) {
	s := taggedStruct{ID: "1", Name: "x", Skipped: "no", NoTag: "no"}

	m := StructToMap(s)

	assert.Equal(t, map[string]any{"id": "1", "name": "x"}, m)
}

func TestStructToMap_PointerAndEmbedded(t *testing.T) {
	st := store.New("ST-1", "Main Street")
	st.Address = "12 High St"

	m := StructToMap(st)

	assert.Equal(t, "ST-1", m["code"])
	assert.Equal(t, "Main Street", m["name"])
	assert.Equal(t, "12 High St", m["address"])
	assert.Equal(t, st.ID, m["id"])
	assert.Equal(t, store.StatusActive, m["status"])
}

func TestStructToMap_NonStruct(t *testing.T) {
	assert.Nil(t, StructToMap(42))
	assert.Nil(t, StructToMap("nope"))
}
