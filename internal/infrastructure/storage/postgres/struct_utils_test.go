package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"stockyard/internal/core/entity"
	"stockyard/internal/domain/catalogs/product"
)

type mockCatalog struct {
	entity.Catalog
	Location string `db:"location" json:"location"`
	Skipped  string `db:"-" json:"skipped"`
	NoTag    string
}

func TestExtractDBColumns(t *testing.T) {
	cols := ExtractDBColumns[mockCatalog]()

	expected := []string{
		"id", "version", "created_at", "updated_at", "code", "name", "location",
	}
	for _, col := range expected {
		assert.Contains(t, cols, col)
	}
	assert.NotContains(t, cols, "-")
	assert.Len(t, cols, len(expected))
}

func TestExtractDBColumns_Product(t *testing.T) {
	cols := ExtractDBColumns[product.Product]()

	for _, col := range []string{"id", "code", "name", "current_stock", "min_stock_level", "max_stock_level", "unit_price", "status"} {
		assert.Contains(t, cols, col)
	}
}

func TestStructToMap(t *testing.T) {
	cat := mockCatalog{
		Catalog:  entity.NewCatalog("TEST", "Test Name"),
		Location: "A-01",
		Skipped:  "nope",
		NoTag:    "nope",
	}
	cat.Version = 5

	m := StructToMap(cat)

	assert.Equal(t, cat.ID, m["id"])
	assert.Equal(t, 5, m["version"])
	assert.Equal(t, "TEST", m["code"])
	assert.Equal(t, "Test Name", m["name"])
	assert.Equal(t, "A-01", m["location"])
	assert.NotContains(t, m, "-")
	assert.Len(t, m, 7)
}

func TestStructToMap_Pointer(t *testing.T) {
	cat := &mockCatalog{Catalog: entity.NewCatalog("P", "Pointer")}
	m := StructToMap(cat)
	assert.Equal(t, "P", m["code"])
}

func TestStructToMap_NonStruct(t *testing.T) {
	assert.Nil(t, StructToMap(42))
	assert.Nil(t, StructToMap("str"))
}
