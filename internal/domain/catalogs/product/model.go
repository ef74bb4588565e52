// Package product defines the product catalog: master data for stocked items.
package product

import (
	"context"

	"github.com/shopspring/decimal"

	"stockyard/internal/core/apperror"
	"stockyard/internal/core/entity"
	"stockyard/internal/core/id"
)

// Status is the product lifecycle status.
type Status string

const (
	StatusActive       Status = "active"
	StatusDiscontinued Status = "discontinued"
)

// Valid reports whether the status is a known value.
func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusDiscontinued:
		return true
	}
	return false
}

// Product is a stocked item. CurrentStock is owned by the inventory
// service; catalog updates must not write it directly.
type Product struct {
	entity.Catalog

	// CategoryID is an optional reference to a product category
	CategoryID *id.ID `db:"category_id" json:"categoryId,omitempty"`

	// Specification is free-text technical detail (dimensions, grade)
	Specification string `db:"specification" json:"specification"`

	// MaterialType classifies the product for reporting
	MaterialType string `db:"material_type" json:"materialType"`

	// Unit is the unit of measure
	Unit string `db:"unit" json:"unit"`

	// UnitPrice is the reference sales price
	UnitPrice decimal.Decimal `db:"unit_price" json:"unitPrice"`

	// CurrentStock is the on-hand quantity, never negative once committed
	CurrentStock int64 `db:"current_stock" json:"currentStock"`

	// Reorder thresholds for alerting. MinStockLevel <= MaxStockLevel is
	// expected but not enforced.
	MinStockLevel int64 `db:"min_stock_level" json:"minStockLevel"`
	MaxStockLevel int64 `db:"max_stock_level" json:"maxStockLevel"`

	// Location is the warehouse location code
	Location string `db:"location" json:"location"`

	Status Status `db:"status" json:"status"`
}

// New creates a product with defaults applied.
func New(code, name string) *Product {
	return &Product{
		Catalog: entity.NewCatalog(code, name),
		Unit:    "pcs",
		Status:  StatusActive,
	}
}

// Validate implements entity.Validatable.
func (p *Product) Validate(ctx context.Context) error {
	if err := p.Catalog.Validate(ctx); err != nil {
		return err
	}

	if p.UnitPrice.IsNegative() {
		return apperror.NewValidation("unit price must not be negative").
			WithDetail("field", "unitPrice")
	}

	if p.Status == "" {
		p.Status = StatusActive
	}
	if !p.Status.Valid() {
		return apperror.NewValidation("unknown product status").
			WithDetail("field", "status").
			WithDetail("value", string(p.Status))
	}

	if p.Unit == "" {
		p.Unit = "pcs"
	}

	return nil
}
