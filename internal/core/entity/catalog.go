package entity

import (
	"context"

	"stockyard/internal/core/apperror"
)

// Catalog is the base type for master data (products, customers, suppliers,
// product categories).
type Catalog struct {
	BaseEntity

	// Code is a human-readable business key (unique)
	Code string `db:"code" json:"code"`

	// Name is the display name
	Name string `db:"name" json:"name"`
}

// NewCatalog creates a new Catalog with generated ID.
func NewCatalog(code, name string) Catalog {
	return Catalog{
		BaseEntity: NewBaseEntity(),
		Code:       code,
		Name:       name,
	}
}

// GetCode returns the business code.
func (c *Catalog) GetCode() string {
	return c.Code
}

// Validate implements Validatable interface.
func (c *Catalog) Validate(ctx context.Context) error {
	if c.Code == "" {
		return apperror.NewValidation("code is required").
			WithDetail("field", "code")
	}

	if c.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}

	return nil
}
