// Package category defines product categories.
package category

import (
	"context"

	"stockyard/internal/core/entity"
	"stockyard/internal/core/tx"
	"stockyard/internal/domain"
)

// Category groups products for classification and reporting.
type Category struct {
	entity.Catalog

	Description string `db:"description" json:"description"`
}

// New creates a category with generated ID.
func New(code, name string) *Category {
	return &Category{Catalog: entity.NewCatalog(code, name)}
}

// Validate implements entity.Validatable.
func (c *Category) Validate(ctx context.Context) error {
	return c.Catalog.Validate(ctx)
}

// Repository persists categories.
type Repository interface {
	domain.CatalogRepository[*Category]
}

// Service manages product categories.
type Service struct {
	*domain.CatalogService[*Category]
}

// NewService creates a category service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	s := &Service{
		CatalogService: domain.NewCatalogService[*Category](repo, txManager, "category"),
	}
	s.Hooks().OnBeforeCreate(s.EnsureUniqueCode())
	return s
}
