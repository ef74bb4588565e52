// Package supplier defines the supplier catalog.
package supplier

import (
	"context"

	"stockyard/internal/core/entity"
	"stockyard/internal/core/tx"
	"stockyard/internal/domain"
)

// Supplier is a purchasing counterparty.
type Supplier struct {
	entity.Catalog

	ContactPerson string `db:"contact_person" json:"contactPerson"`
	Phone         string `db:"phone" json:"phone"`
	Email         string `db:"email" json:"email"`
	Address       string `db:"address" json:"address"`

	// SupplyScope describes what the supplier provides
	SupplyScope string `db:"supply_scope" json:"supplyScope"`
}

// New creates a supplier with generated ID.
func New(code, name string) *Supplier {
	return &Supplier{Catalog: entity.NewCatalog(code, name)}
}

// Validate implements entity.Validatable.
func (s *Supplier) Validate(ctx context.Context) error {
	return s.Catalog.Validate(ctx)
}

// Repository persists suppliers.
type Repository interface {
	domain.CatalogRepository[*Supplier]
}

// Service manages the supplier catalog.
type Service struct {
	*domain.CatalogService[*Supplier]
}

// NewService creates a supplier catalog service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	s := &Service{
		CatalogService: domain.NewCatalogService[*Supplier](repo, txManager, "supplier"),
	}
	s.Hooks().OnBeforeCreate(s.EnsureUniqueCode())
	return s
}
