// Package customer defines the customer catalog.
package customer

import (
	"context"

	"stockyard/internal/core/entity"
	"stockyard/internal/core/tx"
	"stockyard/internal/domain"
)

// Customer is a sales counterparty.
type Customer struct {
	entity.Catalog

	ContactPerson string `db:"contact_person" json:"contactPerson"`
	Phone         string `db:"phone" json:"phone"`
	Email         string `db:"email" json:"email"`
	Address       string `db:"address" json:"address"`

	// CustomerType is a free classification (e.g. "manufacturer", "reseller")
	CustomerType string `db:"customer_type" json:"customerType"`
}

// New creates a customer with generated ID.
func New(code, name string) *Customer {
	return &Customer{Catalog: entity.NewCatalog(code, name)}
}

// Validate implements entity.Validatable.
func (c *Customer) Validate(ctx context.Context) error {
	return c.Catalog.Validate(ctx)
}

// Repository persists customers.
type Repository interface {
	domain.CatalogRepository[*Customer]
}

// Service manages the customer catalog.
type Service struct {
	*domain.CatalogService[*Customer]
}

// NewService creates a customer catalog service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	s := &Service{
		CatalogService: domain.NewCatalogService[*Customer](repo, txManager, "customer"),
	}
	s.Hooks().OnBeforeCreate(s.EnsureUniqueCode())
	return s
}
