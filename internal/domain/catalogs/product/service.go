package product

import (
	"context"

	"stockyard/internal/core/id"
	"stockyard/internal/core/tx"
	"stockyard/internal/domain"
)

// Repository persists products.
type Repository interface {
	domain.CatalogRepository[*Product]
}

// StockRecorder routes stock changes made through the catalog surface into
// the inventory ledger. Implemented by the inventory service.
type StockRecorder interface {
	// RecordInitialStock writes the opening adjustment entry for a newly
	// created product with non-zero stock.
	RecordInitialStock(ctx context.Context, productID id.ID, quantity int64) error

	// SetStock sets the absolute stock level, writing one adjustment entry.
	SetStock(ctx context.Context, productID id.ID, quantity int64, notes string) error
}

// ListFilter extends the generic filter with product-specific criteria.
type ListFilter struct {
	domain.ListFilter

	MaterialType string
	Status       Status
}

// FilteredRepository adds product-specific listing on top of Repository.
type FilteredRepository interface {
	Repository

	ListFiltered(ctx context.Context, filter ListFilter) (domain.ListResult[*Product], error)
}

// Service manages the product catalog.
type Service struct {
	*domain.CatalogService[*Product]

	repo     FilteredRepository
	tx       tx.Manager
	recorder StockRecorder
}

// NewService creates a product catalog service. The recorder may be nil
// until wired (tests that never touch stock).
func NewService(repo FilteredRepository, txManager tx.Manager, recorder StockRecorder) *Service {
	s := &Service{
		CatalogService: domain.NewCatalogService[*Product](repo, txManager, "product"),
		repo:           repo,
		tx:             txManager,
		recorder:       recorder,
	}

	s.Hooks().OnBeforeCreate(s.EnsureUniqueCode())
	s.Hooks().OnAfterCreate(s.recordOpeningStock)

	return s
}

// recordOpeningStock writes the opening ledger entry when a product is
// created with stock on hand.
func (s *Service) recordOpeningStock(ctx context.Context, p *Product) error {
	if s.recorder == nil || p.CurrentStock == 0 {
		return nil
	}
	return s.recorder.RecordInitialStock(ctx, p.ID, p.CurrentStock)
}

// Update persists product changes. A changed CurrentStock is routed through
// the inventory service so the ledger stays consistent; the catalog write
// itself never moves stock.
func (s *Service) Update(ctx context.Context, p *Product) error {
	if err := p.Validate(ctx); err != nil {
		return err
	}

	return s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		existing, err := s.GetByID(ctx, p.ID)
		if err != nil {
			return err
		}

		requested := p.CurrentStock
		p.CurrentStock = existing.CurrentStock

		if err := s.CatalogService.Update(ctx, p); err != nil {
			return err
		}

		if s.recorder != nil && requested != existing.CurrentStock {
			if err := s.recorder.SetStock(ctx, p.ID, requested, "product update"); err != nil {
				return err
			}
			p.CurrentStock = requested
		}

		return nil
	})
}

// ListFiltered retrieves products matching material type and status filters.
func (s *Service) ListFiltered(ctx context.Context, filter ListFilter) (domain.ListResult[*Product], error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	if filter.Limit > 500 {
		filter.Limit = 500
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return s.repo.ListFiltered(ctx, filter)
}
