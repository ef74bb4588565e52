package inventory

import (
	"context"
	"sort"
	"time"

	"stockyard/internal/core/apperror"
	"stockyard/internal/core/id"
	"stockyard/internal/core/tx"
	"stockyard/internal/domain"
	"stockyard/internal/domain/catalogs/product"
	"stockyard/pkg/logger"
)

const (
	alertsCacheKey = "inventory:alerts"
	alertsCacheTTL = 30 * time.Second

	defaultTransactionLimit = 50
	maxTransactionLimit     = 500
)

// Service owns all stock mutations and the transaction ledger.
type Service struct {
	repo  Repository
	tx    tx.Manager
	cache domain.Cache
	log   *logger.Logger
}

// NewService creates the inventory service. cache may be nil.
func NewService(repo Repository, txManager tx.Manager, cache domain.Cache, log *logger.Logger) *Service {
	return &Service{
		repo:  repo,
		tx:    txManager,
		cache: cache,
		log:   log.WithComponent("inventory"),
	}
}

var _ product.StockRecorder = (*Service)(nil)

// ApplyDelta moves stock by delta and appends the matching ledger entry.
// It must run inside an active unit of work: the row lock taken here holds
// until the caller's transaction commits or rolls back. A delta that would
// take stock negative fails with INSUFFICIENT_STOCK and writes nothing.
func (s *Service) ApplyDelta(ctx context.Context, productID id.ID, delta int64, txType TransactionType, notes string) (before, after int64, err error) {
	before, err = s.repo.GetStockForUpdate(ctx, productID)
	if err != nil {
		return 0, 0, err
	}

	after = before + delta
	if after < 0 {
		return 0, 0, apperror.NewInsufficientStock(productID.String(), -delta, before)
	}

	if err := s.repo.SetStock(ctx, productID, after); err != nil {
		return 0, 0, err
	}

	entry := NewTransaction(productID, txType, delta, before, after, notes)
	if err := s.repo.AppendTransaction(ctx, entry); err != nil {
		return 0, 0, err
	}

	s.invalidateAlerts(ctx)
	return before, after, nil
}

// AdjustStock sets the absolute stock level in its own unit of work and
// records exactly one adjustment entry, even when the level is unchanged.
func (s *Service) AdjustStock(ctx context.Context, productID id.ID, quantity int64, notes string) (*Transaction, error) {
	if quantity < 0 {
		return nil, apperror.NewValidation("stock quantity must not be negative").
			WithDetail("field", "quantity")
	}

	var entry *Transaction
	err := s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		before, err := s.repo.GetStockForUpdate(ctx, productID)
		if err != nil {
			return err
		}

		if err := s.repo.SetStock(ctx, productID, quantity); err != nil {
			return err
		}

		entry = NewTransaction(productID, TypeAdjustment, quantity-before, before, quantity, notes)
		return s.repo.AppendTransaction(ctx, entry)
	})
	if err != nil {
		return nil, err
	}

	s.invalidateAlerts(ctx)
	return entry, nil
}

// RecordInitialStock appends the opening adjustment entry for a product
// created with stock on hand. The product row already carries the quantity.
func (s *Service) RecordInitialStock(ctx context.Context, productID id.ID, quantity int64) error {
	entry := NewTransaction(productID, TypeAdjustment, quantity, 0, quantity, "initial stock")
	if err := s.repo.AppendTransaction(ctx, entry); err != nil {
		return err
	}
	s.invalidateAlerts(ctx)
	return nil
}

// SetStock sets the absolute stock level. Satisfies product.StockRecorder.
func (s *Service) SetStock(ctx context.Context, productID id.ID, quantity int64, notes string) error {
	_, err := s.AdjustStock(ctx, productID, quantity, notes)
	return err
}

// ListTransactions returns ledger entries newest first.
func (s *Service) ListTransactions(ctx context.Context, filter TransactionFilter) ([]TransactionView, error) {
	if filter.Limit <= 0 {
		filter.Limit = defaultTransactionLimit
	}
	if filter.Limit > maxTransactionLimit {
		filter.Limit = maxTransactionLimit
	}
	return s.repo.ListTransactions(ctx, filter)
}

// ListAlerts returns products whose stock is out of range, low alerts
// first, largest deviation first within each group.
func (s *Service) ListAlerts(ctx context.Context) ([]Alert, error) {
	if s.cache != nil {
		var cached []Alert
		if found, err := s.cache.Get(ctx, alertsCacheKey, &cached); err == nil && found {
			return cached, nil
		}
	}

	products, err := s.repo.ListOutOfRange(ctx)
	if err != nil {
		return nil, err
	}

	alerts := make([]Alert, 0, len(products))
	for _, p := range products {
		status, magnitude := EvaluateAlert(p.CurrentStock, p.MinStockLevel, p.MaxStockLevel)
		if status == AlertNormal {
			continue
		}
		alerts = append(alerts, Alert{
			ProductID:    p.ID,
			ProductCode:  p.Code,
			ProductName:  p.Name,
			CurrentStock: p.CurrentStock,
			MinStock:     p.MinStockLevel,
			MaxStock:     p.MaxStockLevel,
			Status:       status,
			Magnitude:    magnitude,
		})
	}

	sort.SliceStable(alerts, func(i, j int) bool {
		if alerts[i].Status != alerts[j].Status {
			return alerts[i].Status == AlertLow
		}
		return alerts[i].Magnitude > alerts[j].Magnitude
	})

	if s.cache != nil {
		if err := s.cache.Set(ctx, alertsCacheKey, alerts, alertsCacheTTL); err != nil {
			s.log.WithContext(ctx).Warnw("alerts cache write failed", "error", err)
		}
	}

	return alerts, nil
}

// invalidateAlerts drops the cached alert list. Inside a transaction the
// drop is deferred until commit: invalidating while the transaction is
// still open lets a concurrent reader repopulate the cache with
// pre-commit stock, and a rollback would have dropped the key for nothing.
func (s *Service) invalidateAlerts(ctx context.Context) {
	if s.cache == nil {
		return
	}

	drop := func(ctx context.Context) {
		if err := s.cache.Invalidate(ctx, alertsCacheKey); err != nil {
			s.log.WithContext(ctx).Warnw("alerts cache invalidation failed", "error", err)
		}
	}

	if !tx.AfterCommit(ctx, drop) {
		drop(ctx)
	}
}
