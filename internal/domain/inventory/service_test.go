package inventory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockyard/internal/core/apperror"
	"stockyard/internal/core/id"
	"stockyard/internal/core/tx"
	"stockyard/internal/domain/catalogs/product"
	"stockyard/pkg/logger"
)

// fakeTxManager runs the function directly; rollback semantics are covered
// by the order service tests which snapshot the fake store.
type fakeTxManager struct{}

func (fakeTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// hookTxManager mirrors the real manager's commit behaviour: deferred
// side effects run only after fn succeeds and are discarded on error.
type hookTxManager struct{}

func (hookTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	ctx = tx.WithAfterCommitHooks(ctx)
	if err := fn(ctx); err != nil {
		return err
	}
	tx.RunAfterCommitHooks(ctx)
	return nil
}

type recordingCache struct {
	invalidated []string
}

func (c *recordingCache) Get(context.Context, string, any) (bool, error) { return false, nil }

func (c *recordingCache) Set(context.Context, string, any, time.Duration) error { return nil }

func (c *recordingCache) Invalidate(_ context.Context, keys ...string) error {
	c.invalidated = append(c.invalidated, keys...)
	return nil
}

type fakeRepo struct {
	stock   map[id.ID]int64
	entries []*Transaction
	outOfRange []*product.Product
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{stock: make(map[id.ID]int64)}
}

func (r *fakeRepo) GetStockForUpdate(_ context.Context, productID id.ID) (int64, error) {
	qty, ok := r.stock[productID]
	if !ok {
		return 0, apperror.NewNotFound("product", productID.String())
	}
	return qty, nil
}

func (r *fakeRepo) SetStock(_ context.Context, productID id.ID, quantity int64) error {
	r.stock[productID] = quantity
	return nil
}

func (r *fakeRepo) AppendTransaction(_ context.Context, t *Transaction) error {
	r.entries = append(r.entries, t)
	return nil
}

func (r *fakeRepo) ListTransactions(_ context.Context, filter TransactionFilter) ([]TransactionView, error) {
	var out []TransactionView
	for i := len(r.entries) - 1; i >= 0; i-- {
		e := r.entries[i]
		if filter.ProductID != nil && e.ProductID != *filter.ProductID {
			continue
		}
		out = append(out, TransactionView{Transaction: *e})
		if len(out) >= filter.Limit {
			break
		}
	}
	return out, nil
}

func (r *fakeRepo) ListOutOfRange(_ context.Context) ([]*product.Product, error) {
	return r.outOfRange, nil
}

func newTestService(repo *fakeRepo) *Service {
	return NewService(repo, fakeTxManager{}, nil, logger.Default())
}

func TestApplyDelta(t *testing.T) {
	ctx := context.Background()

	t.Run("deduction writes matching ledger entry", func(t *testing.T) {
		repo := newFakeRepo()
		productID := id.New()
		repo.stock[productID] = 100

		svc := newTestService(repo)
		before, after, err := svc.ApplyDelta(ctx, productID, -30, TypeSalesOutbound, "SO-20260829-0001")

		require.NoError(t, err)
		assert.Equal(t, int64(100), before)
		assert.Equal(t, int64(70), after)
		assert.Equal(t, int64(70), repo.stock[productID])

		require.Len(t, repo.entries, 1)
		entry := repo.entries[0]
		assert.Equal(t, TypeSalesOutbound, entry.Type)
		assert.Equal(t, int64(-30), entry.QuantityChange)
		assert.Equal(t, int64(100), entry.QuantityBefore)
		assert.Equal(t, int64(70), entry.QuantityAfter)
		assert.Equal(t, entry.QuantityAfter-entry.QuantityBefore, entry.QuantityChange)
	})

	t.Run("insufficient stock writes nothing", func(t *testing.T) {
		repo := newFakeRepo()
		productID := id.New()
		repo.stock[productID] = 10

		svc := newTestService(repo)
		_, _, err := svc.ApplyDelta(ctx, productID, -11, TypeSalesOutbound, "")

		require.Error(t, err)
		assert.True(t, apperror.IsInsufficientStock(err))
		assert.Equal(t, int64(10), repo.stock[productID])
		assert.Empty(t, repo.entries)
	})

	t.Run("deduction to exactly zero succeeds", func(t *testing.T) {
		repo := newFakeRepo()
		productID := id.New()
		repo.stock[productID] = 10

		svc := newTestService(repo)
		_, after, err := svc.ApplyDelta(ctx, productID, -10, TypeSalesOutbound, "")

		require.NoError(t, err)
		assert.Equal(t, int64(0), after)
	})

	t.Run("unknown product", func(t *testing.T) {
		repo := newFakeRepo()
		svc := newTestService(repo)

		_, _, err := svc.ApplyDelta(ctx, id.New(), -1, TypeSalesOutbound, "")

		require.Error(t, err)
		assert.True(t, apperror.IsNotFound(err))
	})
}

func TestAdjustStock(t *testing.T) {
	ctx := context.Background()

	t.Run("absolute set records delta entry", func(t *testing.T) {
		repo := newFakeRepo()
		productID := id.New()
		repo.stock[productID] = 20

		svc := newTestService(repo)
		entry, err := svc.AdjustStock(ctx, productID, 35, "cycle count")

		require.NoError(t, err)
		assert.Equal(t, int64(35), repo.stock[productID])

		require.Len(t, repo.entries, 1)
		assert.Equal(t, TypeAdjustment, entry.Type)
		assert.Equal(t, int64(15), entry.QuantityChange)
		assert.Equal(t, int64(20), entry.QuantityBefore)
		assert.Equal(t, int64(35), entry.QuantityAfter)
	})

	t.Run("unchanged level is still recorded", func(t *testing.T) {
		repo := newFakeRepo()
		productID := id.New()
		repo.stock[productID] = 20

		svc := newTestService(repo)
		entry, err := svc.AdjustStock(ctx, productID, 20, "recount")

		require.NoError(t, err)
		require.Len(t, repo.entries, 1)
		assert.Equal(t, int64(0), entry.QuantityChange)
	})

	t.Run("negative absolute quantity rejected", func(t *testing.T) {
		repo := newFakeRepo()
		productID := id.New()
		repo.stock[productID] = 20

		svc := newTestService(repo)
		_, err := svc.AdjustStock(ctx, productID, -5, "")

		require.Error(t, err)
		assert.Empty(t, repo.entries)
	})
}

func TestApplyDelta_AlertsCacheInvalidation(t *testing.T) {
	ctx := context.Background()

	t.Run("cache dropped only after commit", func(t *testing.T) {
		repo := newFakeRepo()
		productID := id.New()
		repo.stock[productID] = 100

		cache := &recordingCache{}
		svc := NewService(repo, hookTxManager{}, cache, logger.Default())

		err := hookTxManager{}.RunInTransaction(ctx, func(ctx context.Context) error {
			_, _, err := svc.ApplyDelta(ctx, productID, -30, TypeSalesOutbound, "")
			require.NoError(t, err)
			assert.Empty(t, cache.invalidated, "alerts must stay cached until the writes are visible")
			return nil
		})

		require.NoError(t, err)
		assert.Equal(t, []string{alertsCacheKey}, cache.invalidated)
	})

	t.Run("rollback discards the pending drop", func(t *testing.T) {
		repo := newFakeRepo()
		productID := id.New()
		repo.stock[productID] = 100

		cache := &recordingCache{}
		svc := NewService(repo, hookTxManager{}, cache, logger.Default())

		err := hookTxManager{}.RunInTransaction(ctx, func(ctx context.Context) error {
			_, _, err := svc.ApplyDelta(ctx, productID, -30, TypeSalesOutbound, "")
			require.NoError(t, err)
			return errors.New("later write failed")
		})

		require.Error(t, err)
		assert.Empty(t, cache.invalidated)
	})

	t.Run("without a surrounding unit of work the drop is immediate", func(t *testing.T) {
		repo := newFakeRepo()
		productID := id.New()
		repo.stock[productID] = 100

		cache := &recordingCache{}
		svc := NewService(repo, hookTxManager{}, cache, logger.Default())

		_, _, err := svc.ApplyDelta(ctx, productID, -30, TypeSalesOutbound, "")

		require.NoError(t, err)
		assert.Equal(t, []string{alertsCacheKey}, cache.invalidated)
	})
}

func TestEvaluateAlert(t *testing.T) {
	tests := []struct {
		name          string
		stock, min, max int64
		wantStatus    AlertStatus
		wantMagnitude int64
	}{
		{"below min", 5, 10, 100, AlertLow, 5},
		{"at min", 10, 10, 100, AlertNormal, 0},
		{"in range", 50, 10, 100, AlertNormal, 0},
		{"at max", 100, 10, 100, AlertNormal, 0},
		{"above max", 150, 10, 100, AlertHigh, 50},
		{"low wins when min greater than max", 50, 80, 20, AlertLow, 30},
		{"zero thresholds", 0, 0, 0, AlertNormal, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, magnitude := EvaluateAlert(tt.stock, tt.min, tt.max)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantMagnitude, magnitude)
		})
	}
}

func TestListAlerts(t *testing.T) {
	ctx := context.Background()

	low := func(code string, stock, min int64) *product.Product {
		p := product.New(code, code)
		p.CurrentStock = stock
		p.MinStockLevel = min
		p.MaxStockLevel = min + 100
		return p
	}
	high := func(code string, stock, max int64) *product.Product {
		p := product.New(code, code)
		p.CurrentStock = stock
		p.MaxStockLevel = max
		return p
	}

	repo := newFakeRepo()
	repo.outOfRange = []*product.Product{
		high("H-SMALL", 110, 100), // excess 10
		low("L-SMALL", 8, 10),     // shortage 2
		low("L-BIG", 1, 50),       // shortage 49
		high("H-BIG", 500, 100),   // excess 400
	}

	svc := newTestService(repo)
	alerts, err := svc.ListAlerts(ctx)

	require.NoError(t, err)
	require.Len(t, alerts, 4)

	codes := make([]string, len(alerts))
	for i, a := range alerts {
		codes[i] = a.ProductCode
	}
	assert.Equal(t, []string{"L-BIG", "L-SMALL", "H-BIG", "H-SMALL"}, codes)

	assert.Equal(t, AlertLow, alerts[0].Status)
	assert.Equal(t, int64(49), alerts[0].Magnitude)
	assert.Equal(t, AlertHigh, alerts[3].Status)
	assert.Equal(t, int64(10), alerts[3].Magnitude)
}

func TestListTransactions(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	productID := id.New()
	repo.stock[productID] = 0

	svc := newTestService(repo)
	for i := int64(1); i <= 3; i++ {
		_, _, err := svc.ApplyDelta(ctx, productID, i, TypeAdjustment, "")
		require.NoError(t, err)
	}

	views, err := svc.ListTransactions(ctx, TransactionFilter{})
	require.NoError(t, err)
	require.Len(t, views, 3)
	// newest first
	assert.Equal(t, int64(3), views[0].QuantityChange)
	assert.Equal(t, int64(1), views[2].QuantityChange)
}
