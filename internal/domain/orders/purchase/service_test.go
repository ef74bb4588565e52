package purchase

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockyard/internal/core/apperror"
	"stockyard/internal/core/id"
	"stockyard/internal/domain"
	"stockyard/internal/domain/orders"
	"stockyard/pkg/logger"
	"stockyard/pkg/ordernum"
)

type fakeTxManager struct{}

func (fakeTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeRepo struct {
	orders map[id.ID]*Order
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{orders: make(map[id.ID]*Order)}
}

func (r *fakeRepo) Create(_ context.Context, order *Order) error {
	o := *order
	r.orders[order.ID] = &o
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, orderID id.ID) (*Order, error) {
	o, ok := r.orders[orderID]
	if !ok {
		return nil, apperror.NewNotFound("purchase order", orderID)
	}
	cp := *o
	return &cp, nil
}

func (r *fakeRepo) UpdateStatus(_ context.Context, orderID id.ID, from, to Status) error {
	o, ok := r.orders[orderID]
	if !ok {
		return apperror.NewNotFound("purchase order", orderID)
	}
	if o.Status != from {
		return apperror.NewInvalidTransition("purchase order", string(o.Status), string(to))
	}
	o.Status = to
	return nil
}

func (r *fakeRepo) List(_ context.Context, filter Filter) (domain.ListResult[*Order], error) {
	var items []*Order
	for _, o := range r.orders {
		if filter.Status != "" && o.Status != filter.Status {
			continue
		}
		cp := *o
		items = append(items, &cp)
	}
	return domain.ListResult[*Order]{Items: items, TotalCount: int64(len(items))}, nil
}

type fakeSuppliers struct{ known map[id.ID]bool }

func (s fakeSuppliers) Exists(_ context.Context, supplierID id.ID) (bool, error) {
	return s.known[supplierID], nil
}

// trackingTxManager marks when the transactional function is executing.
type trackingTxManager struct{ inTx bool }

func (m *trackingTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.inTx = true
	err := fn(ctx)
	m.inTx = false
	return err
}

// trackingSuppliers records whether the existence check ran inside the
// unit of work.
type trackingSuppliers struct {
	txm         *trackingTxManager
	known       map[id.ID]bool
	checkedInTx bool
}

func (s *trackingSuppliers) Exists(_ context.Context, supplierID id.ID) (bool, error) {
	s.checkedInTx = s.txm.inTx
	return s.known[supplierID], nil
}

func newTestService(repo *fakeRepo, supplierID id.ID) *Service {
	return NewService(
		repo,
		fakeSuppliers{known: map[id.ID]bool{supplierID: true}},
		fakeTxManager{},
		&ordernum.MockGenerator{},
		logger.Default(),
	)
}

func orderWith(supplierID id.ID, lines ...orders.Line) *Order {
	o := New(supplierID, time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC))
	o.Lines = lines
	return o
}

func line(productID id.ID, qty int64, price string) orders.Line {
	return orders.Line{
		ProductID: productID,
		Quantity:  qty,
		UnitPrice: decimal.RequireFromString(price),
	}
}

func TestCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("numbers and totals the order", func(t *testing.T) {
		repo := newFakeRepo()
		supplierID := id.New()
		svc := newTestService(repo, supplierID)

		order := orderWith(supplierID, line(id.New(), 100, "3.25"), line(id.New(), 10, "1.00"))
		require.NoError(t, svc.Create(ctx, order))

		assert.Equal(t, "PO-20260829-0001", order.Number)
		assert.Equal(t, StatusPendingReview, order.Status)
		assert.True(t, order.TotalAmount.Equal(decimal.RequireFromString("335.00")),
			"got total %s", order.TotalAmount)

		stored := repo.orders[order.ID]
		require.NotNil(t, stored)
		assert.Equal(t, 1, stored.Lines[0].LineNo)
		assert.Equal(t, 2, stored.Lines[1].LineNo)
	})

	t.Run("unknown supplier", func(t *testing.T) {
		repo := newFakeRepo()
		svc := newTestService(repo, id.New())

		order := orderWith(id.New(), line(id.New(), 1, "1.00"))
		err := svc.Create(ctx, order)

		require.Error(t, err)
		assert.True(t, apperror.IsNotFound(err))
		assert.Empty(t, repo.orders)
	})

	t.Run("supplier check runs inside the unit of work", func(t *testing.T) {
		repo := newFakeRepo()
		supplierID := id.New()
		txm := &trackingTxManager{}
		suppliers := &trackingSuppliers{txm: txm, known: map[id.ID]bool{supplierID: true}}
		svc := NewService(repo, suppliers, txm, &ordernum.MockGenerator{}, logger.Default())

		order := orderWith(supplierID, line(id.New(), 1, "1.00"))
		require.NoError(t, svc.Create(ctx, order))

		// a supplier deleted between a pre-check and the insert would
		// otherwise surface as an FK violation
		assert.True(t, suppliers.checkedInTx)
	})

	t.Run("empty lines rejected", func(t *testing.T) {
		repo := newFakeRepo()
		supplierID := id.New()
		svc := newTestService(repo, supplierID)

		err := svc.Create(ctx, orderWith(supplierID))
		require.Error(t, err)
		appErr, ok := apperror.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperror.CodeValidation, appErr.Code)
	})
}

func TestLifecycle(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*fakeRepo, *Service, *Order) {
		repo := newFakeRepo()
		supplierID := id.New()
		svc := newTestService(repo, supplierID)
		order := orderWith(supplierID, line(id.New(), 5, "2.00"))
		require.NoError(t, svc.Create(ctx, order))
		return repo, svc, order
	}

	t.Run("approve", func(t *testing.T) {
		repo, svc, order := setup(t)

		approved, err := svc.Approve(ctx, order.ID)
		require.NoError(t, err)
		assert.Equal(t, StatusApproved, approved.Status)
		assert.Equal(t, StatusApproved, repo.orders[order.ID].Status)
	})

	t.Run("cancel", func(t *testing.T) {
		_, svc, order := setup(t)

		cancelled, err := svc.Cancel(ctx, order.ID)
		require.NoError(t, err)
		assert.Equal(t, StatusCancelled, cancelled.Status)
	})

	t.Run("approved is terminal", func(t *testing.T) {
		repo, svc, order := setup(t)

		_, err := svc.Approve(ctx, order.ID)
		require.NoError(t, err)

		_, err = svc.Cancel(ctx, order.ID)
		require.Error(t, err)
		assert.True(t, apperror.IsInvalidTransition(err))
		assert.Equal(t, StatusApproved, repo.orders[order.ID].Status)

		_, err = svc.Approve(ctx, order.ID)
		require.Error(t, err)
		assert.True(t, apperror.IsInvalidTransition(err))
	})

	t.Run("cancelled is terminal", func(t *testing.T) {
		repo, svc, order := setup(t)

		_, err := svc.Cancel(ctx, order.ID)
		require.NoError(t, err)

		_, err = svc.Approve(ctx, order.ID)
		require.Error(t, err)
		assert.True(t, apperror.IsInvalidTransition(err))
		assert.Equal(t, StatusCancelled, repo.orders[order.ID].Status)
	})
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to Status
		want     bool
	}{
		{StatusPendingReview, StatusApproved, true},
		{StatusPendingReview, StatusCancelled, true},
		{StatusPendingReview, StatusCompleted, false},
		{StatusApproved, StatusCancelled, false},
		{StatusApproved, StatusCompleted, false},
		{StatusCancelled, StatusApproved, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CanTransition(tt.from, tt.to), "%s -> %s", tt.from, tt.to)
	}
}
