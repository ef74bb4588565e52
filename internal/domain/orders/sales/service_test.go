package sales

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
	"stockyard/internal/domain/inventory"
	"stockyard/internal/domain/orders"
	"stockyard/pkg/logger"
	"stockyard/pkg/ordernum"
)

// fakeStore backs both the order repository and the stock mutator so a
// rolled-back transaction visibly reverts every write.
type fakeStore struct {
	orders map[id.ID]*Order
	stock  map[id.ID]int64
	ledger []*inventory.Transaction
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		orders: make(map[id.ID]*Order),
		stock:  make(map[id.ID]int64),
	}
}

func (s *fakeStore) snapshot() *fakeStore {
	cp := newFakeStore()
	for k, v := range s.orders {
		o := *v
		cp.orders[k] = &o
	}
	for k, v := range s.stock {
		cp.stock[k] = v
	}
	cp.ledger = append([]*inventory.Transaction(nil), s.ledger...)
	return cp
}

func (s *fakeStore) restore(snap *fakeStore) {
	s.orders = snap.orders
	s.stock = snap.stock
	s.ledger = snap.ledger
}

// fakeTxManager reverts the store when the transactional function fails.
type fakeTxManager struct {
	store *fakeStore
}

func (m fakeTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	snap := m.store.snapshot()
	if err := fn(ctx); err != nil {
		m.store.restore(snap)
		return err
	}
	return nil
}

// --- repository over fakeStore ---

type fakeRepo struct{ store *fakeStore }

func (r fakeRepo) Create(_ context.Context, order *Order) error {
	o := *order
	r.store.orders[order.ID] = &o
	return nil
}

func (r fakeRepo) GetByID(_ context.Context, orderID id.ID) (*Order, error) {
	o, ok := r.store.orders[orderID]
	if !ok {
		return nil, apperror.NewNotFound("sales order", orderID)
	}
	cp := *o
	return &cp, nil
}

func (r fakeRepo) UpdateStatus(_ context.Context, orderID id.ID, from, to Status) error {
	o, ok := r.store.orders[orderID]
	if !ok {
		return apperror.NewNotFound("sales order", orderID)
	}
	if o.Status != from {
		return apperror.NewInvalidTransition("sales order", string(o.Status), string(to))
	}
	o.Status = to
	return nil
}

func (r fakeRepo) List(_ context.Context, filter Filter) (domain.ListResult[*Order], error) {
	var items []*Order
	for _, o := range r.store.orders {
		if filter.Status != "" && o.Status != filter.Status {
			continue
		}
		cp := *o
		items = append(items, &cp)
	}
	return domain.ListResult[*Order]{Items: items, TotalCount: int64(len(items))}, nil
}

// fakeMutator mirrors the inventory service's delta semantics over fakeStore.
type fakeMutator struct{ store *fakeStore }

func (m fakeMutator) ApplyDelta(_ context.Context, productID id.ID, delta int64, txType inventory.TransactionType, notes string) (int64, int64, error) {
	before, ok := m.store.stock[productID]
	if !ok {
		return 0, 0, apperror.NewNotFound("product", productID.String())
	}
	after := before + delta
	if after < 0 {
		return 0, 0, apperror.NewInsufficientStock(productID.String(), -delta, before)
	}
	m.store.stock[productID] = after
	m.store.ledger = append(m.store.ledger, inventory.NewTransaction(productID, txType, delta, before, after, notes))
	return before, after, nil
}

type fakeCustomers struct{ known map[id.ID]bool }

func (c fakeCustomers) Exists(_ context.Context, customerID id.ID) (bool, error) {
	return c.known[customerID], nil
}

// trackingTxManager marks when the transactional function is executing.
type trackingTxManager struct {
	store *fakeStore
	inTx  bool
}

func (m *trackingTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	snap := m.store.snapshot()
	m.inTx = true
	err := fn(ctx)
	m.inTx = false
	if err != nil {
		m.store.restore(snap)
	}
	return err
}

// trackingCustomers records whether the existence check ran inside the
// unit of work.
type trackingCustomers struct {
	txm         *trackingTxManager
	known       map[id.ID]bool
	checkedInTx bool
}

func (c *trackingCustomers) Exists(_ context.Context, customerID id.ID) (bool, error) {
	c.checkedInTx = c.txm.inTx
	return c.known[customerID], nil
}

type fixture struct {
	store      *fakeStore
	svc        *Service
	customerID id.ID
}

func newFixture() *fixture {
	store := newFakeStore()
	customerID := id.New()
	svc := NewService(
		fakeRepo{store},
		fakeMutator{store},
		fakeCustomers{known: map[id.ID]bool{customerID: true}},
		fakeTxManager{store},
		&ordernum.MockGenerator{},
		logger.Default(),
	)
	return &fixture{store: store, svc: svc, customerID: customerID}
}

func (f *fixture) addProduct(stock int64) id.ID {
	productID := id.New()
	f.store.stock[productID] = stock
	return productID
}

func orderWith(customerID id.ID, lines ...orders.Line) *Order {
	o := New(customerID, time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC))
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

	t.Run("deducts stock per line and totals the header", func(t *testing.T) {
		f := newFixture()
		p1 := f.addProduct(100)
		p2 := f.addProduct(50)

		order := orderWith(f.customerID, line(p1, 30, "10.50"), line(p2, 5, "2.00"))
		require.NoError(t, f.svc.Create(ctx, order))

		assert.Equal(t, "SO-20260829-0001", order.Number)
		assert.Equal(t, StatusPending, order.Status)
		assert.True(t, order.TotalAmount.Equal(decimal.RequireFromString("325.00")),
			"got total %s", order.TotalAmount)

		assert.Equal(t, int64(70), f.store.stock[p1])
		assert.Equal(t, int64(45), f.store.stock[p2])

		require.Len(t, f.store.ledger, 2)
		for _, e := range f.store.ledger {
			assert.Equal(t, inventory.TypeSalesOutbound, e.Type)
			assert.Equal(t, e.QuantityAfter-e.QuantityBefore, e.QuantityChange)
		}
	})

	t.Run("insufficient stock on a later line persists nothing", func(t *testing.T) {
		f := newFixture()
		p1 := f.addProduct(100)
		p2 := f.addProduct(3)

		order := orderWith(f.customerID, line(p1, 30, "10.00"), line(p2, 5, "1.00"))
		err := f.svc.Create(ctx, order)

		require.Error(t, err)
		assert.True(t, apperror.IsInsufficientStock(err))

		assert.Empty(t, f.store.orders)
		assert.Empty(t, f.store.ledger)
		assert.Equal(t, int64(100), f.store.stock[p1], "first line deduction must be rolled back")
		assert.Equal(t, int64(3), f.store.stock[p2])
	})

	t.Run("unknown customer", func(t *testing.T) {
		f := newFixture()
		p1 := f.addProduct(10)

		order := orderWith(id.New(), line(p1, 1, "1.00"))
		err := f.svc.Create(ctx, order)

		require.Error(t, err)
		assert.True(t, apperror.IsNotFound(err))
		assert.Empty(t, f.store.orders)
	})

	t.Run("customer check runs inside the unit of work", func(t *testing.T) {
		store := newFakeStore()
		customerID := id.New()
		txm := &trackingTxManager{store: store}
		customers := &trackingCustomers{txm: txm, known: map[id.ID]bool{customerID: true}}
		svc := NewService(
			fakeRepo{store},
			fakeMutator{store},
			customers,
			txm,
			&ordernum.MockGenerator{},
			logger.Default(),
		)

		productID := id.New()
		store.stock[productID] = 10

		order := orderWith(customerID, line(productID, 1, "1.00"))
		require.NoError(t, svc.Create(ctx, order))

		// a customer deleted between a pre-check and the insert would
		// otherwise surface as an FK violation
		assert.True(t, customers.checkedInTx)
	})

	t.Run("validation failures", func(t *testing.T) {
		f := newFixture()
		p1 := f.addProduct(10)

		tests := []struct {
			name  string
			order *Order
		}{
			{"no lines", orderWith(f.customerID)},
			{"zero quantity", orderWith(f.customerID, line(p1, 0, "1.00"))},
			{"negative price", orderWith(f.customerID, line(p1, 1, "-1.00"))},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				err := f.svc.Create(ctx, tt.order)
				require.Error(t, err)
				appErr, ok := apperror.AsAppError(err)
				require.True(t, ok)
				assert.Equal(t, apperror.CodeValidation, appErr.Code)
			})
		}
		assert.Empty(t, f.store.orders)
		assert.Equal(t, int64(10), f.store.stock[p1])
	})
}

func TestCancel(t *testing.T) {
	ctx := context.Background()

	t.Run("restores stock at cancellation-time values", func(t *testing.T) {
		f := newFixture()
		p1 := f.addProduct(100)

		order := orderWith(f.customerID, line(p1, 30, "10.00"))
		require.NoError(t, f.svc.Create(ctx, order))
		require.Equal(t, int64(70), f.store.stock[p1])

		// independent movement between sale and cancellation
		f.store.stock[p1] = 40

		cancelled, err := f.svc.Cancel(ctx, order.ID)
		require.NoError(t, err)
		assert.Equal(t, StatusCancelled, cancelled.Status)

		// point-in-time reversal: 40 + 30, not a rewind to 100
		assert.Equal(t, int64(70), f.store.stock[p1])

		reversals := 0
		for _, e := range f.store.ledger {
			if e.Type == inventory.TypeCancellationReversal {
				reversals++
				assert.Equal(t, int64(30), e.QuantityChange)
				assert.Equal(t, int64(40), e.QuantityBefore)
				assert.Equal(t, int64(70), e.QuantityAfter)
			}
		}
		assert.Equal(t, 1, reversals, "one reversal entry per line")
	})

	t.Run("cancel after confirm", func(t *testing.T) {
		f := newFixture()
		p1 := f.addProduct(100)

		order := orderWith(f.customerID, line(p1, 10, "1.00"))
		require.NoError(t, f.svc.Create(ctx, order))
		_, err := f.svc.Confirm(ctx, order.ID)
		require.NoError(t, err)

		cancelled, err := f.svc.Cancel(ctx, order.ID)
		require.NoError(t, err)
		assert.Equal(t, StatusCancelled, cancelled.Status)
		assert.Equal(t, int64(100), f.store.stock[p1])
	})

	t.Run("cancelling a cancelled order fails and restores nothing", func(t *testing.T) {
		f := newFixture()
		p1 := f.addProduct(100)

		order := orderWith(f.customerID, line(p1, 10, "1.00"))
		require.NoError(t, f.svc.Create(ctx, order))
		_, err := f.svc.Cancel(ctx, order.ID)
		require.NoError(t, err)
		require.Equal(t, int64(100), f.store.stock[p1])

		_, err = f.svc.Cancel(ctx, order.ID)
		require.Error(t, err)
		assert.True(t, apperror.IsInvalidTransition(err))
		assert.Equal(t, int64(100), f.store.stock[p1], "stock must not be restored twice")
		assert.Equal(t, StatusCancelled, f.store.orders[order.ID].Status)
	})
}

func TestTransitions(t *testing.T) {
	ctx := context.Background()

	t.Run("pending to confirmed to completed", func(t *testing.T) {
		f := newFixture()
		p1 := f.addProduct(100)

		order := orderWith(f.customerID, line(p1, 10, "1.00"))
		require.NoError(t, f.svc.Create(ctx, order))

		confirmed, err := f.svc.Confirm(ctx, order.ID)
		require.NoError(t, err)
		assert.Equal(t, StatusConfirmed, confirmed.Status)

		completed, err := f.svc.Complete(ctx, order.ID)
		require.NoError(t, err)
		assert.Equal(t, StatusCompleted, completed.Status)
	})

	t.Run("invalid transitions leave status unchanged", func(t *testing.T) {
		f := newFixture()
		p1 := f.addProduct(100)

		order := orderWith(f.customerID, line(p1, 10, "1.00"))
		require.NoError(t, f.svc.Create(ctx, order))

		// pending → completed skips confirmation
		_, err := f.svc.Complete(ctx, order.ID)
		require.Error(t, err)
		assert.True(t, apperror.IsInvalidTransition(err))
		assert.Equal(t, StatusPending, f.store.orders[order.ID].Status)

		_, err = f.svc.Complete(ctx, order.ID)
		require.Error(t, err)

		// completed is terminal
		_, err = f.svc.Confirm(ctx, order.ID)
		require.NoError(t, err)
		_, err = f.svc.Complete(ctx, order.ID)
		require.NoError(t, err)
		_, err = f.svc.Confirm(ctx, order.ID)
		require.Error(t, err)
		assert.True(t, apperror.IsInvalidTransition(err))
		assert.Equal(t, StatusCompleted, f.store.orders[order.ID].Status)
	})
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to Status
		want     bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusCompleted, false},
		{StatusConfirmed, StatusCompleted, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusPending, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCancelled, StatusConfirmed, false},
		{StatusCancelled, StatusCancelled, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CanTransition(tt.from, tt.to), "%s -> %s", tt.from, tt.to)
	}
}
