package sales

import (
	"context"
	"fmt"

	"stockyard/internal/core/apperror"
	"stockyard/internal/core/id"
	"stockyard/internal/core/tx"
	"stockyard/internal/domain"
	"stockyard/internal/domain/inventory"
	"stockyard/internal/domain/orders"
	"stockyard/pkg/logger"
	"stockyard/pkg/ordernum"
)

// StockMutator applies stock deltas with ledger entries. Implemented by the
// inventory service.
type StockMutator interface {
	ApplyDelta(ctx context.Context, productID id.ID, delta int64, txType inventory.TransactionType, notes string) (before, after int64, err error)
}

// CustomerChecker verifies customer references.
type CustomerChecker interface {
	Exists(ctx context.Context, id id.ID) (bool, error)
}

// Service runs the sales order lifecycle.
type Service struct {
	repo      Repository
	stock     StockMutator
	customers CustomerChecker
	tx        tx.Manager
	numbers   ordernum.Generator
	log       *logger.Logger
}

// NewService creates the sales order service.
func NewService(
	repo Repository,
	stock StockMutator,
	customers CustomerChecker,
	txManager tx.Manager,
	numbers ordernum.Generator,
	log *logger.Logger,
) *Service {
	return &Service{
		repo:      repo,
		stock:     stock,
		customers: customers,
		tx:        txManager,
		numbers:   numbers,
		log:       log.WithComponent("sales_orders"),
	}
}

// Create validates the order, assigns its number, and persists the header,
// lines, and per-line stock deductions in one transaction. Any failure,
// including insufficient stock on the last line, leaves nothing persisted.
func (s *Service) Create(ctx context.Context, order *Order) error {
	for i := range order.Lines {
		order.Lines[i] = orders.NewLine(i+1, order.Lines[i].ProductID, order.Lines[i].Quantity, order.Lines[i].UnitPrice)
		order.Lines[i].OrderID = order.ID
	}

	if err := order.Validate(ctx); err != nil {
		return err
	}

	order.Number = s.numbers.Next(ordernum.KindSales, order.OrderDate)
	order.TotalAmount = orders.Total(order.Lines)
	order.Status = StatusPending

	err := s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		// Inside the unit of work: a customer deleted after a pre-check
		// would otherwise surface as an FK violation on insert.
		exists, err := s.customers.Exists(ctx, order.CustomerID)
		if err != nil {
			return err
		}
		if !exists {
			return apperror.NewNotFound("customer", order.CustomerID)
		}

		if err := s.repo.Create(ctx, order); err != nil {
			return err
		}

		for _, line := range order.Lines {
			notes := fmt.Sprintf("sales order %s", order.Number)
			if _, _, err := s.stock.ApplyDelta(ctx, line.ProductID, -line.Quantity, inventory.TypeSalesOutbound, notes); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.log.WithContext(ctx).Infow("sales order created",
		"order_id", order.ID,
		"order_number", order.Number,
		"lines", len(order.Lines),
		"total", order.TotalAmount.String(),
	)
	return nil
}

// GetByID loads a sales order with lines.
func (s *Service) GetByID(ctx context.Context, orderID id.ID) (*Order, error) {
	return s.repo.GetByID(ctx, orderID)
}

// List returns sales order headers matching the filter.
func (s *Service) List(ctx context.Context, filter Filter) (domain.ListResult[*Order], error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	if filter.Limit > 500 {
		filter.Limit = 500
	}
	return s.repo.List(ctx, filter)
}

// Confirm moves a pending order to confirmed.
func (s *Service) Confirm(ctx context.Context, orderID id.ID) (*Order, error) {
	return s.transition(ctx, orderID, StatusConfirmed)
}

// Complete moves a confirmed order to completed.
func (s *Service) Complete(ctx context.Context, orderID id.ID) (*Order, error) {
	return s.transition(ctx, orderID, StatusCompleted)
}

// Cancel cancels a pending or confirmed order and restores the stock its
// creation deducted. Restoration applies +quantity per line against the
// stock level read at cancellation time, not a rewind to pre-sale values.
func (s *Service) Cancel(ctx context.Context, orderID id.ID) (*Order, error) {
	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !CanTransition(order.Status, StatusCancelled) {
		return nil, apperror.NewInvalidTransition("sales order", string(order.Status), string(StatusCancelled))
	}

	from := order.Status
	err = s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.UpdateStatus(ctx, orderID, from, StatusCancelled); err != nil {
			return err
		}

		for _, line := range order.Lines {
			notes := fmt.Sprintf("cancellation of sales order %s", order.Number)
			if _, _, err := s.stock.ApplyDelta(ctx, line.ProductID, line.Quantity, inventory.TypeCancellationReversal, notes); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	order.Status = StatusCancelled
	s.log.WithContext(ctx).Infow("sales order cancelled",
		"order_id", order.ID,
		"order_number", order.Number,
	)
	return order, nil
}

func (s *Service) transition(ctx context.Context, orderID id.ID, to Status) (*Order, error) {
	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !CanTransition(order.Status, to) {
		return nil, apperror.NewInvalidTransition("sales order", string(order.Status), string(to))
	}

	from := order.Status
	err = s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.UpdateStatus(ctx, orderID, from, to)
	})
	if err != nil {
		return nil, err
	}

	order.Status = to
	return order, nil
}
