package purchase

import (
	"context"
	"time"

	"stockyard/internal/core/apperror"
	"stockyard/internal/core/id"
	"stockyard/internal/core/tx"
	"stockyard/internal/domain"
	"stockyard/internal/domain/orders"
	"stockyard/pkg/logger"
	"stockyard/pkg/ordernum"
)

// Filter narrows purchase order listings.
type Filter struct {
	Status     Status
	SupplierID *id.ID
	DateFrom   *time.Time
	DateTo     *time.Time

	Limit  int
	Offset int
}

// Repository persists purchase orders.
type Repository interface {
	Create(ctx context.Context, order *Order) error
	GetByID(ctx context.Context, orderID id.ID) (*Order, error)

	// UpdateStatus is conditional on the current status, as for sales orders.
	UpdateStatus(ctx context.Context, orderID id.ID, from, to Status) error

	List(ctx context.Context, filter Filter) (domain.ListResult[*Order], error)
}

// SupplierChecker verifies supplier references.
type SupplierChecker interface {
	Exists(ctx context.Context, id id.ID) (bool, error)
}

// Service runs the purchase order lifecycle.
type Service struct {
	repo      Repository
	suppliers SupplierChecker
	tx        tx.Manager
	numbers   ordernum.Generator
	log       *logger.Logger
}

// NewService creates the purchase order service.
func NewService(
	repo Repository,
	suppliers SupplierChecker,
	txManager tx.Manager,
	numbers ordernum.Generator,
	log *logger.Logger,
) *Service {
	return &Service{
		repo:      repo,
		suppliers: suppliers,
		tx:        txManager,
		numbers:   numbers,
		log:       log.WithComponent("purchase_orders"),
	}
}

// Create validates the order, assigns its number, and persists header and
// lines. No stock moves here or anywhere else in the purchase lifecycle.
func (s *Service) Create(ctx context.Context, order *Order) error {
	for i := range order.Lines {
		order.Lines[i] = orders.NewLine(i+1, order.Lines[i].ProductID, order.Lines[i].Quantity, order.Lines[i].UnitPrice)
		order.Lines[i].OrderID = order.ID
	}

	if err := order.Validate(ctx); err != nil {
		return err
	}

	order.Number = s.numbers.Next(ordernum.KindPurchase, order.OrderDate)
	order.TotalAmount = orders.Total(order.Lines)
	order.Status = StatusPendingReview

	err := s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		// Inside the unit of work: a supplier deleted after a pre-check
		// would otherwise surface as an FK violation on insert.
		exists, err := s.suppliers.Exists(ctx, order.SupplierID)
		if err != nil {
			return err
		}
		if !exists {
			return apperror.NewNotFound("supplier", order.SupplierID)
		}

		return s.repo.Create(ctx, order)
	})
	if err != nil {
		return err
	}

	s.log.WithContext(ctx).Infow("purchase order created",
		"order_id", order.ID,
		"order_number", order.Number,
		"lines", len(order.Lines),
		"total", order.TotalAmount.String(),
	)
	return nil
}

// GetByID loads a purchase order with lines.
func (s *Service) GetByID(ctx context.Context, orderID id.ID) (*Order, error) {
	return s.repo.GetByID(ctx, orderID)
}

// List returns purchase order headers matching the filter.
func (s *Service) List(ctx context.Context, filter Filter) (domain.ListResult[*Order], error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	if filter.Limit > 500 {
		filter.Limit = 500
	}
	return s.repo.List(ctx, filter)
}

// Approve moves an order under review to approved.
func (s *Service) Approve(ctx context.Context, orderID id.ID) (*Order, error) {
	return s.transition(ctx, orderID, StatusApproved)
}

// Cancel cancels an order under review.
func (s *Service) Cancel(ctx context.Context, orderID id.ID) (*Order, error) {
	return s.transition(ctx, orderID, StatusCancelled)
}

func (s *Service) transition(ctx context.Context, orderID id.ID, to Status) (*Order, error) {
	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !CanTransition(order.Status, to) {
		return nil, apperror.NewInvalidTransition("purchase order", string(order.Status), string(to))
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
