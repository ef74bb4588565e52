package sales

import (
	"context"
	"time"

	"stockyard/internal/core/id"
	"stockyard/internal/domain"
)

// Filter narrows sales order listings.
type Filter struct {
	Status     Status
	CustomerID *id.ID
	DateFrom   *time.Time
	DateTo     *time.Time

	Limit  int
	Offset int
}

// Repository persists sales orders.
type Repository interface {
	// Create inserts the header and its lines in the current transaction.
	Create(ctx context.Context, order *Order) error

	// GetByID loads the header with lines. NOT_FOUND when absent.
	GetByID(ctx context.Context, orderID id.ID) (*Order, error)

	// UpdateStatus moves the order from one status to another. The write is
	// conditional on the current status so concurrent transitions cannot
	// both succeed; returns INVALID_TRANSITION when the row no longer holds
	// the expected status.
	UpdateStatus(ctx context.Context, orderID id.ID, from, to Status) error

	// List returns headers (without lines) matching the filter, newest
	// order date first.
	List(ctx context.Context, filter Filter) (domain.ListResult[*Order], error)
}
