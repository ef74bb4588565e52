// Package sales implements the sales order document and its lifecycle.
// Creating a sales order deducts stock; cancelling one restores it.
package sales

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"stockyard/internal/core/apperror"
	"stockyard/internal/core/entity"
	"stockyard/internal/core/id"
	"stockyard/internal/domain/orders"
)

// Status is the sales order lifecycle state.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// transitions lists the permitted target states per current state.
// Completed and cancelled are terminal.
var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
}

// CanTransition reports whether moving from one status to another is allowed.
func CanTransition(from, to Status) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Order is a sales order header with its line items.
type Order struct {
	entity.BaseEntity

	// Number is the generated document number (SO-YYYYMMDD-NNNN)
	Number string `db:"order_number" json:"orderNumber"`

	CustomerID id.ID     `db:"customer_id" json:"customerId"`
	OrderDate  time.Time `db:"order_date" json:"orderDate"`

	// TotalAmount equals the sum of line amounts, fixed at creation
	TotalAmount decimal.Decimal `db:"total_amount" json:"totalAmount"`

	Status Status `db:"status" json:"status"`
	Notes  string `db:"notes" json:"notes"`

	Lines []orders.Line `db:"-" json:"items,omitempty"`
}

// New creates a pending sales order. Number and total are filled by the
// service at creation.
func New(customerID id.ID, orderDate time.Time) *Order {
	return &Order{
		BaseEntity: entity.NewBaseEntity(),
		CustomerID: customerID,
		OrderDate:  orderDate,
		Status:     StatusPending,
	}
}

// Validate implements entity.Validatable.
func (o *Order) Validate(ctx context.Context) error {
	if id.IsNil(o.CustomerID) {
		return apperror.NewValidation("customer is required").
			WithDetail("field", "customerId")
	}
	if o.OrderDate.IsZero() {
		return apperror.NewValidation("order date is required").
			WithDetail("field", "orderDate")
	}
	return orders.ValidateLines(o.Lines)
}
