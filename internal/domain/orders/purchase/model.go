// Package purchase implements the purchase order document and its
// lifecycle. Purchase orders never mutate stock: there is no goods receipt
// step, so approval records intent only.
package purchase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"stockyard/internal/core/apperror"
	"stockyard/internal/core/entity"
	"stockyard/internal/core/id"
	"stockyard/internal/domain/orders"
)

// Status is the purchase order lifecycle state.
type Status string

const (
	StatusPendingReview Status = "pending_review"
	StatusApproved      Status = "approved"
	StatusCancelled     Status = "cancelled"

	// StatusCompleted exists in the data model but nothing transitions into
	// it: receiving is not implemented. Kept so historical rows stay readable.
	StatusCompleted Status = "completed"
)

// transitions lists the permitted target states per current state.
// Approved and cancelled are terminal.
var transitions = map[Status][]Status{
	StatusPendingReview: {StatusApproved, StatusCancelled},
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

// Order is a purchase order header with its line items.
type Order struct {
	entity.BaseEntity

	// Number is the generated document number (PO-YYYYMMDD-NNNN)
	Number string `db:"order_number" json:"orderNumber"`

	SupplierID id.ID     `db:"supplier_id" json:"supplierId"`
	OrderDate  time.Time `db:"order_date" json:"orderDate"`

	// TotalAmount equals the sum of line amounts, fixed at creation
	TotalAmount decimal.Decimal `db:"total_amount" json:"totalAmount"`

	Status Status `db:"status" json:"status"`
	Notes  string `db:"notes" json:"notes"`

	Lines []orders.Line `db:"-" json:"items,omitempty"`
}

// New creates a purchase order awaiting review.
func New(supplierID id.ID, orderDate time.Time) *Order {
	return &Order{
		BaseEntity: entity.NewBaseEntity(),
		SupplierID: supplierID,
		OrderDate:  orderDate,
		Status:     StatusPendingReview,
	}
}

// Validate implements entity.Validatable.
func (o *Order) Validate(ctx context.Context) error {
	if id.IsNil(o.SupplierID) {
		return apperror.NewValidation("supplier is required").
			WithDetail("field", "supplierId")
	}
	if o.OrderDate.IsZero() {
		return apperror.NewValidation("order date is required").
			WithDetail("field", "orderDate")
	}
	return orders.ValidateLines(o.Lines)
}
