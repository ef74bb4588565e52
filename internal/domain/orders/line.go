// Package orders holds types shared by the sales and purchase order
// documents: line items and amount arithmetic.
package orders

import (
	"fmt"

	"github.com/shopspring/decimal"

	"stockyard/internal/core/apperror"
	"stockyard/internal/core/id"
)

// Line is one order line item. Lines are immutable once the order is
// created; Amount is fixed at creation as Quantity x UnitPrice.
type Line struct {
	ID      id.ID `db:"id" json:"id"`
	OrderID id.ID `db:"order_id" json:"orderId"`

	// LineNo orders lines within the document, starting at 1
	LineNo int `db:"line_no" json:"lineNo"`

	ProductID id.ID           `db:"product_id" json:"productId"`
	Quantity  int64           `db:"quantity" json:"quantity"`
	UnitPrice decimal.Decimal `db:"unit_price" json:"unitPrice"`
	Amount    decimal.Decimal `db:"amount" json:"amount"`
}

// NewLine builds a line with its extended amount computed.
func NewLine(lineNo int, productID id.ID, quantity int64, unitPrice decimal.Decimal) Line {
	return Line{
		ID:        id.New(),
		LineNo:    lineNo,
		ProductID: productID,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		Amount:    unitPrice.Mul(decimal.NewFromInt(quantity)),
	}
}

// ValidateLines checks line invariants: at least one line, positive
// quantities, non-negative prices, product references set.
func ValidateLines(lines []Line) error {
	if len(lines) == 0 {
		return apperror.NewValidation("order must have at least one line item").
			WithDetail("field", "items")
	}

	for i, line := range lines {
		if id.IsNil(line.ProductID) {
			return apperror.NewValidation(fmt.Sprintf("line %d: product is required", i+1)).
				WithDetail("field", "items")
		}
		if line.Quantity <= 0 {
			return apperror.NewValidation(fmt.Sprintf("line %d: quantity must be positive", i+1)).
				WithDetail("field", "items")
		}
		if line.UnitPrice.IsNegative() {
			return apperror.NewValidation(fmt.Sprintf("line %d: unit price must not be negative", i+1)).
				WithDetail("field", "items")
		}
	}

	return nil
}

// Total sums the lines' extended amounts. The header total must equal this
// value at creation time.
func Total(lines []Line) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Amount)
	}
	return total
}
