// Package inventory keeps product stock and its append-only transaction
// ledger consistent. All stock mutations in the system go through this
// package so every change is explained by exactly one ledger entry.
package inventory

import (
	"time"

	"stockyard/internal/core/id"
)

// TransactionType classifies a ledger entry by what caused it.
type TransactionType string

const (
	// TypeAdjustment is a manual absolute stock set (counts, corrections,
	// opening balances).
	TypeAdjustment TransactionType = "adjustment"

	// TypeSalesOutbound is a deduction caused by sales order creation.
	TypeSalesOutbound TransactionType = "sales_outbound"

	// TypePurchaseInbound is an increase caused by goods receipt.
	TypePurchaseInbound TransactionType = "purchase_inbound"

	// TypeCancellationReversal restores stock deducted by a since-cancelled
	// sales order.
	TypeCancellationReversal TransactionType = "cancellation_reversal"
)

// Valid reports whether the type is a known value.
func (t TransactionType) Valid() bool {
	switch t {
	case TypeAdjustment, TypeSalesOutbound, TypePurchaseInbound, TypeCancellationReversal:
		return true
	}
	return false
}

// Transaction is one immutable ledger entry. Invariant:
// QuantityAfter - QuantityBefore == QuantityChange, and QuantityAfter equals
// the product's committed stock at the time the entry was written.
type Transaction struct {
	ID        id.ID           `db:"id" json:"id"`
	ProductID id.ID           `db:"product_id" json:"productId"`
	Type      TransactionType `db:"transaction_type" json:"transactionType"`

	QuantityChange int64 `db:"quantity_change" json:"quantityChange"`
	QuantityBefore int64 `db:"quantity_before" json:"quantityBefore"`
	QuantityAfter  int64 `db:"quantity_after" json:"quantityAfter"`

	Notes     string    `db:"notes" json:"notes"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// NewTransaction builds a ledger entry from a completed stock movement.
func NewTransaction(productID id.ID, txType TransactionType, change, before, after int64, notes string) *Transaction {
	return &Transaction{
		ID:             id.New(),
		ProductID:      productID,
		Type:           txType,
		QuantityChange: change,
		QuantityBefore: before,
		QuantityAfter:  after,
		Notes:          notes,
		CreatedAt:      time.Now().UTC(),
	}
}

// TransactionView is a ledger entry joined with product identification,
// the shape served to API clients.
type TransactionView struct {
	Transaction

	ProductCode string `db:"product_code" json:"productCode"`
	ProductName string `db:"product_name" json:"productName"`
}

// TransactionFilter narrows ledger listings. Entries are always returned
// newest first.
type TransactionFilter struct {
	ProductID *id.ID
	Limit     int
}

// AlertStatus classifies stock relative to the configured thresholds.
type AlertStatus string

const (
	AlertLow    AlertStatus = "low"
	AlertHigh   AlertStatus = "high"
	AlertNormal AlertStatus = "normal"
)

// Alert describes one product whose stock is out of range.
type Alert struct {
	ProductID    id.ID       `json:"productId"`
	ProductCode  string      `json:"productCode"`
	ProductName  string      `json:"productName"`
	CurrentStock int64       `json:"currentStock"`
	MinStock     int64       `json:"minStock"`
	MaxStock     int64       `json:"maxStock"`
	Status       AlertStatus `json:"status"`

	// Magnitude is the shortage below min or the excess above max.
	Magnitude int64 `json:"magnitude"`
}

// EvaluateAlert derives the alert status and magnitude from stock versus
// thresholds. The low check runs first, so a misconfigured product with
// min > max reports low rather than high.
func EvaluateAlert(currentStock, minStock, maxStock int64) (AlertStatus, int64) {
	if currentStock < minStock {
		return AlertLow, minStock - currentStock
	}
	if currentStock > maxStock {
		return AlertHigh, currentStock - maxStock
	}
	return AlertNormal, 0
}
