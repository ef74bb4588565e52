package dto

// AdjustStockRequest sets a product's absolute stock level.
type AdjustStockRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int64  `json:"quantity"`
	Notes     string `json:"notes"`
}

// AdjustStockResponse reports the recorded movement.
type AdjustStockResponse struct {
	ProductID      string `json:"productId"`
	QuantityBefore int64  `json:"quantityBefore"`
	QuantityAfter  int64  `json:"quantityAfter"`
	QuantityChange int64  `json:"quantityChange"`
}

// ListTransactionsRequest contains ledger list query parameters.
type ListTransactionsRequest struct {
	ProductID string `form:"productId"`
	Limit     int    `form:"limit"`
}
