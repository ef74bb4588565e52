package handlers

import (
	"github.com/gin-gonic/gin"

	"stockyard/internal/core/apperror"
	"stockyard/internal/core/id"
	"stockyard/internal/domain/inventory"
	"stockyard/internal/infrastructure/http/v1/dto"
)

// InventoryHandler handles stock adjustment, the transaction ledger, and
// stock alerts.
type InventoryHandler struct {
	*BaseHandler
	service *inventory.Service
}

// NewInventoryHandler creates the inventory handler.
func NewInventoryHandler(base *BaseHandler, service *inventory.Service) *InventoryHandler {
	return &InventoryHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Adjust handles POST /inventory/adjust - absolute stock set.
func (h *InventoryHandler) Adjust(c *gin.Context) {
	var req dto.AdjustStockRequest
	if !h.BindJSON(c, &req) {
		return
	}

	productID, err := id.Parse(req.ProductID)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid productId").WithDetail("productId", req.ProductID))
		return
	}

	entry, err := h.service.AdjustStock(c.Request.Context(), productID, req.Quantity, req.Notes)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.AdjustStockResponse{
		ProductID:      req.ProductID,
		QuantityBefore: entry.QuantityBefore,
		QuantityAfter:  entry.QuantityAfter,
		QuantityChange: entry.QuantityChange,
	})
}

// Transactions handles GET /inventory/transactions - ledger, newest first.
func (h *InventoryHandler) Transactions(c *gin.Context) {
	var req dto.ListTransactionsRequest
	if !h.BindQuery(c, &req) {
		return
	}

	filter := inventory.TransactionFilter{Limit: req.Limit}
	if req.ProductID != "" {
		productID, err := id.Parse(req.ProductID)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid productId").WithDetail("productId", req.ProductID))
			return
		}
		filter.ProductID = &productID
	}

	views, err := h.service.ListTransactions(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, gin.H{"items": views})
}

// Alerts handles GET /inventory/alerts - products outside stock thresholds.
func (h *InventoryHandler) Alerts(c *gin.Context) {
	alerts, err := h.service.ListAlerts(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, gin.H{"items": alerts})
}
