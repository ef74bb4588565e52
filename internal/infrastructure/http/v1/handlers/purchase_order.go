package handlers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"stockyard/internal/core/apperror"
	"stockyard/internal/core/id"
	"stockyard/internal/domain/orders/purchase"
	"stockyard/internal/infrastructure/http/v1/dto"
)

// PurchaseOrderHandler handles the purchase order lifecycle endpoints.
type PurchaseOrderHandler struct {
	*BaseHandler
	service *purchase.Service
}

// NewPurchaseOrderHandler creates the purchase order handler.
func NewPurchaseOrderHandler(base *BaseHandler, service *purchase.Service) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Create handles POST /orders/purchase.
func (h *PurchaseOrderHandler) Create(c *gin.Context) {
	var req dto.CreatePurchaseOrderRequest
	if !h.BindJSON(c, &req) {
		return
	}

	order, err := req.ToEntity()
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid order payload").WithDetail("error", err.Error()))
		return
	}

	if err := h.service.Create(c.Request.Context(), order); err != nil {
		h.Error(c, err)
		return
	}

	h.CreatedWith(c, dto.OrderCreatedResponse{
		OrderID:     order.ID.String(),
		OrderNumber: order.Number,
		Status:      string(order.Status),
	})
}

// Get handles GET /orders/purchase/:id.
func (h *PurchaseOrderHandler) Get(c *gin.Context) {
	orderID, ok := h.ParseID(c)
	if !ok {
		return
	}

	order, err := h.service.GetByID(c.Request.Context(), orderID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, order)
}

// List handles GET /orders/purchase.
func (h *PurchaseOrderHandler) List(c *gin.Context) {
	var req dto.ListOrdersRequest
	if !h.BindQuery(c, &req) {
		return
	}
	req.Defaults()

	filter := purchase.Filter{
		Status: purchase.Status(req.Status),
		Limit:  req.Limit,
		Offset: req.Offset(),
	}

	var ok bool
	if filter.DateFrom, ok = h.parseDate(c, req.DateFrom, "dateFrom"); !ok {
		return
	}
	if filter.DateTo, ok = h.parseDate(c, req.DateTo, "dateTo"); !ok {
		return
	}

	if supplierID := c.Query("supplierId"); supplierID != "" {
		parsed, err := id.Parse(supplierID)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid supplierId").WithDetail("supplierId", supplierID))
			return
		}
		filter.SupplierID = &parsed
	}

	result, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.ListResponse{
		Items:      result.Items,
		Pagination: dto.NewPaginationResponse(req.Page, req.Limit, result.TotalCount),
	})
}

// Approve handles PUT /orders/purchase/:id/approve.
func (h *PurchaseOrderHandler) Approve(c *gin.Context) {
	h.transition(c, h.service.Approve)
}

// Cancel handles PUT /orders/purchase/:id/cancel.
func (h *PurchaseOrderHandler) Cancel(c *gin.Context) {
	h.transition(c, h.service.Cancel)
}

func (h *PurchaseOrderHandler) transition(c *gin.Context, fn func(ctx context.Context, orderID id.ID) (*purchase.Order, error)) {
	orderID, ok := h.ParseID(c)
	if !ok {
		return
	}

	order, err := fn(c.Request.Context(), orderID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.OrderStatusResponse{
		OrderID: order.ID.String(),
		Status:  string(order.Status),
	})
}

func (h *PurchaseOrderHandler) parseDate(c *gin.Context, raw, field string) (*time.Time, bool) {
	if raw == "" {
		return nil, true
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid date").WithDetail(field, raw))
		return nil, false
	}
	return &t, true
}
