package handlers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"stockyard/internal/core/apperror"
	"stockyard/internal/core/id"
	"stockyard/internal/domain/orders/sales"
	"stockyard/internal/infrastructure/http/v1/dto"
)

// SalesOrderHandler handles the sales order lifecycle endpoints.
type SalesOrderHandler struct {
	*BaseHandler
	service *sales.Service
}

// NewSalesOrderHandler creates the sales order handler.
func NewSalesOrderHandler(base *BaseHandler, service *sales.Service) *SalesOrderHandler {
	return &SalesOrderHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Create handles POST /orders/sales.
func (h *SalesOrderHandler) Create(c *gin.Context) {
	var req dto.CreateSalesOrderRequest
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

// Get handles GET /orders/sales/:id.
func (h *SalesOrderHandler) Get(c *gin.Context) {
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

// List handles GET /orders/sales.
func (h *SalesOrderHandler) List(c *gin.Context) {
	var req dto.ListOrdersRequest
	if !h.BindQuery(c, &req) {
		return
	}
	req.Defaults()

	filter := sales.Filter{
		Status: sales.Status(req.Status),
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

	if customerID := c.Query("customerId"); customerID != "" {
		parsed, err := id.Parse(customerID)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid customerId").WithDetail("customerId", customerID))
			return
		}
		filter.CustomerID = &parsed
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

// Confirm handles PUT /orders/sales/:id/confirm.
func (h *SalesOrderHandler) Confirm(c *gin.Context) {
	h.transition(c, h.service.Confirm)
}

// Cancel handles PUT /orders/sales/:id/cancel.
func (h *SalesOrderHandler) Cancel(c *gin.Context) {
	h.transition(c, h.service.Cancel)
}

// Complete handles PUT /orders/sales/:id/complete.
func (h *SalesOrderHandler) Complete(c *gin.Context) {
	h.transition(c, h.service.Complete)
}

func (h *SalesOrderHandler) transition(c *gin.Context, fn func(ctx context.Context, orderID id.ID) (*sales.Order, error)) {
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

func (h *SalesOrderHandler) parseDate(c *gin.Context, raw, field string) (*time.Time, bool) {
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
