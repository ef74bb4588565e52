package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"stockyard/internal/core/id"
	"stockyard/internal/domain/orders"
	"stockyard/internal/domain/orders/purchase"
	"stockyard/internal/domain/orders/sales"
)

// OrderLineRequest is one line item in an order creation request.
type OrderLineRequest struct {
	ProductID string          `json:"productId" binding:"required"`
	Quantity  int64           `json:"quantity" binding:"required"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

func toLines(items []OrderLineRequest) ([]orders.Line, error) {
	lines := make([]orders.Line, 0, len(items))
	for _, item := range items {
		productID, err := id.Parse(item.ProductID)
		if err != nil {
			return nil, err
		}
		lines = append(lines, orders.Line{
			ProductID: productID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}
	return lines, nil
}

// CreateSalesOrderRequest is the request body for creating a sales order.
type CreateSalesOrderRequest struct {
	CustomerID string             `json:"customerId" binding:"required"`
	OrderDate  time.Time          `json:"orderDate" binding:"required"`
	Items      []OrderLineRequest `json:"items" binding:"required"`
	Notes      string             `json:"notes"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateSalesOrderRequest) ToEntity() (*sales.Order, error) {
	customerID, err := id.Parse(r.CustomerID)
	if err != nil {
		return nil, err
	}

	order := sales.New(customerID, r.OrderDate)
	order.Notes = r.Notes
	order.Lines, err = toLines(r.Items)
	if err != nil {
		return nil, err
	}
	return order, nil
}

// CreatePurchaseOrderRequest is the request body for creating a purchase order.
type CreatePurchaseOrderRequest struct {
	SupplierID string             `json:"supplierId" binding:"required"`
	OrderDate  time.Time          `json:"orderDate" binding:"required"`
	Items      []OrderLineRequest `json:"items" binding:"required"`
	Notes      string             `json:"notes"`
}

// ToEntity converts DTO to domain entity.
func (r *CreatePurchaseOrderRequest) ToEntity() (*purchase.Order, error) {
	supplierID, err := id.Parse(r.SupplierID)
	if err != nil {
		return nil, err
	}

	order := purchase.New(supplierID, r.OrderDate)
	order.Notes = r.Notes
	order.Lines, err = toLines(r.Items)
	if err != nil {
		return nil, err
	}
	return order, nil
}

// OrderCreatedResponse acknowledges order creation.
type OrderCreatedResponse struct {
	OrderID     string `json:"orderId"`
	OrderNumber string `json:"orderNumber"`
	Status      string `json:"status"`
}

// OrderStatusResponse acknowledges a status transition.
type OrderStatusResponse struct {
	OrderID string `json:"orderId"`
	Status  string `json:"status"`
}

// ListOrdersRequest contains order list query parameters.
type ListOrdersRequest struct {
	PaginationRequest

	Status   string `form:"status"`
	DateFrom string `form:"dateFrom"`
	DateTo   string `form:"dateTo"`
}
