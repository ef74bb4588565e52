package dto

import (
	"github.com/shopspring/decimal"

	"stockyard/internal/core/id"
	"stockyard/internal/domain/catalogs/product"
)

// CreateProductRequest is the request body for creating a product.
type CreateProductRequest struct {
	Code          string          `json:"code" binding:"required"`
	Name          string          `json:"name" binding:"required"`
	CategoryID    *string         `json:"categoryId"`
	Specification string          `json:"specification"`
	MaterialType  string          `json:"materialType"`
	Unit          string          `json:"unit"`
	UnitPrice     decimal.Decimal `json:"unitPrice"`
	CurrentStock  int64           `json:"currentStock"`
	MinStockLevel int64           `json:"minStockLevel"`
	MaxStockLevel int64           `json:"maxStockLevel"`
	Location      string          `json:"location"`
	Status        product.Status  `json:"status"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateProductRequest) ToEntity() (*product.Product, error) {
	p := product.New(r.Code, r.Name)
	if r.CategoryID != nil && *r.CategoryID != "" {
		categoryID, err := id.Parse(*r.CategoryID)
		if err != nil {
			return nil, err
		}
		p.CategoryID = &categoryID
	}
	p.Specification = r.Specification
	p.MaterialType = r.MaterialType
	if r.Unit != "" {
		p.Unit = r.Unit
	}
	p.UnitPrice = r.UnitPrice
	p.CurrentStock = r.CurrentStock
	p.MinStockLevel = r.MinStockLevel
	p.MaxStockLevel = r.MaxStockLevel
	p.Location = r.Location
	if r.Status != "" {
		p.Status = r.Status
	}
	return p, nil
}

// UpdateProductRequest is the request body for updating a product.
type UpdateProductRequest struct {
	Code          string          `json:"code" binding:"required"`
	Name          string          `json:"name" binding:"required"`
	CategoryID    *string         `json:"categoryId"`
	Specification string          `json:"specification"`
	MaterialType  string          `json:"materialType"`
	Unit          string          `json:"unit"`
	UnitPrice     decimal.Decimal `json:"unitPrice"`
	CurrentStock  int64           `json:"currentStock"`
	MinStockLevel int64           `json:"minStockLevel"`
	MaxStockLevel int64           `json:"maxStockLevel"`
	Location      string          `json:"location"`
	Status        product.Status  `json:"status"`
	Version       int             `json:"version" binding:"required"`
}

// Apply copies request fields onto an existing entity.
func (r *UpdateProductRequest) Apply(p *product.Product) error {
	p.Code = r.Code
	p.Name = r.Name
	p.CategoryID = nil
	if r.CategoryID != nil && *r.CategoryID != "" {
		categoryID, err := id.Parse(*r.CategoryID)
		if err != nil {
			return err
		}
		p.CategoryID = &categoryID
	}
	p.Specification = r.Specification
	p.MaterialType = r.MaterialType
	if r.Unit != "" {
		p.Unit = r.Unit
	}
	p.UnitPrice = r.UnitPrice
	p.CurrentStock = r.CurrentStock
	p.MinStockLevel = r.MinStockLevel
	p.MaxStockLevel = r.MaxStockLevel
	p.Location = r.Location
	if r.Status != "" {
		p.Status = r.Status
	}
	p.SetVersion(r.Version)
	return nil
}

// ListProductsRequest contains product list query parameters.
type ListProductsRequest struct {
	PaginationRequest

	Search       string `form:"search"`
	MaterialType string `form:"materialType"`
	Status       string `form:"status"`
	OrderBy      string `form:"orderBy"`
}
