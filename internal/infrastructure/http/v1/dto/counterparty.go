package dto

import (
	"stockyard/internal/domain/catalogs/category"
	"stockyard/internal/domain/catalogs/customer"
	"stockyard/internal/domain/catalogs/supplier"
)

// CreateCustomerRequest is the request body for creating a customer.
type CreateCustomerRequest struct {
	Code          string `json:"code" binding:"required"`
	Name          string `json:"name" binding:"required"`
	ContactPerson string `json:"contactPerson"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	Address       string `json:"address"`
	CustomerType  string `json:"customerType"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateCustomerRequest) ToEntity() *customer.Customer {
	c := customer.New(r.Code, r.Name)
	c.ContactPerson = r.ContactPerson
	c.Phone = r.Phone
	c.Email = r.Email
	c.Address = r.Address
	c.CustomerType = r.CustomerType
	return c
}

// UpdateCustomerRequest is the request body for updating a customer.
type UpdateCustomerRequest struct {
	Code          string `json:"code" binding:"required"`
	Name          string `json:"name" binding:"required"`
	ContactPerson string `json:"contactPerson"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	Address       string `json:"address"`
	CustomerType  string `json:"customerType"`
	Version       int    `json:"version" binding:"required"`
}

// Apply copies request fields onto an existing entity.
func (r *UpdateCustomerRequest) Apply(c *customer.Customer) {
	c.Code = r.Code
	c.Name = r.Name
	c.ContactPerson = r.ContactPerson
	c.Phone = r.Phone
	c.Email = r.Email
	c.Address = r.Address
	c.CustomerType = r.CustomerType
	c.SetVersion(r.Version)
}

// CreateSupplierRequest is the request body for creating a supplier.
type CreateSupplierRequest struct {
	Code          string `json:"code" binding:"required"`
	Name          string `json:"name" binding:"required"`
	ContactPerson string `json:"contactPerson"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	Address       string `json:"address"`
	SupplyScope   string `json:"supplyScope"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateSupplierRequest) ToEntity() *supplier.Supplier {
	s := supplier.New(r.Code, r.Name)
	s.ContactPerson = r.ContactPerson
	s.Phone = r.Phone
	s.Email = r.Email
	s.Address = r.Address
	s.SupplyScope = r.SupplyScope
	return s
}

// UpdateSupplierRequest is the request body for updating a supplier.
type UpdateSupplierRequest struct {
	Code          string `json:"code" binding:"required"`
	Name          string `json:"name" binding:"required"`
	ContactPerson string `json:"contactPerson"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	Address       string `json:"address"`
	SupplyScope   string `json:"supplyScope"`
	Version       int    `json:"version" binding:"required"`
}

// Apply copies request fields onto an existing entity.
func (r *UpdateSupplierRequest) Apply(s *supplier.Supplier) {
	s.Code = r.Code
	s.Name = r.Name
	s.ContactPerson = r.ContactPerson
	s.Phone = r.Phone
	s.Email = r.Email
	s.Address = r.Address
	s.SupplyScope = r.SupplyScope
	s.SetVersion(r.Version)
}

// CreateCategoryRequest is the request body for creating a product category.
type CreateCategoryRequest struct {
	Code        string `json:"code" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateCategoryRequest) ToEntity() *category.Category {
	c := category.New(r.Code, r.Name)
	c.Description = r.Description
	return c
}

// UpdateCategoryRequest is the request body for updating a product category.
type UpdateCategoryRequest struct {
	Code        string `json:"code" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Version     int    `json:"version" binding:"required"`
}

// Apply copies request fields onto an existing entity.
func (r *UpdateCategoryRequest) Apply(c *category.Category) {
	c.Code = r.Code
	c.Name = r.Name
	c.Description = r.Description
	c.SetVersion(r.Version)
}
