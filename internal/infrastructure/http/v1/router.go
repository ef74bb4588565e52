// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"stockyard/internal/domain/catalogs/category"
	"stockyard/internal/domain/catalogs/customer"
	"stockyard/internal/domain/catalogs/product"
	"stockyard/internal/domain/catalogs/supplier"
	"stockyard/internal/domain/inventory"
	"stockyard/internal/domain/orders/purchase"
	"stockyard/internal/domain/orders/sales"
	"stockyard/internal/domain/reports"
	"stockyard/internal/infrastructure/http/v1/handlers"
	"stockyard/internal/infrastructure/http/v1/middleware"
	"stockyard/internal/infrastructure/storage/postgres"
	"stockyard/pkg/logger"
)

// RouterConfig holds everything the router needs to mount the API.
type RouterConfig struct {
	Pool    *postgres.Pool
	Logger  *logger.Logger
	Version string

	Products   *product.Service
	Customers  *customer.Service
	Suppliers  *supplier.Service
	Categories *category.Service

	Inventory      *inventory.Service
	SalesOrders    *sales.Service
	PurchaseOrders *purchase.Service
	Reports        *reports.Service
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	router.GET("/", handlers.Home)

	healthHandler := handlers.NewHealthHandler(cfg.Pool, cfg.Version)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	api := router.Group("/api/v1")
	{
		registerCatalogRoutes(api, cfg)
		registerOrderRoutes(api, cfg)
		registerInventoryRoutes(api, cfg)
		registerReportRoutes(api, cfg)
	}

	return router
}

// crudHandler is the common surface of the catalog handlers.
type crudHandler interface {
	List(c *gin.Context)
	Get(c *gin.Context)
	Create(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

func registerCRUD(rg *gin.RouterGroup, h crudHandler) {
	rg.GET("", h.List)
	rg.GET("/:id", h.Get)
	rg.POST("", h.Create)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
}

func registerCatalogRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	baseHandler := handlers.NewBaseHandler()

	registerCRUD(rg.Group("/products"), handlers.NewProductHandler(baseHandler, cfg.Products))
	registerCRUD(rg.Group("/customers"), handlers.NewCustomerHandler(baseHandler, cfg.Customers))
	registerCRUD(rg.Group("/suppliers"), handlers.NewSupplierHandler(baseHandler, cfg.Suppliers))
	registerCRUD(rg.Group("/categories"), handlers.NewCategoryHandler(baseHandler, cfg.Categories))
}

func registerOrderRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	baseHandler := handlers.NewBaseHandler()

	salesHandler := handlers.NewSalesOrderHandler(baseHandler, cfg.SalesOrders)
	salesGroup := rg.Group("/orders/sales")
	{
		salesGroup.GET("", salesHandler.List)
		salesGroup.GET("/:id", salesHandler.Get)
		salesGroup.POST("", salesHandler.Create)
		salesGroup.PUT("/:id/confirm", salesHandler.Confirm)
		salesGroup.PUT("/:id/complete", salesHandler.Complete)
		salesGroup.PUT("/:id/cancel", salesHandler.Cancel)
	}

	purchaseHandler := handlers.NewPurchaseOrderHandler(baseHandler, cfg.PurchaseOrders)
	purchaseGroup := rg.Group("/orders/purchase")
	{
		purchaseGroup.GET("", purchaseHandler.List)
		purchaseGroup.GET("/:id", purchaseHandler.Get)
		purchaseGroup.POST("", purchaseHandler.Create)
		purchaseGroup.PUT("/:id/approve", purchaseHandler.Approve)
		purchaseGroup.PUT("/:id/cancel", purchaseHandler.Cancel)
	}
}

func registerInventoryRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	baseHandler := handlers.NewBaseHandler()
	handler := handlers.NewInventoryHandler(baseHandler, cfg.Inventory)

	inv := rg.Group("/inventory")
	{
		inv.GET("/alerts", handler.Alerts)
		inv.GET("/transactions", handler.Transactions)
		inv.POST("/adjust", handler.Adjust)
	}
}

func registerReportRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	baseHandler := handlers.NewBaseHandler()
	handler := handlers.NewReportsHandler(baseHandler, cfg.Reports)

	rg.GET("/statistics/sales", handler.SalesStatistics)
}
