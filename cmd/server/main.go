// Package main is the entry point for the stockyard API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stockyard/internal/domain"
	"stockyard/internal/domain/catalogs/category"
	"stockyard/internal/domain/catalogs/customer"
	"stockyard/internal/domain/catalogs/product"
	"stockyard/internal/domain/catalogs/supplier"
	"stockyard/internal/domain/inventory"
	"stockyard/internal/domain/orders/purchase"
	"stockyard/internal/domain/orders/sales"
	"stockyard/internal/domain/reports"
	"stockyard/internal/infrastructure/cache"
	v1 "stockyard/internal/infrastructure/http/v1"
	"stockyard/internal/infrastructure/storage/postgres"
	"stockyard/pkg/config"
	"stockyard/pkg/logger"
	"stockyard/pkg/ordernum"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.Log.Level,
		Development: cfg.App.Env == "development",
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync() //nolint:errcheck

	ctx := context.Background()
	log.Infow("starting stockyard server", "env", cfg.App.Env, "version", version)

	// --- Database ---
	poolCfg := postgres.DefaultPoolConfig(cfg.DB.ConnectionString())
	poolCfg.MaxConns = cfg.DB.MaxConns
	poolCfg.MinConns = cfg.DB.MinConns

	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	log.Info("database connection established")

	txManager := postgres.NewTxManager(pool)

	// --- Cache (optional) ---
	var readCache domain.Cache
	if cfg.Redis.Enabled() {
		redisCache := cache.NewRedisCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err := redisCache.Ping(ctx); err != nil {
			log.Warnw("redis unreachable, continuing without cache", "error", err)
		} else {
			readCache = redisCache
			defer redisCache.Close() //nolint:errcheck
			log.Infow("redis cache connected", "addr", cfg.Redis.Addr)
		}
	}

	// --- Repositories ---
	productRepo := postgres.NewProductRepo(txManager)
	customerRepo := postgres.NewCustomerRepo(txManager)
	supplierRepo := postgres.NewSupplierRepo(txManager)
	categoryRepo := postgres.NewCategoryRepo(txManager)
	inventoryRepo := postgres.NewInventoryRepo(txManager)
	salesRepo := postgres.NewSalesOrderRepo(txManager)
	purchaseRepo := postgres.NewPurchaseOrderRepo(txManager)
	reportsRepo := postgres.NewReportsRepo(txManager)

	// --- Services ---
	numbers := ordernum.New()

	inventoryService := inventory.NewService(inventoryRepo, txManager, readCache, log)
	productService := product.NewService(productRepo, txManager, inventoryService)
	customerService := customer.NewService(customerRepo, txManager)
	supplierService := supplier.NewService(supplierRepo, txManager)
	categoryService := category.NewService(categoryRepo, txManager)
	salesService := sales.NewService(salesRepo, inventoryService, customerRepo, txManager, numbers, log)
	purchaseService := purchase.NewService(purchaseRepo, supplierRepo, txManager, numbers, log)
	reportsService := reports.NewService(reportsRepo, readCache, log)

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Pool:    pool,
		Logger:  log,
		Version: version,

		Products:   productService,
		Customers:  customerService,
		Suppliers:  supplierService,
		Categories: categoryService,

		Inventory:      inventoryService,
		SalesOrders:    salesService,
		PurchaseOrders: purchaseService,
		Reports:        reportsService,
	})

	// --- HTTP Server ---
	server := &http.Server{
		Addr:         cfg.HTTP.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}
