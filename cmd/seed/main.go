// Package main provides a CLI tool for seeding the database with sample data.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/shopspring/decimal"

	"stockyard/internal/core/id"
	"stockyard/internal/infrastructure/storage/postgres"
	"stockyard/pkg/logger"
)

func main() {
	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	poolCfg := postgres.DefaultPoolConfig(dbURL)
	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("connected to database")

	categoryIDs, err := seedCategories(ctx, pool, log)
	if err != nil {
		log.Fatalw("failed to seed categories", "error", err)
	}
	if err := seedSuppliers(ctx, pool, log); err != nil {
		log.Fatalw("failed to seed suppliers", "error", err)
	}
	if err := seedCustomers(ctx, pool, log); err != nil {
		log.Fatalw("failed to seed customers", "error", err)
	}
	if err := seedProducts(ctx, pool, log, categoryIDs); err != nil {
		log.Fatalw("failed to seed products", "error", err)
	}

	log.Info("seeding completed successfully")
}

func seedCategories(ctx context.Context, pool *postgres.Pool, log *logger.Logger) (map[string]id.ID, error) {
	categories := []struct {
		code        string
		name        string
		description string
	}{
		{"CAT-001", "Gaskets", "Fluororubber and silicone sealing gaskets"},
		{"CAT-002", "O-Rings", "Standard and custom O-rings"},
		{"CAT-003", "Custom Parts", "Made-to-order molded parts"},
	}

	ids := make(map[string]id.ID)
	for _, c := range categories {
		catID := id.New()
		tag, err := pool.Exec(ctx, `
			INSERT INTO product_categories (id, code, name, description, version)
			VALUES ($1, $2, $3, $4, 1)
			ON CONFLICT (code) DO NOTHING
		`, catID, c.code, c.name, c.description)
		if err != nil {
			return nil, fmt.Errorf("insert category %s: %w", c.code, err)
		}

		// On conflict, fetch the existing ID so products can reference it.
		if tag.RowsAffected() == 0 {
			err = pool.QueryRow(ctx,
				`SELECT id FROM product_categories WHERE code = $1`, c.code,
			).Scan(&catID)
			if err != nil {
				return nil, fmt.Errorf("fetch category %s: %w", c.code, err)
			}
		}
		ids[c.code] = catID
	}

	log.Infow("categories seeded", "count", len(categories))
	return ids, nil
}

func seedSuppliers(ctx context.Context, pool *postgres.Pool, log *logger.Logger) error {
	suppliers := []struct {
		code    string
		name    string
		contact string
		phone   string
		scope   string
	}{
		{"SUP-001", "Polymer Source Co.", "Chen Wei", "+86-21-5550-0101", "FKM raw compound"},
		{"SUP-002", "Eastern Tooling Works", "Liu Yang", "+86-21-5550-0102", "Molds and tooling"},
		{"SUP-003", "Pacific Packaging Ltd.", "Maria Santos", "+63-2-5550-0103", "Packaging materials"},
	}

	for _, s := range suppliers {
		_, err := pool.Exec(ctx, `
			INSERT INTO suppliers (id, code, name, contact_person, phone, supply_scope, version)
			VALUES ($1, $2, $3, $4, $5, $6, 1)
			ON CONFLICT (code) DO NOTHING
		`, id.New(), s.code, s.name, s.contact, s.phone, s.scope)
		if err != nil {
			return fmt.Errorf("insert supplier %s: %w", s.code, err)
		}
	}

	log.Infow("suppliers seeded", "count", len(suppliers))
	return nil
}

func seedCustomers(ctx context.Context, pool *postgres.Pool, log *logger.Logger) error {
	customers := []struct {
		code    string
		name    string
		contact string
		phone   string
		ctype   string
	}{
		{"CUS-001", "Northfield Pumps Inc.", "J. Mercer", "+1-312-555-0144", "distributor"},
		{"CUS-002", "Delta Valve Systems", "A. Okafor", "+44-20-5550-0145", "oem"},
		{"CUS-003", "Harbor Marine Supply", "K. Tanaka", "+81-3-5550-0146", "retail"},
	}

	for _, c := range customers {
		_, err := pool.Exec(ctx, `
			INSERT INTO customers (id, code, name, contact_person, phone, customer_type, version)
			VALUES ($1, $2, $3, $4, $5, $6, 1)
			ON CONFLICT (code) DO NOTHING
		`, id.New(), c.code, c.name, c.contact, c.phone, c.ctype)
		if err != nil {
			return fmt.Errorf("insert customer %s: %w", c.code, err)
		}
	}

	log.Infow("customers seeded", "count", len(customers))
	return nil
}

func seedProducts(ctx context.Context, pool *postgres.Pool, log *logger.Logger, categoryIDs map[string]id.ID) error {
	products := []struct {
		code     string
		name     string
		category string
		material string
		price    string
		stock    int64
		minLevel int64
		maxLevel int64
		location string
	}{
		{"GSK-FKM-050", "FKM Gasket DN50", "CAT-001", "FKM", "12.50", 240, 100, 500, "A1-01"},
		{"GSK-FKM-080", "FKM Gasket DN80", "CAT-001", "FKM", "18.75", 160, 80, 400, "A1-02"},
		{"GSK-SIL-050", "Silicone Gasket DN50", "CAT-001", "silicone", "8.20", 90, 60, 300, "A2-01"},
		{"ORN-FKM-125", "FKM O-Ring 12.5mm", "CAT-002", "FKM", "1.85", 1200, 500, 3000, "B1-01"},
		{"ORN-EPD-125", "EPDM O-Ring 12.5mm", "CAT-002", "EPDM", "1.10", 450, 500, 2500, "B1-02"},
		{"CST-FKM-001", "Custom FKM Seal Plate", "CAT-003", "FKM", "96.00", 12, 5, 40, "C1-01"},
	}

	for _, p := range products {
		productID := id.New()
		price, err := decimal.NewFromString(p.price)
		if err != nil {
			return fmt.Errorf("parse price for %s: %w", p.code, err)
		}

		tag, err := pool.Exec(ctx, `
			INSERT INTO products (
				id, code, name, category_id, material_type, unit, unit_price,
				current_stock, min_stock_level, max_stock_level, location, status, version
			)
			VALUES ($1, $2, $3, $4, $5, 'pcs', $6, $7, $8, $9, $10, 'active', 1)
			ON CONFLICT (code) DO NOTHING
		`, productID, p.code, p.name, categoryIDs[p.category], p.material, price,
			p.stock, p.minLevel, p.maxLevel, p.location)
		if err != nil {
			return fmt.Errorf("insert product %s: %w", p.code, err)
		}
		if tag.RowsAffected() == 0 {
			continue
		}

		// Opening stock goes through the ledger so the history starts consistent.
		if p.stock > 0 {
			_, err = pool.Exec(ctx, `
				INSERT INTO inventory_transactions (
					id, product_id, transaction_type, quantity_change,
					quantity_before, quantity_after, notes
				)
				VALUES ($1, $2, 'adjustment', $3, 0, $3, 'initial stock')
			`, id.New(), productID, p.stock)
			if err != nil {
				return fmt.Errorf("record opening stock for %s: %w", p.code, err)
			}
		}
	}

	log.Infow("products seeded", "count", len(products))
	return nil
}
