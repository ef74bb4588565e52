// Package reports builds read-only sales statistics over completed sales
// orders.
package reports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"stockyard/internal/core/id"
	"stockyard/internal/domain"
	"stockyard/pkg/logger"
)

const (
	statsCacheKey = "reports:sales"
	statsCacheTTL = 60 * time.Second
)

// MonthlyStat aggregates completed sales orders per calendar month.
type MonthlyStat struct {
	// Month in YYYY-MM form
	Month string `db:"month" json:"month"`

	OrderCount  int64           `db:"order_count" json:"orderCount"`
	TotalAmount decimal.Decimal `db:"total_amount" json:"totalAmount"`
	AvgAmount   decimal.Decimal `db:"avg_amount" json:"avgAmount"`
}

// MaterialStat aggregates sold quantity and revenue per material type.
type MaterialStat struct {
	MaterialType  string          `db:"material_type" json:"materialType"`
	TotalQuantity int64           `db:"total_quantity" json:"totalQuantity"`
	TotalAmount   decimal.Decimal `db:"total_amount" json:"totalAmount"`
}

// CustomerStat aggregates revenue per customer.
type CustomerStat struct {
	CustomerID   id.ID           `db:"customer_id" json:"customerId"`
	CustomerName string          `db:"customer_name" json:"customerName"`
	OrderCount   int64           `db:"order_count" json:"orderCount"`
	TotalAmount  decimal.Decimal `db:"total_amount" json:"totalAmount"`
}

// SalesStatistics is the full statistics payload.
type SalesStatistics struct {
	Monthly      []MonthlyStat  `json:"monthly"`
	ByMaterial   []MaterialStat `json:"byMaterialType"`
	TopCustomers []CustomerStat `json:"topCustomers"`
}

// Repository runs the aggregate queries. Only completed sales orders count.
type Repository interface {
	MonthlySales(ctx context.Context) ([]MonthlyStat, error)
	SalesByMaterialType(ctx context.Context) ([]MaterialStat, error)
	TopCustomers(ctx context.Context, limit int) ([]CustomerStat, error)
}

// Service assembles sales statistics, optionally cached.
type Service struct {
	repo  Repository
	cache domain.Cache
	log   *logger.Logger
}

// NewService creates the reports service. cache may be nil.
func NewService(repo Repository, cache domain.Cache, log *logger.Logger) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
		log:   log.WithComponent("reports"),
	}
}

// SalesStatistics returns monthly, per-material, and top-customer
// aggregates over completed sales orders.
func (s *Service) SalesStatistics(ctx context.Context) (*SalesStatistics, error) {
	if s.cache != nil {
		var cached SalesStatistics
		if found, err := s.cache.Get(ctx, statsCacheKey, &cached); err == nil && found {
			return &cached, nil
		}
	}

	monthly, err := s.repo.MonthlySales(ctx)
	if err != nil {
		return nil, err
	}

	byMaterial, err := s.repo.SalesByMaterialType(ctx)
	if err != nil {
		return nil, err
	}

	topCustomers, err := s.repo.TopCustomers(ctx, 10)
	if err != nil {
		return nil, err
	}

	stats := &SalesStatistics{
		Monthly:      monthly,
		ByMaterial:   byMaterial,
		TopCustomers: topCustomers,
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, statsCacheKey, stats, statsCacheTTL); err != nil {
			s.log.WithContext(ctx).Warnw("statistics cache write failed", "error", err)
		}
	}

	return stats, nil
}
