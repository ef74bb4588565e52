package postgres

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"

	"stockyard/internal/domain/reports"
)

// ReportsRepo implements reports.Repository with aggregate queries over
// completed sales orders.
type ReportsRepo struct {
	tm *TxManager
}

var _ reports.Repository = (*ReportsRepo)(nil)

// NewReportsRepo creates the reports repository.
func NewReportsRepo(tm *TxManager) *ReportsRepo {
	return &ReportsRepo{tm: tm}
}

// MonthlySales aggregates completed sales orders per calendar month.
func (r *ReportsRepo) MonthlySales(ctx context.Context) ([]reports.MonthlyStat, error) {
	const query = `
		SELECT
			to_char(order_date, 'YYYY-MM') AS month,
			COUNT(*)                       AS order_count,
			COALESCE(SUM(total_amount), 0) AS total_amount,
			COALESCE(AVG(total_amount), 0) AS avg_amount
		FROM sales_orders
		WHERE status = 'completed'
		GROUP BY to_char(order_date, 'YYYY-MM')
		ORDER BY month DESC`

	var stats []reports.MonthlyStat
	if err := pgxscan.Select(ctx, r.tm.GetQuerier(ctx), &stats, query); err != nil {
		return nil, fmt.Errorf("monthly sales: %w", err)
	}
	return stats, nil
}

// SalesByMaterialType aggregates sold quantity and revenue per material type.
func (r *ReportsRepo) SalesByMaterialType(ctx context.Context) ([]reports.MaterialStat, error) {
	const query = `
		SELECT
			COALESCE(NULLIF(p.material_type, ''), 'unspecified') AS material_type,
			COALESCE(SUM(d.quantity), 0) AS total_quantity,
			COALESCE(SUM(d.amount), 0)   AS total_amount
		FROM sales_order_details d
		JOIN sales_orders o ON o.id = d.order_id
		JOIN products p     ON p.id = d.product_id
		WHERE o.status = 'completed'
		GROUP BY COALESCE(NULLIF(p.material_type, ''), 'unspecified')
		ORDER BY total_amount DESC`

	var stats []reports.MaterialStat
	if err := pgxscan.Select(ctx, r.tm.GetQuerier(ctx), &stats, query); err != nil {
		return nil, fmt.Errorf("sales by material type: %w", err)
	}
	return stats, nil
}

// TopCustomers aggregates revenue per customer, highest first.
func (r *ReportsRepo) TopCustomers(ctx context.Context, limit int) ([]reports.CustomerStat, error) {
	const query = `
		SELECT
			c.id                           AS customer_id,
			c.name                         AS customer_name,
			COUNT(*)                       AS order_count,
			COALESCE(SUM(o.total_amount), 0) AS total_amount
		FROM sales_orders o
		JOIN customers c ON c.id = o.customer_id
		WHERE o.status = 'completed'
		GROUP BY c.id, c.name
		ORDER BY total_amount DESC
		LIMIT $1`

	var stats []reports.CustomerStat
	if err := pgxscan.Select(ctx, r.tm.GetQuerier(ctx), &stats, query, limit); err != nil {
		return nil, fmt.Errorf("top customers: %w", err)
	}
	return stats, nil
}
