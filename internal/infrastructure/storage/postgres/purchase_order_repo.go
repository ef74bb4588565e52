package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"stockyard/internal/core/apperror"
	"stockyard/internal/core/id"
	"stockyard/internal/domain"
	"stockyard/internal/domain/orders"
	"stockyard/internal/domain/orders/purchase"
)

const (
	purchaseOrdersTable     = "purchase_orders"
	purchaseOrderLinesTable = "purchase_order_details"
)

// PurchaseOrderRepo implements purchase.Repository.
type PurchaseOrderRepo struct {
	tm *TxManager
}

var _ purchase.Repository = (*PurchaseOrderRepo)(nil)

// NewPurchaseOrderRepo creates the purchase order repository.
func NewPurchaseOrderRepo(tm *TxManager) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{tm: tm}
}

func (r *PurchaseOrderRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func (r *PurchaseOrderRepo) headerCols() []string {
	return ExtractDBColumns[purchase.Order]()
}

// Create inserts the header and its lines.
func (r *PurchaseOrderRepo) Create(ctx context.Context, order *purchase.Order) error {
	data := StructToMap(order)

	filtered := make(map[string]any, len(data))
	for _, col := range r.headerCols() {
		if val, ok := data[col]; ok {
			filtered[col] = val
		}
	}

	q := r.builder().
		Insert(purchaseOrdersTable).
		SetMap(filtered)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.tm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert purchase order: %w", err)
	}

	return r.insertLines(ctx, order.ID, order.Lines)
}

func (r *PurchaseOrderRepo) insertLines(ctx context.Context, orderID id.ID, lines []orders.Line) error {
	if len(lines) == 0 {
		return nil
	}

	q := r.builder().
		Insert(purchaseOrderLinesTable).
		Columns("id", "order_id", "line_no", "product_id", "quantity", "unit_price", "amount")

	for _, line := range lines {
		q = q.Values(line.ID, orderID, line.LineNo, line.ProductID, line.Quantity, line.UnitPrice, line.Amount)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert lines: %w", err)
	}

	if _, err := r.tm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert purchase order lines: %w", err)
	}

	return nil
}

// GetByID loads the header with its lines.
func (r *PurchaseOrderRepo) GetByID(ctx context.Context, orderID id.ID) (*purchase.Order, error) {
	q := r.builder().
		Select(r.headerCols()...).
		From(purchaseOrdersTable).
		Where(squirrel.Eq{"id": orderID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	order := &purchase.Order{}
	querier := r.tm.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, order, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("purchase order", orderID.String())
		}
		return nil, fmt.Errorf("get purchase order: %w", err)
	}

	lines, err := r.getLines(ctx, orderID)
	if err != nil {
		return nil, err
	}
	order.Lines = lines

	return order, nil
}

func (r *PurchaseOrderRepo) getLines(ctx context.Context, orderID id.ID) ([]orders.Line, error) {
	q := r.builder().
		Select("id", "order_id", "line_no", "product_id", "quantity", "unit_price", "amount").
		From(purchaseOrderLinesTable).
		Where(squirrel.Eq{"order_id": orderID}).
		OrderBy("line_no")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var lines []orders.Line
	if err := pgxscan.Select(ctx, r.tm.GetQuerier(ctx), &lines, sql, args...); err != nil {
		return nil, fmt.Errorf("get purchase order lines: %w", err)
	}

	return lines, nil
}

// UpdateStatus moves the order between statuses, conditional on the
// current status.
func (r *PurchaseOrderRepo) UpdateStatus(ctx context.Context, orderID id.ID, from, to purchase.Status) error {
	q := r.builder().
		Update(purchaseOrdersTable).
		Set("status", to).
		Set("version", squirrel.Expr("version + 1")).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": orderID}).
		Where(squirrel.Eq{"status": from})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.tm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update purchase order status: %w", err)
	}

	if result.RowsAffected() == 0 {
		exists, err := r.exists(ctx, orderID)
		if err != nil {
			return err
		}
		if !exists {
			return apperror.NewNotFound("purchase order", orderID.String())
		}
		return apperror.NewInvalidTransition("purchase order", string(from), string(to))
	}

	return nil
}

func (r *PurchaseOrderRepo) exists(ctx context.Context, orderID id.ID) (bool, error) {
	var one int
	err := r.tm.GetQuerier(ctx).
		QueryRow(ctx, "SELECT 1 FROM "+purchaseOrdersTable+" WHERE id = $1", orderID).
		Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("purchase order exists: %w", err)
	}
	return true, nil
}

// List returns headers matching the filter, newest order date first.
func (r *PurchaseOrderRepo) List(ctx context.Context, filter purchase.Filter) (domain.ListResult[*purchase.Order], error) {
	result := domain.ListResult[*purchase.Order]{
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	q := r.builder().
		Select(r.headerCols()...).
		From(purchaseOrdersTable)

	if filter.Status != "" {
		q = q.Where(squirrel.Eq{"status": filter.Status})
	}
	if filter.SupplierID != nil {
		q = q.Where(squirrel.Eq{"supplier_id": *filter.SupplierID})
	}
	if filter.DateFrom != nil {
		q = q.Where(squirrel.GtOrEq{"order_date": *filter.DateFrom})
	}
	if filter.DateTo != nil {
		q = q.Where(squirrel.LtOrEq{"order_date": *filter.DateTo})
	}

	countQ := r.builder().Select("COUNT(*)").FromSelect(q, "sub")
	countSQL, countArgs, err := countQ.ToSql()
	if err != nil {
		return result, fmt.Errorf("build count: %w", err)
	}

	querier := r.tm.GetQuerier(ctx)
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&result.TotalCount); err != nil {
		return result, fmt.Errorf("count: %w", err)
	}

	q = q.OrderBy("order_date DESC", "order_number DESC")
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return result, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Select(ctx, querier, &result.Items, sql, args...); err != nil {
		return result, fmt.Errorf("list purchase orders: %w", err)
	}

	return result, nil
}
