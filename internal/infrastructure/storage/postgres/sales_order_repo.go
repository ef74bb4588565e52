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
	"stockyard/internal/domain/orders/sales"
)

const (
	salesOrdersTable     = "sales_orders"
	salesOrderLinesTable = "sales_order_details"
)

// SalesOrderRepo implements sales.Repository.
type SalesOrderRepo struct {
	tm *TxManager
}

var _ sales.Repository = (*SalesOrderRepo)(nil)

// NewSalesOrderRepo creates the sales order repository.
func NewSalesOrderRepo(tm *TxManager) *SalesOrderRepo {
	return &SalesOrderRepo{tm: tm}
}

func (r *SalesOrderRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func (r *SalesOrderRepo) headerCols() []string {
	return ExtractDBColumns[sales.Order]()
}

// Create inserts the header and its lines.
func (r *SalesOrderRepo) Create(ctx context.Context, order *sales.Order) error {
	data := StructToMap(order)

	filtered := make(map[string]any, len(data))
	for _, col := range r.headerCols() {
		if val, ok := data[col]; ok {
			filtered[col] = val
		}
	}

	q := r.builder().
		Insert(salesOrdersTable).
		SetMap(filtered)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	querier := r.tm.GetQuerier(ctx)
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert sales order: %w", err)
	}

	return r.insertLines(ctx, order.ID, order.Lines)
}

func (r *SalesOrderRepo) insertLines(ctx context.Context, orderID id.ID, lines []orders.Line) error {
	if len(lines) == 0 {
		return nil
	}

	q := r.builder().
		Insert(salesOrderLinesTable).
		Columns("id", "order_id", "line_no", "product_id", "quantity", "unit_price", "amount")

	for _, line := range lines {
		q = q.Values(line.ID, orderID, line.LineNo, line.ProductID, line.Quantity, line.UnitPrice, line.Amount)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert lines: %w", err)
	}

	if _, err := r.tm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert sales order lines: %w", err)
	}

	return nil
}

// GetByID loads the header with its lines.
func (r *SalesOrderRepo) GetByID(ctx context.Context, orderID id.ID) (*sales.Order, error) {
	q := r.builder().
		Select(r.headerCols()...).
		From(salesOrdersTable).
		Where(squirrel.Eq{"id": orderID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	order := &sales.Order{}
	querier := r.tm.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, order, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("sales order", orderID.String())
		}
		return nil, fmt.Errorf("get sales order: %w", err)
	}

	lines, err := r.getLines(ctx, orderID)
	if err != nil {
		return nil, err
	}
	order.Lines = lines

	return order, nil
}

func (r *SalesOrderRepo) getLines(ctx context.Context, orderID id.ID) ([]orders.Line, error) {
	q := r.builder().
		Select("id", "order_id", "line_no", "product_id", "quantity", "unit_price", "amount").
		From(salesOrderLinesTable).
		Where(squirrel.Eq{"order_id": orderID}).
		OrderBy("line_no")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var lines []orders.Line
	if err := pgxscan.Select(ctx, r.tm.GetQuerier(ctx), &lines, sql, args...); err != nil {
		return nil, fmt.Errorf("get sales order lines: %w", err)
	}

	return lines, nil
}

// UpdateStatus moves the order between statuses. The write is conditional
// on the current status so racing transitions cannot both win.
func (r *SalesOrderRepo) UpdateStatus(ctx context.Context, orderID id.ID, from, to sales.Status) error {
	q := r.builder().
		Update(salesOrdersTable).
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
		return fmt.Errorf("update sales order status: %w", err)
	}

	if result.RowsAffected() == 0 {
		exists, err := r.exists(ctx, orderID)
		if err != nil {
			return err
		}
		if !exists {
			return apperror.NewNotFound("sales order", orderID.String())
		}
		return apperror.NewInvalidTransition("sales order", string(from), string(to))
	}

	return nil
}

func (r *SalesOrderRepo) exists(ctx context.Context, orderID id.ID) (bool, error) {
	var one int
	err := r.tm.GetQuerier(ctx).
		QueryRow(ctx, "SELECT 1 FROM "+salesOrdersTable+" WHERE id = $1", orderID).
		Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("sales order exists: %w", err)
	}
	return true, nil
}

// List returns headers matching the filter, newest order date first.
func (r *SalesOrderRepo) List(ctx context.Context, filter sales.Filter) (domain.ListResult[*sales.Order], error) {
	result := domain.ListResult[*sales.Order]{
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	q := r.builder().
		Select(r.headerCols()...).
		From(salesOrdersTable)

	if filter.Status != "" {
		q = q.Where(squirrel.Eq{"status": filter.Status})
	}
	if filter.CustomerID != nil {
		q = q.Where(squirrel.Eq{"customer_id": *filter.CustomerID})
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
		return result, fmt.Errorf("list sales orders: %w", err)
	}

	return result, nil
}
