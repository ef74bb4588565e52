package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"stockyard/internal/core/apperror"
	"stockyard/internal/core/id"
	"stockyard/internal/domain/catalogs/product"
	"stockyard/internal/domain/inventory"
)

// InventoryRepo implements inventory.Repository over the products table and
// the append-only inventory_transactions ledger.
type InventoryRepo struct {
	tm *TxManager
}

var _ inventory.Repository = (*InventoryRepo)(nil)

// NewInventoryRepo creates the inventory repository.
func NewInventoryRepo(tm *TxManager) *InventoryRepo {
	return &InventoryRepo{tm: tm}
}

func (r *InventoryRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// GetStockForUpdate reads current stock holding the row lock until the
// surrounding transaction ends.
func (r *InventoryRepo) GetStockForUpdate(ctx context.Context, productID id.ID) (int64, error) {
	q := r.builder().
		Select("current_stock").
		From("products").
		Where(squirrel.Eq{"id": productID}).
		Suffix("FOR UPDATE")

	sql, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}

	var stock int64
	err = r.tm.GetQuerier(ctx).QueryRow(ctx, sql, args...).Scan(&stock)
	if err == pgx.ErrNoRows {
		return 0, apperror.NewNotFound("product", productID.String())
	}
	if err != nil {
		return 0, fmt.Errorf("get stock for update: %w", err)
	}

	return stock, nil
}

// SetStock writes the stock level for a product.
func (r *InventoryRepo) SetStock(ctx context.Context, productID id.ID, quantity int64) error {
	q := r.builder().
		Update("products").
		Set("current_stock", quantity).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": productID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.tm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("set stock: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("product", productID.String())
	}

	return nil
}

// AppendTransaction inserts a ledger entry.
func (r *InventoryRepo) AppendTransaction(ctx context.Context, t *inventory.Transaction) error {
	q := r.builder().
		Insert("inventory_transactions").
		SetMap(StructToMap(t))

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.tm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert inventory transaction: %w", err)
	}

	return nil
}

// ListTransactions returns ledger entries newest first with product info.
func (r *InventoryRepo) ListTransactions(ctx context.Context, filter inventory.TransactionFilter) ([]inventory.TransactionView, error) {
	q := r.builder().
		Select(
			"t.id", "t.product_id", "t.transaction_type",
			"t.quantity_change", "t.quantity_before", "t.quantity_after",
			"t.notes", "t.created_at",
			"p.code AS product_code", "p.name AS product_name",
		).
		From("inventory_transactions t").
		Join("products p ON p.id = t.product_id").
		OrderBy("t.created_at DESC", "t.id DESC")

	if filter.ProductID != nil {
		q = q.Where(squirrel.Eq{"t.product_id": *filter.ProductID})
	}
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var views []inventory.TransactionView
	if err := pgxscan.Select(ctx, r.tm.GetQuerier(ctx), &views, sql, args...); err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}

	return views, nil
}

// ListOutOfRange returns products whose stock sits outside the configured
// thresholds. Ordering is applied by the service after alert evaluation.
func (r *InventoryRepo) ListOutOfRange(ctx context.Context) ([]*product.Product, error) {
	q := r.builder().
		Select(ExtractDBColumns[product.Product]()...).
		From("products").
		Where(squirrel.Or{
			squirrel.Expr("current_stock < min_stock_level"),
			squirrel.Expr("current_stock > max_stock_level"),
		})

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var products []*product.Product
	if err := pgxscan.Select(ctx, r.tm.GetQuerier(ctx), &products, sql, args...); err != nil {
		return nil, fmt.Errorf("list out of range: %w", err)
	}

	return products, nil
}
