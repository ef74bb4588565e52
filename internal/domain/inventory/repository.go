package inventory

import (
	"context"

	"stockyard/internal/core/id"
	"stockyard/internal/domain/catalogs/product"
)

// Repository is the storage contract for stock levels and the ledger.
type Repository interface {
	// GetStockForUpdate reads current stock holding a row lock for the rest
	// of the transaction. Returns NOT_FOUND when the product is absent.
	GetStockForUpdate(ctx context.Context, productID id.ID) (int64, error)

	// SetStock writes the product's stock level. Must run in the same
	// transaction as the preceding GetStockForUpdate.
	SetStock(ctx context.Context, productID id.ID, quantity int64) error

	// AppendTransaction inserts a ledger entry. Entries are never updated
	// or deleted.
	AppendTransaction(ctx context.Context, t *Transaction) error

	// ListTransactions returns ledger entries newest first, joined with
	// product code and name.
	ListTransactions(ctx context.Context, filter TransactionFilter) ([]TransactionView, error)

	// ListOutOfRange returns products whose stock is below min or above max.
	ListOutOfRange(ctx context.Context) ([]*product.Product, error)
}
