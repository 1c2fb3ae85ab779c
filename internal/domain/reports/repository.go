package reports

import (
	"context"

	"retailhub/internal/core/id"
	"retailhub/internal/domain/orders"
	"retailhub/internal/domain/warehouse"
)

// Repository is the bulk-read interface reports are built from. One report
// generation performs one snapshot read per collection; the pure core never
// sees storage.
type Repository interface {
	// FetchOrders reads all orders for a store (nil = all stores),
	// transparently merging the current orders table with the legacy
	// store_orders table kept from the pre-migration schema.
	FetchOrders(ctx context.Context, storeID *id.ID) ([]*orders.Order, error)

	// FetchTransactions reads ledger rows for a store (nil = all stores),
	// newest first, capped to limit rows (0 = no cap). A capped read can
	// under-compute beginning stock for old periods; callers wanting exact
	// historical reconciliation must pass 0.
	FetchTransactions(ctx context.Context, storeID *id.ID, limit int) ([]*warehouse.Transaction, error)

	// FetchCurrentStock reads the current stock snapshot for all products,
	// keyed by product ID.
	FetchCurrentStock(ctx context.Context) (map[string]StockSnapshot, error)
}
