package product

import (
	"context"

	"retailhub/internal/core/id"
	"retailhub/internal/core/types"
	"retailhub/internal/domain"
)

// Repository defines storage operations for the Product catalog.
type Repository interface {
	domain.CatalogRepository[*Product]

	// GetBySKU retrieves a product by SKU.
	GetBySKU(ctx context.Context, sku string) (*Product, error)

	// AdjustStock atomically changes the stock level by delta (positive or
	// negative) and returns the resulting quantity. Runs inside the ambient
	// transaction when one is present in ctx.
	AdjustStock(ctx context.Context, productID id.ID, delta types.Quantity) (types.Quantity, error)

	// FindLowStock retrieves products whose stock fell below min_stock.
	FindLowStock(ctx context.Context) ([]*Product, error)
}
