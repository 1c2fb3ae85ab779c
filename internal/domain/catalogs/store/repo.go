package store

import (
	"context"

	"retailhub/internal/domain"
)

// Repository defines storage operations for the Store catalog.
type Repository interface {
	domain.CatalogRepository[*Store]

	// FindActive retrieves all active stores (for report warm-up and
	// cross-store aggregation).
	FindActive(ctx context.Context) ([]*Store, error)
}
