package catalog_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"retailhub/internal/domain/catalogs/store"
	"retailhub/internal/infrastructure/storage/postgres"
)

// StoreRepo is the PostgreSQL repository for the Store catalog.
type StoreRepo struct {
	*BaseCatalogRepo[*store.Store]
}

var _ store.Repository = (*StoreRepo)(nil)

// NewStoreRepo creates a new store repository.
func NewStoreRepo(txm *postgres.TxManager) *StoreRepo {
	return &StoreRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txm,
			"cat_stores",
			postgres.ExtractDBColumns[store.Store](),
			func() *store.Store { return &store.Store{} },
		),
	}
}

// FindActive retrieves all active, non-deleted stores.
func (r *StoreRepo) FindActive(ctx context.Context) ([]*store.Store, error) {
	q := r.Builder().
		Select(postgres.ExtractDBColumns[store.Store]()...).
		From("cat_stores").
		Where(squirrel.Eq{"status": store.StatusActive}).
		Where(squirrel.Eq{"deletion_mark": false}).
		OrderBy("name ASC")

	return r.FindMany(ctx, q)
}
