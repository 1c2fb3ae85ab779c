package catalog_repo

import (
	"retailhub/internal/domain/catalogs/category"
	"retailhub/internal/infrastructure/storage/postgres"
)

// CategoryRepo is the PostgreSQL repository for the Category catalog.
type CategoryRepo struct {
	*BaseCatalogRepo[*category.Category]
}

var _ category.Repository = (*CategoryRepo)(nil)

// NewCategoryRepo creates a new category repository.
func NewCategoryRepo(txm *postgres.TxManager) *CategoryRepo {
	return &CategoryRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txm,
			"cat_categories",
			postgres.ExtractDBColumns[category.Category](),
			func() *category.Category { return &category.Category{} },
		),
	}
}
