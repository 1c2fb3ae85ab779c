package catalog_repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"retailhub/internal/core/apperror"
	"retailhub/internal/core/id"
	"retailhub/internal/core/types"
	"retailhub/internal/domain/catalogs/product"
	"retailhub/internal/infrastructure/storage/postgres"
)

// ProductRepo is the PostgreSQL repository for the Product catalog.
type ProductRepo struct {
	*BaseCatalogRepo[*product.Product]
	txm *postgres.TxManager
}

var _ product.Repository = (*ProductRepo)(nil)

// NewProductRepo creates a new product repository.
func NewProductRepo(txm *postgres.TxManager) *ProductRepo {
	return &ProductRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txm,
			"cat_products",
			postgres.ExtractDBColumns[product.Product](),
			func() *product.Product { return &product.Product{} },
		),
		txm: txm,
	}
}

// GetBySKU retrieves a non-deleted product by SKU.
func (r *ProductRepo) GetBySKU(ctx context.Context, sku string) (*product.Product, error) {
	p := &product.Product{}

	sql, args, err := r.Builder().
		Select(postgres.ExtractDBColumns[product.Product]()...).
		From("cat_products").
		Where(squirrel.Eq{"sku": sku}).
		Where(squirrel.Eq{"deletion_mark": false}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), p, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("cat_products", sku)
		}
		return nil, fmt.Errorf("get by sku: %w", err)
	}

	return p, nil
}

// AdjustStock atomically changes the stock level by delta and returns the
// resulting quantity. The CHECK-style guard is in the WHERE clause: a
// decrement that would go negative affects zero rows.
func (r *ProductRepo) AdjustStock(ctx context.Context, productID id.ID, delta types.Quantity) (types.Quantity, error) {
	q := r.Builder().
		Update("cat_products").
		Set("stock", squirrel.Expr("stock + ?", delta.Int64Scaled())).
		Where(squirrel.Eq{"id": productID}).
		Suffix("RETURNING stock")

	if delta.IsNegative() {
		q = q.Where(squirrel.Expr("stock + ? >= 0", delta.Int64Scaled()))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build adjust stock: %w", err)
	}

	var newStock int64
	err = r.txm.GetQuerier(ctx).QueryRow(ctx, sql, args...).Scan(&newStock)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Either the product is gone or the decrement would go negative.
			current, getErr := r.currentStock(ctx, productID)
			if getErr != nil {
				return 0, getErr
			}
			return 0, apperror.NewInsufficientStock(
				productID.String(),
				delta.Abs().Float64(),
				current.Float64(),
			)
		}
		return 0, fmt.Errorf("adjust stock: %w", err)
	}

	return types.Quantity(newStock), nil
}

func (r *ProductRepo) currentStock(ctx context.Context, productID id.ID) (types.Quantity, error) {
	sql, args, err := r.Builder().
		Select("stock").
		From("cat_products").
		Where(squirrel.Eq{"id": productID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}

	var stock int64
	if err := r.txm.GetQuerier(ctx).QueryRow(ctx, sql, args...).Scan(&stock); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperror.NewNotFound("cat_products", productID.String())
		}
		return 0, fmt.Errorf("current stock: %w", err)
	}
	return types.Quantity(stock), nil
}

// FindLowStock retrieves non-deleted products below their minimum stock.
func (r *ProductRepo) FindLowStock(ctx context.Context) ([]*product.Product, error) {
	q := r.Builder().
		Select(postgres.ExtractDBColumns[product.Product]()...).
		From("cat_products").
		Where(squirrel.Expr("min_stock > 0 AND stock < min_stock")).
		Where(squirrel.Eq{"deletion_mark": false}).
		OrderBy("name ASC")

	return r.FindMany(ctx, q)
}
