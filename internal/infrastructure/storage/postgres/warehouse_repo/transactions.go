// Package warehouse_repo provides the PostgreSQL repository for the stock
// ledger. Rows are append-only: there is no update or delete path.
package warehouse_repo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"retailhub/internal/core/apperror"
	"retailhub/internal/core/id"
	"retailhub/internal/domain"
	"retailhub/internal/domain/warehouse"
	"retailhub/internal/infrastructure/storage/postgres"
)

const ledgerTable = "doc_stock_transactions"

// TransactionRepo is the PostgreSQL repository for ledger rows.
type TransactionRepo struct {
	txm        *postgres.TxManager
	selectCols []string
}

var _ warehouse.Repository = (*TransactionRepo)(nil)

// NewTransactionRepo creates a new ledger repository.
func NewTransactionRepo(txm *postgres.TxManager) *TransactionRepo {
	return &TransactionRepo{
		txm:        txm,
		selectCols: postgres.ExtractDBColumns[warehouse.Transaction](),
	}
}

func (r *TransactionRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// Append inserts an immutable ledger row.
func (r *TransactionRepo) Append(ctx context.Context, t *warehouse.Transaction) error {
	data := postgres.StructToMap(t)
	rowData := make(map[string]any, len(r.selectCols))
	for _, col := range r.selectCols {
		if val, ok := data[col]; ok {
			rowData[col] = val
		}
	}

	sql, args, err := r.builder().
		Insert(ledgerTable).
		SetMap(rowData).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("append transaction: %w", err)
	}

	return nil
}

// GetByID retrieves one ledger row.
func (r *TransactionRepo) GetByID(ctx context.Context, txID id.ID) (*warehouse.Transaction, error) {
	t := &warehouse.Transaction{}

	sql, args, err := r.builder().
		Select(r.selectCols...).
		From(ledgerTable).
		Where(squirrel.Eq{"id": txID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), t, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound(ledgerTable, txID.String())
		}
		return nil, fmt.Errorf("get transaction: %w", err)
	}

	return t, nil
}

// List retrieves ledger rows with filtering and pagination.
func (r *TransactionRepo) List(ctx context.Context, f warehouse.ListFilter) (domain.ListResult[*warehouse.Transaction], error) {
	result := domain.ListResult[*warehouse.Transaction]{
		Limit:  f.Limit,
		Offset: f.Offset,
	}

	q := r.builder().
		Select(r.selectCols...).
		From(ledgerTable)

	if f.StoreID != nil {
		q = q.Where(squirrel.Eq{"store_id": *f.StoreID})
	}
	if f.ProductID != nil {
		q = q.Where(squirrel.Eq{"product_id": *f.ProductID})
	}
	if f.Type != nil {
		q = q.Where(squirrel.Eq{"type": *f.Type})
	}
	if f.From != nil {
		q = q.Where(squirrel.GtOrEq{"timestamp": *f.From})
	}
	if f.To != nil {
		q = q.Where(squirrel.LtOrEq{"timestamp": *f.To})
	}

	countSQL, countArgs, err := r.builder().
		Select("COUNT(*)").
		FromSelect(q, "sub").
		ToSql()
	if err != nil {
		return result, fmt.Errorf("build count query: %w", err)
	}

	querier := r.txm.GetQuerier(ctx)
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&result.TotalCount); err != nil {
		return result, fmt.Errorf("count transactions: %w", err)
	}

	orderBy, err := r.parseOrderBy(f.OrderBy)
	if err != nil {
		return result, err
	}
	q = q.OrderBy(orderBy)

	if f.Limit > 0 {
		q = q.Limit(uint64(f.Limit))
	}
	if f.Offset > 0 {
		q = q.Offset(uint64(f.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return result, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Select(ctx, querier, &result.Items, sql, args...); err != nil {
		return result, fmt.Errorf("list transactions: %w", err)
	}

	return result, nil
}

// FindByProduct retrieves the most recent rows for one product.
func (r *TransactionRepo) FindByProduct(ctx context.Context, productID id.ID, limit int) ([]*warehouse.Transaction, error) {
	q := r.builder().
		Select(r.selectCols...).
		From(ledgerTable).
		Where(squirrel.Eq{"product_id": productID}).
		OrderBy("timestamp DESC")

	if limit > 0 {
		q = q.Limit(uint64(limit))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []*warehouse.Transaction
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("find by product: %w", err)
	}
	return items, nil
}

// FindForPeriod retrieves in-period rows plus rows whose timestamp never
// parsed (zero timestamp, raw value preserved) so reconciliation can
// report them as warnings.
func (r *TransactionRepo) FindForPeriod(ctx context.Context, storeID *id.ID, from, to time.Time) ([]*warehouse.Transaction, error) {
	q := r.builder().
		Select(r.selectCols...).
		From(ledgerTable).
		Where(squirrel.Or{
			squirrel.And{
				squirrel.GtOrEq{"timestamp": from},
				squirrel.LtOrEq{"timestamp": to},
			},
			squirrel.Eq{"timestamp": time.Time{}},
		}).
		OrderBy("timestamp ASC")

	if storeID != nil {
		q = q.Where(squirrel.Eq{"store_id": *storeID})
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []*warehouse.Transaction
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("find for period: %w", err)
	}
	return items, nil
}

func (r *TransactionRepo) parseOrderBy(orderBy string) (string, error) {
	allowed := make(map[string]struct{}, len(r.selectCols))
	for _, col := range r.selectCols {
		allowed[col] = struct{}{}
	}

	if orderBy == "" {
		return "timestamp DESC", nil
	}

	direction := "ASC"
	field := strings.TrimPrefix(orderBy, "+")
	if strings.HasPrefix(orderBy, "-") {
		direction = "DESC"
		field = strings.TrimPrefix(orderBy, "-")
	}

	if _, ok := allowed[field]; !ok {
		return "", apperror.NewValidation("invalid orderBy").
			WithDetail("orderBy", orderBy)
	}

	return field + " " + direction, nil
}
