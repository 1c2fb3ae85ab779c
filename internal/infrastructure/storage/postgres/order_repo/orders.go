// Package order_repo provides the PostgreSQL repository for orders.
package order_repo

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"retailhub/internal/core/apperror"
	"retailhub/internal/core/id"
	"retailhub/internal/domain"
	"retailhub/internal/domain/orders"
	"retailhub/internal/infrastructure/storage/postgres"
)

const (
	ordersTable = "doc_orders"
	itemsTable  = "doc_order_items"
)

// OrderRepo is the PostgreSQL repository for order documents.
type OrderRepo struct {
	txm        *postgres.TxManager
	selectCols []string
	itemCols   []string
}

var _ orders.Repository = (*OrderRepo)(nil)

// NewOrderRepo creates a new order repository.
func NewOrderRepo(txm *postgres.TxManager) *OrderRepo {
	return &OrderRepo{
		txm:        txm,
		selectCols: postgres.ExtractDBColumns[orders.Order](),
		itemCols:   postgres.ExtractDBColumns[orders.Item](),
	}
}

func (r *OrderRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// Create inserts the order header and its item rows.
func (r *OrderRepo) Create(ctx context.Context, o *orders.Order) error {
	data := postgres.StructToMap(o)
	headerData := make(map[string]any, len(r.selectCols))
	for _, col := range r.selectCols {
		if val, ok := data[col]; ok {
			headerData[col] = val
		}
	}

	sql, args, err := r.builder().
		Insert(ordersTable).
		SetMap(headerData).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	querier := r.txm.GetQuerier(ctx)
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for _, it := range o.Items {
		itemData := postgres.StructToMap(it)
		itemData["order_id"] = o.ID

		sql, args, err := r.builder().
			Insert(itemsTable).
			SetMap(itemData).
			ToSql()
		if err != nil {
			return fmt.Errorf("build item insert: %w", err)
		}
		if _, err := querier.Exec(ctx, sql, args...); err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}

	return nil
}

// GetByID retrieves an order with its items.
func (r *OrderRepo) GetByID(ctx context.Context, orderID id.ID) (*orders.Order, error) {
	o := &orders.Order{}

	sql, args, err := r.builder().
		Select(r.selectCols...).
		From(ordersTable).
		Where(squirrel.Eq{"id": orderID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	querier := r.txm.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, o, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound(ordersTable, orderID.String())
		}
		return nil, fmt.Errorf("get order: %w", err)
	}

	if err := r.loadItems(ctx, o); err != nil {
		return nil, err
	}

	return o, nil
}

func (r *OrderRepo) loadItems(ctx context.Context, o *orders.Order) error {
	sql, args, err := r.builder().
		Select(r.itemCols...).
		From(itemsTable).
		Where(squirrel.Eq{"order_id": o.ID}).
		OrderBy("line_no ASC").
		ToSql()
	if err != nil {
		return fmt.Errorf("build items query: %w", err)
	}

	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &o.Items, sql, args...); err != nil {
		return fmt.Errorf("load order items: %w", err)
	}
	return nil
}

// Update modifies the order header with optimistic locking. Items are
// immutable after creation.
func (r *OrderRepo) Update(ctx context.Context, o *orders.Order) error {
	data := postgres.StructToMap(o)

	headerData := make(map[string]any, len(r.selectCols))
	for _, col := range r.selectCols {
		if col == "id" || col == "version" {
			continue
		}
		if val, ok := data[col]; ok {
			headerData[col] = val
		}
	}

	sql, args, err := r.builder().
		Update(ordersTable).
		SetMap(headerData).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"id": o.ID}).
		Where(squirrel.Eq{"version": o.Version}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewConcurrentModification(ordersTable, o.ID.String())
	}

	return nil
}

// SetDeletionMark sets or clears the deletion mark.
func (r *OrderRepo) SetDeletionMark(ctx context.Context, orderID id.ID, marked bool) error {
	sql, args, err := r.builder().
		Update(ordersTable).
		Set("deletion_mark", marked).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"id": orderID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build set deletion mark: %w", err)
	}

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("set deletion mark: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound(ordersTable, orderID.String())
	}

	return nil
}

// List retrieves orders with filtering and pagination. Items are not
// loaded for list views.
func (r *OrderRepo) List(ctx context.Context, f orders.ListFilter) (domain.ListResult[*orders.Order], error) {
	result := domain.ListResult[*orders.Order]{
		Limit:  f.Limit,
		Offset: f.Offset,
	}

	q := r.builder().
		Select(r.selectCols...).
		From(ordersTable)

	if !f.IncludeDeleted {
		q = q.Where(squirrel.Eq{"deletion_mark": false})
	}
	if f.StoreID != nil {
		q = q.Where(squirrel.Eq{"store_id": *f.StoreID})
	}
	if f.Channel != nil {
		q = q.Where(squirrel.Eq{"channel": *f.Channel})
	}
	if f.PaymentStatus != nil {
		q = q.Where(squirrel.Eq{"payment_status": *f.PaymentStatus})
	}
	if f.DateFrom != "" {
		q = q.Where(squirrel.GtOrEq{"order_date": f.DateFrom})
	}
	if f.DateTo != "" {
		q = q.Where(squirrel.LtOrEq{"order_date": f.DateTo})
	}
	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"number": pattern},
			squirrel.ILike{"customer_name": pattern},
		})
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
		return result, fmt.Errorf("count orders: %w", err)
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
		return result, fmt.Errorf("list orders: %w", err)
	}

	return result, nil
}

func (r *OrderRepo) parseOrderBy(orderBy string) (string, error) {
	allowed := make(map[string]struct{}, len(r.selectCols))
	for _, col := range r.selectCols {
		allowed[col] = struct{}{}
	}

	if orderBy == "" {
		return "order_date DESC", nil
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
