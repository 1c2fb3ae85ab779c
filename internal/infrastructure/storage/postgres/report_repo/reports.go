// Package report_repo provides the bulk snapshot reads that feed the
// reporting core.
package report_repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgconn"

	"retailhub/internal/core/id"
	"retailhub/internal/core/types"
	"retailhub/internal/domain/orders"
	"retailhub/internal/domain/reports"
	"retailhub/internal/domain/warehouse"
	"retailhub/internal/infrastructure/storage/postgres"
	"retailhub/pkg/logger"
)

const (
	ordersTable      = "doc_orders"
	itemsTable       = "doc_order_items"
	legacyTable      = "legacy_store_orders"
	legacyItemsTable = "legacy_store_order_items"
)

// ReportRepo reads report snapshots. Each Fetch* call is one bulk read;
// the pure aggregation core never sees the database.
type ReportRepo struct {
	txm *postgres.TxManager
}

var _ reports.Repository = (*ReportRepo)(nil)

// NewReportRepo creates a new report repository.
func NewReportRepo(txm *postgres.TxManager) *ReportRepo {
	return &ReportRepo{txm: txm}
}

func (r *ReportRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// FetchOrders reads all non-deleted orders for a store (nil = all stores),
// merging the current doc_orders table with legacy_store_orders, the table
// kept verbatim from the pre-migration schema. Orders present in both are
// deduplicated by number, preferring the current row.
func (r *ReportRepo) FetchOrders(ctx context.Context, storeID *id.ID) ([]*orders.Order, error) {
	cols := postgres.ExtractDBColumns[orders.Order]()

	current, err := r.fetchOrdersFrom(ctx, ordersTable, cols, storeID)
	if err != nil {
		return nil, err
	}
	if err := r.attachItems(ctx, itemsTable, current); err != nil {
		return nil, err
	}

	legacy, err := r.fetchOrdersFrom(ctx, legacyTable, cols, storeID)
	switch {
	case err == nil:
		if err := r.attachItems(ctx, legacyItemsTable, legacy); err != nil && !isUndefinedTable(err) {
			return nil, err
		}
	case isUndefinedTable(err):
		// The legacy table only exists on migrated installs.
		logger.Warn(ctx, "legacy order table not present", "table", legacyTable)
		legacy = nil
	default:
		return nil, err
	}

	seen := make(map[string]struct{}, len(current))
	merged := make([]*orders.Order, 0, len(current)+len(legacy))
	for _, o := range current {
		if o.Number != "" {
			seen[o.Number] = struct{}{}
		}
		merged = append(merged, o)
	}
	for _, o := range legacy {
		if o.Number != "" {
			if _, dup := seen[o.Number]; dup {
				continue
			}
		}
		merged = append(merged, o)
	}

	return merged, nil
}

func (r *ReportRepo) fetchOrdersFrom(ctx context.Context, table string, cols []string, storeID *id.ID) ([]*orders.Order, error) {
	q := r.builder().
		Select(cols...).
		From(table).
		Where(squirrel.Eq{"deletion_mark": false})

	if storeID != nil {
		q = q.Where(squirrel.Eq{"store_id": *storeID})
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []*orders.Order
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("fetch orders from %s: %w", table, err)
	}
	return items, nil
}

// attachItems bulk-loads the item rows for every order in orderList and
// attaches them by order id. The byProduct breakdown depends on items being
// present on every order a report sees.
func (r *ReportRepo) attachItems(ctx context.Context, table string, orderList []*orders.Order) error {
	if len(orderList) == 0 {
		return nil
	}

	ids := make([]id.ID, 0, len(orderList))
	byID := make(map[id.ID]*orders.Order, len(orderList))
	for _, o := range orderList {
		ids = append(ids, o.ID)
		byID[o.ID] = o
	}

	cols := append(postgres.ExtractDBColumns[orders.Item](), "order_id")
	sql, args, err := r.builder().
		Select(cols...).
		From(table).
		Where(squirrel.Eq{"order_id": ids}).
		OrderBy("order_id", "line_no ASC").
		ToSql()
	if err != nil {
		return fmt.Errorf("build items query: %w", err)
	}

	type itemRow struct {
		orders.Item
		OrderID id.ID `db:"order_id"`
	}

	var rows []itemRow
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &rows, sql, args...); err != nil {
		return fmt.Errorf("fetch order items from %s: %w", table, err)
	}

	for _, rw := range rows {
		if o, ok := byID[rw.OrderID]; ok {
			o.Items = append(o.Items, rw.Item)
		}
	}
	return nil
}

// isUndefinedTable reports whether err is PostgreSQL undefined_table
// (42P01). Any other error, transient connection failures included, must
// propagate instead of silently dropping rows from a report.
func isUndefinedTable(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "42P01"
}

// FetchTransactions reads ledger rows for a store (nil = all stores),
// newest first, capped to limit rows. A capped read cannot reconstruct
// beginning stock for periods older than the cap window.
func (r *ReportRepo) FetchTransactions(ctx context.Context, storeID *id.ID, limit int) ([]*warehouse.Transaction, error) {
	q := r.builder().
		Select(postgres.ExtractDBColumns[warehouse.Transaction]()...).
		From("doc_stock_transactions").
		OrderBy("timestamp DESC")

	if storeID != nil {
		q = q.Where(squirrel.Eq{"store_id": *storeID})
	}
	if limit > 0 {
		q = q.Limit(uint64(limit))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []*warehouse.Transaction
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("fetch transactions: %w", err)
	}
	return items, nil
}

// FetchCurrentStock reads the current stock snapshot for all non-deleted
// products, keyed by product ID.
func (r *ReportRepo) FetchCurrentStock(ctx context.Context) (map[string]reports.StockSnapshot, error) {
	sql, args, err := r.builder().
		Select("id", "name", "sku", "stock").
		From("cat_products").
		Where(squirrel.Eq{"deletion_mark": false}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	type row struct {
		ID    id.ID  `db:"id"`
		Name  string `db:"name"`
		SKU   string `db:"sku"`
		Stock int64  `db:"stock"`
	}

	var rows []row
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("fetch current stock: %w", err)
	}

	snapshot := make(map[string]reports.StockSnapshot, len(rows))
	for _, rw := range rows {
		snapshot[rw.ID.String()] = reports.StockSnapshot{
			ProductName: rw.Name,
			SKU:         rw.SKU,
			Stock:       types.Quantity(rw.Stock).Float64(),
		}
	}

	return snapshot, nil
}
