// Package invoice_repo provides the PostgreSQL repository for invoices.
package invoice_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"retailhub/internal/core/apperror"
	"retailhub/internal/core/id"
	"retailhub/internal/domain"
	"retailhub/internal/domain/invoices"
	"retailhub/internal/infrastructure/storage/postgres"
)

const invoicesTable = "doc_invoices"

// InvoiceRepo is the PostgreSQL repository for invoices.
type InvoiceRepo struct {
	txm        *postgres.TxManager
	selectCols []string
}

var _ invoices.Repository = (*InvoiceRepo)(nil)

// NewInvoiceRepo creates a new invoice repository.
func NewInvoiceRepo(txm *postgres.TxManager) *InvoiceRepo {
	return &InvoiceRepo{
		txm:        txm,
		selectCols: postgres.ExtractDBColumns[invoices.Invoice](),
	}
}

func (r *InvoiceRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// Create inserts a new invoice.
func (r *InvoiceRepo) Create(ctx context.Context, inv *invoices.Invoice) error {
	data := postgres.StructToMap(inv)
	rowData := make(map[string]any, len(r.selectCols))
	for _, col := range r.selectCols {
		if val, ok := data[col]; ok {
			rowData[col] = val
		}
	}

	sql, args, err := r.builder().
		Insert(invoicesTable).
		SetMap(rowData).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert invoice: %w", err)
	}

	return nil
}

// GetByID retrieves an invoice by ID.
func (r *InvoiceRepo) GetByID(ctx context.Context, invoiceID id.ID) (*invoices.Invoice, error) {
	return r.getWhere(ctx, squirrel.Eq{"id": invoiceID}, invoiceID.String())
}

// GetByOrderID retrieves the invoice issued for an order.
func (r *InvoiceRepo) GetByOrderID(ctx context.Context, orderID id.ID) (*invoices.Invoice, error) {
	return r.getWhere(ctx, squirrel.Eq{"order_id": orderID}, orderID.String())
}

func (r *InvoiceRepo) getWhere(ctx context.Context, cond squirrel.Sqlizer, key string) (*invoices.Invoice, error) {
	inv := &invoices.Invoice{}

	sql, args, err := r.builder().
		Select(r.selectCols...).
		From(invoicesTable).
		Where(cond).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), inv, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound(invoicesTable, key)
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}

	return inv, nil
}

// Update modifies an invoice with optimistic locking.
func (r *InvoiceRepo) Update(ctx context.Context, inv *invoices.Invoice) error {
	data := postgres.StructToMap(inv)

	rowData := make(map[string]any, len(r.selectCols))
	for _, col := range r.selectCols {
		if col == "id" || col == "version" {
			continue
		}
		if val, ok := data[col]; ok {
			rowData[col] = val
		}
	}

	sql, args, err := r.builder().
		Update(invoicesTable).
		SetMap(rowData).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"id": inv.ID}).
		Where(squirrel.Eq{"version": inv.Version}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update invoice: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewConcurrentModification(invoicesTable, inv.ID.String())
	}

	return nil
}

// List retrieves invoices with filtering and pagination.
func (r *InvoiceRepo) List(ctx context.Context, f invoices.ListFilter) (domain.ListResult[*invoices.Invoice], error) {
	result := domain.ListResult[*invoices.Invoice]{
		Limit:  f.Limit,
		Offset: f.Offset,
	}

	q := r.builder().
		Select(r.selectCols...).
		From(invoicesTable)

	if f.StoreID != nil {
		q = q.Where(squirrel.Eq{"store_id": *f.StoreID})
	}
	if f.OrderID != nil {
		q = q.Where(squirrel.Eq{"order_id": *f.OrderID})
	}
	if f.Status != nil {
		q = q.Where(squirrel.Eq{"status": *f.Status})
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
		return result, fmt.Errorf("count invoices: %w", err)
	}

	q = q.OrderBy("date DESC")
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
		return result, fmt.Errorf("list invoices: %w", err)
	}

	return result, nil
}
