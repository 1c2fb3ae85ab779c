package warehouse

import (
	"context"
	"time"

	"retailhub/internal/core/id"
	"retailhub/internal/domain"
)

// ListFilter narrows ledger queries.
type ListFilter struct {
	StoreID   *id.ID
	ProductID *id.ID
	Type      *TxType
	From      *time.Time
	To        *time.Time

	OrderBy string
	Limit   int
	Offset  int
}

// DefaultListFilter returns ledger defaults: newest first.
func DefaultListFilter() ListFilter {
	return ListFilter{
		OrderBy: "-timestamp",
		Limit:   100,
	}
}

// Repository defines storage operations for the stock ledger.
type Repository interface {
	// Append inserts an immutable ledger row. Runs inside the ambient
	// transaction when one is present in ctx.
	Append(ctx context.Context, t *Transaction) error

	// GetByID retrieves one ledger row.
	GetByID(ctx context.Context, txID id.ID) (*Transaction, error)

	// List retrieves ledger rows with filtering and pagination.
	List(ctx context.Context, filter ListFilter) (domain.ListResult[*Transaction], error)

	// FindByProduct retrieves the most recent rows for one product,
	// newest first, limited to limit rows (0 = no limit).
	FindByProduct(ctx context.Context, productID id.ID, limit int) ([]*Transaction, error)

	// FindForPeriod retrieves rows for a store (nil = all stores) whose
	// timestamp falls in [from, to], plus rows with unparseable timestamps
	// so reconciliation can report them.
	FindForPeriod(ctx context.Context, storeID *id.ID, from, to time.Time) ([]*Transaction, error)
}
