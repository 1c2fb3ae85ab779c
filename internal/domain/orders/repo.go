package orders

import (
	"context"

	"retailhub/internal/core/id"
	"retailhub/internal/domain"
)

// ListFilter narrows order queries. Date bounds are canonical YYYY-MM-DD
// strings compared lexically, matching how orders store their business date.
type ListFilter struct {
	StoreID       *id.ID
	Channel       *Channel
	PaymentStatus *PaymentStatus
	DateFrom      string
	DateTo        string

	// Search matches number or customer name
	Search string

	IncludeDeleted bool

	OrderBy string
	Limit   int
	Offset  int
}

// DefaultListFilter returns order defaults: newest first.
func DefaultListFilter() ListFilter {
	return ListFilter{
		OrderBy: "-order_date",
		Limit:   50,
	}
}

// Repository defines storage operations for orders.
type Repository interface {
	// Create inserts the order and its items. Runs inside the ambient
	// transaction when one is present in ctx.
	Create(ctx context.Context, o *Order) error

	// GetByID retrieves an order with its items.
	GetByID(ctx context.Context, orderID id.ID) (*Order, error)

	// Update modifies the order header (optimistic locking on Version).
	// Items are immutable after creation.
	Update(ctx context.Context, o *Order) error

	// SetDeletionMark sets or clears the deletion mark.
	SetDeletionMark(ctx context.Context, orderID id.ID, marked bool) error

	// List retrieves orders with filtering and pagination.
	List(ctx context.Context, filter ListFilter) (domain.ListResult[*Order], error)
}
