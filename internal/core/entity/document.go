package entity

import (
	"context"
	"time"

	"retailhub/internal/core/apperror"
	"retailhub/internal/core/id"
)

// Document is the base type for business transactions.
// Examples: Order, Invoice, WarehouseTransaction.
type Document struct {
	BaseDocument

	// Number is the document number (auto-generated, unique within type+period)
	Number string `db:"number" json:"number"`

	// Date is the business date of the document
	Date time.Time `db:"date" json:"date"`

	// StoreID is the owning store. Documents are never transferred
	// between stores after creation.
	StoreID id.ID `db:"store_id" json:"storeId"`

	// StoreName is denormalized for reporting (snapshot at creation time)
	StoreName string `db:"store_name" json:"storeName"`

	// Comment is an optional user comment
	Comment string `db:"comment" json:"comment,omitempty"`
}

// NewDocument creates a new Document owned by a store.
func NewDocument(storeID id.ID, storeName string) Document {
	return Document{
		BaseDocument: NewBaseDocument(),
		Date:         time.Now().UTC(),
		StoreID:      storeID,
		StoreName:    storeName,
	}
}

// Validate implements Validatable interface.
func (d *Document) Validate(ctx context.Context) error {
	if id.IsNil(d.StoreID) {
		return apperror.NewValidation("store is required").
			WithDetail("field", "storeId")
	}

	if d.Date.IsZero() {
		return apperror.NewValidation("date is required").
			WithDetail("field", "date")
	}

	return nil
}

// IsBackdated checks if document date is in the past.
func (d *Document) IsBackdated() bool {
	return d.Date.Before(time.Now().UTC().Truncate(24 * time.Hour))
}
