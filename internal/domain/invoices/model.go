// Package invoices provides customer invoices issued against orders.
// Invoice numbers are gapless (strict numbering) for accounting.
package invoices

import (
	"context"

	"retailhub/internal/core/apperror"
	"retailhub/internal/core/entity"
	"retailhub/internal/core/id"
	"retailhub/internal/core/types"
)

// Status is the invoice lifecycle state.
type Status string

const (
	StatusIssued Status = "issued"
	StatusPaid   Status = "paid"
	StatusVoided Status = "voided"
)

// Invoice is a billing document issued for one order.
type Invoice struct {
	entity.Document

	OrderID     id.ID  `db:"order_id" json:"orderId"`
	OrderNumber string `db:"order_number" json:"orderNumber"`

	CustomerName string `db:"customer_name" json:"customerName"`

	TotalAmount types.MinorUnits `db:"total_amount" json:"totalAmount"`
	PaidAmount  types.MinorUnits `db:"paid_amount" json:"paidAmount"`

	Status Status `db:"status" json:"status"`
}

// Outstanding returns the unpaid balance.
func (i *Invoice) Outstanding() types.MinorUnits {
	return i.TotalAmount - i.PaidAmount
}

// Validate implements entity.Validatable.
func (i *Invoice) Validate(ctx context.Context) error {
	if err := i.Document.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(i.OrderID) {
		return apperror.NewValidation("order is required").
			WithDetail("field", "orderId")
	}

	if i.TotalAmount < 0 {
		return apperror.NewValidation("total must not be negative").
			WithDetail("field", "totalAmount")
	}

	switch i.Status {
	case StatusIssued, StatusPaid, StatusVoided:
	default:
		return apperror.NewValidation("unknown invoice status").
			WithDetail("field", "status").
			WithDetail("value", string(i.Status))
	}

	return nil
}
