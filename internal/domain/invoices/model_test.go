package invoices

import (
	"context"
	"testing"

	"retailhub/internal/core/entity"
	"retailhub/internal/core/id"
)

func newTestInvoice() *Invoice {
	return &Invoice{
		Document:     entity.NewDocument(id.New(), "Store A"),
		OrderID:      id.New(),
		OrderNumber:  "ORD-000001",
		CustomerName: "Dai ly X",
		TotalAmount:  5000,
		Status:       StatusIssued,
	}
}

func TestInvoiceOutstanding(t *testing.T) {
	inv := newTestInvoice()

	if got := inv.Outstanding(); got != 5000 {
		t.Errorf("Outstanding = %d, want 5000", got)
	}

	inv.PaidAmount = 3000
	if got := inv.Outstanding(); got != 2000 {
		t.Errorf("Outstanding = %d, want 2000", got)
	}
}

func TestInvoiceValidate(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		mutate  func(*Invoice)
		wantErr bool
	}{
		{"valid invoice", func(i *Invoice) {}, false},
		{"missing order", func(i *Invoice) { i.OrderID = id.ID{} }, true},
		{"negative total", func(i *Invoice) { i.TotalAmount = -1 }, true},
		{"unknown status", func(i *Invoice) { i.Status = "draft" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := newTestInvoice()
			tt.mutate(inv)

			err := inv.Validate(ctx)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
