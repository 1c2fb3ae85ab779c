package orders

import (
	"testing"
)

func TestFromLegacyMap_AliasResolution(t *testing.T) {
	m := map[string]any{
		"orderCode":    "WS-2024-00042",
		"date":         "2024/01/05",
		"total":        150000,
		"shipping":     5000,
		"storeName":    "Store A",
		"customerName": "Dai ly X",
	}

	o := FromLegacyMap(m)

	if o.Number != "WS-2024-00042" {
		t.Errorf("Number = %q", o.Number)
	}
	if o.OrderDate != "2024-01-05" {
		t.Errorf("OrderDate = %q, want 2024-01-05", o.OrderDate)
	}
	if o.TotalAmount != 150000 {
		t.Errorf("TotalAmount = %d", o.TotalAmount)
	}
	if o.ShippingFee != 5000 {
		t.Errorf("ShippingFee = %d", o.ShippingFee)
	}
}

func TestFromLegacyMap_CanonicalNamesWin(t *testing.T) {
	m := map[string]any{
		"code":        "ORD-1",
		"orderCode":   "LEGACY-1",
		"totalAmount": 200,
		"total":       999,
	}

	o := FromLegacyMap(m)

	if o.Number != "ORD-1" {
		t.Errorf("Number = %q, want ORD-1", o.Number)
	}
	if o.TotalAmount != 200 {
		t.Errorf("TotalAmount = %d, want 200", o.TotalAmount)
	}
}

func TestFromLegacyMap_Dates(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"canonical passes through", "2024-03-15", "2024-03-15"},
		{"slash separated", "2024/03/15", "2024-03-15"},
		{"iso datetime", "2024-03-15T10:30:00Z", "2024-03-15"},
		{"garbage becomes empty", "not-a-date", ""},
		{"nil becomes empty", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := FromLegacyMap(map[string]any{"orderDate": tt.in})
			if o.OrderDate != tt.want {
				t.Errorf("OrderDate = %q, want %q", o.OrderDate, tt.want)
			}
		})
	}
}

func TestFromLegacyMap_NumericStrings(t *testing.T) {
	// Legacy records store amounts as strings half the time.
	m := map[string]any{
		"totalAmount": "120000",
		"totalCost":   "80000",
		"discount":    "1000",
	}

	o := FromLegacyMap(m)

	if o.TotalAmount != 120000 {
		t.Errorf("TotalAmount = %d", o.TotalAmount)
	}
	if o.TotalCost != 80000 {
		t.Errorf("TotalCost = %d", o.TotalCost)
	}
	if o.Discount != 1000 {
		t.Errorf("Discount = %d", o.Discount)
	}
}

func TestFromLegacyMap_MissingCostIsZero(t *testing.T) {
	o := FromLegacyMap(map[string]any{"totalAmount": 100})
	if o.TotalCost != 0 {
		t.Errorf("TotalCost = %d, want 0", o.TotalCost)
	}
	if o.Profit() != 100 {
		t.Errorf("Profit = %d, want 100", o.Profit())
	}
}

func TestFromLegacyMap_Items(t *testing.T) {
	m := map[string]any{
		"items": []any{
			map[string]any{
				"productName": "Widget",
				"sku":         "W-1",
				"quantity":    2,
				"price":       500,
				"total":       1000,
			},
			map[string]any{
				"productName": "Gadget",
				"quantity":    "1.5",
				"price":       200,
			},
		},
	}

	o := FromLegacyMap(m)

	if len(o.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(o.Items))
	}
	if o.Items[0].LineNo != 1 || o.Items[1].LineNo != 2 {
		t.Errorf("line numbers = %d, %d", o.Items[0].LineNo, o.Items[1].LineNo)
	}
	if o.Items[1].Quantity != 1.5 {
		t.Errorf("quantity = %v, want 1.5", o.Items[1].Quantity)
	}
}
