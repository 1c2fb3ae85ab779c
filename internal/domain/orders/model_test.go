package orders

import (
	"context"
	"testing"

	"retailhub/internal/core/id"
)

func TestRecalculateTotal(t *testing.T) {
	o := New(id.New(), "Store A", ChannelRetail)
	o.Discount = 500
	o.ShippingFee = 200

	o.AddItem(id.New(), "Widget", "W-1", 2, 1000)
	o.AddItem(id.New(), "Gadget", "G-1", 1, 3000)

	// 2*1000 + 3000 - 500 + 200
	if o.TotalAmount != 4700 {
		t.Errorf("TotalAmount = %d, want 4700", o.TotalAmount)
	}
}

func TestOutstanding(t *testing.T) {
	o := New(id.New(), "Store A", ChannelWholesale)
	o.CustomerName = "Dai ly X"
	o.AddItem(id.New(), "Widget", "W-1", 10, 1000)
	o.Deposit = 4000

	if got := o.Outstanding(); got != 6000 {
		t.Errorf("Outstanding = %d, want 6000", got)
	}

	retail := New(id.New(), "Store A", ChannelRetail)
	retail.AddItem(id.New(), "Widget", "W-1", 1, 1000)
	if got := retail.Outstanding(); got != 0 {
		t.Errorf("retail Outstanding = %d, want 0", got)
	}
}

func TestOrderValidate(t *testing.T) {
	ctx := context.Background()

	valid := func() *Order {
		o := New(id.New(), "Store A", ChannelRetail)
		o.AddItem(id.New(), "Widget", "W-1", 1, 1000)
		return o
	}

	tests := []struct {
		name    string
		mutate  func(*Order)
		wantErr bool
	}{
		{"valid order", func(o *Order) {}, false},
		{"bad channel", func(o *Order) { o.Channel = "b2b" }, true},
		{"non-canonical date", func(o *Order) { o.OrderDate = "2024/01/05" }, true},
		{"no items", func(o *Order) { o.Items = nil }, true},
		{"zero quantity", func(o *Order) { o.Items[0].Quantity = 0 }, true},
		{"deposit on retail", func(o *Order) { o.Deposit = 100 }, true},
		{
			"wholesale needs customer",
			func(o *Order) { o.Channel = ChannelWholesale },
			true,
		},
		{
			"wholesale with customer",
			func(o *Order) {
				o.Channel = ChannelWholesale
				o.CustomerName = "Dai ly X"
			},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := valid()
			tt.mutate(o)
			err := o.Validate(ctx)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestIsCanonicalDate(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"2024-01-05", true},
		{"2024-1-5", false},
		{"2024/01/05", false},
		{"2024-13-01", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsCanonicalDate(tt.in); got != tt.want {
			t.Errorf("IsCanonicalDate(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
