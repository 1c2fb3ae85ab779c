// Package orders provides the sales order document for the three channels
// (e-commerce, retail, wholesale) and the channel classifier for legacy
// records with inconsistent type vocabulary.
package orders

import (
	"context"
	"time"

	"retailhub/internal/core/apperror"
	"retailhub/internal/core/entity"
	"retailhub/internal/core/id"
	"retailhub/internal/core/types"
)

// PaymentStatus tracks wholesale payment progress.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPartial PaymentStatus = "partial"
	PaymentPaid    PaymentStatus = "paid"
)

// Order represents a channel-tagged sales record.
type Order struct {
	entity.Document

	// Channel is derived by the classifier, never taken from raw fields.
	Channel Channel `db:"channel" json:"channel"`

	// OrderDate is the calendar business date in canonical YYYY-MM-DD form.
	// Reporting filters compare it lexically; CreatedAt is for display only.
	OrderDate string `db:"order_date" json:"orderDate"`

	// CustomerName is set for wholesale orders.
	CustomerName string `db:"customer_name" json:"customerName,omitempty"`

	// Platform is the marketplace name for e-commerce orders.
	Platform string `db:"platform" json:"platform,omitempty"`

	// Source is the legacy ingestion tag (e.g. "wholesale_sales").
	// Kept for heuristic reclassification of historical records.
	Source string `db:"source" json:"source,omitempty"`

	// TotalAmount is authoritative for revenue sums. It is never recomputed
	// from items: historical records drift from the item sum and reports
	// must stay consistent with what was charged.
	TotalAmount types.MinorUnits `db:"total_amount" json:"totalAmount"`

	// TotalCost may be absent on legacy records; absent is stored as 0.
	TotalCost types.MinorUnits `db:"total_cost" json:"totalCost"`

	Discount    types.MinorUnits `db:"discount" json:"discount"`
	ShippingFee types.MinorUnits `db:"shipping_fee" json:"shippingFee"`

	// Deposit is wholesale-only prepayment.
	Deposit types.MinorUnits `db:"deposit" json:"deposit"`

	// PaymentStatus is tracked for wholesale orders.
	PaymentStatus PaymentStatus `db:"payment_status" json:"paymentStatus,omitempty"`

	// Items snapshot product data at order time. Later product edits do not
	// retroactively change historical order lines.
	Items []Item `db:"-" json:"items"`
}

// Item is one order line with a product snapshot.
type Item struct {
	LineID id.ID `db:"line_id" json:"lineId"`
	LineNo int   `db:"line_no" json:"lineNo"`

	ProductID   id.ID  `db:"product_id" json:"productId"`
	ProductName string `db:"product_name" json:"productName"`
	SKU         string `db:"sku" json:"sku"`

	Quantity float64          `db:"quantity" json:"quantity"`
	Price    types.MinorUnits `db:"price" json:"price"`
	Total    types.MinorUnits `db:"total" json:"total"`
}

// New creates an order for a store and channel, dated today.
func New(storeID id.ID, storeName string, channel Channel) *Order {
	return &Order{
		Document:  entity.NewDocument(storeID, storeName),
		Channel:   channel,
		OrderDate: time.Now().UTC().Format("2006-01-02"),
		Items:     make([]Item, 0),
	}
}

// AddItem appends a line with a product snapshot and recalculates totals.
func (o *Order) AddItem(productID id.ID, productName, sku string, quantity float64, price types.MinorUnits) {
	line := Item{
		LineID:      id.New(),
		LineNo:      len(o.Items) + 1,
		ProductID:   productID,
		ProductName: productName,
		SKU:         sku,
		Quantity:    quantity,
		Price:       price,
		Total:       types.MinorUnits(float64(price) * quantity),
	}
	o.Items = append(o.Items, line)
	o.RecalculateTotal()
}

// RecalculateTotal derives TotalAmount from lines, discount and shipping.
// Only called while building new orders; ingested records keep their
// stored total untouched.
func (o *Order) RecalculateTotal() {
	var sum types.MinorUnits
	for _, it := range o.Items {
		sum += it.Total
	}
	o.TotalAmount = sum - o.Discount + o.ShippingFee
}

// Profit returns revenue minus cost for this order.
func (o *Order) Profit() types.MinorUnits {
	return o.TotalAmount - o.TotalCost
}

// Outstanding returns the unpaid wholesale balance.
func (o *Order) Outstanding() types.MinorUnits {
	if o.Channel != ChannelWholesale {
		return 0
	}
	return o.TotalAmount - o.Deposit
}

// Validate implements entity.Validatable.
func (o *Order) Validate(ctx context.Context) error {
	if err := o.Document.Validate(ctx); err != nil {
		return err
	}

	if !o.Channel.Valid() {
		return apperror.NewValidation("unknown sales channel").
			WithDetail("field", "channel").
			WithDetail("value", string(o.Channel))
	}

	if !IsCanonicalDate(o.OrderDate) {
		return apperror.NewValidation("orderDate must be YYYY-MM-DD").
			WithDetail("field", "orderDate").
			WithDetail("value", o.OrderDate)
	}

	if len(o.Items) == 0 {
		return apperror.NewValidation("at least one item is required").
			WithDetail("field", "items")
	}

	for i, it := range o.Items {
		if id.IsNil(it.ProductID) {
			return apperror.NewValidation("product is required").
				WithDetail("field", "items").
				WithDetail("lineNo", i+1)
		}
		if it.Quantity <= 0 {
			return apperror.NewValidation("quantity must be positive").
				WithDetail("field", "items").
				WithDetail("lineNo", i+1)
		}
	}

	if o.Deposit != 0 && o.Channel != ChannelWholesale {
		return apperror.NewValidation("deposit is only allowed on wholesale orders").
			WithDetail("field", "deposit")
	}

	if o.Channel == ChannelWholesale && o.CustomerName == "" {
		return apperror.NewValidation("wholesale orders require a customer name").
			WithDetail("field", "customerName")
	}

	return nil
}

// IsCanonicalDate reports whether s is a zero-padded YYYY-MM-DD date.
// Lexical date comparison in reports depends on this exact form.
func IsCanonicalDate(s string) bool {
	if len(s) != 10 {
		return false
	}
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}
