// Package warehouse provides the stock transaction ledger. Every stock
// movement (receipt, sale, manual adjustment) appends one immutable
// Transaction row; the current product stock is the materialized result.
package warehouse

import (
	"context"
	"time"

	"github.com/araddon/dateparse"
	"github.com/spf13/cast"

	"retailhub/internal/core/apperror"
	"retailhub/internal/core/entity"
	"retailhub/internal/core/id"
	"retailhub/internal/core/types"
)

// TxType is the direction of a stock movement.
type TxType string

const (
	// TypeIn is a stock receipt (purchase, return from customer).
	TypeIn TxType = "in"
	// TypeOut is a stock issue (sale, return to supplier).
	TypeOut TxType = "out"
	// TypeAdjustment is a manual correction; its quantity is signed.
	TypeAdjustment TxType = "adjustment"
)

// Valid reports whether t is a known transaction type.
func (t TxType) Valid() bool {
	switch t {
	case TypeIn, TypeOut, TypeAdjustment:
		return true
	}
	return false
}

// Transaction is one immutable ledger row.
type Transaction struct {
	entity.Document

	ProductID   id.ID  `db:"product_id" json:"productId"`
	ProductName string `db:"product_name" json:"productName"`
	SKU         string `db:"sku" json:"sku"`

	// Timestamp is the parsed movement time. Zero when RawTimestamp could
	// not be parsed; such rows are excluded from period math and reported
	// as warnings instead of failing reconciliation.
	Timestamp time.Time `db:"timestamp" json:"timestamp"`

	// RawTimestamp preserves the original legacy value for diagnostics.
	RawTimestamp string `db:"raw_timestamp" json:"rawTimestamp,omitempty"`

	Type TxType `db:"type" json:"type"`

	// Quantity is a magnitude for in/out and a signed delta for adjustment.
	Quantity types.Quantity `db:"quantity" json:"quantity"`

	// UnitPrice is the per-base-unit value of the movement
	UnitPrice types.MinorUnits `db:"unit_price" json:"unitPrice"`

	// TotalValue is quantity x unit price, stored for reporting
	TotalValue types.MinorUnits `db:"total_value" json:"totalValue"`

	// Reason is a short machine tag (sale, purchase, stocktake, damage)
	Reason string `db:"reason" json:"reason,omitempty"`

	Notes string `db:"notes" json:"notes,omitempty"`
}

// NewTransaction creates a ledger row stamped with the current time.
func NewTransaction(storeID id.ID, storeName string, productID id.ID, txType TxType, qty types.Quantity) *Transaction {
	return &Transaction{
		Document:  entity.NewDocument(storeID, storeName),
		ProductID: productID,
		Timestamp: time.Now().UTC(),
		Type:      txType,
		Quantity:  qty,
	}
}

// SignedQuantity returns the stock delta this row applies:
// +q for in, -q for out, q as stored for adjustment.
func (t *Transaction) SignedQuantity() types.Quantity {
	switch t.Type {
	case TypeIn:
		return t.Quantity.Abs()
	case TypeOut:
		return t.Quantity.Abs().Neg()
	default:
		return t.Quantity
	}
}

// HasValidTimestamp reports whether the movement time was parseable.
func (t *Transaction) HasValidTimestamp() bool {
	return !t.Timestamp.IsZero()
}

// InPeriod reports whether the movement falls inside [from, to] inclusive.
// Rows without a valid timestamp are never in any period.
func (t *Transaction) InPeriod(from, to time.Time) bool {
	if !t.HasValidTimestamp() {
		return false
	}
	return !t.Timestamp.Before(from) && !t.Timestamp.After(to)
}

// Validate implements entity.Validatable.
func (t *Transaction) Validate(ctx context.Context) error {
	if err := t.Document.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(t.ProductID) {
		return apperror.NewValidation("product is required").
			WithDetail("field", "productId")
	}

	if !t.Type.Valid() {
		return apperror.NewValidation("unknown transaction type").
			WithDetail("field", "type").
			WithDetail("value", string(t.Type))
	}

	if t.Type != TypeAdjustment && !t.Quantity.IsPositive() {
		return apperror.NewValidation("quantity must be positive").
			WithDetail("field", "quantity")
	}

	if t.Type == TypeAdjustment && t.Quantity.IsZero() {
		return apperror.NewValidation("adjustment quantity must not be zero").
			WithDetail("field", "quantity")
	}

	return nil
}

// FromLegacyMap normalizes a loosely-typed legacy ledger record. Timestamps
// arrive as ISO strings, slash-separated strings or epoch millis; anything
// unparseable keeps the raw value and a zero Timestamp.
func FromLegacyMap(m map[string]any) *Transaction {
	t := &Transaction{
		Document: entity.Document{
			Number:    cast.ToString(m["code"]),
			StoreName: cast.ToString(m["storeName"]),
		},
		ProductName:  cast.ToString(m["productName"]),
		SKU:          cast.ToString(m["sku"]),
		RawTimestamp: cast.ToString(firstPresent(m, "timestamp", "date", "createdAt")),
		Type:         TxType(cast.ToString(m["type"])),
		Quantity:     types.NewQuantityFromFloat64(cast.ToFloat64(m["quantity"])),
		UnitPrice:    cast.ToInt64(firstPresent(m, "unitPrice", "price")),
		TotalValue:   cast.ToInt64(firstPresent(m, "totalValue", "total")),
		Reason:       cast.ToString(m["reason"]),
		Notes:        cast.ToString(m["notes"]),
	}

	if rawID := cast.ToString(m["id"]); rawID != "" {
		if parsed, err := id.Parse(rawID); err == nil {
			t.ID = parsed
		}
	}
	if rawProduct := cast.ToString(m["productId"]); rawProduct != "" {
		if parsed, err := id.Parse(rawProduct); err == nil {
			t.ProductID = parsed
		}
	}
	if rawStore := cast.ToString(m["storeId"]); rawStore != "" {
		if parsed, err := id.Parse(rawStore); err == nil {
			t.StoreID = parsed
		}
	}

	if t.RawTimestamp != "" {
		if parsed, err := dateparse.ParseAny(t.RawTimestamp); err == nil {
			t.Timestamp = parsed.UTC()
		}
	}

	if t.TotalValue == 0 && t.UnitPrice != 0 {
		t.TotalValue = types.MinorUnits(float64(t.UnitPrice) * t.Quantity.Abs().Float64())
	}

	return t
}

func firstPresent(m map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil && cast.ToString(v) != "" {
			return v
		}
	}
	return nil
}
