package orders

import (
	"github.com/araddon/dateparse"
	"github.com/spf13/cast"

	"retailhub/internal/core/entity"
	"retailhub/internal/core/id"
)

// FromLegacyMap normalizes one loosely-typed legacy record into the canonical
// Order shape. Field-name aliases (total vs totalAmount, shipping vs
// shippingFee, type vs orderType) are resolved here so the reporting core
// never special-cases them. The channel is NOT assigned: classification is a
// separate, caller-chosen step.
//
// Missing or unparseable orderDate leaves OrderDate empty; the aggregator
// skips such records and counts them instead of failing the report.
func FromLegacyMap(m map[string]any) *Order {
	o := &Order{
		Document: entity.Document{
			Number:    cast.ToString(firstPresent(m, "code", "orderCode", "number")),
			StoreName: cast.ToString(m["storeName"]),
		},
		OrderDate:    normalizeDate(firstPresent(m, "orderDate", "date")),
		CustomerName: cast.ToString(m["customerName"]),
		Platform:     cast.ToString(m["platform"]),
		Source:       cast.ToString(m["source"]),
		TotalAmount:  cast.ToInt64(firstPresent(m, "totalAmount", "total")),
		TotalCost:    cast.ToInt64(m["totalCost"]), // absent -> 0
		Discount:     cast.ToInt64(m["discount"]),
		ShippingFee:  cast.ToInt64(firstPresent(m, "shippingFee", "shipping")),
		Deposit:      cast.ToInt64(m["deposit"]),
	}

	if rawID := cast.ToString(m["id"]); rawID != "" {
		if parsed, err := id.Parse(rawID); err == nil {
			o.ID = parsed
		}
	}
	if rawStore := cast.ToString(m["storeId"]); rawStore != "" {
		if parsed, err := id.Parse(rawStore); err == nil {
			o.StoreID = parsed
		}
	}

	if rawItems, ok := m["items"].([]any); ok {
		for _, ri := range rawItems {
			im := cast.ToStringMap(ri)
			if im == nil {
				continue
			}
			o.Items = append(o.Items, Item{
				LineID:      id.New(),
				LineNo:      len(o.Items) + 1,
				ProductName: cast.ToString(im["productName"]),
				SKU:         cast.ToString(im["sku"]),
				Quantity:    cast.ToFloat64(im["quantity"]),
				Price:       cast.ToInt64(im["price"]),
				Total:       cast.ToInt64(im["total"]),
			})
		}
	}

	return o
}

// RawFields extracts the classification inputs from an order.
func (o *Order) RawFields(orderType, legacyType string) RawRecord {
	return RawRecord{
		OrderType:    orderType,
		Type:         legacyType,
		Source:       o.Source,
		Code:         o.Number,
		CustomerName: o.CustomerName,
		Platform:     o.Platform,
	}
}

// normalizeDate coerces a legacy date value (ISO string, slash-separated
// string, epoch millis) into canonical YYYY-MM-DD, or "" when unparseable.
func normalizeDate(v any) string {
	s := cast.ToString(v)
	if s == "" {
		// epoch millis come through cast.ToString fine, but a raw zero or
		// nil must stay empty rather than become 1970-01-01
		return ""
	}
	if IsCanonicalDate(s) {
		return s
	}
	t, err := dateparse.ParseAny(s)
	if err != nil {
		return ""
	}
	return t.Format("2006-01-02")
}

// firstPresent returns the first non-nil, non-empty value among keys.
func firstPresent(m map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil && cast.ToString(v) != "" {
			return v
		}
	}
	return nil
}
