package reports

import (
	"fmt"
	"sort"

	"retailhub/internal/core/apperror"
	"retailhub/internal/domain/warehouse"
)

// StockSnapshot describes one product's current state for reconciliation.
type StockSnapshot struct {
	ProductName string
	SKU         string
	Stock       float64
}

// Reconcile back-computes beginning-of-period stock from the current stock
// snapshot and the movement ledger.
//
// The live stock already reflects every listed movement, so walking the
// in-period rows backwards recovers the period start: receipts are
// subtracted, issues added back, adjustments reversed by their sign. The
// ending stock then equals beginning + in - out + adjustments, which must
// match the snapshot when the ledger is complete.
//
// Rows with unparseable timestamps cannot be assigned to any period; they
// are excluded and reported in Warnings rather than failing the call.
// Products that appear in the ledger but have no snapshot entry (deleted
// products) are synthesized purely from the ledger with an ending stock of
// zero.
func Reconcile(currentStock map[string]StockSnapshot, transactions []*warehouse.Transaction, period Period) (ReconcileResult, error) {
	if currentStock == nil {
		return ReconcileResult{}, apperror.NewValidation("current stock must not be nil")
	}
	if transactions == nil {
		return ReconcileResult{}, apperror.NewValidation("transactions must not be nil")
	}
	if err := period.Validate(); err != nil {
		return ReconcileResult{}, err
	}

	result := ReconcileResult{
		Records:  []UsageRecord{},
		Warnings: []string{},
	}

	type acc struct {
		order      int
		name       string
		sku        string
		in         float64
		out        float64
		adjustment float64
	}
	perProduct := make(map[string]*acc)

	touch := func(productID, name, sku string) *acc {
		a, ok := perProduct[productID]
		if !ok {
			a = &acc{order: len(perProduct), name: name, sku: sku}
			perProduct[productID] = a
		}
		if a.name == "" {
			a.name = name
		}
		if a.sku == "" {
			a.sku = sku
		}
		return a
	}

	for _, t := range transactions {
		if t == nil {
			continue
		}
		if !t.HasValidTimestamp() {
			result.Warnings = append(result.Warnings, fmt.Sprintf(
				"transaction %s excluded: unparseable timestamp %q",
				t.Number, t.RawTimestamp))
			continue
		}
		if !t.InPeriod(period.From, period.To) {
			continue
		}

		a := touch(t.ProductID.String(), t.ProductName, t.SKU)
		switch t.Type {
		case warehouse.TypeIn:
			a.in += t.Quantity.Abs().Float64()
		case warehouse.TypeOut:
			a.out += t.Quantity.Abs().Float64()
		case warehouse.TypeAdjustment:
			a.adjustment += t.Quantity.Float64()
		}
	}

	// Products with current stock but no in-period movement still get a
	// record: beginning == ending == current.
	for productID, snap := range currentStock {
		touch(productID, snap.ProductName, snap.SKU)
	}

	records := make([]*acc, 0, len(perProduct))
	ids := make(map[*acc]string, len(perProduct))
	for productID, a := range perProduct {
		records = append(records, a)
		ids[a] = productID
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].order < records[j].order
	})

	for _, a := range records {
		productID := ids[a]
		rec := UsageRecord{
			ProductID:   productID,
			ProductName: a.name,
			SKU:         a.sku,
			StockIn:     a.in,
			StockOut:    a.out,
			Adjustment:  a.adjustment,
		}

		snap, known := currentStock[productID]
		if known {
			rec.EndingStock = snap.Stock
			rec.BeginningStock = snap.Stock - a.in + a.out - a.adjustment
			if rec.ProductName == "" {
				rec.ProductName = snap.ProductName
			}
			if rec.SKU == "" {
				rec.SKU = snap.SKU
			}
		} else {
			// Deleted product: only the ledger remains, ending stock is 0.
			rec.Deleted = true
			rec.BeginningStock = a.out - a.in - a.adjustment
			rec.EndingStock = rec.BeginningStock + a.in - a.out + a.adjustment
		}

		if rec.BeginningStock > 0 {
			rec.UsagePercentage = rec.StockOut / rec.BeginningStock * 100
		}

		result.Records = append(result.Records, rec)
	}

	return result, nil
}
