// Package reports provides the reporting core: profit aggregation over
// classified orders and stock-ledger reconciliation. Both computations are
// pure functions over snapshots fetched at report time; they never touch
// storage themselves and never mutate their inputs.
package reports

import (
	"time"

	"retailhub/internal/core/apperror"
	"retailhub/internal/core/id"
	"retailhub/internal/core/types"
	"retailhub/internal/domain/orders"
)

// DateRange is an inclusive calendar-date range in canonical YYYY-MM-DD
// form. Bounds compare lexically, which is correct only because order dates
// are normalized to zero-padded ISO form at ingestion.
type DateRange struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Contains reports whether date falls inside the range. Empty bounds are
// open-ended.
func (r DateRange) Contains(date string) bool {
	if r.From != "" && date < r.From {
		return false
	}
	if r.To != "" && date > r.To {
		return false
	}
	return true
}

// Validate rejects malformed bounds.
func (r DateRange) Validate() error {
	if r.From != "" && !orders.IsCanonicalDate(r.From) {
		return apperror.NewValidation("from must be YYYY-MM-DD").
			WithDetail("from", r.From)
	}
	if r.To != "" && !orders.IsCanonicalDate(r.To) {
		return apperror.NewValidation("to must be YYYY-MM-DD").
			WithDetail("to", r.To)
	}
	if r.From != "" && r.To != "" && r.From > r.To {
		return apperror.NewValidation("from must not be after to").
			WithDetail("from", r.From).
			WithDetail("to", r.To)
	}
	return nil
}

// Filter narrows a profit report.
type Filter struct {
	Range   DateRange       `json:"range"`
	StoreID *id.ID          `json:"storeId,omitempty"`
	Channel *orders.Channel `json:"channel,omitempty"`

	// TopN truncates the byStore and byProduct breakdowns. 0 means the
	// default (DefaultTopN).
	TopN int `json:"topN"`
}

// DefaultTopN is the breakdown truncation applied when the filter does not
// specify one.
const DefaultTopN = 10

// StoreBreakdown is one byStore row.
type StoreBreakdown struct {
	StoreName string           `json:"storeName"`
	Orders    int              `json:"orders"`
	Revenue   types.MinorUnits `json:"revenue"`
	Cost      types.MinorUnits `json:"cost"`
	Profit    types.MinorUnits `json:"profit"`
}

// ProductBreakdown is one byProduct row, flattened across order items.
type ProductBreakdown struct {
	ProductName string           `json:"productName"`
	Quantity    float64          `json:"quantity"`
	Revenue     types.MinorUnits `json:"revenue"`
	Cost        types.MinorUnits `json:"cost"`
	Profit      types.MinorUnits `json:"profit"`
}

// DayPoint is one byDay trend point.
type DayPoint struct {
	Date    string           `json:"date"`
	Orders  int              `json:"orders"`
	Revenue types.MinorUnits `json:"revenue"`
	Profit  types.MinorUnits `json:"profit"`
}

// Summary is the profit report output.
type Summary struct {
	TotalOrders  int              `json:"totalOrders"`
	TotalRevenue types.MinorUnits `json:"totalRevenue"`
	TotalCost    types.MinorUnits `json:"totalCost"`
	TotalProfit  types.MinorUnits `json:"totalProfit"`

	// ProfitMargin is a percentage; exactly 0 when TotalRevenue is 0.
	ProfitMargin float64 `json:"profitMargin"`

	AvgOrderValue    float64 `json:"avgOrderValue"`
	MedianOrderValue float64 `json:"medianOrderValue"`

	// SkippedCount is the number of records dropped as unusable
	// (missing order date). One bad record never aborts a report.
	SkippedCount int `json:"skippedCount"`

	ByStore   []StoreBreakdown   `json:"byStore"`
	ByProduct []ProductBreakdown `json:"byProduct"`
	ByDay     []DayPoint         `json:"byDay"`
}

// UsageRecord is the per-product reconciliation output.
type UsageRecord struct {
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	SKU         string `json:"sku"`

	BeginningStock float64 `json:"beginningStock"`
	StockIn        float64 `json:"stockIn"`
	StockOut       float64 `json:"stockOut"`
	Adjustment     float64 `json:"adjustment"`
	EndingStock    float64 `json:"endingStock"`

	// UsagePercentage is StockOut / BeginningStock * 100; 0 when
	// BeginningStock is not positive.
	UsagePercentage float64 `json:"usagePercentage"`

	// Deleted marks products synthesized purely from the ledger because no
	// current stock entry exists anymore.
	Deleted bool `json:"deleted"`
}

// ReconcileResult carries all usage records plus data-quality warnings.
type ReconcileResult struct {
	Records []UsageRecord `json:"records"`

	// Warnings lists excluded rows (unparseable timestamps). Reconciliation
	// completes with partial results instead of failing.
	Warnings []string `json:"warnings"`
}

// Period is an inclusive timestamp range for ledger reconciliation.
type Period struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// Validate rejects inverted periods.
func (p Period) Validate() error {
	if p.From.IsZero() || p.To.IsZero() {
		return apperror.NewValidation("period bounds are required")
	}
	if p.From.After(p.To) {
		return apperror.NewValidation("period from must not be after to")
	}
	return nil
}
