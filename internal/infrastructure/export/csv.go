// Package export renders report results to CSV and XLSX for download.
package export

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"

	"retailhub/internal/domain/reports"
)

type productRow struct {
	ProductName string  `csv:"product_name"`
	Quantity    float64 `csv:"quantity"`
	Revenue     int64   `csv:"revenue"`
	Cost        int64   `csv:"cost"`
	Profit      int64   `csv:"profit"`
}

type usageRow struct {
	ProductID       string  `csv:"product_id"`
	ProductName     string  `csv:"product_name"`
	SKU             string  `csv:"sku"`
	BeginningStock  float64 `csv:"beginning_stock"`
	StockIn         float64 `csv:"stock_in"`
	StockOut        float64 `csv:"stock_out"`
	Adjustment      float64 `csv:"adjustment"`
	EndingStock     float64 `csv:"ending_stock"`
	UsagePercentage float64 `csv:"usage_percentage"`
	Deleted         bool    `csv:"deleted"`
}

// SummaryCSV writes the byProduct breakdown of a profit summary as CSV.
func SummaryCSV(s *reports.Summary, w io.Writer) error {
	rows := make([]productRow, 0, len(s.ByProduct))
	for _, p := range s.ByProduct {
		rows = append(rows, productRow{
			ProductName: p.ProductName,
			Quantity:    p.Quantity,
			Revenue:     int64(p.Revenue),
			Cost:        int64(p.Cost),
			Profit:      int64(p.Profit),
		})
	}

	if err := gocsv.Marshal(&rows, w); err != nil {
		return fmt.Errorf("write summary csv: %w", err)
	}
	return nil
}

// UsageCSV writes reconciliation records as CSV.
func UsageCSV(result *reports.ReconcileResult, w io.Writer) error {
	rows := make([]usageRow, 0, len(result.Records))
	for _, rec := range result.Records {
		rows = append(rows, usageRow{
			ProductID:       rec.ProductID,
			ProductName:     rec.ProductName,
			SKU:             rec.SKU,
			BeginningStock:  rec.BeginningStock,
			StockIn:         rec.StockIn,
			StockOut:        rec.StockOut,
			Adjustment:      rec.Adjustment,
			EndingStock:     rec.EndingStock,
			UsagePercentage: rec.UsagePercentage,
			Deleted:         rec.Deleted,
		})
	}

	if err := gocsv.Marshal(&rows, w); err != nil {
		return fmt.Errorf("write usage csv: %w", err)
	}
	return nil
}
