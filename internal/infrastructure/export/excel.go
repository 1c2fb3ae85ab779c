package export

import (
	"fmt"
	"io"
	"strconv"

	"github.com/360EntSecGroup-Skylar/excelize"

	"retailhub/internal/domain/reports"
)

// SummaryXLSX writes a profit summary as a workbook with Totals, ByStore,
// ByProduct and ByDay sheets.
func SummaryXLSX(s *reports.Summary, w io.Writer) error {
	f := excelize.NewFile()

	f.SetSheetName("Sheet1", "Totals")
	writeTotals(f, s)

	f.NewSheet("ByStore")
	setRow(f, "ByStore", 1, "Store", "Orders", "Revenue", "Cost", "Profit")
	for i, b := range s.ByStore {
		setRow(f, "ByStore", i+2, b.StoreName, b.Orders, int64(b.Revenue), int64(b.Cost), int64(b.Profit))
	}

	f.NewSheet("ByProduct")
	setRow(f, "ByProduct", 1, "Product", "Quantity", "Revenue", "Cost", "Profit")
	for i, b := range s.ByProduct {
		setRow(f, "ByProduct", i+2, b.ProductName, b.Quantity, int64(b.Revenue), int64(b.Cost), int64(b.Profit))
	}

	f.NewSheet("ByDay")
	setRow(f, "ByDay", 1, "Date", "Orders", "Revenue", "Profit")
	for i, d := range s.ByDay {
		setRow(f, "ByDay", i+2, d.Date, d.Orders, int64(d.Revenue), int64(d.Profit))
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write summary xlsx: %w", err)
	}
	return nil
}

// UsageXLSX writes reconciliation records as a single-sheet workbook with a
// trailing Warnings sheet when warnings exist.
func UsageXLSX(result *reports.ReconcileResult, w io.Writer) error {
	f := excelize.NewFile()

	f.SetSheetName("Sheet1", "Usage")
	setRow(f, "Usage", 1, "Product", "SKU", "Beginning", "In", "Out", "Adjustment", "Ending", "Usage %", "Deleted")
	for i, rec := range result.Records {
		setRow(f, "Usage", i+2,
			rec.ProductName, rec.SKU,
			rec.BeginningStock, rec.StockIn, rec.StockOut, rec.Adjustment, rec.EndingStock,
			rec.UsagePercentage, rec.Deleted)
	}

	if len(result.Warnings) > 0 {
		f.NewSheet("Warnings")
		for i, warning := range result.Warnings {
			f.SetCellValue("Warnings", "A"+strconv.Itoa(i+1), warning)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write usage xlsx: %w", err)
	}
	return nil
}

func writeTotals(f *excelize.File, s *reports.Summary) {
	rows := []struct {
		label string
		value any
	}{
		{"Total Orders", s.TotalOrders},
		{"Total Revenue", int64(s.TotalRevenue)},
		{"Total Cost", int64(s.TotalCost)},
		{"Total Profit", int64(s.TotalProfit)},
		{"Profit Margin %", s.ProfitMargin},
		{"Avg Order Value", s.AvgOrderValue},
		{"Median Order Value", s.MedianOrderValue},
		{"Skipped Records", s.SkippedCount},
	}
	for i, r := range rows {
		n := strconv.Itoa(i + 1)
		f.SetCellValue("Totals", "A"+n, r.label)
		f.SetCellValue("Totals", "B"+n, r.value)
	}
}

// setRow fills one row starting at column A. Columns beyond Z are not
// needed by any report sheet.
func setRow(f *excelize.File, sheet string, row int, values ...any) {
	for i, v := range values {
		axis := string(rune('A'+i)) + strconv.Itoa(row)
		f.SetCellValue(sheet, axis, v)
	}
}
