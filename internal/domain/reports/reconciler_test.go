package reports

import (
	"testing"
	"time"

	"retailhub/internal/core/id"
	"retailhub/internal/core/types"
	"retailhub/internal/domain/warehouse"
)

var (
	reconFrom = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	reconTo   = time.Date(2024, 1, 31, 23, 59, 59, 0, time.UTC)
)

func mkTx(productID id.ID, typ warehouse.TxType, qty float64, ts time.Time) *warehouse.Transaction {
	return &warehouse.Transaction{
		ProductID: productID,
		Timestamp: ts,
		Type:      typ,
		Quantity:  types.NewQuantityFromFloat64(qty),
	}
}

func TestReconcile_Closure(t *testing.T) {
	productID := id.New()
	mid := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

	stock := map[string]StockSnapshot{
		productID.String(): {ProductName: "Widget", Stock: 100},
	}
	txs := []*warehouse.Transaction{
		mkTx(productID, warehouse.TypeIn, 30, mid),
		mkTx(productID, warehouse.TypeOut, 10, mid),
	}

	result, err := Reconcile(stock, txs, Period{From: reconFrom, To: reconTo})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Records) != 1 {
		t.Fatalf("records = %d, want 1", len(result.Records))
	}

	rec := result.Records[0]
	if rec.BeginningStock != 80 {
		t.Errorf("BeginningStock = %v, want 80", rec.BeginningStock)
	}
	if rec.EndingStock != 100 {
		t.Errorf("EndingStock = %v, want 100", rec.EndingStock)
	}
	// ending == beginning + in - out must close.
	if got := rec.BeginningStock + rec.StockIn - rec.StockOut; got != rec.EndingStock {
		t.Errorf("closure check failed: %v != %v", got, rec.EndingStock)
	}
	if rec.UsagePercentage != 12.5 {
		t.Errorf("UsagePercentage = %v, want 12.5 (10/80)", rec.UsagePercentage)
	}
}

func TestReconcile_UnparseableTimestampWarns(t *testing.T) {
	goodID := id.New()
	mid := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

	bad := &warehouse.Transaction{
		ProductID:    id.New(),
		RawTimestamp: "not-a-date",
		Type:         warehouse.TypeOut,
		Quantity:     types.NewQuantityFromFloat64(5),
	}

	stock := map[string]StockSnapshot{
		goodID.String(): {ProductName: "Widget", Stock: 50},
	}
	txs := []*warehouse.Transaction{
		bad,
		mkTx(goodID, warehouse.TypeOut, 10, mid),
	}

	result, err := Reconcile(stock, txs, Period{From: reconFrom, To: reconTo})
	if err != nil {
		t.Fatalf("partial data must still reconcile: %v", err)
	}

	if len(result.Warnings) != 1 {
		t.Fatalf("warnings = %v, want exactly one", result.Warnings)
	}

	// The valid transaction still produced a record.
	found := false
	for _, rec := range result.Records {
		if rec.ProductID == goodID.String() {
			found = true
			if rec.BeginningStock != 60 {
				t.Errorf("BeginningStock = %v, want 60", rec.BeginningStock)
			}
		}
	}
	if !found {
		t.Error("valid product missing from results")
	}
}

func TestReconcile_DeletedProduct(t *testing.T) {
	deletedID := id.New()
	mid := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

	txs := []*warehouse.Transaction{
		mkTx(deletedID, warehouse.TypeIn, 20, mid),
		mkTx(deletedID, warehouse.TypeOut, 35, mid),
	}

	result, err := Reconcile(map[string]StockSnapshot{}, txs, Period{From: reconFrom, To: reconTo})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Records) != 1 {
		t.Fatalf("records = %d, want 1", len(result.Records))
	}

	rec := result.Records[0]
	if !rec.Deleted {
		t.Error("record must be flagged as deleted product")
	}
	// Synthesized purely from the ledger: beginning = out - in.
	if rec.BeginningStock != 15 {
		t.Errorf("BeginningStock = %v, want 15", rec.BeginningStock)
	}
	if rec.EndingStock != 0 {
		t.Errorf("EndingStock = %v, want 0", rec.EndingStock)
	}
}

func TestReconcile_AdjustmentsAreSigned(t *testing.T) {
	productID := id.New()
	mid := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

	stock := map[string]StockSnapshot{
		productID.String(): {Stock: 90},
	}
	txs := []*warehouse.Transaction{
		mkTx(productID, warehouse.TypeAdjustment, -10, mid),
	}

	result, err := Reconcile(stock, txs, Period{From: reconFrom, To: reconTo})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rec := result.Records[0]
	// 90 current with a -10 adjustment inside the period: started at 100.
	if rec.BeginningStock != 100 {
		t.Errorf("BeginningStock = %v, want 100", rec.BeginningStock)
	}
	if rec.Adjustment != -10 {
		t.Errorf("Adjustment = %v, want -10", rec.Adjustment)
	}
}

func TestReconcile_OutOfPeriodIgnored(t *testing.T) {
	productID := id.New()
	before := time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC)

	stock := map[string]StockSnapshot{
		productID.String(): {Stock: 40},
	}
	txs := []*warehouse.Transaction{
		mkTx(productID, warehouse.TypeIn, 40, before),
	}

	result, err := Reconcile(stock, txs, Period{From: reconFrom, To: reconTo})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rec := result.Records[0]
	// No in-period movement: beginning == ending == current.
	if rec.BeginningStock != 40 || rec.EndingStock != 40 {
		t.Errorf("stock = %v/%v, want 40/40", rec.BeginningStock, rec.EndingStock)
	}
	if rec.UsagePercentage != 0 {
		t.Errorf("UsagePercentage = %v, want 0", rec.UsagePercentage)
	}
}

func TestReconcile_ZeroBeginningStockGuard(t *testing.T) {
	productID := id.New()
	mid := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

	stock := map[string]StockSnapshot{
		productID.String(): {Stock: 10},
	}
	// Everything on hand arrived this period: beginning stock is 0.
	txs := []*warehouse.Transaction{
		mkTx(productID, warehouse.TypeIn, 10, mid),
	}

	result, err := Reconcile(stock, txs, Period{From: reconFrom, To: reconTo})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rec := result.Records[0]
	if rec.BeginningStock != 0 {
		t.Errorf("BeginningStock = %v, want 0", rec.BeginningStock)
	}
	if rec.UsagePercentage != 0 {
		t.Errorf("UsagePercentage = %v, want 0 (division guard)", rec.UsagePercentage)
	}
}

func TestReconcile_NilInputsInvalid(t *testing.T) {
	period := Period{From: reconFrom, To: reconTo}

	if _, err := Reconcile(nil, []*warehouse.Transaction{}, period); err == nil {
		t.Error("nil stock must be rejected")
	}
	if _, err := Reconcile(map[string]StockSnapshot{}, nil, period); err == nil {
		t.Error("nil transactions must be rejected")
	}
	if _, err := Reconcile(map[string]StockSnapshot{}, []*warehouse.Transaction{}, Period{}); err == nil {
		t.Error("zero period must be rejected")
	}
}
