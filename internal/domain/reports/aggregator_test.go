package reports

import (
	"reflect"
	"testing"

	"retailhub/internal/core/id"
	"retailhub/internal/core/types"
	"retailhub/internal/domain/orders"
)

func mkOrder(store, date string, total, cost types.MinorUnits, ch orders.Channel) *orders.Order {
	o := &orders.Order{
		Channel:     ch,
		OrderDate:   date,
		TotalAmount: total,
		TotalCost:   cost,
	}
	o.StoreName = store
	return o
}

func TestAggregate_Scenario(t *testing.T) {
	orderList := []*orders.Order{
		mkOrder("A", "2024-01-05", 100000, 60000, orders.ChannelWholesale),
		mkOrder("A", "2024-01-06", 50000, 50000, orders.ChannelRetail),
	}

	got, err := Aggregate(orderList, Filter{
		Range: DateRange{From: "2024-01-01", To: "2024-01-05"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.TotalOrders != 1 {
		t.Errorf("TotalOrders = %d, want 1", got.TotalOrders)
	}
	if got.TotalRevenue != 100000 {
		t.Errorf("TotalRevenue = %d, want 100000", got.TotalRevenue)
	}
	if got.TotalProfit != 40000 {
		t.Errorf("TotalProfit = %d, want 40000", got.TotalProfit)
	}
	if got.ProfitMargin != 40.0 {
		t.Errorf("ProfitMargin = %v, want 40.0", got.ProfitMargin)
	}
}

func TestAggregate_Empty(t *testing.T) {
	got, err := Aggregate([]*orders.Order{}, Filter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.TotalOrders != 0 || got.TotalRevenue != 0 || got.TotalProfit != 0 {
		t.Errorf("totals = %d/%d/%d, want all 0",
			got.TotalOrders, got.TotalRevenue, got.TotalProfit)
	}
	if got.ProfitMargin != 0 {
		t.Errorf("ProfitMargin = %v, want 0 (no division error)", got.ProfitMargin)
	}
}

func TestAggregate_NilOrdersIsInvalid(t *testing.T) {
	_, err := Aggregate(nil, Filter{})
	if err == nil {
		t.Fatal("expected error for nil orders")
	}
}

func TestAggregate_Idempotence(t *testing.T) {
	orderList := []*orders.Order{
		mkOrder("A", "2024-01-05", 100, 60, orders.ChannelRetail),
		mkOrder("B", "2024-01-06", 200, 50, orders.ChannelRetail),
		mkOrder("A", "2024-01-06", 300, 100, orders.ChannelEcommerce),
	}
	filter := Filter{Range: DateRange{From: "2024-01-01", To: "2024-01-31"}}

	first, err := Aggregate(orderList, filter)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Aggregate(orderList, filter)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("repeated aggregation produced different output")
	}
}

func TestAggregate_FilterMonotonicity(t *testing.T) {
	orderList := []*orders.Order{
		mkOrder("A", "2024-01-01", 10, 0, orders.ChannelRetail),
		mkOrder("A", "2024-01-10", 10, 0, orders.ChannelRetail),
		mkOrder("A", "2024-01-20", 10, 0, orders.ChannelRetail),
		mkOrder("A", "2024-01-31", 10, 0, orders.ChannelRetail),
	}

	wide, err := Aggregate(orderList, Filter{Range: DateRange{From: "2024-01-01", To: "2024-01-31"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	narrow, err := Aggregate(orderList, Filter{Range: DateRange{From: "2024-01-05", To: "2024-01-25"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if narrow.TotalOrders > wide.TotalOrders {
		t.Errorf("narrowing increased totalOrders: %d > %d",
			narrow.TotalOrders, wide.TotalOrders)
	}
}

func TestAggregate_SkipsMalformed(t *testing.T) {
	orderList := []*orders.Order{
		mkOrder("A", "2024-01-05", 100, 0, orders.ChannelRetail),
		mkOrder("A", "", 999, 0, orders.ChannelRetail), // no date
		nil,
	}

	got, err := Aggregate(orderList, Filter{})
	if err != nil {
		t.Fatalf("one bad record must not abort the report: %v", err)
	}

	if got.SkippedCount != 2 {
		t.Errorf("SkippedCount = %d, want 2", got.SkippedCount)
	}
	if got.TotalOrders != 1 || got.TotalRevenue != 100 {
		t.Errorf("valid record lost: orders=%d revenue=%d",
			got.TotalOrders, got.TotalRevenue)
	}
}

func TestAggregate_ChannelAndStoreFilter(t *testing.T) {
	storeA := id.New()
	storeB := id.New()

	a1 := mkOrder("A", "2024-01-05", 100, 0, orders.ChannelRetail)
	a1.StoreID = storeA
	a2 := mkOrder("A", "2024-01-05", 200, 0, orders.ChannelWholesale)
	a2.StoreID = storeA
	b1 := mkOrder("B", "2024-01-05", 400, 0, orders.ChannelRetail)
	b1.StoreID = storeB

	orderList := []*orders.Order{a1, a2, b1}

	retail := orders.ChannelRetail
	got, err := Aggregate(orderList, Filter{StoreID: &storeA, Channel: &retail})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.TotalOrders != 1 || got.TotalRevenue != 100 {
		t.Errorf("got orders=%d revenue=%d, want 1/100",
			got.TotalOrders, got.TotalRevenue)
	}
}

func TestAggregate_Breakdowns(t *testing.T) {
	o1 := mkOrder("Alpha", "2024-01-05", 1000, 400, orders.ChannelRetail)
	o1.Items = []orders.Item{
		{ProductName: "Widget", Quantity: 2, Total: 600},
		{ProductName: "Gadget", Quantity: 1, Total: 400},
	}
	o2 := mkOrder("Beta", "2024-01-04", 500, 100, orders.ChannelRetail)
	o2.Items = []orders.Item{
		{ProductName: "Widget", Quantity: 1, Total: 500},
	}

	got, err := Aggregate([]*orders.Order{o1, o2}, Filter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// byStore sorted by profit descending: Alpha 600, Beta 400.
	if len(got.ByStore) != 2 || got.ByStore[0].StoreName != "Alpha" {
		t.Errorf("ByStore = %+v", got.ByStore)
	}

	// byProduct flattened across orders: Widget qty 3, revenue 1100.
	if len(got.ByProduct) != 2 {
		t.Fatalf("ByProduct rows = %d, want 2", len(got.ByProduct))
	}
	var widget *ProductBreakdown
	for i := range got.ByProduct {
		if got.ByProduct[i].ProductName == "Widget" {
			widget = &got.ByProduct[i]
		}
	}
	if widget == nil {
		t.Fatal("Widget row missing")
	}
	if widget.Quantity != 3 || widget.Revenue != 1100 {
		t.Errorf("Widget = %+v", widget)
	}

	// byDay ascending by date.
	if len(got.ByDay) != 2 || got.ByDay[0].Date != "2024-01-04" {
		t.Errorf("ByDay = %+v", got.ByDay)
	}
}

func TestAggregate_StableTieBreak(t *testing.T) {
	// Same profit everywhere: encounter order must be preserved.
	orderList := []*orders.Order{
		mkOrder("First", "2024-01-05", 100, 50, orders.ChannelRetail),
		mkOrder("Second", "2024-01-05", 100, 50, orders.ChannelRetail),
		mkOrder("Third", "2024-01-05", 100, 50, orders.ChannelRetail),
	}

	got, err := Aggregate(orderList, Filter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"First", "Second", "Third"}
	for i, name := range want {
		if got.ByStore[i].StoreName != name {
			t.Fatalf("ByStore order = %+v, want %v", got.ByStore, want)
		}
	}
}

func TestAggregate_TopN(t *testing.T) {
	orderList := []*orders.Order{
		mkOrder("A", "2024-01-05", 100, 0, orders.ChannelRetail),
		mkOrder("B", "2024-01-05", 300, 0, orders.ChannelRetail),
		mkOrder("C", "2024-01-05", 200, 0, orders.ChannelRetail),
	}

	got, err := Aggregate(orderList, Filter{TopN: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(got.ByStore) != 2 {
		t.Fatalf("ByStore rows = %d, want 2", len(got.ByStore))
	}
	if got.ByStore[0].StoreName != "B" || got.ByStore[1].StoreName != "C" {
		t.Errorf("ByStore = %+v", got.ByStore)
	}
	// Truncation only affects breakdowns, never totals.
	if got.TotalOrders != 3 {
		t.Errorf("TotalOrders = %d, want 3", got.TotalOrders)
	}
}

func TestAggregate_DoesNotMutateInput(t *testing.T) {
	o := mkOrder("A", "2024-01-05", 100, 60, orders.ChannelRetail)
	before := *o

	if _, err := Aggregate([]*orders.Order{o}, Filter{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(before, *o) {
		t.Error("aggregate mutated its input")
	}
}

func TestAggregate_AvgAndMedian(t *testing.T) {
	orderList := []*orders.Order{
		mkOrder("A", "2024-01-05", 100, 0, orders.ChannelRetail),
		mkOrder("A", "2024-01-05", 200, 0, orders.ChannelRetail),
		mkOrder("A", "2024-01-05", 600, 0, orders.ChannelRetail),
	}

	got, err := Aggregate(orderList, Filter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.AvgOrderValue != 300 {
		t.Errorf("AvgOrderValue = %v, want 300", got.AvgOrderValue)
	}
	if got.MedianOrderValue != 200 {
		t.Errorf("MedianOrderValue = %v, want 200", got.MedianOrderValue)
	}
}
