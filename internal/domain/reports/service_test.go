package reports

import (
	"context"
	"testing"
	"time"

	"retailhub/internal/core/id"
	"retailhub/internal/domain/orders"
	"retailhub/internal/domain/warehouse"
)

// fakeRepo serves canned snapshots and counts reads, standing in for the
// PostgreSQL repository.
type fakeRepo struct {
	orders     []*orders.Order
	fetchCalls int
}

func (f *fakeRepo) FetchOrders(ctx context.Context, storeID *id.ID) ([]*orders.Order, error) {
	f.fetchCalls++
	return f.orders, nil
}

func (f *fakeRepo) FetchTransactions(ctx context.Context, storeID *id.ID, limit int) ([]*warehouse.Transaction, error) {
	return []*warehouse.Transaction{}, nil
}

func (f *fakeRepo) FetchCurrentStock(ctx context.Context) (map[string]StockSnapshot, error) {
	return map[string]StockSnapshot{}, nil
}

type fakeCache struct {
	entries map[string]*Summary
	hits    int
	sets    int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string]*Summary{}}
}

func (c *fakeCache) Get(ctx context.Context, key string) (*Summary, bool) {
	s, ok := c.entries[key]
	if ok {
		c.hits++
	}
	return s, ok
}

func (c *fakeCache) Set(ctx context.Context, key string, s *Summary, ttl time.Duration) {
	c.sets++
	c.entries[key] = s
}

// mkStoredOrder builds an order as the repository returns it: a header plus
// item rows, with the persisted channel and the legacy source tag intact.
func mkStoredOrder(store, date string, total, cost int64, ch orders.Channel, source string) *orders.Order {
	o := mkOrder(store, date, total, cost, ch)
	o.ID = id.New()
	o.Source = source
	return o
}

func TestProfitSummaryByProductFromItems(t *testing.T) {
	o := mkStoredOrder("A", "2024-01-05", 1000, 600, orders.ChannelRetail, "")
	o.Items = []orders.Item{
		{ProductID: id.New(), ProductName: "Widget", SKU: "W-1", Quantity: 2, Price: 500, Total: 1000},
	}

	svc := NewService(&fakeRepo{orders: []*orders.Order{o}})

	got, err := svc.ProfitSummary(context.Background(), Filter{}, orders.StrategyStrict)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(got.ByProduct) != 1 {
		t.Fatalf("len(ByProduct) = %d, want 1", len(got.ByProduct))
	}
	p := got.ByProduct[0]
	if p.ProductName != "Widget" || p.Quantity != 2 || p.Revenue != 1000 {
		t.Errorf("ByProduct[0] = %+v, want Widget/2/1000", p)
	}
	if p.Cost != 600 {
		t.Errorf("ByProduct[0].Cost = %d, want 600 (full revenue share)", p.Cost)
	}
}

func TestProfitSummaryReclassifiesPerStrategy(t *testing.T) {
	// Stored as ecommerce, but the ingestion source says wholesale: the two
	// strategies disagree on this record.
	o := mkStoredOrder("A", "2024-01-05", 1000, 0, orders.ChannelEcommerce, "wholesale_sales")

	svc := NewService(&fakeRepo{orders: []*orders.Order{o}})
	wholesale := orders.ChannelWholesale
	filter := Filter{Channel: &wholesale}

	strict, err := svc.ProfitSummary(context.Background(), filter, orders.StrategyStrict)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strict.TotalOrders != 0 {
		t.Errorf("strict TotalOrders = %d, want 0", strict.TotalOrders)
	}

	heuristic, err := svc.ProfitSummary(context.Background(), filter, orders.StrategyHeuristic)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if heuristic.TotalOrders != 1 {
		t.Errorf("heuristic TotalOrders = %d, want 1", heuristic.TotalOrders)
	}
}

func TestProfitSummaryCacheHit(t *testing.T) {
	repo := &fakeRepo{orders: []*orders.Order{
		mkStoredOrder("A", "2024-01-05", 1000, 400, orders.ChannelRetail, ""),
	}}
	c := newFakeCache()
	svc := NewService(repo, WithCache(c, time.Minute))

	first, err := svc.ProfitSummary(context.Background(), Filter{}, orders.StrategyStrict)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.fetchCalls != 1 || c.sets != 1 {
		t.Fatalf("after first call: fetchCalls=%d sets=%d, want 1/1", repo.fetchCalls, c.sets)
	}

	second, err := svc.ProfitSummary(context.Background(), Filter{}, orders.StrategyStrict)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.fetchCalls != 1 || c.hits != 1 {
		t.Errorf("after second call: fetchCalls=%d hits=%d, want 1/1", repo.fetchCalls, c.hits)
	}
	if second.TotalRevenue != first.TotalRevenue || second.TotalOrders != first.TotalOrders {
		t.Errorf("cached summary = %d/%d, want %d/%d",
			second.TotalOrders, second.TotalRevenue, first.TotalOrders, first.TotalRevenue)
	}
}

func TestProfitSummaryRejectsUnknownStrategy(t *testing.T) {
	svc := NewService(&fakeRepo{orders: []*orders.Order{}})

	if _, err := svc.ProfitSummary(context.Background(), Filter{}, "fuzzy"); err == nil {
		t.Error("expected error for unknown strategy")
	}
}
