package reports

import (
	"sort"

	"github.com/montanaflynn/stats"

	"retailhub/internal/core/apperror"
	"retailhub/internal/core/types"
	"retailhub/internal/domain/orders"
)

// Aggregate computes a profit Summary over already-classified orders.
//
// It is a pure function of its arguments: inputs are never mutated and the
// same inputs always produce the same output. Records missing an order date
// are skipped and counted, never fatal. The stored totalAmount is
// authoritative for revenue; item sums are never recomputed because
// historical records drift from them.
//
// A nil orders slice is invalid arguments, not empty data.
func Aggregate(orderList []*orders.Order, filter Filter) (Summary, error) {
	if orderList == nil {
		return Summary{}, apperror.NewValidation("orders must not be nil")
	}
	if err := filter.Range.Validate(); err != nil {
		return Summary{}, err
	}

	topN := filter.TopN
	if topN <= 0 {
		topN = DefaultTopN
	}

	summary := Summary{
		ByStore:   []StoreBreakdown{},
		ByProduct: []ProductBreakdown{},
		ByDay:     []DayPoint{},
	}

	type storeAcc struct {
		order int
		row   StoreBreakdown
	}
	type productAcc struct {
		order int
		row   ProductBreakdown
	}

	storeRows := make(map[string]*storeAcc)
	productRows := make(map[string]*productAcc)
	dayRows := make(map[string]*DayPoint)
	amounts := make([]float64, 0, len(orderList))

	for _, o := range orderList {
		if o == nil || o.OrderDate == "" {
			summary.SkippedCount++
			continue
		}
		if !filter.Range.Contains(o.OrderDate) {
			continue
		}
		if filter.StoreID != nil && o.StoreID != *filter.StoreID {
			continue
		}
		if filter.Channel != nil && o.Channel != *filter.Channel {
			continue
		}

		profit := o.Profit()

		summary.TotalOrders++
		summary.TotalRevenue += o.TotalAmount
		summary.TotalCost += o.TotalCost
		amounts = append(amounts, float64(o.TotalAmount))

		sa, ok := storeRows[o.StoreName]
		if !ok {
			sa = &storeAcc{
				order: len(storeRows),
				row:   StoreBreakdown{StoreName: o.StoreName},
			}
			storeRows[o.StoreName] = sa
		}
		sa.row.Orders++
		sa.row.Revenue += o.TotalAmount
		sa.row.Cost += o.TotalCost
		sa.row.Profit += profit

		// Item lines have no per-line cost on legacy records; product cost
		// is apportioned from the order cost by revenue share.
		for _, it := range o.Items {
			pa, ok := productRows[it.ProductName]
			if !ok {
				pa = &productAcc{
					order: len(productRows),
					row:   ProductBreakdown{ProductName: it.ProductName},
				}
				productRows[it.ProductName] = pa
			}
			pa.row.Quantity += it.Quantity
			pa.row.Revenue += it.Total
			if o.TotalAmount != 0 {
				share := float64(it.Total) / float64(o.TotalAmount)
				pa.row.Cost += types.MinorUnits(share * float64(o.TotalCost))
			}
		}

		dp, ok := dayRows[o.OrderDate]
		if !ok {
			dp = &DayPoint{Date: o.OrderDate}
			dayRows[o.OrderDate] = dp
		}
		dp.Orders++
		dp.Revenue += o.TotalAmount
		dp.Profit += profit
	}

	summary.TotalProfit = summary.TotalRevenue - summary.TotalCost
	if summary.TotalRevenue != 0 {
		summary.ProfitMargin = float64(summary.TotalProfit) / float64(summary.TotalRevenue) * 100
	}

	if len(amounts) > 0 {
		// Mean and median over a non-empty slice cannot fail.
		summary.AvgOrderValue, _ = stats.Mean(amounts)
		summary.MedianOrderValue, _ = stats.Median(amounts)
	}

	// byStore: profit descending, ties keep encounter order.
	storeList := make([]*storeAcc, 0, len(storeRows))
	for _, sa := range storeRows {
		storeList = append(storeList, sa)
	}
	sort.SliceStable(storeList, func(i, j int) bool {
		return storeList[i].order < storeList[j].order
	})
	sort.SliceStable(storeList, func(i, j int) bool {
		return storeList[i].row.Profit > storeList[j].row.Profit
	})
	for i, sa := range storeList {
		if i >= topN {
			break
		}
		summary.ByStore = append(summary.ByStore, sa.row)
	}

	// byProduct: same ordering rules.
	productList := make([]*productAcc, 0, len(productRows))
	for _, pa := range productRows {
		pa.row.Profit = pa.row.Revenue - pa.row.Cost
		productList = append(productList, pa)
	}
	sort.SliceStable(productList, func(i, j int) bool {
		return productList[i].order < productList[j].order
	})
	sort.SliceStable(productList, func(i, j int) bool {
		return productList[i].row.Profit > productList[j].row.Profit
	})
	for i, pa := range productList {
		if i >= topN {
			break
		}
		summary.ByProduct = append(summary.ByProduct, pa.row)
	}

	// byDay: ascending by date for trend display, no truncation.
	for _, dp := range dayRows {
		summary.ByDay = append(summary.ByDay, *dp)
	}
	sort.Slice(summary.ByDay, func(i, j int) bool {
		return summary.ByDay[i].Date < summary.ByDay[j].Date
	})

	return summary, nil
}
