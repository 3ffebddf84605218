package analytics

import (
	"sort"

	"shoplens/internal/records"
)

// PeriodRevenue is one bucket of an ordered revenue time series.
type PeriodRevenue struct {
	Period  string  `json:"period"`
	Revenue float64 `json:"revenue"`
}

// Period key layouts. Zero-padded so lexicographic order is chronological.
const (
	monthPeriodLayout = "2006-01"
	yearPeriodLayout  = "2006"
)

// RevenueByMonth groups orders by calendar month and sums revenue per
// bucket, ascending by period. Months with no orders are omitted; the series
// is sparse and consumers must handle gaps.
func RevenueByMonth(orders []records.Order) []PeriodRevenue {
	return revenueByPeriod(orders, monthPeriodLayout)
}

// RevenueByYear groups orders by calendar year, ascending, sparse.
func RevenueByYear(orders []records.Order) []PeriodRevenue {
	return revenueByPeriod(orders, yearPeriodLayout)
}

func revenueByPeriod(orders []records.Order, layout string) []PeriodRevenue {
	buckets := make(map[string]float64)
	for _, order := range orders {
		buckets[order.CreatedAt.Format(layout)] += order.TotalAmount
	}

	series := make([]PeriodRevenue, 0, len(buckets))
	for period, revenue := range buckets {
		series = append(series, PeriodRevenue{Period: period, Revenue: revenue})
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Period < series[j].Period })
	return series
}
