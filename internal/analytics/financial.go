package analytics

import "shoplens/internal/records"

// FinancialMetrics holds the scalar financial KPIs for the dashboard header.
// RefundRate is a fraction of revenue (0.1667 for 25 refunded out of 150);
// NetRevenue may go negative and is deliberately not clamped.
type FinancialMetrics struct {
	TotalOrders       int     `json:"total_orders"`
	TotalRevenue      float64 `json:"total_revenue"`
	TotalRefunds      float64 `json:"total_refunds"`
	RefundRate        float64 `json:"refund_rate"`
	AverageOrderValue float64 `json:"average_order_value"`
	NetRevenue        float64 `json:"net_revenue"`
}

// TotalRevenue sums order totals.
func TotalRevenue(orders []records.Order) float64 {
	var total float64
	for _, order := range orders {
		total += order.TotalAmount
	}
	return total
}

// TotalRefunds sums refunded amounts.
func TotalRefunds(refunds []records.Refund) float64 {
	var total float64
	for _, refund := range refunds {
		total += refund.Amount
	}
	return total
}

// RefundRate returns refunded amount over revenue, 0 when there is no
// revenue regardless of refunds.
func RefundRate(totalRefunds, totalRevenue float64) float64 {
	if totalRevenue <= 0 {
		return 0
	}
	return totalRefunds / totalRevenue
}

// AverageOrderValue returns revenue per order, 0 for an empty order set.
func AverageOrderValue(totalRevenue float64, orderCount int) float64 {
	if orderCount <= 0 {
		return 0
	}
	return totalRevenue / float64(orderCount)
}

// GetFinancialMetrics computes the full scalar KPI set. Every ratio is
// zero-guarded so an empty dataset yields all-zero metrics, never NaN.
func GetFinancialMetrics(orders []records.Order, refunds []records.Refund) FinancialMetrics {
	totalRevenue := TotalRevenue(orders)
	totalRefunds := TotalRefunds(refunds)

	return FinancialMetrics{
		TotalOrders:       len(orders),
		TotalRevenue:      totalRevenue,
		TotalRefunds:      totalRefunds,
		RefundRate:        RefundRate(totalRefunds, totalRevenue),
		AverageOrderValue: AverageOrderValue(totalRevenue, len(orders)),
		NetRevenue:        totalRevenue - totalRefunds,
	}
}
