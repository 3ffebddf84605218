// Package analytics derives business metrics from cleaned commerce and
// traffic records. All computations are pure, synchronous transforms over
// in-memory slices; outputs are freshly allocated and never alias the input.
//
// The package is organized into focused modules:
//   - financial.go: scalar financial KPIs (revenue, refunds, AOV)
//   - revenue.go: revenue time series by calendar month and year
//   - products.go: per-product sales and refund breakdowns
//   - traffic.go: session/pageview analytics (bounce rate, sources, timeline)
//   - snapshot.go: full metric snapshot with per-metric error recovery
package analytics

// MetricCountResult represents a generic key-count pair for breakdown results
type MetricCountResult struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// sortable ordering used by every descending breakdown: count first, then
// name ascending so equal counts produce a stable order.
func lessByCountDesc(a, b MetricCountResult) bool {
	if a.Count != b.Count {
		return a.Count > b.Count
	}
	return a.Name < b.Name
}
