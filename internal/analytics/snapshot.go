package analytics

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"shoplens/internal/pkg/async"
	"shoplens/internal/records"
)

// Snapshot is the complete derived-metric payload for one dataset state.
// Every field has a defined fallback: a metric whose computation failed is
// zeroed/emptied and reported in Errors under its task name, so a partial
// failure never propagates as an unhandled error to the caller.
type Snapshot struct {
	Financial        FinancialMetrics  `json:"financial"`
	RevenueByMonth   []PeriodRevenue   `json:"revenue_by_month"`
	RevenueByYear    []PeriodRevenue   `json:"revenue_by_year"`
	OrdersByProduct  []ProductSales    `json:"orders_by_product"`
	RefundsByProduct []ProductRefunds  `json:"refunds_by_product"`
	Traffic          TrafficMetrics    `json:"traffic"`
	Errors           map[string]string `json:"errors,omitempty"`
	ComputedAt       time.Time         `json:"computed_at"`
}

const snapshotWorkers = 4

// Snapshot task names, also the keys of Snapshot.Errors.
const (
	taskFinancial        = "financial"
	taskRevenueByMonth   = "revenueByMonth"
	taskRevenueByYear    = "revenueByYear"
	taskOrdersByProduct  = "ordersByProduct"
	taskRefundsByProduct = "refundsByProduct"
	taskTraffic          = "traffic"
)

// BuildSnapshot computes every metric object over the cleaned dataset.
// Computations run through the worker pool; a panicking or failing task is
// recovered at the task boundary and replaced with its fallback value.
func BuildSnapshot(ctx context.Context, logger *slog.Logger, data records.Dataset) *Snapshot {
	tasks := []async.Task{
		guarded(taskFinancial, func() (interface{}, error) {
			return GetFinancialMetrics(data.Orders, data.Refunds), nil
		}),
		guarded(taskRevenueByMonth, func() (interface{}, error) {
			return RevenueByMonth(data.Orders), nil
		}),
		guarded(taskRevenueByYear, func() (interface{}, error) {
			return RevenueByYear(data.Orders), nil
		}),
		guarded(taskOrdersByProduct, func() (interface{}, error) {
			return OrdersByProduct(data.OrderItems, data.Products), nil
		}),
		guarded(taskRefundsByProduct, func() (interface{}, error) {
			return RefundsByProduct(data.Refunds, data.OrderItems, data.Products), nil
		}),
		guarded(taskTraffic, func() (interface{}, error) {
			return ComputeTrafficMetrics(data.Sessions, data.Pageviews), nil
		}),
	}

	pool := async.NewPool(snapshotWorkers)
	results := pool.Execute(ctx, tasks)

	snapshot := &Snapshot{
		RevenueByMonth:   []PeriodRevenue{},
		RevenueByYear:    []PeriodRevenue{},
		OrdersByProduct:  []ProductSales{},
		RefundsByProduct: []ProductRefunds{},
		Traffic: TrafficMetrics{
			DeviceCounts:    map[string]int{},
			Sources:         []SourceStat{},
			Campaigns:       []MetricCountResult{},
			Timeline:        []TimelinePoint{},
			TopLandingPages: []MetricCountResult{},
		},
		Errors:     make(map[string]string),
		ComputedAt: time.Now().UTC(),
	}

	for name, result := range results {
		if result.Err != nil {
			logger.Error("metric computation failed",
				slog.String("metric", name),
				slog.Any("error", result.Err))
			snapshot.Errors[name] = result.Err.Error()
			continue
		}
		snapshot.assign(name, result.Data)
	}

	// Tasks that never reported (cancelled context) keep their fallback and
	// are surfaced the same way as failed ones.
	for _, task := range tasks {
		if _, ok := results[task.Name]; !ok {
			snapshot.Errors[task.Name] = "computation cancelled"
		}
	}

	if len(snapshot.Errors) == 0 {
		snapshot.Errors = nil
	}
	return snapshot
}

func (s *Snapshot) assign(name string, data interface{}) {
	switch name {
	case taskFinancial:
		if v, ok := data.(FinancialMetrics); ok {
			s.Financial = v
		}
	case taskRevenueByMonth:
		if v, ok := data.([]PeriodRevenue); ok {
			s.RevenueByMonth = v
		}
	case taskRevenueByYear:
		if v, ok := data.([]PeriodRevenue); ok {
			s.RevenueByYear = v
		}
	case taskOrdersByProduct:
		if v, ok := data.([]ProductSales); ok {
			s.OrdersByProduct = v
		}
	case taskRefundsByProduct:
		if v, ok := data.([]ProductRefunds); ok {
			s.RefundsByProduct = v
		}
	case taskTraffic:
		if v, ok := data.(TrafficMetrics); ok {
			s.Traffic = v
		}
	}
}

// guarded wraps a task so an unexpected panic inside a computation becomes a
// per-metric error instead of taking down the batch.
func guarded(name string, fn func() (interface{}, error)) async.Task {
	return async.Task{
		Name: name,
		Execute: func() (data interface{}, err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("panic in %s: %v", name, r)
				}
			}()
			return fn()
		},
	}
}
