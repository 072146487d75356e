// Package orders covers the admin-side order reporting that the restaurant
// API does not provide chain-wide: when no restaurant is scoped, the report is
// aggregated here from the raw order list.
package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/darshak-ai/restaurant-platform/pkg/enums"
	"github.com/darshak-ai/restaurant-platform/pkg/upstream"
)

// AnalyticsWindow is how far back a restaurant-scoped report reaches.
const AnalyticsWindow = 30 * 24 * time.Hour

// Summary is the chain-wide aggregation, shaped like the upstream report with
// the status counts the admin dashboard adds.
type Summary struct {
	TotalOrders       int     `json:"total_orders"`
	TotalRevenue      float64 `json:"total_revenue"`
	AverageOrderValue float64 `json:"average_order_value"`
	PendingOrders     int     `json:"pending_orders"`
	CompletedOrders   int     `json:"completed_orders"`
	CancelledOrders   int     `json:"cancelled_orders"`
}

// Aggregate folds the raw order list into a Summary.
func Aggregate(list []upstream.Order) Summary {
	summary := Summary{TotalOrders: len(list)}
	for _, order := range list {
		summary.TotalRevenue += order.TotalAmount
		switch order.Status {
		case enums.OrderStatusPending:
			summary.PendingOrders++
		case enums.OrderStatusCompleted:
			summary.CompletedOrders++
		case enums.OrderStatusCancelled:
			summary.CancelledOrders++
		}
	}
	if summary.TotalOrders > 0 {
		summary.AverageOrderValue = summary.TotalRevenue / float64(summary.TotalOrders)
	}
	return summary
}

type orderLister interface {
	Orders(ctx context.Context, restaurantID *int64) ([]upstream.Order, error)
	OrderAnalytics(ctx context.Context, restaurantID int64, start, end time.Time) (*upstream.Analytics, error)
}

// Reporter answers admin analytics queries, delegating to the restaurant API
// when a restaurant is scoped and aggregating locally otherwise.
type Reporter struct {
	api orderLister
	now func() time.Time
}

// NewReporter builds the analytics reporter.
func NewReporter(api orderLister) (*Reporter, error) {
	if api == nil {
		return nil, fmt.Errorf("order API required")
	}
	return &Reporter{api: api, now: time.Now}, nil
}

// WithClock replaces the reporter's clock. Test hook.
func (r *Reporter) WithClock(now func() time.Time) *Reporter {
	if now != nil {
		r.now = now
	}
	return r
}

// Report produces analytics. A non-nil restaurantID asks the restaurant API
// for the trailing 30 days; nil aggregates the full chain-wide order list.
func (r *Reporter) Report(ctx context.Context, restaurantID *int64) (any, error) {
	if restaurantID != nil {
		end := r.now()
		start := end.Add(-AnalyticsWindow)
		report, err := r.api.OrderAnalytics(ctx, *restaurantID, start, end)
		if err != nil {
			return nil, err
		}
		return report, nil
	}

	list, err := r.api.Orders(ctx, nil)
	if err != nil {
		return nil, err
	}
	return Aggregate(list), nil
}
