package upstream

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// CreateOrder submits a draft order. The restaurant API sends the customer an
// OTP as a side effect of acceptance.
func (c *Client) CreateOrder(ctx context.Context, input CreateOrderInput) (*Order, error) {
	var order Order
	if err := c.do(ctx, "orders_create", http.MethodPost, "/orders/", nil, input, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// Order fetches a single order by id.
func (c *Client) Order(ctx context.Context, id int64) (*Order, error) {
	var order Order
	path := fmt.Sprintf("/orders/%d", id)
	if err := c.do(ctx, "orders_get", http.MethodGet, path, nil, nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// OrderByNumber fetches an order by its public order number.
func (c *Client) OrderByNumber(ctx context.Context, orderNumber string) (*Order, error) {
	var order Order
	path := "/orders/number/" + url.PathEscape(orderNumber)
	if err := c.do(ctx, "orders_by_number", http.MethodGet, path, nil, nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// VerifyOTP checks a customer's code against a pending order. A wrong code or
// mismatched phone comes back as a validation error, not a transport failure.
func (c *Client) VerifyOTP(ctx context.Context, orderID int64, input VerifyOTPInput) (*VerifyOTPResult, error) {
	var result VerifyOTPResult
	path := fmt.Sprintf("/orders/%d/verify-otp", orderID)
	if err := c.do(ctx, "orders_verify_otp", http.MethodPost, path, nil, input, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Orders lists orders, optionally scoped to one restaurant. A nil restaurantID
// lists across the chain.
func (c *Client) Orders(ctx context.Context, restaurantID *int64) ([]Order, error) {
	var query url.Values
	if restaurantID != nil {
		query = url.Values{}
		query.Set("restaurant_id", strconv.FormatInt(*restaurantID, 10))
	}

	var orders []Order
	if err := c.do(ctx, "orders_list", http.MethodGet, "/orders/", query, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateOrder applies a partial update, including status transitions.
func (c *Client) UpdateOrder(ctx context.Context, id int64, input UpdateOrderInput) (*Order, error) {
	var order Order
	path := fmt.Sprintf("/orders/%d", id)
	if err := c.do(ctx, "orders_update", http.MethodPut, path, nil, input, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// OrderAnalytics fetches the upstream analytics report for one restaurant over
// the inclusive [start, end] window.
func (c *Client) OrderAnalytics(ctx context.Context, restaurantID int64, start, end time.Time) (*Analytics, error) {
	query := url.Values{}
	query.Set("start_date", start.UTC().Format(time.RFC3339))
	query.Set("end_date", end.UTC().Format(time.RFC3339))

	var report Analytics
	path := fmt.Sprintf("/orders/restaurant/%d/analytics", restaurantID)
	if err := c.do(ctx, "orders_analytics", http.MethodGet, path, query, nil, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// DeleteOrder cancels and removes an order.
func (c *Client) DeleteOrder(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/orders/%d", id)
	return c.do(ctx, "orders_delete", http.MethodDelete, path, nil, nil, nil)
}
