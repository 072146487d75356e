package upstream

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	pkgerrors "github.com/darshak-ai/restaurant-platform/pkg/errors"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     http.Header{},
	}
}

func newTestClient(t *testing.T, rt roundTripFunc, opts ...Option) *Client {
	t.Helper()
	opts = append([]Option{WithHTTPClient(&http.Client{Transport: rt})}, opts...)
	client, err := NewClient("http://restaurant.test", 5*time.Second, opts...)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client
}

func TestClientAttachesBearerToken(t *testing.T) {
	var capturedAuth string
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		capturedAuth = req.Header.Get("Authorization")
		return jsonResponse(http.StatusOK, `{"id":1,"email":"a@b.c","username":"admin","full_name":"Admin","role":"admin","is_active":true,"is_verified":true}`), nil
	})

	client := newTestClient(t, rt, WithTokenSource(TokenFunc(func(context.Context) string {
		return "session-token"
	})))

	user, err := client.CurrentUser(context.Background())
	if err != nil {
		t.Fatalf("current user: %v", err)
	}
	if capturedAuth != "Bearer session-token" {
		t.Fatalf("unexpected authorization header %q", capturedAuth)
	}
	if user.Username != "admin" {
		t.Fatalf("unexpected user %+v", user)
	}
}

func TestClientOmitsAuthorizationWhenAnonymous(t *testing.T) {
	var sawAuthHeader bool
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		_, sawAuthHeader = req.Header["Authorization"]
		return jsonResponse(http.StatusOK, `[]`), nil
	})

	client := newTestClient(t, rt)
	if _, err := client.Restaurants(context.Background()); err != nil {
		t.Fatalf("restaurants: %v", err)
	}
	if sawAuthHeader {
		t.Fatal("authorization header sent for anonymous session")
	}
}

func TestClientUnauthorizedMapsToTypedError(t *testing.T) {
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusUnauthorized, `{"detail":"Could not validate credentials"}`), nil
	})

	client := newTestClient(t, rt)
	_, err := client.CurrentUser(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if !pkgerrors.IsUnauthorized(err) {
		t.Fatalf("expected unauthorized error, got %v", err)
	}
}

func TestClientSurfacesUpstreamDetail(t *testing.T) {
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusBadRequest, `{"detail":"Invalid or expired OTP"}`), nil
	})

	client := newTestClient(t, rt)
	_, err := client.VerifyOTP(context.Background(), 42, VerifyOTPInput{
		PhoneNumber: "+15550001111",
		OTPCode:     "123456",
	})
	if err == nil {
		t.Fatal("expected error")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if !strings.Contains(typed.Message(), "Invalid or expired OTP") {
		t.Fatalf("upstream detail lost: %q", typed.Message())
	}
}

func TestClientNearbyRestaurantsQuery(t *testing.T) {
	var capturedURL string
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		capturedURL = req.URL.String()
		return jsonResponse(http.StatusOK, `[{"id":1,"name":"Downtown","latitude":40.71,"longitude":-74.0,"is_active":true}]`), nil
	})

	client := newTestClient(t, rt)
	restaurants, err := client.NearbyRestaurants(context.Background(), 40.7128, -74.006, 10)
	if err != nil {
		t.Fatalf("nearby: %v", err)
	}
	if capturedURL != "http://restaurant.test/restaurants/nearby?latitude=40.7128&longitude=-74.006&radius=10" {
		t.Fatalf("unexpected URL %q", capturedURL)
	}
	if len(restaurants) != 1 || restaurants[0].Name != "Downtown" {
		t.Fatalf("unexpected result %+v", restaurants)
	}
}

func TestClientCreateOrderSendsNullModifiers(t *testing.T) {
	var capturedBody map[string]any
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		raw, err := io.ReadAll(req.Body)
		if err != nil {
			t.Fatalf("read body: %v", err)
		}
		if err := json.Unmarshal(raw, &capturedBody); err != nil {
			t.Fatalf("unmarshal body: %v", err)
		}
		return jsonResponse(http.StatusOK, `{"id":7,"order_number":"ORD-007","restaurant_id":1,"customer_name":"Dana","customer_phone":"+15550001111","order_type":"pickup","items":[],"subtotal":25.5,"tax_amount":2.23,"total_amount":27.73,"status":"pending"}`), nil
	})

	client := newTestClient(t, rt)
	order, err := client.CreateOrder(context.Background(), CreateOrderInput{
		RestaurantID:  1,
		CustomerName:  "Dana",
		CustomerPhone: "+15550001111",
		OrderType:     "pickup",
		Items: []OrderItemInput{
			{MenuItemID: 3, Quantity: 2},
		},
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	if order.OrderNumber != "ORD-007" {
		t.Fatalf("unexpected order %+v", order)
	}

	items, ok := capturedBody["items"].([]any)
	if !ok || len(items) != 1 {
		t.Fatalf("unexpected items payload %+v", capturedBody["items"])
	}
	line := items[0].(map[string]any)
	if modifiers, present := line["modifiers"]; !present || modifiers != nil {
		t.Fatalf("modifiers must be explicit null, got %+v", line)
	}
}

func TestClientRejectsMalformedResponse(t *testing.T) {
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		// missing required name
		return jsonResponse(http.StatusOK, `{"id":9,"restaurant_id":1,"is_default":true,"is_active":true,"categories":[],"items":[]}`), nil
	})

	client := newTestClient(t, rt)
	_, err := client.Menu(context.Background(), 9)
	if err == nil {
		t.Fatal("expected malformed-response error")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUpstream {
		t.Fatalf("expected upstream error, got %v", err)
	}
}

func TestClientAnalyticsWindowEncoding(t *testing.T) {
	var capturedQuery string
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		capturedQuery = req.URL.RawQuery
		return jsonResponse(http.StatusOK, `{"total_orders":2,"total_revenue":55.46,"average_order_value":27.73,"period":{"start_date":"2026-07-30T00:00:00Z","end_date":"2026-08-29T00:00:00Z"}}`), nil
	})

	client := newTestClient(t, rt)
	start := time.Date(2026, 7, 30, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)
	report, err := client.OrderAnalytics(context.Background(), 1, start, end)
	if err != nil {
		t.Fatalf("analytics: %v", err)
	}
	if !strings.Contains(capturedQuery, "start_date=2026-07-30T00%3A00%3A00Z") {
		t.Fatalf("unexpected query %q", capturedQuery)
	}
	if report.TotalOrders != 2 || report.AverageOrderValue != 27.73 {
		t.Fatalf("unexpected report %+v", report)
	}
}
