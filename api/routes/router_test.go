package routes

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/darshak-ai/restaurant-platform/internal/checkout"
	"github.com/darshak-ai/restaurant-platform/internal/orders"
	"github.com/darshak-ai/restaurant-platform/internal/session"
	"github.com/darshak-ai/restaurant-platform/internal/state"
	"github.com/darshak-ai/restaurant-platform/pkg/config"
	"github.com/darshak-ai/restaurant-platform/pkg/logger"
	"github.com/darshak-ai/restaurant-platform/pkg/upstream"
)

type memorySnapshotter struct {
	mu   sync.Mutex
	data map[string][]byte
}

func (m *memorySnapshotter) Save(_ context.Context, sessionID string, payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[sessionID] = append([]byte(nil), payload...)
	return nil
}

func (m *memorySnapshotter) Load(_ context.Context, sessionID string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	payload, ok := m.data[sessionID]
	return payload, ok, nil
}

func (m *memorySnapshotter) Delete(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, sessionID)
	return nil
}

func testRouter(t *testing.T) http.Handler {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})

	upstreamSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	t.Cleanup(upstreamSrv.Close)

	api, err := upstream.NewClient(upstreamSrv.URL, 5*time.Second)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	states, err := state.NewStore(&memorySnapshotter{data: map[string][]byte{}}, logg)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	sessions, err := session.NewService(api, states, logg)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	observer, err := session.NewObserver(states, logg)
	if err != nil {
		t.Fatalf("NewObserver: %v", err)
	}
	checkoutSvc, err := checkout.NewService(api, time.Second, 6, false)
	if err != nil {
		t.Fatalf("checkout.NewService: %v", err)
	}
	reporter, err := orders.NewReporter(api)
	if err != nil {
		t.Fatalf("NewReporter: %v", err)
	}

	cfg := &config.Config{}
	cfg.App.Env = "test"
	cfg.Session.CookieName = "restaurant-app-session"
	cfg.Session.TTL = time.Hour

	return NewRouter(Deps{
		Config:   cfg,
		Logger:   logg,
		API:      api,
		States:   states,
		Sessions: sessions,
		Observer: observer,
		Checkout: checkoutSvc,
		Reporter: reporter,
		TaxRate:  decimal.RequireFromString("0.0875"),
		Pingers: map[string]func(r *http.Request) error{
			"redis": func(*http.Request) error { return nil },
		},
	})
}

func TestHealthEndpoints(t *testing.T) {
	router := testRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("live: expected 200, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("ready: expected 200, got %d", rec.Code)
	}
	var envelope struct {
		Data map[string]string `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decoding ready response: %v", err)
	}
	if envelope.Data["redis"] != "ok" {
		t.Fatalf("expected redis ok, got %+v", envelope.Data)
	}
}

func TestSessionCookieMinted(t *testing.T) {
	router := testRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var minted bool
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == "restaurant-app-session" && cookie.Value != "" {
			minted = true
		}
	}
	if !minted {
		t.Fatal("expected a session cookie on first contact")
	}
}

func TestAdminRoutesRequireAuth(t *testing.T) {
	router := testRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/admin/orders", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for anonymous admin access, got %d", rec.Code)
	}
}

func TestUnknownRoute(t *testing.T) {
	router := testRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/nope", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestMetricsExposed(t *testing.T) {
	router := testRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from metrics, got %d", rec.Code)
	}
}
