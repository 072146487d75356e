package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

type stubIdempotencyStore struct {
	mu      sync.Mutex
	records map[string]string
	lastTTL time.Duration
}

func newStubStore() *stubIdempotencyStore {
	return &stubIdempotencyStore{records: map[string]string{}}
}

func (s *stubIdempotencyStore) Get(ctx context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.records[key]
	if !ok {
		return "", redis.Nil
	}
	return value, nil
}

func (s *stubIdempotencyStore) SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastTTL = ttl
	if _, ok := s.records[key]; ok {
		return false, nil
	}
	s.records[key] = value.(string)
	return true, nil
}

func (s *stubIdempotencyStore) IdempotencyKey(scope, id string) string {
	return "idem:" + scope + ":" + id
}

func guardedHandler(t *testing.T, store *stubIdempotencyStore, hits *int) http.Handler {
	t.Helper()
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*hits++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"data":{"order_number":"ORD-007"}}`))
	})
	return Idempotency(store, 0, nil)(inner)
}

func submitRequest(body, key string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout/submit", strings.NewReader(body))
	if key != "" {
		req.Header.Set("Idempotency-Key", key)
	}
	return req.WithContext(WithSessionID(req.Context(), "sess-1"))
}

func TestIdempotencyReplaysStoredResponse(t *testing.T) {
	store := newStubStore()
	hits := 0
	handler := guardedHandler(t, store, &hits)

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, submitRequest(`{"otp_code":"123456"}`, "key-1"))
	if first.Code != http.StatusOK || hits != 1 {
		t.Fatalf("first call: status %d hits %d", first.Code, hits)
	}

	second := httptest.NewRecorder()
	handler.ServeHTTP(second, submitRequest(`{"otp_code":"123456"}`, "key-1"))
	if hits != 1 {
		t.Fatalf("duplicate submit reached the handler: %d hits", hits)
	}
	if second.Body.String() != first.Body.String() {
		t.Fatalf("replayed body differs: %q vs %q", second.Body.String(), first.Body.String())
	}
}

func TestIdempotencyRejectsKeyReuseWithDifferentBody(t *testing.T) {
	store := newStubStore()
	hits := 0
	handler := guardedHandler(t, store, &hits)

	handler.ServeHTTP(httptest.NewRecorder(), submitRequest(`{"otp_code":"123456"}`, "key-1"))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, submitRequest(`{"otp_code":"654321"}`, "key-1"))
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected conflict on body mismatch, got %d", rec.Code)
	}
	if hits != 1 {
		t.Fatalf("mismatched reuse reached the handler: %d hits", hits)
	}
}

func TestIdempotencyRequiresKeyOnGuardedRoute(t *testing.T) {
	store := newStubStore()
	hits := 0
	handler := guardedHandler(t, store, &hits)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, submitRequest(`{"otp_code":"123456"}`, ""))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected validation failure without key, got %d", rec.Code)
	}
	if hits != 0 {
		t.Fatal("request without key reached the handler")
	}
}

func TestIdempotencyIgnoresUnguardedRoutes(t *testing.T) {
	store := newStubStore()
	hits := 0
	handler := guardedHandler(t, store, &hits)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req = req.WithContext(WithSessionID(req.Context(), "sess-1"))
	handler.ServeHTTP(httptest.NewRecorder(), req)
	if hits != 1 {
		t.Fatal("unguarded route should pass straight through")
	}
}

func TestIdempotencyHonorsConfiguredCheckoutTTL(t *testing.T) {
	configured := 36 * time.Hour

	store := newStubStore()
	hits := 0
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusOK)
	})
	handler := Idempotency(store, configured, nil)(inner)

	handler.ServeHTTP(httptest.NewRecorder(), submitRequest(`{"otp_code":"123456"}`, "key-ttl"))
	if hits != 1 {
		t.Fatalf("expected one handler hit, got %d", hits)
	}
	if store.lastTTL != configured {
		t.Fatalf("expected record stored with configured ttl %v, got %v", configured, store.lastTTL)
	}

	register := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(`{"username":"dana"}`))
	register.Header.Set("Idempotency-Key", "key-reg")
	register = register.WithContext(WithSessionID(register.Context(), "sess-1"))
	handler.ServeHTTP(httptest.NewRecorder(), register)
	if store.lastTTL != registerIdempotencyTTL {
		t.Fatalf("register must keep its fixed ttl, got %v", store.lastTTL)
	}
}

func TestIdempotencyDefaultsCheckoutTTLWhenUnset(t *testing.T) {
	store := newStubStore()
	handler := Idempotency(store, 0, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), submitRequest(`{"otp_code":"123456"}`, "key-default"))
	if store.lastTTL != defaultCheckoutIdempotencyTTL {
		t.Fatalf("expected fallback ttl %v, got %v", defaultCheckoutIdempotencyTTL, store.lastTTL)
	}
}

func TestIdempotencyScopesBySession(t *testing.T) {
	store := newStubStore()
	hits := 0
	handler := guardedHandler(t, store, &hits)

	handler.ServeHTTP(httptest.NewRecorder(), submitRequest(`{"otp_code":"123456"}`, "key-1"))

	other := httptest.NewRequest(http.MethodPost, "/api/v1/checkout/submit", strings.NewReader(`{"otp_code":"123456"}`))
	other.Header.Set("Idempotency-Key", "key-1")
	other = other.WithContext(WithSessionID(other.Context(), "sess-2"))
	handler.ServeHTTP(httptest.NewRecorder(), other)

	if hits != 2 {
		t.Fatalf("same key in another session must not replay: %d hits", hits)
	}
}
