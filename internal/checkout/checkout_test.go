package checkout

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/darshak-ai/restaurant-platform/internal/cart"
	"github.com/darshak-ai/restaurant-platform/pkg/enums"
	pkgerrors "github.com/darshak-ai/restaurant-platform/pkg/errors"
	"github.com/darshak-ai/restaurant-platform/pkg/upstream"
)

type stubPlacer struct {
	createCalls  int
	verifyCalls  int
	createErr    error
	verifyErr    error
	verified     bool
	lastInput    upstream.CreateOrderInput
	lastOTPInput upstream.VerifyOTPInput
	order        upstream.Order
}

func (s *stubPlacer) CreateOrder(ctx context.Context, input upstream.CreateOrderInput) (*upstream.Order, error) {
	s.createCalls++
	s.lastInput = input
	if s.createErr != nil {
		return nil, s.createErr
	}
	order := s.order
	return &order, nil
}

func (s *stubPlacer) VerifyOTP(ctx context.Context, orderID int64, input upstream.VerifyOTPInput) (*upstream.VerifyOTPResult, error) {
	s.verifyCalls++
	s.lastOTPInput = input
	if s.verifyErr != nil {
		return nil, s.verifyErr
	}
	return &upstream.VerifyOTPResult{Verified: s.verified}, nil
}

func filledCart(t *testing.T) *cart.Cart {
	t.Helper()
	c := cart.New()
	price, err := decimal.NewFromString("10.00")
	if err != nil {
		t.Fatalf("parse price: %v", err)
	}
	c.Add(cart.Item{ID: 3, Name: "Burger", Price: price, Quantity: 2, SpecialInstructions: "no onions"})
	return c
}

func validDraft() Draft {
	return Draft{
		RestaurantID:  1,
		CustomerName:  "Dana",
		CustomerPhone: "+15550001111",
		OrderType:     enums.OrderTypePickup,
	}
}

func newService(t *testing.T, placer *stubPlacer, allowBypass bool) *Service {
	t.Helper()
	svc, err := NewService(placer, 3*time.Second, 6, allowBypass)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func pendingCheckout(t *testing.T, svc *Service, c *cart.Cart) *Checkout {
	t.Helper()
	co, err := svc.Begin(c, validDraft())
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if err := svc.RequestVerification(co); err != nil {
		t.Fatalf("request verification: %v", err)
	}
	return co
}

func TestBeginRejectsIncompleteDraft(t *testing.T) {
	svc := newService(t, &stubPlacer{}, false)
	c := filledCart(t)

	draft := validDraft()
	draft.CustomerName = "   "
	draft.CustomerPhone = ""

	_, err := svc.Begin(c, draft)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	details, ok := typed.Details().(map[string]any)
	if !ok {
		t.Fatalf("expected missing-field details, got %+v", typed.Details())
	}
	missing := details["missing"].([]string)
	if len(missing) != 2 {
		t.Fatalf("expected two missing fields, got %v", missing)
	}
}

func TestBeginRejectsEmptyCart(t *testing.T) {
	svc := newService(t, &stubPlacer{}, false)
	_, err := svc.Begin(cart.New(), validDraft())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for empty cart, got %v", err)
	}
}

func TestBeginAcceptsOptionalEmail(t *testing.T) {
	svc := newService(t, &stubPlacer{}, false)
	co, err := svc.Begin(filledCart(t), validDraft())
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if co.Step != enums.CheckoutStepCollectingInfo {
		t.Fatalf("expected collecting_info, got %s", co.Step)
	}
}

func TestSubmitRejectsMalformedCodeLocally(t *testing.T) {
	placer := &stubPlacer{}
	svc := newService(t, placer, false)
	c := filledCart(t)
	co := pendingCheckout(t, svc, c)

	for _, code := range []string{"", "12345", "1234567", "abc", "12-34-5"} {
		err := svc.Submit(context.Background(), co, c, code)
		typed := pkgerrors.As(err)
		if typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("code %q: expected validation error, got %v", code, err)
		}
		if co.Step != enums.CheckoutStepOTPPending {
			t.Fatalf("code %q: step should stay otp_pending, got %s", code, co.Step)
		}
	}
	if placer.createCalls != 0 || placer.verifyCalls != 0 {
		t.Fatalf("malformed codes must not reach the network: %d/%d calls", placer.createCalls, placer.verifyCalls)
	}
}

func TestSubmitAcceptsCodeWithSeparators(t *testing.T) {
	placer := &stubPlacer{
		verified: true,
		order:    upstream.Order{ID: 7, OrderNumber: "ORD-007", TotalAmount: 27.73, OrderType: enums.OrderTypePickup},
	}
	svc := newService(t, placer, false)
	c := filledCart(t)
	co := pendingCheckout(t, svc, c)

	if err := svc.Submit(context.Background(), co, c, "123-456"); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if placer.lastOTPInput.OTPCode != "123456" {
		t.Fatalf("expected normalized code, got %q", placer.lastOTPInput.OTPCode)
	}
	if co.Step != enums.CheckoutStepProcessing {
		t.Fatalf("expected processing, got %s", co.Step)
	}
}

func TestSubmitMapsCartLines(t *testing.T) {
	placer := &stubPlacer{verified: true, order: upstream.Order{ID: 7}}
	svc := newService(t, placer, false)
	c := filledCart(t)
	co := pendingCheckout(t, svc, c)

	if err := svc.Submit(context.Background(), co, c, "123456"); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if len(placer.lastInput.Items) != 1 {
		t.Fatalf("expected one order line, got %d", len(placer.lastInput.Items))
	}
	line := placer.lastInput.Items[0]
	if line.MenuItemID != 3 || line.Quantity != 2 || line.SpecialInstructions != "no onions" {
		t.Fatalf("unexpected line %+v", line)
	}
	if line.Modifiers != nil {
		t.Fatalf("modifiers must be nil, got %+v", line.Modifiers)
	}
}

func TestVerificationFailureReentersOTPPending(t *testing.T) {
	placer := &stubPlacer{verified: false, order: upstream.Order{ID: 7}}
	svc := newService(t, placer, false)
	c := filledCart(t)
	co := pendingCheckout(t, svc, c)
	draftBefore := co.Draft

	err := svc.Submit(context.Background(), co, c, "123456")
	if err == nil {
		t.Fatal("expected verification failure")
	}
	if co.Step != enums.CheckoutStepOTPPending {
		t.Fatalf("expected otp_pending after failure, got %s", co.Step)
	}
	if co.ErrorMessage == "" {
		t.Fatal("expected surfaced error message")
	}
	if co.Draft != draftBefore {
		t.Fatalf("draft changed: %+v", co.Draft)
	}
	if c.Empty() || c.ItemCount() != 2 {
		t.Fatal("cart must stay untouched on verification failure")
	}
}

func TestSubmissionFailureEntersErrorState(t *testing.T) {
	placer := &stubPlacer{createErr: pkgerrors.New(pkgerrors.CodeUpstream, "orders_create failed with status 500: no detail")}
	svc := newService(t, placer, false)
	c := filledCart(t)
	co := pendingCheckout(t, svc, c)

	if err := svc.Submit(context.Background(), co, c, "123456"); err == nil {
		t.Fatal("expected submission failure")
	}
	if co.Step != enums.CheckoutStepError {
		t.Fatalf("expected error step, got %s", co.Step)
	}
	if co.ErrorMessage != "Failed to submit order. Please try again." {
		t.Fatalf("expected generic fallback, got %q", co.ErrorMessage)
	}
	if c.Empty() {
		t.Fatal("cart must survive a failed submission")
	}

	if err := svc.Retry(co); err != nil {
		t.Fatalf("retry: %v", err)
	}
	if co.Step != enums.CheckoutStepOTPPending || co.ErrorMessage != "" {
		t.Fatalf("retry should re-enter otp_pending cleanly, got %s %q", co.Step, co.ErrorMessage)
	}
}

func TestSubmissionFailureSurfacesServerReason(t *testing.T) {
	placer := &stubPlacer{createErr: pkgerrors.New(pkgerrors.CodeValidation, "Restaurant is closed")}
	svc := newService(t, placer, false)
	c := filledCart(t)
	co := pendingCheckout(t, svc, c)

	_ = svc.Submit(context.Background(), co, c, "123456")
	if co.ErrorMessage != "Restaurant is closed" {
		t.Fatalf("expected server-reported reason, got %q", co.ErrorMessage)
	}
}

func TestSubmitOutsideOTPPendingIsStateConflict(t *testing.T) {
	placer := &stubPlacer{verified: true, order: upstream.Order{ID: 7}}
	svc := newService(t, placer, false)
	c := filledCart(t)
	co, err := svc.Begin(c, validDraft())
	if err != nil {
		t.Fatalf("begin: %v", err)
	}

	err = svc.Submit(context.Background(), co, c, "123456")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}
	if placer.createCalls != 0 {
		t.Fatal("conflicting submit must not create an order")
	}
}

func TestResolveClearsCartOnlyAfterDelay(t *testing.T) {
	placer := &stubPlacer{verified: true, order: upstream.Order{ID: 7, OrderNumber: "ORD-007", TotalAmount: 27.73, OrderType: enums.OrderTypePickup, EstimatedReadyTime: "2026-08-29T18:30:00Z"}}
	svc := newService(t, placer, false)

	current := time.Date(2026, 8, 29, 18, 0, 0, 0, time.UTC)
	svc.WithClock(func() time.Time { return current })

	c := filledCart(t)
	co := pendingCheckout(t, svc, c)
	if err := svc.Submit(context.Background(), co, c, "123456"); err != nil {
		t.Fatalf("submit: %v", err)
	}

	if svc.Resolve(co, c) {
		t.Fatal("resolve fired before the settlement delay")
	}
	if c.Empty() {
		t.Fatal("cart cleared during processing")
	}

	current = current.Add(3 * time.Second)
	if !svc.Resolve(co, c) {
		t.Fatal("resolve should fire once the delay elapses")
	}
	if co.Step != enums.CheckoutStepSuccess {
		t.Fatalf("expected success, got %s", co.Step)
	}
	if !c.Empty() {
		t.Fatal("cart must clear on success")
	}

	conf := co.Confirmation()
	if conf == nil || conf.OrderNumber != "ORD-007" || conf.TotalAmount != 27.73 {
		t.Fatalf("unexpected confirmation %+v", conf)
	}
	if conf.EstimatedReadyTime != "2026-08-29T18:30:00Z" {
		t.Fatalf("unexpected ready time %q", conf.EstimatedReadyTime)
	}
}

func TestBypassRequiresFlag(t *testing.T) {
	placer := &stubPlacer{order: upstream.Order{ID: 7}}
	svc := newService(t, placer, false)
	c := filledCart(t)
	co := pendingCheckout(t, svc, c)

	err := svc.Bypass(context.Background(), co, c)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden without flag, got %v", err)
	}
	if placer.createCalls != 0 {
		t.Fatal("bypass without flag must not create an order")
	}
}

func TestBypassWithFlagSkipsVerification(t *testing.T) {
	placer := &stubPlacer{order: upstream.Order{ID: 7, OrderNumber: "ORD-007"}}
	svc := newService(t, placer, true)
	c := filledCart(t)
	co := pendingCheckout(t, svc, c)

	if err := svc.Bypass(context.Background(), co, c); err != nil {
		t.Fatalf("bypass: %v", err)
	}
	if co.Step != enums.CheckoutStepProcessing {
		t.Fatalf("expected processing, got %s", co.Step)
	}
	if placer.verifyCalls != 0 {
		t.Fatal("bypass must not call verification")
	}
}

func TestAbandonLeavesCartAlone(t *testing.T) {
	svc := newService(t, &stubPlacer{}, false)
	c := filledCart(t)
	co := pendingCheckout(t, svc, c)

	if err := svc.Abandon(co); err != nil {
		t.Fatalf("abandon: %v", err)
	}
	if c.Empty() {
		t.Fatal("abandon must not clear the cart")
	}
}

func TestAbandonDuringProcessingIsStateConflict(t *testing.T) {
	placer := &stubPlacer{verified: true, order: upstream.Order{ID: 7}}
	svc := newService(t, placer, false)
	c := filledCart(t)
	co := pendingCheckout(t, svc, c)
	if err := svc.Submit(context.Background(), co, c, "123456"); err != nil {
		t.Fatalf("submit: %v", err)
	}

	err := svc.Abandon(co)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}
}
