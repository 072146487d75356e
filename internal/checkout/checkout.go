// Package checkout drives a session's order submission through its states:
// collecting_info, otp_pending, processing, then success or error. Progression
// is strictly sequential; a submit outside otp_pending is a state conflict.
package checkout

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/darshak-ai/restaurant-platform/internal/cart"
	"github.com/darshak-ai/restaurant-platform/pkg/enums"
	pkgerrors "github.com/darshak-ai/restaurant-platform/pkg/errors"
	"github.com/darshak-ai/restaurant-platform/pkg/upstream"
)

// OrderPlacer is the slice of the restaurant API the machine needs.
type OrderPlacer interface {
	CreateOrder(ctx context.Context, input upstream.CreateOrderInput) (*upstream.Order, error)
	VerifyOTP(ctx context.Context, orderID int64, input upstream.VerifyOTPInput) (*upstream.VerifyOTPResult, error)
}

// Draft is the cart plus customer contact fields, assembled before anything
// goes over the network.
type Draft struct {
	RestaurantID        int64           `json:"restaurant_id"`
	CustomerName        string          `json:"customer_name"`
	CustomerPhone       string          `json:"customer_phone"`
	CustomerEmail       string          `json:"customer_email,omitempty"`
	OrderType           enums.OrderType `json:"order_type"`
	SpecialInstructions string          `json:"special_instructions,omitempty"`
}

// Checkout is one session's progress through the machine. It serializes with
// the rest of the session state.
type Checkout struct {
	Step            enums.CheckoutStep `json:"step"`
	Draft           Draft              `json:"draft"`
	Order           *upstream.Order    `json:"order,omitempty"`
	ErrorMessage    string             `json:"error_message,omitempty"`
	ProcessingUntil time.Time          `json:"processing_until,omitempty"`
}

// Confirmation is what the customer sees once the order settles.
type Confirmation struct {
	OrderNumber        string          `json:"order_number"`
	TotalAmount        float64         `json:"total_amount"`
	OrderType          enums.OrderType `json:"order_type"`
	EstimatedReadyTime string          `json:"estimated_ready_time,omitempty"`
}

// Confirmation returns the settled order summary, nil before success.
func (c *Checkout) Confirmation() *Confirmation {
	if c == nil || c.Step != enums.CheckoutStepSuccess || c.Order == nil {
		return nil
	}
	return &Confirmation{
		OrderNumber:        c.Order.OrderNumber,
		TotalAmount:        c.Order.TotalAmount,
		OrderType:          c.Order.OrderType,
		EstimatedReadyTime: c.Order.EstimatedReadyTime,
	}
}

// Service runs the machine against the restaurant API.
type Service struct {
	orders          OrderPlacer
	processingDelay time.Duration
	otpLength       int
	allowBypass     bool
	now             func() time.Time
}

// NewService builds the machine. allowBypass keeps the demo skip-verification
// path reachable and must stay false outside development.
func NewService(orders OrderPlacer, processingDelay time.Duration, otpLength int, allowBypass bool) (*Service, error) {
	if orders == nil {
		return nil, fmt.Errorf("order placer required")
	}
	if processingDelay < 0 {
		processingDelay = 0
	}
	if otpLength <= 0 {
		otpLength = 6
	}
	return &Service{
		orders:          orders,
		processingDelay: processingDelay,
		otpLength:       otpLength,
		allowBypass:     allowBypass,
		now:             time.Now,
	}, nil
}

// WithClock replaces the machine's clock. Test hook.
func (s *Service) WithClock(now func() time.Time) *Service {
	if now != nil {
		s.now = now
	}
	return s
}

// Begin validates the draft against the cart and opens a checkout in
// collecting_info. Missing required fields block progression before any
// network call.
func (s *Service) Begin(c *cart.Cart, draft Draft) (*Checkout, error) {
	missing := []string{}
	if strings.TrimSpace(draft.CustomerName) == "" {
		missing = append(missing, "customer_name")
	}
	if strings.TrimSpace(draft.CustomerPhone) == "" {
		missing = append(missing, "customer_phone")
	}
	if !draft.OrderType.IsValid() {
		missing = append(missing, "order_type")
	}
	if len(missing) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "checkout draft is incomplete").
			WithDetails(map[string]any{"missing": missing})
	}
	if draft.RestaurantID == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "no restaurant selected")
	}
	if c == nil || c.Empty() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}
	return &Checkout{
		Step:  enums.CheckoutStepCollectingInfo,
		Draft: draft,
	}, nil
}

// RequestVerification moves collecting_info to otp_pending. The code itself
// is sent by the restaurant API when the order is created on submit.
func (s *Service) RequestVerification(co *Checkout) error {
	if co == nil || co.Step != enums.CheckoutStepCollectingInfo {
		return s.stateConflict(co, "request verification")
	}
	co.Step = enums.CheckoutStepOTPPending
	co.ErrorMessage = ""
	return nil
}

// Submit drives one verification attempt from otp_pending. It creates the
// order upstream, then verifies the customer's code against the order id and
// phone. A malformed code is rejected locally with no network call. A failed
// verification re-enters otp_pending with the error surfaced, leaving the
// draft and cart untouched; only a failed submission reaches the error state.
func (s *Service) Submit(ctx context.Context, co *Checkout, c *cart.Cart, code string) error {
	if co == nil || co.Step != enums.CheckoutStepOTPPending {
		return s.stateConflict(co, "submit")
	}

	if !ValidCode(code, s.otpLength) {
		message := fmt.Sprintf("a valid %d-digit verification code is required", s.otpLength)
		co.ErrorMessage = message
		return pkgerrors.New(pkgerrors.CodeValidation, message)
	}
	normalized := NormalizeCode(code)

	order, err := s.orders.CreateOrder(ctx, s.orderInput(co.Draft, c))
	if err != nil {
		co.Step = enums.CheckoutStepError
		co.ErrorMessage = submissionMessage(err)
		return err
	}

	result, err := s.orders.VerifyOTP(ctx, order.ID, upstream.VerifyOTPInput{
		PhoneNumber: co.Draft.CustomerPhone,
		OTPCode:     normalized,
	})
	if err != nil || !result.Verified {
		co.Step = enums.CheckoutStepOTPPending
		co.ErrorMessage = verificationMessage(err)
		if err != nil {
			return err
		}
		return pkgerrors.New(pkgerrors.CodeValidation, co.ErrorMessage)
	}

	s.accept(co, order)
	return nil
}

// Bypass submits the order without verifying a code. Only reachable when the
// development flag is set; production configurations reject it outright.
func (s *Service) Bypass(ctx context.Context, co *Checkout, c *cart.Cart) error {
	if !s.allowBypass {
		return pkgerrors.New(pkgerrors.CodeForbidden, "verification cannot be skipped")
	}
	if co == nil || co.Step != enums.CheckoutStepOTPPending {
		return s.stateConflict(co, "bypass")
	}

	order, err := s.orders.CreateOrder(ctx, s.orderInput(co.Draft, c))
	if err != nil {
		co.Step = enums.CheckoutStepError
		co.ErrorMessage = submissionMessage(err)
		return err
	}

	s.accept(co, order)
	return nil
}

// Resolve promotes processing to success once the settlement delay has
// elapsed, clearing the cart. This is the only transition that empties the
// cart. Returns true when the step changed.
func (s *Service) Resolve(co *Checkout, c *cart.Cart) bool {
	if co == nil || co.Step != enums.CheckoutStepProcessing {
		return false
	}
	if s.now().Before(co.ProcessingUntil) {
		return false
	}
	co.Step = enums.CheckoutStepSuccess
	if c != nil {
		c.Clear()
	}
	return true
}

// Retry moves the error state back to otp_pending for another attempt.
func (s *Service) Retry(co *Checkout) error {
	if co == nil || co.Step != enums.CheckoutStepError {
		return s.stateConflict(co, "retry")
	}
	co.Step = enums.CheckoutStepOTPPending
	co.ErrorMessage = ""
	return nil
}

// Abandon walks away from an unsettled checkout. The cart is untouched; the
// customer lands back on it with everything still in place.
func (s *Service) Abandon(co *Checkout) error {
	if co == nil {
		return nil
	}
	if co.Step == enums.CheckoutStepProcessing || co.Step == enums.CheckoutStepSuccess {
		return s.stateConflict(co, "abandon")
	}
	return nil
}

func (s *Service) accept(co *Checkout, order *upstream.Order) {
	co.Order = order
	co.Step = enums.CheckoutStepProcessing
	co.ErrorMessage = ""
	co.ProcessingUntil = s.now().Add(s.processingDelay)
}

// orderInput maps the draft and cart lines to the order-creation payload.
// Modifiers are sent as explicit null, matching what the restaurant API
// expects.
func (s *Service) orderInput(draft Draft, c *cart.Cart) upstream.CreateOrderInput {
	lines := c.Items()
	items := make([]upstream.OrderItemInput, 0, len(lines))
	for _, line := range lines {
		items = append(items, upstream.OrderItemInput{
			MenuItemID:          line.ID,
			Quantity:            line.Quantity,
			Modifiers:           nil,
			SpecialInstructions: line.SpecialInstructions,
		})
	}
	return upstream.CreateOrderInput{
		RestaurantID:        draft.RestaurantID,
		CustomerName:        draft.CustomerName,
		CustomerPhone:       draft.CustomerPhone,
		CustomerEmail:       draft.CustomerEmail,
		OrderType:           draft.OrderType,
		Items:               items,
		SpecialInstructions: draft.SpecialInstructions,
	}
}

func (s *Service) stateConflict(co *Checkout, operation string) error {
	step := "none"
	if co != nil {
		step = co.Step.String()
	}
	return pkgerrors.New(pkgerrors.CodeStateConflict,
		fmt.Sprintf("cannot %s from step %s", operation, step))
}

func submissionMessage(err error) string {
	if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeValidation {
		return typed.Message()
	}
	return "Failed to submit order. Please try again."
}

func verificationMessage(err error) string {
	if err == nil {
		return "Invalid OTP code. Please try again."
	}
	if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeValidation {
		return typed.Message()
	}
	return "Verification failed. Please try again."
}
