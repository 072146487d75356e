package enums

import "fmt"

// CheckoutStep names the sequential states of the checkout flow.
type CheckoutStep string

const (
	CheckoutStepCollectingInfo CheckoutStep = "collecting_info"
	CheckoutStepOTPPending     CheckoutStep = "otp_pending"
	CheckoutStepProcessing     CheckoutStep = "processing"
	CheckoutStepSuccess        CheckoutStep = "success"
	CheckoutStepError          CheckoutStep = "error"
)

var validCheckoutSteps = []CheckoutStep{
	CheckoutStepCollectingInfo,
	CheckoutStepOTPPending,
	CheckoutStepProcessing,
	CheckoutStepSuccess,
	CheckoutStepError,
}

// String implements fmt.Stringer.
func (c CheckoutStep) String() string {
	return string(c)
}

// IsValid reports whether the value is a known CheckoutStep.
func (c CheckoutStep) IsValid() bool {
	for _, candidate := range validCheckoutSteps {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCheckoutStep converts raw input into a CheckoutStep.
func ParseCheckoutStep(value string) (CheckoutStep, error) {
	for _, candidate := range validCheckoutSteps {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid checkout step %q", value)
}
