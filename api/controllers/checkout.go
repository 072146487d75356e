package controllers

import (
	"net/http"

	"github.com/darshak-ai/restaurant-platform/api/responses"
	"github.com/darshak-ai/restaurant-platform/api/validators"
	"github.com/darshak-ai/restaurant-platform/internal/checkout"
	"github.com/darshak-ai/restaurant-platform/internal/state"
	"github.com/darshak-ai/restaurant-platform/pkg/enums"
	"github.com/darshak-ai/restaurant-platform/pkg/errors"
	"github.com/darshak-ai/restaurant-platform/pkg/logger"
	"github.com/darshak-ai/restaurant-platform/pkg/upstream"
)

type beginCheckoutInput struct {
	CustomerName        string `json:"customer_name" validate:"required,min=1,max=120"`
	CustomerPhone       string `json:"customer_phone" validate:"required,min=7,max=20"`
	CustomerEmail       string `json:"customer_email" validate:"omitempty,email"`
	OrderType           string `json:"order_type" validate:"required,oneof=pickup dine_in"`
	SpecialInstructions string `json:"special_instructions" validate:"max=500"`
}

type submitCheckoutInput struct {
	OTPCode string `json:"otp_code" validate:"required"`
}

type checkoutStatusView struct {
	Step         enums.CheckoutStep     `json:"step"`
	Draft        *checkout.Draft        `json:"draft,omitempty"`
	Order        *upstream.Order        `json:"order,omitempty"`
	ErrorMessage string                 `json:"error_message,omitempty"`
	Confirmation *checkout.Confirmation `json:"confirmation,omitempty"`
}

func checkoutStatus(co *checkout.Checkout) checkoutStatusView {
	view := checkoutStatusView{
		Step:         co.Step,
		Order:        co.Order,
		ErrorMessage: co.ErrorMessage,
		Confirmation: co.Confirmation(),
	}
	draft := co.Draft
	view.Draft = &draft
	return view
}

func noActiveCheckout() error {
	return errors.New(errors.CodeStateConflict, "no checkout in progress")
}

// BeginCheckout starts a checkout from the session cart and the submitted
// contact details, then moves straight to verification.
func BeginCheckout(svc *checkout.Service, states *state.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sessionID, err := sessionIDFrom(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var input beginCheckoutInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		orderType, err := enums.ParseOrderType(input.OrderType)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var view checkoutStatusView
		err = states.Update(ctx, sessionID, func(st *state.State) error {
			draft := checkout.Draft{
				CustomerName:        input.CustomerName,
				CustomerPhone:       input.CustomerPhone,
				CustomerEmail:       input.CustomerEmail,
				OrderType:           orderType,
				SpecialInstructions: input.SpecialInstructions,
			}
			if st.SelectedRestaurant != nil {
				draft.RestaurantID = st.SelectedRestaurant.ID
			}
			co, beginErr := svc.Begin(st.Cart, draft)
			if beginErr != nil {
				return beginErr
			}
			if verifyErr := svc.RequestVerification(co); verifyErr != nil {
				return verifyErr
			}
			st.Checkout = co
			view = checkoutStatus(co)
			return nil
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, view)
	}
}

// SubmitCheckout places the order and verifies the customer's code. A bad
// code keeps the checkout waiting for another attempt; a rejected order
// moves it to the error step.
func SubmitCheckout(svc *checkout.Service, states *state.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sessionID, err := sessionIDFrom(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var input submitCheckoutInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var view checkoutStatusView
		err = states.Update(ctx, sessionID, func(st *state.State) error {
			if st.Checkout == nil {
				return noActiveCheckout()
			}
			submitErr := svc.Submit(ctx, st.Checkout, st.Cart, input.OTPCode)
			if st.Checkout.Order != nil {
				st.CurrentOrder = st.Checkout.Order
			}
			view = checkoutStatus(st.Checkout)
			return submitErr
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

// BypassCheckout places the order without verification. Only honored when
// the deployment enables the bypass flag.
func BypassCheckout(svc *checkout.Service, states *state.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sessionID, err := sessionIDFrom(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var view checkoutStatusView
		err = states.Update(ctx, sessionID, func(st *state.State) error {
			if st.Checkout == nil {
				return noActiveCheckout()
			}
			bypassErr := svc.Bypass(ctx, st.Checkout, st.Cart)
			if st.Checkout.Order != nil {
				st.CurrentOrder = st.Checkout.Order
			}
			view = checkoutStatus(st.Checkout)
			return bypassErr
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

// CheckoutStatus reports progress. Polling this endpoint is what settles a
// processing checkout; on settlement the order lands in the session history
// and the cart empties.
func CheckoutStatus(svc *checkout.Service, states *state.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sessionID, err := sessionIDFrom(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var view checkoutStatusView
		err = states.Update(ctx, sessionID, func(st *state.State) error {
			if st.Checkout == nil {
				return noActiveCheckout()
			}
			if svc.Resolve(st.Checkout, st.Cart) && st.Checkout.Order != nil {
				st.RecordOrder(*st.Checkout.Order)
			}
			view = checkoutStatus(st.Checkout)
			return nil
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

// RetryCheckout returns a failed checkout to verification for another try.
func RetryCheckout(svc *checkout.Service, states *state.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sessionID, err := sessionIDFrom(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var view checkoutStatusView
		err = states.Update(ctx, sessionID, func(st *state.State) error {
			if st.Checkout == nil {
				return noActiveCheckout()
			}
			if retryErr := svc.Retry(st.Checkout); retryErr != nil {
				return retryErr
			}
			view = checkoutStatus(st.Checkout)
			return nil
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

// AbandonCheckout discards checkout progress. The cart survives so the
// customer can come back to it.
func AbandonCheckout(svc *checkout.Service, states *state.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sessionID, err := sessionIDFrom(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		err = states.Update(ctx, sessionID, func(st *state.State) error {
			if abandonErr := svc.Abandon(st.Checkout); abandonErr != nil {
				return abandonErr
			}
			st.Checkout = nil
			return nil
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "abandoned"})
	}
}
