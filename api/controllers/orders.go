package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/darshak-ai/restaurant-platform/api/responses"
	"github.com/darshak-ai/restaurant-platform/internal/session"
	"github.com/darshak-ai/restaurant-platform/internal/state"
	"github.com/darshak-ai/restaurant-platform/pkg/errors"
	"github.com/darshak-ai/restaurant-platform/pkg/logger"
	"github.com/darshak-ai/restaurant-platform/pkg/upstream"
)

// CurrentOrder serves the order most recently placed by this session.
func CurrentOrder(states *state.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sessionID, err := sessionIDFrom(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var order *upstream.Order
		err = states.View(ctx, sessionID, func(st *state.State) error {
			order = st.CurrentOrder
			return nil
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if order == nil {
			responses.WriteError(ctx, logg, w, errors.New(errors.CodeNotFound, "no current order"))
			return
		}
		responses.WriteSuccess(w, order)
	}
}

// OrderHistory serves the session's past orders, newest first.
func OrderHistory(states *state.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sessionID, err := sessionIDFrom(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		history := []upstream.Order{}
		err = states.View(ctx, sessionID, func(st *state.State) error {
			history = append(history, st.OrderHistory...)
			return nil
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, history)
	}
}

// TrackOrder looks an order up by its human-facing number so a customer can
// check progress without an account.
func TrackOrder(api *upstream.Client, observer *session.Observer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sessionID, err := sessionIDFrom(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		orderNumber := chi.URLParam(r, "orderNumber")
		if orderNumber == "" {
			responses.WriteError(ctx, logg, w, errors.New(errors.CodeValidation, "order number is required"))
			return
		}

		order, err := api.OrderByNumber(ctx, orderNumber)
		if err = observer.Handle(ctx, sessionID, err); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}
