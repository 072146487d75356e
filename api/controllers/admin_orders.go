package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/darshak-ai/restaurant-platform/api/responses"
	"github.com/darshak-ai/restaurant-platform/api/validators"
	"github.com/darshak-ai/restaurant-platform/internal/catalog"
	"github.com/darshak-ai/restaurant-platform/internal/orders"
	"github.com/darshak-ai/restaurant-platform/internal/session"
	"github.com/darshak-ai/restaurant-platform/pkg/enums"
	"github.com/darshak-ai/restaurant-platform/pkg/logger"
	"github.com/darshak-ai/restaurant-platform/pkg/upstream"
)

type updateOrderStatusInput struct {
	Status string `json:"status" validate:"required"`
}

// AdminListOrders serves the console's order table. Search matches order
// number, customer name, and phone; status and restaurant_id narrow further.
func AdminListOrders(api *upstream.Client, observer *session.Observer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sessionID, err := sessionIDFrom(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		restaurantID, err := validators.ParseQueryID(r, "restaurant_id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		list, err := api.Orders(ctx, restaurantID)
		if err = observer.Handle(ctx, sessionID, err); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		filter := catalog.OrderFilter{
			Search: r.URL.Query().Get("search"),
			Status: r.URL.Query().Get("status"),
		}
		responses.WriteSuccess(w, catalog.FilterOrders(list, filter))
	}
}

// AdminUpdateOrderStatus moves an order through its lifecycle.
func AdminUpdateOrderStatus(api *upstream.Client, observer *session.Observer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sessionID, err := sessionIDFrom(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		orderID, err := validators.ParsePathID(chi.URLParam(r, "orderID"))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var input updateOrderStatusInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		status, err := enums.ParseOrderStatus(input.Status)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		order, err := api.UpdateOrder(ctx, orderID, upstream.UpdateOrderInput{Status: &status})
		if err = observer.Handle(ctx, sessionID, err); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

// AdminCancelOrder cancels an order outright.
func AdminCancelOrder(api *upstream.Client, observer *session.Observer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sessionID, err := sessionIDFrom(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		orderID, err := validators.ParsePathID(chi.URLParam(r, "orderID"))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		status := enums.OrderStatusCancelled
		order, err := api.UpdateOrder(ctx, orderID, upstream.UpdateOrderInput{Status: &status})
		if err = observer.Handle(ctx, sessionID, err); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

// AdminAnalytics serves the dashboard summary. With a restaurant_id the
// numbers come from the restaurant API's trailing-month report; without one
// they are aggregated locally across every location.
func AdminAnalytics(reporter *orders.Reporter, observer *session.Observer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sessionID, err := sessionIDFrom(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		restaurantID, err := validators.ParseQueryID(r, "restaurant_id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		report, err := reporter.Report(ctx, restaurantID)
		if err = observer.Handle(ctx, sessionID, err); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, report)
	}
}
