package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/darshak-ai/restaurant-platform/api/responses"
	"github.com/darshak-ai/restaurant-platform/api/validators"
	"github.com/darshak-ai/restaurant-platform/internal/session"
	"github.com/darshak-ai/restaurant-platform/pkg/logger"
	"github.com/darshak-ai/restaurant-platform/pkg/upstream"
)

// AdminCreateRestaurant adds a location to the chain.
func AdminCreateRestaurant(api *upstream.Client, observer *session.Observer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sessionID, err := sessionIDFrom(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var input upstream.RestaurantInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		restaurant, err := api.CreateRestaurant(ctx, input)
		if err = observer.Handle(ctx, sessionID, err); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, restaurant)
	}
}

// AdminUpdateRestaurant edits a location.
func AdminUpdateRestaurant(api *upstream.Client, observer *session.Observer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sessionID, err := sessionIDFrom(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		restaurantID, err := validators.ParsePathID(chi.URLParam(r, "restaurantID"))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var input upstream.RestaurantInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		restaurant, err := api.UpdateRestaurant(ctx, restaurantID, input)
		if err = observer.Handle(ctx, sessionID, err); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, restaurant)
	}
}

// AdminDeleteRestaurant retires a location.
func AdminDeleteRestaurant(api *upstream.Client, observer *session.Observer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sessionID, err := sessionIDFrom(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		restaurantID, err := validators.ParsePathID(chi.URLParam(r, "restaurantID"))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		err = api.DeleteRestaurant(ctx, restaurantID)
		if err = observer.Handle(ctx, sessionID, err); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
