package controllers

import (
	"net/http"
	"time"

	"github.com/darshak-ai/restaurant-platform/api/responses"
	"github.com/darshak-ai/restaurant-platform/api/validators"
	"github.com/darshak-ai/restaurant-platform/internal/catalog"
	"github.com/darshak-ai/restaurant-platform/internal/session"
	"github.com/darshak-ai/restaurant-platform/internal/state"
	"github.com/darshak-ai/restaurant-platform/pkg/geo"
	"github.com/darshak-ai/restaurant-platform/pkg/logger"
	"github.com/darshak-ai/restaurant-platform/pkg/types"
	"github.com/darshak-ai/restaurant-platform/pkg/upstream"
)

type locationView struct {
	upstream.Restaurant
	Distance   string `json:"distance,omitempty"`
	HoursToday string `json:"hours_today"`
}

type selectRestaurantInput struct {
	RestaurantID int64 `json:"restaurant_id" validate:"required,min=1"`
}

// ListRestaurants serves the location picker. Each entry carries today's
// opening hours and, when the session has a stored position or the request
// supplies coordinates, a formatted straight-line distance.
func ListRestaurants(api *upstream.Client, states *state.Store, observer *session.Observer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sessionID, err := sessionIDFrom(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		restaurants, err := api.Restaurants(ctx)
		if err = observer.Handle(ctx, sessionID, err); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		restaurants = catalog.FilterRestaurants(restaurants, r.URL.Query().Get("search"))

		origin, err := resolveOrigin(r, states, sessionID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		today := time.Now().Weekday().String()[:3]
		views := make([]locationView, 0, len(restaurants))
		for _, restaurant := range restaurants {
			view := locationView{
				Restaurant: restaurant,
				HoursToday: catalog.HoursToday(restaurant, today),
			}
			if origin != nil && restaurant.Latitude != 0 && restaurant.Longitude != 0 {
				miles := geo.DistanceMiles(*origin, types.Coordinates{
					Latitude:  restaurant.Latitude,
					Longitude: restaurant.Longitude,
				})
				view.Distance = geo.FormatMiles(miles)
			}
			views = append(views, view)
		}

		responses.WriteSuccess(w, views)
	}
}

func resolveOrigin(r *http.Request, states *state.Store, sessionID string) (*types.Coordinates, error) {
	latitude, err := validators.ParseQueryFloat(r, "latitude")
	if err != nil {
		return nil, err
	}
	longitude, err := validators.ParseQueryFloat(r, "longitude")
	if err != nil {
		return nil, err
	}
	if latitude != nil && longitude != nil {
		return &types.Coordinates{Latitude: *latitude, Longitude: *longitude}, nil
	}

	var origin *types.Coordinates
	viewErr := states.View(r.Context(), sessionID, func(st *state.State) error {
		if st.UserLocation != nil {
			loc := *st.UserLocation
			origin = &loc
		}
		return nil
	})
	if viewErr != nil {
		return nil, viewErr
	}
	return origin, nil
}

// SelectRestaurant pins a location to the session. The selection drives the
// menu, featured items, and checkout until it changes.
func SelectRestaurant(api *upstream.Client, states *state.Store, observer *session.Observer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sessionID, err := sessionIDFrom(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var input selectRestaurantInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		restaurant, err := api.Restaurant(ctx, input.RestaurantID)
		if err = observer.Handle(ctx, sessionID, err); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		err = states.Update(ctx, sessionID, func(st *state.State) error {
			st.SelectedRestaurant = restaurant
			return nil
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, restaurant)
	}
}

// StoreLocation remembers the browser position reported after a successful
// geolocation prompt.
func StoreLocation(states *state.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sessionID, err := sessionIDFrom(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var input types.Coordinates
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		err = states.Update(ctx, sessionID, func(st *state.State) error {
			st.UserLocation = &input
			return nil
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, input)
	}
}
