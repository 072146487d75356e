package controllers

import (
	"net/http"

	"github.com/darshak-ai/restaurant-platform/api/responses"
	"github.com/darshak-ai/restaurant-platform/api/validators"
	"github.com/darshak-ai/restaurant-platform/internal/session"
	"github.com/darshak-ai/restaurant-platform/internal/state"
	"github.com/darshak-ai/restaurant-platform/pkg/config"
	"github.com/darshak-ai/restaurant-platform/pkg/logger"
	"github.com/darshak-ai/restaurant-platform/pkg/upstream"
)

// GeolocationOptions is handed to the browser so its position request matches
// the storefront's tuning.
type GeolocationOptions struct {
	EnableHighAccuracy bool  `json:"enableHighAccuracy"`
	Timeout            int64 `json:"timeout"`
	MaximumAge         int64 `json:"maximumAge"`
}

type bootstrapResponse struct {
	Geolocation        GeolocationOptions    `json:"geolocation"`
	HeroBanners        []upstream.CMSContent `json:"hero_banners"`
	Announcements      []upstream.CMSContent `json:"announcements"`
	FeaturedItems      []upstream.MenuItem   `json:"featured_items"`
	Restaurants        []upstream.Restaurant `json:"restaurants"`
	SelectedRestaurant *upstream.Restaurant  `json:"selected_restaurant"`
}

// Bootstrap assembles the landing payload. Editorial sections degrade to
// empty lists when the restaurant API misbehaves; nothing here is fatal.
// Optional latitude/longitude query parameters scope the restaurant listing
// to nearby locations; their absence (geolocation denied or unavailable)
// falls back to the unfiltered listing.
func Bootstrap(api *upstream.Client, states *state.Store, observer *session.Observer, cfg *config.Config, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sessionID, err := sessionIDFrom(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		payload := bootstrapResponse{
			Geolocation: GeolocationOptions{
				EnableHighAccuracy: cfg.Geolocation.HighAccuracy,
				Timeout:            cfg.Geolocation.Timeout.Milliseconds(),
				MaximumAge:         cfg.Geolocation.MaximumAge.Milliseconds(),
			},
			HeroBanners:   []upstream.CMSContent{},
			Announcements: []upstream.CMSContent{},
			FeaturedItems: []upstream.MenuItem{},
			Restaurants:   []upstream.Restaurant{},
		}

		if banners, bannersErr := api.HeroBanners(ctx); bannersErr != nil {
			logg.Warn(ctx, "bootstrap: hero banners unavailable")
		} else {
			payload.HeroBanners = banners
		}
		if announcements, annErr := api.Announcements(ctx); annErr != nil {
			logg.Warn(ctx, "bootstrap: announcements unavailable")
		} else {
			payload.Announcements = announcements
		}

		latitude, err := validators.ParseQueryFloat(r, "latitude")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		longitude, err := validators.ParseQueryFloat(r, "longitude")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var restaurants []upstream.Restaurant
		var listErr error
		if latitude != nil && longitude != nil {
			restaurants, listErr = api.NearbyRestaurants(ctx, *latitude, *longitude, cfg.Geolocation.RadiusMiles)
		} else {
			restaurants, listErr = api.Restaurants(ctx)
		}
		if listErr = observer.Handle(ctx, sessionID, listErr); listErr != nil {
			responses.WriteError(ctx, logg, w, listErr)
			return
		}
		payload.Restaurants = restaurants

		viewErr := states.View(ctx, sessionID, func(st *state.State) error {
			payload.SelectedRestaurant = st.SelectedRestaurant
			return nil
		})
		if viewErr != nil {
			responses.WriteError(ctx, logg, w, viewErr)
			return
		}

		if payload.SelectedRestaurant != nil {
			if featured, featErr := api.FeaturedItems(ctx, payload.SelectedRestaurant.ID); featErr != nil {
				logg.Warn(ctx, "bootstrap: featured items unavailable")
			} else {
				payload.FeaturedItems = featured
			}
		}

		responses.WriteSuccess(w, payload)
	}
}
