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

// AdminListMenus serves every menu for one location.
func AdminListMenus(api *upstream.Client, observer *session.Observer, logg *logger.Logger) http.HandlerFunc {
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

		menus, err := api.RestaurantMenus(ctx, restaurantID)
		if err = observer.Handle(ctx, sessionID, err); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, menus)
	}
}

// AdminCreateMenu creates a menu.
func AdminCreateMenu(api *upstream.Client, observer *session.Observer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sessionID, err := sessionIDFrom(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var input upstream.MenuInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		menu, err := api.CreateMenu(ctx, input)
		if err = observer.Handle(ctx, sessionID, err); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, menu)
	}
}

// AdminUpdateMenu edits a menu.
func AdminUpdateMenu(api *upstream.Client, observer *session.Observer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sessionID, err := sessionIDFrom(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		menuID, err := validators.ParsePathID(chi.URLParam(r, "menuID"))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var input upstream.MenuInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		menu, err := api.UpdateMenu(ctx, menuID, input)
		if err = observer.Handle(ctx, sessionID, err); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, menu)
	}
}

// AdminDeleteMenu removes a menu.
func AdminDeleteMenu(api *upstream.Client, observer *session.Observer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sessionID, err := sessionIDFrom(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		menuID, err := validators.ParsePathID(chi.URLParam(r, "menuID"))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		err = api.DeleteMenu(ctx, menuID)
		if err = observer.Handle(ctx, sessionID, err); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
