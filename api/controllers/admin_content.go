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

// AdminSearchContent lists editorial items matching an optional search term.
func AdminSearchContent(api *upstream.Client, observer *session.Observer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sessionID, err := sessionIDFrom(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		items, err := api.SearchContent(ctx, r.URL.Query().Get("search"))
		if err = observer.Handle(ctx, sessionID, err); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if items == nil {
			items = []upstream.CMSContent{}
		}
		responses.WriteSuccess(w, items)
	}
}

// AdminCreateContent creates an editorial item.
func AdminCreateContent(api *upstream.Client, observer *session.Observer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sessionID, err := sessionIDFrom(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var input upstream.CMSContentInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		item, err := api.CreateContent(ctx, input)
		if err = observer.Handle(ctx, sessionID, err); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, item)
	}
}

// AdminUpdateContent edits an editorial item.
func AdminUpdateContent(api *upstream.Client, observer *session.Observer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sessionID, err := sessionIDFrom(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		contentID, err := validators.ParsePathID(chi.URLParam(r, "contentID"))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var input upstream.CMSContentInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		item, err := api.UpdateContent(ctx, contentID, input)
		if err = observer.Handle(ctx, sessionID, err); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, item)
	}
}

// AdminDeleteContent removes an editorial item.
func AdminDeleteContent(api *upstream.Client, observer *session.Observer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sessionID, err := sessionIDFrom(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		contentID, err := validators.ParsePathID(chi.URLParam(r, "contentID"))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		err = api.DeleteContent(ctx, contentID)
		if err = observer.Handle(ctx, sessionID, err); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
