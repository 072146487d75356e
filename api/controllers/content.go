package controllers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/darshak-ai/restaurant-platform/api/responses"
	"github.com/darshak-ai/restaurant-platform/internal/session"
	"github.com/darshak-ai/restaurant-platform/pkg/errors"
	"github.com/darshak-ai/restaurant-platform/pkg/logger"
	"github.com/darshak-ai/restaurant-platform/pkg/upstream"
)

// ListPages serves the published editorial pages.
func ListPages(api *upstream.Client, observer *session.Observer, logg *logger.Logger) http.HandlerFunc {
	return contentList(api.PublishedPages, observer, logg)
}

// GalleryImages serves the published gallery.
func GalleryImages(api *upstream.Client, observer *session.Observer, logg *logger.Logger) http.HandlerFunc {
	return contentList(api.GalleryImages, observer, logg)
}

// Announcements serves the published announcements.
func Announcements(api *upstream.Client, observer *session.Observer, logg *logger.Logger) http.HandlerFunc {
	return contentList(api.Announcements, observer, logg)
}

func contentList(fetch func(ctx context.Context) ([]upstream.CMSContent, error), observer *session.Observer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sessionID, err := sessionIDFrom(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		items, err := fetch(ctx)
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

// ContactInfo serves the chain's contact block.
func ContactInfo(api *upstream.Client, observer *session.Observer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sessionID, err := sessionIDFrom(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		info, err := api.ContactInfo(ctx)
		if err = observer.Handle(ctx, sessionID, err); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, info)
	}
}

// PageBySlug serves a single published page by slug.
func PageBySlug(api *upstream.Client, observer *session.Observer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sessionID, err := sessionIDFrom(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		slug := chi.URLParam(r, "slug")
		if slug == "" {
			responses.WriteError(ctx, logg, w, errors.New(errors.CodeValidation, "slug is required"))
			return
		}

		page, err := api.ContentBySlug(ctx, slug)
		if err = observer.Handle(ctx, sessionID, err); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}
