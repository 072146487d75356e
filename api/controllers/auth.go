package controllers

import (
	"net/http"

	"github.com/darshak-ai/restaurant-platform/api/responses"
	"github.com/darshak-ai/restaurant-platform/api/validators"
	"github.com/darshak-ai/restaurant-platform/internal/session"
	"github.com/darshak-ai/restaurant-platform/pkg/logger"
	"github.com/darshak-ai/restaurant-platform/pkg/upstream"
)

// Login signs the session in against the restaurant API and keeps the
// bearer token server side.
func Login(sessions *session.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sessionID, err := sessionIDFrom(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var creds upstream.Credentials
		if err := validators.DecodeJSONBody(r, &creds); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		user, err := sessions.Login(ctx, sessionID, creds)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, user)
	}
}

// Register creates an account. It does not sign the session in; the
// customer logs in with the new credentials afterwards.
func Register(sessions *session.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var input upstream.RegisterInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		user, err := sessions.Register(ctx, input)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, user)
	}
}

// Me serves the signed-in profile, refreshing it from the restaurant API
// when the session has none cached.
func Me(sessions *session.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sessionID, err := sessionIDFrom(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		sessions.PruneExpired(ctx, sessionID)

		user, err := sessions.CurrentUser(ctx, sessionID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, user)
	}
}

// Logout drops the session's credentials, cart, and in-flight order while
// keeping the selected restaurant and order history.
func Logout(sessions *session.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sessionID, err := sessionIDFrom(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := sessions.Logout(ctx, sessionID); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "signed_out"})
	}
}
