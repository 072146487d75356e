// Package session ties the signed-in identity to the per-session state. The
// upstream client stays free of navigation concerns; when it reports an
// unauthorized error the Observer here is what tears the session down.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/darshak-ai/restaurant-platform/internal/state"
	"github.com/darshak-ai/restaurant-platform/pkg/auth"
	pkgerrors "github.com/darshak-ai/restaurant-platform/pkg/errors"
	"github.com/darshak-ai/restaurant-platform/pkg/logger"
	"github.com/darshak-ai/restaurant-platform/pkg/upstream"
)

type authAPI interface {
	Login(ctx context.Context, creds upstream.Credentials) (*upstream.Token, error)
	Register(ctx context.Context, input upstream.RegisterInput) (*upstream.User, error)
	CurrentUser(ctx context.Context) (*upstream.User, error)
}

// Service signs sessions in and out against the restaurant API.
type Service struct {
	api    authAPI
	states *state.Store
	logg   *logger.Logger
	now    func() time.Time
}

// NewService builds the session service.
func NewService(api authAPI, states *state.Store, logg *logger.Logger) (*Service, error) {
	if api == nil {
		return nil, fmt.Errorf("auth API required")
	}
	if states == nil {
		return nil, fmt.Errorf("state store required")
	}
	return &Service{api: api, states: states, logg: logg, now: time.Now}, nil
}

// Login exchanges credentials for a token, stores it on the session, then
// loads the profile behind it. A profile fetch failure leaves the session
// signed in with the token only, matching how the storefront behaves when
// /auth/me is briefly unavailable.
func (s *Service) Login(ctx context.Context, sessionID string, creds upstream.Credentials) (*upstream.User, error) {
	token, err := s.api.Login(ctx, creds)
	if err != nil {
		return nil, err
	}

	err = s.states.Update(ctx, sessionID, func(st *state.State) error {
		st.Session.Token = token.AccessToken
		st.Session.Authenticated = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	user, err := s.api.CurrentUser(ctx)
	if err != nil {
		if s.logg != nil {
			s.logg.Warn(ctx, "profile fetch after login failed")
		}
		return nil, nil
	}

	err = s.states.Update(ctx, sessionID, func(st *state.State) error {
		st.Session.User = user
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Register creates an account upstream. It does not sign the session in.
func (s *Service) Register(ctx context.Context, input upstream.RegisterInput) (*upstream.User, error) {
	return s.api.Register(ctx, input)
}

// CurrentUser returns the stored profile, refreshing it from the restaurant
// API when the session holds a token but no profile yet.
func (s *Service) CurrentUser(ctx context.Context, sessionID string) (*upstream.User, error) {
	var cached *upstream.User
	var token string
	err := s.states.View(ctx, sessionID, func(st *state.State) error {
		cached = st.Session.User
		token = st.Session.Token
		return nil
	})
	if err != nil {
		return nil, err
	}
	if token == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "not signed in")
	}
	if cached != nil {
		return cached, nil
	}

	user, err := s.api.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	err = s.states.Update(ctx, sessionID, func(st *state.State) error {
		st.Session.User = user
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Logout clears the session identity, cart and current order.
func (s *Service) Logout(ctx context.Context, sessionID string) error {
	return s.states.Logout(ctx, sessionID)
}

// PruneExpired drops a session's identity when its bearer token has visibly
// expired, saving a round trip that the restaurant API would reject anyway.
func (s *Service) PruneExpired(ctx context.Context, sessionID string) {
	var token string
	if err := s.states.View(ctx, sessionID, func(st *state.State) error {
		token = st.Session.Token
		return nil
	}); err != nil {
		return
	}
	if token == "" || !auth.TokenExpired(token, s.now()) {
		return
	}
	if s.logg != nil {
		s.logg.Info(ctx, "dropping session with expired token")
	}
	if err := s.states.Logout(ctx, sessionID); err != nil && s.logg != nil {
		s.logg.Error(ctx, "prune expired session", err)
	}
}

// Observer reacts to unauthorized errors from the restaurant API by clearing
// the session, the deliberate counterpart of the client staying navigation-
// free.
type Observer struct {
	states *state.Store
	logg   *logger.Logger
}

// NewObserver builds the unauthorized-error observer.
func NewObserver(states *state.Store, logg *logger.Logger) (*Observer, error) {
	if states == nil {
		return nil, fmt.Errorf("state store required")
	}
	return &Observer{states: states, logg: logg}, nil
}

// Handle inspects an operation's error. Unauthorized errors clear the session
// before the error continues up to the controller; everything else passes
// through untouched.
func (o *Observer) Handle(ctx context.Context, sessionID string, err error) error {
	if err == nil || !pkgerrors.IsUnauthorized(err) {
		return err
	}
	if o.logg != nil {
		o.logg.Info(ctx, "restaurant API rejected session token, signing out")
	}
	if logoutErr := o.states.Logout(ctx, sessionID); logoutErr != nil && o.logg != nil {
		o.logg.Error(ctx, "clear session after unauthorized", logoutErr)
	}
	return err
}
