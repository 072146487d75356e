package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/darshak-ai/restaurant-platform/api/middleware"
	pkgerrors "github.com/darshak-ai/restaurant-platform/pkg/errors"
)

func sessionIDFrom(r *http.Request) (string, error) {
	sessionID := middleware.SessionIDFromContext(r.Context())
	if sessionID == "" {
		return "", pkgerrors.New(pkgerrors.CodeInternal, "session context missing")
	}
	return sessionID, nil
}

// money rounds a derived amount to cents for presentation.
func money(value decimal.Decimal) float64 {
	return value.Round(2).InexactFloat64()
}
