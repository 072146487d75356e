package auth

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// The upstream restaurant API mints and verifies its own bearer tokens; the
// gateway only inspects the expiry claim so it can drop sessions whose token
// is already dead instead of bouncing a doomed request off the upstream.

var parser = jwt.NewParser()

// TokenExpiry returns the exp claim of an upstream bearer token without
// verifying the signature. The boolean is false when the token carries no
// parseable expiry, in which case callers must treat it as live and let the
// upstream decide.
func TokenExpiry(token string) (time.Time, bool) {
	trimmed := strings.TrimSpace(token)
	if trimmed == "" {
		return time.Time{}, false
	}

	claims := jwt.RegisteredClaims{}
	if _, _, err := parser.ParseUnverified(trimmed, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}

// TokenExpired reports whether the token is known to be expired at now.
func TokenExpired(token string, now time.Time) bool {
	expiry, ok := TokenExpiry(token)
	if !ok {
		return false
	}
	return !now.Before(expiry)
}
