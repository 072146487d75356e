package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, expiresAt *time.Time) string {
	t.Helper()
	claims := jwt.RegisteredClaims{Subject: "user-1"}
	if expiresAt != nil {
		claims.ExpiresAt = jwt.NewNumericDate(*expiresAt)
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("upstream-secret"))
	require.NoError(t, err)
	return token
}

func TestTokenExpiry(t *testing.T) {
	t.Parallel()

	expiry := time.Now().Add(30 * time.Minute).Truncate(time.Second)
	got, ok := TokenExpiry(signedToken(t, &expiry))
	require.True(t, ok)
	require.True(t, got.Equal(expiry))
}

func TestTokenExpiryMissingClaim(t *testing.T) {
	t.Parallel()

	if _, ok := TokenExpiry(signedToken(t, nil)); ok {
		t.Fatal("expected no expiry for token without exp claim")
	}
	if _, ok := TokenExpiry("not-a-jwt"); ok {
		t.Fatal("expected malformed token to report no expiry")
	}
	if _, ok := TokenExpiry(""); ok {
		t.Fatal("expected empty token to report no expiry")
	}
}

func TestTokenExpired(t *testing.T) {
	t.Parallel()

	now := time.Now()
	past := now.Add(-time.Minute)
	future := now.Add(time.Hour)

	require.True(t, TokenExpired(signedToken(t, &past), now))
	require.False(t, TokenExpired(signedToken(t, &future), now))
	// Tokens without an expiry are left for the upstream to reject.
	require.False(t, TokenExpired(signedToken(t, nil), now))
}
