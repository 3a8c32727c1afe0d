package gotrue_test

import (
	"context"
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/jrsteele09/song-ranker-admin/gotrue"
	apperrors "github.com/jrsteele09/song-ranker-admin/internal/errors"
	"github.com/stretchr/testify/require"
)

const (
	testSecret  = "super-secret-jwt-token-with-at-least-32-characters"
	testBaseURL = "https://song-ranker.supabase.co"
)

func signToken(t *testing.T, method jwtlib.SigningMethod, key any, claims jwtlib.MapClaims) string {
	t.Helper()
	token, err := jwtlib.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func validClaims(exp time.Time) jwtlib.MapClaims {
	return jwtlib.MapClaims{
		"sub":        "U1",
		"email":      "jo@example.com",
		"role":       "authenticated",
		"session_id": "S1",
		"aud":        "authenticated",
		"iss":        gotrue.IssuerURL(testBaseURL),
		"exp":        exp.Unix(),
	}
}

func TestHS256Verifier_Verify(t *testing.T) {
	v := gotrue.NewHS256Verifier(testSecret, gotrue.IssuerURL(testBaseURL))
	exp := time.Now().Add(time.Hour).Truncate(time.Second)

	t.Run("valid token", func(t *testing.T) {
		raw := signToken(t, jwtlib.SigningMethodHS256, []byte(testSecret), validClaims(exp))

		claims, err := v.Verify(context.Background(), raw)
		require.NoError(t, err)
		require.Equal(t, "U1", claims.Subject)
		require.Equal(t, "jo@example.com", claims.Email)
		require.Equal(t, "authenticated", claims.Role)
		require.Equal(t, "S1", claims.SessionID)
		require.True(t, exp.Equal(claims.Expiry))
	})

	t.Run("expired token", func(t *testing.T) {
		raw := signToken(t, jwtlib.SigningMethodHS256, []byte(testSecret), validClaims(time.Now().Add(-time.Minute)))

		_, err := v.Verify(context.Background(), raw)
		require.ErrorIs(t, err, apperrors.ErrTokenExpired)
		require.NotErrorIs(t, err, apperrors.ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		raw := signToken(t, jwtlib.SigningMethodHS256, []byte("another-secret"), validClaims(exp))

		_, err := v.Verify(context.Background(), raw)
		require.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		claims := validClaims(exp)
		claims["iss"] = "https://elsewhere.example.com/auth/v1"
		raw := signToken(t, jwtlib.SigningMethodHS256, []byte(testSecret), claims)

		_, err := v.Verify(context.Background(), raw)
		require.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})

	t.Run("missing expiry", func(t *testing.T) {
		claims := validClaims(exp)
		delete(claims, "exp")
		raw := signToken(t, jwtlib.SigningMethodHS256, []byte(testSecret), claims)

		_, err := v.Verify(context.Background(), raw)
		require.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})

	t.Run("unexpected algorithm", func(t *testing.T) {
		raw := signToken(t, jwtlib.SigningMethodHS512, []byte(testSecret), validClaims(exp))

		_, err := v.Verify(context.Background(), raw)
		require.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})

	t.Run("empty token", func(t *testing.T) {
		_, err := v.Verify(context.Background(), "  ")
		require.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})
}

func TestNewVerifier(t *testing.T) {
	require.IsType(t, &gotrue.HS256Verifier{}, gotrue.NewVerifier(context.Background(), testBaseURL, testSecret))
	require.IsType(t, &gotrue.JWKSVerifier{}, gotrue.NewVerifier(context.Background(), testBaseURL, ""))
}

func TestIssuerURL(t *testing.T) {
	require.Equal(t, "https://song-ranker.supabase.co/auth/v1", gotrue.IssuerURL(testBaseURL+"/"))
}
