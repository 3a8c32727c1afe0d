package gotrue

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	jwtlib "github.com/golang-jwt/jwt/v5"
	apperrors "github.com/jrsteele09/song-ranker-admin/internal/errors"
)

// Claims are the access token fields the dashboard uses.
type Claims struct {
	Subject   string
	Email     string
	Role      string
	SessionID string
	Expiry    time.Time
}

// Verifier checks an access token's signature and expiry. Expired tokens are
// reported as apperrors.ErrTokenExpired so callers can refresh instead of
// signing the user out.
type Verifier interface {
	Verify(ctx context.Context, rawToken string) (*Claims, error)
}

// accessTokenClaims is the provider's access token payload.
type accessTokenClaims struct {
	Email     string `json:"email"`
	Role      string `json:"role"`
	SessionID string `json:"session_id"`
	jwtlib.RegisteredClaims
}

// IssuerURL is the issuer the provider puts in its access tokens.
func IssuerURL(baseURL string) string {
	return strings.TrimRight(baseURL, "/") + authPath
}

// NewVerifier picks HS256 verification when the project still uses a shared JWT
// secret and JWKS verification otherwise.
func NewVerifier(ctx context.Context, baseURL, jwtSecret string) Verifier {
	if jwtSecret != "" {
		return NewHS256Verifier(jwtSecret, IssuerURL(baseURL))
	}
	return NewJWKSVerifier(ctx, baseURL)
}

// HS256Verifier verifies tokens signed with the project's shared secret.
type HS256Verifier struct {
	secret []byte
	issuer string
	now    func() time.Time
}

func NewHS256Verifier(secret, issuer string) *HS256Verifier {
	return &HS256Verifier{secret: []byte(secret), issuer: issuer, now: time.Now}
}

func (v *HS256Verifier) Verify(_ context.Context, rawToken string) (*Claims, error) {
	if strings.TrimSpace(rawToken) == "" {
		return nil, apperrors.ErrInvalidToken
	}

	opts := []jwtlib.ParserOption{
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Name}),
		jwtlib.WithExpirationRequired(),
		jwtlib.WithTimeFunc(v.now),
	}
	if v.issuer != "" {
		opts = append(opts, jwtlib.WithIssuer(v.issuer))
	}

	var claims accessTokenClaims
	token, err := jwtlib.ParseWithClaims(rawToken, &claims, func(*jwtlib.Token) (any, error) {
		return v.secret, nil
	}, opts...)
	if errors.Is(err, jwtlib.ErrTokenExpired) {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrTokenExpired, err)
	}
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrInvalidToken, err)
	}

	out := &Claims{
		Subject:   claims.Subject,
		Email:     claims.Email,
		Role:      claims.Role,
		SessionID: claims.SessionID,
	}
	if claims.ExpiresAt != nil {
		out.Expiry = claims.ExpiresAt.Time
	}
	return out, nil
}

// JWKSVerifier verifies asymmetrically signed tokens against the project's
// published key set.
type JWKSVerifier struct {
	verifier *oidc.IDTokenVerifier
}

func NewJWKSVerifier(ctx context.Context, baseURL string) *JWKSVerifier {
	issuer := IssuerURL(baseURL)
	keySet := oidc.NewRemoteKeySet(ctx, issuer+"/.well-known/jwks.json")
	return &JWKSVerifier{
		verifier: oidc.NewVerifier(issuer, keySet, &oidc.Config{
			// access tokens carry aud=authenticated rather than a client id
			SkipClientIDCheck:    true,
			SupportedSigningAlgs: []string{oidc.ES256, oidc.RS256},
		}),
	}
}

func (v *JWKSVerifier) Verify(ctx context.Context, rawToken string) (*Claims, error) {
	if strings.TrimSpace(rawToken) == "" {
		return nil, apperrors.ErrInvalidToken
	}

	idToken, err := v.verifier.Verify(ctx, rawToken)
	if err != nil {
		var expired *oidc.TokenExpiredError
		if errors.As(err, &expired) {
			return nil, fmt.Errorf("%w: %w", apperrors.ErrTokenExpired, err)
		}
		return nil, fmt.Errorf("%w: %w", apperrors.ErrInvalidToken, err)
	}

	var claims struct {
		Email     string `json:"email"`
		Role      string `json:"role"`
		SessionID string `json:"session_id"`
	}
	if err := idToken.Claims(&claims); err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrInvalidToken, err)
	}

	return &Claims{
		Subject:   idToken.Subject,
		Email:     claims.Email,
		Role:      claims.Role,
		SessionID: claims.SessionID,
		Expiry:    idToken.Expiry,
	}, nil
}
