package server

import (
	"context"
	"errors"

	"github.com/jrsteele09/song-ranker-admin/dashboard"
	"github.com/jrsteele09/song-ranker-admin/gotrue"
	apperrors "github.com/jrsteele09/song-ranker-admin/internal/errors"
	"github.com/jrsteele09/song-ranker-admin/users"
	"golang.org/x/oauth2"
)

var _ dashboard.SessionStore = (*providerSessions)(nil)

// providerSessions is the auth provider bound to one browser's state.
type providerSessions struct {
	auth     AuthProvider
	verifier gotrue.Verifier
	state    *dashboard.State
}

func (s *Server) sessionsFor(state *dashboard.State) *providerSessions {
	return &providerSessions{auth: s.auth, verifier: s.verifier, state: state}
}

// EstablishSession adopts a token pair handed out by the provider outside a
// sign in, e.g. in a recovery link. An expired access token is exchanged with
// the refresh token. The link may belong to another account than the one
// cached, so everything cached is dropped first, also when the link fails.
func (p *providerSessions) EstablishSession(ctx context.Context, accessToken, refreshToken string) error {
	p.state.ClearAuth()

	claims, err := p.verifier.Verify(ctx, accessToken)
	switch {
	case errors.Is(err, apperrors.ErrTokenExpired):
		session, err := p.auth.RefreshSession(ctx, refreshToken)
		if err != nil {
			return apperrors.Wrapf(err, "refresh expired recovery token")
		}
		p.adopt(session.Token, session.User)
		if session.User == nil {
			_, err = p.GetCurrentUser(ctx)
			return err
		}
		return nil
	case err != nil:
		return apperrors.Wrapf(err, "verify recovery token")
	}

	p.state.SetSession(&oauth2.Token{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
		Expiry:       claims.Expiry,
	})
	_, err = p.GetCurrentUser(ctx)
	return err
}

// GetCurrentUser fetches the user of the cached session and caches it.
func (p *providerSessions) GetCurrentUser(ctx context.Context) (*users.User, error) {
	token := p.state.Session()
	if token == nil || token.AccessToken == "" {
		return nil, apperrors.ErrSessionNotFound
	}
	user, err := p.auth.GetUser(ctx, token.AccessToken)
	if err != nil {
		return nil, apperrors.Wrapf(err, "get user")
	}
	p.state.SetUser(user)
	return user, nil
}

// SignOut revokes the cached session at the provider. Without a session there
// is nothing to revoke.
func (p *providerSessions) SignOut(ctx context.Context) error {
	token := p.state.Session()
	if token == nil {
		return nil
	}
	return p.auth.SignOut(ctx, token.AccessToken)
}

// Refresh exchanges the cached refresh token for a new pair.
func (p *providerSessions) Refresh(ctx context.Context) error {
	token := p.state.Session()
	if token == nil || token.RefreshToken == "" {
		return apperrors.ErrSessionExpired
	}
	session, err := p.auth.RefreshSession(ctx, token.RefreshToken)
	if err != nil {
		return apperrors.Wrapf(err, "refresh session")
	}
	p.adopt(session.Token, session.User)
	return nil
}

func (p *providerSessions) adopt(token *oauth2.Token, user *users.User) {
	p.state.SetSession(token)
	if user != nil {
		p.state.SetUser(user)
	}
}
