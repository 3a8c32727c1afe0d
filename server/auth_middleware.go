package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/jrsteele09/song-ranker-admin/dashboard"
	apperrors "github.com/jrsteele09/song-ranker-admin/internal/errors"
	"github.com/jrsteele09/song-ranker-admin/members/postgrest"
	"github.com/rs/zerolog/log"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// ContextKeySessionID stores the dashboard session id
	ContextKeySessionID ContextKey = "session_id"
	// ContextKeyState stores the browser's *dashboard.State
	ContextKeyState ContextKey = "dashboard_state"
)

// stateFrom returns the state WithDashboardSession put in ctx.
func stateFrom(ctx context.Context) *dashboard.State {
	state, _ := ctx.Value(ContextKeyState).(*dashboard.State)
	return state
}

func sessionIDFrom(ctx context.Context) string {
	sid, _ := ctx.Value(ContextKeySessionID).(string)
	return sid
}

// WithDashboardSession loads (or starts) the browser's dashboard session and
// puts its state in the request context. Profile reads made for the request
// carry the user's access token.
func (s *Server) WithDashboardSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sid, entry, err := s.loginSession(w, r)
		if err != nil {
			log.Ctx(r.Context()).Error().Err(err).Msg("failed to load dashboard session")
			http.Error(w, "500 - Internal Server Error", http.StatusInternalServerError)
			return
		}

		ctx := context.WithValue(r.Context(), ContextKeySessionID, sid)
		ctx = context.WithValue(ctx, ContextKeyState, entry.State)
		if token := entry.State.Session(); token != nil {
			ctx = postgrest.WithAccessToken(ctx, token.AccessToken)
		}
		next(w, r.WithContext(ctx))
	}
}

// RequireSessionAuth is middleware for views that need a signed in user. An
// expired access token is refreshed first; when that fails the cached state is
// cleared and the browser is sent to sign in.
// Must be chained after WithDashboardSession.
func (s *Server) RequireSessionAuth() Middleware {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			logger := log.Ctx(ctx)
			state := stateFrom(ctx)
			if state == nil || state.Session() == nil || state.User() == nil {
				redirectSuccess(w, r, dashboard.RouteSignIn)
				return
			}

			_, err := s.verifier.Verify(ctx, state.Session().AccessToken)
			switch {
			case err == nil && state.Session().Valid():
			case err == nil || errors.Is(err, apperrors.ErrTokenExpired):
				if err := s.sessionsFor(state).Refresh(ctx); err != nil {
					logger.Info().Err(err).Msg("session refresh failed")
					state.ClearAuth()
					redirectWithError(w, r, dashboard.RouteSignIn, "Session expired")
					return
				}
				ctx = postgrest.WithAccessToken(ctx, state.Session().AccessToken)
			default:
				logger.Warn().Err(err).Msg("rejected access token")
				state.ClearAuth()
				redirectWithError(w, r, dashboard.RouteSignIn, "Invalid session")
				return
			}

			next(w, r.WithContext(ctx))
		}
	}
}
