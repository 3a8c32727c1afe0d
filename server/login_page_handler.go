package server

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	apperrors "github.com/jrsteele09/song-ranker-admin/internal/errors"
	"github.com/jrsteele09/song-ranker-admin/members/postgrest"
	"github.com/rs/zerolog/log"
)

// SignInPageHandler displays the sign in page (GET /signin)
func (s *Server) SignInPageHandler() http.HandlerFunc {
	tmpl := mustParseTemplate("signin.html")

	return func(w http.ResponseWriter, r *http.Request) {
		data := s.pageData(r, "Sign In")
		data.Email = r.URL.Query().Get("email")
		render(w, r, tmpl, http.StatusOK, data)
	}
}

// SignInSubmissionHandler signs in with email and password, caches the user
// and their member profile, and hands over to the root guard.
func (s *Server) SignInSubmissionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		logger := log.Ctx(ctx)

		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		email := strings.TrimSpace(r.FormValue("email"))
		password := r.FormValue("password")
		if email == "" || password == "" {
			s.renderSignInError(w, r, "Email and password are required", email)
			return
		}

		session, err := s.auth.SignInWithPassword(ctx, email, password)
		if err != nil {
			if errors.Is(err, apperrors.ErrInvalidCredentials) {
				s.renderSignInError(w, r, "Invalid email or password", email)
				return
			}
			logger.Err(err).Msg("Sign in failed")
			s.renderSignInError(w, r, "Sign in is unavailable, please try again", email)
			return
		}

		ctx = postgrest.WithAccessToken(ctx, session.Token.AccessToken)
		state := stateFrom(ctx)
		state.ClearAuth()
		state.SetSession(session.Token)
		if session.User != nil {
			state.SetUser(session.User)
		}

		if err := s.actions.FetchUser(ctx, state, s.sessionsFor(state)); err != nil {
			// The root guard looks the member up again.
			logger.Warn().Err(err).Msg("Failed to fetch user after sign in")
		}

		redirectSuccess(w, r, RouteRoot)
	}
}

// LogoutHandler signs out at the provider and ends the dashboard session.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		logger := log.Ctx(ctx)

		if state := stateFrom(ctx); state != nil {
			if err := s.actions.Logout(ctx, state, s.sessionsFor(state)); err != nil {
				logger.Warn().Err(err).Msg("Logout: provider sign out failed")
			}
		}

		if err := s.endLoginSession(w, r, sessionIDFrom(ctx)); err != nil {
			logger.Err(err).Msg("Failed to delete login session")
		}

		redirectSuccess(w, r, RouteSignIn)
	}
}

// renderSignInError redirects to the sign in page with an error message
func (s *Server) renderSignInError(w http.ResponseWriter, r *http.Request, errorMsg, email string) {
	redirectURL := RouteSignIn + "?error=" + url.QueryEscape(errorMsg)
	if email != "" {
		redirectURL += "&email=" + url.QueryEscape(email)
	}

	redirectSuccess(w, r, redirectURL)
}
