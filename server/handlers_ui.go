package server

import (
	"errors"
	"net/http"

	apperrors "github.com/jrsteele09/song-ranker-admin/internal/errors"
	"github.com/rs/zerolog/log"
)

const minPasswordLength = 6

// ResetPasswordGetHandler renders the password reset page. It also renders
// without a usable session; the form then explains the link has expired.
func (s *Server) ResetPasswordGetHandler() http.HandlerFunc {
	tmpl := mustParseTemplate("reset_password.html")

	return func(w http.ResponseWriter, r *http.Request) {
		data := s.pageData(r, "Reset Password")
		if data.User == nil && data.Error == "" {
			data.Error = "Open the link from your password reset email to choose a new password."
		}
		render(w, r, tmpl, http.StatusOK, data)
	}
}

// ResetPasswordPostHandler sets the new password using the session the
// recovery link established.
func (s *Server) ResetPasswordPostHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		logger := log.Ctx(ctx)

		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		password := r.FormValue("new_password")
		confirm := r.FormValue("confirm_password")
		switch {
		case len(password) < minPasswordLength:
			redirectWithError(w, r, RouteResetPassword, "Password must be at least 6 characters")
			return
		case password != confirm:
			redirectWithError(w, r, RouteResetPassword, "Passwords do not match")
			return
		}

		state := stateFrom(ctx)
		token := state.Session()
		if token == nil {
			redirectWithError(w, r, RouteResetPassword, "Your reset link has expired, request a new one")
			return
		}
		if !token.Valid() {
			if err := s.sessionsFor(state).Refresh(ctx); err != nil {
				logger.Info().Err(err).Msg("Reset password: refresh failed")
				state.ClearAuth()
				redirectWithError(w, r, RouteResetPassword, "Your reset link has expired, request a new one")
				return
			}
			token = state.Session()
		}

		user, err := s.auth.UpdatePassword(ctx, token.AccessToken, password)
		if err != nil {
			if errors.Is(err, apperrors.ErrInvalidToken) {
				state.ClearAuth()
				redirectWithError(w, r, RouteResetPassword, "Your reset link has expired, request a new one")
				return
			}
			logger.Err(err).Msg("Reset password: update failed")
			redirectWithError(w, r, RouteResetPassword, "Could not update your password")
			return
		}
		state.SetUser(user)

		redirectSuccess(w, r, RouteRoot)
	}
}

// ForbiddenHandler renders the forbidden page.
func (s *Server) ForbiddenHandler() http.HandlerFunc {
	tmpl := mustParseTemplate("forbidden.html")

	return func(w http.ResponseWriter, r *http.Request) {
		render(w, r, tmpl, http.StatusForbidden, s.pageData(r, "Forbidden"))
	}
}
