package server

import (
	"encoding/json"
	"net/http"

	"github.com/jrsteele09/song-ranker-admin/dashboard"
	"github.com/rs/zerolog/log"
)

// RootHandler runs the root guard. "/" itself is never rendered.
func (s *Server) RootHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		s.resolver.Guard(ctx, stateFrom(ctx), r.URL.Path, r.Referer(), func(redirect dashboard.Redirect) {
			if redirect.Proceed {
				redirectSuccess(w, r, dashboard.RouteSignIn)
				return
			}
			redirectSuccess(w, r, redirect.Target.Path())
		})
	}
}

// startupRequest is what the page script reports before it mounts the page.
type startupRequest struct {
	Path     string `json:"path"`
	Fragment string `json:"fragment"`
}

// startupResponse lists the browser effects to apply before mounting.
type startupResponse struct {
	Outcome    string `json:"outcome"`
	ReplaceURL string `json:"replace_url,omitempty"`
	Redirect   string `json:"redirect,omitempty"`
}

// StartupHandler is the startup hook. It runs the recovery link handler for
// the reporting tab and answers only once the handler is done, so the page
// mounts after any one-time redirect is known.
func (s *Server) StartupHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		logger := log.Ctx(ctx)

		var req startupRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 16<<10)).Decode(&req); err != nil {
			writeJSONError(w, "invalid_request", "body must be {\"path\", \"fragment\"}", http.StatusBadRequest)
			return
		}

		state := stateFrom(ctx)
		browser := newBrowserTab(req.Path, req.Fragment, s.tabSession(r))
		tab := dashboard.Tab{
			Address:   browser,
			Navigator: browser,
			Flags:     browser,
			Sessions:  s.sessionsFor(state),
		}

		s.recovery.Startup(ctx, tab, func(outcome dashboard.RecoveryOutcome) {
			if err := browser.saveFlags(w, r); err != nil {
				logger.Error().Err(err).Msg("failed to save tab flags")
			}
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Cache-Control", "no-store")
			if err := json.NewEncoder(w).Encode(startupResponse{
				Outcome:    outcome.String(),
				ReplaceURL: browser.replaceURL,
				Redirect:   browser.redirect,
			}); err != nil {
				logger.Err(err).Msg("failed to write startup response")
			}
		})
	}
}

// writeJSONError writes an API error response
func writeJSONError(w http.ResponseWriter, errorCode, description string, statusCode int) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":             errorCode,
		"error_description": description,
	})
}
