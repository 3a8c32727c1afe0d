package server

import (
	"errors"
	"net/http"

	"github.com/jrsteele09/song-ranker-admin/members"
	"github.com/rs/zerolog/log"
)

// DashboardHandler renders the default dashboard.
func (s *Server) DashboardHandler() http.HandlerFunc {
	tmpl := mustParseTemplate("dashboard.html")

	return func(w http.ResponseWriter, r *http.Request) {
		render(w, r, tmpl, http.StatusOK, s.pageData(r, "Dashboard"))
	}
}

// TablesHandler renders the tables of a member. The page takes the viewed
// member's theme when it is not the signed in member.
func (s *Server) TablesHandler() http.HandlerFunc {
	tmpl := mustParseTemplate("tables.html")
	notFound := mustParseTemplate("not_found.html")

	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		memberKey := r.PathValue("memberId")

		viewed, err := s.actions.ViewMember(ctx, stateFrom(ctx), memberKey)
		if err != nil {
			if errors.Is(err, members.ErrNotFound) {
				render(w, r, notFound, http.StatusNotFound, s.pageData(r, "Member not found"))
				return
			}
			log.Ctx(ctx).Err(err).Str("member_key", memberKey).Msg("Failed to load member tables")
			http.Error(w, "500 - Internal Server Error", http.StatusInternalServerError)
			return
		}

		data := s.pageData(r, viewed.DisplayName)
		data.Viewed = viewed
		render(w, r, tmpl, http.StatusOK, data)
	}
}

// ProfileHandler renders the signed in user's profile.
func (s *Server) ProfileHandler() http.HandlerFunc {
	tmpl := mustParseTemplate("profile.html")

	return func(w http.ResponseWriter, r *http.Request) {
		render(w, r, tmpl, http.StatusOK, s.pageData(r, "Profile"))
	}
}

// ArtistHandler renders an artist of a member.
func (s *Server) ArtistHandler() http.HandlerFunc {
	tmpl := mustParseTemplate("artist.html")
	notFound := mustParseTemplate("not_found.html")

	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		memberKey := r.PathValue("memberId")

		viewed, err := s.members.GetByMusicID(ctx, memberKey)
		if err != nil {
			if errors.Is(err, members.ErrNotFound) {
				render(w, r, notFound, http.StatusNotFound, s.pageData(r, "Member not found"))
				return
			}
			log.Ctx(ctx).Err(err).Str("member_key", memberKey).Msg("Failed to load member")
			http.Error(w, "500 - Internal Server Error", http.StatusInternalServerError)
			return
		}

		data := s.pageData(r, "Artist")
		data.Viewed = viewed
		data.ArtistID = r.PathValue("artistId")
		render(w, r, tmpl, http.StatusOK, data)
	}
}

// NotFoundHandler renders the 404 page for unknown paths.
func (s *Server) NotFoundHandler() http.HandlerFunc {
	tmpl := mustParseTemplate("not_found.html")

	return func(w http.ResponseWriter, r *http.Request) {
		data := s.pageData(r, "Not found")
		render(w, r, tmpl, http.StatusNotFound, data)
	}
}
