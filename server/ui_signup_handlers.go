package server

import (
	"net/http"
	"strings"

	"github.com/jrsteele09/song-ranker-admin/dashboard"
	"github.com/jrsteele09/song-ranker-admin/internal/utils"
	"github.com/jrsteele09/song-ranker-admin/members"
	"github.com/rs/zerolog/log"
)

const maxDisplayNameLength = 80

// MemberCreationGetHandler renders the member creation page. Users who already
// have a member profile go to their tables.
func (s *Server) MemberCreationGetHandler() http.HandlerFunc {
	tmpl := mustParseTemplate("signup.html")

	return func(w http.ResponseWriter, r *http.Request) {
		state := stateFrom(r.Context())
		if member := state.Member(); member.HasKey() {
			redirectSuccess(w, r, dashboard.TableViewPath(member.Key()))
			return
		}
		render(w, r, tmpl, http.StatusOK, s.pageData(r, "Create your member profile"))
	}
}

// MemberCreationPostHandler creates the signed in user's member profile. The
// member key is generated when none is given.
func (s *Server) MemberCreationPostHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		logger := log.Ctx(ctx)

		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		state := stateFrom(ctx)
		user := state.User()

		displayName := strings.TrimSpace(r.FormValue("display_name"))
		musicID := strings.TrimSpace(r.FormValue("music_id"))
		themeID := strings.TrimSpace(r.FormValue("theme_id"))
		switch {
		case displayName == "":
			redirectWithError(w, r, RouteMemberCreation, "Display name is required")
			return
		case len(displayName) > maxDisplayNameLength:
			redirectWithError(w, r, RouteMemberCreation, "Display name is too long")
			return
		case strings.ContainsAny(musicID, "/?#"):
			redirectWithError(w, r, RouteMemberCreation, "Member key may not contain / ? or #")
			return
		}

		created, err := s.members.Create(ctx, &members.Member{
			MemberID:    user.ID,
			MusicID:     musicID,
			DisplayName: displayName,
			ThemeID:     utils.NilIfEmpty(themeID),
		})
		if err != nil {
			logger.Err(err).Str("user_id", user.ID).Msg("Failed to create member")
			redirectWithError(w, r, RouteMemberCreation, "Could not create your member profile")
			return
		}

		state.SetMember(created)
		state.SetThemeSource(dashboard.ThemeSourceSelf)
		redirectSuccess(w, r, dashboard.TableViewPath(created.Key()))
	}
}
