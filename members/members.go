package members

import (
	"errors"
	"strings"

	"github.com/jrsteele09/song-ranker-admin/internal/utils"
)

// ErrNotFound is returned when a user has no member profile yet. It is an
// expected state for new users, not a failure.
var ErrNotFound = errors.New("member not found")

// Theme is the colour scheme a member picked for their dashboard.
type Theme struct {
	ID          string `json:"id"`
	Name        string `json:"name,omitempty"`
	SidebarType string `json:"sidebar_type,omitempty"` // bg-white, bg-default...
	DarkMode    bool   `json:"dark_mode,omitempty"`
	Color       string `json:"color,omitempty"` // primary accent colour
}

// Member is the application profile linked to an auth provider user.
type Member struct {
	MemberID    string  `json:"member_id"`              // Provider user id
	MusicID     string  `json:"music_id"`               // Member key used in dashboard URLs
	DisplayName string  `json:"display_name,omitempty"` // Name shown on the tables
	ThemeID     *string `json:"theme_id,omitempty"`     // Optional theme reference
	Themes      *Theme  `json:"themes,omitempty"`       // Embedded theme relation
}

// Key returns the member key, or "" when the member is nil or has none.
func (m *Member) Key() string {
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m.MusicID)
}

// HasKey reports whether the member can be routed to.
func (m *Member) HasKey() bool {
	return m.Key() != ""
}

// Theme returns the embedded theme, if any.
func (m *Member) Theme() *Theme {
	if m == nil {
		return nil
	}
	return m.Themes
}

// ThemeRef returns the referenced theme id or "".
func (m *Member) ThemeRef() string {
	if m == nil {
		return ""
	}
	return utils.Value(m.ThemeID)
}
