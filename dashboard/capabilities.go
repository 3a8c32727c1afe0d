package dashboard

import (
	"context"

	"github.com/jrsteele09/song-ranker-admin/members"
	"github.com/jrsteele09/song-ranker-admin/users"
)

// SessionStore is the auth provider as seen from one browser.
type SessionStore interface {
	// EstablishSession adopts a token pair, e.g. from a recovery link.
	EstablishSession(ctx context.Context, accessToken, refreshToken string) error
	// GetCurrentUser returns the user of the current session.
	GetCurrentUser(ctx context.Context) (*users.User, error)
	SignOut(ctx context.Context) error
}

// ProfileStore reads member profiles. A missing profile is members.ErrNotFound.
type ProfileStore interface {
	GetByUserID(ctx context.Context, userID string) (*members.Member, error)
	GetByMusicID(ctx context.Context, musicID string) (*members.Member, error)
}

// Navigator changes the view without adding a history entry.
type Navigator interface {
	ReplaceRoute(path string)
	CurrentPath() string
}

// AddressBar is the browser's visible URL.
type AddressBar interface {
	// Fragment is the part after '#', possibly empty.
	Fragment() string
	// ReplaceURL rewrites the visible URL without reloading the page.
	ReplaceURL(path string)
}

// TabFlags is boolean storage that lives as long as the browser tab.
type TabFlags interface {
	Flag(name string) bool
	SetFlag(name string, value bool)
}

// Tab bundles the per-browser capabilities the startup handler works with.
type Tab struct {
	Address   AddressBar
	Navigator Navigator
	Flags     TabFlags
	Sessions  SessionStore
}
