package loginsession

import (
	"time"

	"github.com/jrsteele09/song-ranker-admin/dashboard"
)

// Entry is the server side half of a browser's dashboard session. The cookie
// only carries the session id.
type Entry struct {
	State *dashboard.State

	// Session management
	CreatedAt time.Time
	LastSeen  time.Time
}

// NewEntry returns an entry with empty state created at now.
func NewEntry(now time.Time) *Entry {
	return &Entry{State: dashboard.NewState(), CreatedAt: now, LastSeen: now}
}

type Repo interface {
	Upsert(sessionID string, entry *Entry) error
	// Get returns apperrors.ErrSessionNotFound for unknown ids.
	Get(sessionID string) (*Entry, error)
	Delete(sessionID string) error
	// DeleteIdle removes entries not seen since cutoff and reports how many.
	DeleteIdle(cutoff time.Time) int
}
