package loginsession

import (
	"fmt"
	"sync"
	"time"

	apperrors "github.com/jrsteele09/song-ranker-admin/internal/errors"
)

var _ Repo = (*InMemoryLoginSessionRepo)(nil)

// InMemoryLoginSessionRepo keeps entries in process memory. Entries are lost on
// restart, which signs every browser out.
type InMemoryLoginSessionRepo struct {
	mu       sync.RWMutex
	sessions map[string]*Entry // sessionID -> Entry
	now      func() time.Time
}

func NewInMemoryLoginSessionRepo() *InMemoryLoginSessionRepo {
	return &InMemoryLoginSessionRepo{
		sessions: make(map[string]*Entry),
		now:      time.Now,
	}
}

// Upsert creates or replaces an entry.
func (r *InMemoryLoginSessionRepo) Upsert(sessionID string, entry *Entry) error {
	if sessionID == "" {
		return fmt.Errorf("sessionID is required")
	}
	if entry == nil || entry.State == nil {
		return fmt.Errorf("entry with state is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[sessionID] = entry
	return nil
}

// Get returns the entry and marks it as seen.
func (r *InMemoryLoginSessionRepo) Get(sessionID string) (*Entry, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("sessionID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.sessions[sessionID]
	if !ok {
		return nil, apperrors.ErrSessionNotFound
	}
	entry.LastSeen = r.now()
	return entry, nil
}

func (r *InMemoryLoginSessionRepo) Delete(sessionID string) error {
	if sessionID == "" {
		return fmt.Errorf("sessionID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, sessionID) // Already gone is fine
	return nil
}

func (r *InMemoryLoginSessionRepo) DeleteIdle(cutoff time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, entry := range r.sessions {
		if entry.LastSeen.Before(cutoff) {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed
}
