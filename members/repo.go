package members

import "context"

// Repo reads and creates member profiles. Implementations return ErrNotFound
// when no profile matches.
type Repo interface {
	// GetByUserID returns the member linked to an auth provider user.
	GetByUserID(ctx context.Context, userID string) (*Member, error)

	// GetByMusicID returns the member owning a member key.
	GetByMusicID(ctx context.Context, musicID string) (*Member, error)

	// Create stores a new member and returns it with its theme relation.
	Create(ctx context.Context, member *Member) (*Member, error)
}
