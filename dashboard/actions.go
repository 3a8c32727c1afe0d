package dashboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jrsteele09/song-ranker-admin/members"
	"github.com/rs/zerolog"
)

// Actions are the state transitions driven by the user: sign in, sign out and
// browsing other members' tables.
type Actions struct {
	profiles ProfileStore
	timeout  time.Duration
}

func NewActions(profiles ProfileStore, timeout time.Duration) *Actions {
	return &Actions{profiles: profiles, timeout: timeout}
}

// FetchUser caches the current user and, when one exists, their member
// profile. A missing profile is not an error.
func (a *Actions) FetchUser(ctx context.Context, state *State, sessions SessionStore) error {
	callCtx, cancel := withTimeout(ctx, a.timeout)
	defer cancel()

	user, err := sessions.GetCurrentUser(callCtx)
	if err != nil {
		return fmt.Errorf("get current user: %w", err)
	}
	state.SetUser(user)

	member, err := a.profiles.GetByUserID(callCtx, user.ID)
	if errors.Is(err, members.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("fetch member for user %s: %w", user.ID, err)
	}
	state.SetMember(member)
	state.SetThemeSource(ThemeSourceSelf)
	return nil
}

// Logout signs out at the provider and clears the cached state. The local
// state is cleared even when the provider call fails.
func (a *Actions) Logout(ctx context.Context, state *State, sessions SessionStore) error {
	callCtx, cancel := withTimeout(ctx, a.timeout)
	defer cancel()

	err := sessions.SignOut(callCtx)
	state.ClearAuth()
	if err != nil {
		return fmt.Errorf("sign out: %w", err)
	}
	return nil
}

// ViewMember switches the displayed theme for a visit to the tables of
// memberKey. Viewing your own tables shows your theme; viewing someone else's
// shows theirs.
func (a *Actions) ViewMember(ctx context.Context, state *State, memberKey string) (*members.Member, error) {
	own := state.Member()
	if own.HasKey() && own.Key() == memberKey {
		state.SetTheme(own.Theme())
		state.SetThemeSource(ThemeSourceSelf)
		return own, nil
	}

	callCtx, cancel := withTimeout(ctx, a.timeout)
	defer cancel()

	viewed, err := a.profiles.GetByMusicID(callCtx, memberKey)
	if err != nil {
		return nil, fmt.Errorf("fetch member %s: %w", memberKey, err)
	}
	zerolog.Ctx(ctx).Debug().Str("member_key", memberKey).Msg("viewing member tables")
	state.SetTheme(viewed.Theme())
	state.SetThemeSource(ThemeSourceViewed)
	return viewed, nil
}
