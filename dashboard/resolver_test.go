package dashboard_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jrsteele09/song-ranker-admin/dashboard"
	"github.com/jrsteele09/song-ranker-admin/members"
	"github.com/jrsteele09/song-ranker-admin/users"
	"github.com/stretchr/testify/require"
)

func TestRootResolver_CachedMember(t *testing.T) {
	profiles := &fakeProfiles{}
	resolver := dashboard.NewRootResolver(profiles, nil, 0)

	state := dashboard.NewState()
	state.SetMember(&members.Member{MemberID: "U1", MusicID: "M1"})

	target := resolver.Resolve(context.Background(), state)

	require.Equal(t, dashboard.TableView("M1"), target)
	require.Zero(t, profiles.calls)
}

func TestRootResolver_FetchesAndCachesMember(t *testing.T) {
	theme := &members.Theme{ID: "T1", Color: "info"}
	profiles := &fakeProfiles{byUser: map[string]*members.Member{
		"U1": {MemberID: "U1", MusicID: "M1", Themes: theme},
	}}
	recorder := &fakeRecorder{}
	resolver := dashboard.NewRootResolver(profiles, recorder, 0)

	state := dashboard.NewState()
	state.SetUser(&users.User{ID: "U1"})

	require.Equal(t, dashboard.TableView("M1"), resolver.Resolve(context.Background(), state))
	require.Equal(t, 1, profiles.calls)
	require.Equal(t, "M1", state.Member().Key())
	require.Equal(t, theme, state.Theme())

	require.Equal(t, dashboard.TableView("M1"), resolver.Resolve(context.Background(), state))
	require.Equal(t, 1, profiles.calls)

	require.Equal(t, []dashboard.LookupResult{dashboard.LookupFound}, recorder.lookups)
	require.Len(t, recorder.resolutions, 2)
}

func TestRootResolver_MemberCreationWhenNoProfile(t *testing.T) {
	tests := []struct {
		name     string
		profiles *fakeProfiles
		result   dashboard.LookupResult
	}{
		{
			name:     "no record",
			profiles: &fakeProfiles{},
			result:   dashboard.LookupEmpty,
		},
		{
			name: "empty key",
			profiles: &fakeProfiles{byUser: map[string]*members.Member{
				"U1": {MemberID: "U1", MusicID: "  "},
			}},
			result: dashboard.LookupEmpty,
		},
		{
			name:     "transport error",
			profiles: &fakeProfiles{err: errors.New("connection reset")},
			result:   dashboard.LookupError,
		},
		{
			name:     "deadline",
			profiles: &fakeProfiles{err: context.DeadlineExceeded},
			result:   dashboard.LookupError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := &fakeRecorder{}
			resolver := dashboard.NewRootResolver(tt.profiles, recorder, 0)

			state := dashboard.NewState()
			state.SetUser(&users.User{ID: "U1"})

			require.Equal(t, dashboard.MemberCreationTarget, resolver.Resolve(context.Background(), state))
			require.Equal(t, 1, tt.profiles.calls)
			require.Nil(t, state.Member())
			require.Equal(t, []dashboard.LookupResult{tt.result}, recorder.lookups)
		})
	}
}

func TestRootResolver_Anonymous(t *testing.T) {
	profiles := &fakeProfiles{}
	resolver := dashboard.NewRootResolver(profiles, nil, 0)

	require.Equal(t, dashboard.SignInTarget, resolver.Resolve(context.Background(), dashboard.NewState()))
	require.Zero(t, profiles.calls)
}

func TestRootResolver_MemberWithoutKeyFallsThroughToUser(t *testing.T) {
	profiles := &fakeProfiles{}
	resolver := dashboard.NewRootResolver(profiles, nil, 0)

	state := dashboard.NewState()
	state.SetMember(&members.Member{MemberID: "U1"})

	require.Equal(t, dashboard.SignInTarget, resolver.Resolve(context.Background(), state))
	require.Zero(t, profiles.calls)

	state.SetUser(&users.User{ID: "U1"})
	require.Equal(t, dashboard.MemberCreationTarget, resolver.Resolve(context.Background(), state))
	require.Equal(t, 1, profiles.calls)
}

func TestRootResolver_Guard(t *testing.T) {
	resolver := dashboard.NewRootResolver(&fakeProfiles{}, nil, 0)
	state := dashboard.NewState()
	state.SetMember(&members.Member{MusicID: "M1"})

	var calls []dashboard.Redirect
	next := func(r dashboard.Redirect) { calls = append(calls, r) }

	resolver.Guard(context.Background(), state, "/profile", "/", next)
	require.Equal(t, []dashboard.Redirect{dashboard.Proceed()}, calls)

	calls = nil
	resolver.Guard(context.Background(), state, "/", "/profile", next)
	require.Len(t, calls, 1)
	require.False(t, calls[0].Proceed)
	require.Equal(t, "/members/M1/tables", calls[0].Target.Path())
}
