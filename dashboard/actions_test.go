package dashboard_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jrsteele09/song-ranker-admin/dashboard"
	"github.com/jrsteele09/song-ranker-admin/members"
	"github.com/jrsteele09/song-ranker-admin/users"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func TestActions_FetchUser(t *testing.T) {
	theme := &members.Theme{ID: "T1"}
	profiles := &fakeProfiles{byUser: map[string]*members.Member{
		"U1": {MemberID: "U1", MusicID: "M1", Themes: theme},
	}}
	sessions := &fakeSessions{user: &users.User{ID: "U1", Email: "jo@example.com"}}
	actions := dashboard.NewActions(profiles, 0)
	state := dashboard.NewState()

	require.NoError(t, actions.FetchUser(context.Background(), state, sessions))

	snap := state.Snapshot()
	require.Equal(t, "U1", snap.User.ID)
	require.Equal(t, "M1", snap.Member.Key())
	require.Equal(t, theme, snap.Theme)
	require.Equal(t, dashboard.ThemeSourceSelf, snap.ThemeSource)
}

func TestActions_FetchUserWithoutMember(t *testing.T) {
	actions := dashboard.NewActions(&fakeProfiles{}, 0)
	state := dashboard.NewState()

	err := actions.FetchUser(context.Background(), state, &fakeSessions{user: &users.User{ID: "U2"}})
	require.NoError(t, err)
	require.Equal(t, "U2", state.User().ID)
	require.Nil(t, state.Member())
}

func TestActions_FetchUserErrors(t *testing.T) {
	actions := dashboard.NewActions(&fakeProfiles{err: errors.New("boom")}, 0)
	state := dashboard.NewState()

	err := actions.FetchUser(context.Background(), state, &fakeSessions{userErr: errors.New("expired")})
	require.ErrorContains(t, err, "get current user")
	require.Nil(t, state.User())

	err = actions.FetchUser(context.Background(), state, &fakeSessions{user: &users.User{ID: "U3"}})
	require.ErrorContains(t, err, "fetch member for user U3")
	require.Equal(t, "U3", state.User().ID)
}

func TestActions_Logout(t *testing.T) {
	actions := dashboard.NewActions(&fakeProfiles{}, 0)
	state := dashboard.NewState()
	state.SetSession(&oauth2.Token{AccessToken: "A"})
	state.SetUser(&users.User{ID: "U1"})
	state.SetMember(&members.Member{MusicID: "M1", Themes: &members.Theme{ID: "T1"}})
	state.SetThemeSource(dashboard.ThemeSourceViewed)

	sessions := &fakeSessions{signOutErr: errors.New("provider down")}
	err := actions.Logout(context.Background(), state, sessions)
	require.Error(t, err)
	require.Equal(t, 1, sessions.signOuts)

	snap := state.Snapshot()
	require.Nil(t, snap.Session)
	require.Nil(t, snap.User)
	require.Nil(t, snap.Member)
	require.Nil(t, snap.Theme)
	require.Equal(t, dashboard.ThemeSourceSelf, snap.ThemeSource)
}

func TestActions_ViewMember(t *testing.T) {
	ownTheme := &members.Theme{ID: "own"}
	otherTheme := &members.Theme{ID: "other"}
	profiles := &fakeProfiles{byMusic: map[string]*members.Member{
		"M2": {MemberID: "U2", MusicID: "M2", Themes: otherTheme},
	}}
	actions := dashboard.NewActions(profiles, 0)
	state := dashboard.NewState()
	state.SetMember(&members.Member{MemberID: "U1", MusicID: "M1", Themes: ownTheme})

	viewed, err := actions.ViewMember(context.Background(), state, "M2")
	require.NoError(t, err)
	require.Equal(t, "U2", viewed.MemberID)
	require.Equal(t, otherTheme, state.Theme())
	require.Equal(t, dashboard.ThemeSourceViewed, state.ThemeSource())

	viewed, err = actions.ViewMember(context.Background(), state, "M1")
	require.NoError(t, err)
	require.Equal(t, "U1", viewed.MemberID)
	require.Equal(t, ownTheme, state.Theme())
	require.Equal(t, dashboard.ThemeSourceSelf, state.ThemeSource())
	require.Equal(t, 1, profiles.calls)

	_, err = actions.ViewMember(context.Background(), state, "missing")
	require.ErrorIs(t, err, members.ErrNotFound)
}
