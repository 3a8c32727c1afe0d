package dashboard_test

import (
	"context"
	"strings"

	"github.com/jrsteele09/song-ranker-admin/dashboard"
	"github.com/jrsteele09/song-ranker-admin/members"
	"github.com/jrsteele09/song-ranker-admin/users"
)

// fakeBrowser records every browser effect the core asks for.
type fakeBrowser struct {
	fragment     string
	path         string
	flags        map[string]bool
	replacedURLs []string
	navigations  []string
}

func newFakeBrowser(path, fragment string) *fakeBrowser {
	return &fakeBrowser{path: path, fragment: fragment, flags: map[string]bool{}}
}

func (b *fakeBrowser) Fragment() string { return b.fragment }

func (b *fakeBrowser) ReplaceURL(path string) {
	b.replacedURLs = append(b.replacedURLs, path)
	if !strings.Contains(path, "#") {
		b.fragment = ""
	}
}

func (b *fakeBrowser) ReplaceRoute(path string) {
	b.navigations = append(b.navigations, path)
	b.path = path
}

func (b *fakeBrowser) CurrentPath() string { return b.path }

func (b *fakeBrowser) Flag(name string) bool { return b.flags[name] }

func (b *fakeBrowser) SetFlag(name string, value bool) { b.flags[name] = value }

type tokenPair struct{ access, refresh string }

type fakeSessions struct {
	established []tokenPair
	establishFn func() error
	user        *users.User
	userErr     error
	signOuts    int
	signOutErr  error
}

func (s *fakeSessions) EstablishSession(_ context.Context, accessToken, refreshToken string) error {
	s.established = append(s.established, tokenPair{accessToken, refreshToken})
	if s.establishFn != nil {
		return s.establishFn()
	}
	return nil
}

func (s *fakeSessions) GetCurrentUser(context.Context) (*users.User, error) {
	return s.user, s.userErr
}

func (s *fakeSessions) SignOut(context.Context) error {
	s.signOuts++
	return s.signOutErr
}

func tabFor(b *fakeBrowser, s *fakeSessions) dashboard.Tab {
	return dashboard.Tab{Address: b, Navigator: b, Flags: b, Sessions: s}
}

// fakeProfiles counts remote lookups.
type fakeProfiles struct {
	byUser  map[string]*members.Member
	byMusic map[string]*members.Member
	err     error
	calls   int
}

func (p *fakeProfiles) GetByUserID(_ context.Context, userID string) (*members.Member, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	if m, ok := p.byUser[userID]; ok {
		return m, nil
	}
	return nil, members.ErrNotFound
}

func (p *fakeProfiles) GetByMusicID(_ context.Context, musicID string) (*members.Member, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	if m, ok := p.byMusic[musicID]; ok {
		return m, nil
	}
	return nil, members.ErrNotFound
}

type fakeRecorder struct {
	recoveries  []dashboard.RecoveryOutcome
	resolutions []dashboard.Target
	lookups     []dashboard.LookupResult
}

func (r *fakeRecorder) RecordRecovery(o dashboard.RecoveryOutcome) {
	r.recoveries = append(r.recoveries, o)
}

func (r *fakeRecorder) RecordRootResolution(t dashboard.Target) {
	r.resolutions = append(r.resolutions, t)
}

func (r *fakeRecorder) RecordProfileLookup(l dashboard.LookupResult) {
	r.lookups = append(r.lookups, l)
}
