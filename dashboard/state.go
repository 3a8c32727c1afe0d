package dashboard

import (
	"sync"

	"github.com/jrsteele09/song-ranker-admin/members"
	"github.com/jrsteele09/song-ranker-admin/users"
	"golang.org/x/oauth2"
)

// ThemeSource records whose theme the dashboard is showing.
type ThemeSource string

const (
	ThemeSourceSelf   ThemeSource = "self"   // the signed in member's own theme
	ThemeSourceViewed ThemeSource = "viewed" // the theme of a member being viewed
)

// State is the cached session and profile of one browser. The root guard and
// the startup handler share it by reference; the guard writes the member
// through to it so later root navigations skip the remote lookup.
type State struct {
	mu          sync.RWMutex
	session     *oauth2.Token
	user        *users.User
	member      *members.Member
	theme       *members.Theme
	themeSource ThemeSource
}

// Snapshot is a consistent read of State. The pointed-to values are shared and
// must be treated as read-only.
type Snapshot struct {
	Session     *oauth2.Token
	User        *users.User
	Member      *members.Member
	Theme       *members.Theme
	ThemeSource ThemeSource
}

func NewState() *State {
	return &State{themeSource: ThemeSourceSelf}
}

func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Snapshot{
		Session:     s.session,
		User:        s.user,
		Member:      s.member,
		Theme:       s.theme,
		ThemeSource: s.themeSource,
	}
}

func (s *State) Session() *oauth2.Token {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session
}

func (s *State) SetSession(token *oauth2.Token) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = token
}

func (s *State) User() *users.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

func (s *State) SetUser(user *users.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
}

func (s *State) Member() *members.Member {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.member
}

// SetMember caches the member and takes its theme relation as the current theme.
func (s *State) SetMember(member *members.Member) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.member = member
	s.theme = member.Theme()
}

func (s *State) Theme() *members.Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.theme
}

func (s *State) SetTheme(theme *members.Theme) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.theme = theme
}

func (s *State) ThemeSource() ThemeSource {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.themeSource
}

func (s *State) SetThemeSource(source ThemeSource) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.themeSource = source
}

// ClearAuth forgets everything tied to the signed in user, including the
// session tokens.
func (s *State) ClearAuth() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = nil
	s.user = nil
	s.member = nil
	s.theme = nil
	s.themeSource = ThemeSourceSelf
}
