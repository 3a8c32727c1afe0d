package repofake

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/jrsteele09/song-ranker-admin/members"
)

var _ members.Repo = (*FakeMemberRepo)(nil)

var errDuplicate = errors.New("member already exists")

type FakeMemberRepo struct {
	members  map[string]*members.Member // userID -> member
	musicIDs map[string]string          // musicID -> userID
	themes   map[string]*members.Theme
	lock     sync.RWMutex
}

func NewFakeMemberRepo() *FakeMemberRepo {
	return &FakeMemberRepo{
		members:  make(map[string]*members.Member),
		musicIDs: make(map[string]string),
		themes:   make(map[string]*members.Theme),
	}
}

// AddTheme registers a theme that members can reference by id.
func (mr *FakeMemberRepo) AddTheme(theme members.Theme) {
	mr.lock.Lock()
	defer mr.lock.Unlock()

	mr.themes[theme.ID] = &theme
}

func (mr *FakeMemberRepo) GetByUserID(_ context.Context, userID string) (*members.Member, error) {
	mr.lock.RLock()
	defer mr.lock.RUnlock()

	member, ok := mr.members[userID]
	if !ok {
		return nil, members.ErrNotFound
	}
	return mr.withTheme(member), nil
}

func (mr *FakeMemberRepo) GetByMusicID(_ context.Context, musicID string) (*members.Member, error) {
	mr.lock.RLock()
	defer mr.lock.RUnlock()

	userID, ok := mr.musicIDs[musicID]
	if !ok {
		return nil, members.ErrNotFound
	}
	return mr.withTheme(mr.members[userID]), nil
}

func (mr *FakeMemberRepo) Create(_ context.Context, member *members.Member) (*members.Member, error) {
	if member == nil || member.MemberID == "" {
		return nil, errors.New("member id is required")
	}

	mr.lock.Lock()
	defer mr.lock.Unlock()

	if _, ok := mr.members[member.MemberID]; ok {
		return nil, errDuplicate
	}

	stored := *member
	if stored.MusicID == "" {
		stored.MusicID = uuid.New().String()
	}
	if _, ok := mr.musicIDs[stored.MusicID]; ok {
		return nil, errDuplicate
	}
	stored.Themes = nil
	mr.members[stored.MemberID] = &stored
	mr.musicIDs[stored.MusicID] = stored.MemberID

	return mr.withTheme(&stored), nil
}

// withTheme returns a copy of member with its theme relation resolved.
func (mr *FakeMemberRepo) withTheme(member *members.Member) *members.Member {
	out := *member
	if theme, ok := mr.themes[member.ThemeRef()]; ok {
		t := *theme
		out.Themes = &t
	}
	return &out
}
