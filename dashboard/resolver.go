package dashboard

import (
	"context"
	"errors"
	"time"

	"github.com/jrsteele09/song-ranker-admin/members"
	"github.com/rs/zerolog"
)

// rootState is what the resolver knows about a browser when "/" is visited.
// Exactly one of the variants applies.
type rootState interface {
	isRootState()
}

type hasMember struct{ key string }

type hasUserOnly struct{ userID string }

type anonymous struct{}

func (hasMember) isRootState()   {}
func (hasUserOnly) isRootState() {}
func (anonymous) isRootState()   {}

// rootRule matches a snapshot to a variant. Rules are checked in order and the
// first match wins.
type rootRule func(Snapshot) (rootState, bool)

var rootRules = []rootRule{
	func(s Snapshot) (rootState, bool) {
		if s.Member.HasKey() {
			return hasMember{key: s.Member.Key()}, true
		}
		return nil, false
	},
	func(s Snapshot) (rootState, bool) {
		if s.User != nil {
			return hasUserOnly{userID: s.User.ID}, true
		}
		return nil, false
	},
	func(Snapshot) (rootState, bool) {
		return anonymous{}, true
	},
}

func classify(s Snapshot) rootState {
	for _, rule := range rootRules {
		if st, ok := rule(s); ok {
			return st
		}
	}
	return anonymous{}
}

// Redirect is the continuation value handed to a guard's next callback.
// Proceed lets the navigation settle; otherwise the browser is sent to Target.
type Redirect struct {
	Proceed bool
	Target  Target
}

func Proceed() Redirect { return Redirect{Proceed: true} }

func RedirectTo(t Target) Redirect { return Redirect{Target: t} }

// RootResolver decides where a visit to "/" lands. The root path itself is
// never rendered.
type RootResolver struct {
	profiles ProfileStore
	recorder Recorder
	timeout  time.Duration
}

func NewRootResolver(profiles ProfileStore, recorder Recorder, timeout time.Duration) *RootResolver {
	return &RootResolver{profiles: profiles, recorder: orNop(recorder), timeout: timeout}
}

// Resolve projects the cached state onto a target. A member found remotely is
// written through to state so the next visit needs no remote call.
func (r *RootResolver) Resolve(ctx context.Context, state *State) Target {
	target := r.resolve(ctx, state)
	r.recorder.RecordRootResolution(target)
	return target
}

func (r *RootResolver) resolve(ctx context.Context, state *State) Target {
	switch st := classify(state.Snapshot()).(type) {
	case hasMember:
		return TableView(st.key)
	case hasUserOnly:
		member, result := r.lookup(ctx, st.userID)
		r.recorder.RecordProfileLookup(result)
		if result != LookupFound {
			return MemberCreationTarget
		}
		state.SetMember(member)
		return TableView(member.Key())
	}
	return SignInTarget
}

func (r *RootResolver) lookup(ctx context.Context, userID string) (*members.Member, LookupResult) {
	logger := zerolog.Ctx(ctx).With().Str("user_id", userID).Logger()

	callCtx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	member, err := r.profiles.GetByUserID(callCtx, userID)
	switch {
	case errors.Is(err, members.ErrNotFound):
		logger.Debug().Msg("no member profile")
		return nil, LookupEmpty
	case err != nil:
		logger.Error().Err(err).Str("lookup", string(LookupError)).Msg("member profile lookup failed")
		return nil, LookupError
	case !member.HasKey():
		logger.Debug().Msg("member profile has no key")
		return nil, LookupEmpty
	}
	return member, LookupFound
}

// Guard is the navigation hook. It calls next exactly once: with Proceed for
// any destination other than the root, otherwise with the resolved target.
func (r *RootResolver) Guard(ctx context.Context, state *State, to, from string, next func(Redirect)) {
	if !IsRoot(to) {
		next(Proceed())
		return
	}
	target := r.Resolve(ctx, state)
	zerolog.Ctx(ctx).Debug().Str("from", from).Stringer("target", target).Msg("root resolved")
	next(RedirectTo(target))
}
