package dashboard

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	// RecoveryHandledFlag is the tab flag set once a recovery link was processed.
	RecoveryHandledFlag = "recoveryHandled"

	recoveryLinkType = "recovery"
)

type RecoveryOutcome int

const (
	// RecoveryIgnored: the fragment is not a recovery link.
	RecoveryIgnored RecoveryOutcome = iota
	// RecoveryAlreadyHandled: the tab already processed a recovery link.
	RecoveryAlreadyHandled
	// RecoveryRedirected: the link was processed and the tab sent to the reset view.
	RecoveryRedirected
	// RecoveryInPlace: the link was processed while already on the reset view.
	RecoveryInPlace
)

func (o RecoveryOutcome) String() string {
	switch o {
	case RecoveryIgnored:
		return "ignored"
	case RecoveryAlreadyHandled:
		return "already_handled"
	case RecoveryRedirected:
		return "redirected"
	case RecoveryInPlace:
		return "in_place"
	}
	return "unknown"
}

// RecoveryHandler processes the password recovery link the auth provider emails
// to users. It runs at startup, acts at most once per tab and redirects at most
// once.
type RecoveryHandler struct {
	recorder Recorder
	timeout  time.Duration
}

// NewRecoveryHandler creates a handler. timeout bounds session establishment;
// zero means no bound.
func NewRecoveryHandler(recorder Recorder, timeout time.Duration) *RecoveryHandler {
	return &RecoveryHandler{recorder: orNop(recorder), timeout: timeout}
}

// Handle inspects the tab's URL fragment and, for a first-seen recovery link,
// adopts its tokens, marks the tab, scrubs the address bar and replaces the
// route with the password reset view. Provider failures are logged, never
// returned.
func (h *RecoveryHandler) Handle(ctx context.Context, tab Tab) RecoveryOutcome {
	outcome := h.handle(ctx, tab)
	h.recorder.RecordRecovery(outcome)
	return outcome
}

func (h *RecoveryHandler) handle(ctx context.Context, tab Tab) RecoveryOutcome {
	logger := zerolog.Ctx(ctx)
	params := ParseFragment(tab.Address.Fragment())

	if tab.Flags.Flag(RecoveryHandledFlag) {
		return RecoveryAlreadyHandled
	}
	if params.Get("type") != recoveryLinkType {
		return RecoveryIgnored
	}

	accessToken := params.Get("access_token")
	refreshToken := params.Get("refresh_token")
	if accessToken != "" && refreshToken != "" {
		callCtx, cancel := withTimeout(ctx, h.timeout)
		err := tab.Sessions.EstablishSession(callCtx, accessToken, refreshToken)
		cancel()
		if err != nil {
			logger.Warn().Err(err).Msg("recovery link: failed to establish session")
		}
	} else {
		logger.Warn().Msg("recovery link without tokens")
	}

	tab.Flags.SetFlag(RecoveryHandledFlag, true)

	path := tab.Navigator.CurrentPath()
	tab.Address.ReplaceURL(path)

	if strings.HasSuffix(path, RouteResetPassword) {
		return RecoveryInPlace
	}
	tab.Navigator.ReplaceRoute(RouteResetPassword)
	return RecoveryRedirected
}

// Startup runs the recovery handler to completion and only then calls mount,
// so no navigation is processed before the one-time redirect is decided.
func (h *RecoveryHandler) Startup(ctx context.Context, tab Tab, mount func(RecoveryOutcome)) {
	outcome := h.Handle(ctx, tab)
	if mount != nil {
		mount(outcome)
	}
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
