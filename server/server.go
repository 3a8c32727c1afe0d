package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/sessions"
	"github.com/jrsteele09/song-ranker-admin/dashboard"
	"github.com/jrsteele09/song-ranker-admin/gotrue"
	"github.com/jrsteele09/song-ranker-admin/internal/config"
	"github.com/jrsteele09/song-ranker-admin/internal/metrics"
	"github.com/jrsteele09/song-ranker-admin/members"
	"github.com/jrsteele09/song-ranker-admin/server/loginsession"
	"github.com/jrsteele09/song-ranker-admin/users"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
)

// AuthProvider is the hosted auth service. *gotrue.Client implements it.
type AuthProvider interface {
	SignInWithPassword(ctx context.Context, email, password string) (*gotrue.Session, error)
	RefreshSession(ctx context.Context, refreshToken string) (*gotrue.Session, error)
	GetUser(ctx context.Context, accessToken string) (*users.User, error)
	SignOut(ctx context.Context, accessToken string) error
	UpdatePassword(ctx context.Context, accessToken, password string) (*users.User, error)
}

var _ AuthProvider = (*gotrue.Client)(nil)

// Services are the collaborators the server is built from.
type Services struct {
	Auth          AuthProvider
	Verifier      gotrue.Verifier
	Members       members.Repo
	LoginSessions loginsession.Repo
	// Registry receives the server's metrics and backs /metrics. A fresh
	// registry is used when nil.
	Registry *prometheus.Registry
}

type Server struct {
	env           string // Environment (e.g., "DEV", "PROD")
	mux           *http.ServeMux
	routes        []string
	config        config.Config
	auth          AuthProvider
	verifier      gotrue.Verifier
	members       members.Repo
	loginSessions loginsession.Repo
	cookies       *sessions.CookieStore
	limiter       *RateLimiter // sign in and password reset
	startLimiter  *RateLimiter // startup calls, one per page load
	registry      *prometheus.Registry
	metrics       *metrics.Collector

	recovery *dashboard.RecoveryHandler
	resolver *dashboard.RootResolver
	actions  *dashboard.Actions

	now func() time.Time
}

func New(config config.Config, services Services) (*Server, error) {
	if services.Auth == nil || services.Verifier == nil || services.Members == nil || services.LoginSessions == nil {
		return nil, errors.New("[Server New] auth, verifier, members and login sessions are required")
	}

	cookies, err := newCookieStore(config.GetSessionSecret(), config.GetBaseURL(), config.GetMaxSessionAge())
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to create cookie store: %w", err)
	}

	registry := services.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	collector := metrics.NewCollector(registry)
	timeout := config.GetRemoteTimeout()

	s := &Server{
		env:           config.GetEnv(),
		mux:           http.NewServeMux(),
		config:        config,
		auth:          services.Auth,
		verifier:      services.Verifier,
		members:       services.Members,
		loginSessions: services.LoginSessions,
		cookies:       cookies,
		limiter:       NewRateLimiter(config.GetSignInRatePerMinute()),
		startLimiter:  NewRateLimiter(config.GetStartupRatePerMinute()),
		registry:      registry,
		metrics:       collector,
		recovery:      dashboard.NewRecoveryHandler(collector, timeout),
		resolver:      dashboard.NewRootResolver(services.Members, collector, timeout),
		actions:       dashboard.NewActions(services.Members, timeout),
		now:           time.Now,
	}

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

// Close stops background work.
func (s *Server) Close() {
	s.limiter.Stop()
	s.startLimiter.Stop()
}

// CleanupIdleSessions drops dashboard sessions idle for longer than the
// maximum session age.
func (s *Server) CleanupIdleSessions() int {
	removed := s.loginSessions.DeleteIdle(s.now().Add(-s.config.GetMaxSessionAge()))
	if removed > 0 {
		log.Debug().Int("removed", removed).Msg("idle dashboard sessions removed")
	}
	return removed
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	log.Info().Msgf("[%-19s] %s", coloredMethod(method), path)
}

func coloredMethod(method string) string {
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		return color + paddedMethod + ResetColor
	}
	return Gray + paddedMethod + ResetColor
}

// Helper function to determine the scheme (http/https)
func getScheme(r *http.Request) string {
	if r.TLS != nil {
		return "https"
	}
	if scheme := r.Header.Get("X-Forwarded-Proto"); scheme != "" {
		return scheme
	}
	return "http"
}
