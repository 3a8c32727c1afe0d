package server

import (
	"net/http"
	"strings"

	"github.com/jrsteele09/song-ranker-admin/internal/metrics"
	"github.com/rs/zerolog/log"
)

func (s *Server) initRoutes() {
	// ROOT - never rendered, always redirected
	s.RegisterRouteHandler("GET /{$}", ChainMiddleware(s.RootHandler(), s.HTMLMiddleWare(s.WithDashboardSession)...))
	s.RegisterRouteHandler("POST "+RouteAPIStartup, ChainMiddleware(s.StartupHandler(), s.APIMiddleware(RequireJSON, s.startLimiter.Middleware, s.WithDashboardSession)...))

	// SIGN IN / OUT
	s.RegisterRouteHandler("GET "+RouteSignIn, ChainMiddleware(s.SignInPageHandler(), s.HTMLMiddleWare(s.WithDashboardSession)...))
	s.RegisterRouteHandler("POST "+RouteSignIn, ChainMiddleware(s.SignInSubmissionHandler(), s.HTMLMiddleWare(s.limiter.Middleware, s.WithDashboardSession)...))
	s.RegisterRouteHandler("GET "+RouteAuthLogout, ChainMiddleware(s.LogoutHandler(), s.HTMLMiddleWare(s.WithDashboardSession)...))
	s.RegisterRouteHandler("POST "+RouteAuthLogout, ChainMiddleware(s.LogoutHandler(), s.HTMLMiddleWare(s.WithDashboardSession)...))

	// MEMBER CREATION
	s.RegisterRouteHandler("GET "+RouteMemberCreation, ChainMiddleware(s.MemberCreationGetHandler(), s.HTMLMiddleWare(s.WithDashboardSession, s.RequireSessionAuth())...))
	s.RegisterRouteHandler("POST "+RouteMemberCreation, ChainMiddleware(s.MemberCreationPostHandler(), s.HTMLMiddleWare(s.WithDashboardSession, s.RequireSessionAuth())...))

	// PASSWORD RESET - reachable without a session, the recovery link may have failed
	s.RegisterRouteHandler("GET "+RouteResetPassword, ChainMiddleware(s.ResetPasswordGetHandler(), s.HTMLMiddleWare(s.WithDashboardSession)...))
	s.RegisterRouteHandler("POST "+RouteResetPassword, ChainMiddleware(s.ResetPasswordPostHandler(), s.HTMLMiddleWare(s.limiter.Middleware, s.WithDashboardSession)...))

	// Dashboard views (require session-based auth)
	s.RegisterRouteHandler("GET "+RouteDashboard, ChainMiddleware(s.DashboardHandler(), s.HTMLMiddleWare(s.WithDashboardSession, s.RequireSessionAuth())...))
	s.RegisterRouteHandler("GET "+RouteTables, ChainMiddleware(s.TablesHandler(), s.HTMLMiddleWare(s.WithDashboardSession, s.RequireSessionAuth())...))
	s.RegisterRouteHandler("GET "+RouteProfile, ChainMiddleware(s.ProfileHandler(), s.HTMLMiddleWare(s.WithDashboardSession, s.RequireSessionAuth())...))
	s.RegisterRouteHandler("GET "+RouteArtist, ChainMiddleware(s.ArtistHandler(), s.HTMLMiddleWare(s.WithDashboardSession, s.RequireSessionAuth())...))
	s.RegisterRouteHandler("GET "+RouteForbidden, ChainMiddleware(s.ForbiddenHandler(), s.HTMLMiddleWare(s.WithDashboardSession)...))

	// Operations
	s.RegisterRouteFunc("GET "+RouteHealth, s.HealthHandler())
	s.RegisterRouteHandler("GET "+RouteMetrics, metrics.Handler(s.registry))

	s.RegisterRouteHandler("GET "+RouteStaticCSS, ChainMiddleware(s.serveFileHandler(), s.StaticMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteStaticJS, ChainMiddleware(s.serveFileHandler(), s.StaticMiddleware()...))

	s.RegisterRouteHandler("GET /", ChainMiddleware(s.NotFoundHandler(), s.HTMLMiddleWare()...))
}

func (s *Server) serveFileHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filePath := strings.TrimPrefix(r.URL.Path, "/")
		if filePath == "" {
			http.Error(w, "404 - Page Not Found", http.StatusNotFound)
			return
		}
		if err := StreamFile(w, r, filePath); err != nil {
			logError(r, err.Error())
			http.Error(w, "404 - Page Not Found", http.StatusNotFound)
			return
		}
	}
}

func logError(r *http.Request, message string) {
	log.Ctx(r.Context()).Warn().Msgf("[%-19s] %s %s", coloredMethod(r.Method), r.URL.Path, Red+message+ResetColor)
}

// HealthHandler reports liveness.
func (s *Server) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}
}
