package server

import "github.com/jrsteele09/song-ranker-admin/dashboard"

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// Views the core navigates to
	RouteRoot           = dashboard.RouteRoot
	RouteSignIn         = dashboard.RouteSignIn
	RouteMemberCreation = dashboard.RouteMemberCreation
	RouteResetPassword  = dashboard.RouteResetPassword

	// Dashboard views
	RouteDashboard  = dashboard.RouteDashboard
	RouteTables     = "/members/{memberId}/tables"
	RouteProfile    = dashboard.RouteProfile
	RouteArtist     = "/artists/{memberId}/{artistId}"
	RouteForbidden  = dashboard.RouteForbidden
	RouteAuthLogout = "/auth/logout"

	// API Routes
	RouteAPIStartup = "/api/startup"

	// Operations
	RouteHealth  = "/healthz"
	RouteMetrics = "/metrics"

	// Static Asset Routes (patterns)
	RouteStaticCSS = "/css/{file}"
	RouteStaticJS  = "/js/{file}"
)
