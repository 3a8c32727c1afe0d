package dashboard

import (
	"net/url"
	"strings"
)

// View paths the core navigates to.
const (
	RouteRoot           = "/"
	RouteSignIn         = "/signin"
	RouteMemberCreation = "/signup"
	RouteResetPassword  = "/resetpassword"
	RouteDashboard      = "/dashboard-default"
	RouteProfile        = "/profile"
	RouteForbidden      = "/forbidden"

	tableViewPrefix = "/members/"
	tableViewSuffix = "/tables"
)

type TargetKind int

const (
	TargetTableView TargetKind = iota + 1
	TargetMemberCreation
	TargetSignIn
	TargetResetPassword
)

func (k TargetKind) String() string {
	switch k {
	case TargetTableView:
		return "table_view"
	case TargetMemberCreation:
		return "member_creation"
	case TargetSignIn:
		return "sign_in"
	case TargetResetPassword:
		return "reset_password"
	}
	return "unknown"
}

// Target is a named destination. MemberKey is only set for table views.
type Target struct {
	Kind      TargetKind
	MemberKey string
}

var (
	MemberCreationTarget = Target{Kind: TargetMemberCreation}
	SignInTarget         = Target{Kind: TargetSignIn}
	ResetPasswordTarget  = Target{Kind: TargetResetPassword}
)

// TableView is the tables of the member with the given key.
func TableView(memberKey string) Target {
	return Target{Kind: TargetTableView, MemberKey: memberKey}
}

// Path is the route the target is served at.
func (t Target) Path() string {
	switch t.Kind {
	case TargetTableView:
		return TableViewPath(t.MemberKey)
	case TargetMemberCreation:
		return RouteMemberCreation
	case TargetResetPassword:
		return RouteResetPassword
	}
	return RouteSignIn
}

func (t Target) String() string {
	if t.Kind == TargetTableView {
		return t.Kind.String() + "(" + t.MemberKey + ")"
	}
	return t.Kind.String()
}

// TableViewPath builds /members/{key}/tables with the key path-escaped.
func TableViewPath(memberKey string) string {
	return tableViewPrefix + url.PathEscape(memberKey) + tableViewSuffix
}

// IsRoot reports whether path addresses the application root.
func IsRoot(path string) bool {
	return path == "" || strings.Trim(path, "/") == ""
}
