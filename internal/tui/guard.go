// Package tui is the Wisal dashboard: a bubbletea program whose screens are
// gated by the session's role. Navigation always passes through the route
// guard; a redirect replaces the top of the navigation stack, it never
// pushes, so backing out of a redirect cannot land on a screen the session
// was just denied.
package tui

import (
	"github.com/wisalhq/wisal-admin/internal/auth"
)

// Decision is the route guard's verdict for one navigation
type Decision int

// Decision constants
const (
	// DecisionLoading means the session is still initializing; show the
	// loading placeholder and make no routing decision yet.
	DecisionLoading Decision = iota
	// DecisionLogin redirects to the sign-in screen
	DecisionLogin
	// DecisionRoleHome redirects to the session role's landing screen
	DecisionRoleHome
	// DecisionUnauthorized redirects to the unauthorized screen
	DecisionUnauthorized
	// DecisionRender shows the requested screen
	DecisionRender
)

// String returns the decision name for logs and tests
func (d Decision) String() string {
	switch d {
	case DecisionLoading:
		return "loading"
	case DecisionLogin:
		return "login"
	case DecisionRoleHome:
		return "role-home"
	case DecisionUnauthorized:
		return "unauthorized"
	case DecisionRender:
		return "render"
	default:
		return "unknown"
	}
}

// Evaluate is the route guard. Given the session state and a route's role
// allow-list it returns exactly one decision:
//
//   - initializing: loading, no routing decision yet
//   - not authenticated: redirect to sign-in
//   - allow-list present and the role missing or not listed: redirect to the
//     role's landing screen, or to unauthorized when there is no role
//   - otherwise: render the requested screen
//
// Evaluate is pure; it runs again on every navigation and on every session
// state change, and keeps no state of its own.
func Evaluate(state auth.State, allowed []auth.Role) Decision {
	if state.Initializing {
		return DecisionLoading
	}

	if !state.Authenticated {
		return DecisionLogin
	}

	if len(allowed) > 0 && !roleAllowed(state.Role, allowed) {
		if state.Role != "" {
			return DecisionRoleHome
		}
		return DecisionUnauthorized
	}

	return DecisionRender
}

func roleAllowed(role auth.Role, allowed []auth.Role) bool {
	for _, a := range allowed {
		if role == a {
			return true
		}
	}
	return false
}

// Resolve maps a requested route through the guard to the route actually
// shown. The second return is true while the session is still initializing,
// in which case the returned route is the unchanged request.
func Resolve(state auth.State, requested Route) (Route, bool) {
	switch Evaluate(state, AllowedRoles(requested)) {
	case DecisionLoading:
		return requested, true
	case DecisionLogin:
		return RouteLogin, false
	case DecisionRoleHome:
		return LandingRoute(state.Role), false
	case DecisionUnauthorized:
		return RouteUnauthorized, false
	default:
		return requested, false
	}
}
