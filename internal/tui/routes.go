package tui

import (
	"github.com/wisalhq/wisal-admin/internal/auth"
)

// Route identifies a dashboard screen
type Route int

// Route constants
const (
	// RouteLogin is the sign-in form
	RouteLogin Route = iota
	// RouteUnauthorized is shown when no screen fits the session's role
	RouteUnauthorized
	// RouteHome is the admin overview
	RouteHome
	// RouteDistribution is the distribution center (rounds and allocations)
	RouteDistribution
	// RouteBeneficiaries is the beneficiary registry
	RouteBeneficiaries
	// RoutePosts is the announcements screen
	RoutePosts
	// RouteDelivery is the coupon delivery verification screen
	RouteDelivery
	// RouteEmployees is the staff accounts screen
	RouteEmployees
	// RouteMessages is the conversations screen
	RouteMessages
)

// String returns the route's display title
func (r Route) String() string {
	switch r {
	case RouteLogin:
		return "Sign in"
	case RouteUnauthorized:
		return "Unauthorized"
	case RouteHome:
		return "Overview"
	case RouteDistribution:
		return "Distribution Center"
	case RouteBeneficiaries:
		return "Beneficiaries"
	case RoutePosts:
		return "Posts"
	case RouteDelivery:
		return "Delivery Verification"
	case RouteEmployees:
		return "Employees"
	case RouteMessages:
		return "Messages"
	default:
		return "Unknown"
	}
}

// AllowedRoles returns the allow-list for a route. Nil means the route only
// requires an authenticated session, whatever the role.
func AllowedRoles(r Route) []auth.Role {
	switch r {
	case RouteHome, RouteEmployees:
		return []auth.Role{auth.RoleAdmin}
	case RouteDistribution, RouteBeneficiaries:
		return []auth.Role{auth.RoleAdmin, auth.RoleDistributer}
	case RoutePosts:
		return []auth.Role{auth.RoleAdmin, auth.RolePublisher}
	case RouteDelivery:
		return []auth.Role{auth.RoleAdmin, auth.RoleDeliverer}
	default:
		return nil
	}
}

// LandingRoute returns a role's default landing screen. A session with no
// usable role lands on the unauthorized screen.
func LandingRoute(role auth.Role) Route {
	switch role {
	case auth.RoleAdmin:
		return RouteHome
	case auth.RoleDistributer:
		return RouteDistribution
	case auth.RolePublisher:
		return RoutePosts
	case auth.RoleDeliverer:
		return RouteDelivery
	default:
		return RouteUnauthorized
	}
}
