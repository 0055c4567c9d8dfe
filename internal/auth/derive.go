package auth

import (
	"github.com/wisalhq/wisal-admin/internal/api"
)

// SessionFields is the triple derived from an authentication response.
// An empty string means the field was supplied by no source.
type SessionFields struct {
	InstitutionID string
	Role          Role
	EmployeeID    string
}

// fieldSource inspects one candidate location in an auth response and
// reports whether it held a usable value. Sources are tried in declared
// order; the first hit wins.
type fieldSource func(resp *api.AuthResponse) (string, bool)

// Fallback chains for the session fields. Deployments of the dashboard API
// differ in where they put these values, so each field has an ordered list
// of locations. Credential claims are consulted before any of these.
var (
	institutionSources = []fieldSource{
		func(r *api.AuthResponse) (string, bool) { return nonEmpty(r.InstitutionID) },
		func(r *api.AuthResponse) (string, bool) {
			if r.Institution == nil {
				return "", false
			}
			return nonEmpty(r.Institution.ID)
		},
		func(r *api.AuthResponse) (string, bool) {
			if r.User == nil {
				return "", false
			}
			return nonEmpty(r.User.InstitutionID)
		},
	}

	roleSources = []fieldSource{
		func(r *api.AuthResponse) (string, bool) { return nonEmpty(r.Role) },
		func(r *api.AuthResponse) (string, bool) {
			if r.User == nil {
				return "", false
			}
			return nonEmpty(r.User.Role)
		},
	}

	employeeSources = []fieldSource{
		func(r *api.AuthResponse) (string, bool) { return nonEmpty(r.ID) },
		func(r *api.AuthResponse) (string, bool) {
			if r.User == nil {
				return "", false
			}
			return nonEmpty(r.User.ID)
		},
	}
)

func nonEmpty(s string) (string, bool) {
	return s, s != ""
}

// firstSource returns the first value the sources supply
func firstSource(resp *api.AuthResponse, sources []fieldSource) (string, bool) {
	for _, source := range sources {
		if v, ok := source(resp); ok {
			return v, true
		}
	}
	return "", false
}

// firstRoleSource returns the first value that also parses as a known role.
// A source holding an unknown role value is discarded, not reported.
func firstRoleSource(resp *api.AuthResponse, sources []fieldSource) (Role, bool) {
	for _, source := range sources {
		if v, ok := source(resp); ok {
			if role, valid := ParseRole(v); valid {
				return role, true
			}
		}
	}
	return "", false
}
