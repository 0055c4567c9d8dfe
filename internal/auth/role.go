package auth

// Role is the single authorization axis of the dashboard. Every employee
// account carries exactly one role.
type Role string

// The four fixed roles
const (
	RoleAdmin       Role = "ADMIN"
	RoleDistributer Role = "DISTRIBUTER"
	RolePublisher   Role = "PUBLISHER"
	RoleDeliverer   Role = "DELIVERER"
)

// Roles returns all known roles in display order
func Roles() []Role {
	return []Role{RoleAdmin, RoleDistributer, RolePublisher, RoleDeliverer}
}

// ParseRole validates a raw role value against the known set.
// Unknown or empty values yield ok=false and are never passed through.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleDistributer, RolePublisher, RoleDeliverer:
		return Role(s), true
	default:
		return "", false
	}
}

// Valid reports whether the role is one of the known set
func (r Role) Valid() bool {
	_, ok := ParseRole(string(r))
	return ok
}

// String returns the wire representation of the role
func (r Role) String() string {
	return string(r)
}
