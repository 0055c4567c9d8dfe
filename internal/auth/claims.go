package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claim keys the dashboard reads from the credential payload
const (
	claimSubject       = "sub"
	claimRole          = "role"
	claimInstitutionID = "institutionId"
)

// UntrustedClaims holds claim hints decoded from a bearer credential without
// signature verification. The server is the trust boundary; these values are
// good enough to pick a landing screen and prefill session fields, and for
// nothing more. Callers must never treat them as a verified identity.
type UntrustedClaims map[string]interface{}

// DecodeClaims extracts the claims embedded in a bearer credential.
//
// The credential must have the usual three dot-separated segments; only the
// middle segment is consumed (base64url decoded, parsed as a JSON object).
// Any failure — wrong segment count, malformed base64, invalid JSON, a
// non-object payload — yields nil. Decoding never verifies the signature.
func DecodeClaims(token string) UntrustedClaims {
	if token == "" {
		return nil
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil
	}

	return UntrustedClaims(claims)
}

// Subject returns the subject claim (the employee id), or "" when absent
// or not a string
func (c UntrustedClaims) Subject() string {
	return c.stringClaim(claimSubject)
}

// Role returns the role claim when it matches the known role set.
// Unknown role values are reported as absent, never passed through.
func (c UntrustedClaims) Role() (Role, bool) {
	return ParseRole(c.stringClaim(claimRole))
}

// InstitutionID returns the institution id claim, or "" when absent
// or not a string
func (c UntrustedClaims) InstitutionID() string {
	return c.stringClaim(claimInstitutionID)
}

func (c UntrustedClaims) stringClaim(key string) string {
	if c == nil {
		return ""
	}
	if s, ok := c[key].(string); ok {
		return s
	}
	return ""
}
