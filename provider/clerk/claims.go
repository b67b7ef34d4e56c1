package clerk

import (
	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims are the claims carried by a Clerk session JWT. The sub claim
// is the Clerk user id. Instances that expose public_metadata through a JWT
// template surface it here for role and teacher mapping.
type SessionClaims struct {
	jwt.RegisteredClaims

	SessionID       string         `json:"sid,omitempty"`
	AuthorizedParty string         `json:"azp,omitempty"`
	Metadata        map[string]any `json:"public_metadata,omitempty"`
}

// UserID returns the Clerk user id carried by the token.
func (c *SessionClaims) UserID() string {
	if c == nil {
		return ""
	}
	return c.Subject
}
