package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/angelmondragon/daypass-backend/pkg/enums"
)

// AccessTokenPayload captures the data available when minting a JWT.
// JTI doubles as the refresh session id; a blank JTI gets a fresh uuid.
type AccessTokenPayload struct {
	UserID uuid.UUID
	Email  string
	Role   enums.MemberRole
	JTI    string
}

// AccessTokenClaims represents the typed JWT issued to clients.
type AccessTokenClaims struct {
	UserID uuid.UUID        `json:"user_id"`
	Email  string           `json:"email"`
	Role   enums.MemberRole `json:"role"`
	jwt.RegisteredClaims
}

// SessionID returns the jti, which keys the refresh session in Redis.
func (c *AccessTokenClaims) SessionID() string {
	if c == nil {
		return ""
	}
	return c.ID
}
