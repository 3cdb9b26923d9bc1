package auth

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/daypass-backend/internal/users"
	"github.com/angelmondragon/daypass-backend/pkg/enums"
)

// SignInRequest captures the credentials sent to the sign-in endpoint.
type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SignUpRequest registers a new organizer account. RedirectTo is where the
// client should land after sign-up; it is validated and echoed back.
type SignUpRequest struct {
	Email      string `json:"email" validate:"required,email,max=254"`
	Password   string `json:"password" validate:"required"`
	RedirectTo string `json:"redirect_to,omitempty" validate:"omitempty,url"`
}

// TokenResponse is returned by sign-in and refresh.
type TokenResponse struct {
	AccessToken  string         `json:"access_token"`
	RefreshToken string         `json:"refresh_token"`
	ExpiresAt    time.Time      `json:"expires_at"`
	User         *users.UserDTO `json:"user"`
}

// SignUpResponse describes the account created by sign-up.
type SignUpResponse struct {
	User       *users.UserDTO `json:"user"`
	RedirectTo string         `json:"redirect_to,omitempty"`
}

// RefreshRequest carries the refresh token paired with the bearer token.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// SessionView is the current session as reported to the admin UI.
type SessionView struct {
	SessionID string           `json:"session_id"`
	UserID    uuid.UUID        `json:"user_id"`
	Email     string           `json:"email"`
	Role      enums.MemberRole `json:"role"`
	ExpiresAt *time.Time       `json:"expires_at,omitempty"`
}
