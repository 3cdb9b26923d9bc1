package middleware

import (
	"context"

	"github.com/google/uuid"

	pkgAuth "github.com/angelmondragon/daypass-backend/pkg/auth"
)

type contextKey string

const (
	ctxUserID    contextKey = "user_id"
	ctxRole      contextKey = "actor_role"
	ctxSessionID contextKey = "session_id"
	ctxClaims    contextKey = "access_claims"
)

func UserIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxUserID).(string); ok {
		return v
	}
	return ""
}

func RoleFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxRole).(string); ok {
		return v
	}
	return ""
}

// SessionIDFromContext returns the refresh session id (jwt jti) of the caller.
func SessionIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxSessionID).(string); ok {
		return v
	}
	return ""
}

// ClaimsFromContext returns the verified access token claims, if any.
func ClaimsFromContext(ctx context.Context) (*pkgAuth.AccessTokenClaims, bool) {
	if ctx == nil {
		return nil, false
	}
	claims, ok := ctx.Value(ctxClaims).(*pkgAuth.AccessTokenClaims)
	return claims, ok && claims != nil
}

// WithClaims seeds the context with the caller identity carried by claims.
func WithClaims(ctx context.Context, claims *pkgAuth.AccessTokenClaims) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if claims == nil {
		return ctx
	}
	ctx = context.WithValue(ctx, ctxClaims, claims)
	if claims.UserID != uuid.Nil {
		ctx = context.WithValue(ctx, ctxUserID, claims.UserID.String())
	}
	ctx = context.WithValue(ctx, ctxRole, string(claims.Role))
	return context.WithValue(ctx, ctxSessionID, claims.SessionID())
}
