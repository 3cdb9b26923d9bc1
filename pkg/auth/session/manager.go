package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	redislib "github.com/redis/go-redis/v9"

	"github.com/angelmondragon/daypass-backend/pkg/config"
	redisclient "github.com/angelmondragon/daypass-backend/pkg/redis"
	"github.com/angelmondragon/daypass-backend/pkg/security"
)

const refreshTokenBytes = 32

var ErrInvalidRefreshToken = errors.New("invalid refresh token")

type sessionStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
}

type sessionKeyer interface {
	SessionKey(sessionID string) string
}

// record is what Redis holds per session. The refresh token itself is never
// stored, only its digest.
type record struct {
	UserID      uuid.UUID `json:"user_id"`
	TokenDigest string    `json:"token_digest"`
}

// Manager handles refresh token creation, storage, and rotation. Sessions
// are keyed by the access token jti.
type Manager struct {
	store sessionStore
	keyer sessionKeyer
	ttl   time.Duration
}

// Checker exposes the read-only surface needed by middleware.
type Checker interface {
	HasSession(ctx context.Context, sessionID string) (bool, error)
}

// NewManager constructs a session manager backed by Redis.
func NewManager(client *redisclient.Client, cfg config.JWTConfig) (*Manager, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	ttl := cfg.RefreshTokenTTL()
	if ttl <= 0 {
		return nil, fmt.Errorf("refresh token ttl must be positive")
	}
	if accessTTL := cfg.AccessTokenTTL(); ttl <= accessTTL {
		return nil, fmt.Errorf("refresh token ttl (%s) must exceed access token ttl (%s)", ttl, accessTTL)
	}

	return &Manager{
		store: client,
		keyer: client,
		ttl:   ttl,
	}, nil
}

// Generate creates a refresh token for sessionID owned by userID.
func (m *Manager) Generate(ctx context.Context, sessionID string, userID uuid.UUID) (string, error) {
	if strings.TrimSpace(sessionID) == "" {
		return "", fmt.Errorf("session id is required")
	}
	token, err := generateRefreshToken()
	if err != nil {
		return "", err
	}
	if err := m.put(ctx, sessionID, record{UserID: userID, TokenDigest: security.DigestToken(token)}); err != nil {
		return "", err
	}
	return token, nil
}

// Rotate checks the presented refresh token against the old session, then
// replaces that session with a new one. It returns the new session id, the
// new refresh token, and the owning user.
func (m *Manager) Rotate(ctx context.Context, oldSessionID, provided string) (string, string, uuid.UUID, error) {
	if strings.TrimSpace(oldSessionID) == "" || strings.TrimSpace(provided) == "" {
		return "", "", uuid.Nil, ErrInvalidRefreshToken
	}

	current, err := m.get(ctx, oldSessionID)
	if err != nil {
		return "", "", uuid.Nil, err
	}
	if !security.TokensEqual(provided, current.TokenDigest) {
		return "", "", uuid.Nil, ErrInvalidRefreshToken
	}

	newSessionID := NewSessionID()
	newToken, err := m.Generate(ctx, newSessionID, current.UserID)
	if err != nil {
		return "", "", uuid.Nil, err
	}
	if err := m.store.Del(ctx, m.keyer.SessionKey(oldSessionID)); err != nil {
		return "", "", uuid.Nil, err
	}
	return newSessionID, newToken, current.UserID, nil
}

// Revoke deletes the refresh session.
func (m *Manager) Revoke(ctx context.Context, sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return fmt.Errorf("session id is required")
	}
	return m.store.Del(ctx, m.keyer.SessionKey(sessionID))
}

// HasSession reports whether sessionID still has a live refresh session.
func (m *Manager) HasSession(ctx context.Context, sessionID string) (bool, error) {
	if strings.TrimSpace(sessionID) == "" {
		return false, fmt.Errorf("session id is required")
	}
	if _, err := m.get(ctx, sessionID); err != nil {
		if errors.Is(err, ErrInvalidRefreshToken) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// NewSessionID produces the identifier used as the JWT jti and Redis key.
func NewSessionID() string {
	return uuid.NewString()
}

func (m *Manager) put(ctx context.Context, sessionID string, rec record) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	return m.store.Set(ctx, m.keyer.SessionKey(sessionID), string(payload), m.ttl)
}

func (m *Manager) get(ctx context.Context, sessionID string) (record, error) {
	raw, err := m.store.Get(ctx, m.keyer.SessionKey(sessionID))
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return record{}, ErrInvalidRefreshToken
		}
		return record{}, err
	}
	var rec record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return record{}, ErrInvalidRefreshToken
	}
	return rec, nil
}

func generateRefreshToken() (string, error) {
	bytes := make([]byte, refreshTokenBytes)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("generating refresh token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(bytes), nil
}
