package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/daypass-backend/pkg/auth"
	"github.com/angelmondragon/daypass-backend/pkg/config"
	"github.com/angelmondragon/daypass-backend/pkg/enums"
)

var testJWTConfig = config.JWTConfig{Secret: "secret", Issuer: "daypass", ExpirationMinutes: 60}

type stubSessionVerifier struct {
	ok  bool
	err error
	ids []string
}

func (s *stubSessionVerifier) HasSession(_ context.Context, sessionID string) (bool, error) {
	s.ids = append(s.ids, sessionID)
	return s.ok, s.err
}

func mintTestToken(t *testing.T, cfg config.JWTConfig, role enums.MemberRole, jti string) (string, uuid.UUID) {
	t.Helper()
	userID := uuid.New()
	token, err := auth.MintAccessToken(cfg, time.Now(), auth.AccessTokenPayload{
		UserID: userID,
		Email:  "admin@example.com",
		Role:   role,
		JTI:    jti,
	})
	require.NoError(t, err)
	return token, userID
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthRejectsMissingToken(t *testing.T) {
	handler := Auth(testJWTConfig, &stubSessionVerifier{ok: true}, nil)(okHandler())

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestAuthRejectsInvalidToken(t *testing.T) {
	handler := Auth(testJWTConfig, &stubSessionVerifier{ok: true}, nil)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer invalid")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestAuthAllowsValidToken(t *testing.T) {
	token, userID := mintTestToken(t, testJWTConfig, enums.MemberRoleAdmin, "session-1")
	verifier := &stubSessionVerifier{ok: true}

	var captured struct {
		user    string
		role    string
		session string
		claims  *auth.AccessTokenClaims
	}
	handler := Auth(testJWTConfig, verifier, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.user = UserIDFromContext(r.Context())
		captured.role = RoleFromContext(r.Context())
		captured.session = SessionIDFromContext(r.Context())
		captured.claims, _ = ClaimsFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, userID.String(), captured.user)
	assert.Equal(t, "admin", captured.role)
	assert.Equal(t, "session-1", captured.session)
	require.NotNil(t, captured.claims)
	assert.Equal(t, "admin@example.com", captured.claims.Email)
	assert.Equal(t, []string{"session-1"}, verifier.ids)
}

func TestAuthAcceptsTokenWithoutScheme(t *testing.T) {
	token, _ := mintTestToken(t, testJWTConfig, enums.MemberRoleAdmin, "")
	handler := Auth(testJWTConfig, &stubSessionVerifier{ok: true}, nil)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", token)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestAuthRejectsRevokedSession(t *testing.T) {
	token, _ := mintTestToken(t, testJWTConfig, enums.MemberRoleAdmin, "gone")
	handler := Auth(testJWTConfig, &stubSessionVerifier{ok: false}, nil)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestAuthSurfacesSessionStoreFailure(t *testing.T) {
	token, _ := mintTestToken(t, testJWTConfig, enums.MemberRoleAdmin, "s")
	handler := Auth(testJWTConfig, &stubSessionVerifier{err: errors.New("redis down")}, nil)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	assert.Equal(t, http.StatusServiceUnavailable, resp.Code)
}

func TestAuthRejectsExpiredToken(t *testing.T) {
	token, err := auth.MintAccessToken(testJWTConfig, time.Now().Add(-2*time.Hour), auth.AccessTokenPayload{
		UserID: uuid.New(),
		Role:   enums.MemberRoleAdmin,
	})
	require.NoError(t, err)
	handler := Auth(testJWTConfig, &stubSessionVerifier{ok: true}, nil)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestRequireRole(t *testing.T) {
	handler := RequireRole(enums.MemberRoleAdmin, nil)(okHandler())

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusForbidden, resp.Code)

	ctx := WithClaims(context.Background(), &auth.AccessTokenClaims{UserID: uuid.New(), Role: enums.MemberRoleAdmin})
	resp = httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx))
	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestBearerToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, BearerToken(req))

	req.Header.Set("Authorization", "bearer  abc ")
	assert.Equal(t, "abc", BearerToken(req))

	req.Header.Set("Authorization", "xyz")
	assert.Equal(t, "xyz", BearerToken(req))
}
