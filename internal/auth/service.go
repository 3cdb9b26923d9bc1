package auth

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/daypass-backend/internal/users"
	pkgAuth "github.com/angelmondragon/daypass-backend/pkg/auth"
	"github.com/angelmondragon/daypass-backend/pkg/auth/session"
	"github.com/angelmondragon/daypass-backend/pkg/config"
	"github.com/angelmondragon/daypass-backend/pkg/db/models"
	"github.com/angelmondragon/daypass-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/daypass-backend/pkg/errors"
	"github.com/angelmondragon/daypass-backend/pkg/logger"
	"github.com/angelmondragon/daypass-backend/pkg/security"
)

const invalidCredentialsMessage = "invalid credentials"

// Service is the auth provider behind the admin surface.
type Service interface {
	SignIn(ctx context.Context, req SignInRequest) (*TokenResponse, error)
	SignUp(ctx context.Context, req SignUpRequest) (*SignUpResponse, error)
	SignOut(ctx context.Context, sessionID string) error
	Refresh(ctx context.Context, claims *pkgAuth.AccessTokenClaims, refreshToken string) (*TokenResponse, error)
	CurrentSession(ctx context.Context, claims *pkgAuth.AccessTokenClaims) (*SessionView, error)
}

type userRepository interface {
	Create(ctx context.Context, dto users.CreateUserDTO) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}

type sessionManager interface {
	Generate(ctx context.Context, sessionID string, userID uuid.UUID) (string, error)
	Rotate(ctx context.Context, oldSessionID, provided string) (string, string, uuid.UUID, error)
	Revoke(ctx context.Context, sessionID string) error
}

// ServiceParams bundles the dependencies required to build an auth service.
type ServiceParams struct {
	UserRepo       userRepository
	SessionManager sessionManager
	JWTConfig      config.JWTConfig
	PasswordConfig config.PasswordConfig
	AllowSignUp    bool
	Logger         *logger.Logger
	Now            func() time.Time
}

type service struct {
	users       userRepository
	session     sessionManager
	jwtCfg      config.JWTConfig
	passwordCfg config.PasswordConfig
	allowSignUp bool
	logg        *logger.Logger
	now         func() time.Time
}

// NewService constructs the auth service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.UserRepo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	if params.SessionManager == nil {
		return nil, fmt.Errorf("session manager is required")
	}
	now := params.Now
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &service{
		users:       params.UserRepo,
		session:     params.SessionManager,
		jwtCfg:      params.JWTConfig,
		passwordCfg: params.PasswordConfig,
		allowSignUp: params.AllowSignUp,
		logg:        params.Logger,
		now:         now,
	}, nil
}

func (s *service) SignIn(ctx context.Context, req SignInRequest) (*TokenResponse, error) {
	user, err := s.authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if err := s.users.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update last login")
	}
	user.LastLoginAt = &now

	sessionID := session.NewSessionID()
	refreshToken, err := s.session.Generate(ctx, sessionID, user.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store refresh token")
	}
	resp, err := s.issue(user, sessionID, refreshToken, now)
	if err != nil {
		return nil, err
	}
	s.info(ctx, user.ID, "auth.sign_in")
	return resp, nil
}

func (s *service) SignUp(ctx context.Context, req SignUpRequest) (*SignUpResponse, error) {
	if !s.allowSignUp {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "sign up is disabled")
	}

	email := users.NormalizeEmail(req.Email)
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required").
			WithDetails(map[string]string{"email": "is required"})
	}
	if err := security.CheckPasswordPolicy(req.Password); err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "password does not meet policy").
			WithDetails(map[string]string{"password": err.Error()})
	}
	redirect, err := normalizeRedirect(req.RedirectTo)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid redirect target").
			WithDetails(map[string]string{"redirect_to": err.Error()})
	}

	hash, err := security.HashPassword(req.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	user, err := s.users.Create(ctx, users.CreateUserDTO{
		Email:        email,
		PasswordHash: hash,
		Role:         enums.MemberRoleAdmin,
	})
	if err != nil {
		if errors.Is(err, users.ErrEmailTaken) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create user")
	}

	s.info(ctx, user.ID, "auth.sign_up")
	return &SignUpResponse{User: users.FromModel(user), RedirectTo: redirect}, nil
}

func (s *service) SignOut(ctx context.Context, sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "missing session id")
	}
	if err := s.session.Revoke(ctx, sessionID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoke session")
	}
	return nil
}

// Refresh rotates the refresh session named by the (possibly expired) access
// token and mints a new access token for the same user.
func (s *service) Refresh(ctx context.Context, claims *pkgAuth.AccessTokenClaims, refreshToken string) (*TokenResponse, error) {
	if claims.SessionID() == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing session id")
	}

	newSessionID, newRefreshToken, userID, err := s.session.Rotate(ctx, claims.SessionID(), refreshToken)
	if err != nil {
		if errors.Is(err, session.ErrInvalidRefreshToken) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid refresh token")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rotate session")
	}
	if userID != claims.UserID {
		_ = s.session.Revoke(ctx, newSessionID)
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid refresh token")
	}

	user, err := s.activeUser(ctx, userID)
	if err != nil {
		_ = s.session.Revoke(ctx, newSessionID)
		return nil, err
	}
	return s.issue(user, newSessionID, newRefreshToken, s.now())
}

func (s *service) CurrentSession(ctx context.Context, claims *pkgAuth.AccessTokenClaims) (*SessionView, error) {
	if claims == nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	user, err := s.activeUser(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	view := &SessionView{
		SessionID: claims.SessionID(),
		UserID:    user.ID,
		Email:     user.Email,
		Role:      user.Role,
	}
	if claims.ExpiresAt != nil {
		exp := claims.ExpiresAt.Time
		view.ExpiresAt = &exp
	}
	return view, nil
}

func (s *service) authenticate(ctx context.Context, email, password string) (*models.User, error) {
	input := users.NormalizeEmail(email)
	if input == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}
	user, err := s.users.FindByEmail(ctx, input)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup user")
	}

	valid, err := security.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !valid || !user.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}
	return user, nil
}

func (s *service) activeUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup user")
	}
	if !user.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	return user, nil
}

func (s *service) issue(user *models.User, sessionID, refreshToken string, now time.Time) (*TokenResponse, error) {
	accessToken, err := pkgAuth.MintAccessToken(s.jwtCfg, now, pkgAuth.AccessTokenPayload{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		JTI:    sessionID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint jwt")
	}
	return &TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    now.Add(s.jwtCfg.AccessTokenTTL()),
		User:         users.FromModel(user),
	}, nil
}

func normalizeRedirect(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("must be a valid url")
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", fmt.Errorf("scheme must be http or https")
	}
	if parsed.Host == "" {
		return "", fmt.Errorf("host is required")
	}
	return parsed.String(), nil
}

func (s *service) info(ctx context.Context, userID uuid.UUID, msg string) {
	if s.logg == nil {
		return
	}
	s.logg.Info(s.logg.WithUserID(ctx, userID.String()), msg)
}
