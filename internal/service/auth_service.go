package service

import (
	"context"
	"errors"
	"time"

	"github.com/spec-kit/credential-service/internal/auth"
	"github.com/spec-kit/credential-service/internal/config"
	"github.com/spec-kit/credential-service/internal/domain"
	"github.com/spec-kit/credential-service/internal/repository"
	"github.com/spec-kit/credential-service/internal/worker"
	apperrors "github.com/spec-kit/credential-service/pkg/util/errorutil"
)

// AuthService coordinates registration, login and token authorization.
type AuthService struct {
	directory repository.UserDirectory
	hashes    *worker.HashPool
	tokenMgr  *auth.TokenManager
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, directory repository.UserDirectory) *AuthService {
	return &AuthService{
		directory: directory,
		hashes:    worker.NewHashPool(cfg.HashWorkers, cfg.BcryptCost),
		tokenMgr:  auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL()),
	}
}

// Register creates a new account and issues a token for it. The directory's
// atomic create decides duplicate-username races; there is no separate
// existence check.
func (s *AuthService) Register(ctx context.Context, username, password string) (*domain.User, string, time.Time, error) {
	if username == "" || password == "" {
		return nil, "", time.Time{}, apperrors.NewBadRequest("username and password required")
	}

	hash, err := s.hashes.Hash(ctx, password)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}

	user, err := s.directory.Create(ctx, username, hash)
	if err != nil {
		if errors.Is(err, repository.ErrUsernameTaken) {
			return nil, "", time.Time{}, apperrors.NewConflict("User already exists")
		}
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}

	token, exp, err := s.tokenMgr.Issue(user)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}
	return user, token, exp, nil
}

// Login authenticates a user and issues a fresh token. Unknown usernames
// and wrong passwords produce the same error; do not separate them.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.User, string, time.Time, error) {
	user, err := s.directory.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, "", time.Time{}, apperrors.NewInvalidCredentials()
		}
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}

	ok, err := s.hashes.Verify(ctx, user.PasswordHash, password)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}
	if !ok {
		return nil, "", time.Time{}, apperrors.NewInvalidCredentials()
	}

	token, exp, err := s.tokenMgr.Issue(user)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}
	return user, token, exp, nil
}

// Authorize verifies a bearer token and returns its claims. All verification
// failure kinds collapse into one forbidden error at this boundary.
func (s *AuthService) Authorize(_ context.Context, token string) (*auth.Claims, error) {
	if token == "" {
		return nil, apperrors.NewForbidden("No token provided")
	}
	claims, err := s.tokenMgr.Verify(token)
	if err != nil {
		return nil, apperrors.NewForbidden("Invalid or expired token")
	}
	return claims, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
