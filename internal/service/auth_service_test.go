package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/credential-service/internal/config"
	"github.com/spec-kit/credential-service/internal/repository"
	apperrors "github.com/spec-kit/credential-service/pkg/util/errorutil"
)

func newTestService() *AuthService {
	cfg := config.AuthConfig{
		JWTSecret:       "service-test-secret",
		TokenTTLMinutes: 60,
		BcryptCost:      4, // keep tests fast
	}
	return NewAuthService(cfg, repository.NewMemoryDirectory())
}

func TestRegisterThenLogin(t *testing.T) {
	t.Parallel()

	svc := newTestService()
	ctx := context.Background()

	user, regToken, regExp, err := svc.Register(ctx, "alice", "s3cret!")
	require.NoError(t, err)
	require.NotEmpty(t, regToken)
	assert.WithinDuration(t, time.Now().Add(time.Hour), regExp, 5*time.Second)
	assert.NotEqual(t, "s3cret!", user.PasswordHash)

	loggedIn, loginToken, _, err := svc.Login(ctx, "alice", "s3cret!")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)

	// Both tokens verify and name the same subject.
	regClaims, err := svc.Authorize(ctx, regToken)
	require.NoError(t, err)
	loginClaims, err := svc.Authorize(ctx, loginToken)
	require.NoError(t, err)
	assert.Equal(t, regClaims.UserID, loginClaims.UserID)
	assert.Equal(t, "alice", loginClaims.Username)
}

func TestRegister_MissingFields(t *testing.T) {
	t.Parallel()

	svc := newTestService()
	ctx := context.Background()

	for _, tc := range []struct{ username, password string }{
		{"", "pw"},
		{"alice", ""},
		{"", ""},
	} {
		_, _, _, err := svc.Register(ctx, tc.username, tc.password)
		require.Error(t, err)
		assert.Equal(t, 400, apperrors.ToDomainError(err).HTTPStatus)
	}
}

func TestRegister_DuplicateUsername(t *testing.T) {
	t.Parallel()

	svc := newTestService()
	ctx := context.Background()

	_, _, _, err := svc.Register(ctx, "alice", "s3cret!")
	require.NoError(t, err)

	_, _, _, err = svc.Register(ctx, "alice", "other-password")
	require.Error(t, err)
	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, "CONFLICT", domainErr.Code)
	assert.Equal(t, "User already exists", domainErr.Message)
	assert.Equal(t, 400, domainErr.HTTPStatus)
}

func TestLogin_InvalidCredentialsMerged(t *testing.T) {
	t.Parallel()

	svc := newTestService()
	ctx := context.Background()

	_, _, _, err := svc.Register(ctx, "alice", "s3cret!")
	require.NoError(t, err)

	// Unknown user and wrong password must be indistinguishable.
	_, _, _, unknownErr := svc.Login(ctx, "bob", "whatever")
	_, _, _, wrongPwErr := svc.Login(ctx, "alice", "wrong")

	for _, err := range []error{unknownErr, wrongPwErr} {
		require.Error(t, err)
		domainErr := apperrors.ToDomainError(err)
		assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
		assert.Equal(t, "Invalid credentials", domainErr.Message)
		assert.Equal(t, 400, domainErr.HTTPStatus)
	}
}

func TestAuthorize_Failures(t *testing.T) {
	t.Parallel()

	svc := newTestService()
	ctx := context.Background()

	_, err := svc.Authorize(ctx, "")
	require.Error(t, err)
	assert.Equal(t, "No token provided", apperrors.ToDomainError(err).Message)

	_, err = svc.Authorize(ctx, "garbage")
	require.Error(t, err)
	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, "Invalid or expired token", domainErr.Message)
	assert.Equal(t, 403, domainErr.HTTPStatus)
}
