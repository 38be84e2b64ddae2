package repository

import (
	"context"
	"errors"

	"github.com/spec-kit/credential-service/internal/domain"
)

// Directory errors. Create and the lookups return these sentinels so callers
// can branch without knowing the backend.
var (
	ErrUsernameTaken = errors.New("username already taken")
	ErrUserNotFound  = errors.New("user not found")
)

// UserDirectory defines storage access for identity records. Create must be
// atomic with respect to its own existence check: concurrent calls with the
// same username yield exactly one success, the rest ErrUsernameTaken.
type UserDirectory interface {
	Create(ctx context.Context, username, passwordHash string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	Ping(ctx context.Context) error
}
