package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/credential-service/internal/domain"
)

// memoryDirectory keeps users in process memory. Records are lost on
// restart; it is the default backend and the test double.
type memoryDirectory struct {
	mu     sync.Mutex
	byName map[string]*domain.User
	byID   map[string]*domain.User
}

// NewMemoryDirectory returns a volatile in-memory implementation.
func NewMemoryDirectory() UserDirectory {
	return &memoryDirectory{
		byName: make(map[string]*domain.User),
		byID:   make(map[string]*domain.User),
	}
}

func (m *memoryDirectory) Create(_ context.Context, username, passwordHash string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byName[username]; ok {
		return nil, ErrUsernameTaken
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}
	m.byName[username] = user
	m.byID[user.ID] = user

	copied := *user
	return &copied, nil
}

func (m *memoryDirectory) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.byName[username]
	if !ok {
		return nil, ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (m *memoryDirectory) GetByID(_ context.Context, id string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.byID[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (m *memoryDirectory) Ping(_ context.Context) error {
	return nil
}
