package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/credential-service/internal/domain"
)

const (
	usernameIndexKey = "credsvc:usernames"
	userKeyPrefix    = "credsvc:user:"
)

type redisDirectory struct {
	client *redis.Client
}

// NewRedisDirectory returns a Redis-backed implementation. The HSetNX on the
// username index decides the creation race: exactly one caller claims a
// contested username.
func NewRedisDirectory(client *redis.Client) UserDirectory {
	return &redisDirectory{client: client}
}

func (r *redisDirectory) Create(ctx context.Context, username, passwordHash string) (*domain.User, error) {
	user := &domain.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}

	claimed, err := r.client.HSetNX(ctx, usernameIndexKey, username, user.ID).Result()
	if err != nil {
		return nil, err
	}
	if !claimed {
		return nil, ErrUsernameTaken
	}

	if err := r.client.HSet(ctx, userKeyPrefix+user.ID, map[string]interface{}{
		"username":      user.Username,
		"password_hash": user.PasswordHash,
		"created_at":    user.CreatedAt.Format(time.RFC3339Nano),
	}).Err(); err != nil {
		// Release the username claim so the record write failing does not
		// leave the name pointing at a record that was never stored. The
		// rollback must run even when ctx caused the failure.
		rollbackCtx := context.WithoutCancel(ctx)
		if delErr := r.client.HDel(rollbackCtx, usernameIndexKey, username).Err(); delErr != nil {
			return nil, errors.Join(err, delErr)
		}
		return nil, err
	}
	return user, nil
}

func (r *redisDirectory) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	id, err := r.client.HGet(ctx, usernameIndexKey, username).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *redisDirectory) GetByID(ctx context.Context, id string) (*domain.User, error) {
	fields, err := r.client.HGetAll(ctx, userKeyPrefix+id).Result()
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, ErrUserNotFound
	}

	user := &domain.User{
		ID:           id,
		Username:     fields["username"],
		PasswordHash: fields["password_hash"],
	}
	if created, err := time.Parse(time.RFC3339Nano, fields["created_at"]); err == nil {
		user.CreatedAt = created
	}
	return user, nil
}

func (r *redisDirectory) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
