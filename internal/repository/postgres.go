package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/credential-service/internal/domain"
)

const uniqueViolationCode = "23505"

type postgresDirectory struct {
	pool *pgxpool.Pool
}

// NewPostgresDirectory returns a Postgres-backed implementation. Username
// uniqueness is enforced by the UNIQUE constraint on the users table, so
// Create stays atomic under concurrency.
func NewPostgresDirectory(pool *pgxpool.Pool) UserDirectory {
	return &postgresDirectory{pool: pool}
}

func (r *postgresDirectory) Create(ctx context.Context, username, passwordHash string) (*domain.User, error) {
	const query = `
        INSERT INTO users (username, password_hash)
        VALUES ($1, $2)
        RETURNING id, created_at`

	user := &domain.User{
		Username:     username,
		PasswordHash: passwordHash,
	}
	if err := r.pool.QueryRow(ctx, query, username, passwordHash).Scan(&user.ID, &user.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}
	return user, nil
}

func (r *postgresDirectory) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	const query = `
        SELECT id, username, password_hash, created_at
        FROM users WHERE username=$1`

	return r.scanOne(r.pool.QueryRow(ctx, query, username))
}

func (r *postgresDirectory) GetByID(ctx context.Context, id string) (*domain.User, error) {
	const query = `
        SELECT id, username, password_hash, created_at
        FROM users WHERE id=$1`

	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

func (r *postgresDirectory) scanOne(row pgx.Row) (*domain.User, error) {
	var user domain.User
	if err := row.Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *postgresDirectory) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}
