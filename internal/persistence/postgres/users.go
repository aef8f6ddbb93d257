// Package postgres provides pgx-backed persistence for the fitness tracker.
//
// Uniqueness is always decided by the database: inserts use ON CONFLICT DO
// NOTHING and an insert that affects no row is reported as the matching
// conflict error. Two concurrent creations with the same key can never both
// succeed.
package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Harclay/FitnessTrackerBackend/internal/domain"
)

// UserRepository provides Postgres-backed persistence for users.
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository constructs a UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// Insert persists a user. A username collision surfaces as ErrUsernameTaken.
func (r *UserRepository) Insert(ctx context.Context, user domain.User) error {
	const stmt = `INSERT INTO users (user_id, username, password_hash, created_at)
        VALUES ($1,$2,$3,$4)
        ON CONFLICT (username) DO NOTHING`

	tag, err := r.pool.Exec(ctx, stmt, user.ID, user.Username, user.PasswordHash, user.CreatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUsernameTaken
	}
	return nil
}

// GetByID returns nil, nil when no user matches.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	const query = `SELECT user_id, username, password_hash, created_at
        FROM users WHERE user_id=$1`
	return r.scanOne(ctx, query, id)
}

// GetByUsername returns nil, nil when no user matches.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	const query = `SELECT user_id, username, password_hash, created_at
        FROM users WHERE username=$1`
	return r.scanOne(ctx, query, username)
}

func (r *UserRepository) scanOne(ctx context.Context, query string, arg any) (*domain.User, error) {
	row := r.pool.QueryRow(ctx, query, arg)
	var user domain.User
	if err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}
