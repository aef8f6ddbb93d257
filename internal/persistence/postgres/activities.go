package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Harclay/FitnessTrackerBackend/internal/domain"
)

// ActivityRepository provides Postgres-backed persistence for the activity catalog.
type ActivityRepository struct {
	pool *pgxpool.Pool
}

// NewActivityRepository constructs an ActivityRepository.
func NewActivityRepository(pool *pgxpool.Pool) *ActivityRepository {
	return &ActivityRepository{pool: pool}
}

// Insert persists an activity. A name collision surfaces as ErrActivityExists.
func (r *ActivityRepository) Insert(ctx context.Context, activity domain.Activity) error {
	const stmt = `INSERT INTO activities (activity_id, name, description, created_at, updated_at)
        VALUES ($1,$2,$3,$4,$5)
        ON CONFLICT (name) DO NOTHING`

	tag, err := r.pool.Exec(ctx, stmt,
		activity.ID, activity.Name, activity.Description, activity.CreatedAt, activity.UpdatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrActivityExists
	}
	return nil
}

// List returns every activity.
func (r *ActivityRepository) List(ctx context.Context) ([]domain.Activity, error) {
	const query = `SELECT activity_id, name, description, created_at, updated_at
        FROM activities`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	activities := make([]domain.Activity, 0)
	for rows.Next() {
		var activity domain.Activity
		if err := rows.Scan(&activity.ID, &activity.Name, &activity.Description, &activity.CreatedAt, &activity.UpdatedAt); err != nil {
			return nil, err
		}
		activities = append(activities, activity)
	}
	return activities, rows.Err()
}

// GetByID returns nil, nil when no activity matches.
func (r *ActivityRepository) GetByID(ctx context.Context, id string) (*domain.Activity, error) {
	const query = `SELECT activity_id, name, description, created_at, updated_at
        FROM activities WHERE activity_id=$1`
	return r.scanOne(ctx, query, id)
}

// GetByName returns nil, nil when no activity matches.
func (r *ActivityRepository) GetByName(ctx context.Context, name string) (*domain.Activity, error) {
	const query = `SELECT activity_id, name, description, created_at, updated_at
        FROM activities WHERE name=$1`
	return r.scanOne(ctx, query, name)
}

// Update rewrites name and description. Renaming onto another activity's name
// trips the unique constraint and surfaces as ErrActivityExists.
func (r *ActivityRepository) Update(ctx context.Context, activity domain.Activity) error {
	const stmt = `UPDATE activities SET name=$2, description=$3, updated_at=$4
        WHERE activity_id=$1`

	tag, err := r.pool.Exec(ctx, stmt, activity.ID, activity.Name, activity.Description, activity.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrActivityExists
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrActivityNotFound
	}
	return nil
}

func (r *ActivityRepository) scanOne(ctx context.Context, query string, arg any) (*domain.Activity, error) {
	row := r.pool.QueryRow(ctx, query, arg)
	var activity domain.Activity
	if err := row.Scan(&activity.ID, &activity.Name, &activity.Description, &activity.CreatedAt, &activity.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &activity, nil
}

// Postgres error codes for constraint violations.
const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
)

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolationCode
}
