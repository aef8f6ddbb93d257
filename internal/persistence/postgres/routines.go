package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Harclay/FitnessTrackerBackend/internal/domain"
	"github.com/Harclay/FitnessTrackerBackend/internal/events"
	"github.com/Harclay/FitnessTrackerBackend/internal/observability"
)

// RoutineRepository provides Postgres-backed persistence for routines.
// Mutations record outbox events in the same transaction.
type RoutineRepository struct {
	pool *pgxpool.Pool
}

// NewRoutineRepository constructs a RoutineRepository.
func NewRoutineRepository(pool *pgxpool.Pool) *RoutineRepository {
	return &RoutineRepository{pool: pool}
}

const routineColumns = `routine_id, creator_id, name, goal, is_public, created_at, updated_at`

// Insert persists a routine. A name collision surfaces as ErrRoutineExists.
func (r *RoutineRepository) Insert(ctx context.Context, routine domain.Routine) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback(ctx)
		}
	}()

	const stmt = `INSERT INTO routines (routine_id, creator_id, name, goal, is_public, created_at, updated_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        ON CONFLICT (name) DO NOTHING`

	tag, err := tx.Exec(ctx, stmt,
		routine.ID, routine.CreatorID, routine.Name, routine.Goal, routine.IsPublic, routine.CreatedAt, routine.UpdatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		err = domain.ErrRoutineExists
		return err
	}

	if err = insertOutbox(ctx, tx, "routine", routine.ID, "routine.created", routine.ID, events.RoutineCreated{
		RoutineID: routine.ID,
		CreatorID: routine.CreatorID,
		Name:      routine.Name,
		Goal:      routine.Goal,
		IsPublic:  routine.IsPublic,
		CreatedAt: routine.CreatedAt,
	}); err != nil {
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return err
	}
	observability.RecordRoutinePersisted(routine.CreatedAt)
	return nil
}

// List returns every routine.
func (r *RoutineRepository) List(ctx context.Context) ([]domain.Routine, error) {
	return r.scanMany(ctx, `SELECT `+routineColumns+` FROM routines`)
}

// GetByID returns nil, nil when no routine matches.
func (r *RoutineRepository) GetByID(ctx context.Context, id string) (*domain.Routine, error) {
	const query = `SELECT ` + routineColumns + ` FROM routines WHERE routine_id=$1`

	row := r.pool.QueryRow(ctx, query, id)
	var routine domain.Routine
	if err := scanRoutine(row, &routine); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &routine, nil
}

// Update rewrites name, goal, and visibility. Renaming onto another routine's
// name surfaces as ErrRoutineExists. creator_id is deliberately absent from
// the SET clause; ownership is immutable.
func (r *RoutineRepository) Update(ctx context.Context, routine domain.Routine) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback(ctx)
		}
	}()

	const stmt = `UPDATE routines SET name=$2, goal=$3, is_public=$4, updated_at=$5
        WHERE routine_id=$1`

	tag, err := tx.Exec(ctx, stmt, routine.ID, routine.Name, routine.Goal, routine.IsPublic, routine.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			err = domain.ErrRoutineExists
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		err = domain.ErrRoutineNotFound
		return err
	}

	if err = insertOutbox(ctx, tx, "routine", routine.ID, "routine.updated", routine.ID, events.RoutineUpdated{
		RoutineID:  routine.ID,
		CreatorID:  routine.CreatorID,
		Name:       routine.Name,
		Goal:       routine.Goal,
		IsPublic:   routine.IsPublic,
		OccurredAt: routine.UpdatedAt,
	}); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// Delete removes a routine. Attached routine_activities are removed by the
// ON DELETE CASCADE on their foreign key.
func (r *RoutineRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback(ctx)
		}
	}()

	const stmt = `DELETE FROM routines WHERE routine_id=$1 RETURNING creator_id`

	var creatorID string
	if err = tx.QueryRow(ctx, stmt, id).Scan(&creatorID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = domain.ErrRoutineNotFound
		}
		return err
	}

	if err = insertOutbox(ctx, tx, "routine", id, "routine.deleted", id, events.RoutineDeleted{
		RoutineID:  id,
		CreatorID:  creatorID,
		OccurredAt: time.Now().UTC(),
	}); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// ByCreator returns every routine created by the user.
func (r *RoutineRepository) ByCreator(ctx context.Context, creatorID string) ([]domain.Routine, error) {
	return r.scanMany(ctx, `SELECT `+routineColumns+` FROM routines WHERE creator_id=$1`, creatorID)
}

// PublicByCreator returns the user's public routines.
func (r *RoutineRepository) PublicByCreator(ctx context.Context, creatorID string) ([]domain.Routine, error) {
	return r.scanMany(ctx, `SELECT `+routineColumns+` FROM routines WHERE creator_id=$1 AND is_public`, creatorID)
}

// PublicByActivity returns the public routines that include the activity.
func (r *RoutineRepository) PublicByActivity(ctx context.Context, activityID string) ([]domain.Routine, error) {
	const query = `SELECT r.routine_id, r.creator_id, r.name, r.goal, r.is_public, r.created_at, r.updated_at
        FROM routines r
        JOIN routine_activities ra ON ra.routine_id = r.routine_id
        WHERE ra.activity_id=$1 AND r.is_public`
	return r.scanMany(ctx, query, activityID)
}

func (r *RoutineRepository) scanMany(ctx context.Context, query string, args ...any) ([]domain.Routine, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	routines := make([]domain.Routine, 0)
	for rows.Next() {
		var routine domain.Routine
		if err := scanRoutine(rows, &routine); err != nil {
			return nil, err
		}
		routines = append(routines, routine)
	}
	return routines, rows.Err()
}

func scanRoutine(row pgx.Row, routine *domain.Routine) error {
	return row.Scan(&routine.ID, &routine.CreatorID, &routine.Name, &routine.Goal, &routine.IsPublic, &routine.CreatedAt, &routine.UpdatedAt)
}
