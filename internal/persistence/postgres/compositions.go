package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Harclay/FitnessTrackerBackend/internal/domain"
	"github.com/Harclay/FitnessTrackerBackend/internal/events"
)

// CompositionRepository provides Postgres-backed persistence for
// routine/activity links.
type CompositionRepository struct {
	pool *pgxpool.Pool
}

// NewCompositionRepository constructs a CompositionRepository.
func NewCompositionRepository(pool *pgxpool.Pool) *CompositionRepository {
	return &CompositionRepository{pool: pool}
}

const compositionColumns = `routine_activity_id, routine_id, activity_id, duration, count, created_at, updated_at`

// Insert persists a link. A duplicate (routine, activity) pair surfaces as
// ErrAlreadyAttached; a dangling activity reference as ErrActivityNotFound.
func (r *CompositionRepository) Insert(ctx context.Context, ra domain.RoutineActivity) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback(ctx)
		}
	}()

	const stmt = `INSERT INTO routine_activities (routine_activity_id, routine_id, activity_id, duration, count, created_at, updated_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        ON CONFLICT (routine_id, activity_id) DO NOTHING`

	tag, err := tx.Exec(ctx, stmt,
		ra.ID, ra.RoutineID, ra.ActivityID, ra.Duration, ra.Count, ra.CreatedAt, ra.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			err = domain.ErrActivityNotFound
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		err = domain.ErrAlreadyAttached
		return err
	}

	if err = insertOutbox(ctx, tx, "routine_activity", ra.ID, "routine_activity.attached", ra.RoutineID, events.ActivityAttached{
		RoutineActivityID: ra.ID,
		RoutineID:         ra.RoutineID,
		ActivityID:        ra.ActivityID,
		Duration:          ra.Duration,
		Count:             ra.Count,
		OccurredAt:        ra.CreatedAt,
	}); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// GetByID returns nil, nil when no link matches.
func (r *CompositionRepository) GetByID(ctx context.Context, id string) (*domain.RoutineActivity, error) {
	const query = `SELECT ` + compositionColumns + ` FROM routine_activities WHERE routine_activity_id=$1`

	row := r.pool.QueryRow(ctx, query, id)
	var ra domain.RoutineActivity
	if err := scanComposition(row, &ra); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &ra, nil
}

// Update rewrites duration and count.
func (r *CompositionRepository) Update(ctx context.Context, ra domain.RoutineActivity) error {
	const stmt = `UPDATE routine_activities SET duration=$2, count=$3, updated_at=$4
        WHERE routine_activity_id=$1`

	tag, err := r.pool.Exec(ctx, stmt, ra.ID, ra.Duration, ra.Count, ra.UpdatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCompositionNotFound
	}
	return nil
}

// Delete removes a link.
func (r *CompositionRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback(ctx)
		}
	}()

	const stmt = `DELETE FROM routine_activities WHERE routine_activity_id=$1 RETURNING routine_id`

	var routineID string
	if err = tx.QueryRow(ctx, stmt, id).Scan(&routineID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = domain.ErrCompositionNotFound
		}
		return err
	}

	if err = insertOutbox(ctx, tx, "routine_activity", id, "routine_activity.removed", routineID, events.ActivityDetached{
		RoutineActivityID: id,
		RoutineID:         routineID,
		OccurredAt:        time.Now().UTC(),
	}); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// ListByRoutine returns the links belonging to the routine.
func (r *CompositionRepository) ListByRoutine(ctx context.Context, routineID string) ([]domain.RoutineActivity, error) {
	const query = `SELECT ` + compositionColumns + ` FROM routine_activities WHERE routine_id=$1`

	rows, err := r.pool.Query(ctx, query, routineID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	links := make([]domain.RoutineActivity, 0)
	for rows.Next() {
		var ra domain.RoutineActivity
		if err := scanComposition(rows, &ra); err != nil {
			return nil, err
		}
		links = append(links, ra)
	}
	return links, rows.Err()
}

func scanComposition(row pgx.Row, ra *domain.RoutineActivity) error {
	return row.Scan(&ra.ID, &ra.RoutineID, &ra.ActivityID, &ra.Duration, &ra.Count, &ra.CreatedAt, &ra.UpdatedAt)
}
