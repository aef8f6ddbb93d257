package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// RoutineActivity links an activity into a routine with per-routine
// parameters. Each (routine, activity) pair appears at most once.
type RoutineActivity struct {
	ID         string
	RoutineID  string
	ActivityID string
	Duration   int
	Count      int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// CompositionRepository captures persistence operations for routine activities.
type CompositionRepository interface {
	// Insert persists the link, returning ErrAlreadyAttached when the
	// (routine, activity) pair already exists and ErrActivityNotFound when
	// the activity reference is dangling.
	Insert(ctx context.Context, ra RoutineActivity) error
	// GetByID returns nil, nil when no link exists with the id.
	GetByID(ctx context.Context, id string) (*RoutineActivity, error)
	Update(ctx context.Context, ra RoutineActivity) error
	Delete(ctx context.Context, id string) error
	ListByRoutine(ctx context.Context, routineID string) ([]RoutineActivity, error)
}

// RoutineGetter resolves a routine by id; used to find the owner of a link.
type RoutineGetter interface {
	GetByID(ctx context.Context, id string) (*Routine, error)
}

// UpdateCompositionInput carries a partial link update. Nil fields are left
// unchanged; all nil is rejected.
type UpdateCompositionInput struct {
	Duration *int
	Count    *int
}

// CompositionService manages routine/activity links. Every mutation resolves
// the parent routine and applies the ownership policy against its creator.
type CompositionService struct {
	repo     CompositionRepository
	routines RoutineGetter
}

// NewCompositionService constructs a CompositionService.
func NewCompositionService(repo CompositionRepository, routines RoutineGetter) *CompositionService {
	return &CompositionService{repo: repo, routines: routines}
}

// ownedLink fetches a link together with its parent routine and rejects
// requesters other than the routine's creator. Update and Delete share this
// path so the ownership rule cannot diverge between them.
func (s *CompositionService) ownedLink(ctx context.Context, id, requesterID string) (*RoutineActivity, error) {
	ra, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ra == nil {
		return nil, ErrCompositionNotFound
	}

	routine, err := s.routines.GetByID(ctx, ra.RoutineID)
	if err != nil {
		return nil, err
	}
	if routine == nil {
		// Dangling link; the parent was deleted out from under it.
		return nil, ErrCompositionNotFound
	}
	if !CanModify(requesterID, routine.CreatorID) {
		return nil, ErrNotOwner
	}
	return ra, nil
}

// Attach adds an activity to a routine. Only the routine's creator may attach.
func (s *CompositionService) Attach(ctx context.Context, routineID, activityID string, duration, count int, requesterID string) (*RoutineActivity, error) {
	routine, err := s.routines.GetByID(ctx, routineID)
	if err != nil {
		return nil, err
	}
	if routine == nil {
		return nil, ErrRoutineNotFound
	}
	if !CanModify(requesterID, routine.CreatorID) {
		return nil, ErrNotOwner
	}

	now := time.Now().UTC()
	ra := RoutineActivity{
		ID:         uuid.NewString(),
		RoutineID:  routineID,
		ActivityID: activityID,
		Duration:   duration,
		Count:      count,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.repo.Insert(ctx, ra); err != nil {
		return nil, err
	}
	return &ra, nil
}

// Update changes duration and/or count on behalf of the requester.
func (s *CompositionService) Update(ctx context.Context, id, requesterID string, input UpdateCompositionInput) (*RoutineActivity, error) {
	ra, err := s.ownedLink(ctx, id, requesterID)
	if err != nil {
		return nil, err
	}
	if input.Duration == nil && input.Count == nil {
		return nil, ErrNoFieldsGiven
	}

	if input.Duration != nil {
		ra.Duration = *input.Duration
	}
	if input.Count != nil {
		ra.Count = *input.Count
	}
	ra.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, *ra); err != nil {
		return nil, err
	}
	return ra, nil
}

// Delete removes the link on behalf of the requester and returns the deleted
// record.
func (s *CompositionService) Delete(ctx context.Context, id, requesterID string) (*RoutineActivity, error) {
	ra, err := s.ownedLink(ctx, id, requesterID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, err
	}
	return ra, nil
}

// ListForRoutine returns all links belonging to the routine.
func (s *CompositionService) ListForRoutine(ctx context.Context, routineID string) ([]RoutineActivity, error) {
	routine, err := s.routines.GetByID(ctx, routineID)
	if err != nil {
		return nil, err
	}
	if routine == nil {
		return nil, ErrRoutineNotFound
	}
	return s.repo.ListByRoutine(ctx, routineID)
}
