package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Routine is a named collection of activities owned by its creator. CreatorID
// is fixed at creation and never updated.
type Routine struct {
	ID        string
	CreatorID string
	Name      string
	Goal      string
	IsPublic  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RoutineRepository captures persistence operations for routines.
type RoutineRepository interface {
	// Insert persists the routine, returning ErrRoutineExists when the
	// name is already in use.
	Insert(ctx context.Context, routine Routine) error
	List(ctx context.Context) ([]Routine, error)
	// GetByID returns nil, nil when no routine exists with the id.
	GetByID(ctx context.Context, id string) (*Routine, error)
	// Update rewrites name, goal, and visibility, returning
	// ErrRoutineExists on a name collision. CreatorID is never touched.
	Update(ctx context.Context, routine Routine) error
	Delete(ctx context.Context, id string) error
	ByCreator(ctx context.Context, creatorID string) ([]Routine, error)
	PublicByCreator(ctx context.Context, creatorID string) ([]Routine, error)
	PublicByActivity(ctx context.Context, activityID string) ([]Routine, error)
}

// UpdateRoutineInput carries a partial routine update. Nil fields are left
// unchanged; all nil is rejected.
type UpdateRoutineInput struct {
	Name     *string
	Goal     *string
	IsPublic *bool
}

// RoutineService manages routines and enforces creator-only mutation.
type RoutineService struct {
	repo RoutineRepository
}

// NewRoutineService constructs a RoutineService.
func NewRoutineService(repo RoutineRepository) *RoutineService {
	return &RoutineService{repo: repo}
}

// Create persists a new routine owned by creatorID.
func (s *RoutineService) Create(ctx context.Context, creatorID, name, goal string, isPublic bool) (*Routine, error) {
	now := time.Now().UTC()
	routine := Routine{
		ID:        uuid.NewString(),
		CreatorID: creatorID,
		Name:      name,
		Goal:      goal,
		IsPublic:  isPublic,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Insert(ctx, routine); err != nil {
		return nil, err
	}
	return &routine, nil
}

// List returns the routines visible to the viewer: every public routine plus
// the viewer's own private ones.
func (s *RoutineService) List(ctx context.Context, viewerID string) ([]Routine, error) {
	routines, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	visible := make([]Routine, 0, len(routines))
	for _, routine := range routines {
		if CanView(viewerID, routine) {
			visible = append(visible, routine)
		}
	}
	return visible, nil
}

// Get fetches a routine the viewer is allowed to see. Private routines are
// indistinguishable from absent ones for non-owners.
func (s *RoutineService) Get(ctx context.Context, id, viewerID string) (*Routine, error) {
	routine, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if routine == nil || !CanView(viewerID, *routine) {
		return nil, ErrRoutineNotFound
	}
	return routine, nil
}

// Update applies a partial update on behalf of the requester. Only the
// creator may update, and at least one field must be supplied.
func (s *RoutineService) Update(ctx context.Context, id, requesterID string, input UpdateRoutineInput) (*Routine, error) {
	routine, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if routine == nil {
		return nil, ErrRoutineNotFound
	}
	if !CanModify(requesterID, routine.CreatorID) {
		return nil, ErrNotOwner
	}
	if input.Name == nil && input.Goal == nil && input.IsPublic == nil {
		return nil, ErrNoFieldsGiven
	}

	if input.Name != nil {
		routine.Name = *input.Name
	}
	if input.Goal != nil {
		routine.Goal = *input.Goal
	}
	if input.IsPublic != nil {
		routine.IsPublic = *input.IsPublic
	}
	routine.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, *routine); err != nil {
		return nil, err
	}
	return routine, nil
}

// Delete removes a routine on behalf of the requester and returns the deleted
// record. Only the creator may delete.
func (s *RoutineService) Delete(ctx context.Context, id, requesterID string) (*Routine, error) {
	routine, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if routine == nil {
		return nil, ErrRoutineNotFound
	}
	if !CanModify(requesterID, routine.CreatorID) {
		return nil, ErrNotOwner
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, err
	}
	return routine, nil
}

// ForUser returns the routines created by userID: all of them when the viewer
// is the owner, public ones otherwise.
func (s *RoutineService) ForUser(ctx context.Context, userID string, asOwner bool) ([]Routine, error) {
	if asOwner {
		return s.repo.ByCreator(ctx, userID)
	}
	return s.repo.PublicByCreator(ctx, userID)
}
