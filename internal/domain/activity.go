package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Activity is a reusable exercise definition shared by all users.
type Activity struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ActivityRepository captures persistence operations for activities.
type ActivityRepository interface {
	// Insert persists the activity, returning ErrActivityExists when the
	// name is already in use.
	Insert(ctx context.Context, activity Activity) error
	List(ctx context.Context) ([]Activity, error)
	// GetByID returns nil, nil when no activity exists with the id.
	GetByID(ctx context.Context, id string) (*Activity, error)
	// GetByName returns nil, nil when no activity exists with the name.
	GetByName(ctx context.Context, name string) (*Activity, error)
	// Update rewrites name and description, returning ErrActivityExists
	// when the new name collides with a different activity.
	Update(ctx context.Context, activity Activity) error
}

// PublicRoutineLister answers which public routines include a given activity.
type PublicRoutineLister interface {
	PublicByActivity(ctx context.Context, activityID string) ([]Routine, error)
}

// UpdateActivityInput carries a partial activity update. Nil fields are left
// unchanged.
type UpdateActivityInput struct {
	Name        *string
	Description *string
}

// CatalogService manages the shared activity catalog.
type CatalogService struct {
	repo     ActivityRepository
	routines PublicRoutineLister
}

// NewCatalogService constructs a CatalogService.
func NewCatalogService(repo ActivityRepository, routines PublicRoutineLister) *CatalogService {
	return &CatalogService{repo: repo, routines: routines}
}

// Create adds an activity to the catalog.
func (s *CatalogService) Create(ctx context.Context, name, description string) (*Activity, error) {
	now := time.Now().UTC()
	activity := Activity{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Insert(ctx, activity); err != nil {
		return nil, err
	}
	return &activity, nil
}

// List returns every activity in the catalog.
func (s *CatalogService) List(ctx context.Context) ([]Activity, error) {
	return s.repo.List(ctx)
}

// GetByID fetches an activity or ErrActivityNotFound.
func (s *CatalogService) GetByID(ctx context.Context, id string) (*Activity, error) {
	activity, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if activity == nil {
		return nil, ErrActivityNotFound
	}
	return activity, nil
}

// GetByName fetches an activity or ErrActivityNotFound.
func (s *CatalogService) GetByName(ctx context.Context, name string) (*Activity, error) {
	activity, err := s.repo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if activity == nil {
		return nil, ErrActivityNotFound
	}
	return activity, nil
}

// Update applies a partial update. Supplying no fields returns the activity
// unchanged.
func (s *CatalogService) Update(ctx context.Context, id string, input UpdateActivityInput) (*Activity, error) {
	activity, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name == nil && input.Description == nil {
		return activity, nil
	}

	if input.Name != nil {
		activity.Name = *input.Name
	}
	if input.Description != nil {
		activity.Description = *input.Description
	}
	activity.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, *activity); err != nil {
		return nil, err
	}
	return activity, nil
}

// PublicRoutinesUsing lists public routines that include the activity.
func (s *CatalogService) PublicRoutinesUsing(ctx context.Context, activityID string) ([]Routine, error) {
	if _, err := s.GetByID(ctx, activityID); err != nil {
		return nil, err
	}
	return s.routines.PublicByActivity(ctx, activityID)
}
