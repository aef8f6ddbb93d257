package api

import (
	"context"
	"sync"

	"github.com/Harclay/FitnessTrackerBackend/internal/domain"
)

// Map-backed repositories with the same conflict semantics as the Postgres
// implementations, so handlers can be exercised end to end without a database.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]domain.User)}
}

func (f *fakeUserRepo) Insert(ctx context.Context, user domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.users {
		if existing.Username == user.Username {
			return domain.ErrUsernameTaken
		}
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if user, ok := f.users[id]; ok {
		return &user, nil
	}
	return nil, nil
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Username == username {
			u := user
			return &u, nil
		}
	}
	return nil, nil
}

type fakeRoutineRepo struct {
	mu       sync.Mutex
	routines map[string]domain.Routine
	links    *fakeCompositionRepo
}

func newFakeRoutineRepo(links *fakeCompositionRepo) *fakeRoutineRepo {
	return &fakeRoutineRepo{routines: make(map[string]domain.Routine), links: links}
}

func (f *fakeRoutineRepo) Insert(ctx context.Context, routine domain.Routine) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.routines {
		if existing.Name == routine.Name {
			return domain.ErrRoutineExists
		}
	}
	f.routines[routine.ID] = routine
	return nil
}

func (f *fakeRoutineRepo) List(ctx context.Context) ([]domain.Routine, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Routine, 0, len(f.routines))
	for _, routine := range f.routines {
		out = append(out, routine)
	}
	return out, nil
}

func (f *fakeRoutineRepo) GetByID(ctx context.Context, id string) (*domain.Routine, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if routine, ok := f.routines[id]; ok {
		return &routine, nil
	}
	return nil, nil
}

func (f *fakeRoutineRepo) Update(ctx context.Context, routine domain.Routine) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, existing := range f.routines {
		if id != routine.ID && existing.Name == routine.Name {
			return domain.ErrRoutineExists
		}
	}
	if _, ok := f.routines[routine.ID]; !ok {
		return domain.ErrRoutineNotFound
	}
	f.routines[routine.ID] = routine
	return nil
}

func (f *fakeRoutineRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.routines[id]; !ok {
		return domain.ErrRoutineNotFound
	}
	delete(f.routines, id)
	// Mirrors the ON DELETE CASCADE on routine_activities.
	if f.links != nil {
		f.links.deleteByRoutine(id)
	}
	return nil
}

func (f *fakeRoutineRepo) ByCreator(ctx context.Context, creatorID string) ([]domain.Routine, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Routine, 0)
	for _, routine := range f.routines {
		if routine.CreatorID == creatorID {
			out = append(out, routine)
		}
	}
	return out, nil
}

func (f *fakeRoutineRepo) PublicByCreator(ctx context.Context, creatorID string) ([]domain.Routine, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Routine, 0)
	for _, routine := range f.routines {
		if routine.CreatorID == creatorID && routine.IsPublic {
			out = append(out, routine)
		}
	}
	return out, nil
}

func (f *fakeRoutineRepo) PublicByActivity(ctx context.Context, activityID string) ([]domain.Routine, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Routine, 0)
	for _, routine := range f.routines {
		if !routine.IsPublic {
			continue
		}
		if f.links.hasPair(routine.ID, activityID) {
			out = append(out, routine)
		}
	}
	return out, nil
}

type fakeActivityRepo struct {
	mu         sync.Mutex
	activities map[string]domain.Activity
}

func newFakeActivityRepo() *fakeActivityRepo {
	return &fakeActivityRepo{activities: make(map[string]domain.Activity)}
}

func (f *fakeActivityRepo) Insert(ctx context.Context, activity domain.Activity) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.activities {
		if existing.Name == activity.Name {
			return domain.ErrActivityExists
		}
	}
	f.activities[activity.ID] = activity
	return nil
}

func (f *fakeActivityRepo) List(ctx context.Context) ([]domain.Activity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Activity, 0, len(f.activities))
	for _, activity := range f.activities {
		out = append(out, activity)
	}
	return out, nil
}

func (f *fakeActivityRepo) GetByID(ctx context.Context, id string) (*domain.Activity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if activity, ok := f.activities[id]; ok {
		return &activity, nil
	}
	return nil, nil
}

func (f *fakeActivityRepo) GetByName(ctx context.Context, name string) (*domain.Activity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, activity := range f.activities {
		if activity.Name == name {
			a := activity
			return &a, nil
		}
	}
	return nil, nil
}

func (f *fakeActivityRepo) Update(ctx context.Context, activity domain.Activity) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, existing := range f.activities {
		if id != activity.ID && existing.Name == activity.Name {
			return domain.ErrActivityExists
		}
	}
	if _, ok := f.activities[activity.ID]; !ok {
		return domain.ErrActivityNotFound
	}
	f.activities[activity.ID] = activity
	return nil
}

type fakeCompositionRepo struct {
	mu    sync.Mutex
	links map[string]domain.RoutineActivity
}

func newFakeCompositionRepo() *fakeCompositionRepo {
	return &fakeCompositionRepo{links: make(map[string]domain.RoutineActivity)}
}

func (f *fakeCompositionRepo) Insert(ctx context.Context, ra domain.RoutineActivity) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.links {
		if existing.RoutineID == ra.RoutineID && existing.ActivityID == ra.ActivityID {
			return domain.ErrAlreadyAttached
		}
	}
	f.links[ra.ID] = ra
	return nil
}

func (f *fakeCompositionRepo) GetByID(ctx context.Context, id string) (*domain.RoutineActivity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if ra, ok := f.links[id]; ok {
		return &ra, nil
	}
	return nil, nil
}

func (f *fakeCompositionRepo) Update(ctx context.Context, ra domain.RoutineActivity) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.links[ra.ID]; !ok {
		return domain.ErrCompositionNotFound
	}
	f.links[ra.ID] = ra
	return nil
}

func (f *fakeCompositionRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.links[id]; !ok {
		return domain.ErrCompositionNotFound
	}
	delete(f.links, id)
	return nil
}

func (f *fakeCompositionRepo) ListByRoutine(ctx context.Context, routineID string) ([]domain.RoutineActivity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.RoutineActivity, 0)
	for _, ra := range f.links {
		if ra.RoutineID == routineID {
			out = append(out, ra)
		}
	}
	return out, nil
}

func (f *fakeCompositionRepo) hasPair(routineID, activityID string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, ra := range f.links {
		if ra.RoutineID == routineID && ra.ActivityID == activityID {
			return true
		}
	}
	return false
}

func (f *fakeCompositionRepo) deleteByRoutine(routineID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, ra := range f.links {
		if ra.RoutineID == routineID {
			delete(f.links, id)
		}
	}
}
