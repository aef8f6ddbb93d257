package domain

import (
	"context"
	"sync"
)

// In-memory repositories mirroring the conflict semantics of the Postgres
// implementations, for exercising the services without a database.

type memUserRepo struct {
	mu    sync.Mutex
	users map[string]User // keyed by id
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]User)}
}

func (m *memUserRepo) Insert(ctx context.Context, user User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Username == user.Username {
			return ErrUsernameTaken
		}
	}
	m.users[user.ID] = user
	return nil
}

func (m *memUserRepo) GetByID(ctx context.Context, id string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if user, ok := m.users[id]; ok {
		return &user, nil
	}
	return nil, nil
}

func (m *memUserRepo) GetByUsername(ctx context.Context, username string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.users {
		if user.Username == username {
			u := user
			return &u, nil
		}
	}
	return nil, nil
}

type memRoutineRepo struct {
	mu       sync.Mutex
	routines map[string]Routine
}

func newMemRoutineRepo() *memRoutineRepo {
	return &memRoutineRepo{routines: make(map[string]Routine)}
}

func (m *memRoutineRepo) Insert(ctx context.Context, routine Routine) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.routines {
		if existing.Name == routine.Name {
			return ErrRoutineExists
		}
	}
	m.routines[routine.ID] = routine
	return nil
}

func (m *memRoutineRepo) List(ctx context.Context) ([]Routine, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Routine, 0, len(m.routines))
	for _, routine := range m.routines {
		out = append(out, routine)
	}
	return out, nil
}

func (m *memRoutineRepo) GetByID(ctx context.Context, id string) (*Routine, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if routine, ok := m.routines[id]; ok {
		return &routine, nil
	}
	return nil, nil
}

func (m *memRoutineRepo) Update(ctx context.Context, routine Routine) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, existing := range m.routines {
		if id != routine.ID && existing.Name == routine.Name {
			return ErrRoutineExists
		}
	}
	if _, ok := m.routines[routine.ID]; !ok {
		return ErrRoutineNotFound
	}
	m.routines[routine.ID] = routine
	return nil
}

func (m *memRoutineRepo) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.routines[id]; !ok {
		return ErrRoutineNotFound
	}
	delete(m.routines, id)
	return nil
}

func (m *memRoutineRepo) ByCreator(ctx context.Context, creatorID string) ([]Routine, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Routine, 0)
	for _, routine := range m.routines {
		if routine.CreatorID == creatorID {
			out = append(out, routine)
		}
	}
	return out, nil
}

func (m *memRoutineRepo) PublicByCreator(ctx context.Context, creatorID string) ([]Routine, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Routine, 0)
	for _, routine := range m.routines {
		if routine.CreatorID == creatorID && routine.IsPublic {
			out = append(out, routine)
		}
	}
	return out, nil
}

func (m *memRoutineRepo) PublicByActivity(ctx context.Context, activityID string) ([]Routine, error) {
	return nil, nil
}

type memActivityRepo struct {
	mu         sync.Mutex
	activities map[string]Activity
}

func newMemActivityRepo() *memActivityRepo {
	return &memActivityRepo{activities: make(map[string]Activity)}
}

func (m *memActivityRepo) Insert(ctx context.Context, activity Activity) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.activities {
		if existing.Name == activity.Name {
			return ErrActivityExists
		}
	}
	m.activities[activity.ID] = activity
	return nil
}

func (m *memActivityRepo) List(ctx context.Context) ([]Activity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Activity, 0, len(m.activities))
	for _, activity := range m.activities {
		out = append(out, activity)
	}
	return out, nil
}

func (m *memActivityRepo) GetByID(ctx context.Context, id string) (*Activity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if activity, ok := m.activities[id]; ok {
		return &activity, nil
	}
	return nil, nil
}

func (m *memActivityRepo) GetByName(ctx context.Context, name string) (*Activity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, activity := range m.activities {
		if activity.Name == name {
			a := activity
			return &a, nil
		}
	}
	return nil, nil
}

func (m *memActivityRepo) Update(ctx context.Context, activity Activity) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, existing := range m.activities {
		if id != activity.ID && existing.Name == activity.Name {
			return ErrActivityExists
		}
	}
	if _, ok := m.activities[activity.ID]; !ok {
		return ErrActivityNotFound
	}
	m.activities[activity.ID] = activity
	return nil
}

type memCompositionRepo struct {
	mu    sync.Mutex
	links map[string]RoutineActivity
}

func newMemCompositionRepo() *memCompositionRepo {
	return &memCompositionRepo{links: make(map[string]RoutineActivity)}
}

func (m *memCompositionRepo) Insert(ctx context.Context, ra RoutineActivity) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.links {
		if existing.RoutineID == ra.RoutineID && existing.ActivityID == ra.ActivityID {
			return ErrAlreadyAttached
		}
	}
	m.links[ra.ID] = ra
	return nil
}

func (m *memCompositionRepo) GetByID(ctx context.Context, id string) (*RoutineActivity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if ra, ok := m.links[id]; ok {
		return &ra, nil
	}
	return nil, nil
}

func (m *memCompositionRepo) Update(ctx context.Context, ra RoutineActivity) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.links[ra.ID]; !ok {
		return ErrCompositionNotFound
	}
	m.links[ra.ID] = ra
	return nil
}

func (m *memCompositionRepo) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.links[id]; !ok {
		return ErrCompositionNotFound
	}
	delete(m.links, id)
	return nil
}

func (m *memCompositionRepo) ListByRoutine(ctx context.Context, routineID string) ([]RoutineActivity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]RoutineActivity, 0)
	for _, ra := range m.links {
		if ra.RoutineID == routineID {
			out = append(out, ra)
		}
	}
	return out, nil
}
