// Package events defines the payloads published for routine lifecycle changes.
package events

import "time"

// RoutineCreated is emitted when a routine is created.
type RoutineCreated struct {
	RoutineID string    `json:"routine_id"`
	CreatorID string    `json:"creator_id"`
	Name      string    `json:"name"`
	Goal      string    `json:"goal"`
	IsPublic  bool      `json:"is_public"`
	CreatedAt time.Time `json:"created_at"`
}

// RoutineUpdated is emitted when a routine's name, goal, or visibility changes.
type RoutineUpdated struct {
	RoutineID  string    `json:"routine_id"`
	CreatorID  string    `json:"creator_id"`
	Name       string    `json:"name"`
	Goal       string    `json:"goal"`
	IsPublic   bool      `json:"is_public"`
	OccurredAt time.Time `json:"occurred_at"`
}

// RoutineDeleted is emitted when a routine is removed.
type RoutineDeleted struct {
	RoutineID  string    `json:"routine_id"`
	CreatorID  string    `json:"creator_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// ActivityAttached is emitted when an activity is added to a routine.
type ActivityAttached struct {
	RoutineActivityID string    `json:"routine_activity_id"`
	RoutineID         string    `json:"routine_id"`
	ActivityID        string    `json:"activity_id"`
	Duration          int       `json:"duration"`
	Count             int       `json:"count"`
	OccurredAt        time.Time `json:"occurred_at"`
}

// ActivityDetached is emitted when an activity is removed from a routine.
type ActivityDetached struct {
	RoutineActivityID string    `json:"routine_activity_id"`
	RoutineID         string    `json:"routine_id"`
	OccurredAt        time.Time `json:"occurred_at"`
}
