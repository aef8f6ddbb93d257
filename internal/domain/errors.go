package domain

import "errors"

// Validation failures reported to the caller as 400s.
var (
	// ErrPasswordTooShort is returned when a registration password is under the minimum length.
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")
	// ErrNoFieldsGiven is returned when an update request supplies nothing to change.
	ErrNoFieldsGiven = errors.New("no fields to update")
)

// Uniqueness conflicts surfaced by the store.
var (
	// ErrUsernameTaken indicates the username is already registered.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrActivityExists indicates an activity with the same name already exists.
	ErrActivityExists = errors.New("activity already exists")
	// ErrRoutineExists indicates a routine with the same name already exists.
	ErrRoutineExists = errors.New("routine already exists")
	// ErrAlreadyAttached indicates the activity is already part of the routine.
	ErrAlreadyAttached = errors.New("activity already attached to routine")
)

// Missing resources.
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrActivityNotFound    = errors.New("activity not found")
	ErrRoutineNotFound     = errors.New("routine not found")
	ErrCompositionNotFound = errors.New("routine activity not found")
)

// Authentication and authorization failures.
var (
	// ErrInvalidCredentials is the single caller-facing login failure. It
	// deliberately does not distinguish an unknown username from a wrong
	// password; that distinction is logged internally only.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrNotOwner is returned when the requester is not the routine's creator.
	ErrNotOwner = errors.New("requester is not the owner of this routine")
)
