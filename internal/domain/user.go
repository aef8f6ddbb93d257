// Package domain defines the entities, authorization policy, and business
// logic of the fitness tracker.
package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is the shortest password accepted at registration.
const MinPasswordLength = 8

// User is an account record. PasswordHash never leaves the process: API
// responses are built from view structs that do not carry it.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

// UserRepository captures persistence operations for users.
type UserRepository interface {
	// Insert persists the user, returning ErrUsernameTaken when the
	// username is already present. The store's uniqueness constraint is
	// the authority; there is no check-then-insert.
	Insert(ctx context.Context, user User) error
	// GetByID returns nil, nil when no user exists with the id.
	GetByID(ctx context.Context, id string) (*User, error)
	// GetByUsername returns nil, nil when no user exists with the username.
	GetByUsername(ctx context.Context, username string) (*User, error)
}

// IdentityService registers and authenticates users.
type IdentityService struct {
	repo       UserRepository
	log        zerolog.Logger
	bcryptCost int
}

// NewIdentityService constructs an IdentityService. A non-positive cost falls
// back to bcrypt.DefaultCost.
func NewIdentityService(repo UserRepository, log zerolog.Logger, bcryptCost int) *IdentityService {
	if bcryptCost <= 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &IdentityService{repo: repo, log: log, bcryptCost: bcryptCost}
}

// Register creates a new account. The plaintext password is hashed before
// persistence and discarded.
func (s *IdentityService) Register(ctx context.Context, username, password string) (*User, error) {
	if len(password) < MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.Insert(ctx, user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Authenticate verifies a username/password pair. All failure modes collapse
// into ErrInvalidCredentials so the caller cannot probe for usernames; the
// internal distinction is logged.
func (s *IdentityService) Authenticate(ctx context.Context, username, password string) (*User, error) {
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		s.log.Info().Str("username", username).Msg("login failed: unknown username")
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.log.Info().Str("username", username).Msg("login failed: wrong password")
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// GetByID fetches a user or ErrUserNotFound.
func (s *IdentityService) GetByID(ctx context.Context, id string) (*User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// GetByUsername fetches a user or ErrUserNotFound.
func (s *IdentityService) GetByUsername(ctx context.Context, username string) (*User, error) {
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}
