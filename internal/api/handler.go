// Package api exposes the HTTP handlers for the fitness tracker.
package api

import (
	"net/http"
	"time"

	"github.com/Harclay/FitnessTrackerBackend/internal/auth"
	"github.com/Harclay/FitnessTrackerBackend/internal/domain"
	"github.com/Harclay/FitnessTrackerBackend/internal/observability"
)

// Handler coordinates HTTP requests with the domain services.
type Handler struct {
	identity     *domain.IdentityService
	catalog      *domain.CatalogService
	routines     *domain.RoutineService
	compositions *domain.CompositionService
	tokens       auth.Config
}

// NewHandler builds a Handler.
func NewHandler(identity *domain.IdentityService, catalog *domain.CatalogService, routines *domain.RoutineService, compositions *domain.CompositionService, tokens auth.Config) *Handler {
	return &Handler{
		identity:     identity,
		catalog:      catalog,
		routines:     routines,
		compositions: compositions,
		tokens:       tokens,
	}
}

// RegisterRoutes wires endpoints to the mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/users/register", h.register)
	mux.HandleFunc("/api/users/login", h.login)
	mux.HandleFunc("/api/users/me", h.me)
	mux.HandleFunc("/api/users/", h.userSubtree)
	mux.HandleFunc("/api/activities", h.activities)
	mux.HandleFunc("/api/activities/", h.activitySubtree)
	mux.HandleFunc("/api/routines", h.routinesRoot)
	mux.HandleFunc("/api/routines/", h.routineSubtree)
	mux.HandleFunc("/api/routine_activities/", h.routineActivityByID)
	mux.HandleFunc("/healthz", healthz)
}

// healthz reports a simple OK status for container health checks.
func healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// requireIdentity extracts the authenticated identity or writes a 401.
func requireIdentity(w http.ResponseWriter, r *http.Request) (*auth.Claims, bool) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		observability.RecordAuthDenied("unauthenticated")
		writeError(w, http.StatusUnauthorized, "unauthorized", "you must be logged in to perform this action")
		return nil, false
	}
	return claims, true
}

// viewerID returns the authenticated user id, or "" for anonymous requests.
func viewerID(r *http.Request) string {
	if claims, ok := auth.FromContext(r.Context()); ok {
		return claims.UserID
	}
	return ""
}

// UserView is the outward representation of a user. It never carries the
// password hash.
type UserView struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// AuthResponse pairs a user with a freshly minted token.
type AuthResponse struct {
	User  UserView `json:"user"`
	Token string   `json:"token"`
}

// ActivityView is the outward representation of a catalog activity.
type ActivityView struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// RoutineView is the outward representation of a routine.
type RoutineView struct {
	ID        string    `json:"id"`
	CreatorID string    `json:"creator_id"`
	Name      string    `json:"name"`
	Goal      string    `json:"goal"`
	IsPublic  bool      `json:"is_public"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RoutineActivityView is the outward representation of a routine/activity link.
type RoutineActivityView struct {
	ID         string    `json:"id"`
	RoutineID  string    `json:"routine_id"`
	ActivityID string    `json:"activity_id"`
	Duration   int       `json:"duration"`
	Count      int       `json:"count"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func toUserView(user domain.User) UserView {
	return UserView{ID: user.ID, Username: user.Username}
}

func toActivityView(activity domain.Activity) ActivityView {
	return ActivityView{
		ID:          activity.ID,
		Name:        activity.Name,
		Description: activity.Description,
		CreatedAt:   activity.CreatedAt,
		UpdatedAt:   activity.UpdatedAt,
	}
}

func toRoutineView(routine domain.Routine) RoutineView {
	return RoutineView{
		ID:        routine.ID,
		CreatorID: routine.CreatorID,
		Name:      routine.Name,
		Goal:      routine.Goal,
		IsPublic:  routine.IsPublic,
		CreatedAt: routine.CreatedAt,
		UpdatedAt: routine.UpdatedAt,
	}
}

func toRoutineViews(routines []domain.Routine) []RoutineView {
	views := make([]RoutineView, 0, len(routines))
	for _, routine := range routines {
		views = append(views, toRoutineView(routine))
	}
	return views
}

func toRoutineActivityView(ra domain.RoutineActivity) RoutineActivityView {
	return RoutineActivityView{
		ID:         ra.ID,
		RoutineID:  ra.RoutineID,
		ActivityID: ra.ActivityID,
		Duration:   ra.Duration,
		Count:      ra.Count,
		CreatedAt:  ra.CreatedAt,
		UpdatedAt:  ra.UpdatedAt,
	}
}
