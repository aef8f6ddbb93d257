package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/Harclay/FitnessTrackerBackend/internal/domain"
)

// CreateRoutineRequest is the payload for POST /api/routines.
type CreateRoutineRequest struct {
	Name     string `json:"name"`
	Goal     string `json:"goal"`
	IsPublic bool   `json:"is_public"`
}

// UpdateRoutineRequest is the payload for PATCH /api/routines/{id}.
type UpdateRoutineRequest struct {
	Name     *string `json:"name"`
	Goal     *string `json:"goal"`
	IsPublic *bool   `json:"is_public"`
}

// AttachActivityRequest is the payload for POST /api/routines/{id}/activities.
type AttachActivityRequest struct {
	ActivityID string `json:"activity_id"`
	Duration   int    `json:"duration"`
	Count      int    `json:"count"`
}

func (h *Handler) routinesRoot(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listRoutines(w, r)
	case http.MethodPost:
		h.createRoutine(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
	}
}

// routineSubtree handles /api/routines/{id} and /api/routines/{id}/activities.
func (h *Handler) routineSubtree(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/routines/")
	parts := strings.Split(rest, "/")

	switch {
	case len(parts) == 1 && parts[0] != "":
		h.routineByID(w, r, parts[0])
	case len(parts) == 2 && parts[0] != "" && parts[1] == "activities":
		h.routineActivities(w, r, parts[0])
	default:
		writeError(w, http.StatusNotFound, "not_found", "unknown path")
	}
}

func (h *Handler) listRoutines(w http.ResponseWriter, r *http.Request) {
	routines, err := h.routines.List(r.Context(), viewerID(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, toRoutineViews(routines))
}

func (h *Handler) createRoutine(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var req CreateRoutineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "validation_failed", "name is required")
		return
	}

	routine, err := h.routines.Create(r.Context(), claims.UserID, req.Name, req.Goal, req.IsPublic)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toRoutineView(*routine))
}

func (h *Handler) routineByID(w http.ResponseWriter, r *http.Request, id string) {
	switch r.Method {
	case http.MethodGet:
		h.getRoutine(w, r, id)
	case http.MethodPatch:
		h.updateRoutine(w, r, id)
	case http.MethodDelete:
		h.deleteRoutine(w, r, id)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
	}
}

func (h *Handler) getRoutine(w http.ResponseWriter, r *http.Request, id string) {
	routine, err := h.routines.Get(r.Context(), id, viewerID(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toRoutineView(*routine))
}

func (h *Handler) updateRoutine(w http.ResponseWriter, r *http.Request, id string) {
	claims, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var req UpdateRoutineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}

	routine, err := h.routines.Update(r.Context(), id, claims.UserID, domain.UpdateRoutineInput{
		Name:     req.Name,
		Goal:     req.Goal,
		IsPublic: req.IsPublic,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toRoutineView(*routine))
}

func (h *Handler) deleteRoutine(w http.ResponseWriter, r *http.Request, id string) {
	claims, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	routine, err := h.routines.Delete(r.Context(), id, claims.UserID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toRoutineView(*routine))
}

// routineActivities handles GET and POST on /api/routines/{id}/activities.
func (h *Handler) routineActivities(w http.ResponseWriter, r *http.Request, routineID string) {
	switch r.Method {
	case http.MethodGet:
		h.listRoutineActivities(w, r, routineID)
	case http.MethodPost:
		h.attachActivity(w, r, routineID)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
	}
}

func (h *Handler) listRoutineActivities(w http.ResponseWriter, r *http.Request, routineID string) {
	links, err := h.compositions.ListForRoutine(r.Context(), routineID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	views := make([]RoutineActivityView, 0, len(links))
	for _, ra := range links {
		views = append(views, toRoutineActivityView(ra))
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *Handler) attachActivity(w http.ResponseWriter, r *http.Request, routineID string) {
	claims, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var req AttachActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}
	if strings.TrimSpace(req.ActivityID) == "" {
		writeError(w, http.StatusBadRequest, "validation_failed", "activity_id is required")
		return
	}

	ra, err := h.compositions.Attach(r.Context(), routineID, req.ActivityID, req.Duration, req.Count, claims.UserID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toRoutineActivityView(*ra))
}
