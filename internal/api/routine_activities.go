package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/Harclay/FitnessTrackerBackend/internal/domain"
)

// UpdateRoutineActivityRequest is the payload for PATCH /api/routine_activities/{id}.
type UpdateRoutineActivityRequest struct {
	Duration *int `json:"duration"`
	Count    *int `json:"count"`
}

func (h *Handler) routineActivityByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/routine_activities/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusNotFound, "not_found", "unknown path")
		return
	}

	switch r.Method {
	case http.MethodPatch:
		h.updateRoutineActivity(w, r, id)
	case http.MethodDelete:
		h.deleteRoutineActivity(w, r, id)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
	}
}

func (h *Handler) updateRoutineActivity(w http.ResponseWriter, r *http.Request, id string) {
	claims, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var req UpdateRoutineActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}

	ra, err := h.compositions.Update(r.Context(), id, claims.UserID, domain.UpdateCompositionInput{
		Duration: req.Duration,
		Count:    req.Count,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toRoutineActivityView(*ra))
}

func (h *Handler) deleteRoutineActivity(w http.ResponseWriter, r *http.Request, id string) {
	claims, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	ra, err := h.compositions.Delete(r.Context(), id, claims.UserID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toRoutineActivityView(*ra))
}
