package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/Harclay/FitnessTrackerBackend/internal/auth"
	"github.com/Harclay/FitnessTrackerBackend/internal/domain"
	"github.com/Harclay/FitnessTrackerBackend/internal/observability"
)

// RegisterRequest is the payload for POST /api/users/register.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginRequest is the payload for POST /api/users/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}

	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}
	if strings.TrimSpace(req.Username) == "" {
		writeError(w, http.StatusBadRequest, "validation_failed", "username is required")
		return
	}

	user, err := h.identity.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	token, err := auth.Issue(user.ID, user.Username, h.tokens)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error", err.Error())
		return
	}

	observability.RecordRegistration()
	writeJSON(w, http.StatusCreated, AuthResponse{User: toUserView(*user), Token: token})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}

	user, err := h.identity.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		observability.RecordLogin("failure")
		writeDomainError(w, err)
		return
	}

	token, err := auth.Issue(user.ID, user.Username, h.tokens)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error", err.Error())
		return
	}

	observability.RecordLogin("success")
	writeJSON(w, http.StatusOK, AuthResponse{User: toUserView(*user), Token: token})
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}

	claims, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	user, err := h.identity.GetByID(r.Context(), claims.UserID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserView(*user))
}

// userSubtree handles GET /api/users/{username}/routines.
func (h *Handler) userSubtree(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/users/")
	parts := strings.Split(rest, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] != "routines" {
		writeError(w, http.StatusNotFound, "not_found", "unknown path")
		return
	}
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}

	h.routinesForUser(w, r, parts[0])
}

func (h *Handler) routinesForUser(w http.ResponseWriter, r *http.Request, username string) {
	user, err := h.identity.GetByUsername(r.Context(), username)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	asOwner := domain.CanModify(viewerID(r), user.ID)
	routines, err := h.routines.ForUser(r.Context(), user.ID, asOwner)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toRoutineViews(routines))
}
