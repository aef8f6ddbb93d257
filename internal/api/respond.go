package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Harclay/FitnessTrackerBackend/internal/domain"
	"github.com/Harclay/FitnessTrackerBackend/internal/observability"
)

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func writeError(w http.ResponseWriter, status int, code, detail string) {
	payload := map[string]string{
		"type":   code,
		"detail": detail,
	}
	writeJSON(w, status, payload)
}

// writeDomainError maps every error kind to exactly one status code:
// validation 400, bad credentials 401, not-owner 403, missing resource 404,
// uniqueness conflict 409. Anything unrecognized is a 500.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrPasswordTooShort),
		errors.Is(err, domain.ErrNoFieldsGiven):
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
	case errors.Is(err, domain.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "unauthorized", err.Error())
	case errors.Is(err, domain.ErrNotOwner):
		observability.RecordAuthDenied("forbidden")
		writeError(w, http.StatusForbidden, "forbidden", err.Error())
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrActivityNotFound),
		errors.Is(err, domain.ErrRoutineNotFound),
		errors.Is(err, domain.ErrCompositionNotFound):
		writeError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, domain.ErrUsernameTaken),
		errors.Is(err, domain.ErrActivityExists),
		errors.Is(err, domain.ErrRoutineExists),
		errors.Is(err, domain.ErrAlreadyAttached):
		writeError(w, http.StatusConflict, "conflict", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "server_error", err.Error())
	}
}
