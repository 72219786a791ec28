package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"LoreKeeper/internal/lifecycle"
	"LoreKeeper/internal/middleware"
	"LoreKeeper/internal/service"
)

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}

// requireUser rejects anonymous requests and returns the user id otherwise.
func requireUser(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
	}
	return userID, ok
}

// writeServiceError maps domain errors to HTTP statuses. Rule violations
// (linking a character, double-concluding, editing a completed session) are
// conflicts the client can show as a warning, never 5xx.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound), errors.Is(err, lifecycle.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, service.ErrBadInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, lifecycle.ErrCharacterItem),
		errors.Is(err, lifecycle.ErrItemArchived),
		errors.Is(err, lifecycle.ErrItemBusy),
		errors.Is(err, lifecycle.ErrItemNotLinked),
		errors.Is(err, lifecycle.ErrSessionCompleted):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
