package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/xtding233/bowling-backend/internal/bowling"
	"github.com/xtding233/bowling-backend/internal/store"
)

type errorBody struct {
	Error  string `json:"error"`
	Reason string `json:"reason,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, reason, msg string) {
	writeJSON(w, status, errorBody{Error: msg, Reason: reason})
}

// isRejection reports whether err is an engine rejection of user input.
func isRejection(err error) bool {
	for _, target := range []error{
		bowling.ErrRollOutOfRange,
		bowling.ErrTooManyPins,
		bowling.ErrNoSuchRoll,
		bowling.ErrBadFrame,
		bowling.ErrGameOver,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// writeFailure maps err onto a status: engine rejections are 422, unknown
// sessions 404, anything else 500.
func writeFailure(w http.ResponseWriter, err error) {
	switch {
	case isRejection(err):
		writeError(w, http.StatusUnprocessableEntity, bowling.Reason(err), err.Error())
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal", "internal error")
	}
}

// decode reads a JSON body, rejecting unknown fields.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid JSON body: "+err.Error())
		return false
	}
	return true
}
