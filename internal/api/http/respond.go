package http

import (
	"encoding/json"
	"net/http"

	"venuebook-backend/internal/domain"
	"venuebook-backend/internal/logger"
)

type errorBody struct {
	Error struct {
		Kind    string `json:"kind"`
		Message string `json:"message"`
	} `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

// writeError maps a domain error kind onto an HTTP status. Anything that is
// not a domain error is a 500 with a generic body; the detail goes to the log.
func writeError(w http.ResponseWriter, err error) {
	kind := domain.KindOf(err)

	var status int
	message := err.Error()
	switch kind {
	case domain.KindValidation:
		status = http.StatusBadRequest
	case domain.KindAuthentication:
		status = http.StatusUnauthorized
	case domain.KindAuthorization:
		status = http.StatusForbidden
	case domain.KindNotFound:
		status = http.StatusNotFound
	case domain.KindInvalidState, domain.KindConflict:
		status = http.StatusConflict
	case domain.KindForbiddenField:
		status = http.StatusUnprocessableEntity
	default:
		logger.Error("Unhandled error in request", "error", err)
		status = http.StatusInternalServerError
		kind = "INTERNAL"
		message = "internal server error"
	}

	var body errorBody
	body.Error.Kind = string(kind)
	body.Error.Message = message
	writeJSON(w, status, body)
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, domain.ValidationError("invalid request body: %v", err))
		return false
	}
	return true
}
