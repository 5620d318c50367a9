package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/nerrad567/bakery-core/internal/bakery"
)

// missingFieldsMessage is the client-facing text for bakery.ErrMissingFields.
const missingFieldsMessage = "Missing required fields"

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the body of responses that carry only a message.
type MessageResponse struct {
	Message string `json:"message"`
}

// writeJSON writes a JSON response with the given status code and payload.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		//nolint:errcheck // Best-effort write to response; connection may be closed
		json.NewEncoder(w).Encode(v)
	}
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}

// writeBadRequest writes a 400 error response.
func writeBadRequest(w http.ResponseWriter, message string) {
	writeError(w, http.StatusBadRequest, message)
}

// writeNotFound writes a 404 error response.
func writeNotFound(w http.ResponseWriter, message string) {
	writeError(w, http.StatusNotFound, message)
}

// writeInternalError writes a 500 error response.
func writeInternalError(w http.ResponseWriter, message string) {
	writeError(w, http.StatusInternalServerError, message)
}

// writeDomainError maps a bakery package error to a response.
// Unrecognised errors are logged and reported as 500 without detail.
func (s *Server) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, bakery.ErrBakeryNotFound), errors.Is(err, bakery.ErrBakedGoodNotFound):
		writeNotFound(w, notFoundMessage(err))
	case errors.Is(err, bakery.ErrMissingFields):
		writeBadRequest(w, missingFieldsMessage)
	case isValidationError(err):
		writeBadRequest(w, err.Error())
	default:
		s.logger.Error("request failed",
			"error", err,
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", r.Context().Value(ctxKeyRequestID),
		)
		writeInternalError(w, "internal server error")
	}
}

// isValidationError reports whether err is a client input error.
func isValidationError(err error) bool {
	return errors.Is(err, bakery.ErrMissingFields) ||
		errors.Is(err, bakery.ErrInvalidPrice) ||
		errors.Is(err, bakery.ErrInvalidBakeryID) ||
		errors.Is(err, bakery.ErrInvalidName) ||
		errors.Is(err, bakery.ErrImmutableField) ||
		errors.Is(err, bakery.ErrUnknownBakery)
}

func notFoundMessage(err error) string {
	if errors.Is(err, bakery.ErrBakedGoodNotFound) {
		return bakery.ErrBakedGoodNotFound.Error()
	}
	return bakery.ErrBakeryNotFound.Error()
}
