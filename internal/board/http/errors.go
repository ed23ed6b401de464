package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/hollyburn/noteboard/internal/board/service"
	"github.com/hollyburn/noteboard/pkg/httpx"
	"github.com/hollyburn/noteboard/pkg/slogx"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// writeServiceError maps the service error taxonomy onto HTTP statuses.
// Anything unmapped is a 500 with no detail leaked.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var code string
	var status int

	switch {
	case errors.Is(err, service.ErrValidationFailed):
		code, status = "validation_failed", http.StatusBadRequest
	case errors.Is(err, service.ErrPasswordTooShort):
		code, status = "password_too_short", http.StatusBadRequest
	case errors.Is(err, service.ErrDuplicateIdentity):
		code, status = "duplicate_identity", http.StatusConflict
	case errors.Is(err, service.ErrUsernameTaken):
		code, status = "username_taken", http.StatusConflict
	case errors.Is(err, service.ErrInvalidCredentials):
		code, status = "invalid_credentials", http.StatusUnauthorized
	case errors.Is(err, service.ErrUnauthenticated):
		code, status = "unauthenticated", http.StatusUnauthorized
	case errors.Is(err, service.ErrForbidden):
		code, status = "forbidden", http.StatusForbidden
	case errors.Is(err, service.ErrProtectedAccount):
		code, status = "protected_account", http.StatusForbidden
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrNoteNotFound),
		errors.Is(err, service.ErrParentNotFound):
		code, status = "not_found", http.StatusNotFound
	default:
		slogx.FromContext(r.Context()).Error("unhandled service error", "err", err)
		code, status = "internal_error", http.StatusInternalServerError
		httpx.WriteJSON(w, status, ErrorResponse{Error: code, Message: "internal server error"})
		return
	}

	httpx.WriteJSON(w, status, ErrorResponse{Error: code, Message: err.Error()})
}

const maxBodyBytes = 1 << 20

// readJSON decodes the request body into v, rejecting unknown fields and
// oversized bodies. A false return means the response has been written.
func readJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "bad_request",
			Message: "malformed JSON body",
		})
		return false
	}
	return true
}
