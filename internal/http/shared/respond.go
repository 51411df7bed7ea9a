// Package shared centralizes the JSON response envelopes used by every
// handler so transport error mapping stays in one place.
package shared

import (
	"encoding/json"
	"errors"
	"net/http"

	"metdesk/pkg/apperrors"
)

// ErrorResponse is the error envelope returned on every non-2xx response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Field   string `json:"field,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// WriteError translates a coded error into its HTTP status and envelope.
// Errors without a code map to 500 with a generic message so internals never
// leak to clients.
func WriteError(w http.ResponseWriter, err error) {
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) {
		WriteJSON(w, http.StatusInternalServerError, ErrorResponse{
			Error:   string(apperrors.CodeInternal),
			Message: "internal error",
		})
		return
	}
	WriteJSON(w, apperrors.ToHTTPStatus(appErr.Code), ErrorResponse{
		Error:   string(appErr.Code),
		Message: appErr.Message,
		Field:   appErr.Field,
	})
}
