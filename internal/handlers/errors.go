package handlers

import (
	"errors"
	"net/http"

	"birthday-tracker-api/internal/models"
	"birthday-tracker-api/internal/repositories"
	"birthday-tracker-api/internal/services"
)

// ErrMalformedInput is returned when the request body is not a JSON object
// with the expected field types
var ErrMalformedInput = errors.New("invalid JSON payload")

// Client-facing error messages
const (
	msgInternal         = "Internal server error"
	msgNotFound         = "Record not found"
	msgMethodNotAllowed = "Method not allowed"
)

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// ValidationErrorResponse lists every validation problem of a payload
type ValidationErrorResponse struct {
	Errors []string `json:"errors"`
}

// MessageResponse acknowledges a successful write
type MessageResponse struct {
	Message string `json:"message"`
	ID      *int64 `json:"id,omitempty"`
}

// errorStatus maps a service error to a status code and body. Unknown
// errors become a generic 500 so no internals leak to the client.
func errorStatus(err error) (int, interface{}) {
	var validationErr *models.ValidationError
	var missingID *services.MissingIDError

	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest, ValidationErrorResponse{Errors: validationErr.Messages}
	case errors.As(err, &missingID):
		return http.StatusBadRequest, ErrorResponse{Error: missingID.Error()}
	case errors.Is(err, ErrMalformedInput):
		return http.StatusBadRequest, ErrorResponse{Error: ErrMalformedInput.Error()}
	case repositories.IsNotFound(err):
		return http.StatusNotFound, ErrorResponse{Error: msgNotFound}
	default:
		return http.StatusInternalServerError, ErrorResponse{Error: msgInternal}
	}
}
