package api

import (
	"errors"
	"net/http"

	"photodrive/internal/service"
	"photodrive/internal/store"
)

// APIError represents a structured error response to be sent to the client.
// It implements the standard `error` interface.
type APIError struct {
	// Status is the HTTP status code that corresponds to this error.
	Status int `json:"status"`
	// Message is the user-friendly error message.
	Message string `json:"message"`
}

// Error implements the error interface, allowing APIError to be used as a
// standard error.
func (e *APIError) Error() string {
	return e.Message
}

// --- Error Constructors ---

// NewBadRequestError creates an error representing a 400 Bad Request.
func NewBadRequestError(message string) *APIError {
	return &APIError{
		Status:  http.StatusBadRequest,
		Message: message,
	}
}

// NewUnauthorizedError creates an error representing a 401 Unauthorized.
func NewUnauthorizedError(message string) *APIError {
	return &APIError{
		Status:  http.StatusUnauthorized,
		Message: message,
	}
}

// NewForbiddenError creates an error representing a 403 Forbidden.
func NewForbiddenError(message string) *APIError {
	return &APIError{
		Status:  http.StatusForbidden,
		Message: message,
	}
}

// NewNotFoundError creates an error representing a 404 Not Found.
func NewNotFoundError(message string) *APIError {
	return &APIError{
		Status:  http.StatusNotFound,
		Message: message,
	}
}

// NewConflictError creates an error representing a 409 Conflict.
func NewConflictError(message string) *APIError {
	return &APIError{
		Status:  http.StatusConflict,
		Message: message,
	}
}

// NewInternalServerError creates an error representing a 500 Internal Server
// Error. The message is deliberately generic; detail goes to the log only.
func NewInternalServerError() *APIError {
	return &APIError{
		Status:  http.StatusInternalServerError,
		Message: "An unexpected error occurred. Please try again later.",
	}
}

// --- Error Translation ---

// FromServiceError translates errors from the service/store layer into
// specific APIError values. Handlers stay decoupled from store internals, and
// untranslatable errors degrade to a generic retry-prompting message.
func FromServiceError(err error) *APIError {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return NewNotFoundError("The requested resource could not be found")
	case errors.Is(err, store.ErrConflict):
		return NewConflictError("A conflict occurred with the current state of the resource")
	case errors.Is(err, service.ErrInvalidCredentials):
		return NewUnauthorizedError(err.Error())
	case errors.Is(err, service.ErrWeakPassword):
		return NewBadRequestError(err.Error())
	case errors.Is(err, service.ErrPasscodeMismatch):
		return NewForbiddenError("Incorrect passcode, please try again.")
	case errors.Is(err, service.ErrNotOwner):
		return NewForbiddenError(err.Error())
	}

	return NewInternalServerError()
}
