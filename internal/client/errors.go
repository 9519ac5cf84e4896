package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrValidation        = errors.New("validation failed")
	ErrImageCapacity     = errors.New("image capacity reached")
	ErrTransport         = errors.New("transport failure")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("version conflict")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrForbidden         = errors.New("forbidden")
)

// APIError is a non-2xx answer from the service, decoded from its error
// envelope. errors.Is matches it against the sentinel for its class.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s (%d %s)", e.Message, e.Status, e.Code)
	}
	return fmt.Sprintf("api error (%d %s)", e.Status, e.Code)
}

func (e *APIError) HTTPStatusCode() int { return e.Status }

func (e *APIError) Is(target error) bool {
	return e.class() == target
}

func (e *APIError) class() error {
	switch {
	case e.Status == http.StatusBadRequest:
		return ErrValidation
	case e.Status == http.StatusUnauthorized:
		return ErrUnauthorized
	case e.Status == http.StatusForbidden:
		return ErrForbidden
	case e.Status == http.StatusNotFound:
		return ErrNotFound
	case e.Status == http.StatusConflict && e.Code == "invalid_transition":
		return ErrInvalidTransition
	case e.Status == http.StatusConflict:
		return ErrConflict
	default:
		return ErrTransport
	}
}
