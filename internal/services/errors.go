package services

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/yungbote/cablehouse-backend/internal/domain"
	"github.com/yungbote/cablehouse-backend/internal/platform/apierr"
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("version conflict")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrStorageDisabled    = errors.New("backup storage not configured")
)

func validationErr(format string, args ...any) error {
	return apierr.New(http.StatusBadRequest, "validation_error", fmt.Errorf("%w: "+format, append([]any{ErrValidation}, args...)...))
}

func notFoundErr(what string) error {
	return apierr.New(http.StatusNotFound, "not_found", fmt.Errorf("%s %w", what, ErrNotFound))
}

func conflictErr(format string, args ...any) error {
	return apierr.New(http.StatusConflict, "conflict", fmt.Errorf("%w: "+format, append([]any{ErrConflict}, args...)...))
}

// transitionErr classifies a domain transition failure.
func transitionErr(err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidTransition):
		return apierr.New(http.StatusConflict, "invalid_transition", err)
	case errors.Is(err, domain.ErrInvalidStatus):
		return apierr.New(http.StatusBadRequest, "validation_error", err)
	default:
		return err
	}
}
