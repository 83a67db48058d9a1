package application

import (
	"errors"

	"github.com/farmstack/farm-api/internal/domain/repository"
)

// Service-level error taxonomy. Handlers translate these into HTTP statuses;
// auth failures are always surfaced as the same "invalid credentials"
// message so callers cannot tell which check failed.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrInsufficientStock  = errors.New("insufficient stock")
)

// fromRepo maps repository sentinels onto service errors.
func fromRepo(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, repository.ErrConflict):
		return ErrConflict
	case errors.Is(err, repository.ErrInsufficientStock):
		return ErrInsufficientStock
	case errors.Is(err, repository.ErrStaleStatus):
		return ErrInvalidTransition
	default:
		return err
	}
}
