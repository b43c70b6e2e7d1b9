// internal/services/errors.go
package services

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/freshcart/freshcart-backend/internal/i18n"
	"github.com/freshcart/freshcart-backend/internal/repository"
	"github.com/freshcart/freshcart-backend/internal/utils"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrForbidden  = errors.New("forbidden")
	ErrValidation = errors.New("validation failed")
	ErrInvalidID  = errors.New("invalid id")
)

// Error pairs one of the sentinels above with the message key shown to the
// client and, for validation failures, the offending fields.
type Error struct {
	Kind    error
	Key     string
	Details []utils.ValidationError
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Key)
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func notFound(key string) error {
	return &Error{Kind: ErrNotFound, Key: key}
}

func conflict(key string) error {
	return &Error{Kind: ErrConflict, Key: key}
}

func forbidden() error {
	return &Error{Kind: ErrForbidden, Key: i18n.KeyAuthForbidden}
}

func invalid(key string) error {
	return &Error{Kind: ErrValidation, Key: key}
}

// validateRequest runs the struct tags and turns failures into a 400 with field details.
func validateRequest(req interface{}) error {
	if err := utils.ValidateStruct(req); err != nil {
		details := utils.GetValidationErrors(err)
		if len(details) == 0 {
			return fmt.Errorf("failed to validate request: %w", err)
		}
		return &Error{Kind: ErrValidation, Key: i18n.KeyValidationInvalid, Details: details}
	}
	return nil
}

func parseObjectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, &Error{Kind: ErrInvalidID, Key: i18n.KeyValidationID}
	}
	return oid, nil
}

// storeError maps repository sentinels onto service errors for one resource.
func storeError(op string, err error, notFoundKey, conflictKey string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return notFound(notFoundKey)
	case errors.Is(err, repository.ErrDuplicate):
		return conflict(conflictKey)
	default:
		return fmt.Errorf("failed to %s: %w", op, err)
	}
}
