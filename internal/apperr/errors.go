package apperr

import (
	"errors"
	"fmt"
)

// NotFoundError means the primary entity referenced by an id does not exist.
type NotFoundError struct {
	Entity string
	ID     int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with id = %d not found", e.Entity, e.ID)
}

// ValidationError means a field-level constraint was violated.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// InvalidReferenceError means a supplied sub-entity id (genre, director, mpa)
// does not exist. Kept distinct from NotFoundError on the primary entity.
type InvalidReferenceError struct {
	Entity string
	ID     int64
}

func (e *InvalidReferenceError) Error() string {
	return fmt.Sprintf("referenced %s with id = %d does not exist", e.Entity, e.ID)
}

func NotFound(entity string, id int64) error {
	return &NotFoundError{Entity: entity, ID: id}
}

func Validation(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

func InvalidReference(entity string, id int64) error {
	return &InvalidReferenceError{Entity: entity, ID: id}
}

func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

func IsInvalidReference(err error) bool {
	var target *InvalidReferenceError
	return errors.As(err, &target)
}
