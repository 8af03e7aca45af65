package domain

import (
	"errors"
	"fmt"
)

// The services classify every failure into one of three kinds so the
// handlers can map them to status codes without inspecting messages:
// NotFoundError (target absent), ValidationError (malformed input or a
// dangling/self parent or category reference), ConflictError (duplicate
// natural key, or a delete blocked by dependents). Anything else is a
// store error and propagates unchanged.

type NotFoundError struct {
	Resource string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

type ValidationError struct {
	Message string
}

func (e ValidationError) Error() string {
	return e.Message
}

type ConflictError struct {
	Message string
}

func (e ConflictError) Error() string {
	return e.Message
}

func NotFound(resource string) error {
	return NotFoundError{Resource: resource}
}

func Invalid(format string, args ...any) error {
	return ValidationError{Message: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...any) error {
	return ConflictError{Message: fmt.Sprintf(format, args...)}
}

func IsNotFound(err error) bool {
	var e NotFoundError
	return errors.As(err, &e)
}

func IsValidation(err error) bool {
	var e ValidationError
	return errors.As(err, &e)
}

func IsConflict(err error) bool {
	var e ConflictError
	return errors.As(err, &e)
}
