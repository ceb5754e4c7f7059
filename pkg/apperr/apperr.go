// Package apperr defines the error taxonomy returned by the data layer.
// Every error is detected at the boundary of a single create/update/delete
// and is deterministic, so none of them is retried.
package apperr

import (
	"errors"
	"fmt"
)

// Sentinel errors matched with errors.Is.
var (
	ErrValidation           = errors.New("validation error")
	ErrReferentialIntegrity = errors.New("referential integrity error")
	ErrUniqueness           = errors.New("uniqueness violation")
	ErrNotFound             = errors.New("not found")
	ErrAuthorization        = errors.New("authorization error")
)

// ValidationError reports a field value that fails its type, length or choice constraint.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation error: %s", e.Message)
	}
	return fmt.Sprintf("validation error on field %q: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// ReferentialIntegrityError reports a reference to a row that does not exist.
type ReferentialIntegrityError struct {
	Entity    string
	Field     string
	RefEntity string
	RefID     interface{}
}

func (e *ReferentialIntegrityError) Error() string {
	return fmt.Sprintf("%s.%s references missing %s id=%v", e.Entity, e.Field, e.RefEntity, e.RefID)
}

func (e *ReferentialIntegrityError) Unwrap() error { return ErrReferentialIntegrity }

// UniquenessViolation reports a natural key collision.
type UniquenessViolation struct {
	Entity string
	Field  string
	Value  interface{}
}

func (e *UniquenessViolation) Error() string {
	return fmt.Sprintf("%s with %s=%v already exists", e.Entity, e.Field, e.Value)
}

func (e *UniquenessViolation) Unwrap() error { return ErrUniqueness }

// NotFoundError reports a lookup by identifier that found no row.
type NotFoundError struct {
	Entity string
	ID     interface{}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s id=%v not found", e.Entity, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// AuthorizationError reports a caller lacking permission for the operation.
type AuthorizationError struct {
	Reason string
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("unauthorized: %s", e.Reason)
}

func (e *AuthorizationError) Unwrap() error { return ErrAuthorization }

// Validation builds a ValidationError for field.
func Validation(field, format string, args ...interface{}) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// NotFound builds a NotFoundError.
func NotFound(entity string, id interface{}) error {
	return &NotFoundError{Entity: entity, ID: id}
}
