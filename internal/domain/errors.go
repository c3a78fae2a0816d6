// Package domain holds quoteboard's entities, the content addressing rules
// and the error taxonomy shared by every layer. Errors here describe what
// went wrong in domain terms; adapters decide what that means on the wire.
package domain

import (
	"context"
	"errors"
	"fmt"
)

// Sentinels, one per failure kind. Every typed error below unwraps to
// exactly one of them, so callers branch with errors.Is or the Is helpers.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrValidation   = errors.New("validation failed")
	ErrForbidden    = errors.New("forbidden")
	ErrUnauthorized = errors.New("unauthorized")
	ErrUnavailable  = errors.New("unavailable")
	ErrStorage      = errors.New("storage failure")
)

// NotFoundError reports a missing quote or user. ID is empty when the
// lookup was not by identifier, as with the random or latest quote.
type NotFoundError struct {
	Entity string
	ID     string
}

func NewNotFoundError(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return e.Entity + " not found"
	}

	return fmt.Sprintf("%s with id %q not found", e.Entity, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// ConflictError reports a write that collides with existing state, such as
// a duplicate quote ID or an already registered email.
type ConflictError struct {
	Entity string
	Reason string
}

func NewConflictError(entity, reason string) error {
	return &ConflictError{Entity: entity, Reason: reason}
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s conflict: %s", e.Entity, e.Reason)
}

func (e *ConflictError) Unwrap() error { return ErrConflict }

// ValidationError reports bad input. Field is the request field at fault,
// empty when the problem is not tied to one. Value, when set, is the
// rejected input and is never echoed to clients.
type ValidationError struct {
	Field   string
	Message string
	Value   any
}

func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

func NewValidationErrorWithValue(field, message string, value any) error {
	return &ValidationError{Field: field, Message: message, Value: value}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation failed: " + e.Message
	}

	return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// ForbiddenError reports an authenticated caller attempting something its
// role or account state does not allow.
type ForbiddenError struct {
	Operation string
	Reason    string
}

func NewForbiddenError(operation, reason string) error {
	return &ForbiddenError{Operation: operation, Reason: reason}
}

func (e *ForbiddenError) Error() string {
	msg := fmt.Sprintf("operation %q forbidden", e.Operation)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}

	return msg
}

func (e *ForbiddenError) Unwrap() error { return ErrForbidden }

// UnauthorizedError means no credential on the request resolved to an
// identity. It never carries partial identity information.
type UnauthorizedError struct {
	Reason string
}

func NewUnauthorizedError(reason string) error {
	return &UnauthorizedError{Reason: reason}
}

func (e *UnauthorizedError) Error() string {
	if e.Reason == "" {
		return "unauthorized"
	}

	return "unauthorized: " + e.Reason
}

func (e *UnauthorizedError) Unwrap() error { return ErrUnauthorized }

// StorageError wraps a failure of the backing database. Only the cause's
// message is kept, so driver error types never cross the store boundary.
// Context cancellation and deadlines are the exception: they stay
// reachable through errors.Is so callers can tell a timeout from an outage.
type StorageError struct {
	Op      string
	Message string

	ctxErr error
}

// NewStorageError builds the StorageError for op from cause.
func NewStorageError(op string, cause error) error {
	e := &StorageError{Op: op, Message: "unknown failure"}
	if cause == nil {
		return e
	}

	e.Message = cause.Error()

	switch {
	case errors.Is(cause, context.DeadlineExceeded):
		e.ctxErr = context.DeadlineExceeded
	case errors.Is(cause, context.Canceled):
		e.ctxErr = context.Canceled
	}

	return e
}

func (e *StorageError) Error() string {
	if e.Op == "" {
		return "storage: " + e.Message
	}

	return fmt.Sprintf("storage %s: %s", e.Op, e.Message)
}

func (e *StorageError) Unwrap() []error {
	if e.ctxErr != nil {
		return []error{ErrStorage, e.ctxErr}
	}

	return []error{ErrStorage}
}

// UnavailableError reports an external dependency, in practice the
// identity provider's key set, that could not be reached.
type UnavailableError struct {
	Service string
	Reason  string
}

func NewUnavailableError(service, reason string) error {
	return &UnavailableError{Service: service, Reason: reason}
}

func (e *UnavailableError) Error() string {
	msg := fmt.Sprintf("service %q unavailable", e.Service)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}

	return msg
}

func (e *UnavailableError) Unwrap() error { return ErrUnavailable }

func IsNotFound(err error) bool     { return errors.Is(err, ErrNotFound) }
func IsConflict(err error) bool     { return errors.Is(err, ErrConflict) }
func IsValidation(err error) bool   { return errors.Is(err, ErrValidation) }
func IsForbidden(err error) bool    { return errors.Is(err, ErrForbidden) }
func IsUnauthorized(err error) bool { return errors.Is(err, ErrUnauthorized) }
func IsUnavailable(err error) bool  { return errors.Is(err, ErrUnavailable) }
func IsStorage(err error) bool      { return errors.Is(err, ErrStorage) }
