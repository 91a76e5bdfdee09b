package apperror

import (
	"errors"
	"fmt"
)

// ProviderErrorKind classifies failures of an external capability
// (language model, embedding model or similarity index).
type ProviderErrorKind string

const (
	KindTimeout       ProviderErrorKind = "Timeout"
	KindRateLimited   ProviderErrorKind = "RateLimited"
	KindSafetyBlocked ProviderErrorKind = "SafetyBlocked"
	KindUnknown       ProviderErrorKind = "Unknown"
)

// ValidationError is returned for malformed input, before any external call.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation failed: " + e.Message
	}
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// ProviderError wraps a capability failure. Stage is optional and names the
// pipeline step or service step that was running.
type ProviderError struct {
	Kind  ProviderErrorKind
	Stage string
	Err   error
}

func (e *ProviderError) Error() string {
	msg := fmt.Sprintf("provider error (%s)", e.Kind)
	if e.Stage != "" {
		msg += " at stage " + e.Stage
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ProviderError) Unwrap() error { return e.Err }

func NewProviderError(kind ProviderErrorKind, err error) *ProviderError {
	return &ProviderError{Kind: kind, Err: err}
}

// PersistenceError wraps a store read or write failure.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence error during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func NewPersistenceError(op string, err error) *PersistenceError {
	return &PersistenceError{Op: op, Err: err}
}

// NotFoundError reports a referenced entity that does not exist or is not
// visible to the caller.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// AsProvider wraps err into a ProviderError unless it already is one.
// The stage is attached when the existing error has none.
func AsProvider(stage string, err error) *ProviderError {
	if err == nil {
		return nil
	}
	var pe *ProviderError
	if errors.As(err, &pe) {
		if pe.Stage == "" {
			return &ProviderError{Kind: pe.Kind, Stage: stage, Err: pe.Err}
		}
		return pe
	}
	return &ProviderError{Kind: KindUnknown, Stage: stage, Err: err}
}

func IsValidation(err error) bool {
	var e *ValidationError
	return errors.As(err, &e)
}

func IsNotFound(err error) bool {
	var e *NotFoundError
	return errors.As(err, &e)
}

func IsPersistence(err error) bool {
	var e *PersistenceError
	return errors.As(err, &e)
}

func IsProvider(err error) bool {
	var e *ProviderError
	return errors.As(err, &e)
}
