package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrConflict indicates that the request conflicts with existing state (e.g. an overlapping period).
var ErrConflict = errors.New("conflict with existing resource")

// ErrBusinessRule indicates that the operation is forbidden by the current state of the resource.
var ErrBusinessRule = errors.New("business rule violation")

// ErrUnauthorized indicates a missing or invalid caller identity.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates the caller is known but may not perform the action.
var ErrForbidden = errors.New("forbidden")

// ErrInternal is a generic internal failure.
var ErrInternal = errors.New("internal error")

// AppError carries a structured failure: the kind (one of the sentinels above),
// a human readable message, and the offending field or resource id when known.
type AppError struct {
	Code       int
	Kind       error
	Message    string
	Field      string
	ResourceID string
	Err        error
}

func (e *AppError) Error() string {
	msg := e.Message
	if e.Field != "" {
		msg = fmt.Sprintf("%s: %s", e.Field, msg)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap exposes the underlying cause.
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match an AppError against its kind sentinel.
func (e *AppError) Is(target error) bool {
	return e.Kind != nil && target == e.Kind
}

// NewAppError wraps a lower level failure (typically a store error) with an HTTP-ish code.
func NewAppError(code int, message string, err error) *AppError {
	kind := ErrInternal
	switch code {
	case http.StatusNotFound:
		kind = ErrNotFound
	case http.StatusBadRequest:
		kind = ErrValidation
	case http.StatusConflict:
		kind = ErrConflict
	case http.StatusUnprocessableEntity:
		kind = ErrBusinessRule
	}
	return &AppError{Code: code, Kind: kind, Message: message, Err: err}
}

// NewValidationError reports malformed or missing input for field.
func NewValidationError(field, message string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Kind: ErrValidation, Message: message, Field: field}
}

// NewNotFoundError reports a missing resource.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: http.StatusNotFound, Kind: ErrNotFound, Message: message}
}

// NewResourceNotFoundError reports a missing resource identified by id.
func NewResourceNotFoundError(resource, id string) *AppError {
	return &AppError{
		Code:       http.StatusNotFound,
		Kind:       ErrNotFound,
		Message:    fmt.Sprintf("%s %s not found", resource, id),
		ResourceID: id,
	}
}

// NewConflictError reports a conflict with existing state, optionally naming the conflicting resource.
func NewConflictError(message, conflictingID string) *AppError {
	return &AppError{Code: http.StatusConflict, Kind: ErrConflict, Message: message, ResourceID: conflictingID}
}

// NewBusinessRuleError reports an operation forbidden by the current state of resource id.
func NewBusinessRuleError(message, resourceID string) *AppError {
	return &AppError{Code: http.StatusUnprocessableEntity, Kind: ErrBusinessRule, Message: message, ResourceID: resourceID}
}

// AsAppError extracts the first AppError in err's chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
