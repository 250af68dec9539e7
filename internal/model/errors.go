package model

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrNotFound signals a referenced entity is absent.
	ErrNotFound = errors.New("not found")
	// ErrForbidden signals the actor may not perform the operation.
	// No detail about the reason is attached; handlers surface a generic
	// forbidden outcome.
	ErrForbidden = errors.New("forbidden")
	// ErrEmailTaken signals a case-insensitive email uniqueness violation.
	ErrEmailTaken = errors.New("email already taken")

	ErrTokenRevoked  = errors.New("refresh token revoked")
	ErrTokenExpired  = errors.New("refresh token expired")
	ErrTokenMismatch = errors.New("refresh token mismatch")
)

// ValidationError maps field names to human-readable messages, one per
// violated rule. It is recoverable: the caller re-renders the form with
// the messages and state is left unchanged.
type ValidationError struct {
	Fields map[string][]string
}

// NewValidationError creates an empty ValidationError ready for Add calls.
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: map[string][]string{}}
}

// Add appends a message for a field.
func (e *ValidationError) Add(field, message string) {
	e.Fields[field] = append(e.Fields[field], message)
}

// HasErrors reports whether any message was recorded.
func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

// Error joins all messages in field order.
func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	var msgs []string
	for _, f := range fields {
		msgs = append(msgs, e.Fields[f]...)
	}
	return strings.Join(msgs, "; ")
}

// AsValidationError unwraps err to a *ValidationError if it is one.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
