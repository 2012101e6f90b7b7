package service

import (
	"errors"
	"fmt"
	"strings"
)

// Business-rule rejections. Returned as values, never panicked; the
// handler layer decides presentation.
var (
	ErrNoActiveSession    = errors.New("no active student session")
	ErrInsufficientPoints = errors.New("insufficient points")
	ErrOutOfStock         = errors.New("prize out of stock")
	ErrStudentNotFound    = errors.New("student not found")
	ErrPrizeNotFound      = errors.New("prize not found")
)

// ValidationError reports missing or malformed admin-entry fields.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid fields: %s", strings.Join(e.Fields, ", "))
}

// NewValidationError creates a ValidationError for the given fields.
func NewValidationError(fields ...string) *ValidationError {
	return &ValidationError{Fields: fields}
}
