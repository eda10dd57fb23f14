package repository

import (
	"errors"
	"fmt"
)

// Domain-level errors surfaced by the repositories. The handler layer maps
// these onto HTTP status codes; nothing here knows about HTTP.
var (
	ErrNotFound          = errors.New("record not found")
	ErrDuplicateEmail    = errors.New("a tenant with this email already exists")
	ErrLeaseOverlap      = errors.New("this property already has an active or upcoming lease during this period")
	ErrPropertyHasLeases = errors.New("cannot delete property with active or upcoming leases")
	ErrTenantHasLeases   = errors.New("cannot delete tenant with active or upcoming leases")
)

// ValidationError reports a malformed, missing or out-of-range input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

func invalidf(field, format string, args ...interface{}) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}
