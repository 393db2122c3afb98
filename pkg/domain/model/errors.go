package model

import (
	"errors"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// Sentinel errors for domain operations
var (
	ErrIncidentNotFound = goerr.New("incident not found")
	ErrIncidentExists   = goerr.New("incident already exists")
	ErrSessionNotFound  = goerr.New("session not found")
	ErrUserNotFound     = goerr.New("user not found")
	ErrForbidden        = goerr.New("operation not allowed for role")
	ErrUnauthenticated  = goerr.New("session is missing, expired or invalid")
)

// ValidationError means the user must correct the listed fields and resubmit.
// It is the only failure a submission can surface.
type ValidationError struct {
	Fields []string
}

// Error implements error
func (e *ValidationError) Error() string {
	return "missing or invalid fields: " + strings.Join(e.Fields, ", ")
}

// fieldChecker accumulates invalid field names
type fieldChecker struct {
	fields []string
}

func (c *fieldChecker) require(ok bool, field string) {
	if !ok {
		c.fields = append(c.fields, field)
	}
}

func (c *fieldChecker) err() error {
	if len(c.fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: c.fields}
}

// AsValidationError extracts a ValidationError from an error chain
func AsValidationError(err error) (*ValidationError, bool) {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return vErr, true
	}
	return nil, false
}
