package service

import (
	"errors"
	"fmt"
)

// ErrContentNotFound is the single not-found outcome of path resolution.
// Bad slugs, unknown ids, scheduled content and missing sections all map to it.
var ErrContentNotFound = errors.New("content not found")

// ErrPathReserved means the first segment belongs to a system route.
var ErrPathReserved = errors.New("path is reserved")

// RedirectRequiredError asks the caller to redirect to the canonical location.
type RedirectRequiredError struct {
	Location  string
	Permanent bool
}

func (e *RedirectRequiredError) Error() string {
	return fmt.Sprintf("redirect required: %s", e.Location)
}

// StatusCode returns 301 for permanent redirects and 302 otherwise
func (e *RedirectRequiredError) StatusCode() int {
	if e.Permanent {
		return 301
	}
	return 302
}

// ValidationError reports malformed request input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func permanentRedirect(location string) error {
	return &RedirectRequiredError{Location: location, Permanent: true}
}

// AsRedirect unwraps a RedirectRequiredError
func AsRedirect(err error) (*RedirectRequiredError, bool) {
	var redirect *RedirectRequiredError
	if errors.As(err, &redirect) {
		return redirect, true
	}
	return nil, false
}

// AsValidation unwraps a ValidationError
func AsValidation(err error) (*ValidationError, bool) {
	var validation *ValidationError
	if errors.As(err, &validation) {
		return validation, true
	}
	return nil, false
}
