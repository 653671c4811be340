package schema

import (
	"errors"
	"fmt"
)

// Sentinel errors; match with errors.Is.
var (
	// ErrMissingField is matched by every MissingFieldError.
	ErrMissingField = errors.New("missing required field")

	// ErrInvalidConfig wraps scoring configuration validation failures.
	ErrInvalidConfig = errors.New("invalid scoring config")
)

// MissingFieldError reports a required total that is absent from a record.
type MissingFieldError struct {
	Field        string
	Organization string
}

// Error implements the error interface.
func (e *MissingFieldError) Error() string {
	if e.Organization != "" && e.Organization != UnknownOrganization {
		return fmt.Sprintf("%s: %s (organization %q)", ErrMissingField, e.Field, e.Organization)
	}
	return fmt.Sprintf("%s: %s", ErrMissingField, e.Field)
}

// Is lets errors.Is(err, ErrMissingField) match.
func (e *MissingFieldError) Is(target error) bool {
	return target == ErrMissingField
}
