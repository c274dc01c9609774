package dataset

import (
	"errors"
	"fmt"
)

var (
	// ErrResolution matches any *ResolutionError via errors.Is.
	ErrResolution = errors.New("resolution error")
	// ErrNotFound matches any *NotFoundError via errors.Is.
	ErrNotFound = errors.New("not found")
	// ErrValidation matches any *ValidationError via errors.Is.
	ErrValidation = errors.New("validation error")
)

// ResolutionError reports an address or field that does not resolve
// against the dataset.
type ResolutionError struct {
	Address string
	Token   string
	Reason  string
}

func (e *ResolutionError) Error() string {
	if e.Address == "" && e.Token == "" {
		return fmt.Sprintf("cannot resolve: %s", e.Reason)
	}
	if e.Address == "" {
		return fmt.Sprintf("cannot resolve %q: %s", e.Token, e.Reason)
	}
	return fmt.Sprintf("cannot resolve %q at %q: %s", e.Address, e.Token, e.Reason)
}

func (e *ResolutionError) Is(target error) bool {
	return target == ErrResolution
}

// NotFoundError reports an identifier with no matching record.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ValidationError reports malformed input: a bad address, a value of the
// wrong type, or an out-of-range enumeration.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid input: %s", e.Reason)
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
