package eventflow

import (
	"errors"
	"fmt"
)

// Sentinel errors for declaration handling.
var (
	// ErrMalformedDescriptor indicates an emit or listen field that is neither
	// absent, a string, nor a list of strings.
	ErrMalformedDescriptor = errors.New("malformed descriptor")

	// ErrMissingOwnerID indicates a descriptor without an owner id.
	ErrMissingOwnerID = errors.New("owner id is required")
)

// DescriptorError wraps a normalization failure with descriptor context.
type DescriptorError struct {
	// OwnerID is the handler whose descriptor is malformed.
	OwnerID string
	// Field is the offending field ("emit" or "listen").
	Field string
	// Value is the rejected value.
	Value any
	// Err is the normalization failure. It wraps ErrMalformedDescriptor.
	Err error
}

// Error implements the error interface.
func (e *DescriptorError) Error() string {
	owner := e.OwnerID
	if owner == "" {
		owner = "<unknown>"
	}
	if e.Err != nil {
		return fmt.Sprintf("descriptor %s: %s: %v", owner, e.Field, e.Err)
	}
	return fmt.Sprintf("descriptor %s: %s: unsupported value of type %T", owner, e.Field, e.Value)
}

// Unwrap returns the normalization failure, or ErrMalformedDescriptor
// when none was recorded.
func (e *DescriptorError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrMalformedDescriptor
}
