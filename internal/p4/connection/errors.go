package connection

import (
	"errors"
	"fmt"
)

// ErrMalformedOverride is returned for an override that is not key=value.
var ErrMalformedOverride = errors.New("override must have the form key=value")

// OverrideError is returned when connection overrides cannot be decoded.
type OverrideError struct {
	Cause error
}

func (e *OverrideError) Error() string {
	return fmt.Sprintf("invalid connection override: %v", e.Cause)
}

func (e *OverrideError) Unwrap() error { return e.Cause }

func (e *OverrideError) InvalidInput() bool { return true }
