package admin

import "fmt"

// ErrInvalidRequest indicates the bootstrap request failed validation.
type ErrInvalidRequest struct {
	Cause error
}

func (e *ErrInvalidRequest) Error() string {
	return fmt.Sprintf("invalid admin request: %v", e.Cause)
}

func (e *ErrInvalidRequest) Unwrap() error {
	return e.Cause
}

// ErrPasswordUnsupported indicates a password was supplied without a password configuration.
type ErrPasswordUnsupported struct{}

func (e *ErrPasswordUnsupported) Error() string {
	return "password supplied but password hashing is not configured"
}
