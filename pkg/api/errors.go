package api

import (
	"errors"
	"fmt"
)

// ErrInvalidURL matches every InvalidURLError via errors.Is.
var ErrInvalidURL = errors.New("invalid GitHub repository URL")

// InvalidURLError reports user input that is malformed or not a GitHub
// repository. No request is sent for it.
type InvalidURLError struct {
	Input  string
	Reason string
}

func (e *InvalidURLError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%s: %q", ErrInvalidURL, e.Input)
	}
	return fmt.Sprintf("%s: %q: %s", ErrInvalidURL, e.Input, e.Reason)
}

func (e *InvalidURLError) Is(target error) bool { return target == ErrInvalidURL }

// GenerationError is any failed call to the remote service. Transport errors,
// timeouts and non-2xx answers all collapse into it; Status is 0 when no
// response arrived.
type GenerationError struct {
	Kind   Kind
	Status int
	Err    error
}

func (e *GenerationError) Error() string {
	msg := fmt.Sprintf("failed to generate %s", e.Kind)
	if e.Status != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.Status)
	}
	if e.Err != nil {
		msg = msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *GenerationError) Unwrap() error { return e.Err }
