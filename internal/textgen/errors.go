package textgen

import (
	"context"
	"errors"
	"fmt"
)

// ErrorKind classifies a failed generation call. Only RateLimited and Timeout
// are worth retrying; the rest fail immediately.
type ErrorKind int

const (
	KindServiceError ErrorKind = iota
	KindRateLimited
	KindTimeout
	KindInvalidRequest
)

func (k ErrorKind) String() string {
	switch k {
	case KindRateLimited:
		return "rate_limited"
	case KindTimeout:
		return "timeout"
	case KindInvalidRequest:
		return "invalid_request"
	default:
		return "service_error"
	}
}

// Error wraps a backend failure with its classification.
type Error struct {
	Kind ErrorKind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("textgen: %s", e.Kind)
	}
	return fmt.Sprintf("textgen: %s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// NewError builds a classified Error wrapping cause.
func NewError(kind ErrorKind, cause error) *Error {
	return &Error{Kind: kind, Err: cause}
}

// KindOf extracts the classification from err. Context deadline expiry counts
// as a timeout even when the backend did not wrap it.
func KindOf(err error) ErrorKind {
	var te *Error
	if errors.As(err, &te) {
		return te.Kind
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	return KindServiceError
}

// Transient reports whether err is worth retrying.
func Transient(err error) bool {
	switch KindOf(err) {
	case KindRateLimited, KindTimeout:
		return true
	default:
		return false
	}
}
