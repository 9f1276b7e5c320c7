package transcript

import (
	"fmt"
	"strings"
)

// ErrorKind classifies why a transcript could not be fetched.
type ErrorKind int

const (
	// KindUnknown covers unexpected failures (I/O, tooling, parsing).
	KindUnknown ErrorKind = iota

	// KindUnavailable means the content has no transcript at all.
	KindUnavailable

	// KindNoMatchingLanguage means transcripts exist, but none in the
	// requested languages. Error.Languages lists what is available.
	KindNoMatchingLanguage
)

func (k ErrorKind) String() string {
	switch k {
	case KindUnavailable:
		return "unavailable"
	case KindNoMatchingLanguage:
		return "no_matching_language"
	default:
		return "unknown"
	}
}

// Error is the structured failure of a Source.
type Error struct {
	Kind      ErrorKind
	Languages []string
	Err       error
}

func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "transcript: %s", e.Kind)
	if len(e.Languages) > 0 {
		fmt.Fprintf(&b, " (available: %s)", strings.Join(e.Languages, ", "))
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// NewError builds a classified Error.
func NewError(kind ErrorKind, cause error) *Error {
	return &Error{Kind: kind, Err: cause}
}
