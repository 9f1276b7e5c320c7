// Package textgen defines the boundary to the external text-generation
// service. Two call shapes are exposed: a blocking Generate for per-chunk
// summaries and a streaming GenerateStream for the final synthesis.
package textgen

import "context"

// Request carries one generation call. UserPrompt must be non-empty.
type Request struct {
	SystemPrompt    string
	UserPrompt      string
	Temperature     float64
	MaxOutputTokens int
}

// Delta is one increment of a streamed generation. Err is set on the terminal
// delta when the stream fails mid-way; the channel is closed right after.
type Delta struct {
	Text string
	Err  error
}

// Client is the abstraction over any text-generation backend.
//
// Implementations must be safe for concurrent use and must propagate context
// cancellation promptly. Channels returned by GenerateStream are closed by the
// implementation when generation finishes, fails, or ctx is cancelled; callers
// must drain them to avoid goroutine leaks.
type Client interface {
	// Generate sends req and waits for the full response text.
	Generate(ctx context.Context, req Request) (string, error)

	// GenerateStream sends req and returns a channel emitting text increments
	// as they arrive. The initial error return is non-nil only for failures
	// that prevent the stream from starting; later failures arrive as a Delta
	// with Err set.
	GenerateStream(ctx context.Context, req Request) (<-chan Delta, error)
}
