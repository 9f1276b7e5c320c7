package summarizer

import "context"

// Pipeline turns one transcript into a streamed final summary.
type Pipeline interface {
	// Run executes one full pipeline pass: chunk, fan out per-chunk
	// summarization, then stream the synthesized summary as events. The
	// returned channel is closed when the stream ends; callers must drain it.
	// A non-nil error means the run failed before synthesis could start
	// (invalid input, cancellation, or every chunk failing).
	Run(ctx context.Context, transcript string) (<-chan SummaryStreamEvent, error)

	// State reports the current (or final) state of the latest run.
	State() State
}
