package summarizer

import "fmt"

// PartialSummary is the terminal outcome of summarizing one chunk. Exactly one
// of the two shapes occurs: Text set with Failed false, or Failed true with
// ErrorDetail describing why.
type PartialSummary struct {
	ChunkIndex  int
	Text        string
	Failed      bool
	ErrorDetail string
}

// SummaryStreamEvent is one increment of the final summary. Events arrive in
// Sequence order. Err is set only on the terminal event of a failed stream;
// its Delta then carries a visible interruption marker.
type SummaryStreamEvent struct {
	Sequence int
	Delta    string
	Err      error
}

// ChunkProgress is emitted once per completed chunk, in completion order.
type ChunkProgress struct {
	ChunkIndex  int
	Succeeded   bool
	ErrorDetail string
	Completed   int
	Total       int
}

// ProgressSink receives pipeline progress. Implementations own rendering;
// callbacks must not block for long since they run on pipeline goroutines.
type ProgressSink interface {
	// ChunkCompleted fires once per chunk that reached a terminal outcome.
	ChunkCompleted(ev ChunkProgress)

	// RunFinished fires exactly once per run; err is nil on success.
	RunFinished(err error)
}

// NopProgress discards all progress events.
type NopProgress struct{}

func (NopProgress) ChunkCompleted(ChunkProgress) {}
func (NopProgress) RunFinished(error)            {}

// State tracks where a pipeline run currently is.
type State int32

const (
	StateIdle State = iota
	StateChunking
	StateFanningOut
	StateSynthesizing
	StateCompleted
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateChunking:
		return "chunking"
	case StateFanningOut:
		return "fanning_out"
	case StateSynthesizing:
		return "synthesizing"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}
