package summarizer

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyTranscript is returned when the input text is empty or
// whitespace-only. No external call is made.
var ErrEmptyTranscript = errors.New("transcript is empty")

// ErrNoChunks is returned when chunking yields nothing to summarize.
var ErrNoChunks = errors.New("transcript produced no chunks")

// AggregateError is returned when every chunk failed. Details holds one entry
// per chunk in index order.
type AggregateError struct {
	Total   int
	Details []string
}

func (e *AggregateError) Error() string {
	return fmt.Sprintf("all %d chunks failed to summarize: %s", e.Total, strings.Join(e.Details, "; "))
}
