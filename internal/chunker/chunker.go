// Package chunker splits transcript text into bounded-size chunks for
// independent summarization. Splitting is pure: the same input always yields
// the same chunk sequence.
package chunker

import (
	"iter"
	"strings"
)

// Chunk is one bounded contiguous segment of the transcript.
type Chunk struct {
	// Index is the zero-based position of this chunk in the transcript.
	Index int

	// Text is the chunk content, paragraphs joined by single spaces.
	Text string

	// WordCount is the number of whitespace-delimited tokens in Text.
	WordCount int
}

// Chunks walks the text paragraph by paragraph (newline boundaries) and
// accumulates words into chunks of at most maxWords. A chunk is closed early
// only when it is non-empty and the next paragraph would push it over the
// limit, so a single oversized paragraph becomes its own oversized chunk
// rather than being truncated. Blank lines contribute nothing and never force
// a boundary. Empty input yields no chunks.
//
// The returned sequence is restartable; each range loop re-walks the text.
func Chunks(text string, maxWords int) iter.Seq[Chunk] {
	return func(yield func(Chunk) bool) {
		var (
			current []string
			index   int
		)

		emit := func() bool {
			if len(current) == 0 {
				return true
			}
			ok := yield(Chunk{
				Index:     index,
				Text:      strings.Join(current, " "),
				WordCount: len(current),
			})
			index++
			current = nil
			return ok
		}

		for _, para := range strings.Split(text, "\n") {
			words := strings.Fields(para)
			if len(words) == 0 {
				continue
			}
			if len(current) > 0 && len(current)+len(words) > maxWords {
				if !emit() {
					return
				}
			}
			current = append(current, words...)
		}

		emit()
	}
}

// Collect materializes the chunk sequence into a slice.
func Collect(text string, maxWords int) []Chunk {
	var chunks []Chunk
	for c := range Chunks(text, maxWords) {
		chunks = append(chunks, c)
	}
	return chunks
}
