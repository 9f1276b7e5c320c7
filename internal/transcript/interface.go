// Package transcript defines the boundary to transcript providers and shared
// subtitle-to-text cleaning.
package transcript

import "context"

// Source supplies the raw transcript text for a content identifier (a local
// file path or a video URL, depending on the implementation).
type Source interface {
	// Fetch returns the full transcript as plain text. Failures are reported
	// as *Error with a structured reason.
	Fetch(ctx context.Context, contentID string) (string, error)
}
