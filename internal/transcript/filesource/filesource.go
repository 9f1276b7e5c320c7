// Package filesource reads transcripts from local subtitle or plain-text
// files.
package filesource

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/summary-flow/internal/transcript"
)

type implSource struct{}

// New creates a Source that loads .srt, .vtt, and .txt files.
func New() transcript.Source {
	return &implSource{}
}

// SupportedExt reports whether path has a loadable transcript extension.
func SupportedExt(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".srt", ".vtt", ".txt":
		return true
	}
	return false
}

// Fetch implements transcript.Source. The content identifier is a file path.
func (s *implSource) Fetch(ctx context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", transcript.NewError(transcript.KindUnavailable, err)
		}
		return "", transcript.NewError(transcript.KindUnknown, err)
	}

	content := string(data)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".srt":
		content = transcript.CleanSRT(content)
	case ".vtt":
		content = transcript.CleanVTT(content)
	case ".txt":
		// already plain text
	default:
		return "", transcript.NewError(transcript.KindUnknown,
			fmt.Errorf("unsupported transcript format %q", filepath.Ext(path)))
	}

	if strings.TrimSpace(content) == "" {
		return "", transcript.NewError(transcript.KindUnavailable,
			fmt.Errorf("file %s contains no transcript text", path))
	}
	return content, nil
}
