// Package ytdlp fetches video captions through the yt-dlp binary. Manual
// subtitles are preferred; auto-generated ones are accepted as fallback.
package ytdlp

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/nguyentantai21042004/summary-flow/internal/logger"
	"github.com/nguyentantai21042004/summary-flow/internal/transcript"
	"github.com/nguyentantai21042004/summary-flow/pkg/executor"
)

const defaultBinary = "yt-dlp"

type implSource struct {
	executor  executor.Executor
	logger    logger.Logger
	binary    string
	languages []string
}

// New creates a Source that downloads captions with yt-dlp in the given
// language preference order.
func New(exec executor.Executor, log logger.Logger, languages []string) transcript.Source {
	return &implSource{
		executor:  exec,
		logger:    log,
		binary:    defaultBinary,
		languages: languages,
	}
}

// Fetch implements transcript.Source. The content identifier is a video URL.
func (s *implSource) Fetch(ctx context.Context, url string) (string, error) {
	tmpDir, err := os.MkdirTemp("", "summary-flow-subs-")
	if err != nil {
		return "", transcript.NewError(transcript.KindUnknown, err)
	}
	defer os.RemoveAll(tmpDir)

	outTemplate := filepath.Join(tmpDir, "captions.%(ext)s")
	args := []string{
		"--skip-download",
		"--write-subs",
		"--write-auto-subs",
		"--sub-langs", strings.Join(s.languages, ","),
		"--sub-format", "vtt",
		"--output", outTemplate,
		url,
	}

	s.logger.Debug(ctx, "Fetching captions: %s %s", s.binary, strings.Join(args, " "))
	if _, err := s.executor.Execute(ctx, s.binary, args...); err != nil {
		return "", s.classify(ctx, url, err)
	}

	subPath, err := s.findSubtitleFile(tmpDir)
	if err != nil {
		// yt-dlp exits zero when no matching subtitles exist; distinguish
		// "none at all" from "wrong language" via the listing.
		return "", s.classify(ctx, url, err)
	}

	data, err := os.ReadFile(subPath)
	if err != nil {
		return "", transcript.NewError(transcript.KindUnknown, err)
	}

	text := transcript.CleanVTT(string(data))
	if strings.TrimSpace(text) == "" {
		return "", transcript.NewError(transcript.KindUnavailable,
			fmt.Errorf("captions for %s are empty", url))
	}
	return text, nil
}

func (s *implSource) findSubtitleFile(dir string) (string, error) {
	// Prefer the earliest language in the configured order.
	for _, lang := range s.languages {
		matches, err := filepath.Glob(filepath.Join(dir, fmt.Sprintf("captions.%s*.vtt", lang)))
		if err == nil && len(matches) > 0 {
			return matches[0], nil
		}
	}
	matches, err := filepath.Glob(filepath.Join(dir, "*.vtt"))
	if err != nil || len(matches) == 0 {
		return "", fmt.Errorf("no subtitle file produced")
	}
	return matches[0], nil
}

var reLangLine = regexp.MustCompile(`(?m)^([a-zA-Z]{2,3}(?:-[a-zA-Z0-9]+)?)\s+`)

// classify turns a failed fetch into a structured transcript error, probing
// the available subtitle languages when the video has captions in other
// languages only.
func (s *implSource) classify(ctx context.Context, url string, cause error) error {
	msg := cause.Error()
	if strings.Contains(msg, "no subtitles") || strings.Contains(msg, "Subtitles are disabled") {
		return transcript.NewError(transcript.KindUnavailable, cause)
	}

	out, listErr := s.executor.Execute(ctx, s.binary, "--list-subs", "--skip-download", url)
	if listErr != nil {
		return transcript.NewError(transcript.KindUnknown, cause)
	}

	available := parseLanguages(out)
	if len(available) == 0 {
		return transcript.NewError(transcript.KindUnavailable, cause)
	}
	for _, lang := range available {
		for _, want := range s.languages {
			if lang == want {
				// The language exists but the fetch still failed; not a
				// language problem.
				return transcript.NewError(transcript.KindUnknown, cause)
			}
		}
	}
	return &transcript.Error{
		Kind:      transcript.KindNoMatchingLanguage,
		Languages: available,
		Err:       cause,
	}
}

// parseLanguages extracts language codes from yt-dlp --list-subs output.
func parseLanguages(listing string) []string {
	inTable := false
	seen := make(map[string]bool)
	var langs []string

	for _, line := range strings.Split(listing, "\n") {
		if strings.Contains(line, "Available subtitles") || strings.Contains(line, "Available automatic captions") {
			inTable = true
			continue
		}
		if strings.HasPrefix(line, "Language") {
			continue
		}
		if !inTable {
			continue
		}
		m := reLangLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		lang := strings.ToLower(m[1])
		if !seen[lang] {
			seen[lang] = true
			langs = append(langs, lang)
		}
	}
	return langs
}
