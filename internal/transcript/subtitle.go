package transcript

import (
	"regexp"
	"strings"
)

var (
	reSrtIndex  = regexp.MustCompile(`^\d+$`)
	reSrtTime   = regexp.MustCompile(`^\d{2}:\d{2}:\d{2}[,.]\d{3}\s+-->`)
	reVttTime   = regexp.MustCompile(`^\d{2}:\d{2}(:\d{2})?\.\d{3}\s+-->`)
	reCueTag    = regexp.MustCompile(`</?[^>]+>`)
	reVttHeader = regexp.MustCompile(`^(WEBVTT|Kind:|Language:|NOTE|STYLE|REGION)`)
)

// CleanSRT strips sequence numbers and timestamps from SRT content, keeping
// only dialogue text, one cue per line. Consecutive duplicate cues (common in
// auto-generated captions) are collapsed.
func CleanSRT(content string) string {
	return cleanCues(content, func(line string) bool {
		return reSrtIndex.MatchString(line) || reSrtTime.MatchString(line)
	})
}

// CleanVTT strips the WEBVTT header, cue timings, and styling tags from VTT
// content, keeping only dialogue text.
func CleanVTT(content string) string {
	return cleanCues(content, func(line string) bool {
		return reVttHeader.MatchString(line) || reVttTime.MatchString(line) || reSrtTime.MatchString(line)
	})
}

func cleanCues(content string, skip func(string) bool) string {
	var (
		out  []string
		prev string
	)
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || skip(trimmed) {
			continue
		}
		trimmed = strings.TrimSpace(reCueTag.ReplaceAllString(trimmed, ""))
		if trimmed == "" || trimmed == prev {
			continue
		}
		out = append(out, trimmed)
		prev = trimmed
	}
	return strings.Join(out, "\n")
}
