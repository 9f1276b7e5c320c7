// Package output renders finished summaries to files. Persistence lives here,
// outside the pipeline core; the core only streams events.
package output

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// WriteMarkdown writes a summary as a markdown document with a title header
// and generation timestamp.
func WriteMarkdown(path, title, summary string) error {
	md := fmt.Sprintf("# %s\n\n_%s_\n\n%s\n",
		title,
		time.Now().Format("2006-01-02 15:04"),
		strings.TrimSpace(summary),
	)
	if err := os.WriteFile(path, []byte(md), 0644); err != nil {
		return fmt.Errorf("write markdown: %w", err)
	}
	return nil
}
