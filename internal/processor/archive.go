package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// moveToArchived moves a handled transcript out of the input folder so it is
// not picked up again.
func (p *implProcessor) moveToArchived(ctx context.Context, transcriptPath string) error {
	if err := os.MkdirAll(p.cfg.Paths.Archived, 0755); err != nil {
		return fmt.Errorf("create archived dir: %w", err)
	}

	destPath := filepath.Join(p.cfg.Paths.Archived, filepath.Base(transcriptPath))
	p.logger.Debug(ctx, "Archiving: %s -> %s", transcriptPath, destPath)

	if err := os.Rename(transcriptPath, destPath); err != nil {
		return fmt.Errorf("move to archived: %w", err)
	}
	return nil
}
