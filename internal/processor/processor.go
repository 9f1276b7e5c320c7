package processor

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/nguyentantai21042004/summary-flow/internal/output"
	"github.com/nguyentantai21042004/summary-flow/internal/summarizer"
)

// Process runs the full flow for one transcript: fetch text, summarize
// through the pipeline, write markdown and docx outputs, archive the input.
func (p *implProcessor) Process(ctx context.Context, transcriptPath string) error {
	startTime := time.Now()
	name := strings.TrimSuffix(filepath.Base(transcriptPath), filepath.Ext(transcriptPath))

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Summarizing transcript: %s", transcriptPath)
	p.logger.Info(ctx, "========================================")

	text, err := p.source.Fetch(ctx, transcriptPath)
	if err != nil {
		return fmt.Errorf("fetch transcript: %w", err)
	}

	// Each file gets its own pipeline run; cache and client are shared.
	pipe := summarizer.New(p.cfg, p.client, p.cache, p.logger,
		summarizer.WithProgress(&progressLogger{ctx: ctx, p: p}))

	events, err := pipe.Run(ctx, text)
	if err != nil {
		return fmt.Errorf("summarize: %w", err)
	}

	var (
		summary   strings.Builder
		streamErr error
	)
	for ev := range events {
		summary.WriteString(ev.Delta)
		if ev.Err != nil {
			streamErr = ev.Err
		}
	}

	// Whatever was generated is still delivered, even on a broken stream.
	mdPath := filepath.Join(p.cfg.Paths.Output, name+".md")
	if err := output.WriteMarkdown(mdPath, name, summary.String()); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}

	docxPath := filepath.Join(p.cfg.Paths.Output, name+".docx")
	if err := output.WriteDocx(docxPath, name, summary.String()); err != nil {
		p.logger.Warn(ctx, "Failed to write docx %s: %v", docxPath, err)
	}

	if streamErr != nil {
		return fmt.Errorf("summary stream interrupted (partial output in %s): %w", mdPath, streamErr)
	}

	if err := p.moveToArchived(ctx, transcriptPath); err != nil {
		p.logger.Warn(ctx, "Failed to archive transcript: %v", err)
	}

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Summary completed: %s", mdPath)
	p.logger.Info(ctx, "Processing time: %s", time.Since(startTime))
	p.logger.Info(ctx, "========================================")

	return nil
}

// progressLogger renders pipeline progress into the log.
type progressLogger struct {
	ctx context.Context
	p   *implProcessor
}

func (l *progressLogger) ChunkCompleted(ev summarizer.ChunkProgress) {
	if ev.Succeeded {
		l.p.logger.Info(l.ctx, "[%d/%d] chunk %d summarized", ev.Completed, ev.Total, ev.ChunkIndex)
		return
	}
	l.p.logger.Warn(l.ctx, "[%d/%d] chunk %d failed: %s", ev.Completed, ev.Total, ev.ChunkIndex, ev.ErrorDetail)
}

func (l *progressLogger) RunFinished(err error) {
	if err != nil {
		l.p.logger.Warn(l.ctx, "Pipeline finished with error: %v", err)
		return
	}
	l.p.logger.Info(l.ctx, "Pipeline finished")
}
