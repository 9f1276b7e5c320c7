package summarizer

import (
	"context"
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/summary-flow/internal/chunker"
)

// Run implements Pipeline. One invocation is one full run:
// Idle → Chunking → FanningOut → Synthesizing → Completed, with any
// unrecoverable condition diverting to Failed. Per-chunk failures are
// tolerated as long as at least one chunk succeeds; the caller always
// receives whatever content was generated.
func (p *implPipeline) Run(ctx context.Context, transcript string) (<-chan SummaryStreamEvent, error) {
	p.setState(StateIdle)

	if strings.TrimSpace(transcript) == "" {
		return nil, p.fail(ctx, ErrEmptyTranscript)
	}

	p.setState(StateChunking)
	chunks := chunker.Collect(transcript, p.cfg.Pipeline.MaxWordsPerChunk)
	if len(chunks) == 0 {
		return nil, p.fail(ctx, ErrNoChunks)
	}
	p.logger.Info(ctx, "Transcript split into %d chunks (max %d words each)",
		len(chunks), p.cfg.Pipeline.MaxWordsPerChunk)

	p.setState(StateFanningOut)
	partials := p.runAll(ctx, chunks)

	if err := ctx.Err(); err != nil {
		return nil, p.fail(ctx, fmt.Errorf("run cancelled: %w", err))
	}

	succeeded := 0
	for _, ps := range partials {
		if !ps.Failed {
			succeeded++
		}
	}
	if succeeded == 0 {
		agg := &AggregateError{Total: len(partials)}
		for _, ps := range partials {
			agg.Details = append(agg.Details, fmt.Sprintf("chunk %d: %s", ps.ChunkIndex, ps.ErrorDetail))
		}
		return nil, p.fail(ctx, agg)
	}
	p.logger.Info(ctx, "Partial summaries complete: %d succeeded, %d failed",
		succeeded, len(partials)-succeeded)

	p.setState(StateSynthesizing)
	events, err := p.synthesize(ctx, partials)
	if err != nil {
		return nil, p.fail(ctx, err)
	}

	out := make(chan SummaryStreamEvent, 32)
	go func() {
		defer close(out)

		var streamErr error
		for ev := range events {
			if ev.Err != nil {
				streamErr = ev.Err
			}
			select {
			case out <- ev:
			case <-ctx.Done():
				streamErr = ctx.Err()
				p.finish(ctx, streamErr)
				return
			}
		}
		p.finish(ctx, streamErr)
	}()

	return out, nil
}

// fail moves the run to Failed and notifies the progress sink. It returns err
// for convenient `return nil, p.fail(...)` call sites.
func (p *implPipeline) fail(ctx context.Context, err error) error {
	p.setState(StateFailed)
	p.logger.Error(ctx, "Pipeline run failed: %v", err)
	p.progress.RunFinished(err)
	return err
}

// finish settles the terminal state once the synthesis stream has drained.
func (p *implPipeline) finish(ctx context.Context, streamErr error) {
	if streamErr != nil {
		p.setState(StateFailed)
		p.logger.Error(ctx, "Synthesis stream failed: %v", streamErr)
		p.progress.RunFinished(streamErr)
		return
	}
	p.setState(StateCompleted)
	p.logger.Info(ctx, "Pipeline run completed")
	p.progress.RunFinished(nil)
}
