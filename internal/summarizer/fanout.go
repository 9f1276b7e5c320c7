package summarizer

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/nguyentantai21042004/summary-flow/internal/chunker"
)

// runAll summarizes every chunk concurrently under the configured ceiling and
// returns one PartialSummary per chunk, ordered by chunk index regardless of
// completion order. It always returns a full-length slice; failures are
// entries, never errors. On cancellation no further chunks are dispatched and
// the undispatched ones are marked failed.
func (p *implPipeline) runAll(ctx context.Context, chunks []chunker.Chunk) []PartialSummary {
	results := make([]PartialSummary, len(chunks))
	sem := newSemaphore(p.cfg.Pipeline.Concurrency)

	var (
		wg        sync.WaitGroup
		completed atomic.Int32
	)
	total := len(chunks)

	notify := func(ps PartialSummary) {
		done := int(completed.Add(1))
		p.progress.ChunkCompleted(ChunkProgress{
			ChunkIndex:  ps.ChunkIndex,
			Succeeded:   !ps.Failed,
			ErrorDetail: ps.ErrorDetail,
			Completed:   done,
			Total:       total,
		})
	}

	for _, c := range chunks {
		if err := sem.acquire(ctx); err != nil {
			ps := PartialSummary{
				ChunkIndex:  c.Index,
				Failed:      true,
				ErrorDetail: "not dispatched: " + err.Error(),
			}
			results[c.Index] = ps
			notify(ps)
			continue
		}

		wg.Add(1)
		go func(c chunker.Chunk) {
			defer wg.Done()
			defer sem.release()

			ps := p.summarizeChunk(ctx, c)
			results[c.Index] = ps
			notify(ps)
		}(c)
	}

	wg.Wait()
	return results
}
