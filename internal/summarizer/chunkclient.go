package summarizer

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/nguyentantai21042004/summary-flow/internal/chunker"
	"github.com/nguyentantai21042004/summary-flow/internal/textgen"
)

// summarizeChunk produces the terminal outcome for one chunk: cache lookup,
// then a retried generation request, downgraded to a failed PartialSummary
// when attempts are exhausted. It never returns an error; per-chunk failures
// must not abort the sibling chunks.
func (p *implPipeline) summarizeChunk(ctx context.Context, c chunker.Chunk) PartialSummary {
	fp := p.fingerprint(c.Text)

	text, hit, err := p.cache.GetOrCompute(ctx, fp, p.cfg.Pipeline.CacheTTL.Std(), func(ctx context.Context) (string, error) {
		return p.requestChunkSummary(ctx, c)
	})
	if err != nil {
		p.logger.Warn(ctx, "Chunk %d failed: %v", c.Index, err)
		return PartialSummary{
			ChunkIndex:  c.Index,
			Failed:      true,
			ErrorDetail: err.Error(),
		}
	}
	if hit {
		p.logger.Debug(ctx, "Chunk %d served from cache", c.Index)
	}

	return PartialSummary{
		ChunkIndex: c.Index,
		Text:       text,
	}
}

// requestChunkSummary issues the generation request with bounded retry.
// Only transient failures (rate limits, timeouts) are retried; each attempt
// carries its own timeout.
func (p *implPipeline) requestChunkSummary(ctx context.Context, c chunker.Chunk) (string, error) {
	req := textgen.Request{
		SystemPrompt:    chunkSystemPrompt,
		UserPrompt:      fmt.Sprintf(chunkPromptFmt, truncate(c.Text, p.cfg.Pipeline.ChunkCharBudget)),
		Temperature:     p.cfg.Pipeline.ChunkTemperature,
		MaxOutputTokens: p.cfg.Pipeline.ChunkMaxTokens,
	}

	maxAttempts := p.cfg.Pipeline.MaxRetryAttempts
	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		reqCtx, cancel := context.WithTimeout(ctx, p.cfg.TextGen.RequestTimeout.Std())
		out, err := p.client.Generate(reqCtx, req)
		cancel()

		if err == nil {
			return strings.TrimSpace(out), nil
		}
		lastErr = err

		if !textgen.Transient(err) {
			return "", fmt.Errorf("chunk %d: %w", c.Index, err)
		}
		if attempt == maxAttempts {
			break
		}

		p.logger.Debug(ctx, "Chunk %d attempt %d/%d failed (%v), retrying in %s",
			c.Index, attempt, maxAttempts, err, p.cfg.Pipeline.RetryDelay.Std())

		select {
		case <-time.After(p.cfg.Pipeline.RetryDelay.Std()):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	return "", fmt.Errorf("chunk %d: %d attempts exhausted: %w", c.Index, maxAttempts, lastErr)
}

// fingerprint derives the stable cache key for a chunk. Model and prompt
// revision are mixed in so changing either never serves stale summaries.
func (p *implPipeline) fingerprint(text string) string {
	h := sha256.New()
	h.Write([]byte(p.cfg.TextGen.Model))
	h.Write([]byte{0})
	h.Write([]byte(promptRevision))
	h.Write([]byte{0})
	h.Write([]byte(text))
	return hex.EncodeToString(h.Sum(nil))
}

// truncate cuts s to at most max bytes without splitting a UTF-8 sequence.
// Truncation applies only at the request boundary; stored chunk text is never
// altered.
func truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max]
}
