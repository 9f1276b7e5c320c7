package summarizer

import (
	"context"
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/summary-flow/internal/textgen"
)

// streamErrorMarker is appended as the visible text of the terminal event when
// generation fails mid-stream, so callers never see a silent truncation.
const streamErrorMarker = "\n\n[summary interrupted: generation failed]"

// synthesize combines the ordered partial summaries into one streamed
// generation request and forwards each increment as a sequenced event.
// Failed partials appear as explicit unavailability markers in the synthesis
// input rather than being dropped silently.
func (p *implPipeline) synthesize(ctx context.Context, partials []PartialSummary) (<-chan SummaryStreamEvent, error) {
	combined := combinePartials(partials)
	combined = truncate(combined, p.cfg.Pipeline.SynthesisCharBudget)

	req := textgen.Request{
		SystemPrompt:    synthesisSystemPrompt,
		UserPrompt:      fmt.Sprintf(synthesisPromptFmt, combined),
		Temperature:     p.cfg.Pipeline.SynthesisTemperature,
		MaxOutputTokens: p.cfg.Pipeline.SummaryMaxTokens,
	}

	// One timeout covers the whole stream; a synthesis timeout ends the run.
	streamCtx, cancel := context.WithTimeout(ctx, p.cfg.TextGen.RequestTimeout.Std())

	deltas, err := p.client.GenerateStream(streamCtx, req)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("start synthesis stream: %w", err)
	}

	out := make(chan SummaryStreamEvent, 32)
	go func() {
		defer close(out)
		defer cancel()

		seq := 0
		for d := range deltas {
			if d.Err != nil {
				out <- SummaryStreamEvent{Sequence: seq, Delta: streamErrorMarker, Err: d.Err}
				return
			}
			select {
			case out <- SummaryStreamEvent{Sequence: seq, Delta: d.Text}:
				seq++
			case <-ctx.Done():
				out <- SummaryStreamEvent{Sequence: seq, Delta: streamErrorMarker, Err: ctx.Err()}
				return
			}
		}

		if err := streamCtx.Err(); err != nil {
			out <- SummaryStreamEvent{Sequence: seq, Delta: streamErrorMarker, Err: err}
		}
	}()

	return out, nil
}

func combinePartials(partials []PartialSummary) string {
	sections := make([]string, 0, len(partials))
	for _, ps := range partials {
		if ps.Failed {
			sections = append(sections, fmt.Sprintf("[section %d unavailable]", ps.ChunkIndex+1))
			continue
		}
		sections = append(sections, ps.Text)
	}
	return strings.Join(sections, "\n\n")
}
