package summarizer

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/nguyentantai21042004/summary-flow/internal/cache"
	"github.com/nguyentantai21042004/summary-flow/internal/chunker"
	"github.com/nguyentantai21042004/summary-flow/internal/config"
	"github.com/nguyentantai21042004/summary-flow/internal/logger"
	"github.com/nguyentantai21042004/summary-flow/internal/textgen"
	"github.com/nguyentantai21042004/summary-flow/internal/textgen/mock"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := &config.Config{
		TextGen: config.TextGenConfig{
			Provider: "openai",
			Model:    "gpt-4-turbo",
			APIKey:   "sk-test",
		},
		Paths: config.PathsConfig{
			Input:  "data/input",
			Output: "data/output",
		},
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("test config invalid: %v", err)
	}
	cfg.TextGen.RequestTimeout = config.Duration(time.Second)
	cfg.Pipeline.RetryDelay = config.Duration(time.Millisecond)
	return cfg
}

func newTestPipeline(t *testing.T, client textgen.Client, store cache.Cache, opts ...Option) *implPipeline {
	t.Helper()
	if store == nil {
		store = cache.Nop()
	}
	return New(testConfig(t), client, store, logger.Nop(), opts...).(*implPipeline)
}

func TestSummarizeChunk_Success(t *testing.T) {
	client := &mock.Client{
		GenerateFunc: func(ctx context.Context, req textgen.Request) (string, error) {
			return "  a fine summary \n", nil
		},
	}
	p := newTestPipeline(t, client, nil)

	ps := p.summarizeChunk(context.Background(), chunker.Chunk{Index: 2, Text: "some words", WordCount: 2})

	if ps.Failed {
		t.Fatalf("unexpected failure: %s", ps.ErrorDetail)
	}
	if ps.ChunkIndex != 2 {
		t.Errorf("ChunkIndex = %d, want 2", ps.ChunkIndex)
	}
	if ps.Text != "a fine summary" {
		t.Errorf("Text = %q, want trimmed summary", ps.Text)
	}
	if client.Calls() != 1 {
		t.Errorf("calls = %d, want 1", client.Calls())
	}
}

func TestSummarizeChunk_RetryExhaustion(t *testing.T) {
	client := &mock.Client{
		GenerateFunc: func(ctx context.Context, req textgen.Request) (string, error) {
			return "", textgen.NewError(textgen.KindRateLimited, errors.New("429"))
		},
	}
	p := newTestPipeline(t, client, nil)

	ps := p.summarizeChunk(context.Background(), chunker.Chunk{Index: 0, Text: "words"})

	if !ps.Failed {
		t.Fatal("expected failed partial after exhausted retries")
	}
	if got := client.Calls(); got != 3 {
		t.Errorf("attempts = %d, want exactly 3", got)
	}
	if !strings.Contains(ps.ErrorDetail, "attempts exhausted") {
		t.Errorf("ErrorDetail = %q, want exhaustion detail", ps.ErrorDetail)
	}
}

func TestSummarizeChunk_PermanentErrorNotRetried(t *testing.T) {
	client := &mock.Client{
		GenerateFunc: func(ctx context.Context, req textgen.Request) (string, error) {
			return "", textgen.NewError(textgen.KindInvalidRequest, errors.New("400"))
		},
	}
	p := newTestPipeline(t, client, nil)

	ps := p.summarizeChunk(context.Background(), chunker.Chunk{Index: 0, Text: "words"})

	if !ps.Failed {
		t.Fatal("expected failed partial")
	}
	if got := client.Calls(); got != 1 {
		t.Errorf("attempts = %d, want 1 for a permanent error", got)
	}
}

func TestSummarizeChunk_TransientThenSuccess(t *testing.T) {
	calls := 0
	client := &mock.Client{
		GenerateFunc: func(ctx context.Context, req textgen.Request) (string, error) {
			calls++
			if calls < 3 {
				return "", textgen.NewError(textgen.KindTimeout, errors.New("deadline"))
			}
			return "recovered", nil
		},
	}
	p := newTestPipeline(t, client, nil)

	ps := p.summarizeChunk(context.Background(), chunker.Chunk{Index: 0, Text: "words"})

	if ps.Failed {
		t.Fatalf("unexpected failure: %s", ps.ErrorDetail)
	}
	if ps.Text != "recovered" {
		t.Errorf("Text = %q", ps.Text)
	}
	if calls != 3 {
		t.Errorf("attempts = %d, want 3", calls)
	}
}

func TestSummarizeChunk_CacheShortCircuit(t *testing.T) {
	client := &mock.Client{
		GenerateFunc: func(ctx context.Context, req textgen.Request) (string, error) {
			return "cached summary", nil
		},
	}
	p := newTestPipeline(t, client, cache.NewMemory())

	first := p.summarizeChunk(context.Background(), chunker.Chunk{Index: 0, Text: "identical text"})
	second := p.summarizeChunk(context.Background(), chunker.Chunk{Index: 7, Text: "identical text"})

	if first.Failed || second.Failed {
		t.Fatal("unexpected failure")
	}
	if got := client.Calls(); got != 1 {
		t.Errorf("external calls = %d, want exactly 1 for identical fingerprints", got)
	}
	if second.ChunkIndex != 7 {
		t.Errorf("cached result must carry the caller's chunk index, got %d", second.ChunkIndex)
	}
	if second.Text != first.Text {
		t.Errorf("cached text mismatch: %q vs %q", second.Text, first.Text)
	}
}

func TestRequestChunkSummary_TruncatesPrompt(t *testing.T) {
	var seen textgen.Request
	client := &mock.Client{
		GenerateFunc: func(ctx context.Context, req textgen.Request) (string, error) {
			seen = req
			return "ok", nil
		},
	}
	p := newTestPipeline(t, client, nil)
	p.cfg.Pipeline.ChunkCharBudget = 10

	long := strings.Repeat("abcde ", 100)
	if ps := p.summarizeChunk(context.Background(), chunker.Chunk{Index: 0, Text: long}); ps.Failed {
		t.Fatalf("unexpected failure: %s", ps.ErrorDetail)
	}

	if strings.Contains(seen.UserPrompt, long) {
		t.Error("prompt should not contain the untruncated chunk text")
	}
	if !strings.Contains(seen.UserPrompt, long[:10]) {
		t.Error("prompt should contain the truncated prefix")
	}
	if seen.Temperature != 0.5 {
		t.Errorf("Temperature = %v, want 0.5", seen.Temperature)
	}
	if seen.MaxOutputTokens != 200 {
		t.Errorf("MaxOutputTokens = %d, want 200", seen.MaxOutputTokens)
	}
}

func TestFingerprint(t *testing.T) {
	p := newTestPipeline(t, &mock.Client{}, nil)

	a := p.fingerprint("same text")
	b := p.fingerprint("same text")
	c := p.fingerprint("other text")

	if a != b {
		t.Error("identical text must produce identical fingerprints")
	}
	if a == c {
		t.Error("different text must produce different fingerprints")
	}

	p.cfg.TextGen.Model = "gpt-4o"
	if p.fingerprint("same text") == a {
		t.Error("changing the model must change the fingerprint")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"shorter than limit", "hello", 10, "hello"},
		{"exact limit", "hello", 5, "hello"},
		{"cut", "hello world", 5, "hello"},
		{"zero keeps all", "hello", 0, "hello"},
		{"multibyte boundary respected", "héllo", 2, "h"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncate(tt.in, tt.max); got != tt.want {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
			}
		})
	}
}
