// Package mock provides a scriptable textgen.Client for tests.
package mock

import (
	"context"
	"sync"

	"github.com/nguyentantai21042004/summary-flow/internal/textgen"
)

// Client is a test double for textgen.Client. Behavior is controlled through
// GenerateFunc and StreamDeltas/StreamErr; every call is recorded. Safe for
// concurrent use.
type Client struct {
	mu       sync.Mutex
	requests []textgen.Request

	// GenerateFunc handles Generate calls. When nil, Generate returns
	// "summary:" followed by the first 20 bytes of the user prompt.
	GenerateFunc func(ctx context.Context, req textgen.Request) (string, error)

	// StreamDeltas is the scripted output of GenerateStream, emitted in order.
	StreamDeltas []textgen.Delta

	// StreamStartErr, when non-nil, is returned from GenerateStream before any
	// delta is emitted.
	StreamStartErr error
}

// Generate implements textgen.Client.
func (c *Client) Generate(ctx context.Context, req textgen.Request) (string, error) {
	c.record(req)
	if c.GenerateFunc != nil {
		return c.GenerateFunc(ctx, req)
	}
	prompt := req.UserPrompt
	if len(prompt) > 20 {
		prompt = prompt[:20]
	}
	return "summary:" + prompt, nil
}

// GenerateStream implements textgen.Client.
func (c *Client) GenerateStream(ctx context.Context, req textgen.Request) (<-chan textgen.Delta, error) {
	c.record(req)
	if c.StreamStartErr != nil {
		return nil, c.StreamStartErr
	}

	c.mu.Lock()
	deltas := make([]textgen.Delta, len(c.StreamDeltas))
	copy(deltas, c.StreamDeltas)
	c.mu.Unlock()

	ch := make(chan textgen.Delta, len(deltas))
	go func() {
		defer close(ch)
		for _, d := range deltas {
			select {
			case ch <- d:
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch, nil
}

func (c *Client) record(req textgen.Request) {
	c.mu.Lock()
	c.requests = append(c.requests, req)
	c.mu.Unlock()
}

// Calls returns how many requests (blocking or streaming) were issued.
func (c *Client) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.requests)
}

// Requests returns a copy of all recorded requests in call order.
func (c *Client) Requests() []textgen.Request {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]textgen.Request, len(c.requests))
	copy(out, c.requests)
	return out
}
