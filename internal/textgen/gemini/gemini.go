// Package gemini provides a textgen.Client backed by the Gemini API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/nguyentantai21042004/summary-flow/internal/textgen"
)

// Client implements textgen.Client using the Gemini API.
type Client struct {
	client *genai.Client
	model  string
}

// New constructs a Gemini-backed Client.
func New(ctx context.Context, apiKey, model string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini: apiKey must not be empty")
	}
	if model == "" {
		return nil, fmt.Errorf("gemini: model must not be empty")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}

	return &Client{client: client, model: model}, nil
}

// Generate implements textgen.Client.
func (c *Client) Generate(ctx context.Context, req textgen.Request) (string, error) {
	result, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(req.UserPrompt), buildConfig(req))
	if err != nil {
		return "", classify(err)
	}

	text := responseText(result)
	if text == "" {
		return "", textgen.NewError(textgen.KindServiceError, fmt.Errorf("gemini: empty response"))
	}
	return text, nil
}

// GenerateStream implements textgen.Client.
func (c *Client) GenerateStream(ctx context.Context, req textgen.Request) (<-chan textgen.Delta, error) {
	stream := c.client.Models.GenerateContentStream(ctx, c.model, genai.Text(req.UserPrompt), buildConfig(req))

	ch := make(chan textgen.Delta, 32)
	go func() {
		defer close(ch)

		for resp, err := range stream {
			if err != nil {
				select {
				case ch <- textgen.Delta{Err: classify(err)}:
				case <-ctx.Done():
				}
				return
			}
			text := responseText(resp)
			if text == "" {
				continue
			}
			select {
			case ch <- textgen.Delta{Text: text}:
			case <-ctx.Done():
				return
			}
		}
	}()

	return ch, nil
}

func buildConfig(req textgen.Request) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{}
	if req.SystemPrompt != "" {
		cfg.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: req.SystemPrompt}},
		}
	}
	if req.Temperature != 0 {
		cfg.Temperature = genai.Ptr(float32(req.Temperature))
	}
	if req.MaxOutputTokens > 0 {
		cfg.MaxOutputTokens = int32(req.MaxOutputTokens)
	}
	return cfg
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		b.WriteString(part.Text)
	}
	return b.String()
}

// classify maps Gemini API errors onto the textgen taxonomy. The SDK surfaces
// quota and argument errors through the message text, so match on the message
// when no status code is exposed.
func classify(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return textgen.NewError(textgen.KindTimeout, err)
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "429"),
		strings.Contains(msg, "quota"),
		strings.Contains(msg, "RESOURCE_EXHAUSTED"):
		return textgen.NewError(textgen.KindRateLimited, err)
	case strings.Contains(msg, "INVALID_ARGUMENT"),
		strings.Contains(msg, "400"),
		strings.Contains(msg, "API key"):
		return textgen.NewError(textgen.KindInvalidRequest, err)
	case strings.Contains(msg, "DEADLINE_EXCEEDED"):
		return textgen.NewError(textgen.KindTimeout, err)
	default:
		return textgen.NewError(textgen.KindServiceError, err)
	}
}
