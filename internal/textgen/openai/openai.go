// Package openai provides a textgen.Client backed by the OpenAI API.
package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	oai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/param"
	"github.com/openai/openai-go/shared"

	"github.com/nguyentantai21042004/summary-flow/internal/textgen"
)

// Client implements textgen.Client using the OpenAI chat completions API.
type Client struct {
	client oai.Client
	model  string
}

type config struct {
	baseURL string
	timeout time.Duration
}

// Option is a functional option for Client.
type Option func(*config)

// WithBaseURL overrides the default OpenAI API base URL.
func WithBaseURL(url string) Option {
	return func(c *config) {
		c.baseURL = url
	}
}

// WithTimeout sets a per-request HTTP timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *config) {
		c.timeout = d
	}
}

// New constructs an OpenAI-backed Client.
func New(apiKey, model string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai: apiKey must not be empty")
	}
	if model == "" {
		return nil, fmt.Errorf("openai: model must not be empty")
	}

	cfg := &config{}
	for _, o := range opts {
		o(cfg)
	}

	reqOpts := []option.RequestOption{
		option.WithAPIKey(apiKey),
	}
	if cfg.baseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(cfg.baseURL))
	}
	if cfg.timeout > 0 {
		reqOpts = append(reqOpts, option.WithHTTPClient(&http.Client{
			Timeout: cfg.timeout,
		}))
	}

	return &Client{client: oai.NewClient(reqOpts...), model: model}, nil
}

// Generate implements textgen.Client.
func (c *Client) Generate(ctx context.Context, req textgen.Request) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, c.buildParams(req))
	if err != nil {
		return "", classify(err)
	}
	if len(resp.Choices) == 0 {
		return "", textgen.NewError(textgen.KindServiceError, fmt.Errorf("openai: empty choices in response"))
	}
	return resp.Choices[0].Message.Content, nil
}

// GenerateStream implements textgen.Client.
func (c *Client) GenerateStream(ctx context.Context, req textgen.Request) (<-chan textgen.Delta, error) {
	stream := c.client.Chat.Completions.NewStreaming(ctx, c.buildParams(req))
	if err := stream.Err(); err != nil {
		return nil, classify(err)
	}

	ch := make(chan textgen.Delta, 32)
	go func() {
		defer close(ch)
		defer stream.Close()

		for stream.Next() {
			chunk := stream.Current()
			if len(chunk.Choices) == 0 {
				continue
			}
			text := chunk.Choices[0].Delta.Content
			if text == "" {
				continue
			}
			select {
			case ch <- textgen.Delta{Text: text}:
			case <-ctx.Done():
				return
			}
		}

		if err := stream.Err(); err != nil {
			select {
			case ch <- textgen.Delta{Err: classify(err)}:
			case <-ctx.Done():
			}
		}
	}()

	return ch, nil
}

func (c *Client) buildParams(req textgen.Request) oai.ChatCompletionNewParams {
	var messages []oai.ChatCompletionMessageParamUnion
	if req.SystemPrompt != "" {
		messages = append(messages, oai.SystemMessage(req.SystemPrompt))
	}
	messages = append(messages, oai.UserMessage(req.UserPrompt))

	params := oai.ChatCompletionNewParams{
		Model:    shared.ChatModel(c.model),
		Messages: messages,
	}
	if req.Temperature != 0 {
		params.Temperature = param.NewOpt(req.Temperature)
	}
	if req.MaxOutputTokens > 0 {
		params.MaxCompletionTokens = param.NewOpt(int64(req.MaxOutputTokens))
	}
	return params
}

// classify maps SDK errors onto the textgen taxonomy.
func classify(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return textgen.NewError(textgen.KindTimeout, err)
	}

	var apierr *oai.Error
	if errors.As(err, &apierr) {
		switch {
		case apierr.StatusCode == http.StatusTooManyRequests:
			return textgen.NewError(textgen.KindRateLimited, err)
		case apierr.StatusCode == http.StatusRequestTimeout:
			return textgen.NewError(textgen.KindTimeout, err)
		case apierr.StatusCode >= 400 && apierr.StatusCode < 500:
			return textgen.NewError(textgen.KindInvalidRequest, err)
		}
	}
	return textgen.NewError(textgen.KindServiceError, err)
}
