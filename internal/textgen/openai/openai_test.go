package openai

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	oai "github.com/openai/openai-go"

	"github.com/nguyentantai21042004/summary-flow/internal/textgen"
)

func TestNew_MissingAPIKey(t *testing.T) {
	if _, err := New("", "gpt-4-turbo"); err == nil {
		t.Fatal("expected error for empty API key")
	}
}

func TestNew_MissingModel(t *testing.T) {
	if _, err := New("sk-test", ""); err == nil {
		t.Fatal("expected error for empty model")
	}
}

func TestNew_Options(t *testing.T) {
	c, err := New("sk-test", "gpt-4-turbo",
		WithBaseURL("http://localhost:9999/v1"),
		WithTimeout(5*time.Second),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c == nil {
		t.Fatal("expected non-nil client")
	}
}

func TestBuildParams(t *testing.T) {
	c, err := New("sk-test", "gpt-4-turbo")
	if err != nil {
		t.Fatal(err)
	}

	params := c.buildParams(textgen.Request{
		SystemPrompt:    "You are an editor.",
		UserPrompt:      "Summarize this.",
		Temperature:     0.7,
		MaxOutputTokens: 1500,
	})

	if params.Model != "gpt-4-turbo" {
		t.Errorf("Model = %q", params.Model)
	}
	if len(params.Messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(params.Messages))
	}
	if params.Messages[0].OfSystem == nil {
		t.Error("first message should be the system prompt")
	}
	if params.Messages[1].OfUser == nil {
		t.Error("second message should be the user prompt")
	}
	if !params.Temperature.Valid() || params.Temperature.Value != 0.7 {
		t.Errorf("Temperature = %v", params.Temperature)
	}
	if !params.MaxCompletionTokens.Valid() || params.MaxCompletionTokens.Value != 1500 {
		t.Errorf("MaxCompletionTokens = %v", params.MaxCompletionTokens)
	}
}

func TestBuildParams_NoSystemPrompt(t *testing.T) {
	c, err := New("sk-test", "gpt-4-turbo")
	if err != nil {
		t.Fatal(err)
	}

	params := c.buildParams(textgen.Request{UserPrompt: "Hello"})
	if len(params.Messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(params.Messages))
	}
	if params.Messages[0].OfUser == nil {
		t.Error("only message should be the user prompt")
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want textgen.ErrorKind
	}{
		{"429 is rate limited", &oai.Error{StatusCode: http.StatusTooManyRequests}, textgen.KindRateLimited},
		{"408 is timeout", &oai.Error{StatusCode: http.StatusRequestTimeout}, textgen.KindTimeout},
		{"400 is invalid request", &oai.Error{StatusCode: http.StatusBadRequest}, textgen.KindInvalidRequest},
		{"401 is invalid request", &oai.Error{StatusCode: http.StatusUnauthorized}, textgen.KindInvalidRequest},
		{"500 is service error", &oai.Error{StatusCode: http.StatusInternalServerError}, textgen.KindServiceError},
		{"deadline is timeout", context.DeadlineExceeded, textgen.KindTimeout},
		{"plain error is service error", errors.New("connection refused"), textgen.KindServiceError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := textgen.KindOf(classify(tt.err)); got != tt.want {
				t.Errorf("classify kind = %v, want %v", got, tt.want)
			}
		})
	}
}
