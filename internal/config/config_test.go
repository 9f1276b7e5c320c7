package config

import (
	"os"
	"testing"
	"time"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name: "valid config",
			config: Config{
				TextGen: TextGenConfig{
					Provider: "openai",
					Model:    "gpt-4-turbo",
					APIKey:   "sk-test",
				},
				Paths: PathsConfig{
					Input:  "data/input",
					Output: "data/output",
				},
			},
			wantErr: false,
		},
		{
			name: "missing provider",
			config: Config{
				TextGen: TextGenConfig{
					Model:  "gpt-4-turbo",
					APIKey: "sk-test",
				},
				Paths: PathsConfig{
					Input:  "data/input",
					Output: "data/output",
				},
			},
			wantErr: true,
		},
		{
			name: "unsupported provider",
			config: Config{
				TextGen: TextGenConfig{
					Provider: "cohere",
					Model:    "command",
					APIKey:   "test",
				},
				Paths: PathsConfig{
					Input:  "data/input",
					Output: "data/output",
				},
			},
			wantErr: true,
		},
		{
			name: "missing api key",
			config: Config{
				TextGen: TextGenConfig{
					Provider: "gemini",
					Model:    "gemini-2.5-flash",
				},
				Paths: PathsConfig{
					Input:  "data/input",
					Output: "data/output",
				},
			},
			wantErr: true,
		},
		{
			name: "missing paths",
			config: Config{
				TextGen: TextGenConfig{
					Provider: "openai",
					Model:    "gpt-4-turbo",
					APIKey:   "sk-test",
				},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateDefaults(t *testing.T) {
	cfg := Config{
		TextGen: TextGenConfig{
			Provider: "openai",
			Model:    "gpt-4-turbo",
			APIKey:   "sk-test",
		},
		Paths: PathsConfig{
			Input:  "data/input",
			Output: "data/output",
		},
	}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	if cfg.Pipeline.MaxWordsPerChunk != 1500 {
		t.Errorf("MaxWordsPerChunk = %d, want 1500", cfg.Pipeline.MaxWordsPerChunk)
	}
	if cfg.Pipeline.MaxRetryAttempts != 3 {
		t.Errorf("MaxRetryAttempts = %d, want 3", cfg.Pipeline.MaxRetryAttempts)
	}
	if cfg.Pipeline.RetryDelay.Std() != 2*time.Second {
		t.Errorf("RetryDelay = %v, want 2s", cfg.Pipeline.RetryDelay.Std())
	}
	if cfg.Pipeline.Concurrency != 5 {
		t.Errorf("Concurrency = %d, want 5", cfg.Pipeline.Concurrency)
	}
	if cfg.Pipeline.ChunkCharBudget != 8000 {
		t.Errorf("ChunkCharBudget = %d, want 8000", cfg.Pipeline.ChunkCharBudget)
	}
	if cfg.Pipeline.SynthesisCharBudget != 12000 {
		t.Errorf("SynthesisCharBudget = %d, want 12000", cfg.Pipeline.SynthesisCharBudget)
	}
	if cfg.Pipeline.CacheTTL.Std() != time.Hour {
		t.Errorf("CacheTTL = %v, want 1h", cfg.Pipeline.CacheTTL.Std())
	}
	if len(cfg.Transcript.Languages) != 2 || cfg.Transcript.Languages[0] != "es" {
		t.Errorf("Languages = %v, want [es en]", cfg.Transcript.Languages)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want info", cfg.Logging.Level)
	}
}

func TestLoad(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "config-*.yaml")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())

	content := `
textgen:
  provider: "openai"
  model: "gpt-4-turbo"
  api_key: "${SUMMARY_FLOW_TEST_KEY}"
  request_timeout: "30s"

pipeline:
  max_words_per_chunk: 800
  retry_delay: "500ms"
  cache_ttl: "10m"

paths:
  input: "data/input"
  output: "data/output"

logging:
  level: "debug"
`

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	t.Setenv("SUMMARY_FLOW_TEST_KEY", "sk-from-env")

	cfg, err := Load(tmpfile.Name())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.TextGen.APIKey != "sk-from-env" {
		t.Errorf("APIKey = %q, want env-expanded value", cfg.TextGen.APIKey)
	}
	if cfg.TextGen.RequestTimeout.Std() != 30*time.Second {
		t.Errorf("RequestTimeout = %v, want 30s", cfg.TextGen.RequestTimeout.Std())
	}
	if cfg.Pipeline.MaxWordsPerChunk != 800 {
		t.Errorf("MaxWordsPerChunk = %d, want 800", cfg.Pipeline.MaxWordsPerChunk)
	}
	if cfg.Pipeline.RetryDelay.Std() != 500*time.Millisecond {
		t.Errorf("RetryDelay = %v, want 500ms", cfg.Pipeline.RetryDelay.Std())
	}
	if cfg.Pipeline.CacheTTL.Std() != 10*time.Minute {
		t.Errorf("CacheTTL = %v, want 10m", cfg.Pipeline.CacheTTL.Std())
	}
}

func TestLoadInvalidFile(t *testing.T) {
	if _, err := Load("nonexistent.yaml"); err == nil {
		t.Error("Load() should return error for nonexistent file")
	}
}

func TestLoadBadDuration(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "config-*.yaml")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())

	content := `
textgen:
  provider: "openai"
  model: "gpt-4-turbo"
  api_key: "sk-test"
  request_timeout: "soon"
paths:
  input: "in"
  output: "out"
`
	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	tmpfile.Close()

	if _, err := Load(tmpfile.Name()); err == nil {
		t.Error("Load() should reject unparseable durations")
	}
}
