package config

import (
	"fmt"
	"time"
)

type Config struct {
	TextGen    TextGenConfig    `yaml:"textgen"`
	Pipeline   PipelineConfig   `yaml:"pipeline"`
	Paths      PathsConfig      `yaml:"paths"`
	Transcript TranscriptConfig `yaml:"transcript"`
	Logging    LoggingConfig    `yaml:"logging"`
}

type TextGenConfig struct {
	Provider       string   `yaml:"provider"`
	Model          string   `yaml:"model"`
	APIKey         string   `yaml:"api_key"`
	BaseURL        string   `yaml:"base_url"`
	RequestTimeout Duration `yaml:"request_timeout"`
}

type PipelineConfig struct {
	MaxWordsPerChunk     int      `yaml:"max_words_per_chunk"`
	MaxRetryAttempts     int      `yaml:"max_retry_attempts"`
	RetryDelay           Duration `yaml:"retry_delay"`
	Concurrency          int      `yaml:"concurrency"`
	ChunkCharBudget      int      `yaml:"chunk_char_budget"`
	SynthesisCharBudget  int      `yaml:"synthesis_char_budget"`
	ChunkMaxTokens       int      `yaml:"chunk_max_tokens"`
	SummaryMaxTokens     int      `yaml:"summary_max_tokens"`
	ChunkTemperature     float64  `yaml:"chunk_temperature"`
	SynthesisTemperature float64  `yaml:"synthesis_temperature"`
	CacheTTL             Duration `yaml:"cache_ttl"`
}

type PathsConfig struct {
	Input    string `yaml:"input"`
	Output   string `yaml:"output"`
	Archived string `yaml:"archived"`
}

type TranscriptConfig struct {
	Languages []string `yaml:"languages"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func (c *Config) Validate() error {
	switch c.TextGen.Provider {
	case "openai", "gemini":
	case "":
		return fmt.Errorf("textgen.provider is required")
	default:
		return fmt.Errorf("textgen.provider %q is not supported (openai, gemini)", c.TextGen.Provider)
	}
	if c.TextGen.Model == "" {
		return fmt.Errorf("textgen.model is required")
	}
	if c.TextGen.APIKey == "" {
		return fmt.Errorf("textgen.api_key is required")
	}
	if c.Paths.Input == "" {
		return fmt.Errorf("paths.input is required")
	}
	if c.Paths.Output == "" {
		return fmt.Errorf("paths.output is required")
	}

	if c.TextGen.RequestTimeout == 0 {
		c.TextGen.RequestTimeout = Duration(60 * time.Second)
	}
	if c.Paths.Archived == "" {
		c.Paths.Archived = "data/archived"
	}
	if c.Pipeline.MaxWordsPerChunk == 0 {
		c.Pipeline.MaxWordsPerChunk = 1500
	}
	if c.Pipeline.MaxRetryAttempts == 0 {
		c.Pipeline.MaxRetryAttempts = 3
	}
	if c.Pipeline.RetryDelay == 0 {
		c.Pipeline.RetryDelay = Duration(2 * time.Second)
	}
	if c.Pipeline.Concurrency == 0 {
		c.Pipeline.Concurrency = 5
	}
	if c.Pipeline.ChunkCharBudget == 0 {
		c.Pipeline.ChunkCharBudget = 8000
	}
	if c.Pipeline.SynthesisCharBudget == 0 {
		c.Pipeline.SynthesisCharBudget = 12000
	}
	if c.Pipeline.ChunkMaxTokens == 0 {
		c.Pipeline.ChunkMaxTokens = 200
	}
	if c.Pipeline.SummaryMaxTokens == 0 {
		c.Pipeline.SummaryMaxTokens = 1500
	}
	if c.Pipeline.ChunkTemperature == 0 {
		c.Pipeline.ChunkTemperature = 0.5
	}
	if c.Pipeline.SynthesisTemperature == 0 {
		c.Pipeline.SynthesisTemperature = 0.7
	}
	if c.Pipeline.CacheTTL == 0 {
		c.Pipeline.CacheTTL = Duration(time.Hour)
	}
	if len(c.Transcript.Languages) == 0 {
		c.Transcript.Languages = []string{"es", "en"}
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}

	return nil
}
