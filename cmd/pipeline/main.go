package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"

	"github.com/nguyentantai21042004/summary-flow/internal/cache"
	"github.com/nguyentantai21042004/summary-flow/internal/config"
	"github.com/nguyentantai21042004/summary-flow/internal/logger"
	"github.com/nguyentantai21042004/summary-flow/internal/processor"
	"github.com/nguyentantai21042004/summary-flow/internal/summarizer"
	"github.com/nguyentantai21042004/summary-flow/internal/textgen"
	"github.com/nguyentantai21042004/summary-flow/internal/textgen/gemini"
	"github.com/nguyentantai21042004/summary-flow/internal/textgen/openai"
	"github.com/nguyentantai21042004/summary-flow/internal/transcript"
	"github.com/nguyentantai21042004/summary-flow/internal/transcript/filesource"
	"github.com/nguyentantai21042004/summary-flow/internal/transcript/ytdlp"
	"github.com/nguyentantai21042004/summary-flow/internal/watcher"
	"github.com/nguyentantai21042004/summary-flow/pkg/executor"
)

func main() {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Logging.Level)

	// Initialize the text generation client for the configured provider
	client, err := newTextGenClient(ctx, cfg)
	if err != nil {
		log.Error(ctx, "Failed to create %s client: %v", cfg.TextGen.Provider, err)
		os.Exit(1)
	}

	// One-shot mode: summarize the given files or URLs and exit
	if args := os.Args[1:]; len(args) > 0 {
		if err := runOnce(ctx, cfg, client, log, args); err != nil {
			log.Error(ctx, "%v", err)
			os.Exit(1)
		}
		return
	}

	log.Info(ctx, "========================================")
	log.Info(ctx, "Transcript Summarization Pipeline")
	log.Info(ctx, "========================================")
	log.Info(ctx, "System: %s/%s", runtime.GOOS, runtime.GOARCH)
	log.Info(ctx, "CPU Cores: %d", runtime.NumCPU())
	log.Info(ctx, "Provider: %s (%s)", cfg.TextGen.Provider, cfg.TextGen.Model)
	log.Info(ctx, "Max Concurrent Chunks: %d", cfg.Pipeline.Concurrency)
	log.Info(ctx, "Configuration loaded successfully")

	// Verify required directories exist
	if err := ensureDirectories(cfg); err != nil {
		log.Error(ctx, "Failed to create directories: %v", err)
		os.Exit(1)
	}

	// Initialize dependencies
	proc := processor.New(cfg, client, cache.NewMemory(), filesource.New(), log)

	// Create watcher with processor as handler and concurrency control
	w, err := watcher.New(cfg.Paths.Input, proc.Process, log, cfg.Pipeline.Concurrency)
	if err != nil {
		log.Error(ctx, "Failed to create watcher: %v", err)
		os.Exit(1)
	}
	defer w.Stop()

	// Create context with cancellation
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Setup graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Start watcher in goroutine
	errChan := make(chan error, 1)
	go func() {
		if err := w.Start(ctx); err != nil && err != context.Canceled {
			errChan <- err
		}
	}()

	log.Info(ctx, "========================================")
	log.Info(ctx, "Summarization Pipeline is ready!")
	log.Info(ctx, "Monitoring: %s", cfg.Paths.Input)
	log.Info(ctx, "Output: %s", cfg.Paths.Output)
	log.Info(ctx, "Press Ctrl+C to stop")
	log.Info(ctx, "========================================")

	// Wait for shutdown signal or error
	select {
	case <-sigChan:
		log.Info(ctx, "Shutdown signal received")
	case err := <-errChan:
		log.Error(ctx, "Watcher error: %v", err)
	}

	// Graceful shutdown
	log.Info(ctx, "Shutting down gracefully...")
	cancel()

	log.Info(ctx, "Summarization Pipeline stopped")
}

// newTextGenClient builds the provider client named in the configuration.
func newTextGenClient(ctx context.Context, cfg *config.Config) (textgen.Client, error) {
	switch cfg.TextGen.Provider {
	case "openai":
		opts := []openai.Option{openai.WithTimeout(cfg.TextGen.RequestTimeout.Std())}
		if cfg.TextGen.BaseURL != "" {
			opts = append(opts, openai.WithBaseURL(cfg.TextGen.BaseURL))
		}
		return openai.New(cfg.TextGen.APIKey, cfg.TextGen.Model, opts...)
	case "gemini":
		return gemini.New(ctx, cfg.TextGen.APIKey, cfg.TextGen.Model)
	}
	return nil, fmt.Errorf("unknown text generation provider %q", cfg.TextGen.Provider)
}

// runOnce summarizes each argument in order and streams the results to
// stdout. Arguments are local transcript files, or video URLs resolved
// through yt-dlp.
func runOnce(ctx context.Context, cfg *config.Config, client textgen.Client, log logger.Logger, args []string) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	fileSource := filesource.New()
	urlSource := ytdlp.New(executor.New(), log, cfg.Transcript.Languages)
	store := cache.NewMemory()

	for _, arg := range args {
		source := transcript.Source(fileSource)
		if strings.HasPrefix(arg, "http://") || strings.HasPrefix(arg, "https://") {
			source = urlSource
		}

		text, err := source.Fetch(ctx, arg)
		if err != nil {
			return fmt.Errorf("fetch transcript for %s: %w", arg, err)
		}

		pipe := summarizer.New(cfg, client, store, log)
		events, err := pipe.Run(ctx, text)
		if err != nil {
			return fmt.Errorf("summarize %s: %w", arg, err)
		}

		var streamErr error
		for ev := range events {
			fmt.Print(ev.Delta)
			if ev.Err != nil {
				streamErr = ev.Err
			}
		}
		fmt.Println()
		if streamErr != nil {
			return fmt.Errorf("summarize %s: %w", arg, streamErr)
		}
	}
	return nil
}

// ensureDirectories creates required directories if they don't exist
func ensureDirectories(cfg *config.Config) error {
	dirs := []string{
		cfg.Paths.Input,
		cfg.Paths.Output,
		cfg.Paths.Archived,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}
