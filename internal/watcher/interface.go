package watcher

import "context"

// Watcher monitors the input directory for new transcript files.
type Watcher interface {
	// Start blocks, dispatching the handler for each new transcript until
	// ctx is cancelled.
	Start(ctx context.Context) error
	Stop() error
}

// EventHandler processes one detected transcript file.
type EventHandler func(ctx context.Context, filePath string) error
