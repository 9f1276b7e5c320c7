package processor

import "context"

// Processor handles one transcript from source file to written summary
type Processor interface {
	Process(ctx context.Context, transcriptPath string) error
}
