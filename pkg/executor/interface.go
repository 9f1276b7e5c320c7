package executor

import "context"

// Executor runs external commands, returning their stdout. Used to drive
// caption download tools.
type Executor interface {
	Execute(ctx context.Context, name string, args ...string) (string, error)
}
