package testutil

import (
	"context"
)

// SyncRunner implements taskrunner.Runner by executing tasks inline, so tests
// can assert on detached side effects without waiting
type SyncRunner struct {
	// Errors records the per-task error results, keyed by task name
	Errors map[string]error
}

// NewSyncRunner creates a new synchronous task runner
func NewSyncRunner() *SyncRunner {
	return &SyncRunner{
		Errors: make(map[string]error),
	}
}

func (r *SyncRunner) Detach(name string, fn func(ctx context.Context) error) {
	r.Errors[name] = fn(context.Background())
}

func (r *SyncRunner) Shutdown() {}
