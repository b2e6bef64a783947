package taskrunner

import (
	"context"
	"time"

	"github.com/sourcegraph/conc/panics"
	"github.com/sourcegraph/conc/pool"

	"github.com/partnerflow/partnerflow/internal/logger"
)

// DefaultTaskTimeout bounds a single detached task
const DefaultTaskTimeout = 30 * time.Second

// Runner executes detached tasks outside the main response path.
// Tasks submitted before Shutdown are guaranteed to run to completion;
// their failures are logged and never surface to the submitting caller.
type Runner interface {
	// Detach schedules fn to run in the background. The context handed to fn
	// is derived from the background context, not the caller's, so a task
	// keeps running after the triggering request has returned.
	Detach(name string, fn func(ctx context.Context) error)

	// Shutdown drains all in-flight tasks
	Shutdown()
}

type runner struct {
	pool   *pool.Pool
	logger *logger.Logger
}

// NewRunner creates a task runner with a bounded goroutine pool
func NewRunner(log *logger.Logger) Runner {
	return &runner{
		pool:   pool.New().WithMaxGoroutines(16),
		logger: log,
	}
}

func (r *runner) Detach(name string, fn func(ctx context.Context) error) {
	r.pool.Go(func() {
		ctx, cancel := context.WithTimeout(context.Background(), DefaultTaskTimeout)
		defer cancel()

		var catcher panics.Catcher
		var err error
		catcher.Try(func() {
			err = fn(ctx)
		})

		if recovered := catcher.Recovered(); recovered != nil {
			r.logger.Errorw("detached task panicked",
				"task", name,
				"panic", recovered.String(),
			)
			return
		}

		if err != nil {
			r.logger.Errorw("detached task failed",
				"task", name,
				"error", err,
			)
		}
	})
}

func (r *runner) Shutdown() {
	r.pool.Wait()
}
