package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// Runner drives several sessions concurrently, each session sequential
// internally. A buffered channel acts as the concurrency semaphore.
type Runner struct {
	maxConcurrent int
	timeout       time.Duration
	logger        *slog.Logger
}

// RunnerOption customizes a runner.
type RunnerOption func(*Runner)

// WithMaxConcurrent caps how many sessions generate at once.
func WithMaxConcurrent(n int) RunnerOption {
	return func(r *Runner) {
		if n > 0 {
			r.maxConcurrent = n
		}
	}
}

// WithSessionTimeout bounds each session's total generation time.
func WithSessionTimeout(d time.Duration) RunnerOption {
	return func(r *Runner) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// WithRunnerLogger sets the runner logger.
func WithRunnerLogger(logger *slog.Logger) RunnerOption {
	return func(r *Runner) {
		r.logger = logger
	}
}

// NewRunner builds a runner with sensible defaults.
func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{
		maxConcurrent: 4,
		timeout:       6 * time.Hour,
		logger:        slog.Default().With("component", "runner"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SessionResult pairs a session with its generated scenes or failure.
type SessionResult struct {
	SessionID string
	Title     string
	Scenes    []GeneratedScene
	Err       error
}

// RunAll generates every session's full story. The first failure cancels
// the remaining sessions; results for sessions that completed before the
// failure are still returned.
func (r *Runner) RunAll(ctx context.Context, sessions []*Session) ([]SessionResult, error) {
	if len(sessions) == 0 {
		return nil, nil
	}

	r.logger.Info("Starting session batch",
		"sessions", len(sessions),
		"max_concurrent", r.maxConcurrent,
	)

	g, ctx := errgroup.WithContext(ctx)
	sem := make(chan struct{}, r.maxConcurrent)

	var mu sync.Mutex
	var results []SessionResult

	for _, sess := range sessions {
		sess := sess

		g.Go(func() error {
			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				return ctx.Err()
			}

			sessCtx, cancel := context.WithTimeout(ctx, r.timeout)
			defer cancel()

			scenes, err := sess.GenerateStory(sessCtx)

			mu.Lock()
			results = append(results, SessionResult{
				SessionID: sess.ID(),
				Title:     sess.Title(),
				Scenes:    scenes,
				Err:       err,
			})
			mu.Unlock()

			if err != nil {
				return fmt.Errorf("session %s (%s): %w", sess.ID(), sess.Title(), err)
			}
			return nil
		})
	}

	err := g.Wait()

	r.logger.Info("Session batch finished",
		"sessions", len(sessions),
		"results", len(results),
		"failed", err != nil,
	)

	return results, err
}
