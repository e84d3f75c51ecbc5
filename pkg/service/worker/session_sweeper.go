package worker

import (
	"context"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/notepad/pkg/domain/interfaces"
	"github.com/secmon-lab/notepad/pkg/utils/logging"
)

// DefaultSweepInterval is how often expired sessions are removed unless configured
const DefaultSweepInterval = 10 * time.Minute

// SessionSweeper periodically deletes expired session tokens. Expired tokens are already
// rejected at validation time; the sweeper only keeps the store from growing.
//
// Architecture assumptions:
// - Several instances may sweep the same store; deleting an expired token twice is harmless
type SessionSweeper struct {
	repo     interfaces.Repository
	interval time.Duration
	now      func() time.Time
	stopCh   chan struct{}
	doneCh   chan struct{}
	stopOnce sync.Once
}

type SweeperOption func(*SessionSweeper)

// WithClock replaces time.Now
func WithClock(now func() time.Time) SweeperOption {
	return func(w *SessionSweeper) {
		w.now = now
	}
}

// NewSessionSweeper creates a new worker for removing expired sessions
func NewSessionSweeper(repo interfaces.Repository, interval time.Duration, opts ...SweeperOption) *SessionSweeper {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	w := &SessionSweeper{
		repo:     repo,
		interval: interval,
		now:      time.Now,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Start begins the background sweep loop. It does not block.
func (w *SessionSweeper) Start(ctx context.Context) error {
	logging.From(ctx).Info("session sweeper starting", "interval", w.interval.String())

	go w.run(ctx)

	return nil
}

// Stop signals the worker to stop and waits for completion
func (w *SessionSweeper) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopCh)
	})
	<-w.doneCh
	logging.Default().Info("session sweeper stopped")
}

// run is the main worker loop (runs in goroutine)
func (w *SessionSweeper) run(ctx context.Context) {
	defer close(w.doneCh)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if _, err := w.sweep(ctx); err != nil {
				// Log error but continue worker
				logging.From(ctx).Error("session sweep failed (will retry next interval)",
					"error", err.Error())
			}

		case <-w.stopCh:
			return

		case <-ctx.Done():
			logging.From(ctx).Info("session sweeper context cancelled")
			return
		}
	}
}

// sweep performs a single cycle
func (w *SessionSweeper) sweep(ctx context.Context) (int, error) {
	start := w.now()

	removed, err := w.repo.DeleteExpiredTokens(ctx, start)
	if err != nil {
		return removed, goerr.Wrap(err, "failed to delete expired tokens", goerr.V("removed", removed))
	}

	if removed > 0 {
		logging.From(ctx).Info("expired sessions removed",
			"count", removed,
			"duration", time.Since(start).String())
	}
	return removed, nil
}
