package worker

import "context"

// Sweep runs one sweep cycle for testing
func (w *SessionSweeper) Sweep(ctx context.Context) (int, error) {
	return w.sweep(ctx)
}
