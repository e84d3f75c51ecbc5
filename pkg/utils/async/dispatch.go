package async

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/notepad/pkg/utils/errutil"
	"github.com/secmon-lab/notepad/pkg/utils/logging"
)

// Dispatch runs handler in a new goroutine. The handler context keeps the values of ctx, such
// as the logger, but not its cancellation. Errors and panics are logged. The returned channel
// is closed once handler has returned.
func Dispatch(ctx context.Context, handler func(ctx context.Context) error) <-chan struct{} {
	bgCtx := context.WithoutCancel(ctx)
	done := make(chan struct{})

	go func() {
		defer close(done)
		defer func() {
			if r := recover(); r != nil {
				_ = errutil.Handle(bgCtx, goerr.New("panic in async handler", goerr.V("panic", r)), "panic in async handler")
			}
		}()

		if err := handler(bgCtx); err != nil {
			logging.From(bgCtx).Warn("async handler failed", "error", err)
		}
	}()

	return done
}
