package async_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/notepad/pkg/utils/async"
	"github.com/secmon-lab/notepad/pkg/utils/logging"
)

func TestDispatch(t *testing.T) {
	t.Run("outlives cancelled parent", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		var handlerErr error
		done := async.Dispatch(ctx, func(ctx context.Context) error {
			handlerErr = ctx.Err()
			return nil
		})
		<-done

		gt.NoError(t, handlerErr)
	})

	t.Run("keeps logger and logs failures", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		ctx := logging.With(t.Context(), logger)

		done := async.Dispatch(ctx, func(ctx context.Context) error {
			return errors.New("boom")
		})
		<-done

		gt.String(t, buf.String()).Contains("async handler failed")
		gt.String(t, buf.String()).Contains("boom")
	})

	t.Run("recovers panic", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		ctx := logging.With(t.Context(), logger)

		done := async.Dispatch(ctx, func(ctx context.Context) error {
			panic("unexpected")
		})
		<-done

		gt.String(t, buf.String()).Contains("panic in async handler")
	})
}
