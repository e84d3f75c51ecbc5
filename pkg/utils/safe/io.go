package safe

import (
	"context"
	"io"
	"log/slog"

	"github.com/secmon-lab/notepad/pkg/utils/logging"
)

// drainLimit caps how much of an unread body is discarded before closing
const drainLimit = 64 << 10

// Close closes closer and logs any error. nil is ignored.
func Close(ctx context.Context, closer io.Closer) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		logging.From(ctx).Warn("failed to close", slog.Any("error", err))
	}
}

// DrainAndClose discards what is left of an HTTP body, up to a limit, and closes it
// so the connection can go back to the pool.
func DrainAndClose(ctx context.Context, body io.ReadCloser) {
	if body == nil {
		return
	}
	if _, err := io.Copy(io.Discard, io.LimitReader(body, drainLimit)); err != nil {
		logging.From(ctx).Debug("failed to drain body", slog.Any("error", err))
	}
	Close(ctx, body)
}
