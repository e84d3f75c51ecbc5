package interfaces

import (
	"context"

	"github.com/secmon-lab/notepad/pkg/domain/types"
)

// Navigator performs a hard navigation: the current page is torn down and the page for route
// is booted from scratch. Only the session held by the transport survives.
type Navigator interface {
	Navigate(ctx context.Context, route types.Route) error
}
