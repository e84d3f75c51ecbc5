package page

import (
	"context"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/notepad/pkg/domain/interfaces"
	"github.com/secmon-lab/notepad/pkg/domain/types"
	"github.com/secmon-lab/notepad/pkg/utils/logging"
)

// BootHook is called for every booted page before it starts, so views can attach to it.
// page is nil when the route has no controller. Hooks must not navigate.
type BootHook func(route types.Route, page Page)

// App owns the current page the way a browser tab does. Only the transport, and with it the
// session cookies, outlives a navigation.
type App struct {
	api interfaces.NotesAPI

	// navMu serializes navigations from teardown through the boot hooks
	navMu sync.Mutex

	mu    sync.Mutex
	route types.Route
	page  Page
	hooks []BootHook
}

var _ interfaces.Navigator = &App{}

type AppOption func(*App)

// WithBootHook registers hook for every boot
func WithBootHook(hook BootHook) AppOption {
	return func(a *App) {
		a.hooks = append(a.hooks, hook)
	}
}

func NewApp(api interfaces.NotesAPI, opts ...AppOption) *App {
	a := &App{api: api}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Open resolves path and navigates to it, like typing a URL
func (a *App) Open(ctx context.Context, path string) error {
	return a.Navigate(ctx, types.ParseRoute(path))
}

// Navigate tears the current page down and boots the page of route. Concurrent navigations
// run one at a time, so hooks always see pages in the order they became current. Start runs
// after the next navigation may begin; a page torn down meanwhile drops its completions.
func (a *App) Navigate(ctx context.Context, route types.Route) error {
	if err := ctx.Err(); err != nil {
		return goerr.Wrap(err, "navigation cancelled", goerr.V("route", route))
	}

	next := a.swap(ctx, route)
	if next != nil {
		next.Start(ctx)
	}
	return nil
}

func (a *App) swap(ctx context.Context, route types.Route) Page {
	a.navMu.Lock()
	defer a.navMu.Unlock()

	a.mu.Lock()
	if a.page != nil {
		a.page.Teardown()
	}
	next := Boot(ctx, route, a.api, a)
	a.route = route
	a.page = next
	hooks := a.hooks
	a.mu.Unlock()

	logging.From(ctx).Debug("navigated", "route", route)

	for _, hook := range hooks {
		hook(route, next)
	}
	return next
}

// Current returns the route and page being displayed. page is nil before the first navigation
// and on routes without a controller.
func (a *App) Current() (types.Route, Page) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.route, a.page
}

// Close tears down the current page
func (a *App) Close() {
	a.navMu.Lock()
	defer a.navMu.Unlock()

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.page != nil {
		a.page.Teardown()
		a.page = nil
	}
	a.route = types.RouteNone
}
