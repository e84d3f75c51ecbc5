package page

import (
	"context"
	"slices"

	"github.com/secmon-lab/notepad/pkg/domain/interfaces"
	"github.com/secmon-lab/notepad/pkg/domain/model"
	"github.com/secmon-lab/notepad/pkg/domain/types"
	"github.com/secmon-lab/notepad/pkg/utils/logging"
)

// Page is the controller of one booted route. A page lives from Boot to Teardown and is never
// reused: navigation always builds a fresh one.
type Page interface {
	Route() types.Route
	// Start runs the work a page does right after it is displayed
	Start(ctx context.Context)
	// Teardown invalidates the page; completions of operations still in flight are dropped
	Teardown()

	Status() model.StatusMessage
	OnStatus(fn StatusListener) func()
}

// StatusListener receives every status change of a page, including clears. It is called while
// the page is locked and must not call back into the page.
type StatusListener func(msg model.StatusMessage)

// Boot builds the controller for route. RouteNone and unknown routes boot nothing and return nil.
func Boot(ctx context.Context, route types.Route, api interfaces.NotesAPI, nav interfaces.Navigator) Page {
	switch route {
	case types.RouteAuth:
		return NewAuthPage(api, nav)
	case types.RouteDashboard:
		return NewDashboard(api, nav)
	default:
		logging.From(ctx).Debug("no page for route", "route", route)
		return nil
	}
}

// lifecycle is the epoch token of a page. Callers hold the page mutex.
type lifecycle struct {
	epoch  uint64
	closed bool
}

// begin returns the token an operation carries until its completion
func (l *lifecycle) begin() uint64 {
	return l.epoch
}

// current reports whether a completion carrying token may still touch the page
func (l *lifecycle) current(token uint64) bool {
	return !l.closed && l.epoch == token
}

func (l *lifecycle) end() {
	l.closed = true
	l.epoch++
}

// statusBoard holds the single status area of a page. Callers hold the page mutex.
type statusBoard struct {
	current   model.StatusMessage
	listeners map[int]StatusListener
	nextID    int
}

func (b *statusBoard) set(msg model.StatusMessage) {
	b.current = msg
	for _, id := range b.order() {
		b.listeners[id](msg)
	}
}

func (b *statusBoard) clear() {
	b.set(model.StatusMessage{})
}

func (b *statusBoard) subscribe(fn StatusListener) int {
	if b.listeners == nil {
		b.listeners = make(map[int]StatusListener)
	}
	id := b.nextID
	b.nextID++
	b.listeners[id] = fn
	return id
}

func (b *statusBoard) unsubscribe(id int) {
	delete(b.listeners, id)
}

func (b *statusBoard) order() []int {
	ids := make([]int, 0, len(b.listeners))
	for id := range b.listeners {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
