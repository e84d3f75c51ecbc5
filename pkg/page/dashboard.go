package page

import (
	"context"
	"strings"
	"sync"

	"github.com/secmon-lab/notepad/pkg/domain/interfaces"
	"github.com/secmon-lab/notepad/pkg/domain/model"
	"github.com/secmon-lab/notepad/pkg/domain/types"
	"github.com/secmon-lab/notepad/pkg/service/notesapi"
	"github.com/secmon-lab/notepad/pkg/utils/logging"
)

// Dashboard status texts
const (
	LoadFailedMessage   = "Failed to load notes"
	NoNotesMessage      = "No notes yet. Create your first note above."
	EmptyContentMessage = "Note cannot be empty"
)

// Dashboard is the controller of the "/dashboard" route. It keeps the note list in sync with
// the backend through list, create and delete calls.
type Dashboard struct {
	api interfaces.NotesAPI
	nav interfaces.Navigator

	mu      sync.Mutex
	life    lifecycle
	status  statusBoard
	loadSeq uint64
	draft   string
	list    *model.NoteList
}

var _ Page = &Dashboard{}

func NewDashboard(api interfaces.NotesAPI, nav interfaces.Navigator) *Dashboard {
	return &Dashboard{
		api:  api,
		nav:  nav,
		list: model.NewNoteList(),
	}
}

func (d *Dashboard) Route() types.Route {
	return types.RouteDashboard
}

// Start loads the notes once the page is shown
func (d *Dashboard) Start(ctx context.Context) {
	d.LoadAll(ctx)
}

func (d *Dashboard) Teardown() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.life.end()
}

func (d *Dashboard) Status() model.StatusMessage {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.status.current
}

func (d *Dashboard) OnStatus(fn StatusListener) func() {
	d.mu.Lock()
	defer d.mu.Unlock()
	id := d.status.subscribe(fn)
	return func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		d.status.unsubscribe(id)
	}
}

// List is the displayed note list. Subscribe to it to render; mutate it only through the
// dashboard.
func (d *Dashboard) List() *model.NoteList {
	return d.list
}

// Draft returns the content of the input box
func (d *Dashboard) Draft() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.draft
}

// SetDraft replaces the content of the input box
func (d *Dashboard) SetDraft(content string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.life.closed {
		return
	}
	d.draft = content
}

// LoadAll replaces the list with the backend's notes. Only the latest of overlapping loads is
// applied.
func (d *Dashboard) LoadAll(ctx context.Context) {
	d.mu.Lock()
	if d.life.closed {
		d.mu.Unlock()
		return
	}
	token := d.life.begin()
	d.loadSeq++
	seq := d.loadSeq
	d.mu.Unlock()

	notes, err := d.api.ListNotes(ctx)

	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.life.current(token) {
		logging.From(ctx).Debug("note load completed after teardown, dropped")
		return
	}
	if seq != d.loadSeq {
		logging.From(ctx).Debug("stale note load dropped", "seq", seq, "latest", d.loadSeq)
		return
	}

	d.list.Reset()
	if err != nil {
		logging.From(ctx).Warn("failed to load notes", "error", err)
		d.status.set(model.ErrorStatus(LoadFailedMessage))
		return
	}
	if len(notes) == 0 {
		d.status.set(model.InfoStatus(NoNotesMessage))
		return
	}

	d.status.clear()
	for _, note := range notes {
		d.list.InsertAtTail(note)
	}
}

// Create stores content as a new note and puts it at the top of the list. content is what the
// input box holds when the user submits; it stays there unless the note was created.
func (d *Dashboard) Create(ctx context.Context, content string) {
	d.mu.Lock()
	if d.life.closed {
		d.mu.Unlock()
		return
	}
	d.draft = content
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		d.status.set(model.ErrorStatus(EmptyContentMessage))
		d.mu.Unlock()
		return
	}
	token := d.life.begin()
	d.mu.Unlock()

	note, err := d.api.CreateNote(ctx, trimmed)

	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.life.current(token) {
		logging.From(ctx).Debug("note creation completed after teardown, dropped")
		return
	}
	if err != nil {
		d.status.set(model.ErrorStatus(notesapi.UserMessage(err)))
		logging.From(ctx).Info("failed to create note", "error", err)
		return
	}

	d.draft = ""
	d.status.clear()
	d.list.InsertAtHead(*note)
}

// Delete removes the note from the backend and then from the list. A failed delete changes
// nothing on screen, not even the status.
func (d *Dashboard) Delete(ctx context.Context, id model.NoteID) {
	d.mu.Lock()
	if d.life.closed {
		d.mu.Unlock()
		return
	}
	token := d.life.begin()
	d.mu.Unlock()

	if err := d.api.DeleteNote(ctx, id); err != nil {
		logging.From(ctx).Warn("failed to delete note", "id", id, "error", err)
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.life.current(token) {
		logging.From(ctx).Debug("note deletion completed after teardown, dropped", "id", id)
		return
	}
	d.list.Remove(id)
}

// Logout ends the session and goes back to the auth page whatever the backend answered
func (d *Dashboard) Logout(ctx context.Context) {
	d.mu.Lock()
	if d.life.closed {
		d.mu.Unlock()
		return
	}
	token := d.life.begin()
	d.mu.Unlock()

	if err := d.api.Logout(ctx); err != nil {
		logging.From(ctx).Info("logout failed, leaving anyway", "error", err)
	}

	d.mu.Lock()
	live := d.life.current(token)
	d.mu.Unlock()
	if !live {
		return
	}

	if err := d.nav.Navigate(ctx, types.RouteAuth); err != nil {
		logging.From(ctx).Error("failed to navigate after logout", "error", err)
	}
}
