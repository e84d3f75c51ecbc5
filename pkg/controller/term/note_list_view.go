package term

import (
	"fmt"
	"io"
	"slices"
	"sync"

	"github.com/secmon-lab/notepad/pkg/domain/model"
)

// NoteListView mirrors a NoteList into rendered rows. It is the only writer of note
// presentation: rows change exactly as the list reports, in the same positions.
type NoteListView struct {
	out     io.Writer
	colors  *palette
	mu      sync.Mutex
	rows    []model.Note
	unwatch func()
}

func NewNoteListView(out io.Writer, colors *palette) *NoteListView {
	return &NoteListView{out: out, colors: colors}
}

// Attach starts mirroring list, dropping whatever the view showed before. Attach before the
// list starts changing, as the boot hook does.
func (v *NoteListView) Attach(list *model.NoteList) {
	v.mu.Lock()
	if v.unwatch != nil {
		v.unwatch()
	}
	v.rows = list.Notes()
	v.mu.Unlock()

	unwatch := list.Subscribe(v.apply)

	v.mu.Lock()
	v.unwatch = unwatch
	v.mu.Unlock()
}

// Detach stops mirroring and clears the rows
func (v *NoteListView) Detach() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.unwatch != nil {
		v.unwatch()
		v.unwatch = nil
	}
	v.rows = nil
}

func (v *NoteListView) apply(ev model.NoteListEvent) {
	v.mu.Lock()
	defer v.mu.Unlock()

	switch ev.Op {
	case model.NoteInserted:
		idx := min(max(ev.Index, 0), len(v.rows))
		v.rows = slices.Insert(v.rows, idx, ev.Note)
		fmt.Fprintln(v.out, v.colors.added.Sprint("+ ")+formatNote(ev.Note))
	case model.NoteRemoved:
		if ev.Index >= 0 && ev.Index < len(v.rows) {
			v.rows = slices.Delete(v.rows, ev.Index, ev.Index+1)
		}
		fmt.Fprintln(v.out, v.colors.gone.Sprint("- ")+formatNote(ev.Note))
	case model.NoteListReset:
		v.rows = nil
	}
}

// Rows returns the displayed notes, top first
func (v *NoteListView) Rows() []model.Note {
	v.mu.Lock()
	defer v.mu.Unlock()
	return slices.Clone(v.rows)
}

// Render prints the whole list
func (v *NoteListView) Render(w io.Writer) {
	rows := v.Rows()
	if len(rows) == 0 {
		fmt.Fprintln(w, v.colors.dim.Sprint("(no notes)"))
		return
	}
	for i, note := range rows {
		fmt.Fprintf(w, "%2d. %s\n", i+1, formatNote(note))
	}
}

func formatNote(note model.Note) string {
	return fmt.Sprintf("[%s] %s  (%s)", note.ID, note.Content, note.CreatedAt)
}
