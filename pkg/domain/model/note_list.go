package model

import (
	"slices"
	"sync"
)

// NoteListOp is the kind of change a NoteList emits
type NoteListOp int

const (
	NoteInserted NoteListOp = iota + 1
	NoteRemoved
	NoteListReset
)

func (op NoteListOp) String() string {
	switch op {
	case NoteInserted:
		return "inserted"
	case NoteRemoved:
		return "removed"
	case NoteListReset:
		return "reset"
	default:
		return "unknown"
	}
}

// NoteListEvent describes one change. Index is the position the note was inserted at or
// removed from; it is 0 for NoteListReset.
type NoteListEvent struct {
	Op    NoteListOp
	Note  Note
	Index int
}

// NoteListListener receives change events in the order they happened
type NoteListListener func(ev NoteListEvent)

// NoteList is the ordered collection of notes currently displayed. It never sorts: the order
// is exactly the order of the insert calls. Listeners run synchronously after each change and
// must not mutate the list.
type NoteList struct {
	// emitMu serializes change+notify so listeners observe events in mutation order
	emitMu    sync.Mutex
	mu        sync.RWMutex
	notes     []Note
	listeners map[int]NoteListListener
	nextID    int
}

func NewNoteList() *NoteList {
	return &NoteList{
		listeners: make(map[int]NoteListListener),
	}
}

// Subscribe registers a listener and returns a function removing it
func (l *NoteList) Subscribe(fn NoteListListener) func() {
	l.mu.Lock()
	defer l.mu.Unlock()

	id := l.nextID
	l.nextID++
	l.listeners[id] = fn

	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		delete(l.listeners, id)
	}
}

// InsertAtHead puts a newly created note first
func (l *NoteList) InsertAtHead(note Note) {
	l.emitMu.Lock()
	defer l.emitMu.Unlock()

	l.mu.Lock()
	l.notes = append([]Note{note}, l.notes...)
	listeners := l.snapshotListeners()
	l.mu.Unlock()

	notify(listeners, NoteListEvent{Op: NoteInserted, Note: note, Index: 0})
}

// InsertAtTail appends a note, used for bulk loading in response order
func (l *NoteList) InsertAtTail(note Note) {
	l.emitMu.Lock()
	defer l.emitMu.Unlock()

	l.mu.Lock()
	l.notes = append(l.notes, note)
	idx := len(l.notes) - 1
	listeners := l.snapshotListeners()
	l.mu.Unlock()

	notify(listeners, NoteListEvent{Op: NoteInserted, Note: note, Index: idx})
}

// Remove deletes the note with id. Absent ids are a no-op and emit nothing.
func (l *NoteList) Remove(id NoteID) bool {
	l.emitMu.Lock()
	defer l.emitMu.Unlock()

	l.mu.Lock()
	idx := -1
	for i := range l.notes {
		if l.notes[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		l.mu.Unlock()
		return false
	}

	removed := l.notes[idx]
	l.notes = append(l.notes[:idx], l.notes[idx+1:]...)
	listeners := l.snapshotListeners()
	l.mu.Unlock()

	notify(listeners, NoteListEvent{Op: NoteRemoved, Note: removed, Index: idx})
	return true
}

// Reset discards every note
func (l *NoteList) Reset() {
	l.emitMu.Lock()
	defer l.emitMu.Unlock()

	l.mu.Lock()
	l.notes = nil
	listeners := l.snapshotListeners()
	l.mu.Unlock()

	notify(listeners, NoteListEvent{Op: NoteListReset})
}

// Notes returns a copy of the current sequence
func (l *NoteList) Notes() []Note {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]Note, len(l.notes))
	copy(out, l.notes)
	return out
}

func (l *NoteList) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.notes)
}

// Contains reports whether a note with id is present
func (l *NoteList) Contains(id NoteID) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()

	for _, n := range l.notes {
		if n.ID == id {
			return true
		}
	}
	return false
}

// snapshotListeners must be called with mu held
func (l *NoteList) snapshotListeners() []NoteListListener {
	if len(l.listeners) == 0 {
		return nil
	}

	ids := make([]int, 0, len(l.listeners))
	for id := range l.listeners {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	out := make([]NoteListListener, len(ids))
	for i, id := range ids {
		out[i] = l.listeners[id]
	}
	return out
}

func notify(listeners []NoteListListener, ev NoteListEvent) {
	for _, fn := range listeners {
		fn(ev)
	}
}
