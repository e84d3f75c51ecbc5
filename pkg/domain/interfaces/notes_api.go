package interfaces

import (
	"context"

	"github.com/secmon-lab/notepad/pkg/domain/model"
)

// NotesAPI is the backend contract the client pages rely on. Implementations return
// *notesapi.Failure for every failure so pages can turn it into a status message.
type NotesAPI interface {
	Login(ctx context.Context, username, password string) error
	Register(ctx context.Context, username, password string) error
	Logout(ctx context.Context) error

	// ListNotes returns notes in display order
	ListNotes(ctx context.Context) ([]model.Note, error)
	// CreateNote returns the authoritative note assigned by the backend
	CreateNote(ctx context.Context, content string) (*model.Note, error)
	DeleteNote(ctx context.Context, id model.NoteID) error
}
