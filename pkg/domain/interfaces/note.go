package interfaces

import (
	"context"

	"github.com/secmon-lab/notepad/pkg/domain/model"
)

// NoteRepository defines the interface for note persistence. Every operation is scoped to
// the owning user.
type NoteRepository interface {
	// Create stores a new note and returns it with ID and CreatedAt assigned
	Create(ctx context.Context, userID model.UserID, content string) (*model.NoteRecord, error)

	// List returns the user's notes, newest first
	List(ctx context.Context, userID model.UserID) ([]*model.NoteRecord, error)

	// Delete removes a note owned by userID. Notes of other users are reported as not found.
	Delete(ctx context.Context, userID model.UserID, id model.NoteID) error
}
