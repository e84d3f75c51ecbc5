package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
)

// NoteTimeFormat is how the reference backend renders created_at on the wire
const NoteTimeFormat = "2006-01-02 15:04:05"

// NoteRecord is a note as persisted by the reference backend, owned by a single user
type NoteRecord struct {
	ID        NoteID    `firestore:"ID"`
	UserID    UserID    `firestore:"UserID"`
	Content   string    `firestore:"Content"`
	CreatedAt time.Time `firestore:"CreatedAt"`
}

// Validate checks if the NoteRecord is valid
func (r *NoteRecord) Validate() error {
	if err := r.ID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid note record")
	}
	if err := r.UserID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid note record", goerr.V("id", r.ID))
	}
	if r.Content == "" {
		return goerr.New("note content is required", goerr.V("id", r.ID))
	}
	return nil
}

// ToNote converts the record to its wire form
func (r *NoteRecord) ToNote() Note {
	return Note{
		ID:        r.ID,
		Content:   r.Content,
		CreatedAt: r.CreatedAt.UTC().Format(NoteTimeFormat),
	}
}
