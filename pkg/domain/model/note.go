package model

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

// NoteID is an opaque, backend-assigned note identifier. Backends may send it as a JSON
// number or a JSON string; the textual form is kept either way.
type NoteID string

// NewNoteID generates a new UUID v4 NoteID
func NewNoteID() NoteID {
	return NoteID(uuid.New().String())
}

func (id NoteID) String() string {
	return string(id)
}

// Validate checks that the ID is set
func (id NoteID) Validate() error {
	if strings.TrimSpace(string(id)) == "" {
		return goerr.New("note ID is empty")
	}
	return nil
}

// UnmarshalJSON accepts both `"abc"` and `7`
func (id *NoteID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return goerr.Wrap(err, "failed to decode note ID")
		}
		*id = NoteID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return goerr.Wrap(err, "note ID must be a string or a number", goerr.V("raw", string(data)))
	}
	*id = NoteID(n.String())
	return nil
}

// Note is one memo as the client sees it. CreatedAt is display-only and never parsed.
type Note struct {
	ID        NoteID `json:"id"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}

// Validate checks that a note received from the backend is usable
func (n *Note) Validate() error {
	if n == nil {
		return goerr.New("note is nil")
	}
	if err := n.ID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid note")
	}
	return nil
}
