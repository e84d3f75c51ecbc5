package notesapi

import (
	"context"
	"net/http"
	"net/url"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/notepad/pkg/domain/interfaces"
	"github.com/secmon-lab/notepad/pkg/domain/model"
)

// Endpoints consumed by the client
const (
	EndpointLogin    = "/api/login"
	EndpointRegister = "/api/register"
	EndpointLogout   = "/api/logout"
	EndpointNotes    = "/api/notes"
)

var _ interfaces.NotesAPI = &Client{}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password" masq:"secret"`
}

type createNoteRequest struct {
	Content string `json:"content"`
}

// Login establishes a session; the backend sets the session cookies
func (c *Client) Login(ctx context.Context, username, password string) error {
	_, err := c.Call(ctx, http.MethodPost, EndpointLogin, credentialsRequest{Username: username, Password: password})
	return err
}

// Register creates an account. It does not log in.
func (c *Client) Register(ctx context.Context, username, password string) error {
	_, err := c.Call(ctx, http.MethodPost, EndpointRegister, credentialsRequest{Username: username, Password: password})
	return err
}

// Logout ends the session
func (c *Client) Logout(ctx context.Context) error {
	_, err := c.Call(ctx, http.MethodPost, EndpointLogout, nil)
	return err
}

// ListNotes returns every note of the session user in display order
func (c *Client) ListNotes(ctx context.Context) ([]model.Note, error) {
	payload, status, err := c.call(ctx, http.MethodGet, EndpointNotes, nil)
	if err != nil {
		return nil, err
	}

	var notes []model.Note
	if err := payload.Decode("notes", &notes); err != nil {
		return nil, protocolFailure(err, status, http.MethodGet, EndpointNotes)
	}
	for i := range notes {
		if err := notes[i].Validate(); err != nil {
			return nil, protocolFailure(goerr.Wrap(err, "invalid note in list", goerr.V("index", i)), status, http.MethodGet, EndpointNotes)
		}
	}
	if notes == nil {
		notes = []model.Note{}
	}

	return notes, nil
}

// CreateNote stores content and returns the note as the backend recorded it
func (c *Client) CreateNote(ctx context.Context, content string) (*model.Note, error) {
	payload, status, err := c.call(ctx, http.MethodPost, EndpointNotes, createNoteRequest{Content: content})
	if err != nil {
		return nil, err
	}

	var note model.Note
	if err := payload.Decode("note", &note); err != nil {
		return nil, protocolFailure(err, status, http.MethodPost, EndpointNotes)
	}
	if err := note.Validate(); err != nil {
		return nil, protocolFailure(err, status, http.MethodPost, EndpointNotes)
	}

	return &note, nil
}

// DeleteNote removes a note by ID
func (c *Client) DeleteNote(ctx context.Context, id model.NoteID) error {
	_, err := c.Call(ctx, http.MethodDelete, noteEndpoint(id), nil)
	return err
}

func noteEndpoint(id model.NoteID) string {
	return EndpointNotes + "/" + url.PathEscape(id.String())
}
