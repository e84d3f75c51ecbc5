package term_test

import (
	"context"
	"sync"

	"github.com/secmon-lab/notepad/pkg/domain/model"
)

// mockAPI answers every call successfully with an empty note list
type mockAPI struct{}

func (m *mockAPI) Login(ctx context.Context, username, password string) error    { return nil }
func (m *mockAPI) Register(ctx context.Context, username, password string) error { return nil }
func (m *mockAPI) Logout(ctx context.Context) error                              { return nil }
func (m *mockAPI) ListNotes(ctx context.Context) ([]model.Note, error)           { return []model.Note{}, nil }
func (m *mockAPI) CreateNote(ctx context.Context, content string) (*model.Note, error) {
	return &model.Note{ID: "1", Content: content, CreatedAt: "t"}, nil
}
func (m *mockAPI) DeleteNote(ctx context.Context, id model.NoteID) error { return nil }

// credentialsAPI records the credentials of every login and registration
type credentialsAPI struct {
	mockAPI
	mu    sync.Mutex
	creds [][2]string
}

func (m *credentialsAPI) record(username, password string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creds = append(m.creds, [2]string{username, password})
}

func (m *credentialsAPI) Login(ctx context.Context, username, password string) error {
	m.record(username, password)
	return nil
}

func (m *credentialsAPI) Register(ctx context.Context, username, password string) error {
	m.record(username, password)
	return nil
}

func (m *credentialsAPI) Credentials() [][2]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([][2]string(nil), m.creds...)
}
