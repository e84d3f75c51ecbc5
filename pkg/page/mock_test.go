package page_test

import (
	"context"
	"sync"

	"github.com/secmon-lab/notepad/pkg/domain/model"
	"github.com/secmon-lab/notepad/pkg/domain/types"
)

// mockAPI is a hand written NotesAPI recording every call
type mockAPI struct {
	mu    sync.Mutex
	calls []string

	loginFn    func(ctx context.Context, username, password string) error
	registerFn func(ctx context.Context, username, password string) error
	logoutFn   func(ctx context.Context) error
	listFn     func(ctx context.Context) ([]model.Note, error)
	createFn   func(ctx context.Context, content string) (*model.Note, error)
	deleteFn   func(ctx context.Context, id model.NoteID) error
}

func (m *mockAPI) record(call string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, call)
}

func (m *mockAPI) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string{}, m.calls...)
}

func (m *mockAPI) Login(ctx context.Context, username, password string) error {
	m.record("login:" + username)
	if m.loginFn != nil {
		return m.loginFn(ctx, username, password)
	}
	return nil
}

func (m *mockAPI) Register(ctx context.Context, username, password string) error {
	m.record("register:" + username)
	if m.registerFn != nil {
		return m.registerFn(ctx, username, password)
	}
	return nil
}

func (m *mockAPI) Logout(ctx context.Context) error {
	m.record("logout")
	if m.logoutFn != nil {
		return m.logoutFn(ctx)
	}
	return nil
}

func (m *mockAPI) ListNotes(ctx context.Context) ([]model.Note, error) {
	m.record("list")
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return []model.Note{}, nil
}

func (m *mockAPI) CreateNote(ctx context.Context, content string) (*model.Note, error) {
	m.record("create:" + content)
	if m.createFn != nil {
		return m.createFn(ctx, content)
	}
	return &model.Note{ID: "new", Content: content, CreatedAt: "now"}, nil
}

func (m *mockAPI) DeleteNote(ctx context.Context, id model.NoteID) error {
	m.record("delete:" + id.String())
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

// mockNavigator records requested routes
type mockNavigator struct {
	mu     sync.Mutex
	routes []types.Route
}

func (m *mockNavigator) Navigate(ctx context.Context, route types.Route) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.routes = append(m.routes, route)
	return nil
}

func (m *mockNavigator) Routes() []types.Route {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]types.Route{}, m.routes...)
}

var (
	noteA = model.Note{ID: "2", Content: "A", CreatedAt: "2026-01-02 10:00:00"}
	noteB = model.Note{ID: "1", Content: "B", CreatedAt: "2026-01-01 10:00:00"}
)
