package page_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/notepad/pkg/domain/model"
	"github.com/secmon-lab/notepad/pkg/domain/types"
	"github.com/secmon-lab/notepad/pkg/page"
	"github.com/secmon-lab/notepad/pkg/service/notesapi"
)

func listReturning(notes ...model.Note) func(context.Context) ([]model.Note, error) {
	return func(context.Context) ([]model.Note, error) {
		return append([]model.Note{}, notes...), nil
	}
}

func TestDashboard_LoadAll(t *testing.T) {
	t.Run("no notes", func(t *testing.T) {
		d := page.NewDashboard(&mockAPI{listFn: listReturning()}, &mockNavigator{})
		d.LoadAll(t.Context())

		gt.Value(t, d.Status()).Equal(model.InfoStatus(page.NoNotesMessage))
		gt.Value(t, d.List().Len()).Equal(0)
	})

	t.Run("keeps response order", func(t *testing.T) {
		d := page.NewDashboard(&mockAPI{listFn: listReturning(noteA, noteB)}, &mockNavigator{})
		d.LoadAll(t.Context())

		gt.Value(t, d.List().Notes()).Equal([]model.Note{noteA, noteB})
		gt.Bool(t, d.Status().IsEmpty()).True()
	})

	t.Run("failure", func(t *testing.T) {
		for _, reason := range []notesapi.Reason{notesapi.ReasonNetwork, notesapi.ReasonProtocol, notesapi.ReasonRejected} {
			t.Run(reason.String(), func(t *testing.T) {
				api := &mockAPI{listFn: func(context.Context) ([]model.Note, error) {
					return nil, &notesapi.Failure{Reason: reason, Message: "authentication required"}
				}}
				d := page.NewDashboard(api, &mockNavigator{})
				d.LoadAll(t.Context())

				gt.Value(t, d.Status()).Equal(model.ErrorStatus(page.LoadFailedMessage))
				gt.Value(t, d.List().Len()).Equal(0)
			})
		}
	})

	t.Run("repeated loads do not duplicate", func(t *testing.T) {
		d := page.NewDashboard(&mockAPI{listFn: listReturning(noteA, noteB)}, &mockNavigator{})
		d.LoadAll(t.Context())
		first := d.List().Notes()
		d.LoadAll(t.Context())

		gt.Value(t, d.List().Notes()).Equal(first)
		gt.Array(t, d.List().Notes()).Length(2)
	})

	t.Run("start loads", func(t *testing.T) {
		api := &mockAPI{listFn: listReturning(noteA)}
		d := page.NewDashboard(api, &mockNavigator{})
		d.Start(t.Context())

		gt.Value(t, api.Calls()).Equal([]string{"list"})
		gt.Value(t, d.List().Len()).Equal(1)
	})
}

func TestDashboard_LoadAllLatestWins(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	var mu sync.Mutex
	n := 0

	api := &mockAPI{listFn: func(context.Context) ([]model.Note, error) {
		mu.Lock()
		n++
		first := n == 1
		mu.Unlock()

		if first {
			close(started)
			<-release
			return []model.Note{noteB}, nil
		}
		return []model.Note{noteA, noteB}, nil
	}}
	d := page.NewDashboard(api, &mockNavigator{})

	done := make(chan struct{})
	go func() {
		defer close(done)
		d.LoadAll(t.Context())
	}()

	<-started
	d.LoadAll(t.Context())
	close(release)
	<-done

	gt.Value(t, d.List().Notes()).Equal([]model.Note{noteA, noteB})
}

func TestDashboard_Create(t *testing.T) {
	t.Run("whitespace never reaches the backend", func(t *testing.T) {
		for _, content := range []string{"", "   ", "\t\n "} {
			api := &mockAPI{}
			d := page.NewDashboard(api, &mockNavigator{})
			d.Create(t.Context(), content)

			gt.Array(t, api.Calls()).Length(0)
			gt.Value(t, d.Status()).Equal(model.ErrorStatus(page.EmptyContentMessage))
			gt.Value(t, d.Draft()).Equal(content)
		}
	})

	t.Run("success inserts backend note at head", func(t *testing.T) {
		created := model.Note{ID: "9", Content: "Buy milk", CreatedAt: "2026-01-03 09:00:00"}
		api := &mockAPI{
			listFn: listReturning(noteA, noteB),
			createFn: func(ctx context.Context, content string) (*model.Note, error) {
				return &created, nil
			},
		}
		d := page.NewDashboard(api, &mockNavigator{})
		d.LoadAll(t.Context())

		d.SetDraft("  Buy milk ")
		d.Create(t.Context(), d.Draft())

		gt.Value(t, api.Calls()[1]).Equal("create:Buy milk")
		gt.Value(t, d.List().Notes()).Equal([]model.Note{created, noteA, noteB})
		gt.Value(t, d.Draft()).Equal("")
		gt.Bool(t, d.Status().IsEmpty()).True()
	})

	t.Run("success clears previous status", func(t *testing.T) {
		d := page.NewDashboard(&mockAPI{listFn: listReturning()}, &mockNavigator{})
		d.LoadAll(t.Context())
		gt.Value(t, d.Status().Text).Equal(page.NoNotesMessage)

		d.Create(t.Context(), "first")
		gt.Bool(t, d.Status().IsEmpty()).True()
		gt.Value(t, d.List().Len()).Equal(1)
	})

	t.Run("network failure keeps draft", func(t *testing.T) {
		api := &mockAPI{createFn: func(ctx context.Context, content string) (*model.Note, error) {
			return nil, &notesapi.Failure{Reason: notesapi.ReasonNetwork, Err: errors.New("timeout")}
		}}
		d := page.NewDashboard(api, &mockNavigator{})
		d.Create(t.Context(), "keep me")

		gt.Value(t, d.Draft()).Equal("keep me")
		gt.Value(t, d.Status()).Equal(model.ErrorStatus("Network error. Please try again."))
		gt.Value(t, d.List().Len()).Equal(0)
	})
}

func TestDashboard_CreateRejectedByBackend(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/notes":
			_, _ = w.Write([]byte(`{"notes":[{"id":2,"content":"A","created_at":"t2"},{"id":1,"content":"B","created_at":"t1"}]}`))
		case r.Method == http.MethodPost && r.URL.Path == "/api/notes":
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"too long"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)

	client, err := notesapi.New(srv.URL)
	gt.NoError(t, err).Required()

	d := page.NewDashboard(client, &mockNavigator{})
	d.LoadAll(t.Context())
	before := d.List().Notes()
	gt.Array(t, before).Length(2)

	d.Create(t.Context(), "way too long")

	gt.Value(t, d.List().Notes()).Equal(before)
	gt.Value(t, d.Status()).Equal(model.ErrorStatus("too long"))
	gt.Value(t, d.Draft()).Equal("way too long")
}

func TestDashboard_Delete(t *testing.T) {
	t.Run("accepted delete removes exactly that note", func(t *testing.T) {
		noteC := model.Note{ID: "3", Content: "C", CreatedAt: "t"}
		api := &mockAPI{listFn: listReturning(noteC, noteA, noteB)}
		d := page.NewDashboard(api, &mockNavigator{})
		d.LoadAll(t.Context())

		d.Delete(t.Context(), noteA.ID)
		gt.Value(t, d.List().Notes()).Equal([]model.Note{noteC, noteB})
		gt.Value(t, api.Calls()[1]).Equal("delete:2")
	})

	t.Run("rejected delete is silent", func(t *testing.T) {
		api := &mockAPI{
			listFn: listReturning(noteA, noteB),
			createFn: func(ctx context.Context, content string) (*model.Note, error) {
				return nil, &notesapi.Failure{Reason: notesapi.ReasonRejected, Status: http.StatusBadRequest, Message: "too long"}
			},
			deleteFn: func(ctx context.Context, id model.NoteID) error {
				return &notesapi.Failure{Reason: notesapi.ReasonRejected, Status: http.StatusNotFound, Message: "note not found"}
			},
		}
		d := page.NewDashboard(api, &mockNavigator{})
		d.LoadAll(t.Context())
		d.Create(t.Context(), "x")
		statusBefore := d.Status()

		var events []model.NoteListEvent
		d.List().Subscribe(func(ev model.NoteListEvent) {
			events = append(events, ev)
		})
		var statuses []model.StatusMessage
		d.OnStatus(func(msg model.StatusMessage) {
			statuses = append(statuses, msg)
		})

		d.Delete(t.Context(), noteA.ID)

		gt.Value(t, d.List().Notes()).Equal([]model.Note{noteA, noteB})
		gt.Value(t, d.Status()).Equal(statusBefore)
		gt.Array(t, events).Length(0)
		gt.Array(t, statuses).Length(0)
	})

	t.Run("network failure is silent too", func(t *testing.T) {
		api := &mockAPI{
			listFn: listReturning(noteA),
			deleteFn: func(ctx context.Context, id model.NoteID) error {
				return &notesapi.Failure{Reason: notesapi.ReasonNetwork}
			},
		}
		d := page.NewDashboard(api, &mockNavigator{})
		d.LoadAll(t.Context())

		d.Delete(t.Context(), noteA.ID)
		gt.Value(t, d.List().Notes()).Equal([]model.Note{noteA})
		gt.Bool(t, d.Status().IsEmpty()).True()
	})
}

func TestDashboard_Logout(t *testing.T) {
	t.Run("navigates to auth page", func(t *testing.T) {
		api := &mockAPI{}
		nav := &mockNavigator{}
		d := page.NewDashboard(api, nav)

		d.Logout(t.Context())
		gt.Value(t, api.Calls()).Equal([]string{"logout"})
		gt.Value(t, nav.Routes()).Equal([]types.Route{types.RouteAuth})
	})

	t.Run("navigates even when logout fails", func(t *testing.T) {
		api := &mockAPI{logoutFn: func(ctx context.Context) error {
			return &notesapi.Failure{Reason: notesapi.ReasonNetwork}
		}}
		nav := &mockNavigator{}
		d := page.NewDashboard(api, nav)

		d.Logout(t.Context())
		gt.Value(t, nav.Routes()).Equal([]types.Route{types.RouteAuth})
	})
}

func TestDashboard_TeardownDropsCompletions(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	api := &mockAPI{
		listFn: func(context.Context) ([]model.Note, error) {
			close(started)
			<-release
			return []model.Note{noteA}, nil
		},
	}
	nav := &mockNavigator{}
	d := page.NewDashboard(api, nav)

	var statuses []model.StatusMessage
	d.OnStatus(func(msg model.StatusMessage) {
		statuses = append(statuses, msg)
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		d.LoadAll(t.Context())
	}()

	<-started
	d.Teardown()
	close(release)
	<-done

	gt.Value(t, d.List().Len()).Equal(0)
	gt.Array(t, statuses).Length(0)

	d.Create(t.Context(), "late")
	d.Delete(t.Context(), noteA.ID)
	d.Logout(t.Context())
	d.SetDraft("ignored")

	gt.Value(t, api.Calls()).Equal([]string{"list"})
	gt.Array(t, nav.Routes()).Length(0)
	gt.Value(t, d.Draft()).Equal("")
}
