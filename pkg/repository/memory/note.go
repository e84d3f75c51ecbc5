package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/notepad/pkg/domain/interfaces"
	"github.com/secmon-lab/notepad/pkg/domain/model"
)

type noteRepository struct {
	mu    sync.RWMutex
	notes map[model.UserID][]*model.NoteRecord // oldest first
}

var _ interfaces.NoteRepository = &noteRepository{}

func newNoteRepository() *noteRepository {
	return &noteRepository{
		notes: make(map[model.UserID][]*model.NoteRecord),
	}
}

func (r *noteRepository) Create(ctx context.Context, userID model.UserID, content string) (*model.NoteRecord, error) {
	record := &model.NoteRecord{
		ID:        model.NewNoteID(),
		UserID:    userID,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	if err := record.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid note")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *record
	r.notes[userID] = append(r.notes[userID], &stored)
	return record, nil
}

func (r *noteRepository) List(ctx context.Context, userID model.UserID) ([]*model.NoteRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored := r.notes[userID]
	result := make([]*model.NoteRecord, 0, len(stored))
	for _, rec := range slices.Backward(stored) {
		copied := *rec
		result = append(result, &copied)
	}
	return result, nil
}

func (r *noteRepository) Delete(ctx context.Context, userID model.UserID, id model.NoteID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := r.notes[userID]
	idx := slices.IndexFunc(stored, func(rec *model.NoteRecord) bool { return rec.ID == id })
	if idx < 0 {
		return goerr.Wrap(ErrNotFound, "note not found", goerr.V("id", id), goerr.V("userID", userID))
	}

	r.notes[userID] = slices.Delete(stored, idx, idx+1)
	return nil
}
