package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/notepad/pkg/domain/interfaces"
	"github.com/secmon-lab/notepad/pkg/domain/model"
	"github.com/secmon-lab/notepad/pkg/utils/logging"
)

// DefaultMaxNoteLength is the content limit in characters
const DefaultMaxNoteLength = 1000

// NoteUseCaseInterface is what the HTTP layer needs for notes
type NoteUseCaseInterface interface {
	List(ctx context.Context, userID model.UserID) ([]model.Note, error)
	Create(ctx context.Context, userID model.UserID, content string) (*model.Note, error)
	Delete(ctx context.Context, userID model.UserID, id model.NoteID) error
}

type NoteUseCase struct {
	repo      interfaces.Repository
	maxLength int
}

var _ NoteUseCaseInterface = &NoteUseCase{}

func NewNoteUseCase(repo interfaces.Repository, maxLength int) *NoteUseCase {
	if maxLength <= 0 {
		maxLength = DefaultMaxNoteLength
	}
	return &NoteUseCase{
		repo:      repo,
		maxLength: maxLength,
	}
}

// List returns the user's notes newest first, in wire form
func (uc *NoteUseCase) List(ctx context.Context, userID model.UserID) ([]model.Note, error) {
	records, err := uc.repo.Note().List(ctx, userID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list notes", goerr.V(UserIDKey, userID))
	}

	notes := make([]model.Note, len(records))
	for i, rec := range records {
		notes[i] = rec.ToNote()
	}
	return notes, nil
}

// Create stores trimmed content as a new note
func (uc *NoteUseCase) Create(ctx context.Context, userID model.UserID, content string) (*model.Note, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, invalidInput("content is required", goerr.V(UserIDKey, userID))
	}
	if n := utf8.RuneCountInString(content); n > uc.maxLength {
		return nil, invalidInput(fmt.Sprintf("note is too long (max %d characters)", uc.maxLength),
			goerr.V(UserIDKey, userID), goerr.V("length", n))
	}

	record, err := uc.repo.Note().Create(ctx, userID, content)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create note", goerr.V(UserIDKey, userID))
	}

	logging.From(ctx).Debug("note created", "user_id", userID, "note_id", record.ID)
	note := record.ToNote()
	return &note, nil
}

// Delete removes a note owned by userID
func (uc *NoteUseCase) Delete(ctx context.Context, userID model.UserID, id model.NoteID) error {
	if err := uc.repo.Note().Delete(ctx, userID, id); err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return goerr.Wrap(ErrNoteNotFound, "failed to delete note", goerr.V(UserIDKey, userID), goerr.V(NoteIDKey, id))
		}
		return goerr.Wrap(err, "failed to delete note", goerr.V(UserIDKey, userID), goerr.V(NoteIDKey, id))
	}
	return nil
}
