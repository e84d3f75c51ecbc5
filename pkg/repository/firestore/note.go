package firestore

import (
	"context"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/notepad/pkg/domain/interfaces"
	"github.com/secmon-lab/notepad/pkg/domain/model"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type noteRepository struct {
	notes *firestore.CollectionRef
}

var _ interfaces.NoteRepository = &noteRepository{}

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

	if _, err := r.notes.Doc(record.ID.String()).Create(ctx, record); err != nil {
		return nil, goerr.Wrap(err, "failed to create note", goerr.V("userID", userID))
	}

	return record, nil
}

// List requires the (UserID ASC, CreatedAt DESC) composite index
func (r *noteRepository) List(ctx context.Context, userID model.UserID) ([]*model.NoteRecord, error) {
	iter := r.notes.
		Where("UserID", "==", userID.String()).
		OrderBy("CreatedAt", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	records := []*model.NoteRecord{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate notes", goerr.V("userID", userID))
		}

		var record model.NoteRecord
		if err := doc.DataTo(&record); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal note", goerr.V("docID", doc.Ref.ID))
		}
		records = append(records, &record)
	}

	return records, nil
}

func (r *noteRepository) Delete(ctx context.Context, userID model.UserID, id model.NoteID) error {
	if id.Validate() != nil || strings.Contains(id.String(), "/") {
		return goerr.Wrap(ErrNotFound, "note not found", goerr.V("id", id))
	}

	docRef := r.notes.Doc(id.String())

	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "note not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to get note", goerr.V("id", id))
	}

	var record model.NoteRecord
	if err := doc.DataTo(&record); err != nil {
		return goerr.Wrap(err, "failed to unmarshal note", goerr.V("id", id))
	}
	if record.UserID != userID {
		return goerr.Wrap(ErrNotFound, "note not found", goerr.V("id", id), goerr.V("userID", userID))
	}

	if _, err := docRef.Delete(ctx, firestore.LastUpdateTime(doc.UpdateTime)); err != nil {
		return goerr.Wrap(err, "failed to delete note", goerr.V("id", id))
	}

	return nil
}
