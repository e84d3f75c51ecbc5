package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/notepad/pkg/domain/interfaces"
	"github.com/secmon-lab/notepad/pkg/domain/model"
)

func runNoteRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Create assigns ID and time", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		userID := model.NewUserID()

		created, err := repo.Note().Create(ctx, userID, "Buy milk")
		gt.NoError(t, err).Required()

		gt.NoError(t, created.ID.Validate())
		gt.Value(t, created.UserID).Equal(userID)
		gt.Value(t, created.Content).Equal("Buy milk")
		gt.Bool(t, created.CreatedAt.IsZero()).False()
	})

	t.Run("List returns newest first, scoped to user", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		alice := model.NewUserID()
		bob := model.NewUserID()

		first, err := repo.Note().Create(ctx, alice, "first")
		gt.NoError(t, err).Required()
		time.Sleep(2 * time.Millisecond)
		_, err = repo.Note().Create(ctx, bob, "bob's")
		gt.NoError(t, err).Required()
		time.Sleep(2 * time.Millisecond)
		second, err := repo.Note().Create(ctx, alice, "second")
		gt.NoError(t, err).Required()

		notes, err := repo.Note().List(ctx, alice)
		gt.NoError(t, err).Required()
		gt.Array(t, notes).Length(2).Required()
		gt.Value(t, notes[0].ID).Equal(second.ID)
		gt.Value(t, notes[1].ID).Equal(first.ID)
	})

	t.Run("List of user without notes is empty", func(t *testing.T) {
		repo := newRepo(t)

		notes, err := repo.Note().List(context.Background(), model.NewUserID())
		gt.NoError(t, err).Required()
		gt.Array(t, notes).Length(0)
	})

	t.Run("Delete", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		userID := model.NewUserID()

		keep, err := repo.Note().Create(ctx, userID, "keep")
		gt.NoError(t, err).Required()
		drop, err := repo.Note().Create(ctx, userID, "drop")
		gt.NoError(t, err).Required()

		gt.NoError(t, repo.Note().Delete(ctx, userID, drop.ID)).Required()

		notes, err := repo.Note().List(ctx, userID)
		gt.NoError(t, err).Required()
		gt.Array(t, notes).Length(1).Required()
		gt.Value(t, notes[0].ID).Equal(keep.ID)

		err = repo.Note().Delete(ctx, userID, drop.ID)
		gt.Error(t, err).Is(interfaces.ErrNotFound)
	})

	t.Run("Delete of another user's note is not found", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		owner := model.NewUserID()

		note, err := repo.Note().Create(ctx, owner, "private")
		gt.NoError(t, err).Required()

		err = repo.Note().Delete(ctx, model.NewUserID(), note.ID)
		gt.Error(t, err).Is(interfaces.ErrNotFound)

		notes, err := repo.Note().List(ctx, owner)
		gt.NoError(t, err).Required()
		gt.Array(t, notes).Length(1)
	})
}
