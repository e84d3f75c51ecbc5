package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/notepad/pkg/domain/interfaces"
	"github.com/secmon-lab/notepad/pkg/domain/model"
)

func newUser(username string) *model.User {
	return &model.User{
		ID:           model.NewUserID(),
		Username:     username,
		PasswordHash: []byte("$2a$10$hash"),
		CreatedAt:    time.Now().UTC(),
	}
}

func runUserRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Create and Get", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		user := newUser("alice")
		gt.NoError(t, repo.User().Create(ctx, user)).Required()

		byID, err := repo.User().Get(ctx, user.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, byID.Username).Equal("alice")
		gt.Value(t, byID.PasswordHash).Equal(user.PasswordHash)

		byName, err := repo.User().GetByUsername(ctx, "alice")
		gt.NoError(t, err).Required()
		gt.Value(t, byName.ID).Equal(user.ID)
	})

	t.Run("duplicate username conflicts", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		gt.NoError(t, repo.User().Create(ctx, newUser("carol"))).Required()
		err := repo.User().Create(ctx, newUser("carol"))
		gt.Error(t, err).Is(interfaces.ErrConflict)
	})

	t.Run("usernames are case sensitive", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		gt.NoError(t, repo.User().Create(ctx, newUser("dave"))).Required()
		gt.NoError(t, repo.User().Create(ctx, newUser("Dave")))
	})

	t.Run("not found", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.User().Get(ctx, model.NewUserID())
		gt.Error(t, err).Is(interfaces.ErrNotFound)

		_, err = repo.User().GetByUsername(ctx, "nobody")
		gt.Error(t, err).Is(interfaces.ErrNotFound)
	})

	t.Run("invalid user", func(t *testing.T) {
		repo := newRepo(t)

		user := newUser("eve")
		user.PasswordHash = nil
		gt.Error(t, repo.User().Create(context.Background(), user))
	})
}
