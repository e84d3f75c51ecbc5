package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/notepad/pkg/domain/interfaces"
	"github.com/secmon-lab/notepad/pkg/domain/model"
	"github.com/secmon-lab/notepad/pkg/domain/model/auth"
)

func runAuthRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("PutToken and GetToken", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		token := auth.NewToken(model.NewUserID(), "alice", time.Hour)
		gt.NoError(t, repo.PutToken(ctx, token)).Required()

		retrieved, err := repo.GetToken(ctx, token.ID)
		gt.NoError(t, err).Required()

		gt.Value(t, retrieved.ID).Equal(token.ID)
		gt.Value(t, retrieved.Secret).Equal(token.Secret)
		gt.Value(t, retrieved.UserID).Equal(token.UserID)
		gt.Value(t, retrieved.Username).Equal(token.Username)

		// Firestore keeps microseconds only
		gt.Bool(t, retrieved.ExpiresAt.Sub(token.ExpiresAt).Abs() < time.Second).True()
		gt.Bool(t, retrieved.CreatedAt.Sub(token.CreatedAt).Abs() < time.Second).True()
	})

	t.Run("GetToken not found", func(t *testing.T) {
		repo := newRepo(t)

		_, err := repo.GetToken(context.Background(), auth.NewTokenID())
		gt.Error(t, err).Is(interfaces.ErrNotFound)
	})

	t.Run("GetToken rejects malformed ID", func(t *testing.T) {
		repo := newRepo(t)

		_, err := repo.GetToken(context.Background(), auth.TokenID("not-a-uuid"))
		gt.Error(t, err)
	})

	t.Run("DeleteToken", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		token := auth.NewToken(model.NewUserID(), "bob", time.Hour)
		gt.NoError(t, repo.PutToken(ctx, token)).Required()
		gt.NoError(t, repo.DeleteToken(ctx, token.ID)).Required()

		_, err := repo.GetToken(ctx, token.ID)
		gt.Error(t, err).Is(interfaces.ErrNotFound)
	})

	t.Run("DeleteToken not found", func(t *testing.T) {
		repo := newRepo(t)

		err := repo.DeleteToken(context.Background(), auth.NewTokenID())
		gt.Error(t, err).Is(interfaces.ErrNotFound)
	})

	t.Run("Token validation on Put", func(t *testing.T) {
		repo := newRepo(t)

		invalidToken := &auth.Token{
			ID:        auth.NewTokenID(),
			Secret:    auth.NewTokenSecret(),
			UserID:    "", // Invalid: empty
			ExpiresAt: time.Now().Add(time.Hour),
			CreatedAt: time.Now(),
		}
		gt.Error(t, repo.PutToken(context.Background(), invalidToken))
	})

	t.Run("DeleteExpiredTokens", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		now := time.Now().UTC()

		expired := auth.NewToken(model.NewUserID(), "old", time.Hour)
		expired.ExpiresAt = now.Add(-time.Minute)
		live := auth.NewToken(model.NewUserID(), "new", time.Hour)

		gt.NoError(t, repo.PutToken(ctx, expired)).Required()
		gt.NoError(t, repo.PutToken(ctx, live)).Required()

		removed, err := repo.DeleteExpiredTokens(ctx, now)
		gt.NoError(t, err).Required()
		gt.Value(t, removed).Equal(1)

		_, err = repo.GetToken(ctx, expired.ID)
		gt.Error(t, err).Is(interfaces.ErrNotFound)
		_, err = repo.GetToken(ctx, live.ID)
		gt.NoError(t, err)
	})
}
