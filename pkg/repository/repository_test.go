package repository_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/notepad/pkg/domain/interfaces"
	"github.com/secmon-lab/notepad/pkg/repository/firestore"
	"github.com/secmon-lab/notepad/pkg/repository/memory"
	"github.com/secmon-lab/notepad/pkg/repository/redis"
)

func newMemoryRepository(t *testing.T) interfaces.Repository {
	return memory.New()
}

func newFirestoreRepository(t *testing.T) interfaces.Repository {
	t.Helper()

	projectID := os.Getenv("TEST_FIRESTORE_PROJECT_ID")
	if projectID == "" {
		t.Skip("TEST_FIRESTORE_PROJECT_ID not set")
	}

	databaseID := os.Getenv("TEST_FIRESTORE_DATABASE_ID")
	if databaseID == "" {
		t.Skip("TEST_FIRESTORE_DATABASE_ID not set")
	}

	ctx := context.Background()
	prefix := fmt.Sprintf("test_%d", time.Now().UnixNano())
	repo, err := firestore.New(ctx, projectID, databaseID, firestore.WithCollectionPrefix(prefix))
	gt.NoError(t, err).Required()
	t.Cleanup(func() {
		if err := repo.Close(); err != nil {
			t.Errorf("failed to close firestore repository: %v", err)
		}
	})
	return repo
}

func newRedisRepository(t *testing.T) interfaces.Repository {
	t.Helper()

	srv := miniredis.RunT(t)
	repo, err := redis.New(context.Background(), "redis://"+srv.Addr(), memory.New(), redis.WithKeyPrefix("test:"))
	gt.NoError(t, err).Required()
	t.Cleanup(func() {
		if err := repo.Close(); err != nil {
			t.Errorf("failed to close redis repository: %v", err)
		}
	})
	return repo
}

func TestMemoryRepository(t *testing.T) {
	runAuthRepositoryTest(t, newMemoryRepository)
	runUserRepositoryTest(t, newMemoryRepository)
	runNoteRepositoryTest(t, newMemoryRepository)
}

func TestFirestoreRepository(t *testing.T) {
	runAuthRepositoryTest(t, newFirestoreRepository)
	runUserRepositoryTest(t, newFirestoreRepository)
	runNoteRepositoryTest(t, newFirestoreRepository)
}

func TestRedisSessionRepository(t *testing.T) {
	runAuthRepositoryTest(t, newRedisRepository)
	runUserRepositoryTest(t, newRedisRepository)
	runNoteRepositoryTest(t, newRedisRepository)
}
