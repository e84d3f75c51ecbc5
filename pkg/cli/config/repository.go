package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/notepad/pkg/domain/interfaces"
	"github.com/secmon-lab/notepad/pkg/repository/firestore"
	"github.com/secmon-lab/notepad/pkg/repository/memory"
	"github.com/secmon-lab/notepad/pkg/repository/redis"
	"github.com/secmon-lab/notepad/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// Repository backends
const (
	BackendMemory    = "memory"
	BackendFirestore = "firestore"
)

// Repository holds CLI flags for repository backend configuration
type Repository struct {
	backend          string
	projectID        string
	databaseID       string
	collectionPrefix string
	redisURL         string
	redisKeyPrefix   string
}

// Flags returns CLI flags for repository configuration
func (r *Repository) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "repository-backend",
			Category:    "Repository",
			Usage:       "Repository backend type (memory or firestore)",
			Value:       BackendMemory,
			Sources:     cli.EnvVars("NOTEPAD_REPOSITORY_BACKEND"),
			Destination: &r.backend,
		},
		&cli.StringFlag{
			Name:        "firestore-project-id",
			Category:    "Repository",
			Usage:       "Firestore Project ID (required when using firestore backend)",
			Sources:     cli.EnvVars("NOTEPAD_FIRESTORE_PROJECT_ID"),
			Destination: &r.projectID,
		},
		&cli.StringFlag{
			Name:        "firestore-database-id",
			Category:    "Repository",
			Usage:       "Firestore Database ID",
			Sources:     cli.EnvVars("NOTEPAD_FIRESTORE_DATABASE_ID"),
			Destination: &r.databaseID,
		},
		&cli.StringFlag{
			Name:        "firestore-collection-prefix",
			Category:    "Repository",
			Usage:       "Prefix prepended to every Firestore collection name",
			Sources:     cli.EnvVars("NOTEPAD_FIRESTORE_COLLECTION_PREFIX"),
			Destination: &r.collectionPrefix,
		},
		&cli.StringFlag{
			Name:        "redis-url",
			Category:    "Repository",
			Usage:       "Store sessions in Redis, e.g. redis://localhost:6379/0",
			Sources:     cli.EnvVars("NOTEPAD_REDIS_URL"),
			Destination: &r.redisURL,
		},
		&cli.StringFlag{
			Name:        "redis-key-prefix",
			Category:    "Repository",
			Usage:       "Prefix prepended to every Redis key",
			Value:       "notepad:",
			Sources:     cli.EnvVars("NOTEPAD_REDIS_KEY_PREFIX"),
			Destination: &r.redisKeyPrefix,
		},
	}
}

// LogAttrs returns log attributes for the repository configuration
func (r *Repository) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.String("backend", r.backend),
		slog.String("project_id", r.projectID),
		slog.String("database_id", r.databaseID),
		slog.String("collection_prefix", r.collectionPrefix),
		slog.Bool("redis_sessions", r.redisURL != ""),
	}
}

// Backend returns the configured backend type
func (r *Repository) Backend() string {
	return r.backend
}

// ProjectID returns the Firestore project ID
func (r *Repository) ProjectID() string {
	return r.projectID
}

// DatabaseID returns the Firestore database ID
func (r *Repository) DatabaseID() string {
	return r.databaseID
}

// Validate checks the flag combination without connecting anywhere
func (r *Repository) Validate() error {
	switch r.backend {
	case BackendMemory:
		return nil
	case BackendFirestore:
		if r.projectID == "" {
			return goerr.Wrap(ErrMissingProject, "invalid repository configuration", goerr.V(BackendKey, r.backend))
		}
		return nil
	default:
		return goerr.Wrap(ErrInvalidBackend, "invalid repository configuration", goerr.V(BackendKey, r.backend))
	}
}

// Configure initializes and returns a repository based on the configured backend.
// With --redis-url, sessions are kept in Redis on top of that backend.
// The caller is responsible for calling Close() on the returned repository.
func (r *Repository) Configure(ctx context.Context) (interfaces.Repository, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	base, err := r.configureBase(ctx)
	if err != nil {
		return nil, err
	}
	if r.redisURL == "" {
		return base, nil
	}

	repo, err := redis.New(ctx, r.redisURL, base, redis.WithKeyPrefix(r.redisKeyPrefix))
	if err != nil {
		if cerr := base.Close(); cerr != nil {
			logging.Default().Error("failed to close repository", "error", cerr)
		}
		return nil, goerr.Wrap(err, "failed to initialize redis session store")
	}
	logging.Default().Info("Using Redis session store", "key_prefix", r.redisKeyPrefix)
	return repo, nil
}

func (r *Repository) configureBase(ctx context.Context) (interfaces.Repository, error) {
	switch r.backend {
	case BackendFirestore:
		var opts []firestore.Option
		if r.collectionPrefix != "" {
			opts = append(opts, firestore.WithCollectionPrefix(r.collectionPrefix))
		}
		repo, err := firestore.New(ctx, r.projectID, r.databaseID, opts...)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to initialize firestore repository")
		}
		logging.Default().Info("Using Firestore repository",
			"project_id", r.projectID,
			"database_id", r.databaseID,
		)
		return repo, nil

	default:
		logging.Default().Info("Using in-memory repository (development mode)")
		return memory.New(), nil
	}
}
