package interfaces

import (
	"context"

	"github.com/secmon-lab/notepad/pkg/domain/model"
)

// UserRepository defines the interface for User data persistence
type UserRepository interface {
	// Create stores a new user. It fails with ErrConflict when the username is taken.
	Create(ctx context.Context, user *model.User) error

	// Get retrieves a user by ID
	Get(ctx context.Context, id model.UserID) (*model.User, error)

	// GetByUsername retrieves a user by exact username
	GetByUsername(ctx context.Context, username string) (*model.User, error)
}
