package memory

import (
	"context"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/notepad/pkg/domain/interfaces"
	"github.com/secmon-lab/notepad/pkg/domain/model"
)

type userRepository struct {
	mu         sync.RWMutex
	users      map[model.UserID]*model.User
	byUsername map[string]model.UserID
}

var _ interfaces.UserRepository = &userRepository{}

func newUserRepository() *userRepository {
	return &userRepository{
		users:      make(map[model.UserID]*model.User),
		byUsername: make(map[string]model.UserID),
	}
}

func copyUser(u *model.User) *model.User {
	copied := *u
	copied.PasswordHash = append([]byte(nil), u.PasswordHash...)
	return &copied
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	if err := user.Validate(); err != nil {
		return goerr.Wrap(err, "invalid user")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byUsername[user.Username]; exists {
		return goerr.Wrap(interfaces.ErrConflict, "username already taken", goerr.V("username", user.Username))
	}
	if _, exists := r.users[user.ID]; exists {
		return goerr.Wrap(interfaces.ErrConflict, "user ID already exists", goerr.V("id", user.ID))
	}

	r.users[user.ID] = copyUser(user)
	r.byUsername[user.Username] = user.ID
	return nil
}

func (r *userRepository) Get(ctx context.Context, id model.UserID) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, goerr.Wrap(ErrNotFound, "user not found", goerr.V("id", id))
	}
	return copyUser(user), nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byUsername[username]
	if !ok {
		return nil, goerr.Wrap(ErrNotFound, "user not found", goerr.V("username", username))
	}
	return copyUser(r.users[id]), nil
}
