package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/notepad/pkg/domain/interfaces"
	"github.com/secmon-lab/notepad/pkg/domain/model"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type userRepository struct {
	client    *firestore.Client
	users     *firestore.CollectionRef
	usernames *firestore.CollectionRef
}

var _ interfaces.UserRepository = &userRepository{}

// usernameDoc reserves a username; its document ID is the username itself
type usernameDoc struct {
	UserID model.UserID `firestore:"UserID"`
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	if err := user.Validate(); err != nil {
		return goerr.Wrap(err, "invalid user")
	}

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if err := tx.Create(r.usernames.Doc(user.Username), &usernameDoc{UserID: user.ID}); err != nil {
			return err
		}
		return tx.Create(r.users.Doc(user.ID.String()), user)
	})
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return goerr.Wrap(interfaces.ErrConflict, "username already taken", goerr.V("username", user.Username))
		}
		return goerr.Wrap(err, "failed to create user", goerr.V("username", user.Username))
	}

	return nil
}

func (r *userRepository) Get(ctx context.Context, id model.UserID) (*model.User, error) {
	doc, err := r.users.Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "user not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get user", goerr.V("id", id))
	}

	var user model.User
	if err := doc.DataTo(&user); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal user", goerr.V("id", id))
	}
	return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	if username == "" {
		return nil, goerr.Wrap(ErrNotFound, "user not found", goerr.V("username", username))
	}

	doc, err := r.usernames.Doc(username).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "user not found", goerr.V("username", username))
		}
		return nil, goerr.Wrap(err, "failed to look up username", goerr.V("username", username))
	}

	var entry usernameDoc
	if err := doc.DataTo(&entry); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal username entry", goerr.V("username", username))
	}

	return r.Get(ctx, entry.UserID)
}
