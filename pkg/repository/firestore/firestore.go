package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/notepad/pkg/domain/interfaces"
)

// ErrNotFound is returned when a document does not exist
var ErrNotFound = interfaces.ErrNotFound

// Collection names. The notes collection needs the composite index created by the migrate command.
const (
	UsersCollection     = "users"
	UsernamesCollection = "usernames"
	NotesCollection     = "notes"
	TokensCollection    = "tokens"
)

type Firestore struct {
	client           *firestore.Client
	collectionPrefix string
	user             *userRepository
	note             *noteRepository
}

var _ interfaces.Repository = &Firestore{}

type Option func(*Firestore)

// WithCollectionPrefix prefixes every collection name, e.g. to isolate test runs
func WithCollectionPrefix(prefix string) Option {
	return func(f *Firestore) {
		f.collectionPrefix = prefix
	}
}

func New(ctx context.Context, projectID, databaseID string, opts ...Option) (*Firestore, error) {
	client, err := firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("projectID", projectID),
			goerr.V("databaseID", databaseID))
	}

	f := &Firestore{client: client}
	for _, opt := range opts {
		opt(f)
	}

	f.user = &userRepository{client: client, users: f.collection(UsersCollection), usernames: f.collection(UsernamesCollection)}
	f.note = &noteRepository{notes: f.collection(NotesCollection)}

	return f, nil
}

func (f *Firestore) collection(name string) *firestore.CollectionRef {
	return f.client.Collection(CollectionName(f.collectionPrefix, name))
}

// CollectionName returns the stored name of collection name under prefix
func CollectionName(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "_" + name
}

func (f *Firestore) User() interfaces.UserRepository {
	return f.user
}

func (f *Firestore) Note() interfaces.NoteRepository {
	return f.note
}

func (f *Firestore) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}
