package memory

import (
	"github.com/secmon-lab/notepad/pkg/domain/interfaces"
)

// Repository is an alias for Memory to match the pattern
type Repository = Memory

// ErrNotFound is returned when a record does not exist
var ErrNotFound = interfaces.ErrNotFound

type Memory struct {
	user   *userRepository
	note   *noteRepository
	tokens *tokenStore
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		user:   newUserRepository(),
		note:   newNoteRepository(),
		tokens: newTokenStore(),
	}
}

func (m *Memory) User() interfaces.UserRepository {
	return m.user
}

func (m *Memory) Note() interfaces.NoteRepository {
	return m.note
}

func (m *Memory) Close() error {
	return nil
}
