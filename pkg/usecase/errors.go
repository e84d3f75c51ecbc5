package usecase

import (
	"errors"

	"github.com/m-mizutani/goerr/v2"
)

// Sentinel errors for use case layer
var (
	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUnauthenticated    = errors.New("authentication required")

	// Conflict errors
	ErrUsernameTaken = errors.New("username already exists")

	// Not found errors
	ErrNoteNotFound = errors.New("note not found")

	// Input errors; see InputError
	ErrInvalidInput = errors.New("invalid input")
)

// InputError rejects a request for its content. Message is safe to show to the caller.
type InputError struct {
	Message string
}

func (e *InputError) Error() string {
	return e.Message
}

func (e *InputError) Is(target error) bool {
	return target == ErrInvalidInput
}

func invalidInput(msg string, values ...goerr.Option) error {
	return goerr.Wrap(&InputError{Message: msg}, msg, values...)
}

// Context keys for error values
const (
	UserIDKey   = "user_id"
	UsernameKey = "username"
	NoteIDKey   = "note_id"
)
