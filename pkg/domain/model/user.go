package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

// UserID is a UUID-based identifier for User
type UserID string

// NewUserID generates a new UUID v4 UserID
func NewUserID() UserID {
	return UserID(uuid.New().String())
}

func (id UserID) String() string {
	return string(id)
}

// Validate checks if the UserID is a valid UUID
func (id UserID) Validate() error {
	if id == "" {
		return goerr.New("user ID is empty")
	}
	if _, err := uuid.Parse(string(id)); err != nil {
		return goerr.Wrap(err, "invalid user ID format", goerr.V("id", id))
	}
	return nil
}

// User is an account of the reference backend
type User struct {
	ID           UserID    `firestore:"ID"`
	Username     string    `firestore:"Username"`
	PasswordHash []byte    `firestore:"PasswordHash" masq:"secret"`
	CreatedAt    time.Time `firestore:"CreatedAt"`
}

// Validate checks if the User is valid
func (u *User) Validate() error {
	if err := u.ID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid user")
	}
	if strings.TrimSpace(u.Username) == "" {
		return goerr.New("username is required", goerr.V("id", u.ID))
	}
	if len(u.PasswordHash) == 0 {
		return goerr.New("password hash is required", goerr.V("id", u.ID))
	}
	return nil
}
