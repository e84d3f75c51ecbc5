package interfaces

import (
	"context"
	"time"

	"github.com/secmon-lab/notepad/pkg/domain/model/auth"
)

// Repository defines the interface for data persistence of the reference backend
type Repository interface {
	User() UserRepository
	Note() NoteRepository

	// Auth methods
	PutToken(ctx context.Context, token *auth.Token) error
	GetToken(ctx context.Context, tokenID auth.TokenID) (*auth.Token, error)
	DeleteToken(ctx context.Context, tokenID auth.TokenID) error
	// DeleteExpiredTokens removes every token expired at now and returns how many were removed
	DeleteExpiredTokens(ctx context.Context, now time.Time) (int, error)

	Close() error
}
