package usecase

import (
	"time"

	"github.com/secmon-lab/notepad/pkg/domain/interfaces"
)

type UseCases struct {
	repo          interfaces.Repository
	tokenTTL      time.Duration
	bcryptCost    int
	maxNoteLength int
	Account       AccountUseCaseInterface
	Note          NoteUseCaseInterface
}

type Option func(*UseCases)

// WithSessionTTL sets the lifetime of issued sessions
func WithSessionTTL(ttl time.Duration) Option {
	return func(uc *UseCases) {
		uc.tokenTTL = ttl
	}
}

// WithPasswordCost sets the bcrypt cost used at registration
func WithPasswordCost(cost int) Option {
	return func(uc *UseCases) {
		uc.bcryptCost = cost
	}
}

// WithMaxNoteLength caps note content in characters
func WithMaxNoteLength(n int) Option {
	return func(uc *UseCases) {
		uc.maxNoteLength = n
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo: repo,
	}

	for _, opt := range opts {
		opt(uc)
	}

	var accountOpts []AccountOption
	if uc.tokenTTL > 0 {
		accountOpts = append(accountOpts, WithTokenTTL(uc.tokenTTL))
	}
	if uc.bcryptCost > 0 {
		accountOpts = append(accountOpts, WithBcryptCost(uc.bcryptCost))
	}

	uc.Account = NewAccountUseCase(repo, accountOpts...)
	uc.Note = NewNoteUseCase(repo, uc.maxNoteLength)

	return uc
}
