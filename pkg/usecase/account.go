package usecase

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/notepad/pkg/domain/interfaces"
	"github.com/secmon-lab/notepad/pkg/domain/model"
	"github.com/secmon-lab/notepad/pkg/domain/model/auth"
	"github.com/secmon-lab/notepad/pkg/utils/logging"
	"golang.org/x/crypto/bcrypt"
)

const (
	maxUsernameLength = 64
	// bcrypt ignores everything past 72 bytes
	maxPasswordBytes = 72
)

// AccountUseCaseInterface is what the HTTP layer needs for accounts and sessions
type AccountUseCaseInterface interface {
	Register(ctx context.Context, username, password string) (*model.User, error)
	Login(ctx context.Context, username, password string) (*auth.Token, error)
	Logout(ctx context.Context, tokenID auth.TokenID) error
	ValidateToken(ctx context.Context, tokenID auth.TokenID, tokenSecret auth.TokenSecret) (*auth.Token, error)
}

type AccountUseCase struct {
	repo       interfaces.Repository
	tokenTTL   time.Duration
	bcryptCost int
	cache      *authCache
	// compared against for unknown usernames
	dummyHash []byte
}

var _ AccountUseCaseInterface = &AccountUseCase{}

// AccountOption is a functional option for AccountUseCase
type AccountOption func(*AccountUseCase)

// WithTokenTTL sets how long a session lives
func WithTokenTTL(ttl time.Duration) AccountOption {
	return func(uc *AccountUseCase) {
		uc.tokenTTL = ttl
	}
}

// WithBcryptCost sets the password hashing cost
func WithBcryptCost(cost int) AccountOption {
	return func(uc *AccountUseCase) {
		uc.bcryptCost = cost
	}
}

func NewAccountUseCase(repo interfaces.Repository, opts ...AccountOption) *AccountUseCase {
	uc := &AccountUseCase{
		repo:       repo,
		tokenTTL:   auth.DefaultTokenTTL,
		bcryptCost: bcrypt.DefaultCost,
		cache:      newAuthCache(),
	}
	for _, opt := range opts {
		opt(uc)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("notepad-dummy-password"), uc.bcryptCost)
	if err != nil {
		// only fails for an out of range cost
		uc.bcryptCost = bcrypt.DefaultCost
		hash, _ = bcrypt.GenerateFromPassword([]byte("notepad-dummy-password"), uc.bcryptCost)
	}
	uc.dummyHash = hash

	return uc
}

// Register creates an account. It does not open a session.
func (uc *AccountUseCase) Register(ctx context.Context, username, password string) (*model.User, error) {
	username = strings.TrimSpace(username)
	if err := validateCredentials(username, password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), uc.bcryptCost)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to hash password", goerr.V(UsernameKey, username))
	}

	user := &model.User{
		ID:           model.NewUserID(),
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := uc.repo.User().Create(ctx, user); err != nil {
		if errors.Is(err, interfaces.ErrConflict) {
			return nil, goerr.Wrap(ErrUsernameTaken, "failed to register", goerr.V(UsernameKey, username))
		}
		return nil, goerr.Wrap(err, "failed to create user", goerr.V(UsernameKey, username))
	}

	logging.From(ctx).Info("user registered", "user_id", user.ID, "username", user.Username)
	return user, nil
}

// Login checks the password and issues a session token
func (uc *AccountUseCase) Login(ctx context.Context, username, password string) (*auth.Token, error) {
	username = strings.TrimSpace(username)

	user, err := uc.repo.User().GetByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(err, "failed to look up user", goerr.V(UsernameKey, username))
		}
		_ = bcrypt.CompareHashAndPassword(uc.dummyHash, []byte(password))
		return nil, goerr.Wrap(ErrInvalidCredentials, "unknown username", goerr.V(UsernameKey, username))
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return nil, goerr.Wrap(ErrInvalidCredentials, "password mismatch", goerr.V(UsernameKey, username))
	}

	token := auth.NewToken(user.ID, user.Username, uc.tokenTTL)
	if err := uc.repo.PutToken(ctx, token); err != nil {
		return nil, goerr.Wrap(err, "failed to store token", goerr.V(UserIDKey, user.ID))
	}
	uc.cache.set(token)

	logging.From(ctx).Info("user logged in", "user_id", user.ID)
	return token, nil
}

// Logout deletes the session. Unknown sessions are not an error.
func (uc *AccountUseCase) Logout(ctx context.Context, tokenID auth.TokenID) error {
	// Remove from cache first
	uc.cache.remove(tokenID)

	if err := uc.repo.DeleteToken(ctx, tokenID); err != nil && !errors.Is(err, interfaces.ErrNotFound) {
		return goerr.Wrap(err, "failed to delete token", goerr.V("tokenID", tokenID))
	}
	return nil
}

// ValidateToken returns the session for a cookie pair
func (uc *AccountUseCase) ValidateToken(ctx context.Context, tokenID auth.TokenID, tokenSecret auth.TokenSecret) (*auth.Token, error) {
	if tokenID.Validate() != nil || tokenSecret == "" {
		return nil, goerr.Wrap(ErrUnauthenticated, "malformed session cookies")
	}
	return uc.validateTokenWithCache(ctx, tokenID, tokenSecret)
}

func validateCredentials(username, password string) error {
	if username == "" || password == "" {
		return invalidInput("username and password are required")
	}
	if utf8.RuneCountInString(username) > maxUsernameLength {
		return invalidInput("username is too long", goerr.V(UsernameKey, username))
	}
	if strings.ContainsFunc(username, func(r rune) bool { return r == '/' || unicode.IsControl(r) }) {
		return invalidInput("username contains invalid characters", goerr.V(UsernameKey, username))
	}
	if len(password) > maxPasswordBytes {
		return invalidInput("password is too long")
	}
	return nil
}
