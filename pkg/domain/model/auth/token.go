package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/notepad/pkg/domain/model"
)

// DefaultTokenTTL is how long a session lives unless configured otherwise
const DefaultTokenTTL = 7 * 24 * time.Hour

// TokenID identifies a session and is sent to the browser in the token_id cookie
type TokenID string

func NewTokenID() TokenID {
	return TokenID(uuid.New().String())
}

func (id TokenID) String() string {
	return string(id)
}

// Validate checks if the TokenID is a valid UUID
func (id TokenID) Validate() error {
	if id == "" {
		return goerr.New("token ID is empty")
	}
	if _, err := uuid.Parse(string(id)); err != nil {
		return goerr.Wrap(err, "invalid token ID format", goerr.V("id", id))
	}
	return nil
}

// TokenSecret is the random half of a session, sent in the token_secret cookie
type TokenSecret string

// NewTokenSecret returns 32 random bytes, hex encoded
func NewTokenSecret() TokenSecret {
	b := make([]byte, 32)
	// crypto/rand.Read never returns an error on supported platforms
	_, _ = rand.Read(b)
	return TokenSecret(hex.EncodeToString(b))
}

func (s TokenSecret) String() string {
	return string(s)
}

// Token is a server-side session record
type Token struct {
	ID        TokenID      `firestore:"ID"`
	Secret    TokenSecret  `firestore:"Secret" masq:"secret"`
	UserID    model.UserID `firestore:"UserID"`
	Username  string       `firestore:"Username"`
	ExpiresAt time.Time    `firestore:"ExpiresAt"`
	CreatedAt time.Time    `firestore:"CreatedAt"`
}

// NewToken issues a session for user that expires after ttl
func NewToken(userID model.UserID, username string, ttl time.Duration) *Token {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	now := time.Now().UTC()
	return &Token{
		ID:        NewTokenID(),
		Secret:    NewTokenSecret(),
		UserID:    userID,
		Username:  username,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}
}

// Validate checks if the Token is valid
func (t *Token) Validate() error {
	if err := t.ID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid token")
	}
	if t.Secret == "" {
		return goerr.New("token secret is empty", goerr.V("id", t.ID))
	}
	if err := t.UserID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid token", goerr.V("id", t.ID))
	}
	if t.ExpiresAt.IsZero() {
		return goerr.New("token expiry is not set", goerr.V("id", t.ID))
	}
	return nil
}

// IsExpired reports whether the token is past its expiry
func (t *Token) IsExpired() bool {
	return t.IsExpiredAt(time.Now())
}

func (t *Token) IsExpiredAt(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

type ctxTokenKey struct{}

// ContextWithToken embeds the authenticated session into ctx
func ContextWithToken(ctx context.Context, token *Token) context.Context {
	return context.WithValue(ctx, ctxTokenKey{}, token)
}

// TokenFromContext returns the session embedded by ContextWithToken
func TokenFromContext(ctx context.Context) (*Token, bool) {
	token, ok := ctx.Value(ctxTokenKey{}).(*Token)
	return token, ok && token != nil
}
