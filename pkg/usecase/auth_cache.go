package usecase

import (
	"context"
	"crypto/subtle"
	"errors"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/notepad/pkg/domain/interfaces"
	"github.com/secmon-lab/notepad/pkg/domain/model/auth"
)

const (
	authCacheTTL = 5 * time.Minute
)

type cachedToken struct {
	token     *auth.Token
	expiresAt time.Time
}

// authCache keeps validated sessions for a short while. An entry never
// outlives the session it holds.
type authCache struct {
	entries sync.Map
	now     func() time.Time
}

func newAuthCache() *authCache {
	return &authCache{now: time.Now}
}

func (c *authCache) get(tokenID auth.TokenID) (*auth.Token, bool) {
	val, ok := c.entries.Load(tokenID)
	if !ok {
		return nil, false
	}

	entry := val.(*cachedToken)
	if !c.now().Before(entry.expiresAt) {
		c.entries.Delete(tokenID)
		return nil, false
	}

	return entry.token, true
}

func (c *authCache) set(token *auth.Token) {
	expiresAt := c.now().Add(authCacheTTL)
	if token.ExpiresAt.Before(expiresAt) {
		expiresAt = token.ExpiresAt
	}
	c.entries.Store(token.ID, &cachedToken{token: token, expiresAt: expiresAt})
}

func (c *authCache) remove(tokenID auth.TokenID) {
	c.entries.Delete(tokenID)
}

func secretMatches(token *auth.Token, secret auth.TokenSecret) bool {
	return subtle.ConstantTimeCompare([]byte(token.Secret), []byte(secret)) == 1
}

// validateTokenWithCache resolves tokenID from the cache or the repository and
// checks the secret. Every rejection is ErrUnauthenticated.
func (uc *AccountUseCase) validateTokenWithCache(ctx context.Context, tokenID auth.TokenID, tokenSecret auth.TokenSecret) (*auth.Token, error) {
	token, cached := uc.cache.get(tokenID)
	if !cached {
		var err error
		token, err = uc.repo.GetToken(ctx, tokenID)
		if err != nil {
			if errors.Is(err, interfaces.ErrNotFound) {
				return nil, goerr.Wrap(ErrUnauthenticated, "unknown token", goerr.V("tokenID", tokenID))
			}
			return nil, goerr.Wrap(err, "failed to get token from repository")
		}
	}

	if !secretMatches(token, tokenSecret) {
		return nil, goerr.Wrap(ErrUnauthenticated, "invalid token secret", goerr.V("tokenID", tokenID))
	}

	if token.IsExpired() {
		uc.cache.remove(tokenID)
		if err := uc.repo.DeleteToken(ctx, tokenID); err != nil && !errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(err, "failed to delete expired token", goerr.V("tokenID", tokenID))
		}
		return nil, goerr.Wrap(ErrUnauthenticated, "token expired", goerr.V("tokenID", tokenID))
	}

	if !cached {
		uc.cache.set(token)
	}
	return token, nil
}
