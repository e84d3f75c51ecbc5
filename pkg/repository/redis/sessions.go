package redis

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/redis/go-redis/v9"
	"github.com/secmon-lab/notepad/pkg/domain/interfaces"
	"github.com/secmon-lab/notepad/pkg/domain/model/auth"
)

// ErrNotFound is returned when a session does not exist
var ErrNotFound = interfaces.ErrNotFound

// expiryGrace keeps an expired session readable until the sweeper removes it
const expiryGrace = time.Hour

// Sessions stores session tokens in Redis and delegates users and notes to a base repository
type Sessions struct {
	interfaces.Repository
	client *redis.Client
	prefix string
}

var _ interfaces.Repository = &Sessions{}

type Option func(*Sessions)

// WithKeyPrefix prefixes every key, e.g. to share a Redis database
func WithKeyPrefix(prefix string) Option {
	return func(s *Sessions) {
		s.prefix = prefix
	}
}

// New connects to the Redis server at url ("redis://host:port/db") and layers it over base
func New(ctx context.Context, url string, base interfaces.Repository, opts ...Option) (*Sessions, error) {
	redisOpts, err := redis.ParseURL(url)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid redis URL")
	}

	client := redis.NewClient(redisOpts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, goerr.Wrap(err, "failed to connect to redis", goerr.V("addr", redisOpts.Addr))
	}

	s := &Sessions{
		Repository: base,
		client:     client,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Sessions) tokenKey(id auth.TokenID) string {
	return s.prefix + "token:" + id.String()
}

func (s *Sessions) expiryKey() string {
	return s.prefix + "token_expiry"
}

func (s *Sessions) PutToken(ctx context.Context, token *auth.Token) error {
	if err := token.Validate(); err != nil {
		return goerr.Wrap(err, "invalid token")
	}

	data, err := json.Marshal(token)
	if err != nil {
		return goerr.Wrap(err, "failed to marshal token", goerr.V("tokenID", token.ID))
	}

	ttl := max(time.Until(token.ExpiresAt)+expiryGrace, time.Second)

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.tokenKey(token.ID), data, ttl)
		pipe.ZAdd(ctx, s.expiryKey(), redis.Z{
			Score:  float64(token.ExpiresAt.UnixMilli()),
			Member: token.ID.String(),
		})
		return nil
	})
	if err != nil {
		return goerr.Wrap(err, "failed to put token", goerr.V("tokenID", token.ID))
	}
	return nil
}

func (s *Sessions) GetToken(ctx context.Context, tokenID auth.TokenID) (*auth.Token, error) {
	if err := tokenID.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid token ID")
	}

	data, err := s.client.Get(ctx, s.tokenKey(tokenID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, goerr.Wrap(ErrNotFound, "token not found", goerr.V("tokenID", tokenID))
		}
		return nil, goerr.Wrap(err, "failed to get token", goerr.V("tokenID", tokenID))
	}

	var token auth.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal token", goerr.V("tokenID", tokenID))
	}
	return &token, nil
}

func (s *Sessions) DeleteToken(ctx context.Context, tokenID auth.TokenID) error {
	if err := tokenID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid token ID")
	}

	var del *redis.IntCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		del = pipe.Del(ctx, s.tokenKey(tokenID))
		pipe.ZRem(ctx, s.expiryKey(), tokenID.String())
		return nil
	})
	if err != nil {
		return goerr.Wrap(err, "failed to delete token", goerr.V("tokenID", tokenID))
	}
	if del.Val() == 0 {
		return goerr.Wrap(ErrNotFound, "token not found", goerr.V("tokenID", tokenID))
	}
	return nil
}

func (s *Sessions) DeleteExpiredTokens(ctx context.Context, now time.Time) (int, error) {
	ids, err := s.client.ZRangeByScore(ctx, s.expiryKey(), &redis.ZRangeBy{
		Min: "-inf",
		Max: strconv.FormatInt(now.UnixMilli(), 10),
	}).Result()
	if err != nil {
		return 0, goerr.Wrap(err, "failed to list expired tokens")
	}
	if len(ids) == 0 {
		return 0, nil
	}

	keys := make([]string, len(ids))
	members := make([]any, len(ids))
	for i, id := range ids {
		keys[i] = s.tokenKey(auth.TokenID(id))
		members[i] = id
	}

	var del *redis.IntCmd
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		del = pipe.Del(ctx, keys...)
		pipe.ZRem(ctx, s.expiryKey(), members...)
		return nil
	})
	if err != nil {
		return 0, goerr.Wrap(err, "failed to delete expired tokens", goerr.V("count", len(ids)))
	}

	return int(del.Val()), nil
}

// Close closes the Redis client and the base repository
func (s *Sessions) Close() error {
	return errors.Join(
		s.client.Close(),
		s.Repository.Close(),
	)
}
