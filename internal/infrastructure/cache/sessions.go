package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrNoSession = errors.New("session token not found")

// SessionStore keeps opaque bearer tokens in redis with a sliding TTL.
type SessionStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewSessionStore(rdb *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{rdb: rdb, ttl: ttl}
}

func sessionKey(token string) string { return "session:" + token }

func (s *SessionStore) Put(ctx context.Context, token, accountID string) error {
	return s.rdb.Set(ctx, sessionKey(token), accountID, s.ttl).Err()
}

func (s *SessionStore) Lookup(ctx context.Context, token string) (string, error) {
	accountID, err := s.rdb.GetEx(ctx, sessionKey(token), s.ttl).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNoSession
	}
	if err != nil {
		return "", err
	}
	return accountID, nil
}

func (s *SessionStore) Drop(ctx context.Context, token string) error {
	return s.rdb.Del(ctx, sessionKey(token)).Err()
}
