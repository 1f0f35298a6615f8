package cache

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/redis/go-redis/v9"
)

// CodeStore keeps one-time email verification codes in redis. A code is
// consumed on first successful redeem.
type CodeStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewCodeStore(rdb *redis.Client, ttl time.Duration) *CodeStore {
	return &CodeStore{rdb: rdb, ttl: ttl}
}

func codeKey(email string) string { return "verify:" + email }

func (s *CodeStore) Issue(ctx context.Context, email string) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	code := fmt.Sprintf("%06d", n.Int64())
	if err := s.rdb.Set(ctx, codeKey(email), code, s.ttl).Err(); err != nil {
		return "", err
	}
	return code, nil
}

func (s *CodeStore) Redeem(ctx context.Context, email, code string) (bool, error) {
	stored, err := s.rdb.Get(ctx, codeKey(email)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if stored != code {
		return false, nil
	}
	_ = s.rdb.Del(ctx, codeKey(email)).Err()
	return true, nil
}
