package service

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// CodeStore holds short-lived security codes keyed by roll number. The Redis
// implementation leans on key TTL for expiry, so no cleanup job is needed.
type CodeStore interface {
	Set(ctx context.Context, rollNumber, code string, ttl time.Duration) error
	Get(ctx context.Context, rollNumber string) (string, error)
	Del(ctx context.Context, rollNumber string) error
}

type RedisCodeStore struct {
	rdb *redis.Client
}

func NewRedisCodeStore(rdb *redis.Client) *RedisCodeStore {
	return &RedisCodeStore{rdb: rdb}
}

func codeKey(rollNumber string) string {
	return "security_code:" + rollNumber
}

func (s *RedisCodeStore) Set(ctx context.Context, rollNumber, code string, ttl time.Duration) error {
	return s.rdb.Set(ctx, codeKey(rollNumber), code, ttl).Err()
}

// Get returns the stored code, or "" when absent or expired.
func (s *RedisCodeStore) Get(ctx context.Context, rollNumber string) (string, error) {
	code, err := s.rdb.Get(ctx, codeKey(rollNumber)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return code, err
}

func (s *RedisCodeStore) Del(ctx context.Context, rollNumber string) error {
	return s.rdb.Del(ctx, codeKey(rollNumber)).Err()
}
