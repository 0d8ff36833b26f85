package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const pendingMarker = "pending"

// IdempotencyStore guards a checkout against being submitted twice with the same key.
// Keys are scoped to the user, so two users may pick the same key.
type IdempotencyStore interface {
	// Reserve claims key. When the key is already taken it returns false together with
	// the stored value, which is the order id once the earlier checkout finished.
	Reserve(ctx context.Context, userID int, key string) (bool, string, error)
	Complete(ctx context.Context, userID int, key, orderID string) error
	Release(ctx context.Context, userID int, key string) error
}

type RedisIdempotencyStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisIdempotencyStore(rdb *redis.Client, ttl time.Duration) *RedisIdempotencyStore {
	return &RedisIdempotencyStore{rdb: rdb, ttl: ttl}
}

func idempotencyKey(userID int, key string) string {
	return fmt.Sprintf("idempotent-key:%d:%s", userID, key)
}

func (s *RedisIdempotencyStore) Reserve(ctx context.Context, userID int, key string) (bool, string, error) {
	ok, err := s.rdb.SetNX(ctx, idempotencyKey(userID, key), pendingMarker, s.ttl).Result()
	if err != nil {
		return false, "", err
	}
	if ok {
		return true, "", nil
	}

	val, err := s.rdb.Get(ctx, idempotencyKey(userID, key)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return false, "", err
	}
	if val == pendingMarker {
		val = ""
	}
	return false, val, nil
}

func (s *RedisIdempotencyStore) Complete(ctx context.Context, userID int, key, orderID string) error {
	return s.rdb.Set(ctx, idempotencyKey(userID, key), orderID, redis.KeepTTL).Err()
}

func (s *RedisIdempotencyStore) Release(ctx context.Context, userID int, key string) error {
	return s.rdb.Del(ctx, idempotencyKey(userID, key)).Err()
}
