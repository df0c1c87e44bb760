package common

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisKVStore persists draft state in Redis. Entries carry no TTL: an
// in-progress flight stays restorable for as long as the user leaves it.
type RedisKVStore struct {
	redis *redis.Client
}

var _ KVStore = (*RedisKVStore)(nil)

func NewRedisKVStore(client *redis.Client) *RedisKVStore {
	return &RedisKVStore{redis: client}
}

func (s *RedisKVStore) Set(ctx context.Context, key, value string) error {
	if err := s.redis.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("failed to store %s: %w", key, err)
	}
	return nil
}

func (s *RedisKVStore) Get(ctx context.Context, key string) (string, error) {
	val, err := s.redis.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return "", ErrKeyNotFound
		}
		return "", fmt.Errorf("failed to read %s: %w", key, err)
	}
	return val, nil
}

func (s *RedisKVStore) Remove(ctx context.Context, key string) error {
	if err := s.redis.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to remove %s: %w", key, err)
	}
	return nil
}
