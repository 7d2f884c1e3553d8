// Package redis provides a Redis-backed implementation of storage.Store.
//
// Each namespace is one Redis hash. When a TTL is configured every write
// and every Touch refreshes it, so an idle tab session expires on its own.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/mmynk/brgrr/internal/storage"
)

// Ensure RedisStore implements storage.Store and storage.Toucher
var (
	_ storage.Store   = (*RedisStore)(nil)
	_ storage.Toucher = (*RedisStore)(nil)
)

const keyPrefix = "brgrr:"

// RedisStore implements storage.Store on Redis hashes.
type RedisStore struct {
	client *goredis.Client
	ttl    time.Duration
}

// New connects to addr and verifies the connection. A zero ttl keeps
// namespaces until they are deleted.
func New(ctx context.Context, addr string, ttl time.Duration) (*RedisStore, error) {
	client := goredis.NewClient(&goredis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}
	return &RedisStore{client: client, ttl: ttl}, nil
}

func hashKey(namespace string) string {
	return keyPrefix + namespace
}

// Get returns the value stored under key in namespace.
func (s *RedisStore) Get(ctx context.Context, namespace, key string) ([]byte, error) {
	v, err := s.client.HGet(ctx, hashKey(namespace), key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s/%s: %w", namespace, key, err)
	}
	return v, nil
}

// Set stores value under key and refreshes the namespace TTL.
func (s *RedisStore) Set(ctx context.Context, namespace, key string, value []byte) error {
	hk := hashKey(namespace)
	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, hk, key, value)
	if s.ttl > 0 {
		pipe.Expire(ctx, hk, s.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to set %s/%s: %w", namespace, key, err)
	}
	return nil
}

// DeleteNamespace removes the namespace hash.
func (s *RedisStore) DeleteNamespace(ctx context.Context, namespace string) error {
	if err := s.client.Del(ctx, hashKey(namespace)).Err(); err != nil {
		return fmt.Errorf("failed to delete namespace %s: %w", namespace, err)
	}
	return nil
}

// Touch restarts the namespace TTL. Redis keeps its own clock, so at is
// not used.
func (s *RedisStore) Touch(ctx context.Context, namespace string, at time.Time) error {
	if s.ttl <= 0 {
		return nil
	}
	if err := s.client.Expire(ctx, hashKey(namespace), s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to touch namespace %s: %w", namespace, err)
	}
	return nil
}

// Close closes the client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
