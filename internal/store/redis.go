package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "storefront"

// NewRedisClient connects and pings the server.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,

		PoolSize:     10,
		MinIdleConns: 2,
		PoolTimeout:  4 * time.Second,

		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,

		ConnMaxIdleTime: 5 * time.Minute,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", addr, err)
	}
	return client, nil
}

// RedisStore maps (scope, key) to the redis key storefront:<scope>:<key>.
type RedisStore struct {
	client redis.UniversalClient
}

func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client}
}

func redisKey(scope, key string) string {
	if scope == ScopeGlobal {
		return redisKeyPrefix + ":global:" + key
	}
	return redisKeyPrefix + ":" + scope + ":" + key
}

func (s *RedisStore) Get(ctx context.Context, scope, key string) ([]byte, error) {
	raw, err := s.client.Get(ctx, redisKey(scope, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return raw, nil
}

func (s *RedisStore) Set(ctx context.Context, scope, key string, value []byte) error {
	return s.client.Set(ctx, redisKey(scope, key), value, 0).Err()
}

func (s *RedisStore) Delete(ctx context.Context, scope, key string) error {
	return s.client.Del(ctx, redisKey(scope, key)).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
