package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shoplite/storefront/internal/domain/shared"
)

// DefaultKeyPrefix namespaces profile entries in a shared Redis database.
const DefaultKeyPrefix = "storefront:profile:"

// RedisProfileStorage implements ProfileStorage using Redis.
// This is suitable for distributed deployments where several gateway
// instances serve the same shoppers. Entries never expire.
type RedisProfileStorage struct {
	client    *redis.Client
	keyPrefix string
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host      string
	Port      int
	Password  string
	DB        int
	KeyPrefix string
}

// NewRedisProfileStorage connects to Redis and verifies the connection
func NewRedisProfileStorage(cfg RedisConfig) (*RedisProfileStorage, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisProfileStorageWithClient(client, cfg.KeyPrefix), nil
}

// NewRedisProfileStorageWithClient creates a storage with an existing Redis client
func NewRedisProfileStorageWithClient(client *redis.Client, keyPrefix string) *RedisProfileStorage {
	if keyPrefix == "" {
		keyPrefix = DefaultKeyPrefix
	}
	return &RedisProfileStorage{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

// Profile returns the store scoped to profileID
func (s *RedisProfileStorage) Profile(profileID string) shared.KeyValueStore {
	return &redisProfile{storage: s, profileID: profileID}
}

// Ping checks the Redis connection
func (s *RedisProfileStorage) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the Redis client
func (s *RedisProfileStorage) Close() error {
	return s.client.Close()
}

// Key returns the Redis key holding key for profileID: "{prefix}{profile}:{key}".
func (s *RedisProfileStorage) Key(profileID, key string) string {
	return s.keyPrefix + profileID + ":" + key
}

type redisProfile struct {
	storage   *RedisProfileStorage
	profileID string
}

func (p *redisProfile) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := p.storage.client.Get(ctx, p.storage.Key(p.profileID, key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read profile entry: %w", err)
	}
	return value, true, nil
}

func (p *redisProfile) Set(ctx context.Context, key, value string) error {
	if err := p.storage.client.Set(ctx, p.storage.Key(p.profileID, key), value, 0).Err(); err != nil {
		return fmt.Errorf("failed to write profile entry: %w", err)
	}
	return nil
}

func (p *redisProfile) Delete(ctx context.Context, key string) error {
	if err := p.storage.client.Del(ctx, p.storage.Key(p.profileID, key)).Err(); err != nil {
		return fmt.Errorf("failed to delete profile entry: %w", err)
	}
	return nil
}

// Ensure RedisProfileStorage implements ProfileStorage
var _ shared.ProfileStorage = (*RedisProfileStorage)(nil)
