package cache

import (
	"fmt"

	"github.com/shoplite/storefront/internal/domain/shared"
	"github.com/shoplite/storefront/internal/infrastructure/config"
	"go.uber.org/zap"
)

// ProfileStorageFactory creates Redis or in-memory profile storages based on configuration
type ProfileStorageFactory struct {
	redisConfig           config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// ProfileStorageFactoryOption is a functional option for configuring the factory
type ProfileStorageFactoryOption func(*ProfileStorageFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) ProfileStorageFactoryOption {
	return func(f *ProfileStorageFactory) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithInMemoryFallback controls whether to fall back to in-memory storage when Redis is unavailable.
// Default is false.
func WithInMemoryFallback(allow bool) ProfileStorageFactoryOption {
	return func(f *ProfileStorageFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewProfileStorageFactory creates a new factory
func NewProfileStorageFactory(cfg config.RedisConfig, opts ...ProfileStorageFactoryOption) *ProfileStorageFactory {
	f := &ProfileStorageFactory{
		redisConfig: cfg,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// CreateRedisStorage creates a Redis-backed profile storage
func (f *ProfileStorageFactory) CreateRedisStorage() (*RedisProfileStorage, error) {
	storage, err := NewRedisProfileStorage(RedisConfig{
		Host:      f.redisConfig.Host,
		Port:      f.redisConfig.Port,
		Password:  f.redisConfig.Password,
		DB:        f.redisConfig.DB,
		KeyPrefix: f.redisConfig.KeyPrefix,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Redis profile storage: %w", err)
	}
	return storage, nil
}

// CreateStorage tries Redis first and falls back to in-memory storage when
// Redis is unreachable and fallback is allowed.
func (f *ProfileStorageFactory) CreateStorage() (shared.ProfileStorage, error) {
	storage, err := f.CreateRedisStorage()
	if err == nil {
		f.logger.Info("using Redis profile storage", zap.String("addr", f.redisConfig.Addr()))
		return storage, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("redis required for profile storage but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory profile storage. "+
		"Carts will not survive a restart or be shared between instances.",
		zap.Error(err),
	)
	return NewInMemoryProfileStorage(), nil
}
