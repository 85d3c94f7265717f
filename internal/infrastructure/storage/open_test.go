package storage

import (
	"context"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/shoplite/storefront/internal/infrastructure/cache"
	"github.com/shoplite/storefront/internal/infrastructure/config"
	"github.com/shoplite/storefront/internal/infrastructure/persistence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storageConfig(driver string) *config.Config {
	return &config.Config{
		Storage: config.StorageConfig{Driver: driver},
		Log:     config.LogConfig{Level: "silent"},
	}
}

func TestOpen_Memory(t *testing.T) {
	s, err := Open(context.Background(), storageConfig(config.StorageMemory), nil)
	require.NoError(t, err)
	assert.IsType(t, &cache.InMemoryProfileStorage{}, s)
	require.NoError(t, s.Close())
}

func TestOpen_SQLitePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	cfg := storageConfig(config.StorageSQLite)
	cfg.Storage.SQLitePath = filepath.Join(t.TempDir(), "nested", "profile.db")

	s, err := Open(ctx, cfg, nil)
	require.NoError(t, err)
	assert.IsType(t, &persistence.GormProfileStorage{}, s)
	require.NoError(t, s.Profile("p1").Set(ctx, "cart", `[{"product_id":1,"name":"Widget","price":2.5,"quantity":2}]`))
	require.NoError(t, s.Close())

	s, err = Open(ctx, cfg, nil)
	require.NoError(t, err)
	defer s.Close()

	value, ok, err := s.Profile("p1").Get(ctx, "cart")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Contains(t, value, "Widget")

	_, ok, err = s.Profile("p2").Get(ctx, "cart")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestOpen_Redis(t *testing.T) {
	mr := miniredis.RunT(t)
	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)

	cfg := storageConfig(config.StorageRedis)
	cfg.Redis = config.RedisConfig{Host: mr.Host(), Port: port, KeyPrefix: "test:"}

	s, err := Open(context.Background(), cfg, nil)
	require.NoError(t, err)
	defer s.Close()
	assert.IsType(t, &cache.RedisProfileStorage{}, s)

	require.NoError(t, s.Profile("p1").Set(context.Background(), "cart", "[]"))
	assert.True(t, mr.Exists("test:p1:cart"))
}

func TestOpen_RedisUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)
	mr.Close()

	cfg := storageConfig(config.StorageRedis)
	cfg.Redis = config.RedisConfig{Host: "127.0.0.1", Port: port}

	_, err = Open(context.Background(), cfg, nil)
	assert.Error(t, err)

	cfg.Storage.AllowMemoryFallback = true
	s, err := Open(context.Background(), cfg, nil)
	require.NoError(t, err)
	assert.IsType(t, &cache.InMemoryProfileStorage{}, s)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), storageConfig("etcd"), nil)
	assert.ErrorContains(t, err, `unknown storage driver "etcd"`)
}
