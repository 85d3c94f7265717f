// Package storage opens the profile storage backend that holds shopper carts.
package storage

import (
	"context"
	"fmt"

	"github.com/shoplite/storefront/internal/domain/shared"
	"github.com/shoplite/storefront/internal/infrastructure/cache"
	"github.com/shoplite/storefront/internal/infrastructure/config"
	applogger "github.com/shoplite/storefront/internal/infrastructure/logger"
	"github.com/shoplite/storefront/internal/infrastructure/persistence"
	"github.com/shoplite/storefront/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// Open returns the profile storage selected by cfg.Storage.Driver.
//
// The sqlite backend creates its table on first use. The postgres backend
// expects the schema migrations to have been applied.
func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger) (shared.ProfileStorage, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	switch cfg.Storage.Driver {
	case config.StorageMemory:
		logger.Warn("Using in-memory profile storage; carts are lost on restart")
		return cache.NewInMemoryProfileStorage(), nil

	case config.StorageRedis:
		factory := cache.NewProfileStorageFactory(cfg.Redis,
			cache.WithLogger(logger),
			cache.WithInMemoryFallback(cfg.Storage.AllowMemoryFallback),
		)
		return factory.CreateStorage()

	case config.StorageSQLite:
		db, err := persistence.OpenSQLite(cfg.Storage.SQLitePath, databaseOptions(cfg, logger)...)
		if err != nil {
			return nil, err
		}
		storage := persistence.NewGormProfileStorage(db)
		if err := storage.AutoMigrate(ctx); err != nil {
			_ = storage.Close()
			return nil, err
		}
		logger.Info("Using sqlite profile storage", zap.String("path", cfg.Storage.SQLitePath))
		return storage, nil

	case config.StoragePostgres:
		db, err := persistence.OpenPostgres(&cfg.Database, databaseOptions(cfg, logger)...)
		if err != nil {
			return nil, err
		}
		logger.Info("Using postgres profile storage",
			zap.String("host", cfg.Database.Host),
			zap.String("database", cfg.Database.DBName),
		)
		return persistence.NewGormProfileStorage(db), nil
	}

	return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
}

func databaseOptions(cfg *config.Config, logger *zap.Logger) []persistence.Option {
	tracing := telemetry.DefaultDBTracingConfig()
	tracing.Enabled = cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled
	tracing.LogFullSQL = cfg.Telemetry.DBLogFullSQL
	if cfg.Telemetry.DBSlowQueryThresh > 0 {
		tracing.SlowQueryThresh = cfg.Telemetry.DBSlowQueryThresh
	}

	return []persistence.Option{
		persistence.WithLogger(logger.Named("gorm"), applogger.MapGormLogLevel(cfg.Log.Level)),
		persistence.WithTracing(tracing),
	}
}
