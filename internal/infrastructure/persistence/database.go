package persistence

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shoplite/storefront/internal/infrastructure/config"
	applogger "github.com/shoplite/storefront/internal/infrastructure/logger"
	"github.com/shoplite/storefront/internal/infrastructure/telemetry"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Database holds the database connection and provides methods for database operations
type Database struct {
	DB *gorm.DB
}

type dbOptions struct {
	logger   *zap.Logger
	logLevel gormlogger.LogLevel
	tracing  telemetry.DBTracingConfig
}

// Option configures how a Database is opened
type Option func(*dbOptions)

// WithLogger routes GORM logs to zap at the given level
func WithLogger(logger *zap.Logger, level gormlogger.LogLevel) Option {
	return func(o *dbOptions) {
		if logger != nil {
			o.logger = logger
		}
		o.logLevel = level
	}
}

// WithTracing installs otelgorm and slow query detection
func WithTracing(cfg telemetry.DBTracingConfig) Option {
	return func(o *dbOptions) {
		o.tracing = cfg
	}
}

func buildOptions(opts []Option) dbOptions {
	o := dbOptions{
		logger:   zap.NewNop(),
		logLevel: gormlogger.Silent,
		tracing:  telemetry.DefaultDBTracingConfig(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// OpenPostgres connects to the shared postgres database used by the gateway
func OpenPostgres(cfg *config.DatabaseConfig, opts ...Option) (*Database, error) {
	o := buildOptions(opts)
	o.tracing.DBSystem = "postgresql"

	db, err := open(postgres.Open(cfg.DSN()), o)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Minute)
	sqlDB.SetConnMaxIdleTime(time.Duration(cfg.ConnMaxIdleTime) * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

// OpenSQLite opens (creating if needed) the local profile file used by the CLI.
// ":memory:" opens a private in-memory database.
func OpenSQLite(path string, opts ...Option) (*Database, error) {
	o := buildOptions(opts)
	o.tracing.DBSystem = "sqlite"

	dsn := path
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return nil, fmt.Errorf("failed to create profile directory: %w", err)
		}
		dsn = path + "?_busy_timeout=5000&_journal_mode=WAL"
	}

	db, err := open(sqlite.Open(dsn), o)
	if err != nil {
		return nil, err
	}

	// A single connection keeps ":memory:" databases alive and serialises writers.
	sqlDB, err := db.DB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}

// NewDatabase wraps an already opened GORM connection
func NewDatabase(db *gorm.DB) *Database {
	return &Database{DB: db}
}

func open(dialector gorm.Dialector, o dbOptions) (*Database, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 applogger.NewGormLogger(o.logger, o.logLevel),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := telemetry.NewDBTracingPlugin(o.tracing, o.logger).Register(db); err != nil {
		return nil, fmt.Errorf("failed to register database tracing: %w", err)
	}
	return &Database{DB: db}, nil
}

// Close closes the database connection
func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.Close()
}

// Ping checks if the database connection is alive
func (d *Database) Ping(ctx context.Context) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

// Stats returns database connection pool statistics and an error if unable to retrieve
func (d *Database) Stats() (ConnectionStats, error) {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return ConnectionStats{}, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	stats := sqlDB.Stats()
	return ConnectionStats{
		MaxOpenConnections: stats.MaxOpenConnections,
		OpenConnections:    stats.OpenConnections,
		InUse:              stats.InUse,
		Idle:               stats.Idle,
		WaitCount:          stats.WaitCount,
		WaitDuration:       stats.WaitDuration,
	}, nil
}

// ConnectionStats holds database connection pool statistics
type ConnectionStats struct {
	MaxOpenConnections int
	OpenConnections    int
	InUse              int
	Idle               int
	WaitCount          int64
	WaitDuration       time.Duration
}
