package storage

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "github.com/lib/pq"
	cartapp "github.com/shoplite/storefront/internal/application/cart"
	"github.com/shoplite/storefront/internal/domain/cart"
	"github.com/shoplite/storefront/internal/infrastructure/config"
	"github.com/shoplite/storefront/internal/infrastructure/migration"
	"github.com/shoplite/storefront/internal/infrastructure/persistence"
	"github.com/shoplite/storefront/migrations"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
)

// startPostgres runs a throwaway PostgreSQL container and returns the
// settings to reach it. The test is skipped when no container runtime is
// available.
func startPostgres(t *testing.T) config.DatabaseConfig {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping postgres integration test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("storefront_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("storefront"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "Failed to start PostgreSQL container")
	t.Cleanup(func() {
		_ = container.Terminate(context.Background())
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	return config.DatabaseConfig{
		Host:         host,
		Port:         port.Int(),
		User:         "postgres",
		Password:     "storefront",
		DBName:       "storefront_test",
		SSLMode:      "disable",
		MaxOpenConns: 5,
		MaxIdleConns: 2,
	}
}

func profileRows(t *testing.T, db *sql.DB, profileID string) int {
	t.Helper()
	var n int
	err := db.QueryRowContext(context.Background(),
		"SELECT COUNT(*) FROM profile_entries WHERE profile_id = $1", profileID).Scan(&n)
	require.NoError(t, err)
	return n
}

func TestPostgres_MigrationsAndCartStore(t *testing.T) {
	dbCfg := startPostgres(t)
	ctx := context.Background()

	sqlDB, err := sql.Open("postgres", dbCfg.DSN())
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	m, err := migration.New(sqlDB, migrations.FS, zap.NewNop())
	require.NoError(t, err)

	version, _, err := m.Version()
	require.NoError(t, err)
	assert.Zero(t, version, "fresh database has no migrations")

	require.NoError(t, m.Up())
	version, dirty, err := m.Version()
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)
	assert.False(t, dirty)
	require.NoError(t, m.Up(), "applying again is a no-op")

	cfg := storageConfig(config.StoragePostgres)
	cfg.Database = dbCfg
	s, err := Open(ctx, cfg, nil)
	require.NoError(t, err)
	defer s.Close()
	assert.IsType(t, &persistence.GormProfileStorage{}, s)
	require.NoError(t, s.Ping(ctx))

	store := cartapp.NewCartStore(s.Profile("shopper-1"))

	_, err = store.Add(ctx, cart.NumericProductID(1), "Widget", decimal.RequireFromString("2.50"))
	require.NoError(t, err)
	_, err = store.AddRaw(ctx, cart.StringProductID("sku-2"), "Gadget", "9.99")
	require.NoError(t, err)
	// The second add of the same product goes through the upsert path.
	_, err = store.Add(ctx, cart.NumericProductID(1), "Widget v2", decimal.RequireFromString("3.00"))
	require.NoError(t, err)
	c, err := store.SetQuantity(ctx, 1, "3")
	require.NoError(t, err)
	assert.Equal(t, "34.97", c.Total().StringFixed(2))
	assert.Equal(t, 1, profileRows(t, sqlDB, "shopper-1"))

	reloaded, err := cartapp.NewCartStore(s.Profile("shopper-1")).Load(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, reloaded.Len())
	first, _ := reloaded.Line(0)
	assert.Equal(t, "Widget", first.Name)
	assert.Equal(t, 2, first.Quantity)
	assert.True(t, reloaded.Total().Equal(c.Total()))

	other, err := cartapp.NewCartStore(s.Profile("shopper-2")).Load(ctx)
	require.NoError(t, err)
	assert.True(t, other.IsEmpty(), "profiles do not share carts")

	c, err = store.Remove(ctx, 0)
	require.NoError(t, err)
	require.Equal(t, 1, c.Len())
	remaining, _ := c.Line(0)
	assert.Equal(t, "sku-2", remaining.ProductID.String())

	require.NoError(t, store.Clear(ctx))
	assert.Zero(t, profileRows(t, sqlDB, "shopper-1"), "clear deletes the entry")
	c, err = store.Load(ctx)
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())

	require.NoError(t, m.Down())
	version, _, err = m.Version()
	require.NoError(t, err)
	assert.Zero(t, version)

	var exists bool
	require.NoError(t, sqlDB.QueryRowContext(ctx,
		"SELECT to_regclass('profile_entries') IS NOT NULL").Scan(&exists))
	assert.False(t, exists, "down migration drops the table")
}
