// Command storefront is the shopper's terminal client. The cart lives in a
// local sqlite profile file; products, orders and reports come from the
// storefront API.
package main

import (
	"context"
	"fmt"
	"os"

	cartapp "github.com/shoplite/storefront/internal/application/cart"
	catalogapp "github.com/shoplite/storefront/internal/application/catalog"
	reportapp "github.com/shoplite/storefront/internal/application/report"
	tradeapp "github.com/shoplite/storefront/internal/application/trade"
	"github.com/shoplite/storefront/internal/domain/shared"
	"github.com/shoplite/storefront/internal/infrastructure/config"
	applogger "github.com/shoplite/storefront/internal/infrastructure/logger"
	"github.com/shoplite/storefront/internal/infrastructure/storage"
	"github.com/shoplite/storefront/internal/infrastructure/storefrontapi"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// defaultProfile is the profile id used when --profile is not given
const defaultProfile = "default"

var (
	// Global flags
	profileDB string
	apiURL    string
	profileID string
	logLevel  string

	logger = zap.NewNop()
	app    *shopper
)

// shopper wires the services the commands use for one profile
type shopper struct {
	storage  shared.ProfileStorage
	cart     *cartapp.CartStore
	catalog  *catalogapp.CatalogService
	checkout *tradeapp.CheckoutService
	reports  *reportapp.ReportService
	tools    *reportapp.DataToolsService
}

// newShopper opens the profile storage and the API client described by cfg
func newShopper(ctx context.Context, cfg *config.Config, profile string, log *zap.Logger) (*shopper, error) {
	profiles, err := storage.Open(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	api, err := storefrontapi.NewClient(
		storefrontapi.Config{BaseURL: cfg.API.BaseURL, Timeout: cfg.API.Timeout},
		storefrontapi.WithLogger(log),
	)
	if err != nil {
		_ = profiles.Close()
		return nil, err
	}

	return &shopper{
		storage:  profiles,
		cart:     cartapp.NewCartStore(profiles.Profile(profile), cartapp.WithLogger(log)),
		catalog:  catalogapp.NewCatalogService(api, log),
		checkout: tradeapp.NewCheckoutService(api, log),
		reports:  reportapp.NewReportService(api, log),
		tools:    reportapp.NewDataToolsService(api, log),
	}, nil
}

// Close releases the profile storage
func (s *shopper) Close() error {
	return s.storage.Close()
}

var rootCmd = &cobra.Command{
	Use:   "storefront",
	Short: "Browse the shop and manage your cart from the terminal",
	Long: `storefront is a terminal client for the shop.

Your cart is kept in a local profile file (~/.storefront/profile.db by
default) and survives between runs. Products, orders and reports are read
from the storefront API, configured with --api or STOREFRONT_API_BASE_URL.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := applogger.DefaultConfig()
		cfg.Level = logLevel
		l, err := applogger.New(cfg)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = l

		appCfg, err := loadConfig()
		if err != nil {
			return err
		}
		app, err = newShopper(cmd.Context(), appCfg, profileID, logger)
		return err
	},
}

// execute runs the command tree and then releases the profile. Cobra skips
// post-run hooks when a command fails, so cleanup cannot live in one.
func execute(args []string) error {
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	if cerr := shutdown(); err == nil {
		err = cerr
	}
	return err
}

// shutdown syncs the logger and closes the open profile, if any
func shutdown() error {
	applogger.Sync(logger)
	if app == nil {
		return nil
	}
	err := app.Close()
	app = nil
	return err
}

// loadConfig reads the shared configuration and applies the CLI's overrides.
// The CLI always keeps its cart in sqlite.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	cfg.Storage.Driver = config.StorageSQLite
	if profileDB != "" {
		cfg.Storage.SQLitePath = profileDB
	}
	if apiURL != "" {
		cfg.API.BaseURL = apiURL
	}
	return cfg, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&profileDB, "db", "", "profile file (default ~/.storefront/profile.db)")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", "", "storefront API base URL")
	rootCmd.PersistentFlags().StringVarP(&profileID, "profile", "p", defaultProfile, "profile whose cart to use")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level: debug, info, warn, error")

	rootCmd.AddCommand(productsCmd, cartCmd, checkoutCmd, orderCmd, reportsCmd, toolsCmd)
}

func main() {
	if err := execute(os.Args[1:]); err != nil {
		os.Exit(1)
	}
}
