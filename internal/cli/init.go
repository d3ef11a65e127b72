// Package cli provides the initialization helpers and the interactive shell
// shared by the budgetbook commands.
package cli

import (
	"context"
	"fmt"

	"github.com/joho/godotenv"

	"budgetbook/internal/backend"
	"budgetbook/internal/config"
	"budgetbook/internal/ledger"
	applog "budgetbook/internal/log"
)

// LoadEnvFile loads the .env file for local development.
// A missing file is not an error.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration from the environment, applies
// overrides and validates the result.
func LoadAndValidateConfig(overrides ...func(*config.Config)) (*config.Config, error) {
	cfg := config.Load()
	for _, o := range overrides {
		o(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SetupLogger builds the application logger from cfg and makes it the
// process default.
func SetupLogger(cfg *config.Config) *applog.Logger {
	logger := applog.New(cfg.LoggerConfig())
	applog.SetDefault(logger)
	logger.WithComponent(applog.ComponentConfig).Debug("Configuration loaded",
		applog.FieldBackend, cfg.DataBackend,
		applog.FieldDBPath, cfg.DBPath,
		"currency", cfg.Currency)
	return logger
}

// OpenLedger opens the store selected by cfg. The caller must Close it.
func OpenLedger(ctx context.Context, logger *applog.Logger, cfg *config.Config) (ledger.Store, error) {
	bcfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return nil, err
	}
	store, err := backend.NewFactory(logger).CreateBackend(ctx, bcfg)
	if err != nil {
		logger.LogError(ctx, "Failed to open ledger", err, applog.OpOpen,
			applog.NewFields().WithComponent(applog.ComponentCLI))
		return nil, fmt.Errorf("open ledger: %w", err)
	}
	return store, nil
}
