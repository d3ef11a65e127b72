package backend

import (
	"context"
	"fmt"

	"budgetbook/internal/ledger"
	"budgetbook/internal/ledger/memory"
	applog "budgetbook/internal/log"
	"budgetbook/internal/storage"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *applog.Logger
}

// NewFactory creates a new backend factory
func NewFactory(logger *applog.Logger) Factory {
	if logger == nil {
		logger = applog.Default(applog.ComponentBackend)
	}
	return &DefaultFactory{
		logger: logger.WithComponent(applog.ComponentBackend),
	}
}

// CreateBackend implements Factory.CreateBackend
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (ledger.Store, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	switch config.Type {
	case SQLiteBackend:
		return f.createSQLiteBackend(ctx, config)
	case MemoryBackend:
		return f.createMemoryBackend(config), nil
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}

func (f *DefaultFactory) createSQLiteBackend(ctx context.Context, config Config) (ledger.Store, error) {
	store, err := storage.Open(ctx, config.SQLiteDBPath, storage.WithLogger(f.logger))
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite ledger: %w", err)
	}

	f.logger.DebugContext(ctx, "Initialized SQLite backend",
		applog.FieldBackend, config.Type.String(),
		applog.FieldDBPath, config.SQLiteDBPath)
	return store, nil
}

func (f *DefaultFactory) createMemoryBackend(config Config) ledger.Store {
	dataDir := config.DataDirectory
	if dataDir == "" {
		dataDir = "data"
	}

	store := memory.NewFromFiles(dataDir)

	f.logger.WithComponent(applog.ComponentMemory).Warn("Using memory backend, nothing will be persisted",
		applog.FieldBackend, config.Type.String(),
		"data_directory", dataDir)
	return store
}
