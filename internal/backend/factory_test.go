package backend

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"budgetbook/internal/config"
	"budgetbook/internal/core"
	"budgetbook/internal/ledger/memory"
	applog "budgetbook/internal/log"
	"budgetbook/internal/storage"
)

func TestFromAppConfig(t *testing.T) {
	cfg, err := FromAppConfig(&config.Config{DataBackend: "sqlite", DBPath: "/tmp/x.db", DataDir: "seed"})
	require.NoError(t, err)
	assert.Equal(t, Config{Type: SQLiteBackend, SQLiteDBPath: "/tmp/x.db", DataDirectory: "seed"}, cfg)

	_, err = FromAppConfig(&config.Config{DataBackend: "sheets"})
	assert.Error(t, err)

	_, err = FromAppConfig(nil)
	assert.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, Config{Type: MemoryBackend}.Validate())
	assert.Error(t, Config{Type: SQLiteBackend}.Validate())
	assert.Error(t, Config{Type: "redis"}.Validate())
	assert.Equal(t, []string{"sqlite", "memory"}, GetBackendTypeStrings())
}

func TestCreateSQLiteBackend(t *testing.T) {
	ctx := context.Background()
	f := NewFactory(nil)

	store, err := f.CreateBackend(ctx, Config{Type: SQLiteBackend, SQLiteDBPath: filepath.Join(t.TempDir(), "b.db")})
	require.NoError(t, err)
	defer store.Close()

	_, ok := store.(*storage.Store)
	assert.True(t, ok)
	require.NoError(t, store.SetBudget(ctx, "food", core.Units(10)))
}

func TestCreateMemoryBackend(t *testing.T) {
	f := NewFactory(nil)

	store, err := f.CreateBackend(context.Background(), Config{Type: MemoryBackend, DataDirectory: t.TempDir()})
	require.NoError(t, err)
	defer store.Close()

	_, ok := store.(*memory.Store)
	assert.True(t, ok)
}

func TestCreateBackendRejectsInvalidConfig(t *testing.T) {
	_, err := NewFactory(nil).CreateBackend(context.Background(), Config{Type: SQLiteBackend})
	assert.Error(t, err)
}

func TestCreateBackendLogsBackend(t *testing.T) {
	var buf bytes.Buffer
	logger := applog.New(applog.Config{Level: slog.LevelDebug, Format: "text", Output: &buf})
	f := NewFactory(logger)

	store, err := f.CreateBackend(context.Background(), Config{Type: MemoryBackend, DataDirectory: t.TempDir()})
	require.NoError(t, err)
	require.NoError(t, store.Close())
	assert.Contains(t, buf.String(), "component=memory")
	assert.Contains(t, buf.String(), "backend=memory")

	buf.Reset()
	store, err = f.CreateBackend(context.Background(), Config{Type: SQLiteBackend, SQLiteDBPath: filepath.Join(t.TempDir(), "b.db")})
	require.NoError(t, err)
	require.NoError(t, store.Close())
	assert.Contains(t, buf.String(), "backend=sqlite")
}
