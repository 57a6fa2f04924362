package database

import (
	"os"
	"path/filepath"
	"testing"

	"exprune/internal/config"
	"exprune/internal/prune"
)

func TestNewHistoryStoreFromConfig(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		store, err := NewHistoryStoreFromConfig(config.HistoryConfig{Disabled: true, Type: "sqlite"})
		if err != nil {
			t.Fatalf("NewHistoryStoreFromConfig() error: %v", err)
		}
		if _, ok := store.(prune.NopHistory); !ok {
			t.Errorf("disabled history store is %T, want NopHistory", store)
		}
	})

	t.Run("memory", func(t *testing.T) {
		store, err := NewHistoryStoreFromConfig(config.HistoryConfig{Type: "memory"})
		if err != nil {
			t.Fatalf("NewHistoryStoreFromConfig() error: %v", err)
		}
		defer store.Close()
		if _, ok := store.(*SQLiteHistory); !ok {
			t.Errorf("memory history store is %T, want *SQLiteHistory", store)
		}
	})

	t.Run("sqlite creates data dir and file", func(t *testing.T) {
		dataDir := filepath.Join(t.TempDir(), "db")
		store, err := NewHistoryStoreFromConfig(config.HistoryConfig{Type: "sqlite", DataDir: dataDir})
		if err != nil {
			t.Fatalf("NewHistoryStoreFromConfig() error: %v", err)
		}
		defer store.Close()

		if _, err := os.Stat(filepath.Join(dataDir, historyFileName)); err != nil {
			t.Errorf("history database file missing: %v", err)
		}
	})

	t.Run("sqlite without data dir", func(t *testing.T) {
		if _, err := NewHistoryStoreFromConfig(config.HistoryConfig{Type: "sqlite"}); err == nil {
			t.Error("missing data_dir accepted")
		}
	})

	t.Run("unknown type", func(t *testing.T) {
		if _, err := NewHistoryStoreFromConfig(config.HistoryConfig{Type: "redis"}); err == nil {
			t.Error("unknown history type accepted")
		}
	})
}
