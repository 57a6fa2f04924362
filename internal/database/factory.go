package database

import (
	"fmt"
	"os"
	"path/filepath"

	"exprune/internal/config"
	"exprune/internal/prune"
)

// historyFileName is the on-disk name of the run-history database.
const historyFileName = "history.db"

// NewHistoryStoreFromConfig creates a HistoryStore implementation based on
// the history config. Disabled history gets a no-op store.
func NewHistoryStoreFromConfig(cfg config.HistoryConfig) (prune.HistoryStore, error) {
	if cfg.Disabled {
		return prune.NopHistory{}, nil
	}

	switch cfg.Type {
	case "sqlite":
		if cfg.DataDir == "" {
			return nil, fmt.Errorf("data_dir required for sqlite history")
		}
		if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
			return nil, fmt.Errorf("creating history directory: %w", err)
		}
		return NewSQLiteHistory(filepath.Join(cfg.DataDir, historyFileName))
	case "memory":
		return NewSQLiteHistory(":memory:")
	default:
		return nil, fmt.Errorf("unknown history type: %s", cfg.Type)
	}
}
