package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the optional on-disk configuration for exprune. Every field
// has a working default, so a missing config file is not an error.
type Config struct {
	// DefaultSort is the sort mode used when --sort is not given:
	// "mtime", "atime" or "ctime".
	DefaultSort string           `toml:"default_sort"`
	LogDir      string           `toml:"log_dir"`
	History     HistoryConfig    `toml:"history"`
	Filesystem  FilesystemConfig `toml:"filesystem"`
}

// HistoryConfig controls the local run-history database.
// This uses a tagged union pattern - the Type field determines which other
// fields are relevant.
type HistoryConfig struct {
	// Disabled turns run recording off entirely. The zero value keeps
	// history on, so an absent [history] section records as usual.
	Disabled bool   `toml:"disabled"`
	Type     string `toml:"type"`               // "sqlite" or "memory"
	DataDir  string `toml:"data_dir,omitempty"` // only used for type=sqlite
}

// FilesystemConfig holds filesystem-related settings.
type FilesystemConfig struct {
	// Ignore patterns exclude matching files from pruning entirely.
	Ignore []string `toml:"ignore"`
}

// NewConfig creates a Config with defaults rooted at baseDir.
func NewConfig(baseDir string) *Config {
	return &Config{
		DefaultSort: "ctime",
		LogDir:      filepath.Join(baseDir, "log"),
		History: HistoryConfig{
			Type:    "sqlite",
			DataDir: filepath.Join(baseDir, "db"),
		},
	}
}

// Manager handles reading and writing configuration.
type Manager struct{}

// Read decodes a Config from the provided reader.
func (m *Manager) Read(r io.Reader) (*Config, error) {
	var cfg Config
	if _, err := toml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// Write encodes a Config to the provided writer.
func (m *Manager) Write(w io.Writer, cfg *Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// ReadFromFile reads a Config from the specified file path.
func ReadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	cfg, err := m.Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault reads the config file at path, falling back to the
// built-in defaults rooted at baseDir when the file does not exist.
func LoadOrDefault(path, baseDir string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return NewConfig(baseDir), nil
	}
	cfg, err := ReadFromFile(path)
	if err != nil {
		return nil, err
	}
	applyDefaults(cfg, baseDir)
	return cfg, nil
}

// applyDefaults fills in fields the config file left empty.
func applyDefaults(cfg *Config, baseDir string) {
	def := NewConfig(baseDir)
	if cfg.DefaultSort == "" {
		cfg.DefaultSort = def.DefaultSort
	}
	if cfg.LogDir == "" {
		cfg.LogDir = def.LogDir
	}
	if cfg.History.Type == "" {
		cfg.History.Type = def.History.Type
	}
	if cfg.History.DataDir == "" {
		cfg.History.DataDir = def.History.DataDir
	}
}

// writeToFile writes a Config to the specified file path.
// This is an internal helper and should not be exported.
func writeToFile(path string, cfg *Config) error {
	// Ensure the directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	if err := m.Write(f, cfg); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Init initializes a new config file at the specified path with the
// provided Config.
func Init(path string, cfg *Config) error {
	// Check if config already exists
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := writeToFile(path, cfg); err != nil {
		return fmt.Errorf("initializing config: %w", err)
	}
	return nil
}
