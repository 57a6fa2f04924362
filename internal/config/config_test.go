package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig("/base")

	if cfg.DefaultSort != "ctime" {
		t.Errorf("DefaultSort = %q, want ctime", cfg.DefaultSort)
	}
	if cfg.LogDir != filepath.Join("/base", "log") {
		t.Errorf("LogDir = %q", cfg.LogDir)
	}
	if cfg.History.Disabled {
		t.Errorf("History.Disabled = true, want history on by default")
	}
	if cfg.History.Type != "sqlite" || cfg.History.DataDir != filepath.Join("/base", "db") {
		t.Errorf("History = %+v", cfg.History)
	}
}

func TestManager_RoundTrip(t *testing.T) {
	cfg := NewConfig("/base")
	cfg.DefaultSort = "mtime"
	cfg.History.Disabled = true
	cfg.Filesystem.Ignore = []string{"*.log", ".keep"}

	m := &Manager{}
	var buf bytes.Buffer
	if err := m.Write(&buf, cfg); err != nil {
		t.Fatalf("Write() error: %v", err)
	}

	got, err := m.Read(&buf)
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}

	if got.DefaultSort != cfg.DefaultSort || got.LogDir != cfg.LogDir {
		t.Errorf("round trip changed top-level fields: %+v", got)
	}
	if got.History != cfg.History {
		t.Errorf("round trip changed history: %+v, want %+v", got.History, cfg.History)
	}
	if len(got.Filesystem.Ignore) != 2 || got.Filesystem.Ignore[0] != "*.log" {
		t.Errorf("round trip changed ignore patterns: %v", got.Filesystem.Ignore)
	}
}

func TestManager_ReadInvalid(t *testing.T) {
	m := &Manager{}
	_, err := m.Read(strings.NewReader("default_sort = [not toml"))
	if err == nil {
		t.Fatal("Read() accepted invalid TOML")
	}
}

func TestLoadOrDefault(t *testing.T) {
	t.Run("missing file falls back to defaults", func(t *testing.T) {
		base := t.TempDir()
		cfg, err := LoadOrDefault(filepath.Join(base, "nope.toml"), base)
		if err != nil {
			t.Fatalf("LoadOrDefault() error: %v", err)
		}
		if cfg.DefaultSort != "ctime" || cfg.History.Type != "sqlite" {
			t.Errorf("defaults not applied: %+v", cfg)
		}
	})

	t.Run("partial file gets defaults filled", func(t *testing.T) {
		base := t.TempDir()
		path := filepath.Join(base, "exprune.toml")
		content := "default_sort = \"atime\"\n\n[history]\ndisabled = true\n"
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("writing config: %v", err)
		}

		cfg, err := LoadOrDefault(path, base)
		if err != nil {
			t.Fatalf("LoadOrDefault() error: %v", err)
		}
		if cfg.DefaultSort != "atime" {
			t.Errorf("DefaultSort = %q, want the file's value", cfg.DefaultSort)
		}
		if !cfg.History.Disabled {
			t.Errorf("History.Disabled = false, want the file's value")
		}
		if cfg.LogDir != filepath.Join(base, "log") {
			t.Errorf("LogDir = %q, want the default filled in", cfg.LogDir)
		}
		if cfg.History.Type != "sqlite" || cfg.History.DataDir != filepath.Join(base, "db") {
			t.Errorf("History defaults not filled: %+v", cfg.History)
		}
	})

	t.Run("unreadable file is an error", func(t *testing.T) {
		base := t.TempDir()
		path := filepath.Join(base, "exprune.toml")
		if err := os.WriteFile(path, []byte("not = [valid"), 0o644); err != nil {
			t.Fatalf("writing config: %v", err)
		}
		if _, err := LoadOrDefault(path, base); err == nil {
			t.Fatal("LoadOrDefault() accepted invalid TOML")
		}
	})
}

func TestInit(t *testing.T) {
	base := t.TempDir()
	path := filepath.Join(base, "nested", "exprune.toml")
	cfg := NewConfig(base)

	if err := Init(path, cfg); err != nil {
		t.Fatalf("Init() error: %v", err)
	}

	got, err := ReadFromFile(path)
	if err != nil {
		t.Fatalf("ReadFromFile() error: %v", err)
	}
	if got.DefaultSort != cfg.DefaultSort || got.LogDir != cfg.LogDir {
		t.Errorf("written config = %+v, want %+v", got, cfg)
	}

	if err := Init(path, cfg); err == nil {
		t.Fatal("Init() overwrote an existing config file")
	}
}
