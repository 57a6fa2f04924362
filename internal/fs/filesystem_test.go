package fs

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("data"), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

func TestResolve(t *testing.T) {
	m := NewOSFilesystemManager(nil)
	dir := t.TempDir()
	file := filepath.Join(dir, "file.txt")
	writeFile(t, file)

	t.Run("directory", func(t *testing.T) {
		p, err := m.Resolve(dir)
		if err != nil {
			t.Fatalf("Resolve() error: %v", err)
		}
		if !p.IsDir() {
			t.Errorf("Resolve(%s).IsDir() = false, want true", dir)
		}
		if !filepath.IsAbs(p.String()) {
			t.Errorf("Resolve() returned relative path %s", p.String())
		}
	})

	t.Run("regular file", func(t *testing.T) {
		p, err := m.Resolve(file)
		if err != nil {
			t.Fatalf("Resolve() error: %v", err)
		}
		if p.IsDir() {
			t.Errorf("Resolve(%s).IsDir() = true, want false", file)
		}
	})

	t.Run("missing path", func(t *testing.T) {
		_, err := m.Resolve(filepath.Join(dir, "missing"))
		if !errors.Is(err, fs.ErrNotExist) {
			t.Fatalf("Resolve() error = %v, want fs.ErrNotExist", err)
		}
	})
}

func TestListFiles(t *testing.T) {
	m := NewOSFilesystemManager(nil)
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.txt"))
	writeFile(t, filepath.Join(dir, "a.txt"))
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeFile(t, filepath.Join(dir, "sub", "nested.txt"))
	if err := os.Symlink(filepath.Join(dir, "a.txt"), filepath.Join(dir, "link")); err != nil {
		t.Fatalf("symlink: %v", err)
	}

	paths, err := m.ListFiles(dir)
	if err != nil {
		t.Fatalf("ListFiles() error: %v", err)
	}

	want := []string{filepath.Join(dir, "a.txt"), filepath.Join(dir, "b.txt")}
	if len(paths) != len(want) {
		t.Fatalf("ListFiles() returned %d paths, want %d: %v", len(paths), len(want), paths)
	}
	for i, p := range paths {
		if p.String() != want[i] {
			t.Errorf("ListFiles()[%d] = %s, want %s", i, p.String(), want[i])
		}
	}
}

func TestListFiles_Ignored(t *testing.T) {
	m := NewOSFilesystemManager([]string{"*.log", ".keep"})
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "kept.txt"))
	writeFile(t, filepath.Join(dir, "debug.log"))
	writeFile(t, filepath.Join(dir, ".keep"))

	paths, err := m.ListFiles(dir)
	if err != nil {
		t.Fatalf("ListFiles() error: %v", err)
	}
	if len(paths) != 1 || paths[0].String() != filepath.Join(dir, "kept.txt") {
		t.Errorf("ListFiles() = %v, want only kept.txt", paths)
	}
}

func TestListFiles_MissingDir(t *testing.T) {
	m := NewOSFilesystemManager(nil)

	_, err := m.ListFiles(filepath.Join(t.TempDir(), "missing"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("ListFiles() error = %v, want fs.ErrNotExist", err)
	}
}

func TestDirectories(t *testing.T) {
	m := NewOSFilesystemManager(nil)
	dir := t.TempDir()
	for _, sub := range []string{"b", "a", filepath.Join("a", "deep")} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
	}
	writeFile(t, filepath.Join(dir, "file.txt"))

	dirs, err := m.Directories(dir)
	if err != nil {
		t.Fatalf("Directories() error: %v", err)
	}

	want := []string{
		dir,
		filepath.Join(dir, "a"),
		filepath.Join(dir, "a", "deep"),
		filepath.Join(dir, "b"),
	}
	if len(dirs) != len(want) {
		t.Fatalf("Directories() = %v, want %v", dirs, want)
	}
	for i := range want {
		if dirs[i] != want[i] {
			t.Errorf("Directories()[%d] = %s, want %s", i, dirs[i], want[i])
		}
	}
}

func TestRemove(t *testing.T) {
	m := NewOSFilesystemManager(nil)
	dir := t.TempDir()
	file := filepath.Join(dir, "doomed.txt")
	writeFile(t, file)

	if err := m.Remove(file); err != nil {
		t.Fatalf("Remove() error: %v", err)
	}
	if _, err := os.Stat(file); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("file still exists after Remove")
	}

	if err := m.Remove(file); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Remove() on missing file error = %v, want fs.ErrNotExist", err)
	}
}

func TestExtractStatData(t *testing.T) {
	m := NewOSFilesystemManager(nil)
	dir := t.TempDir()
	file := filepath.Join(dir, "file.txt")
	writeFile(t, file)

	atime := time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC)
	mtime := time.Date(2024, 1, 12, 8, 0, 0, 0, time.UTC)
	if err := os.Chtimes(file, atime, mtime); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	info, err := os.Stat(file)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}

	stat, err := m.ExtractStatData(info)
	if err != nil {
		t.Fatalf("ExtractStatData() error: %v", err)
	}

	if !stat.Atime.Equal(atime) {
		t.Errorf("Atime = %v, want %v", stat.Atime, atime)
	}
	// ctime cannot be set from userspace; it should be recent, since the
	// chtimes call above just changed the inode.
	if d := time.Since(stat.Ctime); d < 0 || d > time.Minute {
		t.Errorf("Ctime = %v, want close to now", stat.Ctime)
	}
}
