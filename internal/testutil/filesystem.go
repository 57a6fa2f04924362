package testutil

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"exprune/internal/prune"
)

// MockFile represents one entry in the mock filesystem.
type MockFile struct {
	ModTime     time.Time
	Atime       time.Time
	Ctime       time.Time
	Mode        fs.FileMode // non-zero type bits make the entry non-regular
	IsDirectory bool
}

// MockFilesystemManager is an in-memory filesystem for testing.
// Paths are plain absolute strings; directories must be added explicitly.
type MockFilesystemManager struct {
	files map[string]*MockFile

	// Removed records every successful Remove, in order.
	Removed []string
	// RemoveErrors makes Remove fail for specific paths.
	RemoveErrors map[string]error
	// ListErrors makes ListFiles fail for specific directories.
	ListErrors map[string]error
	// StatDataErr, when set, makes ExtractStatData fail so callers take
	// the epoch-fallback path.
	StatDataErr error
}

// NewMockFilesystemManager creates an empty mock filesystem.
func NewMockFilesystemManager() *MockFilesystemManager {
	return &MockFilesystemManager{
		files:        make(map[string]*MockFile),
		RemoveErrors: make(map[string]error),
		ListErrors:   make(map[string]error),
	}
}

// AddDirectory adds a directory entry.
func (m *MockFilesystemManager) AddDirectory(path string) {
	m.files[path] = &MockFile{IsDirectory: true, Mode: fs.ModeDir}
}

// AddFile adds a regular file whose mtime, atime and ctime all equal ts.
func (m *MockFilesystemManager) AddFile(path string, ts time.Time) {
	m.files[path] = &MockFile{ModTime: ts, Atime: ts, Ctime: ts}
}

// AddFileTimes adds a regular file with distinct timestamps.
func (m *MockFilesystemManager) AddFileTimes(path string, mtime, atime, ctime time.Time) {
	m.files[path] = &MockFile{ModTime: mtime, Atime: atime, Ctime: ctime}
}

// AddSymlink adds a symlink entry, which is never eligible for pruning.
func (m *MockFilesystemManager) AddSymlink(path string) {
	m.files[path] = &MockFile{Mode: fs.ModeSymlink}
}

func (m *MockFilesystemManager) Resolve(rawPath string) (*prune.Path, error) {
	absPath, err := filepath.Abs(rawPath)
	if err != nil {
		return nil, err
	}
	f, ok := m.files[absPath]
	if !ok {
		return nil, fmt.Errorf("stat path: %w", fs.ErrNotExist)
	}
	return prune.NewPath(absPath, f.IsDirectory, newMockFileInfo(absPath, f)), nil
}

func (m *MockFilesystemManager) ListFiles(dir string) ([]*prune.Path, error) {
	if err := m.ListErrors[dir]; err != nil {
		return nil, err
	}
	if f, ok := m.files[dir]; !ok || !f.IsDirectory {
		return nil, fmt.Errorf("reading directory: %w", fs.ErrNotExist)
	}

	var names []string
	prefix := dir + "/"
	for p, f := range m.files {
		if !strings.HasPrefix(p, prefix) {
			continue
		}
		if strings.Contains(p[len(prefix):], "/") {
			continue // not a direct child
		}
		if f.IsDirectory || f.Mode&fs.ModeType != 0 {
			continue
		}
		names = append(names, p)
	}
	sort.Strings(names)

	paths := make([]*prune.Path, len(names))
	for i, p := range names {
		paths[i] = prune.NewPath(p, false, newMockFileInfo(p, m.files[p]))
	}
	return paths, nil
}

func (m *MockFilesystemManager) Directories(dir string) ([]string, error) {
	if f, ok := m.files[dir]; !ok || !f.IsDirectory {
		return nil, fmt.Errorf("walking directory: %w", fs.ErrNotExist)
	}

	dirs := []string{dir}
	prefix := dir + "/"
	for p, f := range m.files {
		if f.IsDirectory && strings.HasPrefix(p, prefix) {
			dirs = append(dirs, p)
		}
	}
	sort.Strings(dirs)
	return dirs, nil
}

func (m *MockFilesystemManager) ExtractStatData(info fs.FileInfo) (*prune.StatData, error) {
	if m.StatDataErr != nil {
		return nil, m.StatDataErr
	}
	mi, ok := info.Sys().(*MockFile)
	if !ok {
		return nil, fmt.Errorf("cannot extract stat data: expected *MockFile, got %T", info.Sys())
	}
	return &prune.StatData{Atime: mi.Atime, Ctime: mi.Ctime}, nil
}

func (m *MockFilesystemManager) Remove(path string) error {
	if err := m.RemoveErrors[path]; err != nil {
		return err
	}
	if _, ok := m.files[path]; !ok {
		return fmt.Errorf("remove %s: %w", path, fs.ErrNotExist)
	}
	delete(m.files, path)
	m.Removed = append(m.Removed, path)
	return nil
}

// Exists reports whether a path is still present in the mock filesystem.
func (m *MockFilesystemManager) Exists(path string) bool {
	_, ok := m.files[path]
	return ok
}

// Compile-time check that MockFilesystemManager implements prune.FilesystemManager
var _ prune.FilesystemManager = (*MockFilesystemManager)(nil)

// mockFileInfo adapts a MockFile to fs.FileInfo.
type mockFileInfo struct {
	name string
	file *MockFile
}

func newMockFileInfo(path string, f *MockFile) *mockFileInfo {
	return &mockFileInfo{name: filepath.Base(path), file: f}
}

func (i *mockFileInfo) Name() string       { return i.name }
func (i *mockFileInfo) Size() int64        { return 0 }
func (i *mockFileInfo) Mode() fs.FileMode  { return i.file.Mode }
func (i *mockFileInfo) ModTime() time.Time { return i.file.ModTime }
func (i *mockFileInfo) IsDir() bool        { return i.file.IsDirectory }
func (i *mockFileInfo) Sys() any           { return i.file }
