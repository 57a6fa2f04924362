package fs

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"exprune/internal/prune"
)

// OSFilesystemManager is the real filesystem implementation of
// prune.FilesystemManager. It performs actual filesystem operations using
// the os package.
type OSFilesystemManager struct {
	ignore *IgnoreMatcher
}

// NewOSFilesystemManager creates a filesystem manager that operates on the
// real filesystem. Files matching one of the ignore patterns are excluded
// from listings.
func NewOSFilesystemManager(ignorePatterns []string) *OSFilesystemManager {
	return &OSFilesystemManager{ignore: NewIgnoreMatcher(ignorePatterns)}
}

// Resolve validates a raw path and returns a Path object.
func (m *OSFilesystemManager) Resolve(rawPath string) (*prune.Path, error) {
	absPath, err := filepath.Abs(rawPath)
	if err != nil {
		return nil, fmt.Errorf("resolving absolute path: %w", err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return nil, fmt.Errorf("stat path: %w", err)
	}

	// Check for special file types we don't support
	mode := info.Mode()
	if mode&os.ModeSymlink != 0 {
		return nil, fmt.Errorf("symlinks not supported: %s", absPath)
	}
	if mode&os.ModeDevice != 0 {
		return nil, fmt.Errorf("device files not supported: %s", absPath)
	}
	if mode&os.ModeNamedPipe != 0 {
		return nil, fmt.Errorf("named pipes not supported: %s", absPath)
	}
	if mode&os.ModeSocket != 0 {
		return nil, fmt.Errorf("sockets not supported: %s", absPath)
	}

	return prune.NewPath(absPath, info.IsDir(), info), nil
}

// ListFiles returns the regular files that are direct children of dir, in
// name order. It never descends into subdirectories; directories, symlinks
// and special files are skipped, as are ignored names.
func (m *OSFilesystemManager) ListFiles(dir string) ([]*prune.Path, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory: %w", err)
	}

	var paths []*prune.Path
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		if m.ignore.Match(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", entry.Name(), err)
		}
		paths = append(paths, prune.NewPath(filepath.Join(dir, entry.Name()), false, info))
	}

	return paths, nil
}

// Directories returns dir itself plus every directory beneath it, in
// lexical walk order.
func (m *OSFilesystemManager) Directories(dir string) ([]string, error) {
	var dirs []string
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			dirs = append(dirs, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory: %w", err)
	}
	return dirs, nil
}

// Remove deletes a single file.
func (m *OSFilesystemManager) Remove(path string) error {
	return os.Remove(path)
}

// Compile-time check that OSFilesystemManager implements prune.FilesystemManager
var _ prune.FilesystemManager = (*OSFilesystemManager)(nil)
