package prune

import (
	"io/fs"
	"time"
)

// StatData carries the Unix stat timestamps that fs.FileInfo does not
// expose portably.
type StatData struct {
	Atime time.Time
	Ctime time.Time
}

// FilesystemManager provides an interface for filesystem operations.
// It abstracts file access so grouping, selection and deletion can be
// tested without touching the real filesystem.
type FilesystemManager interface {
	// Resolve validates a raw path and returns a Path object.
	// It resolves the path to an absolute path, stats it, and validates
	// it's a regular file or directory (not a symlink, device, etc.).
	Resolve(rawPath string) (*Path, error)

	// ListFiles returns the regular files that are direct children of dir,
	// in name order. Non-regular entries and ignored files are skipped.
	ListFiles(dir string) ([]*Path, error)

	// Directories returns dir itself plus every directory beneath it, in
	// lexical walk order.
	Directories(dir string) ([]string, error)

	// ExtractStatData pulls atime/ctime out of a FileInfo. Returns an
	// error when the platform's stat layout is unavailable.
	ExtractStatData(info fs.FileInfo) (*StatData, error)

	// Remove deletes a single file.
	Remove(path string) error
}
