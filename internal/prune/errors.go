package prune

import "errors"

// ErrNoFiles reports that a scan found no eligible regular files.
// Directories, symlinks and special files are never eligible.
var ErrNoFiles = errors.New("no files found")

// ErrNotDirectory reports that the target path is a file, not a directory.
var ErrNotDirectory = errors.New("path is not a directory")
