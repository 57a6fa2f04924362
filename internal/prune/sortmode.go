package prune

import (
	"io/fs"
	"strings"
	"time"
)

// SortMode selects which file timestamp drives bucketing and retention.
type SortMode int

const (
	// SortByChangeTime uses the inode status-change time (ctime), the
	// closest thing to a creation time most Unix filesystems offer.
	SortByChangeTime SortMode = iota
	// SortByModTime uses the content modification time (mtime).
	SortByModTime
	// SortByAccessTime uses the last access time (atime).
	SortByAccessTime
)

func (m SortMode) String() string {
	switch m {
	case SortByModTime:
		return "mtime"
	case SortByAccessTime:
		return "atime"
	default:
		return "ctime"
	}
}

// ParseSortMode maps a --sort value to a SortMode, case-insensitively.
// Unknown values degrade to ctime with ok=false so the caller can warn
// instead of failing.
func ParseSortMode(s string) (mode SortMode, ok bool) {
	switch strings.ToLower(s) {
	case "mtime":
		return SortByModTime, true
	case "atime":
		return SortByAccessTime, true
	case "ctime":
		return SortByChangeTime, true
	default:
		return SortByChangeTime, false
	}
}

// epoch is the fallback timestamp when the filesystem cannot supply the
// requested timestamp kind.
var epoch = time.Unix(0, 0)

// Timestamp returns the file timestamp selected by m. ModTime is always
// available from FileInfo; atime and ctime come from stat data and fall
// back to the Unix epoch when extraction failed.
func (m SortMode) Timestamp(info fs.FileInfo, stat *StatData) time.Time {
	switch m {
	case SortByModTime:
		return info.ModTime()
	case SortByAccessTime:
		if stat == nil {
			return epoch
		}
		return stat.Atime
	default:
		if stat == nil {
			return epoch
		}
		return stat.Ctime
	}
}
