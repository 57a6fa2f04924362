//go:build unix

package fs

import (
	"fmt"
	"io/fs"
	"syscall"
	"time"

	"exprune/internal/prune"
)

// ExtractStatData extracts Unix-specific stat timestamps from a FileInfo.
// ctime here is the inode status-change time; true birth time is not
// available on most Unix filesystems.
func (m *OSFilesystemManager) ExtractStatData(info fs.FileInfo) (*prune.StatData, error) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return nil, fmt.Errorf("cannot extract stat data: expected *syscall.Stat_t, got %T", info.Sys())
	}

	return &prune.StatData{
		Atime: time.Unix(stat.Atim.Sec, stat.Atim.Nsec),
		Ctime: time.Unix(stat.Ctim.Sec, stat.Ctim.Nsec),
	}, nil
}
