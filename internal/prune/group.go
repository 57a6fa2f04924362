package prune

import (
	"errors"
	"fmt"
	"time"
)

// DirGroup is the bucket view of a single directory's direct children.
type DirGroup struct {
	Dir     string
	Buckets BucketMap
}

// Grouper scans directories and partitions their files into retention
// buckets by age.
type Grouper struct {
	fsmgr  FilesystemManager
	clock  Clock
	logger Logger
}

// NewGrouper creates a Grouper with the provided dependencies.
func NewGrouper(fsmgr FilesystemManager, clock Clock, logger Logger) *Grouper {
	return &Grouper{
		fsmgr:  fsmgr,
		clock:  clock,
		logger: logger,
	}
}

// GroupDir buckets the regular files directly inside dir. It never
// descends into subdirectories. Returns ErrNoFiles when the directory has
// no eligible files.
func (g *Grouper) GroupDir(dir string, mode SortMode) (BucketMap, error) {
	files, err := g.fsmgr.ListFiles(dir)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", dir, err)
	}

	now := g.clock.Now()
	buckets := make(BucketMap)
	for _, f := range files {
		stat, err := g.fsmgr.ExtractStatData(f.Info())
		if err != nil {
			// Platform without usable stat data: degrade to the epoch
			// fallback instead of failing the scan.
			stat = nil
			g.logger.Debug("stat data unavailable", "path", f.String(), "error", err)
		}

		ts := mode.Timestamp(f.Info(), stat)
		age := now.Sub(ts)
		if age < 0 {
			// Timestamp in the future: skip the file, by contract.
			g.logger.Debug("skipping file with future timestamp", "path", f.String())
			continue
		}

		id := BucketFor(uint64(age / (24 * time.Hour)))
		buckets[id] = append(buckets[id], FileRecord{Path: f.String(), Timestamp: ts})
	}

	if len(buckets) == 0 {
		return nil, fmt.Errorf("%w in %s (the program only works with files, not directories)", ErrNoFiles, dir)
	}
	return buckets, nil
}

// GroupTree buckets every directory under root independently: each
// directory's buckets cover only its direct children, so sibling
// directories never share a bucket set. Directories without eligible files
// are reported through notice and skipped; the walk fails with ErrNoFiles
// only when that leaves nothing at all.
func (g *Grouper) GroupTree(root string, mode SortMode, notice func(dir string)) ([]DirGroup, error) {
	dirs, err := g.fsmgr.Directories(root)
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}

	var groups []DirGroup
	for _, dir := range dirs {
		buckets, err := g.GroupDir(dir, mode)
		if err != nil {
			if errors.Is(err, ErrNoFiles) {
				if notice != nil {
					notice(dir)
				}
				continue
			}
			return nil, err
		}
		groups = append(groups, DirGroup{Dir: dir, Buckets: buckets})
	}

	if len(groups) == 0 {
		return nil, fmt.Errorf("%w in %s or its subdirectories", ErrNoFiles, root)
	}
	return groups, nil
}
