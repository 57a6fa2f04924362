package prune

import (
	"math/bits"
	"slices"
	"time"
)

// FileRecord is one eligible file discovered during a scan.
type FileRecord struct {
	Path      string
	Timestamp time.Time
}

// BucketMap groups the files of one directory by retention bucket.
// Bucket ids are day thresholds: a file belongs to bucket b when b is the
// smallest power of two >= its age in whole days.
type BucketMap map[uint64][]FileRecord

// BucketFor maps an age in whole days to its retention bucket: 1 for age
// zero, otherwise the smallest power of two >= days. Boundaries fall at
// 1, 2, 4, 8, 16, ... days, keeping the bucket count logarithmic in the
// oldest file's age.
func BucketFor(days uint64) uint64 {
	if days == 0 {
		return 1
	}
	if days&(days-1) == 0 {
		return days
	}
	return 1 << bits.Len64(days)
}

// IDs returns the bucket ids in ascending order.
func (b BucketMap) IDs() []uint64 {
	ids := make([]uint64, 0, len(b))
	for id := range b {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
