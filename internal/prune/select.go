package prune

import (
	"slices"
	"sort"
)

// BucketSelection is the keep/delete split of one bucket.
type BucketSelection struct {
	ID     uint64
	Keep   []FileRecord
	Delete []FileRecord
}

// DirPlan is the selection for one directory, buckets ascending by id.
type DirPlan struct {
	Dir     string
	Buckets []BucketSelection
}

// Plan is the full keep/delete decision for a run, directories in walk
// order.
type Plan struct {
	Dirs []DirPlan
}

// Partition splits each bucket independently: files are stable-sorted
// ascending by timestamp and split at min(keep, bucket size). The head of
// the sorted bucket is retained, the remainder is slated for deletion.
// Equal timestamps keep their scan order, so ties split deterministically.
func Partition(buckets BucketMap, keep int) []BucketSelection {
	out := make([]BucketSelection, 0, len(buckets))
	for _, id := range buckets.IDs() {
		files := slices.Clone(buckets[id])
		sort.SliceStable(files, func(i, j int) bool {
			return files[i].Timestamp.Before(files[j].Timestamp)
		})

		split := keep
		if split > len(files) {
			split = len(files)
		}
		out = append(out, BucketSelection{
			ID:     id,
			Keep:   files[:split],
			Delete: files[split:],
		})
	}
	return out
}

// KeepCount returns the total number of retained files across the plan.
func (p *Plan) KeepCount() int {
	var n int
	for _, d := range p.Dirs {
		for _, b := range d.Buckets {
			n += len(b.Keep)
		}
	}
	return n
}

// DeleteList returns every file slated for deletion, directories in walk
// order and buckets ascending within each directory.
func (p *Plan) DeleteList() []FileRecord {
	var files []FileRecord
	for _, d := range p.Dirs {
		for _, b := range d.Buckets {
			files = append(files, b.Delete...)
		}
	}
	return files
}
