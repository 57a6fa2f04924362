package prune

import "time"

// Run is one executed prune invocation as recorded in the history store.
// Dry runs are never recorded.
type Run struct {
	ID         string
	Path       string
	SortMode   string
	KeepCount  int
	Recursive  bool
	StartedAt  time.Time
	FinishedAt time.Time // zero until the run finishes
	Status     string    // "running", "success" or "partial"
	Kept       int
	Deleted    int
	Failed     int
}

// Deletion is the outcome of one removal attempt within a run.
type Deletion struct {
	RunID     string
	Path      string
	FileTime  time.Time // the timestamp that drove selection
	DeletedAt time.Time
	Status    string // "deleted" or "failed"
	Error     string
}

// HistoryStore records executed prune runs and their per-file outcomes.
type HistoryStore interface {
	CreateRun(run *Run) error
	RecordDeletion(d *Deletion) error
	FinishRun(id, status string, kept, deleted, failed int, finishedAt time.Time) error
	ListRuns(limit int) ([]*Run, error)
	ListDeletions(runID string) ([]*Deletion, error)
	Close() error
}

// NopHistory discards everything. Wired when history is disabled in config.
type NopHistory struct{}

func (NopHistory) CreateRun(*Run) error           { return nil }
func (NopHistory) RecordDeletion(*Deletion) error { return nil }
func (NopHistory) FinishRun(string, string, int, int, int, time.Time) error {
	return nil
}
func (NopHistory) ListRuns(int) ([]*Run, error)              { return nil, nil }
func (NopHistory) ListDeletions(string) ([]*Deletion, error) { return nil, nil }
func (NopHistory) Close() error                              { return nil }
