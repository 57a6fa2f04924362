package prune

import (
	"errors"
	"fmt"
)

// Options are the per-run settings after flag and config merging.
type Options struct {
	Path      string
	Mode      SortMode
	Keep      int
	Force     bool
	PrintOnly bool
	Recursive bool
	Quiet     bool
}

// Validate rejects incompatible mode combinations. It performs no
// filesystem access, so configuration errors surface before anything is
// touched.
func (o Options) Validate() error {
	if o.Quiet && o.PrintOnly {
		return errors.New("--quiet and --print-only cannot be used together")
	}
	if o.PrintOnly && o.Force {
		return errors.New("--print-only and --force cannot be used together")
	}
	if o.Keep < 0 {
		return errors.New("--keep must be non-negative")
	}
	return nil
}

// Service coordinates grouping, selection, confirmation and deletion.
// All work is synchronous and single-threaded: one pass over the target
// tree, with the confirmation prompt as the only blocking suspension point.
type Service struct {
	fsmgr    FilesystemManager
	clock    Clock
	idgen    IDGenerator
	logger   Logger
	history  HistoryStore
	prompter Prompter
}

// NewService creates a Service with the provided dependencies.
func NewService(fsmgr FilesystemManager, clock Clock, idgen IDGenerator, logger Logger, history HistoryStore, prompter Prompter) *Service {
	return &Service{
		fsmgr:    fsmgr,
		clock:    clock,
		idgen:    idgen,
		logger:   logger,
		history:  history,
		prompter: prompter,
	}
}

// Plan resolves the target, groups its files into buckets and computes the
// keep/delete partition, rendering the listing as it goes. It never
// modifies the filesystem.
func (s *Service) Plan(opts Options, r *Reporter) (*Plan, error) {
	target, err := s.fsmgr.Resolve(opts.Path)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}
	if !target.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, target.String())
	}

	grouper := NewGrouper(s.fsmgr, s.clock, s.logger)

	var groups []DirGroup
	if opts.Recursive {
		groups, err = grouper.GroupTree(target.String(), opts.Mode, func(dir string) {
			r.Printf("Directory %s is empty. Skipping.\n", dir)
		})
	} else {
		var buckets BucketMap
		buckets, err = grouper.GroupDir(target.String(), opts.Mode)
		if err == nil {
			groups = []DirGroup{{Dir: target.String(), Buckets: buckets}}
		}
	}
	if err != nil {
		return nil, err
	}

	plan := &Plan{}
	for _, g := range groups {
		dp := DirPlan{Dir: g.Dir, Buckets: Partition(g.Buckets, opts.Keep)}
		plan.Dirs = append(plan.Dirs, dp)
		r.RenderDir(dp, opts.Mode, opts.Keep)
	}
	return plan, nil
}

// Run drives a whole prune: validate, plan, confirm, then delete or stop.
// States: Validate -> Group&Select -> ConfirmOrSkip -> Execute|DryRun.
func (s *Service) Run(opts Options, r *Reporter) error {
	if err := opts.Validate(); err != nil {
		return err
	}

	plan, err := s.Plan(opts, r)
	if err != nil {
		return err
	}

	if opts.PrintOnly {
		r.Printf("\nPrint-only enabled, no files were deleted.\n")
		return nil
	}

	toDelete := plan.DeleteList()
	if len(toDelete) == 0 {
		r.Printf("No files to delete.\n")
		return nil
	}

	// Quiet mode cannot prompt, so it confirms implicitly, like force.
	if !opts.Force && !opts.Quiet {
		if plan.KeepCount() == 0 {
			r.Printf("WARNING! No files will be kept, you want ALL files to be deleted.\n")
		}
		ok, err := s.prompter.Confirm("\nDo you want to proceed with deletion? There is no undo. (yes/no)")
		if err != nil {
			return fmt.Errorf("reading confirmation: %w", err)
		}
		if !ok {
			r.Printf("Operation cancelled.\n")
			return nil
		}
	}

	return s.execute(opts, toDelete, plan.KeepCount(), r)
}

// execute removes every file in the delete list, recording each attempt in
// the history store. Individual failures are reported on the error stream
// and never abort the batch.
func (s *Service) execute(opts Options, files []FileRecord, kept int, r *Reporter) error {
	run := &Run{
		ID:        s.idgen.New(),
		Path:      opts.Path,
		SortMode:  opts.Mode.String(),
		KeepCount: opts.Keep,
		Recursive: opts.Recursive,
		StartedAt: s.clock.Now(),
		Status:    "running",
		Kept:      kept,
	}
	if err := s.history.CreateRun(run); err != nil {
		return fmt.Errorf("recording run: %w", err)
	}
	s.logger.Info("starting deletion", "run", run.ID, "files", len(files))

	r.Printf("\nDeleting files...\n")
	var deleted, failed int
	for _, f := range files {
		d := &Deletion{
			RunID:     run.ID,
			Path:      f.Path,
			FileTime:  f.Timestamp,
			DeletedAt: s.clock.Now(),
		}
		if err := s.fsmgr.Remove(f.Path); err != nil {
			failed++
			d.Status = "failed"
			d.Error = err.Error()
			r.Errorf("Error during deletion %s: %v\n", f.Path, err)
			s.logger.Error("deletion failed", "path", f.Path, "error", err)
		} else {
			deleted++
			d.Status = "deleted"
			r.Printf("File deleted: %s\n", f.Path)
		}
		if herr := s.history.RecordDeletion(d); herr != nil {
			s.logger.Warn("recording deletion failed", "path", f.Path, "error", herr)
		}
	}

	status := "success"
	if failed > 0 {
		status = "partial"
	}
	if err := s.history.FinishRun(run.ID, status, kept, deleted, failed, s.clock.Now()); err != nil {
		s.logger.Warn("finishing run record failed", "run", run.ID, "error", err)
	}
	s.logger.Info("deletion finished", "run", run.ID, "deleted", deleted, "failed", failed)
	return nil
}
