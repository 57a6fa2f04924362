package prune

import (
	"fmt"
	"io"
)

// timeLayout is the timestamp format used in report lines.
const timeLayout = "2006-01-02 15:04:05"

// Reporter writes the human-readable run output. Quiet mode suppresses
// everything on the normal stream; the error stream is never suppressed.
type Reporter struct {
	out   io.Writer
	errw  io.Writer
	quiet bool
}

// NewReporter creates a Reporter over the given streams.
func NewReporter(out, errw io.Writer, quiet bool) *Reporter {
	return &Reporter{out: out, errw: errw, quiet: quiet}
}

// Printf writes normal output unless quiet mode is on.
func (r *Reporter) Printf(format string, args ...any) {
	if r.quiet {
		return
	}
	fmt.Fprintf(r.out, format, args...)
}

// Errorf writes to the error stream regardless of quiet mode.
func (r *Reporter) Errorf(format string, args ...any) {
	fmt.Fprintf(r.errw, format, args...)
}

// RenderDir writes the grouped keep/delete listing for one directory plan.
func (r *Reporter) RenderDir(plan DirPlan, mode SortMode, keep int) {
	r.Printf("\nOpening %s, sorting by %s and keeping %d files\n", plan.Dir, mode, keep)
	for _, b := range plan.Buckets {
		r.Printf("\nYounger than %d days but older than %d days:\n", b.ID, b.ID/2)
		if len(b.Delete) == 0 {
			r.Printf("No files to delete in this group.\n")
		}
		for _, f := range b.Keep {
			r.Printf("%s | %s\n", f.Path, f.Timestamp.Local().Format(timeLayout))
		}
		for _, f := range b.Delete {
			r.Printf("%s | %s <-- to be deleted\n", f.Path, f.Timestamp.Local().Format(timeLayout))
		}
	}
}
