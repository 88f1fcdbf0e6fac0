package domain

import "slices"

// ArchiveStatus is the outcome of one archive's rewrite.
type ArchiveStatus string

const (
	// StatusRewritten indicates the archive was rewritten successfully.
	StatusRewritten ArchiveStatus = "rewritten"
	// StatusFailed indicates the rewrite failed and the original archive
	// was left untouched.
	StatusFailed ArchiveStatus = "failed"
	// StatusPlanned indicates a dry run: deletions were resolved for the
	// archive but nothing was written.
	StatusPlanned ArchiveStatus = "planned"
)

// ArchiveOutcome reports the result of rewriting a single archive.
type ArchiveOutcome struct {
	Path           string
	Rel            string
	Pack           string
	Status         ArchiveStatus
	EntriesRemoved int
	SizeBefore     int64
	SizeAfter      int64
	Err            error
}

// BytesReclaimed returns the size difference achieved by the rewrite.
func (o ArchiveOutcome) BytesReclaimed() int64 {
	return o.SizeBefore - o.SizeAfter
}

// RunReport aggregates the counters of one run. It is assembled as the run
// progresses and read-only once the run completes.
type RunReport struct {
	ArchivesScanned  int
	EntriesIndexed   int
	DuplicateGroups  int
	ResourcesRemoved int
	BytesReclaimed   int64
	DryRun           bool

	Outcomes  []ArchiveOutcome
	Ambiguous []AmbiguousGroup
}

// AddOutcome records one archive's result and folds its counters into the
// run totals.
func (r *RunReport) AddOutcome(o ArchiveOutcome) {
	r.Outcomes = append(r.Outcomes, o)
	if o.Status == StatusFailed {
		return
	}
	r.ResourcesRemoved += o.EntriesRemoved
	r.BytesReclaimed += o.BytesReclaimed()
}

// Failed reports whether any archive rewrite failed.
func (r *RunReport) Failed() bool {
	for _, o := range r.Outcomes {
		if o.Status == StatusFailed {
			return true
		}
	}
	return false
}

// Sort orders outcomes by archive path and ambiguous groups by key so the
// report is deterministic regardless of rewrite interleaving.
func (r *RunReport) Sort() {
	slices.SortFunc(r.Outcomes, func(a, b ArchiveOutcome) int {
		switch {
		case a.Path < b.Path:
			return -1
		case a.Path > b.Path:
			return 1
		default:
			return 0
		}
	})
	slices.SortFunc(r.Ambiguous, func(a, b AmbiguousGroup) int {
		return a.Key.Compare(b.Key)
	})
}
