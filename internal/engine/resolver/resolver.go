// Package resolver applies the retention rule to a cross-archive index and
// produces the rewrite plan.
package resolver

import (
	"go.trai.ch/packsweep/internal/core/domain"
)

// Result is the outcome of resolution: the plan plus the counters the run
// report wants.
type Result struct {
	Plan *domain.Plan
	// DuplicateGroups is the number of keys that occur in more than one
	// archive.
	DuplicateGroups int
}

// Resolve walks every duplicate group and decides what to delete.
//
// The rule: keep the occurrence in the latest-released pack, delete the
// rest. A group whose occurrences all live in one archive is left alone.
// A group with two or more occurrences tied at the maximum rank cannot be
// ordered and is skipped entirely, recorded as ambiguous.
//
// The index must be canonicalized; resolution relies on occurrences being
// sorted by rank ascending.
func Resolve(index *domain.Index) Result {
	plan := domain.NewPlan()
	groups := 0

	for key, occs := range index.Occurrences {
		if len(occs) < 2 {
			continue
		}
		if !spansMultipleArchives(occs) {
			// Intra-archive duplicates are the archive's own business.
			continue
		}
		groups++

		maxRank := occs[len(occs)-1].Rank()
		if occs[len(occs)-2].Rank() == maxRank {
			plan.Ambiguous = append(plan.Ambiguous, domain.AmbiguousGroup{
				Key:      key,
				Rank:     maxRank,
				Archives: archivePaths(occs),
			})
			continue
		}

		// Unique winner: delete everything below it.
		for _, o := range occs[:len(occs)-1] {
			plan.AddDeletion(o)
		}
	}

	return Result{Plan: plan, DuplicateGroups: groups}
}

// spansMultipleArchives reports whether the occurrences cover more than one
// archive file.
func spansMultipleArchives(occs []domain.Occurrence) bool {
	first := occs[0].Archive.Path
	for _, o := range occs[1:] {
		if o.Archive.Path != first {
			return true
		}
	}
	return false
}

// archivePaths returns the display paths of the archives holding the
// occurrences, in canonical order.
func archivePaths(occs []domain.Occurrence) []string {
	paths := make([]string, 0, len(occs))
	seen := make(map[string]bool, len(occs))
	for _, o := range occs {
		if seen[o.Archive.Rel] {
			continue
		}
		seen[o.Archive.Rel] = true
		paths = append(paths, o.Archive.Rel)
	}
	return paths
}
