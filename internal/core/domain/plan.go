package domain

import "slices"

// AmbiguousGroup records a duplicate group whose occurrences cannot be
// strictly ordered by release rank: two or more of them share the maximum
// rank. Nothing in such a group is ever deleted.
type AmbiguousGroup struct {
	Key      ResourceKey
	Rank     int
	Archives []string
}

// Plan is the output of retention resolution: the occurrences to delete,
// grouped by archive path, plus the ambiguous groups that were skipped.
type Plan struct {
	// Deletions maps an archive path to the occurrences to remove from it.
	Deletions map[string][]Occurrence
	// Ambiguous lists the groups left untouched because of a rank tie.
	Ambiguous []AmbiguousGroup
}

// NewPlan returns an empty plan.
func NewPlan() *Plan {
	return &Plan{Deletions: make(map[string][]Occurrence)}
}

// AddDeletion marks one occurrence for removal.
func (p *Plan) AddDeletion(o Occurrence) {
	p.Deletions[o.Archive.Path] = append(p.Deletions[o.Archive.Path], o)
}

// DeletionCount returns the total number of occurrences marked for removal.
func (p *Plan) DeletionCount() int {
	n := 0
	for _, occs := range p.Deletions {
		n += len(occs)
	}
	return n
}

// ArchivePaths returns the affected archive paths in sorted order.
func (p *Plan) ArchivePaths() []string {
	paths := make([]string, 0, len(p.Deletions))
	for path := range p.Deletions {
		paths = append(paths, path)
	}
	slices.Sort(paths)
	return paths
}

// Empty reports whether the plan deletes nothing.
func (p *Plan) Empty() bool {
	return len(p.Deletions) == 0
}
