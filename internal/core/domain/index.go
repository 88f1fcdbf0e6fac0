package domain

import "slices"

// Index is the cross-archive resource index: every key mapped to the
// archive slots it occupies, across the whole installation.
type Index struct {
	// Occurrences maps each resource key to its sightings.
	Occurrences map[ResourceKey][]Occurrence
	// Archives is the number of archives indexed.
	Archives int
	// Entries is the total number of index entries seen.
	Entries int
}

// NewIndex returns an empty index.
func NewIndex() *Index {
	return &Index{Occurrences: make(map[ResourceKey][]Occurrence)}
}

// Add records one occurrence.
func (ix *Index) Add(o Occurrence) {
	ix.Occurrences[o.Key] = append(ix.Occurrences[o.Key], o)
	ix.Entries++
}

// Canonicalize sorts every key's occurrences by release rank, then archive
// path, then slot. Resolution depends on this order being deterministic
// regardless of indexing concurrency.
func (ix *Index) Canonicalize() {
	for key := range ix.Occurrences {
		slices.SortFunc(ix.Occurrences[key], func(a, b Occurrence) int {
			if a.Rank() != b.Rank() {
				return a.Rank() - b.Rank()
			}
			if a.Archive.Path != b.Archive.Path {
				if a.Archive.Path < b.Archive.Path {
					return -1
				}
				return 1
			}
			return a.Entry.Slot - b.Entry.Slot
		})
	}
}
