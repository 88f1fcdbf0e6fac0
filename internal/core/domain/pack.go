package domain

import (
	"slices"
	"time"
)

// Pack identifies one content pack of the installation: the base game, an
// expansion pack or a stuff pack. Rank is the pack's position in release
// chronology, assigned by the pack table after sorting by release date.
// Ranks are dense, start at 0 and never tie between distinct packs.
type Pack struct {
	Name        string
	Code        string
	ReleaseDate time.Time
	Path        string
	Rank        int
}

// PackTable is the ordered set of packs for a run, sorted by release rank
// ascending. It is built once by the table loader and read-only afterwards.
type PackTable struct {
	packs  []Pack
	byCode map[string]Pack
}

// NewPackTable builds a table from packs that are already validated and
// sorted by release date. Ranks are assigned here.
func NewPackTable(packs []Pack) PackTable {
	sorted := slices.Clone(packs)
	slices.SortFunc(sorted, func(a, b Pack) int {
		return a.ReleaseDate.Compare(b.ReleaseDate)
	})

	byCode := make(map[string]Pack, len(sorted))
	for i := range sorted {
		sorted[i].Rank = i
		byCode[sorted[i].Code] = sorted[i]
	}

	return PackTable{packs: sorted, byCode: byCode}
}

// Packs returns the packs in release order.
func (t PackTable) Packs() []Pack {
	return t.packs
}

// Lookup returns the pack with the given short code.
func (t PackTable) Lookup(code string) (Pack, bool) {
	p, ok := t.byCode[code]
	return p, ok
}

// Len returns the number of packs in the table.
func (t PackTable) Len() int {
	return len(t.packs)
}
