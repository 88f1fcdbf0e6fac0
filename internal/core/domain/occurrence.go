package domain

// Entry describes one resource slot of an archive's index. Slot is the
// position among the resource entries, with the compression directory
// excluded; Offset and Size locate the stored bytes.
// Compressed and UncompressedSize mirror the archive's compression
// directory so that a rewrite can regenerate it without inflating content.
type Entry struct {
	Key              ResourceKey
	Slot             int
	Offset           uint32
	Size             uint32
	Compressed       bool
	UncompressedSize uint32
}

// ArchiveRef refers to exactly one on-disk package file, tagged with the
// pack that owns it.
type ArchiveRef struct {
	// Path is the absolute path of the package file.
	Path string
	// Rel is the path relative to the installation root, for display.
	Rel  string
	Pack Pack
}

// Occurrence is one sighting of a resource key inside one archive. The
// entry is the archive-internal locator; the engine never interprets it
// beyond handing it back to the rewriter, which uses it for the staleness
// check before deleting.
type Occurrence struct {
	Key     ResourceKey
	Archive ArchiveRef
	Entry   Entry
}

// Rank returns the release rank of the pack owning this occurrence.
func (o Occurrence) Rank() int {
	return o.Archive.Pack.Rank
}
