package ports

import "go.trai.ch/packsweep/internal/core/domain"

// Archive is an open package file. Entries exposes index metadata only;
// no resource bytes are read until ReadRaw is called.
//
//go:generate mockgen -source=archive.go -destination=mocks/mock_archive.go -package=mocks
type Archive interface {
	// Path returns the on-disk path the archive was opened from.
	Path() string

	// Entries returns the archive's index in slot order. The compression
	// directory entry itself is not listed; it is container metadata and is
	// regenerated on write.
	Entries() []domain.Entry

	// ReadRaw returns an entry's stored bytes exactly as on disk, without
	// decompressing.
	ReadRaw(entry domain.Entry) ([]byte, error)

	// Close releases the underlying file handle.
	Close() error
}

// ArchiveCodec is the container codec boundary: it opens package files and
// writes new ones from a retained entry list.
type ArchiveCodec interface {
	// Open parses the archive at path and returns its index metadata.
	Open(path string) (Archive, error)

	// Write streams the given entries of src into a new archive at path,
	// copying each entry's stored bytes verbatim and rebuilding the
	// container's index and compression directory. Header fields other than
	// the index and hole descriptors are preserved from src.
	Write(path string, src Archive, keep []domain.Entry) error
}
