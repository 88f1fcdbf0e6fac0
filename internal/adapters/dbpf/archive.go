package dbpf

import (
	"bytes"
	"encoding/binary"
	"os"

	"go.trai.ch/packsweep/internal/core/domain"
	"go.trai.ch/packsweep/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ArchiveCodec = (*Codec)(nil)

// Codec implements ports.ArchiveCodec for DBPF package files.
type Codec struct{}

// NewCodec creates a new Codec.
func NewCodec() *Codec {
	return &Codec{}
}

// Archive is an open DBPF package. It keeps the file handle for raw entry
// reads; index metadata is parsed up front and content is never inflated.
type Archive struct {
	f       *os.File
	path    string
	size    int64
	hdr     header
	entries []domain.Entry
}

var _ ports.Archive = (*Archive)(nil)

// Open parses the header and index of the package at path. Only index
// metadata is read; entry contents stay on disk until ReadRaw.
func (c *Codec) Open(path string) (ports.Archive, error) {
	f, err := os.Open(path) //nolint:gosec // Path comes from the installation scan
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrArchiveOpen, err.Error()), "path", path)
	}

	a, err := newArchive(f, path)
	if err != nil {
		_ = f.Close()
		return nil, zerr.With(zerr.Wrap(domain.ErrArchiveParse, err.Error()), "path", path)
	}

	return a, nil
}

func newArchive(f *os.File, path string) (*Archive, error) {
	info, err := f.Stat()
	if err != nil {
		return nil, zerr.Wrap(err, "failed to stat archive")
	}

	hdrBuf := make([]byte, headerSize)
	if _, err := f.ReadAt(hdrBuf, 0); err != nil {
		return nil, zerr.Wrap(err, "failed to read container header")
	}

	hdr, err := parseHeader(hdrBuf)
	if err != nil {
		return nil, err
	}

	a := &Archive{f: f, path: path, size: info.Size(), hdr: hdr}
	if err := a.readIndex(); err != nil {
		return nil, err
	}

	return a, nil
}

// Path returns the on-disk path the archive was opened from.
func (a *Archive) Path() string {
	return a.path
}

// Entries returns the archive's index in slot order, without the
// compression directory entry.
func (a *Archive) Entries() []domain.Entry {
	return a.entries
}

// ReadRaw returns an entry's stored bytes exactly as on disk.
func (a *Archive) ReadRaw(entry domain.Entry) ([]byte, error) {
	if int64(entry.Offset)+int64(entry.Size) > a.size {
		return nil, zerr.With(zerr.With(
			zerr.Wrap(domain.ErrArchiveRead, "entry extends past end of file"),
			"path", a.path), "key", entry.Key.String())
	}

	buf := make([]byte, entry.Size)
	if _, err := a.f.ReadAt(buf, int64(entry.Offset)); err != nil {
		return nil, zerr.With(zerr.With(
			zerr.Wrap(domain.ErrArchiveRead, err.Error()),
			"path", a.path), "key", entry.Key.String())
	}
	return buf, nil
}

// Close releases the underlying file handle.
func (a *Archive) Close() error {
	return a.f.Close()
}

func (a *Archive) readIndex() error {
	count := int(a.hdr.IndexEntryCount)
	recordSize := a.hdr.indexRecordSize()
	indexEnd := int64(a.hdr.IndexLocation) + int64(count)*int64(recordSize)

	if indexEnd > a.size {
		return zerr.With(zerr.With(zerr.New("index extends past end of file"),
			"entries", count), "index_location", int(a.hdr.IndexLocation))
	}

	raw := make([]byte, count*recordSize)
	if count > 0 {
		if _, err := a.f.ReadAt(raw, int64(a.hdr.IndexLocation)); err != nil {
			return zerr.Wrap(err, "failed to read index")
		}
	}

	var clst *domain.Entry
	entries := make([]domain.Entry, 0, count)

	for i := 0; i < count; i++ {
		rec := raw[i*recordSize:]
		var e domain.Entry
		e.Key.TypeID = binary.LittleEndian.Uint32(rec)
		e.Key.GroupID = binary.LittleEndian.Uint32(rec[4:])
		e.Key.InstanceID = binary.LittleEndian.Uint32(rec[8:])

		next := 12
		if a.hdr.hasResourceID() {
			e.Key.ResourceID = binary.LittleEndian.Uint32(rec[12:])
			next = 16
		}
		e.Offset = binary.LittleEndian.Uint32(rec[next:])
		e.Size = binary.LittleEndian.Uint32(rec[next+4:])

		if int64(e.Offset)+int64(e.Size) > a.size {
			return zerr.With(zerr.With(zerr.New("entry extends past end of file"),
				"key", e.Key.String()), "record", i)
		}

		if e.Key.TypeID == clstTypeID && clst == nil {
			c := e
			clst = &c
			continue
		}

		// Slots number the resource entries only; the compression
		// directory can sit anywhere in the on-disk index.
		e.Slot = len(entries)
		entries = append(entries, e)
	}

	a.entries = entries
	return a.markCompressed(clst)
}

// markCompressed reads the compression directory, if present, and flags the
// entries it lists. An entry counts as compressed only when it both has a
// directory row and carries the QFS magic at offset 4 of its body.
func (a *Archive) markCompressed(clst *domain.Entry) error {
	if clst == nil {
		return nil
	}

	raw, err := a.ReadRaw(*clst)
	if err != nil {
		return err
	}

	rowSize := a.hdr.clstRecordSize()
	sizes := make(map[domain.ResourceKey]uint32, len(raw)/rowSize)

	for off := 0; off+rowSize <= len(raw); off += rowSize {
		row := raw[off:]
		var key domain.ResourceKey
		key.TypeID = binary.LittleEndian.Uint32(row)
		key.GroupID = binary.LittleEndian.Uint32(row[4:])
		key.InstanceID = binary.LittleEndian.Uint32(row[8:])

		next := 12
		if a.hdr.hasResourceID() {
			key.ResourceID = binary.LittleEndian.Uint32(row[12:])
			next = 16
		}
		sizes[key] = binary.LittleEndian.Uint32(row[next:])
	}

	probe := make([]byte, 2)
	for i := range a.entries {
		e := &a.entries[i]
		uncompressed, listed := sizes[e.Key]
		if !listed || e.Size < 6 {
			continue
		}

		if _, err := a.f.ReadAt(probe, int64(e.Offset)+4); err != nil {
			return zerr.With(zerr.Wrap(domain.ErrArchiveRead, err.Error()),
				"key", e.Key.String())
		}
		if bytes.Equal(probe, qfsMagic) {
			e.Compressed = true
			e.UncompressedSize = uncompressed
		}
	}

	return nil
}
