package dbpf

import (
	"bufio"
	"encoding/binary"
	"os"

	"go.trai.ch/packsweep/internal/core/domain"
	"go.trai.ch/packsweep/internal/core/ports"
	"go.trai.ch/zerr"
)

// Write streams the given entries of src into a new package at path. Entry
// bodies are copied verbatim, the compression directory is regenerated from
// the retained compressed entries, and all header fields except the index
// and hole descriptors are preserved from the source container.
func (c *Codec) Write(path string, src ports.Archive, keep []domain.Entry) error {
	hdr, err := readSourceHeader(src.Path())
	if err != nil {
		return zerr.With(zerr.Wrap(domain.ErrArchiveWrite, err.Error()), "path", path)
	}

	f, err := os.Create(path) //nolint:gosec // Path is the rewriter's temp file
	if err != nil {
		return zerr.With(zerr.Wrap(domain.ErrArchiveWrite, err.Error()), "path", path)
	}

	if err := writeArchive(f, hdr, src, keep); err != nil {
		_ = f.Close()
		return zerr.With(zerr.Wrap(domain.ErrArchiveWrite, err.Error()), "path", path)
	}

	if err := f.Close(); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrArchiveWrite, err.Error()), "path", path)
	}
	return nil
}

func readSourceHeader(path string) (header, error) {
	f, err := os.Open(path) //nolint:gosec // Same file the rewriter holds open
	if err != nil {
		return header{}, zerr.Wrap(err, "failed to re-read source header")
	}
	defer f.Close() //nolint:errcheck // Read-only handle

	buf := make([]byte, headerSize)
	if _, err := f.ReadAt(buf, 0); err != nil {
		return header{}, zerr.Wrap(err, "failed to re-read source header")
	}
	return parseHeader(buf)
}

// placed is a keep entry with its location in the rewritten file.
type placed struct {
	entry  domain.Entry
	offset uint32
	size   uint32
}

func writeArchive(f *os.File, hdr header, src ports.Archive, keep []domain.Entry) error {
	w := bufio.NewWriter(f)

	// Header placeholder; the index descriptor is patched at the end.
	if _, err := w.Write(hdr.encode()); err != nil {
		return err
	}
	pos := uint32(headerSize)

	records := make([]placed, 0, len(keep)+1)
	var compressed []placed

	for _, e := range keep {
		raw, err := src.ReadRaw(e)
		if err != nil {
			return err
		}
		if _, err := w.Write(raw); err != nil {
			return err
		}

		p := placed{entry: e, offset: pos, size: uint32(len(raw))}
		records = append(records, p)
		if e.Compressed {
			compressed = append(compressed, p)
		}
		pos += p.size
	}

	// Regenerate the compression directory for the retained compressed
	// entries, keeping their original uncompressed sizes.
	if len(compressed) > 0 {
		clstBody := encodeCLST(hdr, compressed)
		if _, err := w.Write(clstBody); err != nil {
			return err
		}
		records = append(records, placed{
			entry:  domain.Entry{Key: clstKey},
			offset: pos,
			size:   uint32(len(clstBody)),
		})
		pos += uint32(len(clstBody))
	}

	indexStart := pos
	for _, p := range records {
		if err := writeIndexRecord(w, hdr, p); err != nil {
			return err
		}
		pos += uint32(hdr.indexRecordSize())
	}

	if err := w.Flush(); err != nil {
		return err
	}

	// Patch entry count, index location and size; zero the hole index.
	hdr.IndexEntryCount = uint32(len(records))
	hdr.IndexLocation = indexStart
	hdr.IndexSize = pos - indexStart
	hdr.HoleIndexEntryCount = 0
	hdr.HoleIndexLocation = 0
	hdr.HoleIndexSize = 0

	if _, err := f.WriteAt(hdr.encode(), 0); err != nil {
		return err
	}
	return f.Sync()
}

func encodeCLST(hdr header, compressed []placed) []byte {
	body := make([]byte, 0, len(compressed)*hdr.clstRecordSize())
	scratch := make([]byte, 4)

	put := func(v uint32) {
		binary.LittleEndian.PutUint32(scratch, v)
		body = append(body, scratch...)
	}

	for _, p := range compressed {
		put(p.entry.Key.TypeID)
		put(p.entry.Key.GroupID)
		put(p.entry.Key.InstanceID)
		if hdr.hasResourceID() {
			put(p.entry.Key.ResourceID)
		}
		put(p.entry.UncompressedSize)
	}
	return body
}

func writeIndexRecord(w *bufio.Writer, hdr header, p placed) error {
	fields := []uint32{p.entry.Key.TypeID, p.entry.Key.GroupID, p.entry.Key.InstanceID}
	if hdr.hasResourceID() {
		fields = append(fields, p.entry.Key.ResourceID)
	}
	fields = append(fields, p.offset, p.size)

	scratch := make([]byte, 4)
	for _, v := range fields {
		binary.LittleEndian.PutUint32(scratch, v)
		if _, err := w.Write(scratch); err != nil {
			return err
		}
	}
	return nil
}
