// Package dbpftest builds synthetic DBPF packages for tests. It writes the
// container layout by hand, independent of the production codec, so that
// codec tests exercise real parsing rather than a round-trip of themselves.
package dbpftest

import (
	"encoding/binary"
	"os"
	"testing"

	"go.trai.ch/packsweep/internal/core/domain"
)

const headerSize = 96

// CLST key fields of the compression directory entry.
const (
	CLSTTypeID     = 0xE86B1EEF
	CLSTGroupID    = 0xE86B1EEF
	CLSTInstanceID = 0x286B1F03
)

// Entry is one resource to place into a built package.
type Entry struct {
	Key  domain.ResourceKey
	Body []byte
	// Compressed adds a compression directory row for the entry. The body
	// must carry the QFS magic at offset 4; use QFSBody to build one.
	Compressed       bool
	UncompressedSize uint32
}

// QFSBody fabricates an entry body that passes the codec's compression
// probe: a 4-byte compressed size, the 0x10FB magic, a 3-byte big-endian
// uncompressed size and the given payload.
func QFSBody(payload []byte, uncompressedSize uint32) []byte {
	body := make([]byte, 9+len(payload))
	binary.LittleEndian.PutUint32(body, uint32(len(body)))
	body[4] = 0x10
	body[5] = 0xFB
	body[6] = byte(uncompressedSize >> 16)
	body[7] = byte(uncompressedSize >> 8)
	body[8] = byte(uncompressedSize)
	copy(body[9:], payload)
	return body
}

// Build writes a package with the given index minor version and entries to
// path.
func Build(t testing.TB, path string, minorVersion uint32, entries ...Entry) {
	t.Helper()
	if err := os.WriteFile(path, Bytes(minorVersion, entries...), 0o644); err != nil {
		t.Fatalf("write package %s: %v", path, err)
	}
}

// BuildCLSTFirst is Build with the compression directory's index record
// placed before the resource records. Shipped packages order their index
// freely, so parsers must not assume the directory sits last.
func BuildCLSTFirst(t testing.TB, path string, minorVersion uint32, entries ...Entry) {
	t.Helper()
	if err := os.WriteFile(path, BytesCLSTFirst(minorVersion, entries...), 0o644); err != nil {
		t.Fatalf("write package %s: %v", path, err)
	}
}

// Bytes renders the package as a byte slice.
func Bytes(minorVersion uint32, entries ...Entry) []byte {
	return render(minorVersion, false, entries)
}

// BytesCLSTFirst renders the package with the compression directory's
// index record first. At least one entry must be compressed, otherwise no
// directory exists and the layout is identical to Bytes.
func BytesCLSTFirst(minorVersion uint32, entries ...Entry) []byte {
	return render(minorVersion, true, entries)
}

func render(minorVersion uint32, clstFirst bool, entries []Entry) []byte {
	withResource := minorVersion >= 2

	var out []byte
	u32 := func(v uint32) {
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], v)
		out = append(out, b[:]...)
	}

	// Header placeholder, patched below.
	out = append(out, make([]byte, headerSize)...)
	copy(out, "DBPF")
	binary.LittleEndian.PutUint32(out[4:], 1)  // major version
	binary.LittleEndian.PutUint32(out[8:], 1)  // minor version
	binary.LittleEndian.PutUint32(out[32:], 7) // index major version
	binary.LittleEndian.PutUint32(out[60:], minorVersion)

	type placed struct {
		e      Entry
		offset uint32
		size   uint32
	}

	placedEntries := make([]placed, 0, len(entries)+1)
	for _, e := range entries {
		placedEntries = append(placedEntries, placed{
			e:      e,
			offset: uint32(len(out)),
			size:   uint32(len(e.Body)),
		})
		out = append(out, e.Body...)
	}

	// Compression directory for the compressed entries.
	var clstBody []byte
	cu32 := func(v uint32) {
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], v)
		clstBody = append(clstBody, b[:]...)
	}
	for _, p := range placedEntries {
		if !p.e.Compressed {
			continue
		}
		cu32(p.e.Key.TypeID)
		cu32(p.e.Key.GroupID)
		cu32(p.e.Key.InstanceID)
		if withResource {
			cu32(p.e.Key.ResourceID)
		}
		cu32(p.e.UncompressedSize)
	}
	if len(clstBody) > 0 {
		clst := placed{
			e: Entry{Key: domain.ResourceKey{
				TypeID:     CLSTTypeID,
				GroupID:    CLSTGroupID,
				InstanceID: CLSTInstanceID,
			}},
			offset: uint32(len(out)),
			size:   uint32(len(clstBody)),
		}
		out = append(out, clstBody...)
		if clstFirst {
			placedEntries = append([]placed{clst}, placedEntries...)
		} else {
			placedEntries = append(placedEntries, clst)
		}
	}

	indexStart := uint32(len(out))
	for _, p := range placedEntries {
		u32(p.e.Key.TypeID)
		u32(p.e.Key.GroupID)
		u32(p.e.Key.InstanceID)
		if withResource {
			u32(p.e.Key.ResourceID)
		}
		u32(p.offset)
		u32(p.size)
	}

	binary.LittleEndian.PutUint32(out[36:], uint32(len(placedEntries)))  // entry count
	binary.LittleEndian.PutUint32(out[40:], indexStart)                  // index location
	binary.LittleEndian.PutUint32(out[44:], uint32(len(out))-indexStart) // index size

	return out
}
