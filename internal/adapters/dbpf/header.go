// Package dbpf implements the archive codec for DBPF package containers.
package dbpf

import (
	"encoding/binary"

	"go.trai.ch/packsweep/internal/core/domain"
	"go.trai.ch/zerr"
)

const (
	headerSize = 96
	magic      = "DBPF"

	// The compression directory is itself an index entry with a fixed key.
	clstTypeID     = 0xE86B1EEF
	clstGroupID    = 0xE86B1EEF
	clstInstanceID = 0x286B1F03

	// resourceMinorVersion is the index minor version that carries a fourth
	// key field per record.
	resourceMinorVersion = 2
)

// qfsMagic sits at offset 4 of every QFS-compressed entry body.
var qfsMagic = []byte{0x10, 0xFB}

// clstKey is the fixed resource key of the compression directory entry.
var clstKey = domain.ResourceKey{
	TypeID:     clstTypeID,
	GroupID:    clstGroupID,
	InstanceID: clstInstanceID,
}

// header mirrors the 96-byte DBPF container header: the magic followed by
// fifteen little-endian uint32 fields and 32 reserved bytes.
type header struct {
	MajorVersion        uint32
	MinorVersion        uint32
	MajorUserVersion    uint32
	MinorUserVersion    uint32
	Flags               uint32
	CreatedDate         uint32
	ModifiedDate        uint32
	IndexMajorVersion   uint32
	IndexEntryCount     uint32
	IndexLocation       uint32
	IndexSize           uint32
	HoleIndexEntryCount uint32
	HoleIndexLocation   uint32
	HoleIndexSize       uint32
	IndexMinorVersion   uint32
	Reserved            [32]byte
}

// hasResourceID reports whether index records carry the fourth key field.
func (h header) hasResourceID() bool {
	return h.IndexMinorVersion >= resourceMinorVersion
}

// indexRecordSize returns the byte size of one index record: three or four
// key fields plus location and size.
func (h header) indexRecordSize() int {
	if h.hasResourceID() {
		return 24
	}
	return 20
}

// clstRecordSize returns the byte size of one compression directory row:
// the key fields plus the uncompressed size.
func (h header) clstRecordSize() int {
	if h.hasResourceID() {
		return 20
	}
	return 16
}

func parseHeader(b []byte) (header, error) {
	if len(b) < headerSize {
		return header{}, zerr.New("file shorter than container header")
	}
	if string(b[:4]) != magic {
		return header{}, zerr.New("missing DBPF magic")
	}

	u32 := func(i int) uint32 {
		return binary.LittleEndian.Uint32(b[4+i*4:])
	}

	h := header{
		MajorVersion:        u32(0),
		MinorVersion:        u32(1),
		MajorUserVersion:    u32(2),
		MinorUserVersion:    u32(3),
		Flags:               u32(4),
		CreatedDate:         u32(5),
		ModifiedDate:        u32(6),
		IndexMajorVersion:   u32(7),
		IndexEntryCount:     u32(8),
		IndexLocation:       u32(9),
		IndexSize:           u32(10),
		HoleIndexEntryCount: u32(11),
		HoleIndexLocation:   u32(12),
		HoleIndexSize:       u32(13),
		IndexMinorVersion:   u32(14),
	}
	copy(h.Reserved[:], b[64:headerSize])

	return h, nil
}

// encode serializes the header back into its on-disk layout.
func (h header) encode() []byte {
	b := make([]byte, headerSize)
	copy(b, magic)

	fields := []uint32{
		h.MajorVersion, h.MinorVersion,
		h.MajorUserVersion, h.MinorUserVersion,
		h.Flags, h.CreatedDate, h.ModifiedDate,
		h.IndexMajorVersion, h.IndexEntryCount, h.IndexLocation, h.IndexSize,
		h.HoleIndexEntryCount, h.HoleIndexLocation, h.HoleIndexSize,
		h.IndexMinorVersion,
	}
	for i, f := range fields {
		binary.LittleEndian.PutUint32(b[4+i*4:], f)
	}
	copy(b[64:], h.Reserved[:])

	return b
}
