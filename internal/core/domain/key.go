package domain

import "fmt"

// ResourceKey is the four-part composite identity of a resource.
// Archives with an index minor version below 2 carry no resource field;
// their entries get a ResourceID of 0.
type ResourceKey struct {
	TypeID     uint32
	GroupID    uint32
	InstanceID uint32
	ResourceID uint32
}

// String formats the key in the conventional TGIR hex notation.
func (k ResourceKey) String() string {
	return fmt.Sprintf("T:0x%08X G:0x%08X I:0x%08X R:0x%08X",
		k.TypeID, k.GroupID, k.InstanceID, k.ResourceID)
}

// Compare orders keys field-wise, type first. It exists so that
// occurrence lists and report output can be sorted deterministically.
func (k ResourceKey) Compare(other ResourceKey) int {
	if c := compareU32(k.TypeID, other.TypeID); c != 0 {
		return c
	}
	if c := compareU32(k.GroupID, other.GroupID); c != 0 {
		return c
	}
	if c := compareU32(k.InstanceID, other.InstanceID); c != 0 {
		return c
	}
	return compareU32(k.ResourceID, other.ResourceID)
}

func compareU32(a, b uint32) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
