package container

import "encoding/binary"

// headerSize is the fixed 16-byte record at offset 0 (spec.md §6):
// u16 type, u16 op_nodes_count, u8 sb_ops_count, u8 vars_count,
// 6 bytes padding, u16 regex_count, u16 reserved.
const headerSize = 16

// indexSize is the width of every offset-table entry (u16).
const indexSize = 2

// nodeSize is the width of one operation-node record.
const nodeSize = 8

// Header is the fixed-width record at offset 0 of a compiled profile.
type Header struct {
	Type         uint16
	OpNodesCount uint16
	SbOpsCount   uint8
	VarsCount    uint8
	RegexCount   uint16
	Reserved     uint16
}

func decodeHeader(data []byte) (Header, error) {
	if len(data) < headerSize {
		return Header{}, truncated("header", 0)
	}
	var h Header
	h.Type = binary.LittleEndian.Uint16(data[0:2])
	h.OpNodesCount = binary.LittleEndian.Uint16(data[2:4])
	h.SbOpsCount = data[4]
	h.VarsCount = data[5]
	// bytes 6..11 are padding.
	h.RegexCount = binary.LittleEndian.Uint16(data[12:14])
	h.Reserved = binary.LittleEndian.Uint16(data[14:16])
	return h, nil
}

// Layout holds every offset derived from the header per spec.md §3/§6.
//
// StatesCount, EntitlementsCount and NumProfiles are not encoded in the
// 16-byte header (spec.md §9 Open Question: their semantics in non-bundle
// files are underspecified in the source). This decoder treats them as
// authoritative values supplied by the caller via Options — defaulting to
// zero, which matches the single-profile-file shape the reference tool
// actually exercises (original_source sandbox_data.py's own dataclass
// defaults) — and bounds-checks every offset they contribute to regardless
// of the value supplied.
type Layout struct {
	Header

	StatesCount       int
	EntitlementsCount int
	NumProfiles       int

	RegexTableOffset    int
	VarsTableOffset     int
	StatesTableOffset   int
	EntitlementsOffset  int
	ProfilesOffset      int
	ProfilesEndOffset   int
	DispatchTableOffset int
	NodesOffset         int
	NodesSize           int
	Base                int
}

// Options supplies the fields the 16-byte header cannot carry.
type Options struct {
	StatesCount       int
	EntitlementsCount int
	NumProfiles       int
}

func computeLayout(h Header, opt Options) Layout {
	l := Layout{
		Header:            h,
		StatesCount:       opt.StatesCount,
		EntitlementsCount: opt.EntitlementsCount,
		NumProfiles:       opt.NumProfiles,
	}

	l.RegexTableOffset = headerSize
	l.VarsTableOffset = l.RegexTableOffset + int(h.RegexCount)*indexSize
	l.StatesTableOffset = l.VarsTableOffset + int(h.VarsCount)*indexSize
	l.EntitlementsOffset = l.StatesTableOffset + l.StatesCount*indexSize
	l.ProfilesOffset = l.EntitlementsOffset + l.EntitlementsCount*indexSize
	profileRecordSize := int(h.SbOpsCount)*indexSize + 4
	l.ProfilesEndOffset = l.ProfilesOffset + l.NumProfiles*profileRecordSize

	l.DispatchTableOffset = l.ProfilesEndOffset
	nodesOffset := l.DispatchTableOffset + int(h.SbOpsCount)*indexSize
	if delta := nodesOffset & 7; delta != 0 {
		nodesOffset += 8 - delta
	}
	l.NodesOffset = nodesOffset
	l.NodesSize = int(h.OpNodesCount) * nodeSize
	l.Base = l.NodesOffset + l.NodesSize

	return l
}

// boundsCheck verifies that reading n bytes starting at off stays within
// data. Every offset the layout produces must pass this before any read.
func boundsCheck(data []byte, off, n int, stage string) error {
	if off < 0 || n < 0 || off+n > len(data) {
		return oob(stage, off)
	}
	return nil
}

// pooledAddr computes base + 8*o, the indirect-pool address for offset o
// (spec.md §3: "the base address is the first byte past the operation-node
// array... indirect offsets elsewhere in the file are encoded as multiples
// of 8 relative to this base").
func pooledAddr(base int, o uint16) int {
	return base + 8*int(o)
}
