package container

import (
	"encoding/binary"
	"strconv"

	"github.com/sbplx/sbplx/diag"
	"github.com/sbplx/sbplx/sbregex"
)

// Container is the fully decoded binary profile: header-derived layout,
// the rendered regex and global-variable tables, the entitlement/policy
// offsets, the per-operation dispatch table, and the raw node-array bytes
// (handed to package node for record decoding). All fields are frozen after
// Decode returns (spec.md §3 Lifecycles): callers must not mutate them.
type Container struct {
	Layout

	// Data is the full input; Nodes is the sub-slice holding the raw
	// operation-node records (Layout.NodesSize bytes at Layout.NodesOffset).
	Data  []byte
	Nodes []byte

	// RegexList holds one rendered regex string per regex-table entry,
	// already decoded by sbregex (C4).
	RegexList []string

	// GlobalVars holds one name per vars-table entry, in table order.
	GlobalVars []string

	// Policies is the raw entitlements/policy offset table (spec.md §4.5:
	// "policies[arg_value]" resolves an inline-modifier operation reference).
	Policies []uint16

	// Dispatch is the per-operation root-node offset table: entry 0 is the
	// profile's default terminal, entry i (i>=1) is operation sb_ops[i]'s
	// root node offset (spec.md §3).
	Dispatch []uint16
}

// Decode parses a compiled sandbox profile's header and tables from data.
// opt supplies the fields the fixed header cannot carry (spec.md §9 Open
// Question); the zero Options value matches a single-profile-file layout.
//
// Decode returns recoverable Warnings for regex/variable entries that fail
// to decode in isolation (spec.md §7: PatternDecodeError is localized to
// the affected argument) and a hard error only for container-format
// violations that make the rest of the file unreadable.
func Decode(data []byte, opt Options) (*Container, []diag.Warning, error) {
	h, err := decodeHeader(data)
	if err != nil {
		return nil, nil, err
	}
	l := computeLayout(h, opt)

	if err := boundsCheck(data, l.NodesOffset, l.NodesSize, "operation-nodes"); err != nil {
		return nil, nil, err
	}
	if err := boundsCheck(data, l.Base, 0, "base-address"); err != nil {
		return nil, nil, err
	}

	c := &Container{
		Layout: l,
		Data:   data,
		Nodes:  data[l.NodesOffset : l.NodesOffset+l.NodesSize],
	}

	var warnings []diag.Warning

	regexOffsets, err := readU16Table(data, l.RegexTableOffset, int(h.RegexCount), "regex-table")
	if err != nil {
		return nil, nil, err
	}
	for i, o := range regexOffsets {
		payload, err := ReadPooled(data, l.Base, o)
		if err != nil {
			warnings = append(warnings, diag.New(diag.PatternDecodeError, contextf("regex", i), err))
			c.RegexList = append(c.RegexList, "")
			continue
		}
		re, err := sbregex.Analyze(payload)
		if err != nil {
			warnings = append(warnings, diag.New(diag.PatternDecodeError, contextf("regex", i), err))
			c.RegexList = append(c.RegexList, "")
			continue
		}
		c.RegexList = append(c.RegexList, re)
	}

	varOffsets, err := readU16Table(data, l.VarsTableOffset, int(h.VarsCount), "vars-table")
	if err != nil {
		return nil, nil, err
	}
	for i, o := range varOffsets {
		s, err := ReadPooledCString(data, l.Base, o)
		if err != nil {
			warnings = append(warnings, diag.New(diag.PatternDecodeError, contextf("global-var", i), err))
			c.GlobalVars = append(c.GlobalVars, "")
			continue
		}
		c.GlobalVars = append(c.GlobalVars, s)
	}

	policies, err := readU16Table(data, l.EntitlementsOffset, l.EntitlementsCount, "entitlements-table")
	if err != nil {
		return nil, nil, err
	}
	c.Policies = policies

	dispatch, err := readU16Table(data, l.DispatchTableOffset, int(h.SbOpsCount), "dispatch-table")
	if err != nil {
		return nil, nil, err
	}
	c.Dispatch = dispatch

	return c, warnings, nil
}

func readU16Table(data []byte, offset, count int, stage string) ([]uint16, error) {
	if count == 0 {
		return nil, nil
	}
	n := count * indexSize
	if err := boundsCheck(data, offset, n, stage); err != nil {
		return nil, err
	}
	out := make([]uint16, count)
	for i := 0; i < count; i++ {
		out[i] = binary.LittleEndian.Uint16(data[offset+i*indexSize : offset+(i+1)*indexSize])
	}
	return out, nil
}

func contextf(kind string, idx int) string {
	return kind + "#" + strconv.Itoa(idx)
}
