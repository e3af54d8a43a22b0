package node

import "github.com/sbplx/sbplx/filter"

// Kind tags a decoded node as terminal or non-terminal.
type Kind int

const (
	KindNonTerminal Kind = iota
	KindTerminal
)

const inlineModifierBit = 0x800000

// NonTerminal is a filter decision point: byte 1 is filter_id, bytes 2-3 are
// argument_id, bytes 4-5/6-7 are the match/unmatch successor node indices.
type NonTerminal struct {
	FilterID      int
	ArgumentID    uint16
	MatchOffset   uint16
	UnmatchOffset uint16

	// Resolved lazily by Attach and memoized here (spec.md §3 Lifecycles:
	// "filter resolution memoizes").
	Resolved   bool
	FilterName string
	Values     []string
	Quoted     bool
}

// Terminal is an accept/deny leaf. ModifierFlags is the 24-bit word from
// bytes 1-3; bit 0 selects allow(0)/deny(1), bit 0x800000 marks an inline
// action modifier carried in bytes 4-7.
type Terminal struct {
	ModifierFlags uint32
	Deny          bool
	Inline        bool
	ArgType       uint8
	ArgID         uint8
	ArgValue      uint16

	Resolved       bool
	Modifiers      []filter.ModifierDef
	InlineModifier *filter.InlineModifier
}

// Node is a tagged union over NonTerminal and Terminal, indexed by its
// position in the operation-node array.
type Node struct {
	Kind        Kind
	NonTerminal NonTerminal
	Terminal    Terminal
}

func decodeRecord(b []byte) Node {
	if b[0] == 1 {
		flags := uint32(b[1]) | uint32(b[2])<<8 | uint32(b[3])<<16
		t := Terminal{
			ModifierFlags: flags,
			Deny:          flags&1 != 0,
			Inline:        flags&inlineModifierBit != 0,
		}
		if t.Inline {
			t.ArgType = b[4]
			t.ArgID = b[5]
			t.ArgValue = uint16(b[6]) | uint16(b[7])<<8
		}
		return Node{Kind: KindTerminal, Terminal: t}
	}

	return Node{
		Kind: KindNonTerminal,
		NonTerminal: NonTerminal{
			FilterID:      int(b[1]),
			ArgumentID:    uint16(b[2]) | uint16(b[3])<<8,
			MatchOffset:   uint16(b[4]) | uint16(b[5])<<8,
			UnmatchOffset: uint16(b[6]) | uint16(b[7])<<8,
		},
	}
}
