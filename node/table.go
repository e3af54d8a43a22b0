package node

const recordSize = 8

// Table is a flat, index-addressed collection of decoded nodes: index i
// corresponds to bytes [8i : 8i+8) of the operation-node array, the same
// unit used by match/unmatch offsets and the operation dispatch table.
type Table struct {
	nodes []Node
}

// Parse decodes every 8-byte record in raw into a Table.
func Parse(raw []byte) (*Table, error) {
	if len(raw)%recordSize != 0 {
		return nil, ErrTruncatedRecord
	}
	count := len(raw) / recordSize
	nodes := make([]Node, count)
	for i := 0; i < count; i++ {
		nodes[i] = decodeRecord(raw[i*recordSize : i*recordSize+recordSize])
	}
	return &Table{nodes: nodes}, nil
}

// Len returns the number of decoded node records.
func (t *Table) Len() int { return len(t.nodes) }

// At returns the node at index i.
func (t *Table) At(i uint16) (*Node, bool) {
	if int(i) >= len(t.nodes) {
		return nil, false
	}
	return &t.nodes[i], true
}

// Resolve validates that every non-terminal's match/unmatch offsets point
// at a vertex present in the table (spec.md §3: "Invariant: every offset
// reachable from any operation root resolves to a vertex"). roots are the
// operation dispatch-table entries to validate reachability from.
func (t *Table) Resolve(roots []uint16) error {
	visited := make(map[uint16]bool)
	stack := append([]uint16(nil), roots...)

	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[idx] {
			continue
		}
		visited[idx] = true

		n, ok := t.At(idx)
		if !ok {
			return &InvariantError{NodeIndex: idx, Err: ErrDanglingSuccessor}
		}
		if n.Kind != KindNonTerminal {
			continue
		}
		if _, ok := t.At(n.NonTerminal.MatchOffset); !ok {
			return &InvariantError{NodeIndex: n.NonTerminal.MatchOffset, Err: ErrDanglingSuccessor}
		}
		if _, ok := t.At(n.NonTerminal.UnmatchOffset); !ok {
			return &InvariantError{NodeIndex: n.NonTerminal.UnmatchOffset, Err: ErrDanglingSuccessor}
		}
		stack = append(stack, n.NonTerminal.MatchOffset, n.NonTerminal.UnmatchOffset)
	}
	return nil
}
