package fsa

import "sort"

// Reindex renumbers instructions to a contiguous 0..N-1 range and rewrites
// JNE targets accordingly, mirroring original_source's
// fsa_parser/processor.py convert_operations.
func (p *Program) Reindex() (*Program, error) {
	offsets := append([]int(nil), p.order...)
	sort.Ints(offsets)

	indexOf := make(map[int]int, len(offsets))
	for newIdx, orig := range offsets {
		indexOf[orig] = newIdx
	}

	out := &Program{instructions: make(map[int]Instruction, len(offsets))}
	for _, orig := range offsets {
		newIdx := indexOf[orig]
		inst := p.instructions[orig]
		if inst.Kind == KindJNE {
			target, ok := indexOf[inst.Target]
			if !ok {
				return nil, &DecodeError{Offset: orig, Err: ErrInvalidJumpTarget}
			}
			inst.Target = target
		}
		out.instructions[newIdx] = inst
		out.order = append(out.order, newIdx)
	}
	return out, nil
}
