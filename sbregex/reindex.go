package sbregex

import "sort"

// Reindex renumbers instructions to a contiguous 0..N-1 range and rewrites
// jump targets accordingly, mirroring original_source's
// RegexBytecodeParser.remap.
func (p *Program) Reindex() *Program {
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
		if inst.Kind == KindJump {
			if target, ok := indexOf[inst.Target]; ok {
				inst.Target = target
			}
			// An unresolved target (outside the decoded range) is left as
			// the original byte offset; NFA construction below treats any
			// target without a backing instruction as invalid.
		}
		out.instructions[newIdx] = inst
		out.order = append(out.order, newIdx)
	}
	return out
}

// Len returns the number of instructions in the program.
func (p *Program) Len() int { return len(p.order) }

// At returns the instruction at reindexed position i.
func (p *Program) At(i int) (Instruction, bool) {
	inst, ok := p.instructions[i]
	return inst, ok
}
