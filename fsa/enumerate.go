package fsa

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sbplx/sbplx/diag"
)

type path []int

// Enumerate performs the explicit-worklist DFS described in spec.md §4.3:
// from instruction 0, follow fall-through and (for JNE) jump-target edges,
// accumulating visited instruction indices, until SUCCESS is reached.
// RESTORE_POS truncates the accumulated path back to the most recent
// PUSH_STATE still present in it (the path is scanned from the back, so a
// nested inner PUSH_STATE wins over an outer one). The JNE jump-taken branch drops
// the immediately preceding recorded step, since it represents a match
// attempt that did not succeed on that branch.
//
// globalVars supplies the ${NAME} text for CALLBACK instructions; a
// CALLBACK index outside globalVars produces a diag.UnverifiedReference
// warning and renders as "${UNKNOWN}" rather than aborting the pattern.
func Enumerate(prog *Program, globalVars []string) ([]string, []diag.Warning, error) {
	n := prog.Len()
	if n == 0 {
		return nil, nil, nil
	}

	type frame struct {
		pc   int
		path path
	}

	stack := []frame{{pc: 0, path: nil}}
	var paths []path

	isPushState := func(idx int) bool {
		inst, ok := prog.At(idx)
		return ok && inst.Kind == KindPushState
	}
	truncate := func(p path) path {
		for j := len(p) - 1; j >= 0; j-- {
			if isPushState(p[j]) {
				out := make(path, j)
				copy(out, p[:j])
				return out
			}
		}
		return p
	}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		inst, ok := prog.At(f.pc)
		if !ok {
			continue
		}

		switch inst.Kind {
		case KindSuccess:
			paths = append(paths, f.path)

		case KindJNE:
			fallthroughPath := append(append(path(nil), f.path...), f.pc)
			stack = append(stack, frame{pc: f.pc + 1, path: fallthroughPath})

			takenPath := f.path
			if len(takenPath) > 0 {
				takenPath = takenPath[:len(takenPath)-1]
			}
			takenPath = append(append(path(nil), takenPath...), f.pc)
			stack = append(stack, frame{pc: inst.Target, path: takenPath})

		case KindRestorePos:
			stack = append(stack, frame{pc: f.pc + 1, path: truncate(f.path)})

		default:
			stack = append(stack, frame{pc: f.pc + 1, path: append(append(path(nil), f.path...), f.pc)})
		}
	}

	var warnings []diag.Warning
	seen := make(map[string]bool)
	var out []string
	for _, p := range paths {
		var b strings.Builder
		for _, idx := range p {
			inst, ok := prog.At(idx)
			if !ok {
				continue
			}
			switch inst.Kind {
			case KindLiteral:
				b.WriteString(inst.Text)
			case KindCallback:
				if inst.Arg < 0 || inst.Arg >= len(globalVars) {
					warnings = append(warnings, diag.New(diag.UnverifiedReference,
						fmt.Sprintf("fsa callback #%d", inst.Arg), nil))
					b.WriteString("${UNKNOWN}")
					continue
				}
				b.WriteString("${" + strings.ToUpper(globalVars[inst.Arg]) + "}")
			case KindMatchByte, KindMatchSeq:
				b.WriteString(".+" + string(rune(inst.Arg)))
			case KindRangeInclusive:
				b.WriteString(rangesToClass(inst.Ranges, false))
			case KindRangeExclusive:
				b.WriteString(rangesToClass(inst.Ranges, true))
			}
		}
		text := b.String()
		if !seen[text] {
			seen[text] = true
			out = append(out, text)
		}
	}

	sort.Strings(out)
	return out, warnings, nil
}

func rangesToClass(ranges []ByteRange, exclusive bool) string {
	var b strings.Builder
	b.WriteByte('[')
	if exclusive {
		b.WriteByte('^')
	}
	for _, r := range ranges {
		b.WriteString(escapeRangeChar(r.Lo))
		b.WriteByte('-')
		b.WriteString(escapeRangeChar(r.Hi))
	}
	b.WriteByte(']')
	return b.String()
}

func escapeRangeChar(c byte) string {
	switch {
	case c == '\\' || c == '[' || c == ']' || c == '^' || c == '-':
		return fmt.Sprintf("\\x%02x", c)
	case c >= 32 && c <= 126:
		return string(rune(c))
	default:
		return fmt.Sprintf("\\x%02x", c)
	}
}
