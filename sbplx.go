// Package sbplx decompiles a compiled Apple sandbox profile (the binary
// form `sandbox-compile` produces) back into SBPL S-expression policy
// text: container decode, per-operation decision-graph construction, sink
// partitioning, and if-then-else formula extraction feed a pretty printer
// that emits require-all/require-any/require-not clauses (spec.md §1).
//
// The package does no I/O of its own beyond what Decompile is handed —
// invocation CLI, file discovery, and logging are external collaborators
// (spec.md §1 non-goals; see SPEC_FULL.md §4 Orchestration).
package sbplx

import (
	"fmt"
	"sort"

	"github.com/sbplx/sbplx/container"
	"github.com/sbplx/sbplx/diag"
	"github.com/sbplx/sbplx/filter"
	"github.com/sbplx/sbplx/formula"
	"github.com/sbplx/sbplx/graph"
	"github.com/sbplx/sbplx/node"
	"github.com/sbplx/sbplx/partition"
)

// Profile is the result of decompiling one compiled binary profile.
type Profile struct {
	// Text is the rendered SBPL policy, one top-level clause per line,
	// `(version 1)` first.
	Text string
	// Warnings collects every recoverable diagnostic raised anywhere in
	// the pipeline (spec.md §7); a non-empty Warnings slice does not mean
	// Text is incomplete, only that some input was irregular.
	Warnings []Warning
}

// Decompile runs the full C1→C2→(C3/C4/C5)→C6→C7→C8 pipeline over a
// compiled profile's bytes.
//
// opNames names the profile's operations in dispatch-table order:
// opNames[i] is the name of the operation whose root is
// container.Dispatch[i+1] (dispatch entry 0 is always the profile-wide
// default and needs no name). ops, when non-empty, restricts the output
// to those named operations (spec.md §6 `--filter <op>...`, SPEC_FULL.md
// §5); a name in ops that is not present in opNames is ErrNoSuchOperation.
func Decompile(data []byte, opNames []string, filters filter.FilterCatalog, modifiers filter.ModifierCatalog, ops []string, cfg Config) (*Profile, []Warning, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	c, warnings, err := container.Decode(data, cfg.Container)
	if err != nil {
		return nil, warnings, err
	}

	if len(opNames) != maxInt(len(c.Dispatch)-1, 0) {
		return nil, warnings, fmt.Errorf("sbplx: opNames has %d entries, dispatch table names %d operations", len(opNames), maxInt(len(c.Dispatch)-1, 0))
	}

	selected, err := selectOperations(opNames, ops)
	if err != nil {
		return nil, warnings, err
	}

	tbl, err := node.Parse(c.Nodes)
	if err != nil {
		return nil, warnings, err
	}
	if err := tbl.Resolve(c.Dispatch); err != nil {
		return nil, warnings, err
	}

	resolver := filter.NewResolver(c, filters, modifiers)
	attachWarnings, err := tbl.Attach(resolver)
	warnings = append(warnings, attachWarnings...)
	if err != nil {
		return nil, warnings, err
	}

	simplifier := &formula.NNFSimplifier{Budget: cfg.SimplifyBudget, MaxSteps: cfg.SimplifyMaxSteps}
	printer := formula.NewPrinter(tbl)

	lines := []string{"(version 1)"}

	defaultLines, dw, err := renderOperation(tbl, printer, simplifier, "default", c.Dispatch[0])
	warnings = append(warnings, dw...)
	if err != nil {
		return nil, warnings, err
	}
	lines = append(lines, defaultLines...)

	for _, idx := range selected {
		name := opNames[idx-1]
		opLines, ow, err := renderOperation(tbl, printer, simplifier, name, c.Dispatch[idx])
		warnings = append(warnings, ow...)
		if err != nil {
			return nil, warnings, err
		}
		lines = append(lines, opLines...)
	}

	text := ""
	for i, l := range lines {
		if i > 0 {
			text += "\n"
		}
		text += l
	}

	return &Profile{Text: text, Warnings: warnings}, warnings, nil
}

// selectOperations resolves ops (operation names, empty = all) to
// 1-based dispatch indices into opNames, in ascending dispatch order.
func selectOperations(opNames []string, ops []string) ([]int, error) {
	if len(ops) == 0 {
		all := make([]int, len(opNames))
		for i := range opNames {
			all[i] = i + 1
		}
		return all, nil
	}

	byName := make(map[string]int, len(opNames))
	for i, n := range opNames {
		byName[n] = i + 1
	}

	idxs := make([]int, 0, len(ops))
	for _, want := range ops {
		idx, ok := byName[want]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrNoSuchOperation, want)
		}
		idxs = append(idxs, idx)
	}
	sort.Ints(idxs)
	return idxs, nil
}

// renderOperation builds the decision graph rooted at root, partitions it
// by sink, extracts and simplifies each partition's formula, and renders
// one SBPL clause per reachable sink — grounded on
// original_source/sandblaster/parsers/analysis/spbl_printer.py's
// per-operation rule emission (one `(allow|deny <op> [condition])` line
// per sink, modifiers folded into the action keyword's argument list).
func renderOperation(tbl *node.Table, printer *formula.Printer, simplifier formula.Simplifier, opName string, root graph.VertexID) ([]string, []diag.Warning, error) {
	g, err := graph.Build(tbl, root)
	if err != nil {
		return nil, nil, err
	}

	parts := partition.Compute(g)
	sort.Slice(parts, func(i, j int) bool { return parts[i].Sink < parts[j].Sink })

	var lines []string
	for _, p := range parts {
		n, ok := tbl.At(p.Sink)
		if !ok || n.Kind != node.KindTerminal {
			continue
		}

		e := formula.BuildITE(g, p)
		e = formula.ToNNF(e)
		if simplifier != nil {
			e = simplifier.Simplify(e)
		}
		if e.Kind == formula.KindFalse {
			continue
		}

		action := "allow"
		if n.Terminal.Deny {
			action = "deny"
		}

		head := fmt.Sprintf("%s %s%s", action, opName, renderModifiers(n.Terminal))
		if e.Kind == formula.KindTrue {
			lines = append(lines, fmt.Sprintf("(%s)", head))
			continue
		}
		lines = append(lines, fmt.Sprintf("(%s %s)", head, printer.Print(e)))
	}
	return lines, nil, nil
}

// renderModifiers renders a terminal's matched catalog modifiers and any
// inline action modifier as trailing " (with ...)" clauses (SPEC_FULL.md
// §5 supplemented feature, grounded on terminal_node.py's
// `f" (with {modifier['name']} {self.ss})"`).
func renderModifiers(t node.Terminal) string {
	s := ""
	for _, m := range t.Modifiers {
		s += fmt.Sprintf(" (with %s)", m.Name)
	}
	if t.InlineModifier != nil {
		im := t.InlineModifier
		switch {
		case im.IsReference:
			s += fmt.Sprintf(" (with %s (operation-node %d))", im.ModifierName, im.NodeOffset)
		case im.StringValue != "":
			s += fmt.Sprintf(" (with %s %q)", im.ModifierName, im.StringValue)
		default:
			s += fmt.Sprintf(" (with %s)", im.ModifierName)
		}
	}
	return s
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
