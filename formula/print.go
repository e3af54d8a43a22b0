package formula

import (
	"fmt"
	"strings"

	"github.com/sbplx/sbplx/graph"
	"github.com/sbplx/sbplx/node"
)

// Printer renders a formula as SBPL condition text, grounded on
// original_source/sandblaster/parsers/analysis/spbl_printer.py's
// z3_to_sbpl_print: And becomes require-all, Or becomes require-any, Not
// of a literal becomes require-not, and a Var becomes the primitive
// (filter-name value) the node's filter resolved to.
type Printer struct {
	Table *node.Table
}

func NewPrinter(tbl *node.Table) *Printer {
	return &Printer{Table: tbl}
}

// Print renders e. Callers should special-case KindTrue (the condition is
// unconditionally satisfied — omit the clause) and KindFalse (the
// condition never holds — omit the decision entirely) before calling
// Print, since neither has a meaningful SBPL rendering on its own.
func (p *Printer) Print(e *Expr) string {
	switch e.Kind {
	case KindTrue:
		return "(require-all)"
	case KindFalse:
		return "(require-any)"
	case KindVar:
		return p.printVar(e.Var)
	case KindNot:
		return fmt.Sprintf("(require-not %s)", p.Print(e.Children[0]))
	case KindAnd:
		return p.wrap("require-all", e.Children)
	case KindOr:
		return p.wrap("require-any", e.Children)
	default:
		return ""
	}
}

func (p *Printer) wrap(keyword string, children []*Expr) string {
	parts := make([]string, len(children))
	for i, c := range children {
		parts[i] = p.Print(c)
	}
	return fmt.Sprintf("(%s %s)", keyword, strings.Join(parts, " "))
}

// printVar renders one non-terminal's resolved filter as a primitive. A
// pattern/string/regex argument with more than one value (a pattern set
// fsa.Analyze expanded from a single compiled program) prints as
// require-any over one primitive per value.
func (p *Printer) printVar(id graph.VertexID) string {
	n, ok := p.Table.At(id)
	if !ok || n.Kind != node.KindNonTerminal {
		return fmt.Sprintf("(unknown-node %d)", id)
	}
	nt := n.NonTerminal

	if !nt.Quoted {
		val := "0"
		if len(nt.Values) > 0 {
			val = nt.Values[0]
		}
		return fmt.Sprintf("(%s %s)", nt.FilterName, val)
	}

	if len(nt.Values) > 1 {
		parts := make([]string, len(nt.Values))
		for i, v := range nt.Values {
			parts[i] = fmt.Sprintf("(%s %s)", nt.FilterName, quote(v))
		}
		return fmt.Sprintf("(require-any %s)", strings.Join(parts, " "))
	}

	val := ""
	if len(nt.Values) > 0 {
		val = nt.Values[0]
	}
	return fmt.Sprintf("(%s %s)", nt.FilterName, quote(val))
}

func quote(s string) string {
	return "\"" + strings.ReplaceAll(s, "\"", "\\\"") + "\""
}
