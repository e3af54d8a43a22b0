package node

import (
	"github.com/sbplx/sbplx/diag"
	"github.com/sbplx/sbplx/filter"
)

// Attach resolves and memoizes every node's filter/modifier text via r
// (spec.md §4.2: "C2 walks all nodes and calls C5 to attach the textual
// filter and argument to each non-terminal ... and to attach the textual
// action plus applicable modifiers to each terminal").
func (t *Table) Attach(r *filter.Resolver) ([]diag.Warning, error) {
	var warnings []diag.Warning

	for i := range t.nodes {
		n := &t.nodes[i]
		switch n.Kind {
		case KindNonTerminal:
			if n.NonTerminal.Resolved {
				continue
			}
			res, warns, err := r.Resolve(n.NonTerminal.FilterID, n.NonTerminal.ArgumentID)
			warnings = append(warnings, warns...)
			if err != nil {
				return warnings, err
			}
			n.NonTerminal.FilterName = res.FilterName
			n.NonTerminal.Values = res.Values
			n.NonTerminal.Quoted = res.Quoted
			n.NonTerminal.Resolved = true

		case KindTerminal:
			if n.Terminal.Resolved {
				continue
			}
			n.Terminal.Modifiers = r.MatchingModifiers(n.Terminal.ModifierFlags)
			if n.Terminal.Inline {
				im, warns, err := r.ResolveInlineModifier(
					uint16(n.Terminal.ArgType), uint16(n.Terminal.ArgID), n.Terminal.ArgValue)
				warnings = append(warnings, warns...)
				if err != nil {
					return warnings, err
				}
				n.Terminal.InlineModifier = &im
			}
			n.Terminal.Resolved = true
		}
	}
	return warnings, nil
}
