package filter

import (
	"fmt"
	"sort"

	"github.com/sbplx/sbplx/container"
	"github.com/sbplx/sbplx/diag"
)

// MatchingModifiers returns every modifier in the catalog whose
// action_mask/action_flag select flags, sorted by modifier_id for
// deterministic output (spec.md §4.5: "compute the set of modifiers whose
// action_mask/action_flag select the terminal's modifier_flags").
func (r *Resolver) MatchingModifiers(flags uint32) []ModifierDef {
	var ids []int
	for id, def := range r.modifiers {
		if flags&def.ActionMask == def.ActionFlag {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	out := make([]ModifierDef, len(ids))
	for i, id := range ids {
		out[i] = r.modifiers[id]
	}
	return out
}

// InlineModifier is the resolved form of a terminal's inline action
// modifier (node record bytes 4-7 when modifier_flags bit 0x800000 is set).
type InlineModifier struct {
	// ModifierName is the modifier_catalog[arg_type] name.
	ModifierName string
	// IsReference is true when arg_id != 0: the inline action points at
	// another operation's subtree rather than carrying a literal string.
	IsReference bool
	// StringValue is the literal-form argument (arg_id == 0): the string
	// at the indirect pool offset arg_value.
	StringValue string
	// NodeOffset is the reference-form target: policies[arg_value], a node
	// offset into the operation-node array belonging to another operation.
	// When arg_value is outside the policies table it holds the raw
	// arg_value instead (and an UnverifiedReference warning is returned).
	NodeOffset uint16
}

// ResolveInlineModifier renders a terminal's inline action modifier per
// spec.md §4.5.
func (r *Resolver) ResolveInlineModifier(argType, argID, argValue uint16) (InlineModifier, []diag.Warning, error) {
	def, ok := r.modifiers[int(argType)]
	name := def.Name
	var warnings []diag.Warning
	if !ok {
		name = fmt.Sprintf("unknown-modifier-%d", argType)
		warnings = append(warnings, diag.New(diag.CatalogError, fmt.Sprintf("modifier#%d", argType), nil))
	}

	if argID != 0 {
		if int(argValue) < 0 || int(argValue) >= len(r.c.Policies) {
			warnings = append(warnings, diag.New(diag.UnverifiedReference, fmt.Sprintf("inline modifier policies[%d]", argValue), nil))
			return InlineModifier{ModifierName: name, IsReference: true, NodeOffset: argValue}, warnings, nil
		}
		return InlineModifier{
			ModifierName: name,
			IsReference:  true,
			NodeOffset:   r.c.Policies[argValue],
		}, warnings, nil
	}

	s, err := container.ReadPooledCString(r.c.Data, r.c.Base, argValue)
	if err != nil {
		warnings = append(warnings, diag.New(diag.PatternDecodeError, "inline modifier string", err))
		s = ""
	}
	return InlineModifier{ModifierName: name, StringValue: s}, warnings, nil
}
