// Package filter resolves a (filter_id, argument_id) pair against a
// filter catalog and the container's indirect pool into the textual
// "(filter-name value)" SBPL primitive, and resolves a terminal's modifier
// flags against a modifier catalog (spec.md §4.5, component C5).
package filter

import "encoding/json"

// ArgumentType enumerates the shapes a filter's argument can take.
type ArgumentType string

const (
	ArgBool            ArgumentType = "BOOL"
	ArgBitfield        ArgumentType = "BITFIELD"
	ArgInteger         ArgumentType = "INTEGER"
	ArgString          ArgumentType = "STRING"
	ArgPatternLiteral  ArgumentType = "PATTERN_LITERAL"
	ArgPatternPrefix   ArgumentType = "PATTERN_PREFIX"
	ArgPatternSubpath  ArgumentType = "PATTERN_SUBPATH"
	ArgPatternRegex    ArgumentType = "PATTERN_REGEX"
	ArgRegex           ArgumentType = "REGEX"
	ArgNetwork         ArgumentType = "NETWORK"
	ArgBitmask         ArgumentType = "BITMASK"
)

// FilterDef is one entry of the filter catalog JSON (spec.md §6 input 3).
type FilterDef struct {
	Name         string           `json:"name"`
	ArgumentType ArgumentType     `json:"argument_type"`
	Modifiers    map[string]string `json:"modifiers,omitempty"`
}

// ModifierDef is one entry of the modifier catalog JSON (spec.md §6 input 4).
type ModifierDef struct {
	Name       string `json:"name"`
	ActionMask uint32 `json:"action_mask"`
	ActionFlag uint32 `json:"action_flag"`
}

// FilterCatalog maps decimal filter_id (as a string key in the source JSON)
// to its definition.
type FilterCatalog map[int]FilterDef

// ModifierCatalog maps decimal modifier_id to its definition.
type ModifierCatalog map[int]ModifierDef

// LoadFilterCatalog decodes a filter catalog JSON document (spec.md §6
// input 3). No third-party JSON/YAML library in the retrieval pack is used
// for simple one-shot flat-catalog decode, so stdlib encoding/json is used
// directly.
func LoadFilterCatalog(data []byte) (FilterCatalog, error) {
	var c FilterCatalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadModifierCatalog decodes a modifier catalog JSON document (spec.md §6
// input 4).
func LoadModifierCatalog(data []byte) (ModifierCatalog, error) {
	var c ModifierCatalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	return c, nil
}
