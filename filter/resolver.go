package filter

import (
	"fmt"
	"strconv"

	"github.com/sbplx/sbplx/container"
	"github.com/sbplx/sbplx/diag"
	"github.com/sbplx/sbplx/fsa"
)

// Result is a resolved (filter_id, argument_id) pair rendered as SBPL text.
// Values holds one string for a scalar argument, or more than one when the
// argument is a pattern set (spec.md §4.8: sets with len>1 print as
// require-any).
type Result struct {
	FilterName string
	Values     []string
	// Quoted marks arguments the printer renders as SBPL strings (STRING,
	// the three PATTERN_* kinds, PATTERN_REGEX); BOOL/INTEGER/BITFIELD and
	// the reserved kinds render bare.
	Quoted bool
}

type cacheKey struct {
	filterID   int
	argumentID uint16
}

// Resolver turns (filter_id, argument_id) pairs into rendered SBPL
// primitives, memoizing by pair (spec.md §3 Lifecycles).
type Resolver struct {
	c         *container.Container
	filters   FilterCatalog
	modifiers ModifierCatalog
	cache     map[cacheKey]Result
}

// NewResolver builds a Resolver bound to a decoded container and the two
// JSON catalogs.
func NewResolver(c *container.Container, filters FilterCatalog, modifiers ModifierCatalog) *Resolver {
	return &Resolver{
		c:         c,
		filters:   filters,
		modifiers: modifiers,
		cache:     make(map[cacheKey]Result),
	}
}

// Resolve renders (filterID, argumentID) as an SBPL primitive. A missing
// filter_id is a recoverable spec.md §7 CatalogError: Resolve returns a
// placeholder result plus a diag.Warning rather than failing the profile.
func (r *Resolver) Resolve(filterID int, argumentID uint16) (Result, []diag.Warning, error) {
	key := cacheKey{filterID, argumentID}
	if cached, ok := r.cache[key]; ok {
		return cached, nil, nil
	}

	def, ok := r.filters[filterID]
	if !ok {
		res := Result{
			FilterName: fmt.Sprintf("unknown-filter-%d", filterID),
			Values:     []string{strconv.Itoa(int(argumentID))},
		}
		warn := diag.New(diag.CatalogError, fmt.Sprintf("filter#%d", filterID), nil)
		r.cache[key] = res
		return res, []diag.Warning{warn}, nil
	}

	var res Result
	var warnings []diag.Warning
	var err error

	switch def.ArgumentType {
	case ArgBool:
		res = Result{FilterName: def.Name, Values: []string{boolText(argumentID)}}

	case ArgInteger:
		if name, ok := def.Modifiers[strconv.Itoa(int(argumentID))]; ok {
			res = Result{FilterName: def.Name, Values: []string{name}}
		} else {
			res = Result{FilterName: def.Name, Values: []string{strconv.Itoa(int(argumentID))}}
		}

	case ArgString:
		s, derr := container.ReadPooledCString(r.c.Data, r.c.Base, argumentID)
		if derr != nil {
			warnings = append(warnings, diag.New(diag.PatternDecodeError, fmt.Sprintf("filter#%d string arg", filterID), derr))
			s = ""
		}
		res = Result{FilterName: def.Name, Values: []string{s}, Quoted: true}

	case ArgPatternLiteral, ArgPatternPrefix, ArgPatternSubpath:
		payload, derr := container.ReadPooled(r.c.Data, r.c.Base, argumentID)
		if derr != nil {
			warnings = append(warnings, diag.New(diag.PatternDecodeError, fmt.Sprintf("filter#%d pattern arg", filterID), derr))
			res = Result{FilterName: def.Name, Values: []string{""}, Quoted: true}
			break
		}
		set, warns, derr2 := fsa.Analyze(payload, r.c.GlobalVars)
		warnings = append(warnings, warns...)
		if derr2 != nil {
			warnings = append(warnings, diag.New(diag.PatternDecodeError, fmt.Sprintf("filter#%d pattern arg", filterID), derr2))
			set = []string{""}
		}
		if len(set) == 0 {
			set = []string{""}
		}
		res = Result{FilterName: def.Name, Values: set, Quoted: true}

	case ArgPatternRegex:
		if int(argumentID) < 0 || int(argumentID) >= len(r.c.RegexList) {
			warnings = append(warnings, diag.New(diag.UnverifiedReference, fmt.Sprintf("filter#%d regex arg", filterID), nil))
			res = Result{FilterName: def.Name, Values: []string{""}, Quoted: true}
			break
		}
		res = Result{FilterName: def.Name, Values: []string{r.c.RegexList[argumentID]}, Quoted: true}

	case ArgBitfield:
		res = Result{FilterName: def.Name, Values: []string{strconv.Itoa(int(argumentID))}}

	default:
		// NETWORK, BITMASK, REGEX: reserved per spec.md §4.5, rendered as a
		// decimal fallback until a concrete encoding is specified.
		res = Result{FilterName: def.Name, Values: []string{strconv.Itoa(int(argumentID))}}
	}

	r.cache[key] = res
	return res, warnings, err
}

func boolText(argumentID uint16) string {
	if argumentID != 0 {
		return "#t"
	}
	return "#f"
}
