// Package diag carries the recoverable-diagnostic contract shared by every
// stage of the decompiler: a per-argument or per-rule failure becomes a
// Warning and a best-effort placeholder, never a hard stop (spec.md §7).
package diag

import "fmt"

// Code classifies a recoverable warning.
type Code int

const (
	// CatalogError: a filter or modifier id was not found in its JSON catalog.
	CatalogError Code = iota
	// PatternDecodeError: an unknown opcode appeared in FSA or regex bytecode.
	PatternDecodeError
	// AnalysisTimeout: NNF simplification exceeded its step/time budget.
	AnalysisTimeout
	// UnverifiedReference: a cross-operation inline-modifier reference could
	// not be verified against the container's own node table.
	UnverifiedReference
)

func (c Code) String() string {
	switch c {
	case CatalogError:
		return "catalog-error"
	case PatternDecodeError:
		return "pattern-decode-error"
	case AnalysisTimeout:
		return "analysis-timeout"
	case UnverifiedReference:
		return "unverified-reference"
	default:
		return "unknown"
	}
}

// Warning is one recoverable issue encountered while decompiling a profile.
// Context identifies what the warning is about (an operation name, a filter
// id, a node offset) in free text, since each stage has a different notion
// of "where" — this mirrors the way the original tool logged per-item
// warnings without aborting the run.
type Warning struct {
	Code    Code
	Context string
	Err     error
}

func (w Warning) String() string {
	if w.Err != nil {
		return fmt.Sprintf("%s: %s: %v", w.Code, w.Context, w.Err)
	}
	return fmt.Sprintf("%s: %s", w.Code, w.Context)
}

// New constructs a Warning.
func New(code Code, context string, err error) Warning {
	return Warning{Code: code, Context: context, Err: err}
}
