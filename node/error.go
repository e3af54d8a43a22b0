// Package node decodes the packed 8-byte operation-node records into typed
// terminal/non-terminal vertices and wires each non-terminal's match/unmatch
// successors, attaching C5-resolved filter/modifier text along the way
// (spec.md §4.2, component C2).
package node

import (
	"errors"
	"fmt"
)

// ErrTruncatedRecord indicates the node array's length is not a multiple of
// the 8-byte record size.
var ErrTruncatedRecord = errors.New("node: truncated record")

// ErrDanglingSuccessor indicates a non-terminal's match or unmatch offset
// does not resolve to a vertex in the table (spec.md §7 InvariantViolation:
// "missing successor node offset").
var ErrDanglingSuccessor = errors.New("node: dangling successor offset")

// InvariantError wraps a structural violation fatal to the containing
// profile.
type InvariantError struct {
	NodeIndex uint16
	Err       error
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("node: %v at node #%d", e.Err, e.NodeIndex)
}

func (e *InvariantError) Unwrap() error { return e.Err }
