// Package container decodes the binary sandbox profile container: the
// fixed header, the derived offset tables (regex, global variables,
// entitlements, per-profile operation dispatch) and the raw operation-node
// byte array.
package container

import (
	"errors"
	"fmt"
)

// Sentinel errors for container decoding. All are fatal to decompiling the
// affected profile (spec.md §7: ContainerFormatError).
var (
	// ErrOutOfBounds indicates a computed offset falls outside the file.
	ErrOutOfBounds = errors.New("container: computed offset out of bounds")

	// ErrTruncatedRecord indicates a length-prefixed record's declared
	// length exceeds the remaining bytes.
	ErrTruncatedRecord = errors.New("container: truncated record")
)

// FormatError wraps a sentinel error with the offset and stage at which it
// occurred, following the teacher package's CompileError/BuildError shape
// (sentinel + wrapping struct with Unwrap).
type FormatError struct {
	Stage  string
	Offset int
	Err    error
}

func (e *FormatError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("container: %s at offset %#x: %v", e.Stage, e.Offset, e.Err)
	}
	return fmt.Sprintf("container: %s: %v", e.Stage, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

func oob(stage string, offset int) error {
	return &FormatError{Stage: stage, Offset: offset, Err: ErrOutOfBounds}
}

func truncated(stage string, offset int) error {
	return &FormatError{Stage: stage, Offset: offset, Err: ErrTruncatedRecord}
}
