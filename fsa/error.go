// Package fsa decodes Apple's path-pattern FSA bytecode (the payload behind
// a PATTERN_LITERAL/PATTERN_PREFIX/PATTERN_SUBPATH filter argument) into an
// accepting-path enumeration over the embedded automaton, producing the set
// of literal path strings (with embedded globbing/callback placeholders)
// the pattern matches (spec.md §4.3, component C3).
package fsa

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownOpcode indicates a byte in the instruction stream did not
	// match any known opcode pattern.
	ErrUnknownOpcode = errors.New("fsa: unknown opcode")

	// ErrTruncated indicates an opcode's fixed-size operand ran past the
	// end of the instruction stream.
	ErrTruncated = errors.New("fsa: truncated instruction")

	// ErrInvalidJumpTarget indicates a JNE targets an offset outside the
	// instruction stream.
	ErrInvalidJumpTarget = errors.New("fsa: invalid jump target")
)

// DecodeError wraps a decode failure with the byte offset it occurred at.
type DecodeError struct {
	Offset int
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("fsa: %v at offset %#x", e.Err, e.Offset)
}

func (e *DecodeError) Unwrap() error { return e.Err }
