// Package sbregex decodes Apple's regex bytecode (the payload behind a
// PATTERN_REGEX filter argument) into an NFA, minimizes it to a DFA, and
// emits an equivalent conventional regular-expression string (spec.md
// §4.4, component C4).
package sbregex

import (
	"errors"
	"fmt"
)

var (
	// ErrBadMagic indicates the payload did not start with the expected
	// 0x03000000 magic.
	ErrBadMagic = errors.New("sbregex: bad magic number")

	// ErrLengthMismatch indicates the declared payload length does not
	// match the actual remaining bytes.
	ErrLengthMismatch = errors.New("sbregex: length mismatch")

	// ErrUnknownOpcode indicates a byte in the instruction stream did not
	// match any known opcode pattern.
	ErrUnknownOpcode = errors.New("sbregex: unknown opcode")

	// ErrInvalidJumpTarget indicates a JMP targets an offset outside the
	// instruction stream.
	ErrInvalidJumpTarget = errors.New("sbregex: invalid jump target")
)

// DecodeError wraps a decode failure with the byte offset it occurred at.
type DecodeError struct {
	Offset int
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("sbregex: %v at offset %#x", e.Err, e.Offset)
}

func (e *DecodeError) Unwrap() error { return e.Err }
