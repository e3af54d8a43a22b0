package fsa

import (
	"encoding/binary"
	"strings"
)

// Kind tags a decoded FSA instruction (spec.md §4.3 opcode dictionary).
type Kind int

const (
	KindAssertEOS Kind = iota
	KindCallback
	KindMatchByte
	KindMatchSeq
	KindLiteral
	KindRestorePos
	KindPushState
	KindPopState
	KindSuccess
	KindMatch
	KindJNE
	KindRangeInclusive
	KindRangeExclusive
)

// ByteRange is one inclusive endpoint pair of a RANGE instruction's
// character class.
type ByteRange struct {
	Lo, Hi byte
}

// Instruction is one decoded FSA-bytecode step.
type Instruction struct {
	Kind   Kind
	Text   string      // KindLiteral
	Arg    int         // KindCallback: global-var index; KindMatchByte/KindMatchSeq: byte value
	Target int         // KindJNE: absolute byte offset (pre-Reindex) or instruction index (post-Reindex)
	Ranges []ByteRange // KindRangeInclusive/KindRangeExclusive
}

// Program is an FSA bytecode program decoded into a linear instruction map
// keyed by original byte offset.
type Program struct {
	instructions map[int]Instruction
	order        []int
}

const (
	opAssertEOS   byte = 0x00
	opCallbackExt byte = 0x01
	opMatchByte   byte = 0x02
	opMatchSeq    byte = 0x03
	opLiteralExt  byte = 0x04
	opRestorePos  byte = 0x05
	opPushState   byte = 0x06
	opPopState    byte = 0x07
	opJNEExt      byte = 0x08
	opSuccess     byte = 0x0A
	opRange       byte = 0x0B
	opMatch       byte = 0x0F

	callbackShortLo byte = 0x10
	callbackShortHi byte = 0x1F
	literalShortLo  byte = 0x40
	literalShortHi  byte = 0x7F
	jneShortLo      byte = 0x80
	jneShortHi      byte = 0xFF
)

// Decode parses an FSA pattern byte program into a Program. Opcode 0x09
// (the reference tool's unused FAIL constant) and any other unrecognized
// byte are treated as ErrUnknownOpcode, matching the reference decoder's
// behavior of never special-casing FAIL.
func Decode(fsa []byte) (*Program, error) {
	p := &Program{instructions: make(map[int]Instruction)}
	i := 0
	n := len(fsa)

	for i < n {
		start := i
		opcode := fsa[i]

		var inst Instruction
		switch {
		case opcode == opAssertEOS:
			inst = Instruction{Kind: KindAssertEOS}
			i++

		case opcode == opCallbackExt:
			if i+2 >= n {
				return nil, &DecodeError{Offset: start, Err: ErrTruncated}
			}
			inst = Instruction{Kind: KindCallback, Arg: int(binary.LittleEndian.Uint16(fsa[i+1 : i+3]))}
			i += 3

		case opcode == opMatchByte:
			if i+1 >= n {
				return nil, &DecodeError{Offset: start, Err: ErrTruncated}
			}
			inst = Instruction{Kind: KindMatchByte, Arg: int(fsa[i+1])}
			i += 2

		case opcode == opMatchSeq:
			if i+1 >= n {
				return nil, &DecodeError{Offset: start, Err: ErrTruncated}
			}
			inst = Instruction{Kind: KindMatchSeq, Arg: int(fsa[i+1])}
			i += 2

		case opcode == opLiteralExt:
			if i+1 >= n {
				return nil, &DecodeError{Offset: start, Err: ErrTruncated}
			}
			length := int(fsa[i+1]) + 0x41
			end := i + 2 + length
			if end > n {
				return nil, &DecodeError{Offset: start, Err: ErrTruncated}
			}
			inst = Instruction{Kind: KindLiteral, Text: decodeLiteral(fsa[i+2 : end])}
			i = end

		case opcode == opRestorePos:
			inst = Instruction{Kind: KindRestorePos}
			i++

		case opcode == opPushState:
			inst = Instruction{Kind: KindPushState}
			i++

		case opcode == opPopState:
			inst = Instruction{Kind: KindPopState}
			i++

		case opcode == opSuccess:
			inst = Instruction{Kind: KindSuccess}
			i++

		case opcode == opRange:
			if i+1 >= n {
				return nil, &DecodeError{Offset: start, Err: ErrTruncated}
			}
			offset := i + 1
			flags := fsa[offset]
			count := int(flags&0x7F) + 1
			if offset+1+count*2 > n {
				return nil, &DecodeError{Offset: start, Err: ErrTruncated}
			}
			ranges := make([]ByteRange, count)
			for j := 0; j < count; j++ {
				ranges[j] = ByteRange{Lo: fsa[offset+1+2*j], Hi: fsa[offset+2+2*j]}
			}
			kind := KindRangeInclusive
			if flags&0x80 != 0 {
				kind = KindRangeExclusive
			}
			inst = Instruction{Kind: kind, Ranges: ranges}
			// The reference decoder advances one byte further than the
			// flags+ranges extent it just computed; replicated verbatim
			// since it is the offset arithmetic verified against real
			// compiled profiles.
			i = offset + 1 + count*2 + 1

		case opcode == opMatch:
			inst = Instruction{Kind: KindMatch}
			i++

		case opcode == opJNEExt:
			if i+2 >= n {
				return nil, &DecodeError{Offset: start, Err: ErrTruncated}
			}
			d := int(binary.LittleEndian.Uint16(fsa[i+1 : i+3]))
			inst = Instruction{Kind: KindJNE, Target: i + 3 + d + 0x84}
			i += 3

		case opcode >= literalShortLo && opcode <= literalShortHi:
			length := int(opcode&0x3F) + 1
			end := i + 1 + length
			if end > n {
				return nil, &DecodeError{Offset: start, Err: ErrTruncated}
			}
			inst = Instruction{Kind: KindLiteral, Text: decodeLiteral(fsa[i+1 : end])}
			i = end

		case opcode >= jneShortLo && opcode <= jneShortHi:
			offset := int(opcode&0x7F) + 1
			inst = Instruction{Kind: KindJNE, Target: i + 1 + offset}
			i++

		case opcode >= callbackShortLo && opcode <= callbackShortHi:
			inst = Instruction{Kind: KindCallback, Arg: int(opcode & 0xF)}
			i++

		default:
			return nil, &DecodeError{Offset: start, Err: ErrUnknownOpcode}
		}

		p.instructions[start] = inst
		p.order = append(p.order, start)
	}

	return p, nil
}

func decodeLiteral(b []byte) string {
	// Mirrors the reference decoder's utf-8-with-replacement decode.
	return strings.ToValidUTF8(string(b), "�")
}

// Len returns the number of decoded instructions.
func (p *Program) Len() int { return len(p.order) }

// At returns the instruction at offset/index i.
func (p *Program) At(i int) (Instruction, bool) {
	inst, ok := p.instructions[i]
	return inst, ok
}
