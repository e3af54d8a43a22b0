package fsa

import (
	"reflect"
	"testing"
)

func TestAnalyzeAlternation(t *testing.T) {
	// scenario: FSA alternation via JNE_SHORT, two accepting paths.
	program := []byte{
		0x40, 0x2F, 0x0F, 0x42, 0x62, 0x62, 0x62, 0x82,
		0x00, 0x0F, 0x0A, 0x42, 0x61, 0x61, 0x61, 0x0F,
		0x00, 0x0F, 0x0A,
	}
	got, warnings, err := Analyze(program, nil)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("expected no warnings, got %v", warnings)
	}
	want := []string{"/aaa", "/bbb"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestAnalyzeEmptyProgram(t *testing.T) {
	got, warnings, err := Analyze(nil, nil)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if got != nil || warnings != nil {
		t.Fatalf("expected nil/nil for an empty program, got %v %v", got, warnings)
	}
}

func TestDecodeUnknownOpcode(t *testing.T) {
	if _, err := Decode([]byte{0x09}); err == nil {
		t.Fatal("expected FAIL (0x09) to be treated as an unknown opcode")
	}
}

func TestDecodeLiteralShort(t *testing.T) {
	// opcode 0x40 means LITERAL_SHORT length 1; operand byte 'x'.
	prog, err := Decode([]byte{0x40, 'x'})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	inst, ok := prog.At(0)
	if !ok || inst.Kind != KindLiteral || inst.Text != "x" {
		t.Fatalf("expected literal 'x', got %+v ok=%v", inst, ok)
	}
}

func TestDecodeCallbackShort(t *testing.T) {
	prog, err := Decode([]byte{0x13})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	inst, _ := prog.At(0)
	if inst.Kind != KindCallback || inst.Arg != 3 {
		t.Fatalf("expected callback index 3, got %+v", inst)
	}
}

func TestEnumerateCallbackOutOfRange(t *testing.T) {
	// CALLBACK_SHORT(0) ; SUCCESS
	prog, err := Decode([]byte{0x10, opSuccess})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	prog, err = prog.Reindex()
	if err != nil {
		t.Fatalf("Reindex: %v", err)
	}
	got, warnings, err := Enumerate(prog, nil)
	if err != nil {
		t.Fatalf("Enumerate: %v", err)
	}
	if len(warnings) != 1 {
		t.Fatalf("expected one unverified-reference warning, got %v", warnings)
	}
	if len(got) != 1 || got[0] != "${UNKNOWN}" {
		t.Fatalf("expected placeholder text, got %v", got)
	}
}

func TestRangeInclusive(t *testing.T) {
	// RANGE opcode: flags byte count=1 ('a'-'z'), inclusive. The decoder
	// consumes one byte past the range pairs (the MATCH that follows a
	// RANGE in compiled programs), so a MATCH sits before SUCCESS here.
	prog, err := Decode([]byte{opRange, 0x00, 'a', 'z', opMatch, opSuccess})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	prog, err = prog.Reindex()
	if err != nil {
		t.Fatalf("Reindex: %v", err)
	}
	got, _, err := Enumerate(prog, nil)
	if err != nil {
		t.Fatalf("Enumerate: %v", err)
	}
	if len(got) != 1 || got[0] != "[a-z]" {
		t.Fatalf("expected [a-z], got %v", got)
	}
}

func TestPushStateRestorePosTruncation(t *testing.T) {
	// PUSH_STATE ; LITERAL 'x' ; RESTORE_POS ; LITERAL 'y' ; SUCCESS
	// RESTORE_POS should drop the LITERAL 'x' from the accumulated path.
	// Built directly as an already-decoded Program to isolate the
	// truncation logic from opcode-encoding details.
	p := &Program{instructions: map[int]Instruction{
		0: {Kind: KindPushState},
		1: {Kind: KindLiteral, Text: "x"},
		2: {Kind: KindRestorePos},
		3: {Kind: KindLiteral, Text: "y"},
		4: {Kind: KindSuccess},
	}, order: []int{0, 1, 2, 3, 4}}

	got, _, err2 := Enumerate(p, nil)
	if err2 != nil {
		t.Fatalf("Enumerate: %v", err2)
	}
	if len(got) != 1 || got[0] != "y" {
		t.Fatalf("expected %q, got %v", "y", got)
	}
}
