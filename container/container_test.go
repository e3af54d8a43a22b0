package container

import (
	"errors"
	"testing"
)

// buildMinimal assembles a zero-regex, zero-var, single-dispatch-entry
// profile: header, dispatch table (1 entry), 8-byte alignment pad, one
// terminal node.
func buildMinimal() []byte {
	header := []byte{
		0, 0, // Type
		1, 0, // OpNodesCount = 1
		1,                // SbOpsCount = 1
		0,                // VarsCount
		0, 0, 0, 0, 0, 0, // padding
		0, 0, // RegexCount
		0, 0, // Reserved
	}
	dispatch := []byte{0, 0} // entry0 -> node0
	pad := []byte{0, 0, 0, 0, 0, 0}
	nodes := []byte{1, 0, 0, 0, 0, 0, 0, 0} // terminal, allow
	data := append([]byte{}, header...)
	data = append(data, dispatch...)
	data = append(data, pad...)
	data = append(data, nodes...)
	return data
}

func TestDecodeMinimalProfile(t *testing.T) {
	data := buildMinimal()
	c, warnings, err := Decode(data, Options{})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if len(c.Dispatch) != 1 || c.Dispatch[0] != 0 {
		t.Fatalf("unexpected dispatch table: %v", c.Dispatch)
	}
	if len(c.Nodes) != 8 {
		t.Fatalf("Nodes len = %d, want 8", len(c.Nodes))
	}
}

func TestDecodeRejectsTruncatedHeader(t *testing.T) {
	if _, _, err := Decode([]byte{0, 0, 1}, Options{}); !errors.Is(err, ErrTruncatedRecord) {
		t.Fatalf("expected ErrTruncatedRecord, got %v", err)
	}
}

func TestDecodeRejectsOutOfBoundsNodes(t *testing.T) {
	header := []byte{
		0, 0, // Type
		5, 0, // OpNodesCount = 5 (more than data actually holds)
		0,
		0,
		0, 0, 0, 0, 0, 0,
		0, 0,
		0, 0,
	}
	if _, _, err := Decode(header, Options{}); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("expected ErrOutOfBounds, got %v", err)
	}
}

func TestReadPooledRoundTrip(t *testing.T) {
	// base=0; offset 0 -> addr 0: length-prefixed record "etc".
	data := []byte{0x03, 0x00, 'e', 't', 'c'}
	got, err := ReadPooled(data, 0, 0)
	if err != nil {
		t.Fatalf("ReadPooled: %v", err)
	}
	if string(got) != "etc" {
		t.Fatalf("ReadPooled = %q, want %q", got, "etc")
	}
}

func TestReadPooledCStringStripsTrailingNUL(t *testing.T) {
	data := []byte{0x04, 0x00, 'e', 't', 'c', 0x00}
	got, err := ReadPooledCString(data, 0, 0)
	if err != nil {
		t.Fatalf("ReadPooledCString: %v", err)
	}
	if got != "etc" {
		t.Fatalf("ReadPooledCString = %q, want %q", got, "etc")
	}
}

func TestReadPooledTruncatedPayload(t *testing.T) {
	// declared length 10 but only 2 payload bytes follow.
	data := []byte{0x0a, 0x00, 'a', 'b'}
	if _, err := ReadPooled(data, 0, 0); !errors.Is(err, ErrTruncatedRecord) {
		t.Fatalf("expected ErrTruncatedRecord, got %v", err)
	}
}
