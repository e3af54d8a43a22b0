package sbplx

import (
	"testing"

	"github.com/sbplx/sbplx/filter"
)

// buildProfile assembles the smallest possible compiled-profile byte
// string exercising one guarded operation against one unconditional
// default: node0 is the default allow terminal, node1 is a BOOL-filter
// non-terminal whose match branch denies and unmatch branch falls back to
// the default terminal, node2 is the deny terminal.
func buildProfile(t *testing.T) []byte {
	t.Helper()

	header := []byte{
		0, 0, // Type
		3, 0, // OpNodesCount = 3
		2,    // SbOpsCount = 2 (default + one named operation)
		0,    // VarsCount
		0, 0, 0, 0, 0, 0, // padding
		0, 0, // RegexCount
		0, 0, // Reserved
	}
	dispatch := []byte{0, 0, 1, 0} // entry0 -> node0 (default), entry1 -> node1
	pad := []byte{0, 0, 0, 0}      // align node array to offset 24
	nodes := []byte{
		1, 0, 0, 0, 0, 0, 0, 0, // node0: terminal allow
		0, 7, 1, 0, 2, 0, 0, 0, // node1: non-terminal filter=7 arg=1 match=2 unmatch=0
		1, 1, 0, 0, 0, 0, 0, 0, // node2: terminal deny
	}

	data := append([]byte{}, header...)
	data = append(data, dispatch...)
	data = append(data, pad...)
	data = append(data, nodes...)
	if len(data) != 48 {
		t.Fatalf("fixture length = %d, want 48", len(data))
	}
	return data
}

func TestDecompileEndToEnd(t *testing.T) {
	data := buildProfile(t)
	filters := filter.FilterCatalog{
		7: {Name: "no-sandbox", ArgumentType: filter.ArgBool},
	}

	profile, warnings, err := Decompile(data, []string{"file-write-data"}, filters, filter.ModifierCatalog{}, nil, DefaultConfig())
	if err != nil {
		t.Fatalf("Decompile: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}

	want := "(version 1)\n(allow default)\n(allow file-write-data)\n(deny file-write-data (no-sandbox #t))"
	if profile.Text != want {
		t.Fatalf("Text =\n%q\nwant\n%q", profile.Text, want)
	}
}

func TestDecompileFiltersByOperationName(t *testing.T) {
	data := buildProfile(t)
	filters := filter.FilterCatalog{
		7: {Name: "no-sandbox", ArgumentType: filter.ArgBool},
	}

	_, _, err := Decompile(data, []string{"file-write-data"}, filters, filter.ModifierCatalog{}, []string{"no-such-operation"}, DefaultConfig())
	if err == nil {
		t.Fatalf("expected ErrNoSuchOperation for an unrecognized operation name")
	}
}

func TestDecompileRejectsMismatchedOpNames(t *testing.T) {
	data := buildProfile(t)
	filters := filter.FilterCatalog{
		7: {Name: "no-sandbox", ArgumentType: filter.ArgBool},
	}

	_, _, err := Decompile(data, nil, filters, filter.ModifierCatalog{}, nil, DefaultConfig())
	if err == nil {
		t.Fatalf("expected an error when opNames does not match the dispatch table's operation count")
	}
}
