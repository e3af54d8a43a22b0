package partition

import (
	"testing"

	"github.com/sbplx/sbplx/graph"
	"github.com/sbplx/sbplx/node"
)

func buildTable(t *testing.T, records ...[8]byte) *node.Table {
	t.Helper()
	raw := make([]byte, 0, len(records)*8)
	for _, r := range records {
		raw = append(raw, r[:]...)
	}
	tbl, err := node.Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return tbl
}

func TestComputePartitionsTotalityAndDisjointness(t *testing.T) {
	// node0: non-terminal -> match=1(allow terminal), unmatch=2(non-terminal)
	// node1: terminal allow
	// node2: non-terminal -> match=3(deny terminal), unmatch=1(shared allow)
	// node3: terminal deny
	tbl := buildTable(t,
		[8]byte{0x00, 0x00, 0x00, 0x00, 0x01, 0x00, 0x02, 0x00},
		[8]byte{0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00},
		[8]byte{0x00, 0x00, 0x00, 0x00, 0x03, 0x00, 0x01, 0x00},
		[8]byte{0x01, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00},
	)
	g, err := graph.Build(tbl, 0)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	parts := Compute(g)
	if len(parts) != len(g.Sinks) {
		t.Fatalf("expected one partition per sink, got %d partitions for %d sinks", len(parts), len(g.Sinks))
	}

	seen := make(map[graph.VertexID]bool)
	for _, p := range parts {
		for v := range p.Interior {
			if seen[v] {
				t.Fatalf("vertex %d assigned to more than one partition", v)
			}
			seen[v] = true
		}
	}
	for _, v := range g.Interior {
		if !seen[v] {
			t.Fatalf("interior vertex %d not assigned to any partition", v)
		}
	}
}

func TestComputeSingleSinkWholeGraph(t *testing.T) {
	tbl := buildTable(t,
		[8]byte{0x00, 0x00, 0x00, 0x00, 0x01, 0x00, 0x01, 0x00},
		[8]byte{0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00},
	)
	g, err := graph.Build(tbl, 0)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	parts := Compute(g)
	if len(parts) != 1 {
		t.Fatalf("expected exactly one partition, got %d", len(parts))
	}
	if len(parts[0].Interior) != 1 {
		t.Fatalf("expected the single interior vertex assigned, got %v", parts[0].Interior)
	}
}
