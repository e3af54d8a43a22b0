// Package graph builds, for one operation's root node, the labeled directed
// acyclic graph whose interior vertices are non-terminal node offsets and
// whose sinks are the terminal node offsets reachable from the root
// (spec.md §4.6, component C6).
package graph

import (
	"github.com/sbplx/sbplx/internal/sparse"
	"github.com/sbplx/sbplx/node"
)

// VertexID is a node-table index, shared with package node's addressing.
type VertexID = uint16

// Edge is one labeled match/unmatch transition out of a non-terminal
// vertex.
type Edge struct {
	To     VertexID
	Result bool // true = match edge, false = unmatch edge
}

// Graph is the per-operation decision DAG (spec.md §4.6). Interior holds
// non-terminal vertex ids in discovery order (used by package partition for
// its discovery-order tie-break); Sinks holds every terminal vertex id
// reached.
type Graph struct {
	Start    VertexID
	Table    *node.Table
	Edges    map[VertexID][2]Edge // non-terminal id -> [matchEdge, unmatchEdge]
	Sinks    map[VertexID]bool
	Interior []VertexID
}

// Build walks the match/unmatch tree from start with an iterative worklist,
// consolidating duplicate vertices by offset so shared subtrees collapse
// into a DAG (spec.md §4.6 Construction). Children are enqueued
// match-then-unmatch so Interior's discovery order is deterministic.
func Build(tbl *node.Table, start VertexID) (*Graph, error) {
	g := &Graph{
		Start: start,
		Table: tbl,
		Edges: make(map[VertexID][2]Edge),
		Sinks: make(map[VertexID]bool),
	}

	// VertexID is a uint16 offset, so a SparseSet sized to the full uint16
	// range safely tracks visited vertices in O(1) regardless of how large
	// a (possibly malformed) offset turns out to be, without a map's
	// per-entry allocation (grounded on the teacher's internal/sparse,
	// built for the same bounded-state-id shape in NFA simulation).
	visited := sparse.NewSparseSet(1 << 16)
	queue := []VertexID{start}

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if visited.Contains(uint32(id)) {
			continue
		}
		visited.Insert(uint32(id))

		n, ok := tbl.At(id)
		if !ok {
			return nil, &node.InvariantError{NodeIndex: id, Err: node.ErrDanglingSuccessor}
		}
		if n.Kind == node.KindTerminal {
			g.Sinks[id] = true
			continue
		}

		g.Interior = append(g.Interior, id)
		nt := n.NonTerminal
		g.Edges[id] = [2]Edge{
			{To: nt.MatchOffset, Result: true},
			{To: nt.UnmatchOffset, Result: false},
		}
		if !visited.Contains(uint32(nt.MatchOffset)) {
			queue = append(queue, nt.MatchOffset)
		}
		if !visited.Contains(uint32(nt.UnmatchOffset)) {
			queue = append(queue, nt.UnmatchOffset)
		}
	}

	return g, nil
}

// MatchChild returns the match-edge target of a non-terminal vertex.
func (g *Graph) MatchChild(id VertexID) VertexID { return g.Edges[id][0].To }

// UnmatchChild returns the unmatch-edge target of a non-terminal vertex.
func (g *Graph) UnmatchChild(id VertexID) VertexID { return g.Edges[id][1].To }

// IsInterior reports whether id is a non-terminal vertex of this graph.
func (g *Graph) IsInterior(id VertexID) bool {
	_, ok := g.Edges[id]
	return ok
}
