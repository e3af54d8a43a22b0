package formula

import (
	"sort"

	"github.com/sbplx/sbplx/graph"
	"github.com/sbplx/sbplx/partition"
)

// BuildITE assembles the if-then-else formula for one partition (spec.md
// §4.8 Formula assembly): expr(p.Sink) = true, expr(any other sink) =
// false, expr(interior vertex v) = ite(x_v, expr(matchChild), expr(unmatchChild)),
// memoized per vertex. The partition's entry points ("sources" — interior
// vertices with no in-partition predecessor) are combined with
// disjunction; a partition with no interior vertices at all yields True.
// That covers both a sink reached with no guard and a sink whose guards
// were all assigned to an earlier partition by partition.Compute; in the
// second case the condition lives only in that other partition's formula.
func BuildITE(g *graph.Graph, p partition.Partition) *Expr {
	memo := make(map[graph.VertexID]*Expr)

	var build func(v graph.VertexID) *Expr
	build = func(v graph.VertexID) *Expr {
		if v == p.Sink {
			return True()
		}
		if g.Sinks[v] {
			return False()
		}
		if !p.Interior[v] {
			// A child that escaped the partition boundary (a guard vertex's
			// own successor outside this sub-DAG) never leads to p.Sink.
			return False()
		}
		if e, ok := memo[v]; ok {
			return e
		}
		edges := g.Edges[v]
		e := IteExpr(VarExpr(v), build(edges[0].To), build(edges[1].To))
		memo[v] = e
		return e
	}

	predCount := make(map[graph.VertexID]int)
	for v := range p.Interior {
		for _, e := range g.Edges[v] {
			if p.Interior[e.To] {
				predCount[e.To]++
			}
		}
	}

	var sources []graph.VertexID
	for v := range p.Interior {
		if predCount[v] == 0 {
			sources = append(sources, v)
		}
	}
	sort.Slice(sources, func(i, j int) bool { return sources[i] < sources[j] })

	if len(sources) == 0 {
		return True()
	}

	parts := make([]*Expr, 0, len(sources))
	for _, s := range sources {
		parts = append(parts, build(s))
	}
	return OrExpr(parts...)
}
