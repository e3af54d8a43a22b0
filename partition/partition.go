// Package partition splits a per-operation decision DAG into per-sink
// sub-DAGs, one per terminal, so that each sub-DAG characterizes the
// condition under which exactly one terminal decision fires (spec.md §4.7,
// component C7).
package partition

import (
	"sort"

	"github.com/sbplx/sbplx/graph"
)

// Partition is one terminal sink's isolated sub-DAG: the set of interior
// (non-terminal) vertices whose formula extraction feeds this sink.
type Partition struct {
	Sink     graph.VertexID
	Interior map[graph.VertexID]bool
}

// Compute runs the backward-partition algorithm (spec.md §4.7), grounded on
// original_source's analysis/partition.py backward_partition/compute_graph/
// compute_weight/evaluate_candidate. Unlike that source file's own is_sink
// check (which tests node TYPE 0, i.e. non-terminal — inconsistent with
// the rest of the system's "sink = terminal decision" vocabulary and with
// spec.md's own wording), sinks here are exactly graph.Graph's terminal
// vertices, ordered ascending by node index (a valid discovery order, since
// offsets are forward references — spec.md §3, §5).
func Compute(g *graph.Graph) []Partition {
	preds := buildPredecessors(g)

	allSinks := make([]graph.VertexID, 0, len(g.Sinks))
	for s := range g.Sinks {
		allSinks = append(allSinks, s)
	}
	sort.Slice(allSinks, func(i, j int) bool { return allSinks[i] < allSinks[j] })

	remaining := append([]graph.VertexID(nil), allSinks...)
	visited := make(map[graph.VertexID]bool)
	var partitions []Partition

	for len(remaining) > 0 {
		type candidate struct {
			weight  float64
			sink    graph.VertexID
			nodes   map[graph.VertexID]bool
			visited map[graph.VertexID]bool
		}
		var best *candidate

		for idx, sink := range remaining {
			for _, other := range allSinks {
				if other == sink {
					continue
				}
				nodes, newVisited := computeGraph(g, preds, sink, other, cloneSet(visited))
				weight := computeWeight(g, nodes)*1.1 + float64(idx)
				if best == nil || weight < best.weight {
					best = &candidate{weight: weight, sink: sink, nodes: nodes, visited: newVisited}
				}
			}
		}

		if best == nil {
			// Only one sink remains in the whole graph and it has no other
			// sink to guard against: the entire graph is its partition
			// (original_source's "if not candidates" fallback).
			sink := remaining[0]
			nodes := map[graph.VertexID]bool{}
			for _, v := range g.Interior {
				nodes[v] = true
			}
			nodes[sink] = true
			partitions = append(partitions, toPartition(sink, nodes))
			remaining = remaining[1:]
			continue
		}

		partitions = append(partitions, toPartition(best.sink, best.nodes))
		visited = best.visited
		remaining = removeSink(remaining, best.sink)
	}

	return partitions
}

func toPartition(sink graph.VertexID, nodes map[graph.VertexID]bool) Partition {
	interior := make(map[graph.VertexID]bool, len(nodes))
	for v := range nodes {
		if v != sink {
			interior[v] = true
		}
	}
	return Partition{Sink: sink, Interior: interior}
}

func removeSink(list []graph.VertexID, sink graph.VertexID) []graph.VertexID {
	out := make([]graph.VertexID, 0, len(list)-1)
	for _, v := range list {
		if v != sink {
			out = append(out, v)
		}
	}
	return out
}

func cloneSet(s map[graph.VertexID]bool) map[graph.VertexID]bool {
	out := make(map[graph.VertexID]bool, len(s))
	for k := range s {
		out[k] = true
	}
	return out
}

func buildPredecessors(g *graph.Graph) map[graph.VertexID][]graph.VertexID {
	preds := make(map[graph.VertexID][]graph.VertexID)
	for from, edges := range g.Edges {
		for _, e := range edges {
			preds[e.To] = append(preds[e.To], from)
		}
	}
	return preds
}

// computeGraph performs the backward traversal from sink, blocked at direct
// predecessors of otherSink (those are boundary nodes — spec.md §4.7).
func computeGraph(
	g *graph.Graph, preds map[graph.VertexID][]graph.VertexID,
	sink, otherSink graph.VertexID, visited map[graph.VertexID]bool,
) (map[graph.VertexID]bool, map[graph.VertexID]bool) {
	guards := make(map[graph.VertexID]bool)
	for _, p := range preds[otherSink] {
		guards[p] = true
	}

	subgraph := make(map[graph.VertexID]bool)
	stack := []graph.VertexID{sink}

	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[v] {
			continue
		}
		visited[v] = true
		subgraph[v] = true

		if guards[v] {
			continue
		}
		for _, p := range preds[v] {
			if !visited[p] {
				stack = append(stack, p)
			}
		}
	}

	return subgraph, visited
}

// computeWeight counts unmatch (result=false) edges whose endpoints are
// both inside the candidate subgraph, the spec.md §4.7 heuristic that
// "prefers sub-DAGs with fewer unmatch edges".
func computeWeight(g *graph.Graph, subgraph map[graph.VertexID]bool) float64 {
	count := 0
	for from := range subgraph {
		edges, ok := g.Edges[from]
		if !ok {
			continue
		}
		for _, e := range edges {
			if !e.Result && subgraph[e.To] {
				count++
			}
		}
	}
	return float64(count)
}
