package graph

import "sort"

// TopoOrder returns the graph's interior vertices sorted ascending by node
// index. This is a valid parents-before-children topological order because
// match/unmatch offsets are forward references into the node array
// (spec.md §3, §5): no hand-rolled Kahn's-algorithm queue is needed since
// the format's own forward-reference invariant already gives a total order.
func (g *Graph) TopoOrder() []VertexID {
	out := append([]VertexID(nil), g.Interior...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ReverseTopoOrder returns every vertex (interior and sink) the graph
// discovered, ordered so that every vertex is visited after both of its
// children — exactly the order package formula needs to build expr
// bottom-up (spec.md §4.8: "for each vertex in reverse topological order").
func (g *Graph) ReverseTopoOrder() []VertexID {
	all := make([]VertexID, 0, len(g.Interior)+len(g.Sinks))
	all = append(all, g.Interior...)
	for s := range g.Sinks {
		all = append(all, s)
	}
	sort.Slice(all, func(i, j int) bool { return all[i] > all[j] })
	return all
}
