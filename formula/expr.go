// Package formula turns a partitioned per-operation sub-DAG into an
// if-then-else boolean formula, reduces it to negation-normal form, and
// pretty-prints it as SBPL require-all/require-any/require-not text
// (spec.md §4.8, component C8).
package formula

import "github.com/sbplx/sbplx/graph"

// Kind tags an Expr node.
type Kind int

const (
	KindTrue Kind = iota
	KindFalse
	KindAnd
	KindOr
	KindNot
	KindVar
	KindIte // intermediate form only; eliminated by ToNNF
)

// Expr is a closed boolean-formula sum type. And/Or take any number of
// Children; Not and Ite use a fixed arity (1 and 3 respectively); Var
// carries the non-terminal node id it stands for.
type Expr struct {
	Kind     Kind
	Children []*Expr
	Var      graph.VertexID
}

func True() *Expr  { return &Expr{Kind: KindTrue} }
func False() *Expr { return &Expr{Kind: KindFalse} }

func VarExpr(id graph.VertexID) *Expr { return &Expr{Kind: KindVar, Var: id} }

func NotExpr(e *Expr) *Expr { return &Expr{Kind: KindNot, Children: []*Expr{e}} }

func IteExpr(cond, then, els *Expr) *Expr {
	return &Expr{Kind: KindIte, Children: []*Expr{cond, then, els}}
}

// AndExpr builds a conjunction, collapsing a single child to itself and
// flattening nested conjunctions eagerly.
func AndExpr(children ...*Expr) *Expr {
	return flatten(KindAnd, children)
}

// OrExpr builds a disjunction, collapsing a single child to itself and
// flattening nested disjunctions eagerly.
func OrExpr(children ...*Expr) *Expr {
	return flatten(KindOr, children)
}

func flatten(kind Kind, children []*Expr) *Expr {
	var out []*Expr
	for _, c := range children {
		if c == nil {
			continue
		}
		if c.Kind == kind {
			out = append(out, c.Children...)
			continue
		}
		out = append(out, c)
	}
	if len(out) == 1 {
		return out[0]
	}
	return &Expr{Kind: kind, Children: out}
}
