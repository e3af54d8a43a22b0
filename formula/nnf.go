package formula

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// ToNNF eliminates every Ite node (ite(c,t,f) = (c∧t)∨(¬c∧f)) and pushes
// all negation down to literals, always running to syntactic completion —
// this is the "syntactic NNF" spec.md §4.8 falls back to when a deeper
// simplification pass would exceed its budget.
func ToNNF(e *Expr) *Expr {
	return nnf(e, false)
}

func nnf(e *Expr, negate bool) *Expr {
	switch e.Kind {
	case KindTrue:
		if negate {
			return False()
		}
		return True()
	case KindFalse:
		if negate {
			return True()
		}
		return False()
	case KindVar:
		if negate {
			return NotExpr(e)
		}
		return e
	case KindNot:
		return nnf(e.Children[0], !negate)
	case KindAnd:
		kids := make([]*Expr, len(e.Children))
		for i, c := range e.Children {
			kids[i] = nnf(c, negate)
		}
		if negate {
			return OrExpr(kids...)
		}
		return AndExpr(kids...)
	case KindOr:
		kids := make([]*Expr, len(e.Children))
		for i, c := range e.Children {
			kids[i] = nnf(c, negate)
		}
		if negate {
			return AndExpr(kids...)
		}
		return OrExpr(kids...)
	case KindIte:
		c, t, f := e.Children[0], e.Children[1], e.Children[2]
		expanded := OrExpr(AndExpr(c, t), AndExpr(NotExpr(c), f))
		return nnf(expanded, negate)
	}
	return e
}

// Simplifier performs a best-effort reduction on top of an already-NNF
// formula. spec.md §4.8 describes this step as pluggable against an
// external SAT/SMT helper; none of the example repos in this corpus
// vendor one, so the default implementation below is purely syntactic.
type Simplifier interface {
	Simplify(e *Expr) *Expr
}

// NNFSimplifier dedups repeated children, absorbs True/False, and
// collapses double negation, stopping once a pass makes no further
// change or the Budget/MaxSteps bound is hit. Budget <= 0 or MaxSteps <=
// 0 disables the corresponding limit.
type NNFSimplifier struct {
	Budget   time.Duration
	MaxSteps int
}

func (s *NNFSimplifier) Simplify(e *Expr) *Expr {
	start := time.Now()
	cur := e
	steps := 0
	for {
		if s.Budget > 0 && time.Since(start) > s.Budget {
			return cur
		}
		if s.MaxSteps > 0 && steps >= s.MaxSteps {
			return cur
		}
		next := simplifyOnce(cur)
		if exprKey(next) == exprKey(cur) {
			return next
		}
		cur = next
		steps++
	}
}

func simplifyOnce(e *Expr) *Expr {
	switch e.Kind {
	case KindTrue, KindFalse, KindVar:
		return e

	case KindNot:
		c := simplifyOnce(e.Children[0])
		if c.Kind == KindNot {
			return c.Children[0]
		}
		return NotExpr(c)

	case KindAnd:
		var kids []*Expr
		seen := make(map[string]bool)
		for _, child := range e.Children {
			c := simplifyOnce(child)
			if c.Kind == KindFalse {
				return False()
			}
			if c.Kind == KindTrue {
				continue
			}
			k := exprKey(c)
			if seen[k] {
				continue
			}
			seen[k] = true
			kids = append(kids, c)
		}
		if len(kids) == 0 {
			return True()
		}
		return AndExpr(kids...)

	case KindOr:
		var kids []*Expr
		seen := make(map[string]bool)
		for _, child := range e.Children {
			c := simplifyOnce(child)
			if c.Kind == KindTrue {
				return True()
			}
			if c.Kind == KindFalse {
				continue
			}
			k := exprKey(c)
			if seen[k] {
				continue
			}
			seen[k] = true
			kids = append(kids, c)
		}
		if len(kids) == 0 {
			return False()
		}
		return OrExpr(kids...)

	case KindIte:
		return nnf(e, false)
	}
	return e
}

// exprKey is a canonical structural key used to detect duplicate
// subexpressions and fixed points; And/Or children are order-independent.
func exprKey(e *Expr) string {
	switch e.Kind {
	case KindTrue:
		return "T"
	case KindFalse:
		return "F"
	case KindVar:
		return "v" + strconv.Itoa(int(e.Var))
	case KindNot:
		return "!" + exprKey(e.Children[0])
	case KindAnd:
		return joinSorted("&", e.Children)
	case KindOr:
		return joinSorted("|", e.Children)
	case KindIte:
		return "ite(" + exprKey(e.Children[0]) + "," + exprKey(e.Children[1]) + "," + exprKey(e.Children[2]) + ")"
	}
	return ""
}

func joinSorted(sep string, children []*Expr) string {
	parts := make([]string, len(children))
	for i, c := range children {
		parts[i] = exprKey(c)
	}
	sort.Strings(parts)
	return "(" + strings.Join(parts, sep) + ")"
}
