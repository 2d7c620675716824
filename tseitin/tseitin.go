// Package tseitin converts a propositional formula into an
// equisatisfiable CNF by introducing a fresh proposition per
// subformula and asserting its biconditional.
package tseitin

import (
	"fmt"

	"github.com/slang-lang/slang/debug"
	"github.com/slang-lang/slang/sat"
)

// key identifies a connective over already-assigned child propositions.
// Child literal ids are >= 1, so 0 marks the absent left operand of a
// negation.
type key struct {
	op          sat.Op
	left, right int
}

type entry struct {
	k    key
	prop int
}

type transform struct {
	consed map[key]int
	// order preserves first-assignment order so clause emission is
	// deterministic.
	order []entry
	next  int
}

// ToCNF transforms the formula rooted at root. The result, whose first
// clause asserts the root's proposition, is satisfiable iff the
// formula is. The formula is rewritten in place: after the call every
// connective's children are plain literal nodes.
//
// The constant sentinels are handled up front; the algebra guarantees
// they never occur below a connective.
func ToCNF(root *sat.Expr) sat.CNF {
	switch {
	case root == sat.True:
		return sat.CNF{{1, -1}}
	case root == sat.False:
		return sat.CNF{{1}, {-1}}
	case root.IsLiteral():
		return sat.CNF{{root.Lit}}
	}

	t := &transform{
		consed: map[key]int{},
		next:   maxLit(root) + 1,
	}
	rootProp := t.assign(root)

	cnf := sat.CNF{{rootProp}}
	for _, e := range t.order {
		cnf = append(cnf, biconditional(e.k, e.prop)...)
	}
	return cnf
}

// assign returns the proposition standing for e, consing on the
// connective and the child propositions. Children are rewritten to
// literal nodes carrying their assigned ids.
func (t *transform) assign(e *sat.Expr) int {
	if e.IsLiteral() {
		return e.Lit
	}
	left := 0
	if e.Left != nil {
		left = t.assign(e.Left)
		e.Left = sat.Literal(left)
	}
	right := t.assign(e.Right)
	e.Right = sat.Literal(right)

	k := key{op: e.Op, left: left, right: right}
	if p, ok := t.consed[k]; ok {
		return p
	}
	p := t.next
	t.next++
	t.consed[k] = p
	t.order = append(t.order, entry{k: k, prop: p})
	if debug.Tseitin() {
		debug.Logf("assign %d <-> %s\n", p, e)
	}
	return p
}

// biconditional emits the clauses for p <-> phi(a, b) in the fixed
// order the emitter relies on.
func biconditional(k key, p int) []sat.Clause {
	a, b := k.left, k.right
	switch k.op {
	case sat.OpAnd:
		return []sat.Clause{{p, -a, -b}, {-p, a}, {-p, b}}
	case sat.OpOr:
		return []sat.Clause{{-p, a, b}, {p, -a}, {p, -b}}
	case sat.OpNot:
		return []sat.Clause{{p, b}, {-p, -b}}
	default:
		panic(fmt.Sprintf("tseitin: biconditional for op %d", k.op))
	}
}

// maxLit returns the largest literal id occurring in the formula.
func maxLit(e *sat.Expr) int {
	if e == nil {
		return 0
	}
	if e.IsLiteral() {
		return e.Lit
	}
	l, r := maxLit(e.Left), maxLit(e.Right)
	if l > r {
		return l
	}
	return r
}
