// Package sat holds the propositional formula tree the evaluator
// produces, the identity-law constructors over it, and the clause
// types the Tseitin transform and DIMACS emitter share.
package sat

type Op int

const (
	OpLit Op = iota
	OpAnd
	OpOr
	OpNot
)

// Expr is a formula node. Literals carry Lit >= 1. For OpNot the
// operand is carried in Right with a nil Left.
type Expr struct {
	Op   Op
	Lit  int
	Left *Expr

	Right *Expr
}

// The constant sentinels are allocated once and compared by pointer
// identity. They encode truth over the reserved proposition 1:
// True is (1 v !1) and False is (1 ^ !1).
var (
	lit1    = &Expr{Op: OpLit, Lit: 1}
	notLit1 = &Expr{Op: OpNot, Right: lit1}

	True  = &Expr{Op: OpOr, Left: lit1, Right: notLit1}
	False = &Expr{Op: OpAnd, Left: lit1, Right: notLit1}
)

func Literal(v int) *Expr {
	return &Expr{Op: OpLit, Lit: v}
}

func (e *Expr) IsLiteral() bool {
	return e.Op == OpLit
}

func Not(inner *Expr) *Expr {
	if inner == False {
		return True
	}
	if inner == True {
		return False
	}
	return &Expr{Op: OpNot, Right: inner}
}

func And(left, right *Expr) *Expr {
	if left == False || right == False {
		return False
	}
	if left == True {
		return right
	}
	if right == True {
		return left
	}
	if left == right {
		return left
	}
	// Hash agrees with Equal, so a hash mismatch settles inequality
	// without walking both trees.
	if left.Hash() == right.Hash() && left.Equal(right) {
		return left
	}
	return &Expr{Op: OpAnd, Left: left, Right: right}
}

// Or short-circuits equal children by pointer identity only; unlike
// And it performs no structural comparison.
func Or(left, right *Expr) *Expr {
	if left == True || right == True {
		return True
	}
	if left == False {
		return right
	}
	if right == False {
		return left
	}
	if left == right {
		return left
	}
	return &Expr{Op: OpOr, Left: left, Right: right}
}

// Equal reports structural equality. (a v b) v c is distinct from
// a v (b v c); no associativity or commutativity is applied.
func (e *Expr) Equal(other *Expr) bool {
	if e == other {
		return true
	}
	if e == nil || other == nil {
		return false
	}
	if e.Op != other.Op || e.Lit != other.Lit {
		return false
	}
	if e.Op == OpLit {
		return true
	}
	if !e.Left.Equal(other.Left) {
		return false
	}
	return e.Right.Equal(other.Right)
}
