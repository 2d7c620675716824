// Package ir defines the typed expression and control-flow graph model
// the parser produces and the evaluator consumes.
package ir

import (
	"fmt"
	"strings"
)

type ExprKind int

const (
	EFalse ExprKind = iota
	ETrue
	ELVar
	ENot
	EAnd
	EOr
	EGridRef
	EIndex
)

func (k ExprKind) String() string {
	return map[ExprKind]string{
		EFalse:   "False",
		ETrue:    "True",
		ELVar:    "LVar",
		ENot:     "Not",
		EAnd:     "And",
		EOr:      "Or",
		EGridRef: "GridRef",
		EIndex:   "Index",
	}[k]
}

// Expr is one node of a Boolean expression. Exactly the fields for its
// kind are meaningful. An EIndex chain of Inner links always terminates
// in an EGridRef and is as deep as the grid has dimensions.
type Expr struct {
	Kind ExprKind

	// ELVar
	LVar int

	// EGridRef: first variable id allocated to the grid.
	GridStart int

	// EIndex: one dimensional step. DimSize is the stride multiplier
	// for this step. The index is either the constant Const or a
	// reference to the index variable IdxVar.
	DimSize int
	IsConst bool
	Const   int
	IdxVar  int

	// ENot and EIndex operand.
	Inner *Expr

	// EAnd, EOr operands.
	Left, Right *Expr
}

// String renders the expression the way the CFG dump does.
func (e *Expr) String() string {
	var b strings.Builder
	e.write(&b)
	return b.String()
}

func (e *Expr) write(b *strings.Builder) {
	switch e.Kind {
	case EFalse:
		b.WriteString("false")
	case ETrue:
		b.WriteString("true")
	case ELVar:
		fmt.Fprintf(b, "lv%d", e.LVar)
	case ENot:
		b.WriteString("!")
		e.Inner.write(b)
	case EAnd, EOr:
		op := " ^ "
		if e.Kind == EOr {
			op = " v "
		}
		b.WriteString("(")
		e.Left.write(b)
		b.WriteString(op)
		e.Right.write(b)
		b.WriteString(")")
	case EGridRef:
		fmt.Fprintf(b, "g%d", e.GridStart)
	case EIndex:
		e.Inner.write(b)
		if e.IsConst {
			fmt.Fprintf(b, "[%d]", e.Const)
		} else {
			fmt.Fprintf(b, "[i%d]", e.IdxVar)
		}
	}
}
