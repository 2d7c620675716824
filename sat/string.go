package sat

import (
	"fmt"
	"strings"
)

// String renders the formula in prefix-free infix form: literals as
// integers, connectives parenthesized, NOT with only a right operand.
func (e *Expr) String() string {
	var b strings.Builder
	e.display(&b)
	return b.String()
}

func (e *Expr) display(b *strings.Builder) {
	if e.IsLiteral() {
		fmt.Fprintf(b, "%d", e.Lit)
		return
	}
	b.WriteString("(")
	if e.Left != nil {
		e.Left.display(b)
		b.WriteString(" ")
	}
	switch e.Op {
	case OpAnd:
		b.WriteString("AND ")
	case OpOr:
		b.WriteString("OR ")
	case OpNot:
		b.WriteString("NOT ")
	}
	if e.Right != nil {
		e.Right.display(b)
	}
	b.WriteString(")")
}
