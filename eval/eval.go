// Package eval symbolically evaluates a CFG into one propositional
// formula, unrolling loops by their literal bounds and resolving local
// variables by lexical scope.
package eval

import (
	"fmt"

	"github.com/slang-lang/slang/debug"
	"github.com/slang-lang/slang/ir"
	"github.com/slang-lang/slang/sat"
)

type localBinding struct {
	lvar int
	rhs  *ir.Expr
}

type indexBinding struct {
	id    int
	value int
}

// scope is one frame of the lexical scope stack. Local bindings are
// append-only; later pairs shadow earlier ones, so lookups search from
// the tail. Index bindings are mutated in place during unrolling.
type scope struct {
	parent  *scope
	locals  []localBinding
	indices []indexBinding
}

// lookupLocal returns the expression bound to a local variable,
// searching the frame tail-first and then the parent chain.
func (s *scope) lookupLocal(id int) *ir.Expr {
	if s == nil {
		return nil
	}
	for i := len(s.locals) - 1; i >= 0; i-- {
		if s.locals[i].lvar == id {
			return s.locals[i].rhs
		}
	}
	return s.parent.lookupLocal(id)
}

// indexValue returns the current value of an index variable. With
// increment set it bumps the binding in its owning frame after reading
// it. Re-entered loops bind the same id again, so the search is
// tail-first to find the freshest binding.
func (s *scope) indexValue(id int, increment bool) (int, bool) {
	if s == nil {
		return 0, false
	}
	for i := len(s.indices) - 1; i >= 0; i-- {
		if s.indices[i].id == id {
			old := s.indices[i].value
			if increment {
				s.indices[i].value++
			}
			return old, true
		}
	}
	return s.parent.indexValue(id, increment)
}

// Translate folds the CFG into a single formula over grid-derived
// literals.
func Translate(cfg *ir.CFG) (*sat.Expr, error) {
	root := &scope{}
	return translateBlock(root, cfg.Entry)
}

func translateBlock(sc *scope, bb *ir.BasicBlock) (*sat.Expr, error) {
	stmtResult := sat.True

	for i := range bb.Insts {
		inst := &bb.Insts[i]
		switch inst.Kind {
		case ir.IAssign:
			sc.locals = append(sc.locals, localBinding{lvar: inst.LVar, rhs: inst.RHS})
		case ir.ILoop:
			// A loop is existential choice over the index: the
			// iteration formulas are or-joined and the result
			// and-joined into the surrounding block.
			sc.indices = append(sc.indices, indexBinding{id: inst.IdxVar})
			loop, err := translateBlock(sc, inst.Body)
			if err != nil {
				return nil, err
			}
			for it := 1; it < inst.Length; it++ {
				sc.indexValue(inst.IdxVar, true)
				iter, err := translateBlock(sc, inst.Body)
				if err != nil {
					return nil, err
				}
				loop = sat.Or(loop, iter)
			}
			stmtResult = sat.And(stmtResult, loop)
		default:
			return nil, fmt.Errorf("%w: unknown instruction kind %d", errInternal, inst.Kind)
		}
	}

	var termResult *sat.Expr
	var err error
	switch bb.Term {
	case ir.TermGoto:
		termResult, err = translateBlock(sc, bb.Target)
	case ir.TermBranch:
		// Each arm is evaluated in its own child frame so a binding
		// made on one path is invisible on the other. The arm's frame
		// stays live through its goto into the join block.
		var cond, thenSat, elseSat *sat.Expr
		cond, err = translateExpr(sc, bb.Cond)
		if err != nil {
			return nil, err
		}
		thenSat, err = translateBlock(&scope{parent: sc}, bb.Then)
		if err != nil {
			return nil, err
		}
		elseSat, err = translateBlock(&scope{parent: sc}, bb.Else)
		if err != nil {
			return nil, err
		}
		termResult = sat.Or(sat.And(cond, thenSat), sat.And(sat.Not(cond), elseSat))
	case ir.TermReturn:
		termResult, err = translateExpr(sc, bb.Ret)
	case ir.TermEnd:
		termResult = sat.True
	default:
		return nil, fmt.Errorf("%w: block bb%d has no terminator", errInternal, bb.ID)
	}
	if err != nil {
		return nil, err
	}

	result := sat.And(stmtResult, termResult)
	if debug.Eval() {
		debug.Logf("bb%d => %s\n", bb.ID, result)
	}
	return result, nil
}

func translateExpr(sc *scope, e *ir.Expr) (*sat.Expr, error) {
	switch e.Kind {
	case ir.EFalse:
		return sat.False, nil
	case ir.ETrue:
		return sat.True, nil
	case ir.ELVar:
		rhs := sc.lookupLocal(e.LVar)
		if rhs == nil {
			return nil, fmt.Errorf("%w: unbound local variable lv%d", ErrEval, e.LVar)
		}
		return translateExpr(sc, rhs)
	case ir.ENot:
		inner, err := translateExpr(sc, e.Inner)
		if err != nil {
			return nil, err
		}
		return sat.Not(inner), nil
	case ir.EAnd, ir.EOr:
		left, err := translateExpr(sc, e.Left)
		if err != nil {
			return nil, err
		}
		right, err := translateExpr(sc, e.Right)
		if err != nil {
			return nil, err
		}
		if e.Kind == ir.EAnd {
			return sat.And(left, right), nil
		}
		return sat.Or(left, right), nil
	case ir.EIndex:
		// DIMACS reserves 0, so the zero-based variable id becomes a
		// one-based literal.
		v, err := flatVar(sc, 0, e)
		if err != nil {
			return nil, err
		}
		return sat.Literal(v + 1), nil
	default:
		return nil, fmt.Errorf("%w: cannot translate %s expression", errInternal, e.Kind)
	}
}

// flatVar walks an index chain down to its grid reference,
// accumulating index*stride into the grid's start variable.
func flatVar(sc *scope, acc int, e *ir.Expr) (int, error) {
	switch e.Kind {
	case ir.EGridRef:
		return acc + e.GridStart, nil
	case ir.EIndex:
		if e.IsConst {
			acc += e.Const * e.DimSize
		} else {
			v, ok := sc.indexValue(e.IdxVar, false)
			if !ok {
				return 0, fmt.Errorf("%w: unbound index variable i%d", ErrEval, e.IdxVar)
			}
			acc += v * e.DimSize
		}
		return flatVar(sc, acc, e.Inner)
	default:
		return 0, fmt.Errorf("%w: cannot flatten %s expression", errInternal, e.Kind)
	}
}
