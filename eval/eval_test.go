package eval

import (
	"errors"
	"testing"

	"github.com/slang-lang/slang/ir"
	"github.com/slang-lang/slang/parse"
	"github.com/slang-lang/slang/sat"
)

func translate(t *testing.T, src string) *sat.Expr {
	t.Helper()
	cfg, _, err := parse.Parse([]byte(src))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	f, err := Translate(cfg)
	if err != nil {
		t.Fatalf("translate failed: %v", err)
	}
	return f
}

func TestTranslateConstants(t *testing.T) {
	if f := translate(t, `function is_sat { return true }`); f != sat.True {
		t.Errorf("got %s, want the true sentinel", f)
	}
	if f := translate(t, `function is_sat { return false }`); f != sat.False {
		t.Errorf("got %s, want the false sentinel", f)
	}
}

// A grid cell flattens to start + sum of index*stride, one-based for
// DIMACS.
func TestTranslateGridLiteral(t *testing.T) {
	f := translate(t, "grid G[4]\nfunction is_sat { return G[1] }")
	if !f.IsLiteral() || f.Lit != 2 {
		t.Errorf("got %s, want literal 2", f)
	}
	f = translate(t, "grid G[2][3]\nfunction is_sat { return G[1][2] }")
	if !f.IsLiteral() || f.Lit != 6 {
		t.Errorf("got %s, want literal 6", f)
	}
	f = translate(t, "grid A[3]\ngrid B[2]\nfunction is_sat { return B[0] }")
	if !f.IsLiteral() || f.Lit != 4 {
		t.Errorf("got %s, want literal 4", f)
	}
}

func TestTranslatePropertyIndex(t *testing.T) {
	f := translate(t, `
property color { red blue }
grid G[2][color]
function is_sat {
	return G[0][color.blue]
}
`)
	if !f.IsLiteral() || f.Lit != 3 {
		t.Errorf("got %s, want literal 3", f)
	}
}

func TestTranslateConnectives(t *testing.T) {
	f := translate(t, "grid G[2]\nfunction is_sat { return G[0] && !G[1] }")
	if got, want := f.String(), "(1 AND (NOT 2))"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

// The constant laws fold identities away at construction, so a formula
// conjoined with true is just the formula.
func TestTranslateConstantFolding(t *testing.T) {
	f := translate(t, "grid G[2]\nfunction is_sat { return G[0] && true }")
	if !f.IsLiteral() || f.Lit != 1 {
		t.Errorf("and with true: got %s, want literal 1", f)
	}
	f = translate(t, "grid G[2]\nfunction is_sat { return false || G[0] }")
	if !f.IsLiteral() || f.Lit != 1 {
		t.Errorf("or with false: got %s, want literal 1", f)
	}
	f = translate(t, "grid G[2]\nfunction is_sat { return G[0] && false }")
	if f != sat.False {
		t.Errorf("and with false: got %s, want the false sentinel", f)
	}
}

func TestTranslateLocalChain(t *testing.T) {
	f := translate(t, `
grid G[2]
function is_sat {
	x = G[0]
	y = !x
	return y && x
}
`)
	if got, want := f.String(), "((NOT 1) AND 1)"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestTranslateAssignmentShadowing(t *testing.T) {
	f := translate(t, `
grid G[2]
function is_sat {
	x = G[0]
	x = G[1]
	return x
}
`)
	if !f.IsLiteral() || f.Lit != 2 {
		t.Errorf("got %s, want literal 2", f)
	}
}

// A branch becomes (cond ^ then) v (!cond ^ else).
func TestTranslateBranch(t *testing.T) {
	f := translate(t, `
grid G[2]
function is_sat {
	if G[0] {
		return G[1]
	}
	return G[0]
}
`)
	want := "((1 AND 2) OR ((NOT 1) AND 1))"
	if got := f.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

// A binding made inside a branch arm shadows only along that path;
// the other path keeps seeing the binding from before the branch.
func TestTranslateBranchArmIsolation(t *testing.T) {
	f := translate(t, `
grid G[2]
function is_sat {
	x = true
	if G[0] {
		x = false
	}
	return x
}
`)
	if f == sat.False {
		t.Fatal("reassignment in the then arm leaked into the else path")
	}
	if got, want := f.String(), "(NOT 1)"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestTranslateBranchArmSeesOwnBinding(t *testing.T) {
	f := translate(t, `
grid G[2]
function is_sat {
	x = true
	if G[0] {
		x = G[1]
	}
	return x
}
`)
	want := "((1 AND 2) OR (NOT 1))"
	if got := f.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

// A loop unrolls into the or-join of its iterations, the index taking
// values 0..N-1 in order.
func TestTranslateLoopUnrolls(t *testing.T) {
	f := translate(t, `
grid G[3]
function is_sat {
	for i in 3 {
		if G[i] {
		}
	}
	return true
}
`)
	want := "(((1 OR (NOT 1)) OR (2 OR (NOT 2))) OR (3 OR (NOT 3)))"
	if got := f.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestTranslateNestedLoops(t *testing.T) {
	f := translate(t, `
grid G[2][2]
function is_sat {
	for i in 2 {
		for j in 2 {
			if G[i][j] {
			}
		}
	}
	return true
}
`)
	want := "(((1 OR (NOT 1)) OR (3 OR (NOT 3))) OR ((2 OR (NOT 2)) OR (4 OR (NOT 4))))"
	if got := f.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

// An assignment made inside a loop body stays visible after the loop,
// with the index at its final value.
func TestTranslateLoopAssignVisibleAfter(t *testing.T) {
	f := translate(t, `
grid G[3]
function is_sat {
	for i in 3 {
		x = G[i]
	}
	return x
}
`)
	if !f.IsLiteral() || f.Lit != 3 {
		t.Errorf("got %s, want literal 3", f)
	}
}

func TestTranslateUnboundLocal(t *testing.T) {
	cfg := &ir.CFG{Entry: &ir.BasicBlock{
		Term: ir.TermReturn,
		Ret:  &ir.Expr{Kind: ir.ELVar, LVar: 0},
	}}
	_, err := Translate(cfg)
	if err == nil {
		t.Fatal("translate succeeded")
	}
	if !errors.Is(err, ErrEval) {
		t.Errorf("error %v does not wrap ErrEval", err)
	}
}

func TestTranslateMissingTerminator(t *testing.T) {
	cfg := &ir.CFG{Entry: &ir.BasicBlock{}}
	if _, err := Translate(cfg); err == nil {
		t.Fatal("translate succeeded on a block without a terminator")
	}
}
