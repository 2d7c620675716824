// Package slang compiles slang programs, which describe Boolean
// constraint problems over grids of finite-domain variables, into
// DIMACS CNF suitable for an off-the-shelf SAT solver.
package slang

import (
	"github.com/slang-lang/slang/eval"
	"github.com/slang-lang/slang/ir"
	"github.com/slang-lang/slang/parse"
	"github.com/slang-lang/slang/sat"
	"github.com/slang-lang/slang/tseitin"
)

// Result carries every stage of one compilation: the CFG and symbol
// tables from parsing, the evaluated formula, and its CNF.
type Result struct {
	CFG     *ir.CFG
	Tables  *parse.Tables
	Formula *sat.Expr
	CNF     sat.CNF
}

// Compile runs the full pipeline on one source buffer. The first
// error aborts; no partial result is returned.
func Compile(source []byte) (*Result, error) {
	cfg, tabs, err := parse.Parse(source)
	if err != nil {
		return nil, err
	}
	formula, err := eval.Translate(cfg)
	if err != nil {
		return nil, err
	}
	return &Result{
		CFG:     cfg,
		Tables:  tabs,
		Formula: formula,
		CNF:     tseitin.ToCNF(formula),
	}, nil
}
