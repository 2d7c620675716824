package ir

import "github.com/slang-lang/slang/token"

type InstKind int

const (
	IAssign InstKind = iota
	ILoop
)

// Instruction is either an assignment of an expression to a local
// variable or a bounded loop over an inner block.
type Instruction struct {
	Kind InstKind

	// IAssign
	LVar int
	RHS  *Expr

	// ILoop
	IdxVar int
	Length int
	Body   *BasicBlock
}

type TermKind int

const (
	TermNone TermKind = iota
	TermGoto
	TermBranch
	TermReturn
	TermEnd
)

// BasicBlock is a straight-line instruction sequence with exactly one
// terminator. A block terminated by TermReturn has no successors.
type BasicBlock struct {
	ID    int
	Insts []Instruction

	Term TermKind

	// TermGoto
	Target *BasicBlock

	// TermBranch
	Cond       *Expr
	Then, Else *BasicBlock

	// TermReturn
	Ret *Expr
}

// CFG is the entry block plus everything reachable from it. Structured
// control flow only: the blocks form a DAG rooted at the entry.
type CFG struct {
	Entry  *BasicBlock
	Source *token.Source
}
