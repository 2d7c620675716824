// Package parse turns slang source into a control-flow graph of basic
// blocks plus the symbol tables of the compilation unit.
package parse

import (
	"fmt"

	"github.com/slang-lang/slang/debug"
	"github.com/slang-lang/slang/ir"
	"github.com/slang-lang/slang/token"
)

// parser carries the per-compilation-unit counters and tables; nothing
// here is global.
type parser struct {
	lex  *token.Lexer
	src  *token.Source
	tabs *Tables

	nextBlockID int
	nextLVar    int
	nextIdxVar  int

	// index variables bound by an enclosing for at the current parse
	// position
	activeIdx map[string]bool
}

// Parse lexes and parses one source file. It returns the CFG rooted at
// the is_sat function entry and the symbol tables built along the way.
func Parse(data []byte) (*ir.CFG, *Tables, error) {
	src := token.NewSource(data)
	p := &parser{
		lex:       token.NewLexer(src),
		src:       src,
		tabs:      newTables(),
		activeIdx: map[string]bool{},
	}
	if err := p.next(); err != nil {
		return nil, nil, err
	}

	var entry *ir.BasicBlock
	for {
		tok := p.peek()
		if tok.Kind == token.TEof {
			break
		}
		switch tok.Kind {
		case token.TFunction:
			if entry != nil {
				return nil, nil, p.errf("expected one function but found another here")
			}
			bb, err := p.parseFunction()
			if err != nil {
				return nil, nil, err
			}
			entry = bb
		case token.TProperty:
			if err := p.parseProperty(); err != nil {
				return nil, nil, err
			}
		case token.TGrid:
			if err := p.parseGrid(); err != nil {
				return nil, nil, err
			}
		default:
			return nil, nil, p.errf("expected declaration but got %s", tok.Kind)
		}
	}
	if entry == nil {
		return nil, nil, p.errf("expected a function named 'is_sat'")
	}
	return &ir.CFG{Entry: entry, Source: src}, p.tabs, nil
}

func (p *parser) peek() *token.Token {
	return p.lex.Peek()
}

func (p *parser) next() error {
	tok, err := p.lex.Next()
	if err != nil {
		return err
	}
	if debug.Tokens() {
		debug.Logf("token %s\n", tok.Info())
	}
	return nil
}

// expect consumes the current token, which must be of the given kind.
func (p *parser) expect(kind token.Kind) (token.Token, error) {
	tok := *p.peek()
	if tok.Kind != kind {
		return tok, p.errf("expected %s but got %s", kind, tok.Kind)
	}
	return tok, p.next()
}

func (p *parser) text(tok *token.Token) string {
	return p.src.Text(tok.Span)
}

func (p *parser) errf(format string, args ...any) error {
	return fmt.Errorf("line %d: %w: %s", p.peek().Line, ErrParse, fmt.Sprintf(format, args...))
}

func (p *parser) newBlock() *ir.BasicBlock {
	bb := &ir.BasicBlock{ID: p.nextBlockID}
	p.nextBlockID++
	return bb
}

// parseProperty parses `property NAME { v0 v1 ... }`.
func (p *parser) parseProperty() error {
	if err := p.next(); err != nil { // property
		return err
	}
	nameTok, err := p.expect(token.TIdent)
	if err != nil {
		return err
	}
	name := p.text(&nameTok)
	if _, ok := p.tabs.PropertyIDs[name]; ok {
		return p.errf("duplicate property name %s", name)
	}
	prop := &Property{Name: name}
	if _, err := p.expect(token.TLCurl); err != nil {
		return err
	}
	for p.peek().Kind != token.TRCurl {
		vTok, err := p.expect(token.TIdent)
		if err != nil {
			return p.errf("expected another name in value list")
		}
		prop.Values = append(prop.Values, p.text(&vTok))
	}
	if err := p.next(); err != nil { // }
		return err
	}
	p.tabs.PropertyIDs[name] = len(p.tabs.Properties)
	p.tabs.Properties = append(p.tabs.Properties, prop)
	return nil
}

// parseGrid parses `grid NAME [d0] [d1] ...`. A dimension is a
// positive integer literal or a property name, whose size is the
// property's value count.
func (p *parser) parseGrid() error {
	if err := p.next(); err != nil { // grid
		return err
	}
	nameTok, err := p.expect(token.TIdent)
	if err != nil {
		return p.errf("expected name for grid")
	}
	name := p.text(&nameTok)
	if _, ok := p.tabs.Grids[name]; ok {
		return p.errf("found duplicate grid definition for %s", name)
	}

	grid := &Grid{Name: name, Start: p.tabs.VarCount}
	for p.peek().Kind == token.TLSquare {
		if err := p.next(); err != nil { // [
			return err
		}
		dim := 0
		switch p.peek().Kind {
		case token.TIntlit:
			dim = p.peek().Int
			if dim <= 0 {
				return p.errf("expected grid dimension to be positive")
			}
		case token.TIdent:
			propName := p.text(p.peek())
			id, ok := p.tabs.PropertyIDs[propName]
			if !ok {
				return p.errf("unknown property %s in grid dimension", propName)
			}
			dim = len(p.tabs.Properties[id].Values)
		default:
			return p.errf("expected integer literal for grid dimensions")
		}
		if err := p.next(); err != nil { // dim
			return err
		}
		if _, err := p.expect(token.TRSquare); err != nil {
			return p.errf("expected ] for grid dimensions")
		}
		grid.Dims = append(grid.Dims, dim)
	}
	if len(grid.Dims) == 0 {
		return p.errf("expected grid to have at least one dimension")
	}

	p.tabs.Grids[name] = grid
	p.tabs.VarCount += grid.Size()
	if debug.Parse() {
		debug.Logf("created grid %s with %d variables\n", name, grid.Size())
	}
	return nil
}

// parseFunction parses `function is_sat { ... }`. The outer block must
// terminate in a return.
func (p *parser) parseFunction() (*ir.BasicBlock, error) {
	if err := p.next(); err != nil { // function
		return nil, err
	}
	nameTok, err := p.expect(token.TIdent)
	if err != nil {
		return nil, err
	}
	if p.text(&nameTok) != "is_sat" {
		return nil, p.errf("expected function name to be 'is_sat'")
	}
	if _, err := p.expect(token.TLCurl); err != nil {
		return nil, p.errf("expected { to define function body")
	}

	entry := p.newBlock()
	exit, err := p.parseStmts(entry)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.TRCurl); err != nil {
		return nil, err
	}
	if exit.Term != ir.TermReturn {
		return nil, p.errf("expected function return at end as safeguard")
	}
	return entry, nil
}

// parseStmts parses statements into cur until the closing brace, which
// is left unconsumed. It returns the block parsing ended in, which
// differs from cur when an if statement switched to its exit block.
func (p *parser) parseStmts(cur *ir.BasicBlock) (*ir.BasicBlock, error) {
	for {
		tok := p.peek()
		if tok.Kind == token.TRCurl {
			return cur, nil
		}
		if tok.Kind == token.TEof {
			return nil, p.errf("expected } before end of file")
		}
		if cur.Term == ir.TermReturn {
			return nil, p.errf("statement after return")
		}
		switch tok.Kind {
		case token.TIdent:
			if err := p.parseAssign(cur); err != nil {
				return nil, err
			}
		case token.TIf:
			exit, err := p.parseIf(cur)
			if err != nil {
				return nil, err
			}
			cur = exit
		case token.TFor:
			if err := p.parseFor(cur); err != nil {
				return nil, err
			}
		case token.TReturn:
			if err := p.next(); err != nil { // return
				return nil, err
			}
			expr, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			cur.Term = ir.TermReturn
			cur.Ret = expr
		default:
			return nil, p.errf("expected statement but got %s", tok.Kind)
		}
	}
}

// parseAssign parses `ident = expr`. The first assignment to a name
// allocates its local variable id; later assignments reuse it.
func (p *parser) parseAssign(cur *ir.BasicBlock) error {
	name := p.text(p.peek())
	if err := p.next(); err != nil { // ident
		return err
	}
	if p.peek().Kind != token.TAssign {
		return p.errf("expected '=' after identifier but found %s instead", p.peek().Kind)
	}
	if err := p.next(); err != nil { // =
		return err
	}
	rhs, err := p.parseExpression()
	if err != nil {
		return err
	}
	id, ok := p.tabs.Locals[name]
	if !ok {
		id = p.nextLVar
		p.nextLVar++
		p.tabs.Locals[name] = id
	}
	cur.Insts = append(cur.Insts, ir.Instruction{Kind: ir.IAssign, LVar: id, RHS: rhs})
	return nil
}

// parseIf wires `if expr { ... } [else { ... }]` as a branch
// terminator on cur plus a fresh exit block, and returns the exit
// block parsing continues in.
func (p *parser) parseIf(cur *ir.BasicBlock) (*ir.BasicBlock, error) {
	if err := p.next(); err != nil { // if
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	thenBB := p.newBlock()
	exitBB := p.newBlock()
	if _, err := p.expect(token.TLCurl); err != nil {
		return nil, err
	}
	thenExit, err := p.parseStmts(thenBB)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.TRCurl); err != nil {
		return nil, err
	}
	if thenExit.Term != ir.TermReturn {
		thenExit.Term = ir.TermGoto
		thenExit.Target = exitBB
	}

	elseTarget := exitBB
	if p.peek().Kind == token.TElse {
		if err := p.next(); err != nil { // else
			return nil, err
		}
		elseBB := p.newBlock()
		if _, err := p.expect(token.TLCurl); err != nil {
			return nil, err
		}
		elseExit, err := p.parseStmts(elseBB)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.TRCurl); err != nil {
			return nil, err
		}
		if elseExit.Term != ir.TermReturn {
			elseExit.Term = ir.TermGoto
			elseExit.Target = exitBB
		}
		elseTarget = elseBB
	}

	cur.Term = ir.TermBranch
	cur.Cond = cond
	cur.Then = thenBB
	cur.Else = elseTarget
	return exitBB, nil
}

// parseFor parses `for ident in INTLIT { ... }` into a loop
// instruction referencing a fresh body block.
func (p *parser) parseFor(cur *ir.BasicBlock) error {
	if err := p.next(); err != nil { // for
		return err
	}
	nameTok, err := p.expect(token.TIdent)
	if err != nil {
		return p.errf("expected loop index name")
	}
	name := p.text(&nameTok)
	id, ok := p.tabs.IndexVars[name]
	if !ok {
		id = p.nextIdxVar
		p.nextIdxVar++
		p.tabs.IndexVars[name] = id
	}
	if _, err := p.expect(token.TIn); err != nil {
		return err
	}
	lenTok, err := p.expect(token.TIntlit)
	if err != nil {
		return p.errf("expected integer literal for loop length")
	}
	if lenTok.Int <= 0 {
		return p.errf("expected loop length to be positive")
	}

	body := p.newBlock()
	if _, err := p.expect(token.TLCurl); err != nil {
		return err
	}
	wasActive := p.activeIdx[name]
	p.activeIdx[name] = true
	bodyExit, err := p.parseStmts(body)
	p.activeIdx[name] = wasActive
	if err != nil {
		return err
	}
	if _, err := p.expect(token.TRCurl); err != nil {
		return err
	}
	if bodyExit.Term == ir.TermNone {
		bodyExit.Term = ir.TermEnd
	}

	cur.Insts = append(cur.Insts, ir.Instruction{
		Kind:   ir.ILoop,
		IdxVar: id,
		Length: lenTok.Int,
		Body:   body,
	})
	return nil
}

// parseExpression parses binary && and || at equal precedence,
// left-associative.
func (p *parser) parseExpression() (*ir.Expr, error) {
	operand, err := p.parseOperand()
	if err != nil {
		return nil, err
	}
	return p.parseOperator(operand, 0)
}

func (p *parser) parseOperator(left *ir.Expr, leftPrec int) (*ir.Expr, error) {
	for {
		rightPrec := 0
		kind := ir.EAnd
		switch p.peek().Kind {
		case token.TAnd:
			kind = ir.EAnd
			rightPrec = 1
		case token.TOr:
			kind = ir.EOr
			rightPrec = 1
		}
		if leftPrec >= rightPrec {
			return left, nil
		}
		if err := p.next(); err != nil { // binary operator
			return nil, err
		}
		operand, err := p.parseOperand()
		if err != nil {
			return nil, err
		}
		right, err := p.parseOperator(operand, rightPrec)
		if err != nil {
			return nil, err
		}
		left = &ir.Expr{Kind: kind, Left: left, Right: right}
	}
}

func (p *parser) parseOperand() (*ir.Expr, error) {
	switch p.peek().Kind {
	case token.TFalse:
		if err := p.next(); err != nil {
			return nil, err
		}
		return &ir.Expr{Kind: ir.EFalse}, nil
	case token.TTrue:
		if err := p.next(); err != nil {
			return nil, err
		}
		return &ir.Expr{Kind: ir.ETrue}, nil
	case token.TNot:
		if err := p.next(); err != nil {
			return nil, err
		}
		inner, err := p.parseOperand()
		if err != nil {
			return nil, err
		}
		return &ir.Expr{Kind: ir.ENot, Inner: inner}, nil
	case token.TLParen:
		if err := p.next(); err != nil {
			return nil, err
		}
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.TRParen); err != nil {
			return nil, err
		}
		return expr, nil
	case token.TIdent:
		return p.parseIdentExpr()
	default:
		return nil, p.errf("unexpected expression operand parsing")
	}
}

// parseIdentExpr disambiguates between a grid reference and a local
// variable reference: an identifier is a grid reference iff it is
// followed by [.
func (p *parser) parseIdentExpr() (*ir.Expr, error) {
	name := p.text(p.peek())
	if err := p.next(); err != nil { // ident
		return nil, err
	}
	if p.peek().Kind != token.TLSquare {
		id, ok := p.tabs.Locals[name]
		if !ok {
			return nil, p.errf("unknown local variable %s", name)
		}
		return &ir.Expr{Kind: ir.ELVar, LVar: id}, nil
	}

	grid, ok := p.tabs.Grids[name]
	if !ok {
		return nil, p.errf("unknown grid name %s", name)
	}

	expr := &ir.Expr{Kind: ir.EGridRef, GridStart: grid.Start}
	stride := 1
	for i, dim := range grid.Dims {
		if p.peek().Kind != token.TLSquare {
			return nil, p.errf("grid %s expects %d dimensions but got %d", name, len(grid.Dims), i)
		}
		if err := p.next(); err != nil { // [
			return nil, err
		}
		idx := &ir.Expr{Kind: ir.EIndex, DimSize: stride, Inner: expr}
		if err := p.parseIndex(idx, dim); err != nil {
			return nil, err
		}
		if _, err := p.expect(token.TRSquare); err != nil {
			return nil, err
		}
		expr = idx
		stride *= dim
	}
	if p.peek().Kind == token.TLSquare {
		return nil, p.errf("grid %s expects only %d dimensions", name, len(grid.Dims))
	}
	return expr, nil
}

// parseIndex fills one dimensional step: an integer literal (bounds
// checked), a property value `prop.value`, or a bound index variable.
func (p *parser) parseIndex(idx *ir.Expr, dim int) error {
	switch p.peek().Kind {
	case token.TIntlit:
		v := p.peek().Int
		if v < 0 || v >= dim {
			return p.errf("index %d out of bounds for dimension of size %d", v, dim)
		}
		idx.IsConst = true
		idx.Const = v
		return p.next()
	case token.TIdent:
		name := p.text(p.peek())
		if err := p.next(); err != nil { // ident
			return err
		}
		if p.peek().Kind != token.TDot {
			if !p.activeIdx[name] {
				return p.errf("unknown index variable %s", name)
			}
			idx.IdxVar = p.tabs.IndexVars[name]
			return nil
		}
		if err := p.next(); err != nil { // .
			return err
		}
		valTok, err := p.expect(token.TIdent)
		if err != nil {
			return p.errf("expected property value name after .")
		}
		propID, ok := p.tabs.PropertyIDs[name]
		if !ok {
			return p.errf("unknown property %s", name)
		}
		prop := p.tabs.Properties[propID]
		valName := p.text(&valTok)
		vi := prop.ValueIndex(valName)
		if vi < 0 {
			return p.errf("unknown value %s in property %s", valName, name)
		}
		idx.IsConst = true
		idx.Const = vi
		return nil
	default:
		return p.errf("expected index but got %s", p.peek().Kind)
	}
}
