package token

import "fmt"

// Lexer is a single-pass tokenizer with one token of lookahead.
// Next advances past one token and returns it; Peek returns the
// current token without advancing.
type Lexer struct {
	src     *Source
	index   int
	tlength int
	line    int

	tok Token
}

func NewLexer(src *Source) *Lexer {
	return &Lexer{src: src, line: 1}
}

func (l *Lexer) Source() *Source {
	return l.src
}

func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

func isLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isLetterOrUnderscore(c byte) bool {
	return isLetter(c) || c == '_'
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isDigitOrUnderscore(c byte) bool {
	return isDigit(c) || c == '_'
}

// peekChar returns the byte just past the token under construction, or
// 0 at end of input.
func (l *Lexer) peekChar() byte {
	return l.src.At(l.index + l.tlength)
}

func (l *Lexer) eof() bool {
	return l.index+l.tlength >= l.src.Len()
}

func (l *Lexer) create(kind Kind) *Token {
	l.tok = Token{
		Kind: kind,
		Line: l.line,
		Span: Span{Start: l.index, Len: l.tlength},
	}
	l.index += l.tlength
	l.tlength = 0
	return &l.tok
}

func (l *Lexer) fail(format string, args ...any) (*Token, error) {
	l.create(TErr)
	return nil, fmt.Errorf("line %d: %w: %s", l.line, ErrLex, fmt.Sprintf(format, args...))
}

// Peek returns the current token without advancing.
func (l *Lexer) Peek() *Token {
	return &l.tok
}

// Next advances past one token and returns it.
func (l *Lexer) Next() (*Token, error) {
	for !l.eof() && isWhitespace(l.peekChar()) {
		if l.peekChar() == '\n' {
			l.line++
		}
		l.index++
	}

	if l.eof() {
		l.tok = Token{Kind: TEof, Line: l.line, Span: Span{Start: l.index, Len: 0}}
		return &l.tok, nil
	}

	c := l.peekChar()
	switch c {
	case '=':
		l.tlength++
		return l.create(TAssign), nil
	case '!':
		l.tlength++
		return l.create(TNot), nil
	case '&':
		l.tlength++
		if l.peekChar() != '&' {
			return l.fail("expected && instead of &")
		}
		l.tlength++
		return l.create(TAnd), nil
	case '|':
		l.tlength++
		if l.peekChar() != '|' {
			return l.fail("expected || instead of |")
		}
		l.tlength++
		return l.create(TOr), nil
	case '{':
		l.tlength++
		return l.create(TLCurl), nil
	case '}':
		l.tlength++
		return l.create(TRCurl), nil
	case '(':
		l.tlength++
		return l.create(TLParen), nil
	case ')':
		l.tlength++
		return l.create(TRParen), nil
	case '[':
		l.tlength++
		return l.create(TLSquare), nil
	case ']':
		l.tlength++
		return l.create(TRSquare), nil
	case '.':
		l.tlength++
		return l.create(TDot), nil
	default:
		if isLetterOrUnderscore(c) {
			return l.nextKeywordOrIdent(), nil
		}
		if isDigit(c) {
			return l.nextInteger(), nil
		}
		return l.fail("unknown character %q", string(c))
	}
}

func (l *Lexer) nextKeywordOrIdent() *Token {
	for !l.eof() {
		c := l.peekChar()
		if !isLetterOrUnderscore(c) && !isDigit(c) {
			break
		}
		l.tlength++
	}
	word := l.src.Text(Span{Start: l.index, Len: l.tlength})
	if kind, ok := keywords[word]; ok {
		return l.create(kind)
	}
	return l.create(TIdent)
}

func (l *Lexer) nextInteger() *Token {
	val := 0
	for !l.eof() {
		c := l.peekChar()
		if !isDigitOrUnderscore(c) {
			break
		}
		l.tlength++
		if c != '_' {
			val = val*10 + int(c-'0')
		}
	}
	tok := l.create(TIntlit)
	tok.Int = val
	return tok
}
