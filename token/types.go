package token

import "fmt"

type Kind int

const (
	TErr Kind = iota
	TEof
	TIdent
	TIntlit
	TAssign
	TNot
	TAnd
	TOr
	TLCurl
	TRCurl
	TLParen
	TRParen
	TLSquare
	TRSquare
	TDot
	TFalse
	TTrue
	TGrid
	TProperty
	TFunction
	TIf
	TElse
	TFor
	TIn
	TReturn
)

func (k Kind) String() string {
	return map[Kind]string{
		TErr:      "'error'",
		TEof:      "'end of file'",
		TIdent:    "'identifier'",
		TIntlit:   "'intlit'",
		TAssign:   "=",
		TNot:      "!",
		TAnd:      "&&",
		TOr:       "||",
		TLCurl:    "{",
		TRCurl:    "}",
		TLParen:   "(",
		TRParen:   ")",
		TLSquare:  "[",
		TRSquare:  "]",
		TDot:      ".",
		TFalse:    "false",
		TTrue:     "true",
		TGrid:     "grid",
		TProperty: "property",
		TFunction: "function",
		TIf:       "if",
		TElse:     "else",
		TFor:      "for",
		TIn:       "in",
		TReturn:   "return",
	}[k]
}

// keywords are identifiers that match a keyword spelling exactly.
var keywords = map[string]Kind{
	"false":    TFalse,
	"true":     TTrue,
	"grid":     TGrid,
	"property": TProperty,
	"function": TFunction,
	"if":       TIf,
	"else":     TElse,
	"for":      TFor,
	"in":       TIn,
	"return":   TReturn,
}

// Span references a lexeme in the source buffer by offset and length.
type Span struct {
	Start int
	Len   int
}

type Token struct {
	Kind Kind
	Line int
	Span Span

	// Int carries the decoded value of a TIntlit token.
	Int int
}

func (t *Token) Info() string {
	return fmt.Sprintf("%s line %d", t.Kind, t.Line)
}
