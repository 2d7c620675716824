package token

import (
	"errors"
	"testing"
)

func lexAll(t *testing.T, src string) []Token {
	t.Helper()
	lex := NewLexer(NewSource([]byte(src)))
	var toks []Token
	for {
		tok, err := lex.Next()
		if err != nil {
			t.Fatalf("lex %q: %v", src, err)
		}
		toks = append(toks, *tok)
		if tok.Kind == TEof {
			return toks
		}
	}
}

func TestLexKinds(t *testing.T) {
	src := "grid G[2]\nproperty color { red blue }\nfunction is_sat { x = !G[0] && true || false return x }"
	want := []Kind{
		TGrid, TIdent, TLSquare, TIntlit, TRSquare,
		TProperty, TIdent, TLCurl, TIdent, TIdent, TRCurl,
		TFunction, TIdent, TLCurl,
		TIdent, TAssign, TNot, TIdent, TLSquare, TIntlit, TRSquare,
		TAnd, TTrue, TOr, TFalse,
		TReturn, TIdent,
		TRCurl, TEof,
	}
	toks := lexAll(t, src)
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(toks), len(want))
	}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Errorf("token %d: got %s, want %s", i, toks[i].Kind, k)
		}
	}
}

func TestLexSpans(t *testing.T) {
	src := "grid board"
	toks := lexAll(t, src)
	s := NewSource([]byte(src))
	if got := s.Text(toks[1].Span); got != "board" {
		t.Errorf("ident lexeme: got %q, want %q", got, "board")
	}
}

func TestLexIntegerUnderscores(t *testing.T) {
	toks := lexAll(t, "1_000 42 0")
	want := []int{1000, 42, 0}
	for i, w := range want {
		if toks[i].Kind != TIntlit || toks[i].Int != w {
			t.Errorf("intlit %d: got kind %s value %d, want %d", i, toks[i].Kind, toks[i].Int, w)
		}
	}
}

func TestLexLineTracking(t *testing.T) {
	toks := lexAll(t, "a\nb\r\n\tc")
	wantLines := []int{1, 2, 3}
	for i, w := range wantLines {
		if toks[i].Line != w {
			t.Errorf("token %d: got line %d, want %d", i, toks[i].Line, w)
		}
	}
}

func TestLexKeywordExact(t *testing.T) {
	toks := lexAll(t, "iffy form returns grids truei")
	for i := 0; i < 5; i++ {
		if toks[i].Kind != TIdent {
			t.Errorf("token %d: got %s, want identifier", i, toks[i].Kind)
		}
	}
}

func TestLexErrors(t *testing.T) {
	for _, src := range []string{"a & b", "a | b", "a $ b", "?"} {
		lex := NewLexer(NewSource([]byte(src)))
		var err error
		for err == nil {
			var tok *Token
			tok, err = lex.Next()
			if err == nil && tok.Kind == TEof {
				t.Fatalf("lex %q: expected error, reached eof", src)
			}
		}
		if !errors.Is(err, ErrLex) {
			t.Errorf("lex %q: error %v is not ErrLex", src, err)
		}
		if lex.Peek().Kind != TErr {
			t.Errorf("lex %q: current token is %s, want 'error'", src, lex.Peek().Kind)
		}
	}
}
