package token

// Source is an immutable source buffer. Lexemes reference it by span so
// that tokens and diagnostics never copy source text.
type Source struct {
	data []byte
}

func NewSource(data []byte) *Source {
	return &Source{data: data}
}

func (s *Source) Len() int {
	return len(s.data)
}

func (s *Source) At(i int) byte {
	if i >= len(s.data) {
		return 0
	}
	return s.data[i]
}

// Text returns the lexeme a span refers to.
func (s *Source) Text(sp Span) string {
	return string(s.data[sp.Start : sp.Start+sp.Len])
}
