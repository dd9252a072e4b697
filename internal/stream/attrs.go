package stream

import (
	"maps"

	"csfix/internal/token"
)

// Attributes maps an attribute name (e.g. "visibility") to the modifier
// token that carries it.
type Attributes map[string]*token.Token

// Ordered returns the tokens of the named attributes in the given order,
// skipping absent, nil and empty ones.
func (a Attributes) Ordered(names ...string) []*token.Token {
	out := make([]*token.Token, 0, len(names))
	for _, name := range names {
		if tok := a[name]; tok != nil && tok.Text != "" {
			out = append(out, tok)
		}
	}
	return out
}

// GrabModifiersBefore collects the declaration modifiers in front of the
// member token at i and removes them from the stream.
//
// The walk goes backwards from i. Whitespace, comments and tombstones are
// skipped; a paren or brace ends the declaration; any token whose kind is in
// modifiers is recorded under its attribute name (an empty name consumes it
// without recording) and cleared together with the whitespace after it.
// Every other token stops the walk. Attributes that were not found keep the
// caller's defaults.
func (s *Stream) GrabModifiersBefore(i int, modifiers map[token.Kind]string, defaults Attributes) Attributes {
	attrs := make(Attributes, len(defaults)+len(modifiers))
	for name, tok := range defaults {
		if tok != nil {
			tok = tok.Clone()
		}
		attrs[name] = tok
	}

	for j := i - 1; s.OffsetExists(j); j-- {
		tok := s.toks[j]
		if tok.IsEmpty() || tok.IsWhitespace() || tok.IsComment() {
			continue
		}
		if tok.IsKind(token.LParen, token.RParen, token.LBrace, token.RBrace) {
			break
		}
		name, ok := modifiers[tok.Kind]
		if !ok {
			break
		}
		if name != "" {
			attrs[name] = tok.Clone()
		}
		tok.Clear()
		if next := j + 1; next < i && s.toks[next].IsWhitespace() {
			s.toks[next].Clear()
		}
	}
	return attrs
}

// ApplyAttributes inserts the given modifier tokens, each followed by a
// single space, in front of i. Nil and empty tokens are skipped. It returns
// the number of inserted tokens.
func (s *Stream) ApplyAttributes(i int, toks ...*token.Token) (int, error) {
	items := make([]*token.Token, 0, 2*len(toks))
	for _, tok := range toks {
		if tok == nil || tok.Text == "" {
			continue
		}
		items = append(items, tok.Clone(), token.New(token.Whitespace, " "))
	}
	if len(items) == 0 {
		return 0, nil
	}
	if err := s.InsertAt(i, items...); err != nil {
		return 0, err
	}
	return len(items), nil
}

// Clone copies the attribute map and its tokens.
func (a Attributes) Clone() Attributes {
	out := maps.Clone(a)
	for k, tok := range out {
		if tok != nil {
			out[k] = tok.Clone()
		}
	}
	return out
}
