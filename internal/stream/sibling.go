package stream

import "csfix/internal/token"

// Direction of a sibling search.
type Direction int

const (
	Backward Direction = -1
	Forward  Direction = 1
)

// nearest walks from i in dir, excluding i itself, and returns the first
// non-tombstone token that satisfies match.
func (s *Stream) nearest(i int, dir Direction, match func(*token.Token) bool) (int, *token.Token, bool) {
	for j := i + int(dir); s.OffsetExists(j); j += int(dir) {
		tok := s.toks[j]
		if tok.IsEmpty() {
			continue
		}
		if match(tok) {
			return j, tok, true
		}
	}
	return -1, nil, false
}

// NearestNonWhitespace finds the nearest token that is not whitespace under
// the given character set ("" means token.DefaultWhitespace).
func (s *Stream) NearestNonWhitespace(i int, dir Direction, chars string) (int, *token.Token, bool) {
	if chars == "" {
		chars = token.DefaultWhitespace
	}
	return s.nearest(i, dir, func(t *token.Token) bool { return !t.IsWhitespaceWith(chars) })
}

// NearestOfKind finds the nearest token matching any of the patterns.
func (s *Stream) NearestOfKind(i int, dir Direction, patterns ...token.Pattern) (int, *token.Token, bool) {
	return s.nearest(i, dir, func(t *token.Token) bool { return t.EqualsAny(patterns...) })
}

// NearestNotOfKind finds the nearest token matching none of the patterns.
func (s *Stream) NearestNotOfKind(i int, dir Direction, patterns ...token.Pattern) (int, *token.Token, bool) {
	return s.nearest(i, dir, func(t *token.Token) bool { return !t.EqualsAny(patterns...) })
}

func (s *Stream) NextNonWhitespace(i int) (int, *token.Token, bool) {
	return s.NearestNonWhitespace(i, Forward, "")
}

func (s *Stream) PrevNonWhitespace(i int) (int, *token.Token, bool) {
	return s.NearestNonWhitespace(i, Backward, "")
}

func (s *Stream) NextOfKind(i int, patterns ...token.Pattern) (int, *token.Token, bool) {
	return s.NearestOfKind(i, Forward, patterns...)
}

func (s *Stream) PrevOfKind(i int, patterns ...token.Pattern) (int, *token.Token, bool) {
	return s.NearestOfKind(i, Backward, patterns...)
}

func (s *Stream) NextNotOfKind(i int, patterns ...token.Pattern) (int, *token.Token, bool) {
	return s.NearestNotOfKind(i, Forward, patterns...)
}

func (s *Stream) PrevNotOfKind(i int, patterns ...token.Pattern) (int, *token.Token, bool) {
	return s.NearestNotOfKind(i, Backward, patterns...)
}

var trivia = token.Kinds(token.Whitespace, token.Comment, token.DocComment)

// NextMeaningful skips whitespace and comments.
func (s *Stream) NextMeaningful(i int) (int, *token.Token, bool) {
	return s.NearestNotOfKind(i, Forward, trivia...)
}

// PrevMeaningful skips whitespace and comments.
func (s *Stream) PrevMeaningful(i int) (int, *token.Token, bool) {
	return s.NearestNotOfKind(i, Backward, trivia...)
}
