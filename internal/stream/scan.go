package stream

import (
	"strings"

	"csfix/internal/token"
)

// Role of a class member.
type Role uint8

const (
	RoleProperty Role = iota + 1
	RoleMethod
)

func (r Role) String() string {
	switch r {
	case RoleProperty:
		return "property"
	case RoleMethod:
		return "method"
	default:
		return "unknown"
	}
}

// Member is a property variable or method keyword at the top level of a
// class-like body.
type Member struct {
	Index int
	Token *token.Token
	Role  Role
}

// ClassyMembers lists properties and methods of every class, interface,
// trait and enum body in index order. A property is a variable at brace
// depth 1 outside parentheses; a method is a function keyword at depth 1.
func (s *Stream) ClassyMembers() []Member {
	var (
		members []Member
		inClass bool
		parens  int
		curlies int
	)
	for i, tok := range s.toks {
		if tok.Kind == token.EncapsedText {
			continue
		}
		if !inClass {
			inClass = tok.IsClassy()
			continue
		}
		switch {
		case tok.Kind == token.LParen:
			parens++
			continue
		case tok.Kind == token.RParen:
			parens--
			continue
		case tok.IsKind(token.LBrace, token.CurlyOpen, token.DollarOpenCurlyBraces):
			curlies++
			continue
		case tok.Kind == token.RBrace:
			curlies--
			if curlies == 0 {
				inClass = false
			}
			continue
		}
		if curlies != 1 {
			continue
		}
		switch {
		case tok.Kind == token.Variable && parens == 0:
			members = append(members, Member{Index: i, Token: tok, Role: RoleProperty})
		case tok.Kind == token.KwFunction:
			members = append(members, Member{Index: i, Token: tok, Role: RoleMethod})
		}
	}
	return members
}

// NamespaceUseIndexes returns the indexes of import 'use' statements: those
// at the top level of the file or of a braced namespace. A 'use' followed by
// '(' is a closure clause and is skipped, as are trait imports inside
// class bodies.
func (s *Stream) NamespaceUseIndexes() []int {
	var (
		uses   []int
		braces int
		braced bool
	)
	for i, tok := range s.toks {
		switch {
		case tok.Kind == token.KwNamespace:
			if _, next, ok := s.NextOfKind(i, token.K(token.Semicolon), token.K(token.LBrace)); ok && next.Kind == token.LBrace {
				braced = true
			}
			continue
		case tok.IsKind(token.LBrace, token.CurlyOpen, token.DollarOpenCurlyBraces):
			braces++
			continue
		case tok.Kind == token.RBrace:
			braces--
			continue
		}
		limit := 0
		if braced {
			limit = 1
		}
		if tok.Kind != token.KwUse || braces > limit {
			continue
		}
		if _, next, ok := s.NextMeaningful(i); ok && next.Kind == token.LParen {
			continue
		}
		uses = append(uses, i)
	}
	return uses
}

// IsArrayLiteral reports whether the token at i starts an array: the 'array'
// keyword, a retagged short-array opener, or a bracket IsShortArrayLiteral
// accepts.
func (s *Stream) IsArrayLiteral(i int) bool {
	if !s.OffsetExists(i) {
		return false
	}
	return s.toks[i].IsArray() || s.IsShortArrayLiteral(i)
}

var shortArrayPrev = []token.Pattern{
	token.K(token.DoubleArrow),
	token.K(token.Assign),
	token.K(token.Plus),
	token.K(token.LParen),
	token.K(token.LBracket),
}

// IsShortArrayLiteral reports whether the '[' at i opens a short array.
//
// This is a local heuristic, not a parse: the bracket qualifies only when the
// previous non-whitespace token is one of "=>", "=", "+", "(" or "[" and is
// not itself array-like. Brackets after ',' or 'return' are not recognized.
func (s *Stream) IsShortArrayLiteral(i int) bool {
	if !s.OffsetExists(i) || s.toks[i].Kind != token.LBracket {
		return false
	}
	_, prev, ok := s.PrevNonWhitespace(i)
	if !ok || prev.IsArray() {
		return false
	}
	return prev.EqualsAny(shortArrayPrev...)
}

// IsArrayMultiline reports whether the array starting at i has a line break
// directly inside it (at nesting depth 1). Breaks inside nested parens or
// brackets do not count. Like IsShortArrayLiteral this only looks at
// whitespace tokens and is a heuristic.
func (s *Stream) IsArrayMultiline(i int) bool {
	if !s.OffsetExists(i) {
		return false
	}
	if s.toks[i].Kind == token.KwArray {
		i++
	}
	depth := 0
	for ; i < len(s.toks); i++ {
		tok := s.toks[i]
		switch {
		case tok.IsKind(token.LParen, token.LBracket, token.ArrayOpen):
			depth++
		case tok.IsKind(token.RParen, token.RBracket, token.ArrayClose):
			depth--
			if depth == 0 {
				return false
			}
		case depth == 1 && tok.IsWhitespace() && strings.Contains(tok.Text, "\n"):
			return true
		}
	}
	return false
}
