package lexer

import "csfix/internal/token"

func (s *scanner) scanVariable() {
	m := s.cur.Mark()
	s.cur.Bump()
	if !isIdentStartByte(s.cur.Peek()) {
		s.emitFrom(token.Dollar, m)
		return
	}
	s.scanLabel()
	s.emitFrom(token.Variable, m)
}

// scanIdentOrKeyword scans a label. Member names after '->', '?->' and '::'
// are always identifiers; 'enum' is a keyword only when a name follows.
func (s *scanner) scanIdentOrKeyword() {
	label := s.scanLabel()
	switch s.last {
	case token.ObjectOperator, token.NullsafeObjOp, token.DoubleColon:
		s.emit(token.Ident, label)
		return
	}
	kind, ok := token.LookupKeyword(label)
	if !ok || (kind == token.KwEnum && !s.enumFollows()) {
		kind = token.Ident
	}
	s.emit(kind, label)
}

func (s *scanner) enumFollows() bool {
	i := 0
	for isSpace(s.cur.PeekAt(i)) {
		i++
	}
	return i > 0 && isIdentStartByte(s.cur.PeekAt(i))
}

var castNames = map[string]token.Kind{
	"int":     token.IntCast,
	"integer": token.IntCast,
	"float":   token.DoubleCast,
	"double":  token.DoubleCast,
	"real":    token.DoubleCast,
	"string":  token.StringCast,
	"binary":  token.StringCast,
	"array":   token.ArrayCast,
	"object":  token.ObjectCast,
	"bool":    token.BoolCast,
	"boolean": token.BoolCast,
	"unset":   token.UnsetCast,
}

// scanCast recognizes '(int)' style casts with optional inner blanks.
// The cursor is left untouched when the parenthesis is not a cast.
func (s *scanner) scanCast() bool {
	m := s.cur.Mark()
	s.cur.Bump()
	for isBlank(s.cur.Peek()) {
		s.cur.Bump()
	}
	name := s.scanLabel()
	for isBlank(s.cur.Peek()) {
		s.cur.Bump()
	}
	kind, ok := castNames[lowerASCII(name)]
	if !ok || !s.cur.Eat(')') {
		s.cur.Reset(m)
		return false
	}
	s.emitFrom(kind, m)
	return true
}

func lowerASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
