package lexer

import (
	"fmt"

	"csfix/internal/token"
)

var (
	ops3 = []string{"===", "!==", "<=>", "<<=", ">>=", "**=", "??=", "...", "?->"}
	ops2 = []string{
		"=>", "->", "::", "==", "!=", "<>", "<=", ">=", "&&", "||", "++", "--",
		"+=", "-=", "*=", "/=", ".=", "%=", "&=", "|=", "^=", "<<", ">>", "??", "**",
	}
)

// scanOperator consumes the longest punctuation match. Unknown bytes become
// single-byte Invalid tokens.
func (s *scanner) scanOperator() {
	if s.tryOps(ops3) || s.tryOps(ops2) {
		return
	}
	m := s.cur.Mark()
	c := s.cur.Bump()
	if kind, ok := token.LookupPunct(string(c)); ok {
		s.emitFrom(kind, m)
		return
	}
	s.report(UnknownChar, s.line, fmt.Sprintf("unexpected character %q", c))
	s.emitFrom(token.Invalid, m)
}

func (s *scanner) tryOps(ops []string) bool {
	for _, op := range ops {
		if s.cur.HasPrefix(op) {
			m := s.cur.Mark()
			s.cur.Advance(len(op))
			kind, _ := token.LookupPunct(op)
			s.emitFrom(kind, m)
			return true
		}
	}
	return false
}
