package lexer

import "csfix/internal/token"

func (s *scanner) scanNumber() {
	m := s.cur.Mark()
	if s.cur.Peek() == '0' {
		switch s.cur.PeekAt(1) {
		case 'x', 'X':
			s.scanRadix(m, isHex)
			return
		case 'b', 'B':
			s.scanRadix(m, func(b byte) bool { return b == '0' || b == '1' })
			return
		case 'o', 'O':
			s.scanRadix(m, func(b byte) bool { return b >= '0' && b <= '7' })
			return
		}
	}

	kind := token.LNumber
	s.scanDigits()
	if s.cur.Peek() == '.' && s.cur.PeekAt(1) != '.' && s.cur.PeekAt(1) != '=' {
		s.cur.Bump()
		s.scanDigits()
		kind = token.DNumber
	}
	if e := s.cur.Peek(); e == 'e' || e == 'E' {
		n := 1
		if sign := s.cur.PeekAt(1); sign == '+' || sign == '-' {
			n = 2
		}
		if isDec(s.cur.PeekAt(n)) {
			s.cur.Advance(n)
			s.scanDigits()
			kind = token.DNumber
		}
	}
	s.emitFrom(kind, m)
}

func (s *scanner) scanDigits() {
	for isDec(s.cur.Peek()) || (s.cur.Peek() == '_' && isDec(s.cur.PeekAt(1))) {
		s.cur.Bump()
	}
}

// scanRadix scans a 0x/0b/0o literal. A bare prefix without digits lexes
// as '0' followed by an identifier.
func (s *scanner) scanRadix(m Mark, digit func(byte) bool) {
	if !digit(s.cur.PeekAt(2)) {
		s.cur.Bump()
		s.emitFrom(token.LNumber, m)
		return
	}
	s.cur.Advance(2)
	for digit(s.cur.Peek()) || (s.cur.Peek() == '_' && digit(s.cur.PeekAt(1))) {
		s.cur.Bump()
	}
	s.emitFrom(token.LNumber, m)
}
