package lexer

import (
	"unicode/utf8"
)

// PHP labels: [a-zA-Z_\x80-\xff][a-zA-Z0-9_\x80-\xff]*. Bytes >= 0x80 are
// accepted as-is, so multi-byte runes never split.
func isIdentStartByte(b byte) bool {
	return b == '_' || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') || b >= utf8.RuneSelf
}

func isIdentContinueByte(b byte) bool {
	return isIdentStartByte(b) || isDec(b)
}

func isDec(b byte) bool { return b >= '0' && b <= '9' }

func isHex(b byte) bool {
	return isDec(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

func isBlank(b byte) bool {
	return b == ' ' || b == '\t'
}

// scanLabel consumes a label at the cursor and returns it.
func (s *scanner) scanLabel() string {
	start := s.cur.Mark()
	if !isIdentStartByte(s.cur.Peek()) {
		return ""
	}
	s.cur.Bump()
	for isIdentContinueByte(s.cur.Peek()) {
		s.cur.Bump()
	}
	return s.cur.From(start)
}
