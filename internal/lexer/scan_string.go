package lexer

import (
	"strings"

	"csfix/internal/token"
)

// scanSingleQuoted scans '...' starting at the quote (m may include a 'b'
// prefix already consumed).
func (s *scanner) scanSingleQuoted(m Mark) {
	line := s.line
	s.cur.Bump()
	for !s.cur.EOF() {
		switch s.cur.Bump() {
		case '\\':
			s.cur.Bump()
		case '\'':
			s.emitFrom(token.ConstantString, m)
			return
		}
	}
	s.report(UnterminatedString, line, "unterminated string literal")
	s.emitFrom(token.Invalid, m)
}

// scanDoubleQuoted emits a plain ConstantString when the literal has no
// interpolation, otherwise a DoubleQuote-delimited token sequence.
func (s *scanner) scanDoubleQuoted(m Mark) {
	line := s.line
	end, interp := scanQuotedBody(s.cur.Src, s.cur.Off+1, '"')
	if end < 0 && !interp {
		s.cur.Advance(len(s.cur.Src))
		s.report(UnterminatedString, line, "unterminated string literal")
		s.emitFrom(token.Invalid, m)
		return
	}
	if !interp {
		s.cur.Reset(Mark(end + 1))
		s.emitFrom(token.ConstantString, m)
		return
	}
	s.cur.Bump()
	s.emitFrom(token.DoubleQuote, m)
	s.scanInterpolated('"', line)
}

func (s *scanner) scanBacktick() {
	line := s.line
	m := s.cur.Mark()
	s.cur.Bump()
	s.emitFrom(token.Backtick, m)
	s.scanInterpolated('`', line)
}

func (s *scanner) scanInterpolated(quote byte, line uint32) {
	closed := s.scanEncapsed(func() bool { return s.cur.Peek() == quote }, true)
	if !closed {
		s.report(UnterminatedString, line, "unterminated string literal")
		return
	}
	m := s.cur.Mark()
	s.cur.Bump()
	s.emitFrom(kindOfQuote(quote), m)
}

func kindOfQuote(q byte) token.Kind {
	if q == '`' {
		return token.Backtick
	}
	return token.DoubleQuote
}

// scanQuotedBody finds the closing quote starting at off and reports whether
// the body interpolates. end is -1 when the literal is unterminated.
func scanQuotedBody(src string, off int, quote byte) (end int, interp bool) {
	for i := off; i < len(src); i++ {
		c := src[i]
		switch {
		case c == '\\':
			i++
		case c == quote:
			return i, interp
		case c == '$' && i+1 < len(src) && (isIdentStartByte(src[i+1]) || src[i+1] == '{'):
			interp = true
		case c == '{' && i+1 < len(src) && src[i+1] == '$':
			interp = true
		}
	}
	return -1, interp
}

// scanEncapsed scans interpolated content until atEnd holds, emitting
// EncapsedText between interpolations. It returns false at EOF.
func (s *scanner) scanEncapsed(atEnd func() bool, escapes bool) bool {
	start := s.cur.Mark()
	flush := func() {
		if text := s.cur.From(start); text != "" {
			s.emit(token.EncapsedText, text)
		}
	}
	for {
		if s.cur.EOF() {
			flush()
			return false
		}
		if atEnd() {
			flush()
			return true
		}
		c := s.cur.Peek()
		switch {
		case c == '\\' && escapes:
			s.cur.Advance(2)
			continue
		case c == '$' && isIdentStartByte(s.cur.PeekAt(1)):
			flush()
			s.scanEncapsedVar()
		case c == '$' && s.cur.PeekAt(1) == '{':
			flush()
			s.scanDollarBrace()
		case c == '{' && s.cur.PeekAt(1) == '$':
			flush()
			m := s.cur.Mark()
			s.cur.Bump()
			s.emitFrom(token.CurlyOpen, m)
			s.scanNested()
		default:
			s.cur.Bump()
			continue
		}
		start = s.cur.Mark()
	}
}

// scanEncapsedVar handles "$name", "$name[offset]" and "$name->prop".
func (s *scanner) scanEncapsedVar() {
	m := s.cur.Mark()
	s.cur.Bump()
	s.scanLabel()
	s.emitFrom(token.Variable, m)

	switch {
	case s.cur.Peek() == '[':
		kind, n := simpleOffset(s.cur.Src[s.cur.Off+1:])
		if n == 0 {
			return
		}
		s.cur.Bump()
		s.emit(token.LBracket, "[")
		m = s.cur.Mark()
		s.cur.Advance(n)
		s.emitFrom(kind, m)
		s.cur.Bump()
		s.emit(token.RBracket, "]")
	case s.cur.HasPrefix("->") && isIdentStartByte(s.cur.PeekAt(2)):
		m = s.cur.Mark()
		s.cur.Advance(2)
		s.emitFrom(token.ObjectOperator, m)
		m = s.cur.Mark()
		s.scanLabel()
		s.emitFrom(token.Ident, m)
	case s.cur.HasPrefix("?->") && isIdentStartByte(s.cur.PeekAt(3)):
		m = s.cur.Mark()
		s.cur.Advance(3)
		s.emitFrom(token.NullsafeObjOp, m)
		m = s.cur.Mark()
		s.scanLabel()
		s.emitFrom(token.Ident, m)
	}
}

// simpleOffset measures the offset of "$a[...]" in rest (which starts after
// '['). n is the offset length, or 0 when no closing ']' follows a valid offset.
func simpleOffset(rest string) (kind token.Kind, n int) {
	switch {
	case rest == "":
		return token.Invalid, 0
	case rest[0] == '$':
		kind = token.Variable
		n = 1 + labelLen(rest[1:])
		if n == 1 {
			return token.Invalid, 0
		}
	case isDec(rest[0]) || (rest[0] == '-' && len(rest) > 1 && isDec(rest[1])):
		kind = token.NumString
		n = 1
		for n < len(rest) && isDec(rest[n]) {
			n++
		}
	case isIdentStartByte(rest[0]):
		kind = token.Ident
		n = labelLen(rest)
	default:
		return token.Invalid, 0
	}
	if n >= len(rest) || rest[n] != ']' {
		return token.Invalid, 0
	}
	return kind, n
}

func labelLen(s string) int {
	if s == "" || !isIdentStartByte(s[0]) {
		return 0
	}
	n := 1
	for n < len(s) && isIdentContinueByte(s[n]) {
		n++
	}
	return n
}

// scanDollarBrace handles "${name}" and "${expr}".
func (s *scanner) scanDollarBrace() {
	m := s.cur.Mark()
	s.cur.Advance(2)
	s.emitFrom(token.DollarOpenCurlyBraces, m)
	rest := s.cur.Src[s.cur.Off:]
	if n := labelLen(rest); n > 0 && n < len(rest) && (rest[n] == '}' || rest[n] == '[') {
		m = s.cur.Mark()
		s.cur.Advance(n)
		s.emitFrom(token.StringVarname, m)
	}
	s.scanNested()
}

// scanHeredoc scans '<<<LABEL' heredocs and '<<<'LABEL'' nowdocs. It returns
// false without consuming input when the opener is malformed.
func (s *scanner) scanHeredoc() bool {
	m := s.cur.Mark()
	line := s.line
	s.cur.Advance(3)
	for isBlank(s.cur.Peek()) {
		s.cur.Bump()
	}
	quote := byte(0)
	if q := s.cur.Peek(); q == '\'' || q == '"' {
		quote = q
		s.cur.Bump()
	}
	label := s.scanLabel()
	if label == "" || (quote != 0 && !s.cur.Eat(quote)) || !s.cur.EatNewline() {
		s.cur.Reset(m)
		return false
	}
	s.emitFrom(token.StartHeredoc, m)

	bodyStart := s.cur.Off
	atEnd := func() bool {
		off := s.cur.Off
		if off != bodyStart && s.cur.Src[off-1] != '\n' {
			return false
		}
		for off < len(s.cur.Src) && isBlank(s.cur.Src[off]) {
			off++
		}
		rest := s.cur.Src[off:]
		return strings.HasPrefix(rest, label) &&
			(len(rest) == len(label) || !isIdentContinueByte(rest[len(label)]))
	}

	var closed bool
	if quote == '\'' {
		bm := s.cur.Mark()
		for !s.cur.EOF() && !atEnd() {
			s.cur.Bump()
		}
		closed = !s.cur.EOF()
		if text := s.cur.From(bm); text != "" {
			s.emit(token.EncapsedText, text)
		}
	} else {
		closed = s.scanEncapsed(atEnd, true)
	}
	if !closed {
		s.report(UnterminatedHeredoc, line, "missing heredoc terminator "+label)
		return true
	}
	em := s.cur.Mark()
	for isBlank(s.cur.Peek()) {
		s.cur.Bump()
	}
	s.cur.Advance(len(label))
	s.emitFrom(token.EndHeredoc, em)
	return true
}
