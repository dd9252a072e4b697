package lexer

import (
	"strings"

	"csfix/internal/token"
)

// scanInlineHTML consumes text outside PHP tags and the open tag that ends it.
func (s *scanner) scanInlineHTML() {
	rest := s.cur.Src[s.cur.Off:]
	idx := strings.Index(rest, "<?")
	if idx < 0 {
		m := s.cur.Mark()
		s.cur.Advance(len(rest))
		s.emitFrom(token.InlineHTML, m)
		return
	}
	if idx > 0 {
		m := s.cur.Mark()
		s.cur.Advance(idx)
		s.emitFrom(token.InlineHTML, m)
	}
	s.scanOpenTag()
}

func (s *scanner) scanOpenTag() {
	m := s.cur.Mark()
	s.html = false
	switch {
	case s.cur.HasPrefix("<?="):
		s.cur.Advance(3)
		s.emitFrom(token.OpenTagWithEcho, m)
		return
	case s.cur.HasPrefixFold("<?php"):
		next := s.cur.PeekAt(5)
		if next == 0 || isSpace(next) {
			s.cur.Advance(5)
			if !s.cur.EatNewline() {
				if isBlank(s.cur.Peek()) {
					s.cur.Bump()
				}
			}
			s.emitFrom(token.OpenTag, m)
			return
		}
	}
	s.cur.Advance(2)
	s.emitFrom(token.OpenTag, m)
}

// scanCloseTag consumes '?>' plus a single following line break.
func (s *scanner) scanCloseTag() {
	m := s.cur.Mark()
	s.cur.Advance(2)
	s.cur.EatNewline()
	s.emitFrom(token.CloseTag, m)
	s.html = true
}

func (s *scanner) scanWhitespace() {
	m := s.cur.Mark()
	for isSpace(s.cur.Peek()) {
		s.cur.Bump()
	}
	s.emitFrom(token.Whitespace, m)
}

// scanLineComment consumes '//' or '#' comments including the line break.
// A close tag ends the comment without being part of it.
func (s *scanner) scanLineComment() {
	m := s.cur.Mark()
	for !s.cur.EOF() {
		if s.cur.HasPrefix("?>") {
			break
		}
		if s.cur.Bump() == '\n' {
			break
		}
	}
	s.emitFrom(token.Comment, m)
}

func (s *scanner) scanBlockComment() {
	m := s.cur.Mark()
	line := s.line
	s.cur.Advance(2)
	end := strings.Index(s.cur.Src[s.cur.Off:], "*/")
	if end < 0 {
		s.cur.Advance(len(s.cur.Src))
		s.report(UnterminatedComment, line, "unterminated comment")
	} else {
		s.cur.Advance(end + 2)
	}
	text := s.cur.From(m)
	kind := token.Comment
	if len(text) > 4 && strings.HasPrefix(text, "/**") && isSpace(text[3]) {
		kind = token.DocComment
	}
	s.emit(kind, text)
}
