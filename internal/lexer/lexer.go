package lexer

import (
	"strings"

	"fortio.org/safecast"

	"csfix/internal/token"
)

// Tokenizer turns PHP source into a token sequence whose texts concatenate
// back to the input.
type Tokenizer interface {
	Tokenize(src string) ([]*token.Token, error)
}

// Lexer is the built-in Tokenizer. It is stateless between calls and safe
// for concurrent use.
type Lexer struct {
	opts Options
}

// New creates a lexer with the given options.
func New(opts Options) *Lexer {
	return &Lexer{opts: opts}
}

// Version names the token classification rules. Bump it whenever the lexer
// would split or classify some input differently.
const Version = "1"

// Default is a lenient lexer without a reporter.
var Default Tokenizer = New(Options{})

// Tokenize splits src into tokens. In lenient mode it never fails: anomalies
// are reported and the offending bytes become Invalid tokens or get folded
// into the surrounding token.
func (lx *Lexer) Tokenize(src string) ([]*token.Token, error) {
	s := &scanner{
		cur:  Cursor{Src: src},
		line: 1,
		opts: lx.opts,
		html: true,
		out:  make([]*token.Token, 0, len(src)/4+1),
	}
	for !s.cur.EOF() {
		if s.html {
			s.scanInlineHTML()
			continue
		}
		s.scanToken()
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.out, nil
}

// scanner holds the state of a single Tokenize call.
type scanner struct {
	cur  Cursor
	opts Options
	out  []*token.Token
	err  error
	line uint32
	html bool
	// last significant (non-trivia) kind, used for context-dependent keywords
	last token.Kind
}

func (s *scanner) emit(kind token.Kind, text string) {
	s.out = append(s.out, &token.Token{Kind: kind, Text: text, Line: s.line})
	if n := strings.Count(text, "\n"); n > 0 {
		if d, err := safecast.Conv[uint32](n); err == nil {
			s.line += d
		}
	}
	switch kind {
	case token.Whitespace, token.Comment, token.DocComment:
	default:
		s.last = kind
	}
}

func (s *scanner) emitFrom(kind token.Kind, m Mark) {
	s.emit(kind, s.cur.From(m))
}

// scanToken consumes exactly one token of PHP code (or a whole string
// literal, which may expand to several tokens).
func (s *scanner) scanToken() {
	c := s.cur.Peek()
	switch {
	case isSpace(c):
		s.scanWhitespace()
	case c == '?' && s.cur.PeekAt(1) == '>':
		s.scanCloseTag()
	case c == '#' && s.cur.PeekAt(1) == '[':
		m := s.cur.Mark()
		s.cur.Advance(2)
		s.emitFrom(token.AttributeStart, m)
	case c == '#', c == '/' && s.cur.PeekAt(1) == '/':
		s.scanLineComment()
	case c == '/' && s.cur.PeekAt(1) == '*':
		s.scanBlockComment()
	case c == '$':
		s.scanVariable()
	case c == '\'':
		s.scanSingleQuoted(s.cur.Mark())
	case c == '"':
		s.scanDoubleQuoted(s.cur.Mark())
	case c == '`':
		s.scanBacktick()
	case (c == 'b' || c == 'B') && (s.cur.PeekAt(1) == '\'' || s.cur.PeekAt(1) == '"'):
		m := s.cur.Mark()
		s.cur.Bump()
		if s.cur.Peek() == '\'' {
			s.scanSingleQuoted(m)
		} else {
			s.scanDoubleQuoted(m)
		}
	case c == '<' && s.cur.HasPrefix("<<<") && s.scanHeredoc():
	case isDec(c) || (c == '.' && isDec(s.cur.PeekAt(1))):
		s.scanNumber()
	case isIdentStartByte(c):
		s.scanIdentOrKeyword()
	case c == '(' && s.scanCast():
	default:
		s.scanOperator()
	}
}

// scanNested scans code inside '{$' or '${' interpolation up to and including
// the matching '}'.
func (s *scanner) scanNested() {
	depth := 0
	startLine := s.line
	for !s.cur.EOF() {
		if s.html {
			s.scanInlineHTML()
			continue
		}
		if depth == 0 && s.cur.Peek() == '}' {
			s.cur.Bump()
			s.emit(token.RBrace, "}")
			return
		}
		n := len(s.out)
		s.scanToken()
		for _, tok := range s.out[n:] {
			switch tok.Kind {
			case token.LBrace, token.CurlyOpen, token.DollarOpenCurlyBraces:
				depth++
			case token.RBrace:
				depth--
			}
		}
	}
	s.report(UnterminatedInterpolation, startLine, "missing '}' after interpolation")
}
