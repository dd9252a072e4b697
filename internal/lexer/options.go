package lexer

import "fmt"

// Code classifies a lexical anomaly.
type Code uint8

const (
	UnknownChar Code = iota + 1
	UnterminatedString
	UnterminatedComment
	UnterminatedHeredoc
	UnterminatedInterpolation
)

func (c Code) String() string {
	switch c {
	case UnknownChar:
		return "unknown-char"
	case UnterminatedString:
		return "unterminated-string"
	case UnterminatedComment:
		return "unterminated-comment"
	case UnterminatedHeredoc:
		return "unterminated-heredoc"
	case UnterminatedInterpolation:
		return "unterminated-interpolation"
	default:
		return "unknown"
	}
}

// Reporter receives lexical anomalies. The lexer keeps going after reporting:
// the emitted tokens still reproduce the input exactly.
type Reporter interface {
	Report(code Code, line uint32, msg string)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(code Code, line uint32, msg string)

// Report calls f.
func (f ReporterFunc) Report(code Code, line uint32, msg string) { f(code, line, msg) }

// Options configure a Lexer.
type Options struct {
	Reporter Reporter // may be nil
	// Strict turns the first anomaly into a Tokenize error.
	Strict bool
}

// Error is returned by Tokenize in strict mode.
type Error struct {
	Code Code
	Line uint32
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("lex: line %d: %s (%s)", e.Line, e.Msg, e.Code)
}

func (s *scanner) report(code Code, line uint32, msg string) {
	if s.opts.Reporter != nil {
		s.opts.Reporter.Report(code, line, msg)
	}
	if s.opts.Strict && s.err == nil {
		s.err = &Error{Code: code, Line: line, Msg: msg}
	}
}
