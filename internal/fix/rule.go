package fix

import "csfix/internal/stream"

// Rule is a rewrite pass over a token stream. Apply edits the stream in place
// through the stream API only; returning an error rolls the pass back.
type Rule interface {
	Name() string
	Apply(s *stream.Stream) error
}

type funcRule struct {
	name string
	fn   func(*stream.Stream) error
}

func (r funcRule) Name() string { return r.name }
func (r funcRule) Apply(s *stream.Stream) error { return r.fn(s) }

// Func wraps a function as a Rule.
func Func(name string, fn func(*stream.Stream) error) Rule {
	return funcRule{name: name, fn: fn}
}
