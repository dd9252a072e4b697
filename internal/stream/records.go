package stream

import (
	"fmt"

	"csfix/internal/token"
)

// Record is the structured export of one token.
type Record struct {
	Index      int    `json:"index" yaml:"index" msgpack:"index"`
	Kind       string `json:"kind" yaml:"kind" msgpack:"kind"`
	Text       string `json:"text" yaml:"text" msgpack:"text"`
	Line       uint32 `json:"line,omitempty" yaml:"line,omitempty" msgpack:"line,omitempty"`
	Empty      bool   `json:"empty,omitempty" yaml:"empty,omitempty" msgpack:"empty,omitempty"`
	Whitespace bool   `json:"whitespace,omitempty" yaml:"whitespace,omitempty" msgpack:"whitespace,omitempty"`
	Comment    bool   `json:"comment,omitempty" yaml:"comment,omitempty" msgpack:"comment,omitempty"`
}

// Records exports one record per slot, tombstones included, in stream order.
func (s *Stream) Records() []Record {
	out := make([]Record, len(s.toks))
	for i, tok := range s.toks {
		out[i] = Record{
			Index:      i,
			Kind:       tok.Kind.String(),
			Text:       tok.Text,
			Line:       tok.Line,
			Empty:      tok.IsEmpty(),
			Whitespace: tok.Kind == token.Whitespace,
			Comment:    tok.IsComment(),
		}
	}
	return out
}

// FromRecords rebuilds a stream from exported records. Records must be in
// index order starting at 0. The stream is fingerprinted and, when opts
// carries a cache, registered in it.
func FromRecords(recs []Record, opts Options) (*Stream, error) {
	toks := make([]*token.Token, len(recs))
	for i, r := range recs {
		if r.Index != i {
			return nil, fmt.Errorf("record %d has index %d: %w", i, r.Index, ErrInvalidArgument)
		}
		kind, ok := token.ParseKind(r.Kind)
		if !ok {
			return nil, fmt.Errorf("record %d: unknown kind %q: %w", i, r.Kind, ErrInvalidArgument)
		}
		toks[i] = &token.Token{Kind: kind, Text: r.Text, Line: r.Line}
	}
	s := &Stream{toks: toks, tokenizer: opts.tokenizerOrDefault()}
	s.Attach(opts.Cache)
	return s, nil
}
