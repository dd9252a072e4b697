package stream

import (
	"fmt"
	"iter"

	"csfix/internal/lexer"
	"csfix/internal/source"
	"csfix/internal/token"
)

// Stream is an ordered, mutable sequence of tokens.
type Stream struct {
	toks      []*token.Token
	hash      source.Digest
	cache     *Cache
	tokenizer lexer.Tokenizer
}

// Options configure stream construction.
type Options struct {
	// Cache receives streams built from text. May be nil.
	Cache *Cache
	// Tokenizer defaults to lexer.Default.
	Tokenizer lexer.Tokenizer
}

func (o Options) tokenizerOrDefault() lexer.Tokenizer {
	if o.Tokenizer != nil {
		return o.Tokenizer
	}
	return lexer.Default
}

// Len returns the number of slots, tombstones included.
func (s *Stream) Len() int { return len(s.toks) }

// Fingerprint is the digest of the text the stream was last built from or
// rendered into. It is zero for streams built from a sequence and never
// rendered.
func (s *Stream) Fingerprint() source.Digest { return s.hash }

// OffsetExists reports whether i addresses a slot.
func (s *Stream) OffsetExists(i int) bool { return i >= 0 && i < len(s.toks) }

// At returns the token at i and panics when i is out of range, like a slice.
func (s *Stream) At(i int) *token.Token { return s.toks[i] }

// Get returns the token at i.
func (s *Stream) Get(i int) (*token.Token, error) {
	if !s.OffsetExists(i) {
		return nil, fmt.Errorf("get %d of %d: %w", i, len(s.toks), ErrOutOfBounds)
	}
	return s.toks[i], nil
}

// Set replaces the token at i.
func (s *Stream) Set(i int, tok *token.Token) error {
	if !s.OffsetExists(i) {
		return fmt.Errorf("set %d of %d: %w", i, len(s.toks), ErrOutOfBounds)
	}
	if tok == nil {
		return fmt.Errorf("set %d: nil token: %w", i, ErrInvalidArgument)
	}
	s.toks[i] = tok
	return nil
}

// Resize truncates the stream or grows it with tombstones.
func (s *Stream) Resize(n int) error {
	if n < 0 {
		return fmt.Errorf("resize to %d: %w", n, ErrInvalidArgument)
	}
	if n <= len(s.toks) {
		clear(s.toks[n:])
		s.toks = s.toks[:n]
		return nil
	}
	for len(s.toks) < n {
		s.toks = append(s.toks, tombstone())
	}
	return nil
}

// Tokens iterates over index/token pairs in order.
func (s *Stream) Tokens() iter.Seq2[int, *token.Token] {
	return func(yield func(int, *token.Token) bool) {
		for i, tok := range s.toks {
			if !yield(i, tok) {
				return
			}
		}
	}
}

// Clone returns a deep copy. The copy is detached from the cache.
func (s *Stream) Clone() *Stream {
	c := &Stream{
		toks:      make([]*token.Token, len(s.toks)),
		hash:      s.hash,
		tokenizer: s.tokenizer,
	}
	for i, tok := range s.toks {
		c.toks[i] = tok.Clone()
	}
	return c
}

// Restore replaces the contents of s with those of snap, a snapshot taken
// with Clone. snap must not be used afterwards.
func (s *Stream) Restore(snap *Stream) {
	s.toks = snap.toks
	snap.toks = nil
	if !snap.hash.IsZero() {
		s.setFingerprint(snap.hash)
	}
}

func tombstone() *token.Token { return token.New(token.Void, "") }
