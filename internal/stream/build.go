package stream

import (
	"fmt"

	"csfix/internal/source"
	"csfix/internal/token"
)

// FromSequence wraps an existing token sequence. Nil entries are holes: with
// preserveIndices they become tombstones so every other token keeps its
// index, otherwise they are dropped and the stream is numbered from 0.
// The result is not cached and has no fingerprint until rendered.
func FromSequence(toks []*token.Token, preserveIndices bool) *Stream {
	s := &Stream{toks: make([]*token.Token, 0, len(toks))}
	for _, tok := range toks {
		switch {
		case tok != nil:
			s.toks = append(s.toks, tok)
		case preserveIndices:
			s.toks = append(s.toks, tombstone())
		}
	}
	return s
}

// FromSource returns the stream for text. A cached stream is reused when
// it still renders to text exactly; it is compacted before being returned.
// A cached stream that was mutated without being rendered is stale: it is
// re-registered under its real content and text is tokenized afresh.
func FromSource(text string, opts Options) (*Stream, error) {
	h := source.Fingerprint(text)
	if opts.Cache != nil {
		if s, ok := opts.Cache.Lookup(h); ok {
			if s.Render() == text {
				s.Compact()
				return s, nil
			}
		}
	}

	tz := opts.tokenizerOrDefault()
	toks, err := tz.Tokenize(text)
	if err != nil {
		return nil, fmt.Errorf("tokenize: %w", err)
	}
	s := &Stream{toks: toks, cache: opts.Cache, tokenizer: tz}
	s.setFingerprint(h)
	return s, nil
}

// SetSource re-tokenizes text into s, discarding the previous contents, and
// moves the cache slot to the new fingerprint.
func (s *Stream) SetSource(text string) error {
	if s.tokenizer == nil {
		s.tokenizer = Options{}.tokenizerOrDefault()
	}
	toks, err := s.tokenizer.Tokenize(text)
	if err != nil {
		return fmt.Errorf("tokenize: %w", err)
	}
	clear(s.toks)
	s.toks = toks
	s.setFingerprint(source.Fingerprint(text))
	return nil
}

// setFingerprint moves the stream's cache slot from its old fingerprint to h.
func (s *Stream) setFingerprint(h source.Digest) {
	if s.cache != nil {
		if !s.hash.IsZero() && s.hash != h {
			s.cache.release(s.hash, s)
		}
		s.cache.Set(h, s)
	}
	s.hash = h
}

// Attach registers s in c under its current content, rendering it first.
// Streams built from a sequence or from records use it to join a cache.
func (s *Stream) Attach(c *Cache) {
	if s.cache != nil && s.cache != c && !s.hash.IsZero() {
		s.cache.release(s.hash, s)
	}
	s.cache = c
	s.hash = source.Digest{}
	s.Render()
}
