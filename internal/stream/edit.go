package stream

import (
	"fmt"
	"strings"

	"csfix/internal/token"
)

// InsertAt inserts items before index i (i == Len appends). Tokens at and
// after i move right by len(items); relative order is preserved on both sides.
func (s *Stream) InsertAt(i int, items ...*token.Token) error {
	if i < 0 || i > len(s.toks) {
		return fmt.Errorf("insert at %d of %d: %w", i, len(s.toks), ErrOutOfBounds)
	}
	for _, it := range items {
		if it == nil {
			return fmt.Errorf("insert at %d: nil token: %w", i, ErrInvalidArgument)
		}
	}
	n := len(items)
	if n == 0 {
		return nil
	}
	oldLen := len(s.toks)
	s.toks = append(s.toks, make([]*token.Token, n)...)
	// move the tail right, high end first
	for j := oldLen - 1; j >= i; j-- {
		s.toks[j+n] = s.toks[j]
	}
	copy(s.toks[i:i+n], items)
	return nil
}

// Compact drops tombstones and renumbers the stream contiguously.
func (s *Stream) Compact() {
	kept := s.toks[:0]
	for _, tok := range s.toks {
		if !tok.IsEmpty() {
			kept = append(kept, tok)
		}
	}
	clear(s.toks[len(kept):])
	s.toks = kept
}

// ClearAt turns the token at i into a tombstone.
func (s *Stream) ClearAt(i int) error {
	tok, err := s.Get(i)
	if err != nil {
		return err
	}
	tok.Clear()
	return nil
}

// ClearRange clears tokens start..end inclusive.
func (s *Stream) ClearRange(start, end int) error {
	if start > end || !s.OffsetExists(start) || !s.OffsetExists(end) {
		return fmt.Errorf("clear range %d..%d of %d: %w", start, end, len(s.toks), ErrOutOfBounds)
	}
	for _, tok := range s.toks[start : end+1] {
		tok.Clear()
	}
	return nil
}

// OverrideAt replaces kind and text of the token at i in place.
func (s *Stream) OverrideAt(i int, kind token.Kind, text string) error {
	tok, err := s.Get(i)
	if err != nil {
		return err
	}
	tok.Override(kind, text)
	return nil
}

// EnsureWhitespaceAt makes the token at i carry ws. An existing whitespace
// token is rewritten in place and false is returned; otherwise a whitespace
// token is inserted at i+offset and true is returned.
//
// With offset 1 a line comment right before the new whitespace loses its
// trailing line break, which would otherwise be doubled.
func (s *Stream) EnsureWhitespaceAt(i, offset int, ws string) (bool, error) {
	tok, err := s.Get(i)
	if err != nil {
		return false, err
	}
	if tok.IsWhitespace() {
		if offset == 1 && s.OffsetExists(i-1) {
			trimCommentNewline(s.toks[i-1])
		}
		tok.Override(token.Whitespace, ws)
		return false, nil
	}
	if offset == 1 {
		trimCommentNewline(tok)
	}
	if err := s.InsertAt(i+offset, token.New(token.Whitespace, ws)); err != nil {
		return false, err
	}
	return true, nil
}

func trimCommentNewline(tok *token.Token) {
	if !tok.IsComment() {
		return
	}
	switch {
	case strings.HasSuffix(tok.Text, "\r\n"):
		tok.SetContent(strings.TrimSuffix(tok.Text, "\r\n"))
	case strings.HasSuffix(tok.Text, "\n"):
		tok.SetContent(strings.TrimSuffix(tok.Text, "\n"))
	}
}

// FindKinds returns, per requested kind, the ascending indexes of tokens of
// that kind within start..end inclusive. end < 0 means the last token.
func (s *Stream) FindKinds(start, end int, kinds ...token.Kind) map[token.Kind][]int {
	out := make(map[token.Kind][]int, len(kinds))
	for _, k := range kinds {
		out[k] = nil
	}
	if end < 0 || end >= len(s.toks) {
		end = len(s.toks) - 1
	}
	for i := max(start, 0); i <= end; i++ {
		k := s.toks[i].Kind
		if idx, ok := out[k]; ok {
			out[k] = append(idx, i)
		}
	}
	return out
}
