// Package testkit holds invariant checks shared by tests and fuzz harnesses.
package testkit

import (
	"fmt"

	"csfix/internal/stream"
	"csfix/internal/token"
)

// CheckStreamInvariants verifies the invariants every freshly built stream
// of src must hold:
//  1. rendering reproduces src byte for byte
//  2. line numbers never decrease and start at 1
//  3. every paren and curly block that can be matched forwards matches
//     back to the same opener
func CheckStreamInvariants(s *stream.Stream, src string) error {
	if s == nil {
		return fmt.Errorf("nil stream")
	}
	if got := s.RenderRange(0, s.Len()-1); got != src {
		return fmt.Errorf("render mismatch: got %d bytes, want %d", len(got), len(src))
	}

	var line uint32
	for i, tok := range s.Tokens() {
		if tok.Line == 0 {
			if tok.IsEmpty() {
				continue
			}
			return fmt.Errorf("token %d (%v) has no line", i, tok)
		}
		if tok.Line < line {
			return fmt.Errorf("token %d (%v) on line %d after line %d", i, tok, tok.Line, line)
		}
		line = tok.Line
	}

	for i := range s.Len() {
		for _, kind := range []stream.BlockKind{stream.BlockParen, stream.BlockCurly} {
			end, err := s.FindBlockEnd(kind, i, true)
			if err != nil {
				continue
			}
			back, err := s.FindBlockEnd(kind, end, false)
			if err != nil {
				return fmt.Errorf("%v block %d..%d: backward match failed: %w", kind, i, end, err)
			}
			if back != i {
				return fmt.Errorf("%v block %d..%d matches back to %d", kind, i, end, back)
			}
		}
	}
	return nil
}

// CheckCompacted verifies that s holds no tombstones.
func CheckCompacted(s *stream.Stream) error {
	for i, tok := range s.Tokens() {
		if tok.IsEmpty() {
			return fmt.Errorf("tombstone at %d", i)
		}
	}
	return nil
}

// StripKind clears every token of kind, compacts s and returns the text the
// remaining tokens are expected to render.
func StripKind(s *stream.Stream, kind token.Kind) (string, error) {
	want := make([]byte, 0, 64)
	for i := range s.Len() {
		tok := s.At(i)
		if tok.Kind != kind {
			want = append(want, tok.Text...)
			continue
		}
		if err := s.ClearAt(i); err != nil {
			return "", err
		}
	}
	s.Compact()
	return string(want), nil
}
