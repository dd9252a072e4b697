package stream

import (
	"strings"

	"csfix/internal/source"
)

// RenderRange concatenates the texts of tokens start..end inclusive. The
// range is clamped to the stream; an empty range renders "".
func (s *Stream) RenderRange(start, end int) string {
	start = max(start, 0)
	end = min(end, len(s.toks)-1)
	if start > end {
		return ""
	}
	var b strings.Builder
	n := 0
	for _, tok := range s.toks[start : end+1] {
		n += len(tok.Text)
	}
	b.Grow(n)
	for _, tok := range s.toks[start : end+1] {
		b.WriteString(tok.Text)
	}
	return b.String()
}

// Render returns the full text of the stream. The text becomes the stream's
// source: the fingerprint is recomputed and the cache slot moves with it.
func (s *Stream) Render() string {
	text := s.RenderRange(0, len(s.toks)-1)
	s.setFingerprint(source.Fingerprint(text))
	return text
}
