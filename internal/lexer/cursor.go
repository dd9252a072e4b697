package lexer

import "strings"

// Cursor is a byte position in the source text.
type Cursor struct {
	Src string
	Off int
}

// EOF reports whether the end of input was reached.
func (c *Cursor) EOF() bool {
	return c.Off >= len(c.Src)
}

// Peek returns the current byte or 0 at EOF.
func (c *Cursor) Peek() byte {
	if c.EOF() {
		return 0
	}
	return c.Src[c.Off]
}

// PeekAt returns the byte n positions ahead or 0 past the end.
func (c *Cursor) PeekAt(n int) byte {
	if c.Off+n >= len(c.Src) {
		return 0
	}
	return c.Src[c.Off+n]
}

// Bump advances one byte and returns it.
func (c *Cursor) Bump() byte {
	if c.EOF() {
		return 0
	}
	b := c.Src[c.Off]
	c.Off++
	return b
}

// Advance moves forward n bytes, clamped to the end.
func (c *Cursor) Advance(n int) {
	c.Off = min(c.Off+n, len(c.Src))
}

// Mark is a saved position.
type Mark int

// Mark saves the current position.
func (c *Cursor) Mark() Mark {
	return Mark(c.Off)
}

// Reset rewinds to m.
func (c *Cursor) Reset(m Mark) {
	c.Off = int(m)
}

// From returns the text consumed since m.
func (c *Cursor) From(m Mark) string {
	return c.Src[int(m):c.Off]
}

// Eat consumes b if it is next.
func (c *Cursor) Eat(b byte) bool {
	if !c.EOF() && c.Src[c.Off] == b {
		c.Off++
		return true
	}
	return false
}

// HasPrefix reports whether the remaining input starts with s.
func (c *Cursor) HasPrefix(s string) bool {
	return strings.HasPrefix(c.Src[c.Off:], s)
}

// HasPrefixFold is HasPrefix ignoring ASCII case.
func (c *Cursor) HasPrefixFold(s string) bool {
	if len(c.Src)-c.Off < len(s) {
		return false
	}
	return strings.EqualFold(c.Src[c.Off:c.Off+len(s)], s)
}

// EatString consumes s if the input starts with it.
func (c *Cursor) EatString(s string) bool {
	if c.HasPrefix(s) {
		c.Off += len(s)
		return true
	}
	return false
}

// EatNewline consumes one "\n" or "\r\n".
func (c *Cursor) EatNewline() bool {
	return c.EatString("\r\n") || c.Eat('\n')
}
