package stream

import (
	"fmt"
	"slices"

	"csfix/internal/token"
)

// BlockKind selects a delimiter pair for FindBlockEnd.
type BlockKind uint8

const (
	BlockParen BlockKind = iota + 1 // ( )
	BlockCurly                      // { }, also opened by "{$" and "${" in strings
)

func (k BlockKind) String() string {
	switch k {
	case BlockParen:
		return "paren"
	case BlockCurly:
		return "curly"
	default:
		return fmt.Sprintf("BlockKind(%d)", uint8(k))
	}
}

type blockEdges struct {
	open  []token.Kind
	close token.Kind
}

var blockTable = map[BlockKind]blockEdges{
	BlockParen: {open: []token.Kind{token.LParen}, close: token.RParen},
	BlockCurly: {open: []token.Kind{token.LBrace, token.CurlyOpen, token.DollarOpenCurlyBraces}, close: token.RBrace},
}

// FindBlockEnd returns the index of the delimiter matching the one at start.
// Forward scans from an opener to its closer; backward scans from a closer to
// its opener.
func (s *Stream) FindBlockEnd(kind BlockKind, start int, forward bool) (int, error) {
	edges, ok := blockTable[kind]
	if !ok {
		return -1, fmt.Errorf("block kind %v: %w", kind, ErrInvalidArgument)
	}
	if !s.OffsetExists(start) {
		return -1, fmt.Errorf("block start %d of %d: %w", start, len(s.toks), ErrInvalidArgument)
	}

	isOpen := func(t *token.Token) bool { return slices.Contains(edges.open, t.Kind) }
	isClose := func(t *token.Token) bool { return t.Kind == edges.close }
	step := 1
	if !forward {
		isOpen, isClose = isClose, isOpen
		step = -1
	}

	if first := s.toks[start]; !isOpen(first) {
		return -1, fmt.Errorf("%v block at %d starts with %v: %w", kind, start, first, ErrInvalidArgument)
	}

	depth := 0
	for i := start; s.OffsetExists(i); i += step {
		switch tok := s.toks[i]; {
		case isOpen(tok):
			depth++
		case isClose(tok):
			depth--
		}
		if depth == 0 {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%v block at %d is not closed: %w", kind, start, ErrMalformedInput)
}
