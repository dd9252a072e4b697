package tokfmt

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"csfix/internal/stream"
	"csfix/internal/token"
)

var (
	kindColor     = color.New(color.FgCyan)
	keywordColor  = color.New(color.FgMagenta, color.Bold)
	commentColor  = color.New(color.FgHiBlack)
	literalColor  = color.New(color.FgGreen)
	variableColor = color.New(color.FgYellow)
	emptyColor    = color.New(color.FgRed)
)

// WritePretty writes one line per record:
//
//	  12: Variable           "$x"                line 3
func WritePretty(w io.Writer, recs []stream.Record, opts Options) error {
	maxText := opts.MaxText
	if maxText <= 0 {
		maxText = 60
	}
	for _, r := range recs {
		kind := fmt.Sprintf("%-18s", r.Kind)
		text := runewidth.Truncate(strconv.Quote(r.Text), maxText, "…\"")
		text = runewidth.FillRight(text, maxText)
		if opts.Color {
			kind = kindColor.Sprint(kind)
			text = textColor(r).Sprint(text)
		}
		line := ""
		if r.Line > 0 {
			line = fmt.Sprintf(" line %d", r.Line)
		}
		if _, err := fmt.Fprintf(w, "%5d: %s %s%s\n", r.Index, kind, text, line); err != nil {
			return err
		}
	}
	return nil
}

func textColor(r stream.Record) *color.Color {
	if r.Empty {
		return emptyColor
	}
	if r.Comment {
		return commentColor
	}
	kind, _ := token.ParseKind(r.Kind)
	switch {
	case kind.IsKeyword() || kind.IsCast():
		return keywordColor
	case kind == token.Variable || kind == token.StringVarname:
		return variableColor
	case kind == token.ConstantString || kind == token.EncapsedText || kind == token.LNumber || kind == token.DNumber:
		return literalColor
	default:
		return color.New(color.Reset)
	}
}
