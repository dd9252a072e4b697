package token

import "strings"

// DefaultWhitespace is the character set IsWhitespace trims.
const DefaultWhitespace = " \t\n\r\x00\x0B"

// Token is a single lexical unit. Its content may be rewritten in place;
// its position is the index in the owning stream and is never stored here.
type Token struct {
	Kind Kind
	Text string
	Line uint32 // 1-based; 0 for synthesized tokens
}

// New creates a token with an explicit kind.
func New(kind Kind, text string) *Token {
	return &Token{Kind: kind, Text: text}
}

// FromText creates a token whose kind is inferred from text: punctuation and
// operators map to their kinds, all-whitespace text maps to Whitespace and
// anything else is Verbatim.
func FromText(text string) *Token {
	if k, ok := LookupPunct(text); ok {
		return &Token{Kind: k, Text: text}
	}
	if text != "" && strings.Trim(text, DefaultWhitespace) == "" {
		return &Token{Kind: Whitespace, Text: text}
	}
	return &Token{Kind: Verbatim, Text: text}
}

// Content returns the raw text.
func (t *Token) Content() string { return t.Text }

// SetContent rewrites the text in place. The kind is left untouched.
func (t *Token) SetContent(text string) { t.Text = text }

// Override replaces both kind and text.
func (t *Token) Override(kind Kind, text string) {
	t.Kind = kind
	t.Text = text
}

// Clear turns the token into a tombstone.
func (t *Token) Clear() {
	t.Kind = Void
	t.Text = ""
}

// Clone returns a detached copy.
func (t *Token) Clone() *Token {
	c := *t
	return &c
}

// IsEmpty reports whether the token is a tombstone.
func (t *Token) IsEmpty() bool { return t.Kind == Void && t.Text == "" }

// IsKind reports whether the token has one of the given kinds.
func (t *Token) IsKind(kinds ...Kind) bool {
	for _, k := range kinds {
		if t.Kind == k {
			return true
		}
	}
	return false
}

// IsWhitespace reports whether the token consists only of whitespace.
// Tombstones count as whitespace.
func (t *Token) IsWhitespace() bool { return t.IsWhitespaceWith(DefaultWhitespace) }

// IsWhitespaceWith is IsWhitespace with a custom character set, e.g. " \t"
// to treat line breaks as significant.
func (t *Token) IsWhitespaceWith(chars string) bool {
	if t.Kind != Whitespace && t.Kind != Void {
		return false
	}
	return strings.Trim(t.Text, chars) == ""
}

// IsComment reports whether the token is a comment or doc comment.
func (t *Token) IsComment() bool { return t.Kind == Comment || t.Kind == DocComment }

// IsClassy reports whether the token opens a class-like declaration.
func (t *Token) IsClassy() bool {
	return t.Kind == KwClass || t.Kind == KwInterface || t.Kind == KwTrait || t.Kind == KwEnum
}

// IsArray reports whether the token is the 'array' keyword or a retagged
// short-array opener.
func (t *Token) IsArray() bool { return t.Kind == KwArray || t.Kind == ArrayOpen }

// IsKeyword reports whether the token is a reserved word.
func (t *Token) IsKeyword() bool { return t.Kind.IsKeyword() }

// IsCast reports whether the token is a type cast.
func (t *Token) IsCast() bool { return t.Kind.IsCast() }

// IsNativeConstant reports whether the token is true, false or null.
func (t *Token) IsNativeConstant() bool {
	if t.Kind != Ident {
		return false
	}
	switch strings.ToLower(t.Text) {
	case "true", "false", "null":
		return true
	}
	return false
}

// Equals matches the token against a partial pattern.
func (t *Token) Equals(p Pattern) bool { return Compare(t, p) }

// EqualsAny reports whether any pattern matches.
func (t *Token) EqualsAny(ps ...Pattern) bool {
	for _, p := range ps {
		if Compare(t, p) {
			return true
		}
	}
	return false
}

// String renders the token for debugging.
func (t *Token) String() string {
	return t.Kind.String() + "(" + quote(t.Text) + ")"
}

func quote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '"':
			b.WriteString(`\"`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
