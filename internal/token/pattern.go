package token

// Pattern is a sparse token prototype. Only the fields it carries are
// compared: a kind, a text, or both.
type Pattern struct {
	Kind    Kind
	Text    string
	HasKind bool
	HasText bool
}

// K matches any token of the given kind.
func K(kind Kind) Pattern { return Pattern{Kind: kind, HasKind: true} }

// T matches any token with the given text.
func T(text string) Pattern { return Pattern{Text: text, HasText: true} }

// KT matches a token with both the given kind and text.
func KT(kind Kind, text string) Pattern {
	return Pattern{Kind: kind, Text: text, HasKind: true, HasText: true}
}

// Kinds builds one kind pattern per kind.
func Kinds(kinds ...Kind) []Pattern {
	out := make([]Pattern, len(kinds))
	for i, k := range kinds {
		out[i] = K(k)
	}
	return out
}

// Texts builds one text pattern per string.
func Texts(texts ...string) []Pattern {
	out := make([]Pattern, len(texts))
	for i, s := range texts {
		out[i] = T(s)
	}
	return out
}

// Compare reports whether tok matches p on the fields p carries.
// An empty pattern matches nothing.
func Compare(tok *Token, p Pattern) bool {
	if tok == nil || (!p.HasKind && !p.HasText) {
		return false
	}
	if p.HasKind && tok.Kind != p.Kind {
		return false
	}
	if p.HasText && tok.Text != p.Text {
		return false
	}
	return true
}

// Of returns the full pattern of tok (kind and text).
func Of(tok *Token) Pattern { return KT(tok.Kind, tok.Text) }
