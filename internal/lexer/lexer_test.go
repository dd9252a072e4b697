package lexer_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"csfix/internal/lexer"
	"csfix/internal/token"
)

type tok struct {
	Kind string
	Text string
}

func lex(t *testing.T, src string) []tok {
	t.Helper()
	toks, err := lexer.Default.Tokenize(src)
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	out := make([]tok, len(toks))
	for i, tk := range toks {
		out[i] = tok{tk.Kind.String(), tk.Text}
	}
	return out
}

func k(kind token.Kind, text string) tok { return tok{kind.String(), text} }

func TestRoundTrip(t *testing.T) {
	samples := []string{
		"",
		"plain html only",
		"<?php\n$x = [1, 2];\n",
		"<p>\n<?php echo 1; ?>\n<b><?= $y ?>",
		"<?php\nnamespace A\\B;\nuse App\\Foo;\nclass A extends B { public function f() { return $this->x ?? null; } }\n",
		"<?php $s = \"a $b[0] {$c->d} ${e} \\\"q\\\"\";",
		"<?php $h = <<<EOT\n  Hi {$name}\n  EOT;\n$n = <<<'RAW'\n$not\nRAW;\n",
		"<?php /** doc */ // line\n# hash\n/* block */ $a = 0x1F + 0b11 + 0o17 + 1_000 + 1.5e-3 + .5;",
		"<?php /* unterminated",
		"<?php 'unterminated",
		"<?php \"unterminated $x",
		"<?php <<<EOT\nno end",
		"<?php $a <<< 3;",
		"<?php \x01 $x;",
		"<?php #[Attr] function f(int ...$a): ?int { return (int) $a[0] <=> 2; }",
		"<?php $cmd = `ls $dir`;",
	}
	for _, src := range samples {
		toks, err := lexer.Default.Tokenize(src)
		if err != nil {
			t.Fatalf("tokenize %q: %v", src, err)
		}
		var b strings.Builder
		for _, tk := range toks {
			if tk.Text == "" {
				t.Fatalf("empty token %v in %q", tk, src)
			}
			b.WriteString(tk.Text)
		}
		if got := b.String(); got != src {
			t.Fatalf("round trip mismatch:\n got %q\nwant %q", got, src)
		}
	}
}

func TestShortArrayAssignment(t *testing.T) {
	got := lex(t, "<?php\n$x = [1, 2];\n")
	want := []tok{
		k(token.OpenTag, "<?php\n"),
		k(token.Variable, "$x"),
		k(token.Whitespace, " "),
		k(token.Assign, "="),
		k(token.Whitespace, " "),
		k(token.LBracket, "["),
		k(token.LNumber, "1"),
		k(token.Comma, ","),
		k(token.Whitespace, " "),
		k(token.LNumber, "2"),
		k(token.RBracket, "]"),
		k(token.Semicolon, ";"),
		k(token.Whitespace, "\n"),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestInlineHTMLAndTags(t *testing.T) {
	got := lex(t, "<p>\n<?php echo 1; ?>\n<b>")
	want := []tok{
		k(token.InlineHTML, "<p>\n"),
		k(token.OpenTag, "<?php "),
		k(token.KwEcho, "echo"),
		k(token.Whitespace, " "),
		k(token.LNumber, "1"),
		k(token.Semicolon, ";"),
		k(token.Whitespace, " "),
		k(token.CloseTag, "?>\n"),
		k(token.InlineHTML, "<b>"),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestInterpolation(t *testing.T) {
	got := lex(t, `<?php "a $b[0] {$c->d} ${e}";`)
	want := []tok{
		k(token.OpenTag, "<?php "),
		k(token.DoubleQuote, `"`),
		k(token.EncapsedText, "a "),
		k(token.Variable, "$b"),
		k(token.LBracket, "["),
		k(token.NumString, "0"),
		k(token.RBracket, "]"),
		k(token.EncapsedText, " "),
		k(token.CurlyOpen, "{"),
		k(token.Variable, "$c"),
		k(token.ObjectOperator, "->"),
		k(token.Ident, "d"),
		k(token.RBrace, "}"),
		k(token.EncapsedText, " "),
		k(token.DollarOpenCurlyBraces, "${"),
		k(token.StringVarname, "e"),
		k(token.RBrace, "}"),
		k(token.DoubleQuote, `"`),
		k(token.Semicolon, ";"),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestPlainDoubleQuotedIsConstant(t *testing.T) {
	got := lex(t, `<?php "no \$vars here";`)
	if got[1] != k(token.ConstantString, `"no \$vars here"`) {
		t.Fatalf("got %v", got[1])
	}
}

func TestHeredoc(t *testing.T) {
	got := lex(t, "<?php\n$s = <<<EOT\nHi $name\n  EOT;\n")
	want := []tok{
		k(token.OpenTag, "<?php\n"),
		k(token.Variable, "$s"),
		k(token.Whitespace, " "),
		k(token.Assign, "="),
		k(token.Whitespace, " "),
		k(token.StartHeredoc, "<<<EOT\n"),
		k(token.EncapsedText, "Hi "),
		k(token.Variable, "$name"),
		k(token.EncapsedText, "\n"),
		k(token.EndHeredoc, "  EOT"),
		k(token.Semicolon, ";"),
		k(token.Whitespace, "\n"),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestNowdocKeepsBodyVerbatim(t *testing.T) {
	got := lex(t, "<?php <<<'RAW'\n$x {$y}\nRAW;")
	want := []tok{
		k(token.OpenTag, "<?php "),
		k(token.StartHeredoc, "<<<'RAW'\n"),
		k(token.EncapsedText, "$x {$y}\n"),
		k(token.EndHeredoc, "RAW"),
		k(token.Semicolon, ";"),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestCommentsAndNumbers(t *testing.T) {
	got := lex(t, "<?php /** d */ /**/ // x\n0x1F 1.5 .5 1e3 1_000")
	want := []tok{
		k(token.OpenTag, "<?php "),
		k(token.DocComment, "/** d */"),
		k(token.Whitespace, " "),
		k(token.Comment, "/**/"),
		k(token.Whitespace, " "),
		k(token.Comment, "// x\n"),
		k(token.LNumber, "0x1F"),
		k(token.Whitespace, " "),
		k(token.DNumber, "1.5"),
		k(token.Whitespace, " "),
		k(token.DNumber, ".5"),
		k(token.Whitespace, " "),
		k(token.DNumber, "1e3"),
		k(token.Whitespace, " "),
		k(token.LNumber, "1_000"),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestLineCommentStopsAtCloseTag(t *testing.T) {
	got := lex(t, "<?php // c ?>x")
	want := []tok{
		k(token.OpenTag, "<?php "),
		k(token.Comment, "// c "),
		k(token.CloseTag, "?>"),
		k(token.InlineHTML, "x"),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestContextualKeywords(t *testing.T) {
	got := lex(t, "<?php $o->class; Foo::new; enum Suit {} enum(1);")
	kinds := map[string]string{}
	for _, tk := range got {
		if tk.Kind != token.Whitespace.String() {
			kinds[tk.Text] = tk.Kind
		}
	}
	if kinds["class"] != token.Ident.String() || kinds["new"] != token.Ident.String() {
		t.Fatalf("member names must be identifiers: %v", kinds)
	}
	var enums []string
	for _, tk := range got {
		if tk.Text == "enum" {
			enums = append(enums, tk.Kind)
		}
	}
	if diff := cmp.Diff([]string{token.KwEnum.String(), token.Ident.String()}, enums); diff != "" {
		t.Fatalf("enum kinds (-want +got):\n%s", diff)
	}
}

func TestCasts(t *testing.T) {
	got := lex(t, "<?php (int)$a; ( String )$b; ($c);")
	if got[1] != k(token.IntCast, "(int)") {
		t.Fatalf("got %v", got[1])
	}
	if got[5] != k(token.StringCast, "( String )") {
		t.Fatalf("got %v", got[5])
	}
	if got[9] != k(token.LParen, "(") {
		t.Fatalf("got %v", got[9])
	}
}

func TestLineNumbers(t *testing.T) {
	toks, err := lexer.Default.Tokenize("<?php\n/* a\nb */\n$x;")
	if err != nil {
		t.Fatal(err)
	}
	for _, tk := range toks {
		if tk.Kind == token.Variable && tk.Line != 4 {
			t.Fatalf("$x on line %d, want 4", tk.Line)
		}
	}
}

func TestReporterAndStrict(t *testing.T) {
	var codes []lexer.Code
	lx := lexer.New(lexer.Options{Reporter: lexer.ReporterFunc(func(code lexer.Code, _ uint32, _ string) {
		codes = append(codes, code)
	})})
	if _, err := lx.Tokenize("<?php \x01 /* open"); err != nil {
		t.Fatalf("lenient lexer failed: %v", err)
	}
	if diff := cmp.Diff([]lexer.Code{lexer.UnknownChar, lexer.UnterminatedComment}, codes); diff != "" {
		t.Fatalf("codes (-want +got):\n%s", diff)
	}

	_, err := lexer.New(lexer.Options{Strict: true}).Tokenize("<?php 'open")
	var lexErr *lexer.Error
	if !errors.As(err, &lexErr) || lexErr.Code != lexer.UnterminatedString {
		t.Fatalf("expected unterminated string error, got %v", err)
	}
}
