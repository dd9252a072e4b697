package stream_test

import (
	"testing"

	"csfix/internal/stream"
	"csfix/internal/token"
)

var memberModifiers = map[token.Kind]string{
	token.KwPublic:    "visibility",
	token.KwProtected: "visibility",
	token.KwPrivate:   "visibility",
	token.KwStatic:    "static",
	token.KwAbstract:  "abstract",
	token.KwFinal:     "final",
	token.KwVar:       "",
}

func publicDefault() stream.Attributes {
	return stream.Attributes{"visibility": token.New(token.KwPublic, "public")}
}

// normalize reorders modifiers as final/abstract, visibility, static.
func normalize(t *testing.T, src string, member token.Pattern) string {
	t.Helper()
	s := mustSource(t, src)
	i := indexOf(t, s, member)
	attrs := s.GrabModifiersBefore(i, memberModifiers, publicDefault())
	if _, err := s.ApplyAttributes(i, attrs.Ordered("final", "abstract", "visibility", "static")...); err != nil {
		t.Fatal(err)
	}
	s.Compact()
	return s.Render()
}

func TestAttributeRoundTrip(t *testing.T) {
	cases := []struct {
		src    string
		member token.Pattern
		want   string
	}{
		{
			"<?php class A { static public $x; }",
			token.K(token.Variable),
			"<?php class A { public static $x; }",
		},
		{
			"<?php class A { public static $x; }",
			token.K(token.Variable),
			"<?php class A { public static $x; }",
		},
		{
			"<?php class A { var $y; }",
			token.K(token.Variable),
			"<?php class A { public $y; }",
		},
		{
			"<?php class A { function f() {} }",
			token.K(token.KwFunction),
			"<?php class A { public function f() {} }",
		},
		{
			"<?php abstract class A {\n    static protected abstract function f();\n}",
			token.K(token.KwFunction),
			"<?php abstract class A {\n    abstract protected static function f();\n}",
		},
	}
	for _, tc := range cases {
		if got := normalize(t, tc.src, tc.member); got != tc.want {
			t.Fatalf("normalize(%q):\n got %q\nwant %q", tc.src, got, tc.want)
		}
	}
}

func TestGrabStopsAtStatementBoundary(t *testing.T) {
	s := mustSource(t, "<?php class A { private $a; public $b; }")
	b := indexOf(t, s, token.T("$b"))
	attrs := s.GrabModifiersBefore(b, memberModifiers, nil)
	if tok := attrs["visibility"]; tok == nil || tok.Text != "public" {
		t.Fatalf("visibility = %v", tok)
	}
	if got := s.Render(); got != "<?php class A { private $a; $b; }" {
		t.Fatalf("render = %q", got)
	}
}

func TestGrabKeepsCommentsAndDefaults(t *testing.T) {
	s := mustSource(t, "<?php class A { /** doc */ static $n; }")
	n := indexOf(t, s, token.K(token.Variable))
	defaults := publicDefault()
	attrs := s.GrabModifiersBefore(n, memberModifiers, defaults)
	if attrs["visibility"].Text != "public" || attrs["static"].Text != "static" {
		t.Fatalf("attrs = %v", attrs)
	}
	if attrs["visibility"] == defaults["visibility"] {
		t.Fatalf("defaults must be copied")
	}
	if got := s.Render(); got != "<?php class A { /** doc */ $n; }" {
		t.Fatalf("render = %q", got)
	}
}

func TestGrabKeepsCommentAfterModifier(t *testing.T) {
	const src = "<?php class A { public/*c*/function f() {} }"
	s := mustSource(t, src)
	fn := indexOf(t, s, token.K(token.KwFunction))
	attrs := s.GrabModifiersBefore(fn, memberModifiers, nil)
	if tok := attrs["visibility"]; tok == nil || tok.Text != "public" {
		t.Fatalf("visibility = %v", tok)
	}
	if got := s.Render(); got != "<?php class A { /*c*/function f() {} }" {
		t.Fatalf("render = %q", got)
	}

	if got, want := normalize(t, src, token.K(token.KwFunction)), "<?php class A { /*c*/public function f() {} }"; got != want {
		t.Fatalf("normalize:\n got %q\nwant %q", got, want)
	}
}

func TestApplyAttributesSkipsEmpty(t *testing.T) {
	s := mustSource(t, "<?php $x;")
	n, err := s.ApplyAttributes(1, nil, token.New(token.Void, ""), token.New(token.KwStatic, "static"))
	if err != nil || n != 2 {
		t.Fatalf("ApplyAttributes = %d, %v", n, err)
	}
	if got := s.Render(); got != "<?php static $x;" {
		t.Fatalf("render = %q", got)
	}
}
