package fuzztests

import (
	"strings"
	"testing"

	"csfix/internal/lexer"
	"csfix/internal/stream"
	"csfix/internal/testkit"
	"csfix/internal/token"
)

func FuzzTokenizeRoundTrip(f *testing.F) {
	addSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		src := string(clampSeed(input))
		toks, err := lexer.Default.Tokenize(src)
		if err != nil {
			t.Fatalf("non-strict lexer returned %v", err)
		}
		var b strings.Builder
		for _, tok := range toks {
			b.WriteString(tok.Text)
		}
		if got := b.String(); got != src {
			t.Fatalf("round trip mismatch:\n got %q\nwant %q", got, src)
		}
	})
}

func FuzzStreamEdits(f *testing.F) {
	addSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		src := string(clampSeed(input))
		s, err := stream.FromSource(src, stream.Options{Cache: stream.NewCache()})
		if err != nil {
			t.Fatal(err)
		}
		if err := testkit.CheckStreamInvariants(s, src); err != nil {
			t.Fatal(err)
		}

		want, err := testkit.StripKind(s, token.Whitespace)
		if err != nil {
			t.Fatal(err)
		}
		if got := s.Render(); got != want {
			t.Fatalf("after compaction got %q, want %q", got, want)
		}
		if err := testkit.CheckCompacted(s); err != nil {
			t.Fatal(err)
		}
	})
}
