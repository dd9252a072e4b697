package stream_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"csfix/internal/lexer"
	"csfix/internal/source"
	"csfix/internal/stream"
	"csfix/internal/token"
	"csfix/internal/trace"
)

const cachedSrc = "<?php\n$a = 1;\n"

func TestFromSourceReusesCachedStream(t *testing.T) {
	cache := stream.NewCache()
	opts := stream.Options{Cache: cache}
	first, err := stream.FromSource(cachedSrc, opts)
	if err != nil {
		t.Fatal(err)
	}
	second, err := stream.FromSource(cachedSrc, opts)
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Fatalf("unchanged source must hit the cache")
	}
	if first.Render() != second.Render() {
		t.Fatalf("renders differ")
	}
	if cache.Len() != 1 || !cache.Has(source.Fingerprint(cachedSrc)) {
		t.Fatalf("cache holds %d entries", cache.Len())
	}
}

func TestRenderMovesCacheSlot(t *testing.T) {
	cache := stream.NewCache()
	s, err := stream.FromSource(cachedSrc, stream.Options{Cache: cache})
	if err != nil {
		t.Fatal(err)
	}
	old := s.Fingerprint()
	s.At(indexOf(t, s, token.K(token.LNumber))).SetContent("2")
	text := s.Render()

	if cache.Has(old) {
		t.Fatalf("old fingerprint must be evicted")
	}
	got, err := cache.Get(source.Fingerprint(text))
	if err != nil || got != s {
		t.Fatalf("new fingerprint must map to the stream: %v", err)
	}
	if cache.Len() != 1 {
		t.Fatalf("stream owns %d slots", cache.Len())
	}
	if _, err := cache.Get(old); !errors.Is(err, stream.ErrOutOfBounds) {
		t.Fatalf("absent key: %v", err)
	}
}

func TestCompactOnCacheHit(t *testing.T) {
	cache := stream.NewCache()
	s, err := stream.FromSource("<?php $a;", stream.Options{Cache: cache})
	if err != nil {
		t.Fatal(err)
	}
	if err := s.InsertAt(1, token.New(token.Void, "")); err != nil {
		t.Fatal(err)
	}
	again, err := stream.FromSource("<?php $a;", stream.Options{Cache: cache})
	if err != nil {
		t.Fatal(err)
	}
	if again != s || again.Len() != 3 {
		t.Fatalf("cached stream must be compacted, len %d", again.Len())
	}
}

func TestStaleCachedStreamIsRebuilt(t *testing.T) {
	cache := stream.NewCache()
	opts := stream.Options{Cache: cache}
	s, err := stream.FromSource(cachedSrc, opts)
	if err != nil {
		t.Fatal(err)
	}
	s.At(1).SetContent("$changed")

	fresh, err := stream.FromSource(cachedSrc, opts)
	if err != nil {
		t.Fatal(err)
	}
	if fresh == s {
		t.Fatalf("mutated stream must not be returned for the old text")
	}
	if fresh.Render() != cachedSrc {
		t.Fatalf("fresh stream renders %q", fresh.Render())
	}
	if cache.Len() != 2 {
		t.Fatalf("both streams own a slot, got %d", cache.Len())
	}
}

func TestSetSourceMovesSlot(t *testing.T) {
	cache := stream.NewCache()
	s, err := stream.FromSource(cachedSrc, stream.Options{Cache: cache})
	if err != nil {
		t.Fatal(err)
	}
	if err := s.SetSource("<?php echo 1;"); err != nil {
		t.Fatal(err)
	}
	if cache.Has(source.Fingerprint(cachedSrc)) || !cache.Has(source.Fingerprint("<?php echo 1;")) {
		t.Fatalf("slot did not move")
	}
	if s.Render() != "<?php echo 1;" {
		t.Fatalf("render = %q", s.Render())
	}
}

func TestCacheClear(t *testing.T) {
	cache := stream.NewCache()
	for _, src := range []string{"<?php 1;", "<?php 2;", "<?php 3;"} {
		if _, err := stream.FromSource(src, stream.Options{Cache: cache}); err != nil {
			t.Fatal(err)
		}
	}
	cache.ClearKey(source.Fingerprint("<?php 2;"))
	if cache.Len() != 2 || cache.Has(source.Fingerprint("<?php 2;")) {
		t.Fatalf("ClearKey failed")
	}
	cache.Clear()
	if cache.Len() != 0 {
		t.Fatalf("Clear left %d entries", cache.Len())
	}
}

type failingTokenizer struct{}

func (failingTokenizer) Tokenize(string) ([]*token.Token, error) {
	return nil, errors.New("boom")
}

func TestFromSourceTokenizerError(t *testing.T) {
	cache := stream.NewCache()
	_, err := stream.FromSource("<?php", stream.Options{Cache: cache, Tokenizer: failingTokenizer{}})
	if err == nil || !strings.Contains(err.Error(), "boom") {
		t.Fatalf("expected tokenizer error, got %v", err)
	}
	if cache.Len() != 0 {
		t.Fatalf("failed build must not be cached")
	}

	strict := lexer.New(lexer.Options{Strict: true})
	if _, err := stream.FromSource("<?php 'open", stream.Options{Tokenizer: strict}); err == nil {
		t.Fatalf("strict lexer error must propagate")
	}
}

func TestCacheTracing(t *testing.T) {
	var buf bytes.Buffer
	tr := trace.NewStreamTracer(&buf, trace.LevelDebug, trace.FormatText)
	cache := stream.NewCache().WithTracer(tr)
	opts := stream.Options{Cache: cache}
	for range 2 {
		if _, err := stream.FromSource(cachedSrc, opts); err != nil {
			t.Fatal(err)
		}
	}
	out := buf.String()
	for _, want := range []string{"cache:miss", "cache:set", "cache:hit"} {
		if !strings.Contains(out, want) {
			t.Fatalf("trace lacks %s:\n%s", want, out)
		}
	}
}
