package driver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"csfix/internal/fix"
	"csfix/internal/source"
	"csfix/internal/stream"
	"csfix/internal/token"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

var renameA = fix.Func("rename_a", func(s *stream.Stream) error {
	for _, tok := range s.Tokens() {
		if tok.Kind == token.Variable && tok.Text == "$a" {
			tok.SetContent("$b")
		}
	}
	return nil
})

type truncatingTokenizer struct{}

func (truncatingTokenizer) Tokenize(src string) ([]*token.Token, error) {
	if src == "" {
		return nil, nil
	}
	return []*token.Token{token.New(token.Verbatim, src[:len(src)-1])}, nil
}

type verbatimTokenizer struct{}

func (verbatimTokenizer) Tokenize(src string) ([]*token.Token, error) {
	return []*token.Token{token.New(token.Verbatim, src)}, nil
}

func TestProcessVerifiesRoundTrip(t *testing.T) {
	dir := t.TempDir()
	files := []string{
		writeFile(t, dir, "a.php", "<?php\necho 'a';\n"),
		writeFile(t, dir, "b.php", "<html><?= $x ?></html>\n"),
		writeFile(t, dir, "c.php", "<?php\necho 'a';\n"),
	}
	res, err := Process(context.Background(), files, Options{Jobs: 2, BaseDir: dir})
	if err != nil {
		t.Fatal(err)
	}
	if res.Failed() != 0 {
		t.Fatalf("unexpected failures: %+v", res.Files)
	}
	for i, fr := range res.Files {
		if fr.Path != files[i] {
			t.Fatalf("result %d is for %q, want %q", i, fr.Path, files[i])
		}
		if fr.Tokens == 0 || fr.Hash.IsZero() {
			t.Fatalf("empty result %+v", fr)
		}
		if fr.Changed || fr.Written {
			t.Fatalf("check-only run changed %q", fr.Path)
		}
	}
	if len(res.Timing.Phases) < 2 || res.Timing.Phases[0].Name != "tokenize" {
		t.Fatalf("unexpected timings %+v", res.Timing)
	}
}

func TestProcessFixAndWrite(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "x.php", "<?php $a = 1;\n")
	res, err := Process(context.Background(), []string{path}, Options{
		BaseDir: dir,
		Rules:   []fix.Rule{renameA},
		Diff:    true,
		Write:   true,
	})
	if err != nil {
		t.Fatal(err)
	}
	fr := res.Files[0]
	if fr.Err != nil {
		t.Fatal(fr.Err)
	}
	if !fr.Changed || !fr.Written || len(fr.Applied) != 1 || fr.Applied[0].Name != "rename_a" {
		t.Fatalf("unexpected result %+v", fr)
	}
	if !strings.Contains(fr.Diff, "+<?php $b = 1;") || !strings.Contains(fr.Diff, "-<?php $a = 1;") {
		t.Fatalf("unexpected diff:\n%s", fr.Diff)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "<?php $b = 1;\n" {
		t.Fatalf("file not rewritten: %q", got)
	}
	if res.Changed() != 1 {
		t.Fatalf("Changed() = %d", res.Changed())
	}
}

func TestProcessFixWithoutWriteLeavesFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "x.php", "<?php $a = 1;\n")
	res, err := Process(context.Background(), []string{path}, Options{Rules: []fix.Rule{renameA}})
	if err != nil {
		t.Fatal(err)
	}
	if !res.Files[0].Changed || res.Files[0].Written {
		t.Fatalf("unexpected result %+v", res.Files[0])
	}
	got, _ := os.ReadFile(path)
	if string(got) != "<?php $a = 1;\n" {
		t.Fatalf("file must be untouched, got %q", got)
	}
}

func TestProcessUnchangedByRules(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "x.php", "<?php $c = 1;\n")
	res, err := Process(context.Background(), []string{path}, Options{Rules: []fix.Rule{renameA}, Write: true})
	if err != nil {
		t.Fatal(err)
	}
	fr := res.Files[0]
	if fr.Err != nil || fr.Changed || fr.Written || len(fr.Applied) != 0 {
		t.Fatalf("unexpected result %+v", fr)
	}
}

func TestProcessRoundTripMismatch(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "x.php", "<?php echo 1;\n")
	res, err := Process(context.Background(), []string{path}, Options{
		BaseDir:   dir,
		Tokenizer: truncatingTokenizer{},
		Diff:      true,
	})
	if err != nil {
		t.Fatal(err)
	}
	fr := res.Files[0]
	if !errors.Is(fr.Err, ErrRoundTrip) {
		t.Fatalf("expected ErrRoundTrip, got %v", fr.Err)
	}
	if !strings.Contains(fr.Err.Error(), "x.php:1:14:") {
		t.Fatalf("mismatch must point at the lost newline, got %v", fr.Err)
	}
	if fr.Diff == "" {
		t.Fatalf("mismatch must carry a diff")
	}
	if res.Failed() != 1 {
		t.Fatalf("Failed() = %d", res.Failed())
	}
}

func TestProcessLoadError(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "ok.php", "<?php\n")
	missing := filepath.Join(dir, "missing.php")
	res, err := Process(context.Background(), []string{missing, good}, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if res.Files[0].Err == nil || !errors.Is(res.Files[0].Err, os.ErrNotExist) {
		t.Fatalf("expected load error, got %v", res.Files[0].Err)
	}
	if res.Files[1].Err != nil {
		t.Fatalf("good file failed: %v", res.Files[1].Err)
	}
}

func TestProcessLexerWarnings(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "x.php", "<?php echo 'open")

	res, err := Process(context.Background(), []string{path}, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if res.Files[0].Err != nil || len(res.Files[0].Warnings) != 1 {
		t.Fatalf("expected one warning, got %+v", res.Files[0])
	}

	res, err = Process(context.Background(), []string{path}, Options{Strict: true})
	if err != nil {
		t.Fatal(err)
	}
	if res.Files[0].Err == nil {
		t.Fatalf("strict mode must fail on warnings")
	}
}

func TestProcessDiskCache(t *testing.T) {
	dir := t.TempDir()
	dc, err := OpenDiskCacheAt(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatal(err)
	}
	path := writeFile(t, dir, "x.php", "<?php\nfunction f() { return [1, 2]; }\n")
	opts := Options{DiskCache: dc}

	first, err := Process(context.Background(), []string{path}, opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.Files[0].Cached {
		t.Fatalf("first run cannot be cached")
	}
	second, err := Process(context.Background(), []string{path}, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.Files[0].Cached || second.Files[0].Err != nil {
		t.Fatalf("second run should be served from disk: %+v", second.Files[0])
	}
	if second.Files[0].Tokens != first.Files[0].Tokens {
		t.Fatalf("token count differs: %d vs %d", second.Files[0].Tokens, first.Files[0].Tokens)
	}
}

func TestProcessCorruptCacheEntry(t *testing.T) {
	dir := t.TempDir()
	dc, err := OpenDiskCacheAt(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatal(err)
	}
	content := "<?php $a;\n"
	path := writeFile(t, dir, "x.php", content)
	bogus := []stream.Record{{Index: 0, Kind: "Verbatim", Text: "x"}}
	if err := dc.Put(source.Fingerprint(content), DiskEntry{Records: bogus}); err != nil {
		t.Fatal(err)
	}

	res, err := Process(context.Background(), []string{path}, Options{DiskCache: dc})
	if err != nil {
		t.Fatal(err)
	}
	fr := res.Files[0]
	if fr.Err != nil || fr.Cached {
		t.Fatalf("corrupt entry must be replaced: %+v", fr)
	}
	e, ok, err := dc.Get(source.Fingerprint(content))
	if err != nil || !ok || len(e.Records) != fr.Tokens {
		t.Fatalf("cache not refreshed: ok=%v err=%v len=%d", ok, err, len(e.Records))
	}
}

func TestProcessStrictAfterCachedWarnings(t *testing.T) {
	dir := t.TempDir()
	dc, err := OpenDiskCacheAt(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatal(err)
	}
	path := writeFile(t, dir, "x.php", "<?php $x = 'unterminated")

	lenient, err := Process(context.Background(), []string{path}, Options{DiskCache: dc})
	if err != nil {
		t.Fatal(err)
	}
	if fr := lenient.Files[0]; fr.Err != nil || len(fr.Warnings) == 0 {
		t.Fatalf("lenient run should pass with warnings: %+v", fr)
	}

	strict, err := Process(context.Background(), []string{path}, Options{DiskCache: dc, Strict: true})
	if err != nil {
		t.Fatal(err)
	}
	fr := strict.Files[0]
	if !fr.Cached {
		t.Fatalf("strict run should be served from disk: %+v", fr)
	}
	if fr.Err == nil {
		t.Fatalf("strict mode must fail on cached warnings")
	}
	if len(fr.Warnings) != len(lenient.Files[0].Warnings) {
		t.Fatalf("warnings not restored: %q vs %q", fr.Warnings, lenient.Files[0].Warnings)
	}
}

func TestProcessCustomTokenizerBypassesDiskCache(t *testing.T) {
	dir := t.TempDir()
	dc, err := OpenDiskCacheAt(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatal(err)
	}
	content := "<?php $a;\n"
	path := writeFile(t, dir, "x.php", content)
	opts := Options{DiskCache: dc, Tokenizer: verbatimTokenizer{}}

	for range 2 {
		res, err := Process(context.Background(), []string{path}, opts)
		if err != nil {
			t.Fatal(err)
		}
		if fr := res.Files[0]; fr.Err != nil || fr.Cached || fr.Tokens != 1 {
			t.Fatalf("custom tokenizer run: %+v", fr)
		}
	}
	if _, ok, _ := dc.Get(source.Fingerprint(content)); ok {
		t.Fatalf("custom tokenizer output must not be stored")
	}

	res, err := Process(context.Background(), []string{path}, Options{DiskCache: dc})
	if err != nil {
		t.Fatal(err)
	}
	if fr := res.Files[0]; fr.Cached || fr.Tokens <= 1 {
		t.Fatalf("default lexer reused foreign tokens: %+v", fr)
	}
}

func TestProcessProgressEvents(t *testing.T) {
	dir := t.TempDir()
	files := []string{
		writeFile(t, dir, "a.php", "<?php $a;\n"),
		writeFile(t, dir, "b.php", "<?php $b;\n"),
	}
	var (
		mu   sync.Mutex
		last = make(map[string]Event)
		seen = make(map[Stage]bool)
	)
	sink := SinkFunc(func(ev Event) {
		mu.Lock()
		defer mu.Unlock()
		last[ev.File] = ev
		seen[ev.Stage] = true
	})
	if _, err := Process(context.Background(), files, Options{Progress: sink, Jobs: 2}); err != nil {
		t.Fatal(err)
	}
	for _, f := range files {
		if last[f].Status != StatusDone {
			t.Fatalf("last event for %s = %+v", f, last[f])
		}
	}
	for _, st := range []Stage{StageLoad, StageTokenize, StageVerify} {
		if !seen[st] {
			t.Fatalf("no %s event", st)
		}
	}
}

func TestProcessCancelled(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.php", "<?php\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Process(ctx, []string{path}, Options{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestProcessNoFiles(t *testing.T) {
	res, err := Process(context.Background(), nil, Options{})
	if err != nil || len(res.Files) != 0 {
		t.Fatalf("unexpected %v %+v", err, res)
	}
}
