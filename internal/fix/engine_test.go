package fix_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"csfix/internal/fix"
	"csfix/internal/stream"
	"csfix/internal/token"
	"csfix/internal/trace"
)

func newStream(t *testing.T, src string) *stream.Stream {
	t.Helper()
	s, err := stream.FromSource(src, stream.Options{Cache: stream.NewCache()})
	if err != nil {
		t.Fatal(err)
	}
	return s
}

var lowercaseKeywords = fix.Func("lowercase_keywords", func(s *stream.Stream) error {
	for _, tok := range s.Tokens() {
		if tok.IsKeyword() {
			tok.SetContent(strings.ToLower(tok.Text))
		}
	}
	return nil
})

var noSpaceBeforeSemicolon = fix.Func("no_space_before_semicolon", func(s *stream.Stream) error {
	for i, tok := range s.Tokens() {
		if tok.Kind != token.Semicolon {
			continue
		}
		prev, p, ok := s.PrevNonWhitespace(i)
		if !ok || prev == i-1 || p.Kind == token.Comment {
			continue
		}
		if err := s.ClearRange(prev+1, i-1); err != nil {
			return err
		}
	}
	return nil
})

var noop = fix.Func("noop", func(*stream.Stream) error { return nil })

func TestRunAppliesRulesInOrder(t *testing.T) {
	s := newStream(t, "<?php ECHO 1 ;")
	res, err := fix.Run(context.Background(), s, []fix.Rule{lowercaseKeywords, noop, noSpaceBeforeSemicolon}, fix.RunOptions{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Text != "<?php echo 1;" || !res.Changed {
		t.Fatalf("text = %q changed=%v", res.Text, res.Changed)
	}
	if len(res.Applied) != 2 || res.Applied[0].Name != "lowercase_keywords" || res.Applied[1].Name != "no_space_before_semicolon" {
		t.Fatalf("applied = %+v", res.Applied)
	}
	if res.Applied[0].Delta != 0 || res.Applied[1].Delta != -1 {
		t.Fatalf("deltas = %+v", res.Applied)
	}
	if len(res.Skipped) != 0 {
		t.Fatalf("skipped = %+v", res.Skipped)
	}
}

func TestRunRollsBackFailingRule(t *testing.T) {
	const src = "<?php $a = 1;"
	s := newStream(t, src)
	broken := fix.Func("broken", func(s *stream.Stream) error {
		s.At(1).SetContent("$oops")
		if err := s.InsertAt(0, token.FromText(";")); err != nil {
			return err
		}
		_, err := s.FindBlockEnd(stream.BlockParen, 1, true)
		return err
	})
	res, err := fix.Run(context.Background(), s, []fix.Rule{broken}, fix.RunOptions{})
	if !errors.Is(err, fix.ErrNoFixes) {
		t.Fatalf("expected ErrNoFixes, got %v", err)
	}
	if res.Text != src || res.Changed || s.Render() != src {
		t.Fatalf("stream not restored: %q", s.Render())
	}
	if len(res.Skipped) != 1 || !strings.Contains(res.Skipped[0].Reason, "invalid argument") {
		t.Fatalf("skipped = %+v", res.Skipped)
	}
}

func TestRunRecoversPanickingRule(t *testing.T) {
	s := newStream(t, "<?php ;")
	crash := fix.Func("crash", func(s *stream.Stream) error {
		s.At(1).Clear()
		_ = s.At(s.Len() + 10)
		return nil
	})
	res, err := fix.Run(context.Background(), s, []fix.Rule{crash, lowercaseKeywords}, fix.RunOptions{})
	if !errors.Is(err, fix.ErrNoFixes) {
		t.Fatalf("expected ErrNoFixes, got %v", err)
	}
	if len(res.Skipped) != 1 || !strings.HasPrefix(res.Skipped[0].Reason, "panic:") {
		t.Fatalf("skipped = %+v", res.Skipped)
	}
	if s.Render() != "<?php ;" {
		t.Fatalf("render = %q", s.Render())
	}
}

func TestRunStopOnError(t *testing.T) {
	s := newStream(t, "<?php ECHO 1;")
	sentinel := errors.New("rule failed")
	failing := fix.Func("failing", func(*stream.Stream) error { return sentinel })
	res, err := fix.Run(context.Background(), s, []fix.Rule{lowercaseKeywords, failing, noSpaceBeforeSemicolon}, fix.RunOptions{StopOnError: true})
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected rule error, got %v", err)
	}
	if res.Text != "<?php echo 1;" || len(res.Applied) != 1 {
		t.Fatalf("partial result = %+v", res)
	}
}

func TestRunSelectionAndDuplicates(t *testing.T) {
	s := newStream(t, "<?php ECHO 1 ;")
	rules := []fix.Rule{lowercaseKeywords, noSpaceBeforeSemicolon, lowercaseKeywords}
	res, err := fix.Run(context.Background(), s, rules, fix.RunOptions{Only: []string{"no_space_before_semicolon"}})
	if err != nil {
		t.Fatal(err)
	}
	if res.Text != "<?php ECHO 1;" {
		t.Fatalf("text = %q", res.Text)
	}
	reasons := map[string]string{}
	for _, sk := range res.Skipped {
		reasons[sk.Reason] = sk.Name
	}
	if reasons["not selected"] != "lowercase_keywords" || reasons["duplicate rule"] != "lowercase_keywords" {
		t.Fatalf("skipped = %+v", res.Skipped)
	}
}

func TestRunHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := newStream(t, "<?php ECHO 1;")
	res, err := fix.Run(ctx, s, []fix.Rule{lowercaseKeywords}, fix.RunOptions{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancellation, got %v", err)
	}
	if res.Changed {
		t.Fatalf("no rule should have run")
	}
}

func TestRunTracesPasses(t *testing.T) {
	var buf bytes.Buffer
	ctx := trace.WithTracer(context.Background(), trace.NewStreamTracer(&buf, trace.LevelDetail, trace.FormatText))
	s := newStream(t, "<?php ECHO 1;")
	if _, err := fix.Run(ctx, s, []fix.Rule{lowercaseKeywords, noop}, fix.RunOptions{}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "rule:lowercase_keywords (applied)") || !strings.Contains(out, "rule:noop (unchanged)") {
		t.Fatalf("trace output:\n%s", out)
	}
}
