package fix

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"csfix/internal/stream"
	"csfix/internal/trace"
)

// ErrNoFixes is returned when no rule changed the stream.
var ErrNoFixes = errors.New("no applicable fixes found")

// RunOptions configure a rule run.
type RunOptions struct {
	// Only restricts the run to the named rules when non-empty.
	Only []string
	// StopOnError aborts the run at the first failing rule instead of
	// skipping it.
	StopOnError bool
}

// AppliedRule records a rule that changed the stream.
type AppliedRule struct {
	Name string
	// Delta is the change in token count caused by the rule.
	Delta int
}

// SkippedRule captures a rule that failed or was filtered out.
type SkippedRule struct {
	Name   string
	Reason string
}

// Result aggregates a run over one stream.
type Result struct {
	Applied []AppliedRule
	Skipped []SkippedRule
	// Text is the rendered stream after the last rule.
	Text    string
	Changed bool
}

// Run applies rules to s in order. Each rule runs against a snapshot: when
// it fails (or panics) the stream is restored and the rule is recorded as
// skipped. After every successful rule the stream is compacted and rendered;
// a changed fingerprint marks the rule as applied.
//
// Run returns ErrNoFixes together with the result when nothing changed.
func Run(ctx context.Context, s *stream.Stream, rules []Rule, opts RunOptions) (*Result, error) {
	result := &Result{
		Applied: make([]AppliedRule, 0),
		Skipped: make([]SkippedRule, 0),
	}
	if s == nil {
		return result, fmt.Errorf("fix: stream is nil")
	}

	tracer := trace.FromContext(ctx)
	parent := trace.CurrentSpan(ctx)
	original := s.Render()
	seen := make(map[string]struct{}, len(rules))

	for _, rule := range rules {
		if err := ctx.Err(); err != nil {
			result.Text = s.Render()
			result.Changed = result.Text != original
			return result, err
		}
		name := rule.Name()
		if _, dup := seen[name]; dup {
			result.Skipped = append(result.Skipped, SkippedRule{Name: name, Reason: "duplicate rule"})
			continue
		}
		seen[name] = struct{}{}
		if len(opts.Only) > 0 && !slices.Contains(opts.Only, name) {
			result.Skipped = append(result.Skipped, SkippedRule{Name: name, Reason: "not selected"})
			continue
		}

		span := trace.Begin(tracer, trace.ScopePass, "rule:"+name, parent)
		applied, delta, err := applyRule(s, rule)
		switch {
		case err != nil:
			span.End("rolled back")
			if opts.StopOnError {
				result.Text = s.Render()
				result.Changed = result.Text != original
				return result, fmt.Errorf("rule %s: %w", name, err)
			}
			result.Skipped = append(result.Skipped, SkippedRule{Name: name, Reason: err.Error()})
		case applied:
			span.WithExtra("delta", fmt.Sprint(delta)).End("applied")
			result.Applied = append(result.Applied, AppliedRule{Name: name, Delta: delta})
		default:
			span.End("unchanged")
		}
	}

	result.Text = s.Render()
	result.Changed = result.Text != original
	if len(result.Applied) == 0 {
		return result, ErrNoFixes
	}
	return result, nil
}

func applyRule(s *stream.Stream, rule Rule) (applied bool, delta int, err error) {
	snap := s.Clone()
	before := s.Fingerprint()
	beforeLen := s.Len()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
		if err != nil {
			s.Restore(snap)
			applied, delta = false, 0
		}
	}()

	if err = rule.Apply(s); err != nil {
		return false, 0, err
	}
	s.Compact()
	s.Render()
	return s.Fingerprint() != before, s.Len() - beforeLen, nil
}
