package trace

import (
	"sync/atomic"
	"time"
)

var (
	seqCounter  atomic.Uint64
	spanCounter atomic.Uint64
	openSpans   atomic.Int64
)

// NextSeq returns the next global sequence number.
func NextSeq() uint64 { return seqCounter.Add(1) }

// NextSpanID returns a fresh span ID. IDs start at 1.
func NextSpanID() uint64 { return spanCounter.Add(1) }

// OpenSpans reports how many emitted spans have not ended yet.
func OpenSpans() int64 { return openSpans.Load() }

// Span tracks one logical operation between Begin and End.
type Span struct {
	tracer  Tracer
	id      uint64
	parent  uint64
	file    string
	scope   Scope
	name    string
	started time.Time
	extra   map[string]string
	ended   bool
}

var disabledSpan = Span{tracer: Nop}

// Begin emits a SpanBegin event for name under parent. The span inherits the
// parent's file. When t is disabled or filters the scope out, a no-op span
// is returned.
func Begin(t Tracer, scope Scope, name string, parent SpanContext) *Span {
	if !wants(t, scope) {
		s := disabledSpan
		return &s
	}
	s := &Span{
		tracer:  t,
		id:      NextSpanID(),
		parent:  parent.SpanID,
		file:    parent.File,
		scope:   scope,
		name:    name,
		started: time.Now(),
	}
	openSpans.Add(1)
	t.Emit(&Event{
		Time:     s.started,
		Kind:     KindSpanBegin,
		Scope:    scope,
		SpanID:   s.id,
		ParentID: s.parent,
		File:     s.file,
		Name:     name,
	})
	return s
}

// End emits the SpanEnd event once and returns the span duration.
func (s *Span) End(detail string) time.Duration {
	if s == nil || s.id == 0 || s.ended {
		return 0
	}
	s.ended = true
	openSpans.Add(-1)
	dur := time.Since(s.started)
	s.tracer.Emit(&Event{
		Time:     time.Now(),
		Kind:     KindSpanEnd,
		Scope:    s.scope,
		SpanID:   s.id,
		ParentID: s.parent,
		File:     s.file,
		Name:     s.name,
		Detail:   detail,
		Duration: dur,
		Extra:    s.extra,
	})
	return dur
}

// WithExtra records key=value on the end event.
func (s *Span) WithExtra(key, value string) *Span {
	if s == nil || s.id == 0 {
		return s
	}
	if s.extra == nil {
		s.extra = make(map[string]string)
	}
	s.extra[key] = value
	return s
}

// ID returns the span ID, 0 for a no-op span.
func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.id
}

// Context returns the span context children should use.
func (s *Span) Context() SpanContext {
	if s == nil {
		return SpanContext{}
	}
	return SpanContext{SpanID: s.id, File: s.file}
}

// Point emits an instant event if t records scope.
func Point(t Tracer, scope Scope, name, detail string) {
	if !wants(t, scope) {
		return
	}
	t.Emit(&Event{
		Time:   time.Now(),
		Kind:   KindPoint,
		Scope:  scope,
		Name:   name,
		Detail: detail,
	})
}

// wants reports whether t records events of scope. At LevelError every scope
// is recorded so a ring dump has full context.
func wants(t Tracer, scope Scope) bool {
	if t == nil || !t.Enabled() {
		return false
	}
	l := t.Level()
	return l == LevelError || l.ShouldEmit(scope)
}
