package trace

import "context"

type tracerKey struct{}

type spanKey struct{}

// SpanContext is the part of a span that flows down the call tree: the
// parent for new spans and the file their events are attributed to.
type SpanContext struct {
	SpanID uint64
	File   string
}

// FromContext returns the tracer attached to ctx, or Nop.
func FromContext(ctx context.Context) Tracer {
	if ctx == nil {
		return Nop
	}
	if t, ok := ctx.Value(tracerKey{}).(Tracer); ok {
		return t
	}
	return Nop
}

// WithTracer attaches t to ctx. A nil tracer is replaced by Nop.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, tracerKey{}, t)
}

// CurrentSpan returns the innermost span context of ctx.
func CurrentSpan(ctx context.Context) SpanContext {
	if ctx == nil {
		return SpanContext{}
	}
	sc, _ := ctx.Value(spanKey{}).(SpanContext)
	return sc
}

// WithSpanContext replaces the span context of ctx.
func WithSpanContext(ctx context.Context, sc SpanContext) context.Context {
	return context.WithValue(ctx, spanKey{}, sc)
}

// WithFile attributes every span started below ctx to path.
func WithFile(ctx context.Context, path string) context.Context {
	sc := CurrentSpan(ctx)
	sc.File = path
	return WithSpanContext(ctx, sc)
}

// StartSpan begins a span under the current span of ctx using the tracer of
// ctx. The returned context carries the new span; when the scope is filtered
// out ctx keeps its current parent.
func StartSpan(ctx context.Context, scope Scope, name string) (context.Context, *Span) {
	parent := CurrentSpan(ctx)
	span := Begin(FromContext(ctx), scope, name, parent)
	if span.ID() == 0 {
		return ctx, span
	}
	return WithSpanContext(ctx, span.Context()), span
}
