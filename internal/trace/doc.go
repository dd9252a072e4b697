// Package trace provides the tracing subsystem of csfix.
//
// Tracing follows a run from the driver down to individual rule passes and
// token-cache traffic, which helps to diagnose slow files and stale cache hits.
//
// # Usage
//
//	csfix check --trace=- --trace-level=detail src/
//
// # Architecture
//
//   - Nop: zero-overhead tracer used when tracing is disabled
//   - StreamTracer: immediate write to output (file/stderr)
//   - RingTracer: circular buffer, dumped on failure
//   - MultiTracer: combines multiple tracers
//
// # Levels
//
//   - LevelOff: no tracing
//   - LevelError: only ring dumps on failure
//   - LevelPhase: driver and per-file boundaries
//   - LevelDetail: rule passes
//   - LevelDebug: everything including token cache hits and misses
//
// # Context Propagation
//
// The tracer and the current span travel in the context. Spans started below
// trace.WithFile are attributed to that file, which lets a ring dump keep only
// the events of failed files.
//
//	ctx = trace.WithTracer(ctx, tracer)
//	ctx, span := trace.StartSpan(trace.WithFile(ctx, path), trace.ScopeFile, "file")
//	defer span.End("ok")
package trace
