package trace

import (
	"bufio"
	"io"
	"os"
	"sync"
)

// StreamTracer writes every accepted event as soon as it is emitted. Regular
// file outputs are buffered until Flush.
type StreamTracer struct {
	mu     sync.Mutex
	out    io.Writer
	buf    *bufio.Writer
	level  Level
	format Format
}

// NewStreamTracer returns a tracer writing to w in format.
func NewStreamTracer(w io.Writer, level Level, format Format) *StreamTracer {
	if format == FormatAuto {
		format = FormatText
	}
	t := &StreamTracer{out: w, level: level, format: format}
	if f, ok := w.(*os.File); ok && !isStdStream(f) {
		t.buf = bufio.NewWriter(f)
	}
	return t
}

// Emit writes ev if its scope passes the level. Write errors are dropped so
// tracing never fails a run.
func (t *StreamTracer) Emit(ev *Event) {
	if ev.Kind != KindHeartbeat && !t.level.ShouldEmit(ev.Scope) {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	ev.Seq = NextSeq()
	data := FormatEvent(ev, t.format)
	if t.buf != nil {
		_, _ = t.buf.Write(data)
		return
	}
	_, _ = t.out.Write(data)
}

func (t *StreamTracer) Flush() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.buf != nil {
		return t.buf.Flush()
	}
	return nil
}

// Close flushes and closes the output unless it is a standard stream.
func (t *StreamTracer) Close() error {
	if err := t.Flush(); err != nil {
		return err
	}
	if closer, ok := t.out.(io.Closer); ok && !isStdStream(t.out) {
		return closer.Close()
	}
	return nil
}

func (t *StreamTracer) Level() Level  { return t.level }
func (t *StreamTracer) Enabled() bool { return t.level > LevelOff }
