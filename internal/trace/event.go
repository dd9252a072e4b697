package trace

import "time"

// Kind is the type of a trace event.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindPoint     // instant event
	KindHeartbeat // periodic liveness signal
)

var kindNames = [...]string{
	KindSpanBegin: "begin",
	KindSpanEnd:   "end",
	KindPoint:     "point",
	KindHeartbeat: "heartbeat",
}

func (k Kind) String() string {
	if k > 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Scope is the granularity of an event. Coarser scopes have lower values,
// which lets a Level filter by comparison.
type Scope uint8

const (
	ScopeDriver Scope = iota + 1 // one batch run
	ScopeFile                    // one source file
	ScopePass                    // one rule pass over a stream
	ScopeCache                   // token cache traffic
)

var scopeNames = [...]string{
	ScopeDriver: "driver",
	ScopeFile:   "file",
	ScopePass:   "pass",
	ScopeCache:  "cache",
}

func (s Scope) String() string {
	if s > 0 && int(s) < len(scopeNames) {
		return scopeNames[s]
	}
	return "unknown"
}

// Event is a single trace record.
type Event struct {
	Time     time.Time
	Seq      uint64 // stamped by the tracer that stores the event
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64 // 0 for root spans and points
	File     string // source file the event belongs to, if any
	Name     string // e.g. "process", "rule:indent", "cache:hit"
	Detail   string
	Duration time.Duration // set on SpanEnd
	Extra    map[string]string
}
