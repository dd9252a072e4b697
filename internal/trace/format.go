package trace

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"
)

// Format represents the output format for trace events.
type Format uint8

const (
	FormatAuto   Format = iota // pick by output path
	FormatText                 // human-readable text
	FormatNDJSON               // newline-delimited JSON
)

// ParseFormat converts a string to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return FormatAuto, nil
	case "text":
		return FormatText, nil
	case "ndjson", "json":
		return FormatNDJSON, nil
	default:
		return FormatAuto, fmt.Errorf("invalid trace format: %q (expected: auto|text|ndjson)", s)
	}
}

// FormatEvent formats an event according to the specified format.
func FormatEvent(ev *Event, format Format) []byte {
	if format == FormatNDJSON {
		return formatNDJSON(ev)
	}
	return formatText(ev)
}

type jsonEvent struct {
	Time       string            `json:"time"`
	Seq        uint64            `json:"seq"`
	Kind       string            `json:"kind"`
	Scope      string            `json:"scope"`
	SpanID     uint64            `json:"span,omitempty"`
	ParentID   uint64            `json:"parent,omitempty"`
	File       string            `json:"file,omitempty"`
	Name       string            `json:"name"`
	Detail     string            `json:"detail,omitempty"`
	DurationUS int64             `json:"duration_us,omitempty"`
	Extra      map[string]string `json:"extra,omitempty"`
}

func formatNDJSON(ev *Event) []byte {
	data, err := json.Marshal(jsonEvent{
		Time:       ev.Time.Format(time.RFC3339Nano),
		Seq:        ev.Seq,
		Kind:       ev.Kind.String(),
		Scope:      ev.Scope.String(),
		SpanID:     ev.SpanID,
		ParentID:   ev.ParentID,
		File:       ev.File,
		Name:       ev.Name,
		Detail:     ev.Detail,
		DurationUS: ev.Duration.Microseconds(),
		Extra:      ev.Extra,
	})
	if err != nil {
		return nil
	}
	return append(data, '\n')
}

var kindMarks = map[Kind]string{
	KindSpanBegin: "+ ",
	KindSpanEnd:   "- ",
	KindPoint:     ". ",
	KindHeartbeat: "~ ",
}

// formatText renders one line:
//
//	15:04:05.000 [file] + file src/A.php
//	15:04:05.002 [file] - file src/A.php (ok) 1.9ms {tokens=120}
func formatText(ev *Event) []byte {
	var sb strings.Builder
	sb.WriteString(ev.Time.Format("15:04:05.000"))
	fmt.Fprintf(&sb, " [%s] ", ev.Scope)
	sb.WriteString(kindMarks[ev.Kind])
	sb.WriteString(ev.Name)
	if ev.File != "" {
		sb.WriteByte(' ')
		sb.WriteString(ev.File)
	}
	if ev.Detail != "" {
		fmt.Fprintf(&sb, " (%s)", ev.Detail)
	}
	if ev.Kind == KindSpanEnd {
		sb.WriteByte(' ')
		sb.WriteString(ev.Duration.Round(100 * time.Microsecond).String())
	}
	if len(ev.Extra) > 0 {
		sb.WriteString(" {")
		for i, k := range slices.Sorted(maps.Keys(ev.Extra)) {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(k)
			sb.WriteByte('=')
			sb.WriteString(ev.Extra[k])
		}
		sb.WriteByte('}')
	}
	sb.WriteByte('\n')
	return []byte(sb.String())
}
