// Package tokfmt writes exported token records for tooling and debugging.
package tokfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"csfix/internal/stream"
)

// Format selects an output encoding.
type Format uint8

const (
	FormatPretty Format = iota + 1
	FormatJSON
	FormatYAML
	FormatMsgpack
)

func (f Format) String() string {
	switch f {
	case FormatPretty:
		return "pretty"
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	case FormatMsgpack:
		return "msgpack"
	default:
		return "unknown"
	}
}

// ParseFormat converts a flag value to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "pretty", "":
		return FormatPretty, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "msgpack", "mp":
		return FormatMsgpack, nil
	default:
		return 0, fmt.Errorf("unknown token format %q (expected: pretty|json|yaml|msgpack)", s)
	}
}

// Options tune the writers. Only the pretty writer uses them.
type Options struct {
	Color bool
	// MaxText truncates long token texts in pretty output (0 = 60 cells).
	MaxText int
}

// Write encodes records in the given format.
func Write(w io.Writer, recs []stream.Record, format Format, opts Options) error {
	switch format {
	case FormatPretty:
		return WritePretty(w, recs, opts)
	case FormatJSON:
		return WriteJSON(w, recs)
	case FormatYAML:
		return WriteYAML(w, recs)
	case FormatMsgpack:
		return WriteMsgpack(w, recs)
	default:
		return fmt.Errorf("unknown token format %v", format)
	}
}

// WriteJSON writes an indented JSON array.
func WriteJSON(w io.Writer, recs []stream.Record) error {
	if recs == nil {
		recs = []stream.Record{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(recs)
}

// WriteYAML writes a YAML sequence of records.
func WriteYAML(w io.Writer, recs []stream.Record) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(recs); err != nil {
		return err
	}
	return enc.Close()
}

// WriteMsgpack writes records as a msgpack array.
func WriteMsgpack(w io.Writer, recs []stream.Record) error {
	enc := msgpack.NewEncoder(w)
	enc.UseCompactInts(true)
	return enc.Encode(recs)
}

// ReadMsgpack is the inverse of WriteMsgpack.
func ReadMsgpack(r io.Reader) ([]stream.Record, error) {
	var recs []stream.Record
	if err := msgpack.NewDecoder(r).Decode(&recs); err != nil {
		return nil, fmt.Errorf("decode token records: %w", err)
	}
	return recs, nil
}
