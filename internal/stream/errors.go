package stream

import "errors"

var (
	// ErrInvalidArgument reports a caller bug: unknown block kind, or a start
	// index that is not a delimiter of the requested kind.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrMalformedInput reports an unbalanced block.
	ErrMalformedInput = errors.New("malformed input")
	// ErrOutOfBounds reports an index beyond the stream or an absent cache key.
	ErrOutOfBounds = errors.New("out of bounds")
)
