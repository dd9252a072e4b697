// Package stream implements the mutable token stream that rewrite rules
// operate on.
//
// A Stream is an index-addressable, resizable sequence of *token.Token built
// from source text by a lexer.Tokenizer. Rules edit it in place: they rewrite
// token contents, insert tokens, and delete by clearing tokens to tombstones.
// Tombstones keep every held index valid until Compact removes them.
//
// Streams built from text are registered in a Cache under the fingerprint of
// that text. Rendering re-fingerprints the stream and moves its cache slot,
// so a stream owns at most one slot at a time.
//
// Neither Stream nor Cache is safe for concurrent mutation.
package stream
