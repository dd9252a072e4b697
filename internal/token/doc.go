// Package token defines lexical token kinds and the mutable Token used by the
// stream engine.
// Invariants:
//   - Token.Text is the exact source slice; concatenating the texts of a
//     tokenized file reproduces the file byte for byte.
//   - A token never knows its own index. Positions belong to the stream.
//   - Cleared tokens (Kind Void, empty text) are tombstones awaiting compaction.
//   - Single-character punctuation has one kind per character; ArrayOpen and
//     ArrayClose are pseudo kinds that only rules assign.
package token
