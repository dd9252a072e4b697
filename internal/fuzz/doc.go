// Package fuzztests houses Go fuzz harnesses for the tokenizer and the token
// stream. They check that arbitrary input never panics and always renders
// back byte for byte, including after compaction and edits.
package fuzztests
