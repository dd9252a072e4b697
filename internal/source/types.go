package source

import "os"

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32
	// FileFlags encodes metadata about a source file.
	FileFlags uint8
)

const (
	// FileVirtual indicates the file was added from memory (test, stdin, etc.).
	FileVirtual FileFlags = 1 << iota
	// FileHasBOM marks content starting with a UTF-8 byte order mark.
	FileHasBOM
	// FileHasCRLF marks content using \r\n line breaks.
	FileHasCRLF
)

// File captures metadata and content for a single source file.
// Content is kept byte for byte: BOM and CRLF are detected, never rewritten,
// so a rendered token stream can be compared against it directly.
type File struct {
	ID      FileID
	Path    string
	Content string
	Hash    Digest
	Flags   FileFlags
	Mode    os.FileMode
}

// LineCol represents a human-readable position in a source file.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based
}
