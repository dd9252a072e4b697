package source

import (
	"path/filepath"
	"strings"
)

const bom = "\xEF\xBB\xBF"

func detectFlags(content string) FileFlags {
	var flags FileFlags
	if strings.HasPrefix(content, bom) {
		flags |= FileHasBOM
	}
	if strings.Contains(content, "\r\n") {
		flags |= FileHasCRLF
	}
	return flags
}

func normalizePath(p string) string {
	// slash form keeps reported paths stable across platforms
	return filepath.ToSlash(filepath.Clean(p))
}

// RelativePath returns path relative to baseDir. Paths that would escape
// baseDir are returned absolute instead.
func RelativePath(path, baseDir string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(absBase, absPath)
	if err != nil {
		return "", err
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return normalizePath(absPath), nil
	}
	return normalizePath(rel), nil
}

// LineColAt converts a byte offset into a 1-based line and column.
func LineColAt(content string, off int) LineCol {
	if off > len(content) {
		off = len(content)
	}
	line := strings.Count(content[:off], "\n") + 1
	lineStart := strings.LastIndexByte(content[:off], '\n') + 1
	return LineCol{Line: uint32(line), Col: uint32(off-lineStart) + 1}
}
