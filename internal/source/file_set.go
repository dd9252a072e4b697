package source

import (
	"fmt"
	"os"

	"fortio.org/safecast"
)

// FileSet manages the files of one batch run.
type FileSet struct {
	files   []File
	index   map[string]FileID // path -> id
	baseDir string
}

// NewFileSet creates a new empty FileSet.
func NewFileSet() *FileSet {
	return NewFileSetWithBase("")
}

// NewFileSetWithBase creates a FileSet reporting paths relative to baseDir.
func NewFileSetWithBase(baseDir string) *FileSet {
	return &FileSet{
		files:   make([]File, 0),
		index:   make(map[string]FileID),
		baseDir: baseDir,
	}
}

// BaseDir returns the directory paths are reported relative to.
func (fileSet *FileSet) BaseDir() string {
	if fileSet.baseDir == "" {
		if wd, err := os.Getwd(); err == nil {
			return wd
		}
	}
	return fileSet.baseDir
}

// Add stores content under path and returns a new FileID. Adding the same
// path twice creates a new version; lookups by path return the latest.
func (fileSet *FileSet) Add(path, content string, flags FileFlags, mode os.FileMode) FileID {
	lenFiles, err := safecast.Conv[uint32](len(fileSet.files))
	if err != nil {
		panic(fmt.Errorf("len files overflow: %w", err))
	}
	id := FileID(lenFiles)
	normalized := normalizePath(path)
	fileSet.files = append(fileSet.files, File{
		ID:      id,
		Path:    normalized,
		Content: content,
		Hash:    Fingerprint(content),
		Flags:   flags | detectFlags(content),
		Mode:    mode,
	})
	fileSet.index[normalized] = id
	return id
}

// Load reads a file from disk and adds it.
func (fileSet *FileSet) Load(path string) (FileID, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	return fileSet.Add(path, string(content), 0, info.Mode().Perm()), nil
}

// AddVirtual adds an in-memory file with the FileVirtual flag.
func (fileSet *FileSet) AddVirtual(name, content string) FileID {
	return fileSet.Add(name, content, FileVirtual, 0o644)
}

// Get returns the file for id, or nil when id is unknown.
func (fileSet *FileSet) Get(id FileID) *File {
	if int(id) >= len(fileSet.files) {
		return nil
	}
	return &fileSet.files[id]
}

// GetByPath returns the latest version of path.
func (fileSet *FileSet) GetByPath(path string) (*File, bool) {
	if id, ok := fileSet.index[normalizePath(path)]; ok {
		return &fileSet.files[id], true
	}
	return nil, false
}

// Len returns the number of stored file versions.
func (fileSet *FileSet) Len() int { return len(fileSet.files) }

// DisplayPath formats the path of f relative to the set's base directory.
func (fileSet *FileSet) DisplayPath(f *File) string {
	if f == nil {
		return ""
	}
	if f.Flags&FileVirtual != 0 {
		return f.Path
	}
	if rel, err := RelativePath(f.Path, fileSet.BaseDir()); err == nil {
		return rel
	}
	return f.Path
}
