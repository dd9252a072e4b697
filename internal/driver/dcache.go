package driver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"csfix/internal/lexer"
	"csfix/internal/source"
	"csfix/internal/stream"
)

// Bump when DiskPayload or stream.Record changes shape.
const diskCacheSchemaVersion uint16 = 2

// DiskCache stores tokenized files on disk, keyed by content fingerprint.
// Safe for concurrent use.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskEntry is what the cache keeps for one file: its token records and the
// warnings the lexer raised while producing them.
type DiskEntry struct {
	Records  []stream.Record
	Warnings []string
}

// DiskPayload is the on-disk form of one tokenized file. Lexer names the
// lexer revision that produced the records.
type DiskPayload struct {
	Schema   uint16
	Lexer    string
	Hash     source.Digest
	Tokens   int
	Records  []stream.Record
	Warnings []string
}

// OpenDiskCache opens the cache for app under $XDG_CACHE_HOME (or ~/.cache).
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenDiskCacheAt(filepath.Join(base, app))
}

// OpenDiskCacheAt opens a cache rooted at dir, creating it when missing.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *DiskCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

func (c *DiskCache) pathFor(key source.Digest) string {
	return filepath.Join(c.dir, "tokens", key.String()+".mp")
}

// Put serializes the entry under key.
func (c *DiskCache) Put(key source.Digest, e DiskEntry) (err error) {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err = os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(f.Name())
		}
	}()

	payload := DiskPayload{
		Schema:   diskCacheSchemaVersion,
		Lexer:    lexer.Version,
		Hash:     key,
		Tokens:   len(e.Records),
		Records:  e.Records,
		Warnings: e.Warnings,
	}
	if err = msgpack.NewEncoder(f).Encode(&payload); err != nil {
		_ = f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get loads the entry stored under key. A missing entry, or one written
// with another schema or lexer revision, reports false without an error.
func (c *DiskCache) Get(key source.Digest) (DiskEntry, bool, error) {
	if c == nil {
		return DiskEntry{}, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DiskEntry{}, false, nil
		}
		return DiskEntry{}, false, err
	}
	defer f.Close()

	var payload DiskPayload
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return DiskEntry{}, false, fmt.Errorf("decode %s: %w", key.Short(), err)
	}
	if payload.Schema != diskCacheSchemaVersion || payload.Lexer != lexer.Version ||
		payload.Hash != key || payload.Tokens != len(payload.Records) {
		return DiskEntry{}, false, nil
	}
	return DiskEntry{Records: payload.Records, Warnings: payload.Warnings}, true, nil
}

// Drop removes the entry stored under key, if any.
func (c *DiskCache) Drop(key source.Digest) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := os.Remove(c.pathFor(key)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// DropAll invalidates the whole cache.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return err
	}
	return os.RemoveAll(old)
}
