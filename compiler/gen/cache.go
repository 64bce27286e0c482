package gen

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/syssam/patterngen/compiler/load"
)

// cacheVersion is folded into every digest so cached entries go stale
// whenever the generator's output changes shape.
const cacheVersion = "patterngen/1"

// cacheFile is the name of the cache index under the target directory.
const cacheFile = ".patterngen.cache"

type (
	// FileCache skips re-emitting classes whose descriptions are
	// unchanged since the last run. The index is persisted as a msgpack
	// file under the target directory.
	FileCache struct {
		dir  string
		path string

		mu      sync.Mutex
		entries map[string]*CacheEntry
	}

	// CacheEntry records one generated file.
	CacheEntry struct {
		// Digest of the class description and generator version.
		Digest string `msgpack:"digest"`
		// Path of the generated file, relative to the target directory.
		Path string `msgpack:"path"`
		// Size and ModTime of the file when it was recorded. A mismatch
		// on disk marks the entry stale.
		Size    int64     `msgpack:"size"`
		ModTime time.Time `msgpack:"mod_time"`
	}
)

// NewFileCache returns a cache persisted under the given target directory.
func NewFileCache(dir string) *FileCache {
	return &FileCache{
		dir:     dir,
		path:    filepath.Join(dir, cacheFile),
		entries: make(map[string]*CacheEntry),
	}
}

// Load reads the persisted index. A missing index is not an error, the
// cache starts empty.
func (c *FileCache) Load() error {
	data, err := os.ReadFile(c.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("cache: read %s: %w", c.path, err)
	}
	entries := make(map[string]*CacheEntry)
	if err := msgpack.Unmarshal(data, &entries); err != nil {
		// A corrupt index is discarded, every class regenerates.
		return nil
	}
	c.mu.Lock()
	c.entries = entries
	c.mu.Unlock()
	return nil
}

// Key computes the digest of a class description.
func (c *FileCache) Key(class *load.Class) (string, error) {
	data, err := json.Marshal(class)
	if err != nil {
		return "", fmt.Errorf("cache: digest class %q: %w", class.Name, err)
	}
	h := sha256.New()
	h.Write([]byte(cacheVersion))
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Fresh reports whether the class's generated file is up to date: the
// digest matches the recorded one and the file on disk is untouched.
func (c *FileCache) Fresh(class, digest string) bool {
	c.mu.Lock()
	e := c.entries[class]
	c.mu.Unlock()
	if e == nil || e.Digest != digest {
		return false
	}
	info, err := os.Stat(filepath.Join(c.dir, e.Path))
	if err != nil {
		return false
	}
	return info.Size() == e.Size && info.ModTime().Equal(e.ModTime)
}

// Record stores the digest and on-disk state of a freshly written file.
func (c *FileCache) Record(class, digest, name string) error {
	info, err := os.Stat(filepath.Join(c.dir, name))
	if err != nil {
		return fmt.Errorf("cache: stat %s: %w", name, err)
	}
	c.mu.Lock()
	c.entries[class] = &CacheEntry{
		Digest:  digest,
		Path:    name,
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}
	c.mu.Unlock()
	return nil
}

// Flush persists the index atomically next to the generated files.
func (c *FileCache) Flush() error {
	c.mu.Lock()
	data, err := msgpack.Marshal(c.entries)
	c.mu.Unlock()
	if err != nil {
		return fmt.Errorf("cache: encode index: %w", err)
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return fmt.Errorf("cache: create %s: %w", c.dir, err)
	}
	tmp, err := os.CreateTemp(c.dir, cacheFile+".*")
	if err != nil {
		return fmt.Errorf("cache: create temp index: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("cache: write index: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("cache: close index: %w", err)
	}
	if err := os.Rename(tmp.Name(), c.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("cache: replace index: %w", err)
	}
	return nil
}
