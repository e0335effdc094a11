package internal

import (
	"crypto/md5"
	"encoding/gob"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	tt "github.com/eigengo/quality/internal/types"
)

const cacheFileName = "quality_cache.gob"

type fileMetadata struct {
	Hash         string
	LastModified time.Time
}

type CacheEntry struct {
	Metadata   fileMetadata
	Violations []tt.Violation
	CreatedAt  time.Time
}

// Cache stores per-file lint results keyed by content hash so unchanged
// files are not re-linted between runs.
type Cache struct {
	CacheDir string
	entries  map[string]CacheEntry
	mutex    sync.RWMutex
}

func NewCache(cacheDir string) (*Cache, error) {
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	cache := &Cache{
		CacheDir: cacheDir,
		entries:  make(map[string]CacheEntry),
	}

	if err := cache.load(); err != nil {
		return nil, fmt.Errorf("failed to load cache: %w", err)
	}

	return cache, nil
}

func (c *Cache) load() error {
	cacheFile := filepath.Join(c.CacheDir, cacheFileName)
	file, err := os.Open(cacheFile)
	if os.IsNotExist(err) {
		return nil // cache file doesn't exist yet. This is fine.
	}
	if err != nil {
		return fmt.Errorf("failed to open cache file: %w", err)
	}
	defer file.Close()

	decoder := gob.NewDecoder(file)
	if err := decoder.Decode(&c.entries); err != nil {
		return fmt.Errorf("failed to decode cache file: %w", err)
	}

	return nil
}

// Save persists the cache to disk.
func (c *Cache) Save() error {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	cacheFile := filepath.Join(c.CacheDir, cacheFileName)
	file, err := os.Create(cacheFile)
	if err != nil {
		return fmt.Errorf("failed to create cache file: %w", err)
	}
	defer file.Close()

	encoder := gob.NewEncoder(file)
	if err := encoder.Encode(c.entries); err != nil {
		return fmt.Errorf("failed to encode cache: %w", err)
	}
	return nil
}

// Get returns the cached violations for a file if its content has not
// changed since the entry was stored.
func (c *Cache) Get(filename string) ([]tt.Violation, bool) {
	c.mutex.RLock()
	entry, ok := c.entries[filename]
	c.mutex.RUnlock()
	if !ok {
		return nil, false
	}

	info, err := os.Stat(filename)
	if err != nil {
		return nil, false
	}
	if info.ModTime().Equal(entry.Metadata.LastModified) {
		return entry.Violations, true
	}

	hash, err := hashFile(filename)
	if err != nil || hash != entry.Metadata.Hash {
		return nil, false
	}
	return entry.Violations, true
}

// Set stores the violations for a file together with its current
// content hash and modification time.
func (c *Cache) Set(filename string, violations []tt.Violation) {
	hash, err := hashFile(filename)
	if err != nil {
		return
	}
	info, err := os.Stat(filename)
	if err != nil {
		return
	}

	c.mutex.Lock()
	c.entries[filename] = CacheEntry{
		Metadata:   fileMetadata{Hash: hash, LastModified: info.ModTime()},
		Violations: violations,
		CreatedAt:  time.Now(),
	}
	c.mutex.Unlock()
}

func hashFile(filename string) (string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return "", err
	}
	defer file.Close()

	h := md5.New()
	if _, err := io.Copy(h, file); err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}
