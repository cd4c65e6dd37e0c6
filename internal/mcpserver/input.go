package mcpserver

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/JacobTheEvans/swagger-validator-middleware/internal/options"
	"github.com/JacobTheEvans/swagger-validator-middleware/loader"
	"github.com/JacobTheEvans/swagger-validator-middleware/validator"
)

// contractInput represents the two ways a contract can be provided to a tool.
// Exactly one of File or Content must be set.
type contractInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to a Swagger/OpenAPI contract on disk"`
	Content string `json:"content,omitempty" jsonschema:"Inline contract content (JSON or YAML)"`
}

// cacheEntry holds a ready validator with LRU ordering and TTL expiry.
type cacheEntry struct {
	validator *validator.Validator
	insertAt  time.Time
	expiresAt time.Time
}

// contractCacheStore provides a session-scoped cache of loaded contracts.
// File inputs are keyed by (absolutePath, modTime), content inputs by a
// SHA-256 hash. A background sweeper removes expired entries.
type contractCacheStore struct {
	mu             sync.Mutex
	entries        map[string]*cacheEntry
	maxSize        int
	sweeperStarted atomic.Bool
}

var contractCache = &contractCacheStore{
	entries: make(map[string]*cacheEntry),
	maxSize: cfg.CacheMaxSize,
}

// get returns a cached validator or nil. Expired entries are lazily removed.
func (c *contractCacheStore) get(key string) *validator.Validator {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key]; ok {
		if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
			delete(c.entries, key)
			return nil
		}
		e.insertAt = time.Now()
		return e.validator
	}
	return nil
}

// putWithTTL stores a validator, evicting the least recently used entry if at capacity.
func (c *contractCacheStore) putWithTTL(key string, v *validator.Validator, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	entry := &cacheEntry{validator: v, insertAt: now, expiresAt: now.Add(ttl)}

	if _, ok := c.entries[key]; ok {
		c.entries[key] = entry
		return
	}

	if len(c.entries) >= c.maxSize {
		var oldestKey string
		var oldestTime time.Time
		for k, e := range c.entries {
			if oldestKey == "" || e.insertAt.Before(oldestTime) {
				oldestKey = k
				oldestTime = e.insertAt
			}
		}
		if oldestKey != "" {
			delete(c.entries, oldestKey)
		}
	}

	c.entries[key] = entry
}

// sweep removes all expired entries.
func (c *contractCacheStore) sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now()
	for k, e := range c.entries {
		if !e.expiresAt.IsZero() && now.After(e.expiresAt) {
			delete(c.entries, k)
		}
	}
}

// startSweeper launches a goroutine that periodically removes expired entries.
// Only the first call spawns a sweeper; it stops when ctx is cancelled.
func (c *contractCacheStore) startSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	if !c.sweeperStarted.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer c.sweeperStarted.Store(false)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.sweep()
			}
		}
	}()
}

// reset clears all cached entries. Used in tests.
func (c *contractCacheStore) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*cacheEntry)
}

// size returns the number of cached entries.
func (c *contractCacheStore) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// makeCacheKey creates a cache key for the given input, or "" when the
// input cannot be cached.
func makeCacheKey(in contractInput) string {
	switch {
	case in.File != "":
		absPath, err := filepath.Abs(in.File)
		if err != nil {
			return ""
		}
		info, err := os.Stat(absPath)
		if err != nil {
			return ""
		}
		return fmt.Sprintf("file:%s:%d", absPath, info.ModTime().UnixNano())
	case in.Content != "":
		h := sha256.Sum256([]byte(in.Content))
		return "content:" + hex.EncodeToString(h[:])
	default:
		return ""
	}
}

// resolve loads the contract and builds its validator, using the cache.
func (in contractInput) resolve() (*validator.Validator, error) {
	if err := options.ExactlyOne("contract",
		options.Source{Option: "file", Set: in.File != ""},
		options.Source{Option: "content", Set: in.Content != ""},
	); err != nil {
		return nil, err
	}

	if in.Content != "" && int64(len(in.Content)) > cfg.MaxInlineSize {
		return nil, fmt.Errorf("inline content size %d bytes exceeds maximum %d bytes; use file input instead, or set SWAGVAL_MCP_MAX_INLINE_SIZE to increase",
			len(in.Content), cfg.MaxInlineSize)
	}

	var key string
	ttl := cfg.CacheContentTTL
	if cfg.CacheEnabled {
		key = makeCacheKey(in)
		if in.File != "" {
			ttl = cfg.CacheFileTTL
		}
	}
	if key != "" {
		if cached := contractCache.get(key); cached != nil {
			return cached, nil
		}
	}

	opt := loader.WithFilePath(in.File)
	if in.Content != "" {
		opt = loader.WithBytes([]byte(in.Content))
	}
	doc, err := loader.LoadWithOptions(opt, loader.WithSourceName(sourceName(in)))
	if err != nil {
		return nil, err
	}

	v, err := validator.New(doc, validator.WithPlaceholderStyle(cfg.Placeholders))
	if err != nil {
		return nil, err
	}

	if key != "" {
		contractCache.putWithTTL(key, v, ttl)
	}
	return v, nil
}

func sourceName(in contractInput) string {
	if in.File != "" {
		return filepath.Base(in.File)
	}
	return "inline content"
}
