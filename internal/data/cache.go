package data

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"invest-sim/internal/model"
)

// fetchGroup collapses concurrent fetches for the same (ticker, period) key
// into one upstream request. This holds whether or not the cache is enabled.
var fetchGroup singleflight.Group

type cacheEntry struct {
	History   *model.History
	ExpiresAt time.Time
}

// HistoryCache is an in-memory TTL cache for provider responses. It is a
// development convenience, enabled only via ENABLE_HISTORY_CACHE=true and
// never when API_ENV=production.
type HistoryCache struct {
	mu    sync.RWMutex
	store map[string]*cacheEntry
	ttl   time.Duration
}

var globalCache *HistoryCache
var cacheOnce sync.Once

// GetCache returns the global cache instance, or nil when caching is
// disabled.
func GetCache() *HistoryCache {
	if os.Getenv("ENABLE_HISTORY_CACHE") != "true" {
		return nil
	}
	if os.Getenv("API_ENV") == "production" {
		return nil
	}

	cacheOnce.Do(func() {
		ttl := 1 * time.Hour
		if ttlStr := os.Getenv("HISTORY_CACHE_TTL"); ttlStr != "" {
			if parsed, err := time.ParseDuration(ttlStr); err == nil {
				ttl = parsed
			}
		}
		globalCache = &HistoryCache{
			store: make(map[string]*cacheEntry),
			ttl:   ttl,
		}
		go globalCache.cleanup()
	})
	return globalCache
}

func (c *HistoryCache) Get(key string) (*model.History, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.store[key]
	if !ok {
		return nil, false
	}
	if time.Now().After(entry.ExpiresAt) {
		return nil, false
	}
	return entry.History, true
}

func (c *HistoryCache) Set(key string, hist *model.History) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.store[key] = &cacheEntry{
		History:   hist,
		ExpiresAt: time.Now().Add(c.ttl),
	}
}

func (c *HistoryCache) Clear() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store = make(map[string]*cacheEntry)
}

func (c *HistoryCache) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		c.mu.Lock()
		now := time.Now()
		for key, entry := range c.store {
			if now.After(entry.ExpiresAt) {
				delete(c.store, key)
			}
		}
		c.mu.Unlock()
	}
}

// HistoryCacheKey creates a deterministic cache key for one fetch.
func HistoryCacheKey(ticker, period string) string {
	hash := sha256.Sum256([]byte(fmt.Sprintf("%s:%s", ticker, period)))
	return hex.EncodeToString(hash[:])
}
