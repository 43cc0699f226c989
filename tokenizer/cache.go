package tokenizer

import (
	"sync"
	"time"

	"github.com/zeebo/xxh3"
	"golang.org/x/sync/singleflight"

	"github.com/AstroAir/diffani-sub002/models"
)

// cacheKey addresses an entry by language and content hash.
type cacheKey struct {
	language Language
	sum      xxh3.Uint128
}

// CacheEntry is a memoized tokenization. Code is kept so that a hash
// collision is detected on read instead of returning foreign tokens.
// Err is set when the engine could not tokenize the code; engines are
// deterministic, so a failure is remembered like a success.
type CacheEntry struct {
	Code      string
	Tokens    []models.Token
	Err       error
	Timestamp time.Time
}

// CacheStats tracks cache performance metrics
type CacheStats struct {
	TotalRequests int64
	CacheHits     int64
	CacheMisses   int64
	// BytesSaved is the amount of code served from the cache instead of
	// being tokenized again.
	BytesSaved    int64
	LastResetTime time.Time
	mutex         sync.RWMutex
}

// Cache memoizes tokenizations by exact (code, language), including failed
// ones. It is append-only and safe for concurrent use. Returned token slices
// are shared between callers and must not be modified.
type Cache struct {
	mutex   sync.RWMutex
	entries map[cacheKey]*CacheEntry
	flight  singleflight.Group
	stats   *CacheStats
}

var (
	defaultCache     *Cache
	defaultCacheOnce sync.Once
)

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{
		entries: make(map[cacheKey]*CacheEntry),
		stats: &CacheStats{
			LastResetTime: time.Now(),
		},
	}
}

// DefaultCache returns the process-wide cache.
func DefaultCache() *Cache {
	defaultCacheOnce.Do(func() {
		defaultCache = NewCache()
	})
	return defaultCache
}

// generateCacheKey creates the content address for a code string
func generateCacheKey(code string, language Language) cacheKey {
	return cacheKey{language: language, sum: xxh3.HashString128(code)}
}

// Get returns the memoized entry for code, if any. The entry must not be
// modified.
func (c *Cache) Get(code string, language Language) (*CacheEntry, bool) {
	entry, found := c.lookup(code, language)
	if found {
		c.recordCacheHit(code)
	} else {
		c.recordCacheMiss()
	}
	return entry, found
}

func (c *Cache) lookup(code string, language Language) (*CacheEntry, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	entry, exists := c.entries[generateCacheKey(code, language)]
	if !exists || entry.Code != code {
		return nil, false
	}
	return entry, true
}

// Set stores tokens for code unless an entry already exists, and returns
// the tokens that are cached afterwards. The first stored entry wins, so
// concurrent writers always observe one consistent result.
func (c *Cache) Set(code string, language Language, tokens []models.Token) []models.Token {
	return c.store(code, language, tokens, nil).Tokens
}

func (c *Cache) store(code string, language Language, tokens []models.Token, err error) *CacheEntry {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	key := generateCacheKey(code, language)
	if entry, exists := c.entries[key]; exists && entry.Code == code {
		return entry
	}

	entry := &CacheEntry{
		Code:      code,
		Tokens:    tokens,
		Err:       err,
		Timestamp: time.Now(),
	}
	// On a hash collision the resident entry stays and this one is only
	// returned.
	if _, exists := c.entries[key]; !exists {
		c.entries[key] = entry
	}
	return entry
}

// GetOrCompute returns the memoized outcome or computes and stores it.
// Concurrent misses on the same input share one computation. A failed
// computation is stored too and its error returned on every later call.
func (c *Cache) GetOrCompute(code string, language Language, compute func() ([]models.Token, error)) ([]models.Token, error) {
	if entry, found := c.Get(code, language); found {
		return entry.Tokens, entry.Err
	}

	v, _, _ := c.flight.Do(string(language)+"\x00"+code, func() (interface{}, error) {
		tokens, err := compute()
		if err != nil {
			tokens = nil
		}
		return c.store(code, language, tokens, err), nil
	})
	entry := v.(*CacheEntry)
	return entry.Tokens, entry.Err
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.entries)
}
