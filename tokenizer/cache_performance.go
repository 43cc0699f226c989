package tokenizer

import (
	"time"
)

// recordCacheHit counts a hit that spared tokenizing code again.
func (c *Cache) recordCacheHit(code string) {
	if c.stats == nil {
		return
	}
	c.stats.mutex.Lock()
	defer c.stats.mutex.Unlock()
	c.stats.TotalRequests++
	c.stats.CacheHits++
	c.stats.BytesSaved += int64(len(code))
}

func (c *Cache) recordCacheMiss() {
	if c.stats == nil {
		return
	}
	c.stats.mutex.Lock()
	defer c.stats.mutex.Unlock()
	c.stats.TotalRequests++
	c.stats.CacheMisses++
}

// contentStats sums what the cache holds: tokens and code bytes of the
// successful entries and the number of remembered failures.
func (c *Cache) contentStats() (entries, failed, tokens int, codeBytes int64) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	for _, entry := range c.entries {
		if entry.Err != nil {
			failed++
			continue
		}
		tokens += len(entry.Tokens)
		codeBytes += int64(len(entry.Code))
	}
	return len(c.entries), failed, tokens, codeBytes
}

// GetPerformanceStats reports the cache contents and how much tokenization
// the cache has spared since the last reset.
func (c *Cache) GetPerformanceStats() map[string]interface{} {
	entries, failed, tokens, codeBytes := c.contentStats()
	stats := map[string]interface{}{
		"entries":          entries,
		"failed_entries":   failed,
		"tokens_cached":    tokens,
		"code_bytes":       codeBytes,
		"total_requests":   int64(0),
		"cache_hits":       int64(0),
		"cache_misses":     int64(0),
		"bytes_saved":      int64(0),
		"hit_rate_percent": 0.0,
	}
	if c.stats == nil {
		return stats
	}

	c.stats.mutex.RLock()
	defer c.stats.mutex.RUnlock()

	stats["total_requests"] = c.stats.TotalRequests
	stats["cache_hits"] = c.stats.CacheHits
	stats["cache_misses"] = c.stats.CacheMisses
	stats["bytes_saved"] = c.stats.BytesSaved
	if c.stats.TotalRequests > 0 {
		stats["hit_rate_percent"] = float64(c.stats.CacheHits) / float64(c.stats.TotalRequests) * 100
	}
	stats["uptime_seconds"] = time.Since(c.stats.LastResetTime).Seconds()
	stats["last_reset"] = c.stats.LastResetTime.Format(time.RFC3339)
	return stats
}

// ResetPerformanceStats resets the request counters. Entries are kept.
func (c *Cache) ResetPerformanceStats() {
	if c.stats == nil {
		return
	}
	c.stats.mutex.Lock()
	defer c.stats.mutex.Unlock()

	c.stats.TotalRequests = 0
	c.stats.CacheHits = 0
	c.stats.CacheMisses = 0
	c.stats.BytesSaved = 0
	c.stats.LastResetTime = time.Now()
}
