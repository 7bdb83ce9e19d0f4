package cache

// Stats is a point-in-time snapshot of cache statistics. Counters are
// collected during cache operations and can be used to monitor effectiveness
// and tune capacity bounds.
//
// Stats 是缓存统计信息的即时快照。计数器在缓存操作期间收集，
// 可用于观察缓存效果和调整容量参数。
type Stats struct {
	// EntryCount is the current number of entries in the cache
	// EntryCount 是缓存中当前的条目数量
	EntryCount int64 `json:"entry_count"`

	// TotalSize is the current aggregate size of all entries
	// TotalSize 是当前所有条目的总大小
	TotalSize int64 `json:"total_size"`

	// Hits is the number of successful retrievals, including stale reads
	// served under AllowStale
	// Hits 是成功检索的次数，包括AllowStale下返回的过期读取
	Hits uint64 `json:"hits"`

	// Misses is the number of retrievals where no value was returned
	// Misses 是未返回值的检索次数
	Misses uint64 `json:"misses"`

	// HitRate is Hits / (Hits + Misses), or 0 before any access
	// HitRate 为 Hits / (Hits + Misses)，无任何访问时为0
	HitRate float64 `json:"hit_rate"`

	// Evictions is the number of entries removed by capacity pressure
	// Evictions 是因容量压力被移除的条目数
	Evictions uint64 `json:"evictions"`

	// Expirations is the number of entries removed because their TTL elapsed
	// Expirations 是因TTL到期被移除的条目数
	Expirations uint64 `json:"expirations"`

	// Overwrites is the number of Set calls that replaced an existing key
	// Overwrites 是替换了已有键的Set调用次数
	Overwrites uint64 `json:"overwrites"`
}

// Stats returns the current statistics. Hit, miss and removal counters are
// monotonic over the cache's lifetime; only EntryCount and TotalSize shrink.
//
// Stats 返回当前统计信息。命中、未命中和移除计数器在缓存生命周期内
// 单调递增，只有EntryCount和TotalSize会减小。
//
// Returns:
//   - Stats: A copy of the current statistics
func (c *Cache[K, V]) Stats() Stats {
	s := Stats{
		EntryCount:  int64(len(c.index)),
		TotalSize:   c.totalSize,
		Hits:        c.hits,
		Misses:      c.misses,
		Evictions:   c.evictions,
		Expirations: c.expirations,
		Overwrites:  c.overwrites,
	}
	if total := c.hits + c.misses; total > 0 {
		s.HitRate = float64(c.hits) / float64(total)
	}
	return s
}
