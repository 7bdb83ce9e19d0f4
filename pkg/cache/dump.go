package cache

import "time"

// Item is one entry in dumped form: the key, the value, the size it was
// charged, and the remaining TTL at dump time (zero when the entry never
// expires). This is the only shape that crosses the persistence boundary;
// the persist package wraps a sequence of Items in a versioned container.
//
// Item 是条目的导出形式：键、值、计入的大小以及导出时的剩余TTL
// （永不过期的条目为零）。这是唯一跨越持久化边界的结构，
// persist包会将Item序列包装进带版本的容器。
type Item[K comparable, V any] struct {
	Key   K             `json:"key"`
	Value V             `json:"value"`
	Size  int64         `json:"size"`
	TTL   time.Duration `json:"ttl,omitempty"`
}

// Dump exports the current entries, least recently used first, so replaying
// the result through Load in order rebuilds the same recency ordering.
// Entries that are expired and not readable under AllowStale are omitted.
// Size is always populated; TTL carries the remaining lifetime only when it
// is still positive.
//
// Dump 按最久未使用在前的顺序导出当前条目，因此将结果按序经Load回放
// 可重建相同的访问顺序。已过期且在AllowStale下不可读的条目会被省略。
// Size始终填充；TTL仅在剩余生存时间为正时携带。
//
// Returns:
//   - []Item[K, V]: The dumped entries
func (c *Cache[K, V]) Dump() []Item[K, V] {
	now := c.now().UnixNano()
	items := make([]Item[K, V], 0, c.order.Len())
	for n := c.order.Back(); n != nil; n = n.Prev() {
		if n.ExpiresAt != 0 && n.ExpiresAt <= now && !c.allowStale {
			continue
		}
		item := Item[K, V]{Key: n.Key, Value: n.Value, Size: n.Size}
		if n.ExpiresAt != 0 {
			if remaining := time.Duration(n.ExpiresAt - now); remaining > 0 {
				item.TTL = remaining
			}
		}
		items = append(items, item)
	}
	return items
}

// Load clears the cache and stores each item in sequence order, exactly as if
// Set had been called with the item's size and TTL: remaining TTLs are
// re-based from the current instant, items without a TTL fall back to the
// cache's DefaultTTL, and capacity pruning re-runs per insert. Malformed
// items (negative size or negative TTL) are skipped individually rather than
// failing the batch; each skip is logged.
//
// Load 先清空缓存，再按序存入每个条目，效果等同于以该条目的大小和TTL
// 调用Set：剩余TTL以当前时刻为基准重新计算，未携带TTL的条目回落到缓存
// 的DefaultTTL，容量清理在每次写入时重新执行。畸形条目（大小或TTL为负）
// 被逐个跳过而不会使整批失败，每次跳过都会记录日志。
//
// Parameters:
//   - items: The dumped entries to restore
//
// Returns:
//   - int: The number of items actually stored
func (c *Cache[K, V]) Load(items []Item[K, V]) int {
	c.Clear()
	restored := 0
	for _, item := range items {
		if item.Size < 0 || item.TTL < 0 {
			c.logger.Warn("skipping malformed snapshot item",
				"cache", c.name,
				"size", item.Size,
				"ttl", item.TTL,
			)
			continue
		}
		opts := []SetOption{WithSize(item.Size)}
		if item.TTL > 0 {
			opts = append(opts, WithTTL(item.TTL))
		}
		c.Set(item.Key, item.Value, opts...)
		restored++
	}
	return restored
}
