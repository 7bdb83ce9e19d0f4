package cache

// Reason identifies why an entry left the cache. It is passed to the
// disposal callback so callers can distinguish eviction pressure from
// expiry, explicit deletion, overwrite, and bulk clearing.
//
// Reason 标识条目离开缓存的原因。它会传递给清理回调，
// 以便调用方区分容量淘汰、过期、显式删除、覆盖写入和整体清空。
type Reason uint8

const (
	// ReasonDeleted marks an explicit removal through Delete.
	// ReasonDeleted 表示通过Delete显式删除。
	ReasonDeleted Reason = iota

	// ReasonEvicted marks a removal forced by the entry-count or total-size
	// bound; the least recently used entry goes first.
	// ReasonEvicted 表示因条目数或总大小限制被淘汰，最久未使用的条目先被移除。
	ReasonEvicted

	// ReasonExpired marks a removal caused by the entry's TTL elapsing.
	// ReasonExpired 表示条目因TTL到期被移除。
	ReasonExpired

	// ReasonOverwritten marks the old value being replaced by a Set on an
	// existing key.
	// ReasonOverwritten 表示已有键上的Set替换了旧值。
	ReasonOverwritten

	// ReasonCleared marks a removal caused by Clear or by Load resetting the
	// cache before restoring a snapshot.
	// ReasonCleared 表示由Clear或Load在恢复快照前重置缓存导致的移除。
	ReasonCleared
)

// String returns the lowercase name of the reason, suitable for logs.
//
// String 返回原因的小写名称，适合用于日志。
func (r Reason) String() string {
	switch r {
	case ReasonDeleted:
		return "deleted"
	case ReasonEvicted:
		return "evicted"
	case ReasonExpired:
		return "expired"
	case ReasonOverwritten:
		return "overwritten"
	case ReasonCleared:
		return "cleared"
	default:
		return "unknown"
	}
}

// DisposeFunc is the callback invoked when an entry leaves the cache.
// It runs exactly once per removal, after the entry is already detached from
// the index and the recency list. The callback must not call back into the
// cache that invoked it.
//
// DisposeFunc 是条目离开缓存时调用的回调。
// 每次移除恰好执行一次，执行时条目已从索引和链表中摘除。
// 回调内不得再调用触发它的缓存。
type DisposeFunc[K comparable, V any] func(key K, value V, reason Reason)
