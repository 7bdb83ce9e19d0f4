// Package cache provides an in-process key-value cache with LRU eviction,
// bounded entry count and aggregate size, per-entry TTL, disposal callbacks,
// and snapshot support. Lookups, inserts, deletions and recency updates are
// all O(1).
//
// The cache uses a single-goroutine mutation model: no internal locking is
// performed, and callers that share a cache across goroutines must serialize
// access themselves (the Janitor and the persist Manager accept a sync.Locker
// for exactly that purpose). This keeps the hot path free of synchronization
// cost for the common embedded, owner-driven use.
//
// Package cache 提供进程内键值缓存，支持LRU淘汰、条目数与总大小限制、
// 条目级TTL、清理回调和快照。查找、写入、删除和访问顺序更新均为O(1)。
//
// 缓存采用单goroutine修改模型：内部不加锁，跨goroutine共享缓存的调用方
// 需自行串行化访问（Janitor和持久化Manager为此接受sync.Locker）。
// 这使常见的独占使用场景下热路径没有同步开销。
package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/noobtrump/lcache/internal/lru"
	"github.com/noobtrump/lcache/pkg/errors"
	"github.com/noobtrump/lcache/pkg/loader"
)

// Cache is an LRU key-value cache. Create instances with New; the zero value
// is not usable.
//
// Cache 是LRU键值缓存。请通过New创建实例，零值不可用。
type Cache[K comparable, V any] struct {
	index map[K]*lru.Node[K, V]
	order lru.List[K, V]

	totalSize int64

	// Monotonic counters; Clear and Load never reset them.
	// 单调递增计数器，Clear和Load不会重置它们。
	hits        uint64
	misses      uint64
	evictions   uint64
	expirations uint64
	overwrites  uint64

	name               string
	maxEntries         int
	maxTotalSize       int64
	defaultTTL         time.Duration
	janitorInterval    time.Duration
	sizeOf             SizeFunc[K, V]
	onDispose          DisposeFunc[K, V]
	disposeOnOverwrite bool
	allowStale         bool
	asyncDispose       bool
	loader             loader.Loader[K, V]
	now                Clock
	logger             *slog.Logger
}

// New creates a cache from the given configuration. A nil config means
// DefaultConfig. The configuration is copied; later mutations of cfg do not
// affect the returned cache.
//
// New 根据给定配置创建缓存。cfg为nil时使用DefaultConfig。
// 配置会被拷贝，之后修改cfg不影响返回的缓存。
//
// Parameters:
//   - cfg: The configuration to build from, or nil for defaults
//
// Returns:
//   - *Cache[K, V]: The new cache instance
//   - error: An error if the configuration is invalid
func New[K comparable, V any](cfg *Config[K, V]) (*Cache[K, V], error) {
	if cfg == nil {
		cfg = DefaultConfig[K, V]()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid cache config: %w", err)
	}

	c := &Cache[K, V]{
		index:              make(map[K]*lru.Node[K, V]),
		name:               cfg.Name,
		maxEntries:         cfg.MaxEntries,
		maxTotalSize:       cfg.MaxTotalSize,
		defaultTTL:         cfg.DefaultTTL,
		janitorInterval:    cfg.JanitorInterval,
		sizeOf:             cfg.SizeOf,
		onDispose:          cfg.OnDispose,
		disposeOnOverwrite: cfg.DisposeOnOverwrite,
		allowStale:         cfg.AllowStale,
		asyncDispose:       cfg.AsyncDispose,
		loader:             cfg.Loader,
		now:                cfg.Clock,
		logger:             cfg.Logger,
	}
	if c.now == nil {
		c.now = time.Now
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c, nil
}

// Name returns the configured cache name.
// Name 返回配置的缓存名称。
func (c *Cache[K, V]) Name() string {
	return c.name
}

// Len returns the current number of entries. It always equals the recency
// list length.
//
// Len 返回当前条目数，恒等于链表长度。
func (c *Cache[K, V]) Len() int {
	return len(c.index)
}

// TotalSize returns the aggregate size of all entries, maintained
// incrementally on every insert and removal.
//
// TotalSize 返回所有条目的总大小，在每次写入和移除时增量维护。
func (c *Cache[K, V]) TotalSize() int64 {
	return c.totalSize
}

// Get retrieves a value and marks it most recently used.
// A hit moves the entry to the front of the recency order. An expired entry
// is served as-is when AllowStale is set (counted as a hit, recency left
// untouched); otherwise it is removed with ReasonExpired and the call counts
// as a miss.
//
// Get 检索值并将其标记为最近使用。
// 命中时条目被移到访问顺序最前。设置AllowStale时过期条目按原样返回
// （计为命中且不刷新访问顺序）；否则以ReasonExpired移除该条目并计为未命中。
//
// Parameters:
//   - key: The key to retrieve
//
// Returns:
//   - V: The cached value, or the zero value on a miss
//   - bool: True if a value was returned
func (c *Cache[K, V]) Get(key K) (V, bool) {
	var zero V
	n, ok := c.index[key]
	if !ok {
		c.misses++
		return zero, false
	}
	if c.expired(n) {
		if c.allowStale {
			c.hits++
			return n.Value, true
		}
		c.remove(n, ReasonExpired)
		c.misses++
		return zero, false
	}
	c.order.MoveToFront(n)
	c.hits++
	return n.Value, true
}

// GetOrLoad retrieves a value, consulting the configured loader on a miss.
// A loaded value is stored through Set (with the loader-returned TTL when
// positive) before being returned. Without a configured loader a miss yields
// ErrNotFound.
//
// GetOrLoad 检索值，未命中时查询配置的加载器。
// 加载到的值先通过Set写入（加载器返回的TTL为正时采用之）再返回。
// 未配置加载器时未命中返回ErrNotFound。
//
// Parameters:
//   - ctx: Context passed through to the loader
//   - key: The key to retrieve or load
//
// Returns:
//   - V: The cached or loaded value
//   - error: ErrNotFound, or a KeyError wrapping ErrLoadFailed
func (c *Cache[K, V]) GetOrLoad(ctx context.Context, key K) (V, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}
	var zero V
	if c.loader == nil {
		return zero, errors.NewKeyError(fmt.Sprint(key), errors.ErrNotFound)
	}
	v, ttl, err := c.loader.Load(ctx, key)
	if err != nil {
		return zero, errors.NewKeyError(fmt.Sprint(key), fmt.Errorf("%w: %w", errors.ErrLoadFailed, err))
	}
	if ttl > 0 {
		c.Set(key, v, WithTTL(ttl))
	} else {
		c.Set(key, v)
	}
	return v, nil
}

// Has reports whether key holds a readable value. It mirrors Get's freshness
// check but is a pure read: no recency update, no counter update, no removal.
//
// Has 报告键是否持有可读取的值。它沿用Get的新鲜度判断，但属于纯读取：
// 不更新访问顺序、不更新计数器、不移除条目。
//
// Parameters:
//   - key: The key to check
//
// Returns:
//   - bool: True if present and fresh, or present-but-stale under AllowStale
func (c *Cache[K, V]) Has(key K) bool {
	n, ok := c.index[key]
	return ok && (!c.expired(n) || c.allowStale)
}

// Peek retrieves a value without side effects: like Has it performs no
// recency update, no counter update, and no removal even on expiry.
//
// Peek 无副作用地检索值：与Has一样不更新访问顺序和计数器，
// 即使条目过期也不移除。
//
// Parameters:
//   - key: The key to retrieve
//
// Returns:
//   - V: The cached value, or the zero value when absent
//   - bool: True if a value was returned
func (c *Cache[K, V]) Peek(key K) (V, bool) {
	var zero V
	n, ok := c.index[key]
	if !ok || (c.expired(n) && !c.allowStale) {
		return zero, false
	}
	return n.Value, true
}

// Set stores a value under key and prunes synchronously, so any eviction the
// insert forces happens before Set returns. Replacing an existing key detaches
// the old entry first (its size leaves the total immediately) and disposes the
// old value with ReasonOverwritten when DisposeOnOverwrite is enabled.
//
// The effective TTL is WithTTL if supplied, else the configured DefaultTTL;
// a TTL ≤ 0 means the entry never expires. The effective size is WithSize if
// supplied, else SizeOf(value, key), else 1; negative sizes are clamped to 0.
//
// Set 在键下存储值并同步执行清理，因此写入引发的任何淘汰都在Set返回前完成。
// 覆盖已有键时先摘除旧条目（其大小立即从总大小中扣除），
// 并在启用DisposeOnOverwrite时以ReasonOverwritten清理旧值。
//
// 生效TTL取WithTTL（若提供），否则取配置的DefaultTTL；TTL ≤ 0表示永不过期。
// 生效大小取WithSize（若提供），否则取SizeOf(value, key)，否则为1；
// 负数大小按0处理。
//
// Parameters:
//   - key: The key under which to store the value
//   - value: The value to store
//   - opts: Optional per-entry overrides (WithTTL, WithSize)
func (c *Cache[K, V]) Set(key K, value V, opts ...SetOption) {
	var so setOptions
	for _, opt := range opts {
		opt(&so)
	}

	if old, ok := c.index[key]; ok {
		delete(c.index, key)
		c.order.Remove(old)
		c.totalSize -= old.Size
		c.overwrites++
		if c.disposeOnOverwrite {
			c.dispose(old.Key, old.Value, ReasonOverwritten)
		}
	}

	ttl := c.defaultTTL
	if so.hasTTL {
		ttl = so.ttl
	}
	var expiresAt int64
	if ttl > 0 {
		expiresAt = c.now().Add(ttl).UnixNano()
	}

	size := int64(1)
	if so.hasSize {
		size = so.size
	} else if c.sizeOf != nil {
		size = c.sizeOf(value, key)
	}
	if size < 0 {
		size = 0
	}

	n := &lru.Node[K, V]{Key: key, Value: value, Size: size, ExpiresAt: expiresAt}
	c.order.PushFront(n)
	c.index[key] = n
	c.totalSize += size

	c.Prune()
}

// Delete removes the entry under key with ReasonDeleted.
//
// Delete 以ReasonDeleted移除键下的条目。
//
// Parameters:
//   - key: The key to remove
//
// Returns:
//   - bool: True if an entry was removed
func (c *Cache[K, V]) Delete(key K) bool {
	n, ok := c.index[key]
	if !ok {
		return false
	}
	return c.remove(n, ReasonDeleted)
}

// Clear removes every entry in O(1). When a disposal callback is configured,
// the entries are first collected by walking the list (skipped entirely
// otherwise), then the index, list and total size are reset, and finally each
// collected entry is disposed with ReasonCleared — so every callback observes
// an already-empty cache. Hit/miss counters are not reset.
//
// Clear 以O(1)移除所有条目。配置了清理回调时，先遍历链表收集条目
// （未配置则完全跳过遍历），然后重置索引、链表和总大小，
// 最后以ReasonCleared逐个清理收集到的条目——因此每个回调观察到的都是
// 已清空的缓存。命中/未命中计数器不会重置。
func (c *Cache[K, V]) Clear() {
	var detached []*lru.Node[K, V]
	if c.onDispose != nil {
		detached = make([]*lru.Node[K, V], 0, c.order.Len())
		for n := c.order.Front(); n != nil; n = n.Next() {
			detached = append(detached, n)
		}
	}

	c.index = make(map[K]*lru.Node[K, V])
	c.order.Clear()
	c.totalSize = 0

	for _, n := range detached {
		c.dispose(n.Key, n.Value, ReasonCleared)
	}
}

// Prune enforces expiry and capacity constraints, in that order. The expiry
// phase removes every entry whose TTL has elapsed (ReasonExpired), including
// entries still readable under AllowStale. The capacity phase pops the least
// recently used entry (ReasonEvicted) until both the entry-count and
// total-size bounds are satisfied, stopping early when a single entry
// remains — one entry whose size alone exceeds MaxTotalSize stays in the
// cache instead of the loop draining it.
//
// Set calls Prune after every insert; a Janitor calls it on an interval to
// collect expired entries that are never touched again.
//
// Prune 依次强制执行过期和容量约束。过期阶段移除所有TTL已到期的条目
// （ReasonExpired），包括AllowStale下仍可读取的条目。容量阶段弹出最久未
// 使用的条目（ReasonEvicted），直到条目数和总大小约束都满足为止；
// 仅剩一个条目时提前停止——单个条目的大小即便超过MaxTotalSize也会留在
// 缓存中，而不是被循环清空。
//
// Set在每次写入后调用Prune；Janitor按周期调用它以回收不再被访问的过期条目。
//
// Returns:
//   - int: Total entries removed across both phases
func (c *Cache[K, V]) Prune() int {
	removed := 0

	now := c.now().UnixNano()
	var expired []*lru.Node[K, V]
	for _, n := range c.index {
		if n.ExpiresAt != 0 && n.ExpiresAt <= now {
			expired = append(expired, n)
		}
	}
	for _, n := range expired {
		if c.remove(n, ReasonExpired) {
			removed++
		}
	}

	for (c.overEntries() || c.overSize()) && c.order.Len() > 1 {
		if c.remove(c.order.Back(), ReasonEvicted) {
			removed++
		}
	}

	return removed
}

// expired reports whether n's TTL has elapsed.
// expired 报告n的TTL是否已到期。
func (c *Cache[K, V]) expired(n *lru.Node[K, V]) bool {
	return n.ExpiresAt != 0 && n.ExpiresAt <= c.now().UnixNano()
}

func (c *Cache[K, V]) overEntries() bool {
	return c.maxEntries > 0 && c.order.Len() > c.maxEntries
}

func (c *Cache[K, V]) overSize() bool {
	return c.maxTotalSize > 0 && c.totalSize > c.maxTotalSize
}

// remove is the single removal path shared by Delete, expiry, eviction and
// overwrite handling. It detaches the entry from the index and the list,
// subtracts its size, bumps the per-reason counter, and only then invokes
// disposal. A node that no longer owns its index slot is skipped, so stale
// references collected before a re-entrant mutation cannot corrupt state.
//
// remove 是Delete、过期、淘汰和覆盖处理共用的唯一移除路径。
// 它先将条目从索引和链表中摘除、扣减大小并更新对应原因的计数器，
// 之后才调用清理回调。不再占有索引槽位的节点会被跳过，
// 因此在重入修改前收集的过期引用不会破坏状态。
func (c *Cache[K, V]) remove(n *lru.Node[K, V], reason Reason) bool {
	if cur, ok := c.index[n.Key]; !ok || cur != n {
		return false
	}
	delete(c.index, n.Key)
	c.order.Remove(n)
	c.totalSize -= n.Size

	switch reason {
	case ReasonEvicted:
		c.evictions++
	case ReasonExpired:
		c.expirations++
	}

	c.dispose(n.Key, n.Value, reason)
	return true
}

// dispose routes a removal to the configured callback, inline or on its own
// goroutine per AsyncDispose. No callback configured means no work.
//
// dispose 将一次移除交给配置的回调处理，按AsyncDispose决定内联执行
// 还是派发到独立goroutine。未配置回调则不做任何事。
func (c *Cache[K, V]) dispose(key K, value V, reason Reason) {
	if c.onDispose == nil {
		return
	}
	if c.asyncDispose {
		go c.runDispose(key, value, reason)
		return
	}
	c.runDispose(key, value, reason)
}

// runDispose invokes the callback with panic isolation: a panicking callback
// is recovered and logged, never propagated to the operation that triggered
// the removal.
//
// runDispose 以panic隔离的方式调用回调：回调中的panic会被恢复并记录，
// 不会传播到触发移除的操作。
func (c *Cache[K, V]) runDispose(key K, value V, reason Reason) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("disposal callback panicked",
				"cache", c.name,
				"key", fmt.Sprint(key),
				"reason", reason.String(),
				"panic", r,
			)
		}
	}()
	c.onDispose(key, value, reason)
}
