// Package persist saves cache snapshots to external stores and restores them,
// so a process restart does not begin with a cold cache. A snapshot is the
// cache's Dump output wrapped in a versioned envelope; stores encode it with a
// pkg/codec codec and put the bytes somewhere durable (a local file, a Redis
// key). The Manager drives periodic saves in the background.
//
// Package persist 将缓存快照保存到外部存储并从中恢复，
// 使进程重启后不必从冷缓存开始。快照是缓存Dump输出外加版本化信封；
// 存储使用pkg/codec编码后将字节写入持久位置（本地文件、Redis键）。
// Manager负责在后台周期性保存。
package persist

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/noobtrump/lcache/pkg/cache"
	"github.com/noobtrump/lcache/pkg/codec"
	"github.com/noobtrump/lcache/pkg/errors"
)

// SnapshotVersion is the current snapshot envelope version. Stores refuse to
// load snapshots written with a different version.
//
// SnapshotVersion 是当前快照信封版本。存储拒绝加载以其他版本写出的快照。
const SnapshotVersion = 1

// Snapshot is a point-in-time copy of a cache's contents. Items appear least
// recently used first, so replaying them in order through cache.Load rebuilds
// the recency order.
//
// Snapshot 是缓存内容的时间点副本。条目按最久未使用优先排列，
// 因此通过cache.Load按序重放即可重建访问顺序。
type Snapshot[K comparable, V any] struct {
	Version   int                `json:"version"`
	ID        string             `json:"id"`
	Name      string             `json:"name,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
	Items     []cache.Item[K, V] `json:"items"`
}

// NewSnapshot wraps dumped items in a versioned envelope with a fresh ID.
//
// NewSnapshot 将导出的条目包装进带新ID的版本化信封。
//
// Parameters:
//   - name: The cache name, recorded for operators inspecting snapshots
//   - items: The cache.Dump output to wrap
//
// Returns:
//   - *Snapshot[K, V]: The snapshot envelope
func NewSnapshot[K comparable, V any](name string, items []cache.Item[K, V]) *Snapshot[K, V] {
	return &Snapshot[K, V]{
		Version:   SnapshotVersion,
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: time.Now(),
		Items:     items,
	}
}

// Store reads and writes snapshots on some durable medium.
//
// Load returns (nil, nil) when no snapshot exists yet; that is the normal
// first-run case, not an error.
//
// Store 在某种持久介质上读写快照。
//
// 尚无快照时Load返回(nil, nil)，这是首次运行的正常情况而非错误。
type Store[K comparable, V any] interface {
	Save(ctx context.Context, snap *Snapshot[K, V]) error
	Load(ctx context.Context) (*Snapshot[K, V], error)
}

// decodeSnapshot unmarshals snapshot bytes and checks the envelope version.
// Both stores share it so corruption and version skew surface as the same
// sentinel errors regardless of the medium.
//
// decodeSnapshot 解码快照字节并检查信封版本。两种存储共用它，
// 使损坏和版本偏差无论介质如何都以相同的哨兵错误呈现。
func decodeSnapshot[K comparable, V any](c codec.Codec, data []byte) (*Snapshot[K, V], error) {
	var snap Snapshot[K, V]
	if err := c.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrSnapshotCorrupt, err)
	}
	if snap.Version != SnapshotVersion {
		return nil, fmt.Errorf("%w: got %d, want %d", errors.ErrSnapshotVersion, snap.Version, SnapshotVersion)
	}
	return &snap, nil
}

// Manager pairs a cache with a store and drives snapshots: on demand through
// SaveNow and Restore, and periodically from a background goroutine between
// Start and Stop. Because the cache itself is single-goroutine, the manager
// takes a sync.Locker to serialize its Dump/Load against the cache's owner,
// the same arrangement cache.Janitor uses.
//
// Manager 将缓存与存储配对并驱动快照：通过SaveNow和Restore按需执行，
// 在Start与Stop之间由后台goroutine周期执行。由于缓存本身是单goroutine模型，
// Manager接受sync.Locker以便将其Dump/Load与缓存持有方串行化，
// 与cache.Janitor的安排相同。
type Manager[K comparable, V any] struct {
	cache    *cache.Cache[K, V]
	store    Store[K, V]
	interval time.Duration
	locker   sync.Locker
	logger   *slog.Logger

	startOnce sync.Once
	closeOnce sync.Once
	closeChan chan struct{}
	wg        sync.WaitGroup
}

// NewManager creates a snapshot manager. An interval of zero or less disables
// the periodic loop; SaveNow and Restore still work.
//
// NewManager 创建快照管理器。周期小于等于零时禁用周期循环，
// SaveNow和Restore仍然可用。
//
// Parameters:
//   - c: The cache to snapshot
//   - store: Where snapshots are saved and loaded
//   - interval: How often the background loop saves, 0 to disable
//
// Returns:
//   - *Manager[K, V]: The manager, not yet started
func NewManager[K comparable, V any](c *cache.Cache[K, V], store Store[K, V], interval time.Duration) *Manager[K, V] {
	return &Manager[K, V]{
		cache:     c,
		store:     store,
		interval:  interval,
		logger:    slog.Default(),
		closeChan: make(chan struct{}),
	}
}

// WithLocker sets the lock held around cache access. Use the same locker the
// cache's owning goroutine uses.
//
// WithLocker 设置访问缓存时持有的锁。请使用缓存持有goroutine所用的同一把锁。
func (m *Manager[K, V]) WithLocker(l sync.Locker) *Manager[K, V] {
	m.locker = l
	return m
}

// WithLogger sets the logger for background save failures.
// WithLogger 设置记录后台保存失败的日志器。
func (m *Manager[K, V]) WithLogger(logger *slog.Logger) *Manager[K, V] {
	if logger != nil {
		m.logger = logger
	}
	return m
}

// SaveNow dumps the cache and writes one snapshot to the store.
//
// SaveNow 导出缓存并向存储写入一个快照。
//
// Parameters:
//   - ctx: Context governing the store write
//
// Returns:
//   - error: An error from the store, or nil
func (m *Manager[K, V]) SaveNow(ctx context.Context) error {
	if m.locker != nil {
		m.locker.Lock()
	}
	name := m.cache.Name()
	items := m.cache.Dump()
	if m.locker != nil {
		m.locker.Unlock()
	}
	return m.store.Save(ctx, NewSnapshot(name, items))
}

// Restore loads the latest snapshot and replays it into the cache, replacing
// the cache's current contents. With no snapshot in the store it is a no-op.
//
// Restore 加载最新快照并重放进缓存，替换缓存当前内容。
// 存储中没有快照时不做任何事。
//
// Parameters:
//   - ctx: Context governing the store read
//
// Returns:
//   - int: Entries restored into the cache
//   - error: An error from the store, or nil
func (m *Manager[K, V]) Restore(ctx context.Context) (int, error) {
	snap, err := m.store.Load(ctx)
	if err != nil {
		return 0, err
	}
	if snap == nil {
		return 0, nil
	}
	if m.locker != nil {
		m.locker.Lock()
		defer m.locker.Unlock()
	}
	return m.cache.Load(snap.Items), nil
}

// Start launches the periodic save loop. Calling it again, or with the
// periodic loop disabled, does nothing.
//
// Start 启动周期保存循环。重复调用或在周期循环被禁用时调用不做任何事。
func (m *Manager[K, V]) Start() {
	if m.interval <= 0 {
		return
	}
	m.startOnce.Do(func() {
		m.wg.Add(1)
		go m.loop()
	})
}

// Stop terminates the loop and waits for an in-flight save to finish. Safe to
// call repeatedly and before Start.
//
// Stop 终止循环并等待进行中的保存完成。可重复调用，在Start之前调用也安全。
func (m *Manager[K, V]) Stop() {
	m.closeOnce.Do(func() {
		close(m.closeChan)
	})
	m.wg.Wait()
}

func (m *Manager[K, V]) loop() {
	defer m.wg.Done()

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := m.SaveNow(context.Background()); err != nil {
				m.logger.Error("periodic snapshot save failed",
					"cache", m.cache.Name(),
					"error", err,
				)
			}
		case <-m.closeChan:
			return
		}
	}
}
