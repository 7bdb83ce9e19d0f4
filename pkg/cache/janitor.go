package cache

import (
	"sync"
	"time"
)

// defaultJanitorInterval is used when neither the janitor nor the cache
// configuration supplies an interval.
// defaultJanitorInterval 在Janitor和缓存配置都未提供间隔时使用。
const defaultJanitorInterval = 30 * time.Second

// Janitor drives periodic pruning on its own goroutine. The engine never
// schedules pruning itself; attaching a Janitor is how expired entries that
// are never accessed again get collected.
//
// Because the cache performs no internal locking, a Janitor sharing a cache
// with other goroutines must be given the same sync.Locker those goroutines
// use, via WithLocker. Without one, the Janitor assumes it is the only
// concurrent toucher besides an externally-quiesced owner.
//
// Janitor 在独立goroutine上周期性驱动清理。引擎自身从不调度清理；
// 挂接Janitor是回收那些不再被访问的过期条目的方式。
//
// 由于缓存内部不加锁，与其他goroutine共享缓存的Janitor必须通过WithLocker
// 拿到这些goroutine使用的同一把sync.Locker。未提供时，
// Janitor假定除已静默的拥有者之外只有它自己在访问缓存。
type Janitor[K comparable, V any] struct {
	cache    *Cache[K, V]
	interval time.Duration
	locker   sync.Locker

	startOnce sync.Once
	closeOnce sync.Once
	closeChan chan struct{}
	wg        sync.WaitGroup
}

// NewJanitor creates a janitor for c. A non-positive interval falls back to
// the cache's configured JanitorInterval, then to 30 seconds. The janitor
// does not run until Start is called.
//
// NewJanitor 为c创建Janitor。间隔非正时回落到缓存配置的JanitorInterval，
// 再回落到30秒。调用Start之前Janitor不会运行。
//
// Parameters:
//   - c: The cache to prune
//   - interval: The interval between prune runs
//
// Returns:
//   - *Janitor[K, V]: The new janitor, not yet started
func NewJanitor[K comparable, V any](c *Cache[K, V], interval time.Duration) *Janitor[K, V] {
	if interval <= 0 {
		interval = c.janitorInterval
	}
	if interval <= 0 {
		interval = defaultJanitorInterval
	}
	return &Janitor[K, V]{
		cache:     c,
		interval:  interval,
		closeChan: make(chan struct{}),
	}
}

// WithLocker sets the lock held around each prune run. Must be called before
// Start.
//
// WithLocker 设置每次清理运行时持有的锁。必须在Start之前调用。
//
// Parameters:
//   - l: The locker shared with other cache users
//
// Returns:
//   - *Janitor[K, V]: The janitor (for method chaining)
func (j *Janitor[K, V]) WithLocker(l sync.Locker) *Janitor[K, V] {
	j.locker = l
	return j
}

// Start launches the prune loop. Subsequent calls are no-ops.
//
// Start 启动清理循环。重复调用不产生效果。
func (j *Janitor[K, V]) Start() {
	j.startOnce.Do(func() {
		j.wg.Add(1)
		go j.loop()
	})
}

// Stop terminates the prune loop and waits for it to exit. Safe to call more
// than once, and safe to call before Start.
//
// Stop 终止清理循环并等待其退出。可多次调用，在Start之前调用也是安全的。
func (j *Janitor[K, V]) Stop() {
	j.closeOnce.Do(func() {
		close(j.closeChan)
	})
	j.wg.Wait()
}

func (j *Janitor[K, V]) loop() {
	defer j.wg.Done()

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			j.runOnce()
		case <-j.closeChan:
			return
		}
	}
}

// runOnce performs a single locked prune and logs the result.
// runOnce 执行一次加锁的清理并记录结果。
func (j *Janitor[K, V]) runOnce() {
	if j.locker != nil {
		j.locker.Lock()
		defer j.locker.Unlock()
	}
	if removed := j.cache.Prune(); removed > 0 {
		j.cache.logger.Debug("janitor pruned entries",
			"cache", j.cache.name,
			"removed", removed,
		)
	}
}
