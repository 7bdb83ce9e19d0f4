package cache

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/noobtrump/lcache/pkg/loader"
)

// SizeFunc computes the size charged to an entry when no explicit size is
// supplied with Set. The returned size contributes to the total-size bound.
//
// SizeFunc 在Set未显式给出大小时计算条目计入的大小。
// 返回的大小会计入总大小限制。
type SizeFunc[K comparable, V any] func(value V, key K) int64

// Clock supplies the current time. Injecting one makes TTL behavior
// deterministic in tests; the default is time.Now.
//
// Clock 提供当前时间。注入时钟可使TTL行为在测试中可确定，默认为time.Now。
type Clock func() time.Time

// Config defines the configuration options for a cache instance.
// It controls capacity bounds, expiry, disposal behavior, and the
// collaborators the cache consumes (clock, loader, logger). The cache copies
// what it needs at construction; mutating a Config afterwards has no effect
// on caches already built from it.
//
// Config 定义缓存实例的配置选项。
// 它控制容量限制、过期、清理行为以及缓存消费的协作者（时钟、加载器、日志器）。
// 缓存在构造时拷贝所需内容，之后修改Config不影响已构建的缓存。
type Config[K comparable, V any] struct {
	// Name of the cache instance, used for logging and snapshot metadata
	// 缓存实例的名称，用于日志记录和快照元数据
	Name string `json:"name" yaml:"name"`

	// MaxEntries is the maximum number of entries the cache can hold
	// If set to 0, there is no limit on the number of entries
	//
	// MaxEntries 是缓存可以容纳的最大条目数
	// 如果设置为0，则条目数量没有限制
	MaxEntries int `json:"max_entries" yaml:"max_entries"`

	// MaxTotalSize is the maximum aggregate size of all entries, in the
	// units produced by SizeOf (entries charge 1 each when SizeOf is nil)
	// If set to 0, there is no limit on aggregate size
	//
	// MaxTotalSize 是所有条目的最大总大小，单位由SizeOf决定
	// （SizeOf为nil时每个条目计1）。如果设置为0，则总大小没有限制
	MaxTotalSize int64 `json:"max_total_size" yaml:"max_total_size"`

	// DefaultTTL is the default time-to-live for cache entries
	// If zero or negative, entries don't expire by default
	//
	// DefaultTTL 是缓存条目的默认生存时间
	// 为零或负值时，条目默认不过期
	DefaultTTL time.Duration `json:"default_ttl" yaml:"default_ttl"`

	// SizeOf computes the size charged to an entry when Set is not given an
	// explicit size. If nil, every entry is charged size 1
	//
	// SizeOf 在Set未显式给出大小时计算条目计入的大小
	// 如果为nil，每个条目计1
	SizeOf SizeFunc[K, V] `json:"-" yaml:"-"`

	// OnDispose is invoked once per removal with the removal reason, after
	// the entry is already detached. A panicking callback is recovered and
	// logged, never propagated. The callback must not call back into the
	// cache
	//
	// OnDispose 在每次移除时调用一次并携带移除原因，调用时条目已完成摘除。
	// 回调中的panic会被恢复并记录，不会向外传播。回调内不得再调用本缓存
	OnDispose DisposeFunc[K, V] `json:"-" yaml:"-"`

	// DisposeOnOverwrite controls whether replacing an existing key invokes
	// OnDispose with ReasonOverwritten on the old value
	//
	// DisposeOnOverwrite 控制覆盖已有键时是否以ReasonOverwritten
	// 对旧值调用OnDispose
	DisposeOnOverwrite bool `json:"dispose_on_overwrite" yaml:"dispose_on_overwrite"`

	// AllowStale lets Get, Peek and Has serve expired entries until they are
	// physically removed by Prune or an eviction. Stale reads count as hits
	// and do not refresh recency
	//
	// AllowStale 允许Get、Peek和Has在过期条目被Prune或淘汰物理移除之前
	// 继续返回它们。过期读取计为命中且不刷新访问顺序
	AllowStale bool `json:"allow_stale" yaml:"allow_stale"`

	// AsyncDispose dispatches each disposal callback on its own goroutine,
	// decoupling callback completion from the removal that triggered it
	//
	// AsyncDispose 将每次清理回调派发到独立的goroutine执行，
	// 使回调完成与触发它的移除操作解耦
	AsyncDispose bool `json:"async_dispose" yaml:"async_dispose"`

	// JanitorInterval is the interval hint consumed by the Janitor when one
	// is attached to this cache; the engine itself never schedules pruning
	//
	// JanitorInterval 是挂接Janitor时其使用的周期提示；
	// 引擎本身从不自行调度清理
	JanitorInterval time.Duration `json:"janitor_interval" yaml:"janitor_interval"`

	// Loader is the optional data source consulted by GetOrLoad on a miss
	//
	// Loader 是GetOrLoad未命中时查询的可选数据源
	Loader loader.Loader[K, V] `json:"-" yaml:"-"`

	// Clock is the time source; nil means time.Now
	//
	// Clock 是时间源，为nil时使用time.Now
	Clock Clock `json:"-" yaml:"-"`

	// Logger receives disposal-callback panic reports and janitor output;
	// nil means slog.Default()
	//
	// Logger 接收清理回调panic报告和Janitor输出，为nil时使用slog.Default()
	Logger *slog.Logger `json:"-" yaml:"-"`
}

// DefaultConfig returns a Config with sensible default values: 10000 entries,
// unbounded total size, no default expiry, disposal on overwrite enabled.
//
// DefaultConfig 返回具有合理默认值的Config：10000条目、总大小不限、
// 默认不过期、覆盖时触发清理回调。
//
// Returns:
//   - *Config[K, V]: A new configuration instance with default values
func DefaultConfig[K comparable, V any]() *Config[K, V] {
	return &Config[K, V]{
		Name:               "lcache",
		MaxEntries:         10000,
		MaxTotalSize:       0,
		DefaultTTL:         0,
		DisposeOnOverwrite: true,
		AllowStale:         false,
		AsyncDispose:       false,
		JanitorInterval:    30 * time.Second,
	}
}

// Validate checks if the configuration is valid.
// It verifies that all settings have appropriate values.
//
// Validate 检查配置是否有效。
// 它验证所有设置是否具有适当的值。
//
// Returns:
//   - error: An error if the configuration is invalid, nil otherwise
func (c *Config[K, V]) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("cache name cannot be empty")
	}

	if c.MaxEntries < 0 {
		return fmt.Errorf("max entries cannot be negative")
	}

	if c.MaxTotalSize < 0 {
		return fmt.Errorf("max total size cannot be negative")
	}

	// A zero interval disables the janitor; sub-second intervals would burn
	// CPU on prune scans.
	// 间隔为零表示禁用Janitor；小于一秒的间隔会让清理扫描空耗CPU。
	if c.JanitorInterval != 0 && c.JanitorInterval < time.Second {
		return fmt.Errorf("janitor interval must be at least 1 second")
	}

	return nil
}

// WithName sets the cache name.
// The name is used for logging and snapshot metadata.
//
// WithName 设置缓存名称。
// 名称用于日志记录和快照元数据。
//
// Parameters:
//   - name: The name to set
//
// Returns:
//   - *Config[K, V]: The modified configuration (for method chaining)
func (c *Config[K, V]) WithName(name string) *Config[K, V] {
	c.Name = name
	return c
}

// WithMaxEntries sets the maximum number of entries.
// If set to 0, there is no limit on the number of entries.
//
// WithMaxEntries 设置最大条目数。
// 如果设置为0，则条目数量没有限制。
//
// Parameters:
//   - max: The maximum number of entries
//
// Returns:
//   - *Config[K, V]: The modified configuration (for method chaining)
func (c *Config[K, V]) WithMaxEntries(max int) *Config[K, V] {
	c.MaxEntries = max
	return c
}

// WithMaxTotalSize sets the maximum aggregate size of all entries.
// If set to 0, there is no limit on aggregate size.
//
// WithMaxTotalSize 设置所有条目的最大总大小。
// 如果设置为0，则总大小没有限制。
//
// Parameters:
//   - max: The maximum aggregate size
//
// Returns:
//   - *Config[K, V]: The modified configuration (for method chaining)
func (c *Config[K, V]) WithMaxTotalSize(max int64) *Config[K, V] {
	c.MaxTotalSize = max
	return c
}

// WithDefaultTTL sets the default time-to-live for cache entries.
// If zero or negative, entries don't expire by default.
//
// WithDefaultTTL 设置缓存条目的默认生存时间。
// 为零或负值时，条目默认不过期。
//
// Parameters:
//   - ttl: The default time-to-live duration
//
// Returns:
//   - *Config[K, V]: The modified configuration (for method chaining)
func (c *Config[K, V]) WithDefaultTTL(ttl time.Duration) *Config[K, V] {
	c.DefaultTTL = ttl
	return c
}

// WithSizeOf sets the size function applied to entries stored without an
// explicit size.
//
// WithSizeOf 设置未显式给出大小的条目所使用的大小函数。
//
// Parameters:
//   - fn: The size function
//
// Returns:
//   - *Config[K, V]: The modified configuration (for method chaining)
func (c *Config[K, V]) WithSizeOf(fn SizeFunc[K, V]) *Config[K, V] {
	c.SizeOf = fn
	return c
}

// WithOnDispose sets the disposal callback.
//
// WithOnDispose 设置清理回调。
//
// Parameters:
//   - fn: The callback invoked once per removal
//
// Returns:
//   - *Config[K, V]: The modified configuration (for method chaining)
func (c *Config[K, V]) WithOnDispose(fn DisposeFunc[K, V]) *Config[K, V] {
	c.OnDispose = fn
	return c
}

// WithDisposeOnOverwrite controls whether overwriting a key disposes the
// old value with ReasonOverwritten.
//
// WithDisposeOnOverwrite 控制覆盖键时是否以ReasonOverwritten清理旧值。
//
// Parameters:
//   - enable: Whether to dispose on overwrite
//
// Returns:
//   - *Config[K, V]: The modified configuration (for method chaining)
func (c *Config[K, V]) WithDisposeOnOverwrite(enable bool) *Config[K, V] {
	c.DisposeOnOverwrite = enable
	return c
}

// WithAllowStale controls whether expired entries remain readable until
// physically removed.
//
// WithAllowStale 控制过期条目在被物理移除前是否仍可读取。
//
// Parameters:
//   - enable: Whether to serve stale entries
//
// Returns:
//   - *Config[K, V]: The modified configuration (for method chaining)
func (c *Config[K, V]) WithAllowStale(enable bool) *Config[K, V] {
	c.AllowStale = enable
	return c
}

// WithAsyncDispose controls whether disposal callbacks run on their own
// goroutines.
//
// WithAsyncDispose 控制清理回调是否在独立goroutine中执行。
//
// Parameters:
//   - enable: Whether to dispatch disposals asynchronously
//
// Returns:
//   - *Config[K, V]: The modified configuration (for method chaining)
func (c *Config[K, V]) WithAsyncDispose(enable bool) *Config[K, V] {
	c.AsyncDispose = enable
	return c
}

// WithJanitorInterval sets the prune-interval hint consumed by the Janitor.
//
// WithJanitorInterval 设置Janitor使用的清理周期提示。
//
// Parameters:
//   - interval: The interval between prune runs
//
// Returns:
//   - *Config[K, V]: The modified configuration (for method chaining)
func (c *Config[K, V]) WithJanitorInterval(interval time.Duration) *Config[K, V] {
	c.JanitorInterval = interval
	return c
}

// WithLoader sets the data source consulted by GetOrLoad on a miss.
//
// WithLoader 设置GetOrLoad未命中时查询的数据源。
//
// Parameters:
//   - ld: The loader to use
//
// Returns:
//   - *Config[K, V]: The modified configuration (for method chaining)
func (c *Config[K, V]) WithLoader(ld loader.Loader[K, V]) *Config[K, V] {
	c.Loader = ld
	return c
}

// WithClock sets the time source used for TTL decisions.
//
// WithClock 设置用于TTL判断的时间源。
//
// Parameters:
//   - clock: The clock function
//
// Returns:
//   - *Config[K, V]: The modified configuration (for method chaining)
func (c *Config[K, V]) WithClock(clock Clock) *Config[K, V] {
	c.Clock = clock
	return c
}

// WithLogger sets the logger receiving disposal panic reports and janitor
// output.
//
// WithLogger 设置接收清理回调panic报告和Janitor输出的日志器。
//
// Parameters:
//   - logger: The logger to use
//
// Returns:
//   - *Config[K, V]: The modified configuration (for method chaining)
func (c *Config[K, V]) WithLogger(logger *slog.Logger) *Config[K, V] {
	c.Logger = logger
	return c
}
