// Package configs provides configuration structures and utilities for LCache.
// It offers mechanisms for loading, validating, and saving configuration from
// various sources including JSON and YAML files. The package defines the
// configuration structure that controls the cache, its background janitor,
// snapshot persistence and logging.
//
// Package configs 提供LCache的配置结构和工具。
// 它提供从各种来源（包括JSON和YAML文件）加载、验证和保存配置的机制。
// 该包定义的配置结构控制缓存、后台janitor、快照持久化和日志。
package configs

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"encoding/json"

	"gopkg.in/yaml.v3"

	"github.com/noobtrump/lcache/pkg/cache"
)

// Config represents the complete configuration for LCache.
// It contains all settings needed to run a cache instance,
// organized into logical sections for different components.
//
// Config 表示LCache的完整配置。
// 它包含运行一个缓存实例所需的所有设置，
// 按不同组件的逻辑部分进行组织。
type Config struct {
	// Cache contains core cache settings like capacity and TTL
	// Cache 包含核心缓存设置，如容量和TTL
	Cache CacheConfig `json:"cache" yaml:"cache"`

	// Janitor controls the background expiry sweeper
	// Janitor 控制后台过期清理器
	Janitor JanitorConfig `json:"janitor" yaml:"janitor"`

	// Persist controls snapshot persistence across restarts
	// Persist 控制跨重启的快照持久化
	Persist PersistConfig `json:"persist" yaml:"persist"`

	// Log configures the logging behavior
	// Log 配置日志行为
	Log LogConfig `json:"log" yaml:"log"`

	// Extensions configures optional features like hot reloading
	// Extensions 配置可选功能，如热重载
	Extensions ExtensionsConfig `json:"extensions" yaml:"extensions"`

	// Extra allows for custom configuration options
	// Extra 允许自定义配置选项
	Extra map[string]interface{} `json:"extra" yaml:"extra"`
}

// CacheConfig contains settings for the cache itself.
// These settings control the core behavior of the cache,
// such as capacity limits and expiration policies.
//
// CacheConfig 包含缓存本身的设置。
// 这些设置控制缓存的核心行为，如容量限制和过期策略。
type CacheConfig struct {
	// Enable determines whether the cache is active
	// Enable 确定缓存是否处于活动状态
	Enable bool `json:"enable" yaml:"enable"`

	// Name is the identifier for this cache instance
	// Name 是此缓存实例的标识符
	Name string `json:"name" yaml:"name"`

	// MaxEntries is the maximum number of entries the cache can hold (0 = unlimited)
	// MaxEntries 是缓存可以容纳的最大条目数（0 = 无限制）
	MaxEntries int `json:"max_entries" yaml:"max_entries"`

	// MaxTotalSize is the maximum aggregate entry size (0 = unlimited)
	// MaxTotalSize 是条目总大小的上限（0 = 无限制）
	MaxTotalSize int64 `json:"max_total_size" yaml:"max_total_size"`

	// DefaultTTL is the default time-to-live for cache entries (0 = never expire)
	// DefaultTTL 是缓存条目的默认生存时间（0 = 永不过期）
	DefaultTTL time.Duration `json:"default_ttl" yaml:"default_ttl"`

	// AllowStale serves expired entries instead of removing them on access
	// AllowStale 允许返回过期条目，而不是在访问时移除它们
	AllowStale bool `json:"allow_stale" yaml:"allow_stale"`

	// DisposeOnOverwrite runs the disposal callback for values replaced by Set
	// DisposeOnOverwrite 对被Set替换的值执行清理回调
	DisposeOnOverwrite bool `json:"dispose_on_overwrite" yaml:"dispose_on_overwrite"`

	// AsyncDispose runs disposal callbacks on their own goroutines
	// AsyncDispose 在独立goroutine上执行清理回调
	AsyncDispose bool `json:"async_dispose" yaml:"async_dispose"`
}

// JanitorConfig contains settings for the background expiry sweeper.
// JanitorConfig 包含后台过期清理器的设置。
type JanitorConfig struct {
	// Enable determines whether the janitor runs
	// Enable 确定janitor是否运行
	Enable bool `json:"enable" yaml:"enable"`

	// Interval is how often expired entries are swept
	// Interval 是清扫过期条目的频率
	Interval time.Duration `json:"interval" yaml:"interval"`
}

// PersistConfig contains settings for snapshot persistence.
// These settings control where snapshots are written, how they are
// encoded, and how often the background save runs.
//
// PersistConfig 包含快照持久化的设置。
// 这些设置控制快照写到哪里、如何编码以及后台保存的频率。
type PersistConfig struct {
	// Enable determines whether snapshots are saved and restored
	// Enable 确定是否保存和恢复快照
	Enable bool `json:"enable" yaml:"enable"`

	// Store selects the snapshot backend ("file", "redis")
	// Store 选择快照后端（"file"、"redis"）
	Store string `json:"store" yaml:"store"`

	// Codec selects the snapshot encoding ("json", "gob")
	// Codec 选择快照编码（"json"、"gob"）
	Codec string `json:"codec" yaml:"codec"`

	// Interval is how often a snapshot is written (0 = only on shutdown)
	// Interval 是写出快照的频率（0 = 仅在关闭时）
	Interval time.Duration `json:"interval" yaml:"interval"`

	// File configures the file store
	// File 配置文件存储
	File FileStoreConfig `json:"file" yaml:"file"`

	// Redis configures the Redis store
	// Redis 配置Redis存储
	Redis RedisStoreConfig `json:"redis" yaml:"redis"`
}

// FileStoreConfig contains settings for the file snapshot store.
// FileStoreConfig 包含文件快照存储的设置。
type FileStoreConfig struct {
	// Path is where the snapshot file is written
	// Path 是快照文件的写入位置
	Path string `json:"path" yaml:"path"`
}

// RedisStoreConfig contains settings for the Redis snapshot store.
// RedisStoreConfig 包含Redis快照存储的设置。
type RedisStoreConfig struct {
	// Addr is the Redis server address (host:port)
	// Addr 是Redis服务器地址（host:port）
	Addr string `json:"addr" yaml:"addr"`

	// Password is the Redis password, empty for no auth
	// Password 是Redis密码，无认证时为空
	Password string `json:"password" yaml:"password"`

	// DB is the Redis database number
	// DB 是Redis数据库编号
	DB int `json:"db" yaml:"db"`

	// Key is the Redis key the snapshot is stored under
	// Key 是存放快照的Redis键
	Key string `json:"key" yaml:"key"`

	// DialTimeout bounds connection establishment
	// DialTimeout 限制建立连接的耗时
	DialTimeout time.Duration `json:"dial_timeout" yaml:"dial_timeout"`

	// ReadTimeout bounds read operations
	// ReadTimeout 限制读操作的耗时
	ReadTimeout time.Duration `json:"read_timeout" yaml:"read_timeout"`

	// WriteTimeout bounds write operations
	// WriteTimeout 限制写操作的耗时
	WriteTimeout time.Duration `json:"write_timeout" yaml:"write_timeout"`
}

// LogConfig contains settings for logging.
// These settings control the logging behavior, including
// log level, format, and output destination.
//
// LogConfig 包含日志记录的设置。
// 这些设置控制日志行为，包括日志级别、格式和输出目的地。
type LogConfig struct {
	// Level sets the minimum log level ("debug", "info", "warn", "error")
	// Level 设置最低日志级别（"debug"、"info"、"warn"、"error"）
	Level string `json:"level" yaml:"level"`

	// Format specifies the log format ("text", "json")
	// Format 指定日志格式（"text"、"json"）
	Format string `json:"format" yaml:"format"`

	// Output determines where logs are written ("stdout", "stderr", "file")
	// Output 确定日志写入的位置（"stdout"、"stderr"、"file"）
	Output string `json:"output" yaml:"output"`

	// FilePath is the path to the log file when Output is "file"
	// FilePath 是当Output为"file"时的日志文件路径
	FilePath string `json:"file_path" yaml:"file_path"`

	// AddSource includes the caller position in log records
	// AddSource 在日志记录中包含调用位置
	AddSource bool `json:"add_source" yaml:"add_source"`
}

// ExtensionsConfig contains settings for extensions.
// These settings control optional features that extend
// the core functionality of the cache.
//
// ExtensionsConfig 包含扩展的设置。
// 这些设置控制扩展缓存核心功能的可选功能。
type ExtensionsConfig struct {
	// HotReload contains settings for dynamic configuration reloading
	// HotReload 包含动态配置重新加载的设置
	HotReload HotReloadConfig `json:"hot_reload" yaml:"hot_reload"`
}

// HotReloadConfig contains settings for hot reloading.
// These settings control how configuration changes are
// detected and applied without system restart.
//
// HotReloadConfig 包含热重载的设置。
// 这些设置控制如何检测和应用配置更改而无需重启系统。
type HotReloadConfig struct {
	// Enable determines whether hot reloading is active
	// Enable 确定是否启用热重载
	Enable bool `json:"enable" yaml:"enable"`

	// WatchInterval is how often to check for configuration changes
	// WatchInterval 是检查配置更改的频率
	WatchInterval time.Duration `json:"watch_interval" yaml:"watch_interval"`
}

// DefaultConfig returns a new Config with default values.
// This provides a starting point for configuration with reasonable defaults
// for all settings, which can then be customized as needed.
//
// DefaultConfig 返回具有默认值的新Config。
// 这为所有设置提供了具有合理默认值的配置起点，
// 然后可以根据需要进行自定义。
//
// Returns:
//   - *Config: A new configuration instance with default values
//
// 返回：
//   - *Config: 具有默认值的新配置实例
func DefaultConfig() *Config {
	return &Config{
		Cache: CacheConfig{
			Enable:             true,
			Name:               "lcache",
			MaxEntries:         100000,
			MaxTotalSize:       0,
			DefaultTTL:         300 * time.Second,
			AllowStale:         false,
			DisposeOnOverwrite: true,
			AsyncDispose:       false,
		},
		Janitor: JanitorConfig{
			Enable:   true,
			Interval: 30 * time.Second,
		},
		Persist: PersistConfig{
			Enable:   false,
			Store:    "file",
			Codec:    "json",
			Interval: 300 * time.Second,
			File: FileStoreConfig{
				Path: "./data/lcache.snap",
			},
			Redis: RedisStoreConfig{
				Addr:         "localhost:6379",
				DB:           0,
				Key:          "lcache:snapshot",
				DialTimeout:  5 * time.Second,
				ReadTimeout:  3 * time.Second,
				WriteTimeout: 3 * time.Second,
			},
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
			Output: "stdout",
		},
		Extensions: ExtensionsConfig{
			HotReload: HotReloadConfig{
				Enable:        false,
				WatchInterval: 30 * time.Second,
			},
		},
		Extra: make(map[string]interface{}),
	}
}

// NewCacheConfig converts the file-level cache section into a typed cache
// configuration. Function fields (SizeOf, OnDispose, Loader) cannot come from
// a file; set them on the returned config before calling cache.New.
//
// NewCacheConfig 将文件级缓存配置段转换为带类型的缓存配置。
// 函数字段（SizeOf、OnDispose、Loader）无法来自文件，
// 请在调用cache.New前在返回的配置上设置它们。
//
// Parameters:
//   - cfg: The loaded file configuration
//
// Returns:
//   - *cache.Config[K, V]: A cache configuration mirroring the file settings
func NewCacheConfig[K comparable, V any](cfg *Config) *cache.Config[K, V] {
	janitorInterval := time.Duration(0)
	if cfg.Janitor.Enable {
		janitorInterval = cfg.Janitor.Interval
	}
	return cache.DefaultConfig[K, V]().
		WithName(cfg.Cache.Name).
		WithMaxEntries(cfg.Cache.MaxEntries).
		WithMaxTotalSize(cfg.Cache.MaxTotalSize).
		WithDefaultTTL(cfg.Cache.DefaultTTL).
		WithAllowStale(cfg.Cache.AllowStale).
		WithDisposeOnOverwrite(cfg.Cache.DisposeOnOverwrite).
		WithAsyncDispose(cfg.Cache.AsyncDispose).
		WithJanitorInterval(janitorInterval)
}

// NewCacheFromFile loads a configuration file, validates it, and builds a
// cache from its cache section. It is the one-call path for programs that
// need no function fields on the configuration.
//
// NewCacheFromFile 加载配置文件、验证并根据其缓存配置段构建缓存。
// 对于不需要在配置上设置函数字段的程序，这是一步到位的入口。
//
// Parameters:
//   - filename: Path to a YAML or JSON configuration file
//
// Returns:
//   - *cache.Cache[K, V]: The constructed cache
//   - error: An error if loading, validation, or construction fails
func NewCacheFromFile[K comparable, V any](filename string) (*cache.Cache[K, V], error) {
	cfg, err := LoadFromFile(filename)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cache.New(NewCacheConfig[K, V](cfg))
}

// NewLogger builds a slog.Logger from the log section.
//
// NewLogger 根据日志配置段构建slog.Logger。
//
// Returns:
//   - *slog.Logger: The configured logger
//   - error: An error if the log file cannot be opened
func (lc *LogConfig) NewLogger() (*slog.Logger, error) {
	var output io.Writer
	switch lc.Output {
	case "", "stdout":
		output = os.Stdout
	case "stderr":
		output = os.Stderr
	case "file":
		f, err := os.OpenFile(lc.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		output = f
	default:
		return nil, fmt.Errorf("unsupported log output: %s", lc.Output)
	}

	opts := &slog.HandlerOptions{
		Level:     parseLogLevel(lc.Level),
		AddSource: lc.AddSource,
	}

	var handler slog.Handler
	switch strings.ToLower(lc.Format) {
	case "json":
		handler = slog.NewJSONHandler(output, opts)
	default:
		handler = slog.NewTextHandler(output, opts)
	}
	return slog.New(handler), nil
}

// parseLogLevel maps a level name to a slog.Level, defaulting to info.
// parseLogLevel 将级别名称映射为slog.Level，默认为info。
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LoadFromFile loads configuration from a file.
// It supports both YAML and JSON formats, automatically
// detecting the format based on the file extension.
//
// LoadFromFile 从文件加载配置。
// 它支持YAML和JSON格式，根据文件扩展名自动检测格式。
//
// Parameters:
//   - filename: Path to the configuration file
//
// Returns:
//   - *Config: The loaded configuration
//   - error: An error if loading fails
//
// 参数：
//   - filename: 配置文件的路径
//
// 返回：
//   - *Config: 加载的配置
//   - error: 如果加载失败则返回错误
func LoadFromFile(filename string) (*Config, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open configuration file: %w", err)
	}
	defer file.Close()

	config := DefaultConfig()
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".yaml", ".yml":
		err = yaml.NewDecoder(file).Decode(config)
	case ".json":
		err = json.NewDecoder(file).Decode(config)
	default:
		return nil, fmt.Errorf("unsupported configuration file format: %s", ext)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}

	return config, nil
}

// LoadFromReader loads configuration from an io.Reader.
// This allows loading configuration from sources other than files,
// such as network streams or in-memory data.
//
// LoadFromReader 从io.Reader加载配置。
// 这允许从文件以外的源加载配置，如网络流或内存中的数据。
//
// Parameters:
//   - r: The reader providing the configuration data
//   - format: The format of the data ("json", "yaml", or "yml")
//
// Returns:
//   - *Config: The loaded configuration
//   - error: An error if loading fails
//
// 参数：
//   - r: 提供配置数据的读取器
//   - format: 数据的格式（"json"、"yaml"或"yml"）
//
// 返回：
//   - *Config: 加载的配置
//   - error: 如果加载失败则返回错误
func LoadFromReader(r io.Reader, format string) (*Config, error) {
	config := DefaultConfig()
	var err error

	switch strings.ToLower(format) {
	case "yaml", "yml":
		err = yaml.NewDecoder(r).Decode(config)
	case "json":
		err = json.NewDecoder(r).Decode(config)
	default:
		return nil, fmt.Errorf("unsupported configuration format: %s", format)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a file.
// It supports both YAML and JSON formats, automatically
// selecting the format based on the file extension.
//
// SaveToFile 将配置保存到文件。
// 它支持YAML和JSON格式，根据文件扩展名自动选择格式。
//
// Parameters:
//   - filename: Path where the configuration will be saved
//
// Returns:
//   - error: An error if saving fails
//
// 参数：
//   - filename: 配置将保存的路径
//
// 返回：
//   - error: 如果保存失败则返回错误
func (c *Config) SaveToFile(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create configuration file: %w", err)
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".yaml", ".yml":
		encoder := yaml.NewEncoder(file)
		defer encoder.Close()
		err = encoder.Encode(c)
	case ".json":
		encoder := json.NewEncoder(file)
		encoder.SetIndent("", "  ")
		err = encoder.Encode(c)
	default:
		return fmt.Errorf("unsupported configuration file format: %s", ext)
	}

	if err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}

	return nil
}

// Validate validates the configuration.
// It checks that all settings have valid values and
// that there are no conflicts or inconsistencies.
//
// Validate 验证配置。
// 它检查所有设置是否具有有效值，并且没有冲突或不一致。
//
// Returns:
//   - error: An error describing the validation failure, or nil if valid
//
// 返回：
//   - error: 描述验证失败的错误，如果有效则为nil
func (c *Config) Validate() error {
	// Validate cache settings
	// 验证缓存设置
	if c.Cache.Name == "" {
		return fmt.Errorf("cache.name must not be empty")
	}
	if c.Cache.MaxEntries < 0 {
		return fmt.Errorf("cache.max_entries must be non-negative")
	}
	if c.Cache.MaxTotalSize < 0 {
		return fmt.Errorf("cache.max_total_size must be non-negative")
	}
	if c.Cache.DefaultTTL < 0 {
		return fmt.Errorf("cache.default_ttl must be non-negative")
	}

	// Validate janitor settings
	// 验证janitor设置
	if c.Janitor.Enable && c.Janitor.Interval < time.Second {
		return fmt.Errorf("janitor.interval must be at least 1 second")
	}

	// Validate persistence settings
	// 验证持久化设置
	if c.Persist.Enable {
		switch c.Persist.Store {
		case "file":
			if c.Persist.File.Path == "" {
				return fmt.Errorf("persist.file.path must be specified when persist.store is 'file'")
			}
		case "redis":
			if c.Persist.Redis.Addr == "" {
				return fmt.Errorf("persist.redis.addr must be specified when persist.store is 'redis'")
			}
			if c.Persist.Redis.Key == "" {
				return fmt.Errorf("persist.redis.key must be specified when persist.store is 'redis'")
			}
		default:
			return fmt.Errorf("persist.store must be one of: file, redis")
		}
		switch c.Persist.Codec {
		case "json", "gob":
			// Valid codecs
			// 有效编码
		default:
			return fmt.Errorf("persist.codec must be one of: json, gob")
		}
		if c.Persist.Interval != 0 && c.Persist.Interval < time.Second {
			return fmt.Errorf("persist.interval must be 0 or at least 1 second")
		}
	}

	// Validate log settings
	// 验证日志设置
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
		// Valid levels
		// 有效级别
	default:
		return fmt.Errorf("log.level must be one of: debug, info, warn, error")
	}
	switch c.Log.Format {
	case "text", "json":
		// Valid formats
		// 有效格式
	default:
		return fmt.Errorf("log.format must be one of: text, json")
	}
	switch c.Log.Output {
	case "stdout", "stderr", "file":
		// Valid outputs
		// 有效输出
	default:
		return fmt.Errorf("log.output must be one of: stdout, stderr, file")
	}
	if c.Log.Output == "file" && c.Log.FilePath == "" {
		return fmt.Errorf("log.file_path must be specified when log.output is 'file'")
	}

	// Validate extensions settings
	// 验证扩展设置
	if c.Extensions.HotReload.Enable && c.Extensions.HotReload.WatchInterval < time.Second {
		return fmt.Errorf("extensions.hot_reload.watch_interval must be at least 1 second")
	}

	return nil
}
