// Package configs provides configuration structures and utilities for LCache.
// This file contains tests for the configuration functionality.
//
// Package configs 提供LCache的配置结构和工具。
// 本文件包含配置功能的测试。
package configs

import (
	"log/slog"
	"path/filepath"
	"testing"
	"time"
)

// TestDefaultConfig verifies that DefaultConfig returns a properly initialized Config
// with the expected default values for important settings.
//
// TestDefaultConfig 验证DefaultConfig返回一个正确初始化的Config，
// 包含重要设置的预期默认值。
func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()
	if config == nil {
		t.Fatal("DefaultConfig() returned nil")
	}

	// Test default values
	// 测试默认值
	if config.Cache.MaxEntries != 100000 {
		t.Errorf("Expected Cache.MaxEntries to be 100000, got %d", config.Cache.MaxEntries)
	}
	if !config.Cache.DisposeOnOverwrite {
		t.Error("Expected Cache.DisposeOnOverwrite to default to true")
	}
	if config.Janitor.Interval != 30*time.Second {
		t.Errorf("Expected Janitor.Interval to be 30s, got %v", config.Janitor.Interval)
	}
	if config.Persist.Store != "file" {
		t.Errorf("Expected Persist.Store to be 'file', got '%s'", config.Persist.Store)
	}
	if err := config.Validate(); err != nil {
		t.Errorf("Default config failed validation: %v", err)
	}
}

// TestLoadAndSaveConfig tests the ability to save and load configuration
// to and from files in both YAML and JSON formats.
//
// TestLoadAndSaveConfig 测试将配置保存到文件和从文件加载配置的能力，
// 包括YAML和JSON两种格式。
func TestLoadAndSaveConfig(t *testing.T) {
	tempDir := t.TempDir()

	// Test YAML
	// 测试YAML
	yamlPath := filepath.Join(tempDir, "config.yaml")
	config := DefaultConfig()
	config.Cache.MaxEntries = 1000
	config.Cache.DefaultTTL = time.Minute
	config.Persist.Store = "redis"

	// Save config
	// 保存配置
	if err := config.SaveToFile(yamlPath); err != nil {
		t.Fatalf("Failed to save YAML config: %v", err)
	}

	// Load config
	// 加载配置
	loadedConfig, err := LoadFromFile(yamlPath)
	if err != nil {
		t.Fatalf("Failed to load YAML config: %v", err)
	}

	// Verify loaded config
	// 验证加载的配置
	if loadedConfig.Cache.MaxEntries != 1000 {
		t.Errorf("Expected Cache.MaxEntries to be 1000, got %d", loadedConfig.Cache.MaxEntries)
	}
	if loadedConfig.Cache.DefaultTTL != time.Minute {
		t.Errorf("Expected Cache.DefaultTTL to be 1m, got %v", loadedConfig.Cache.DefaultTTL)
	}
	if loadedConfig.Persist.Store != "redis" {
		t.Errorf("Expected Persist.Store to be 'redis', got '%s'", loadedConfig.Persist.Store)
	}

	// Test JSON
	// 测试JSON
	jsonPath := filepath.Join(tempDir, "config.json")
	config.Cache.MaxEntries = 2000
	config.Persist.Store = "file"
	config.Log.Format = "json"

	// Save config
	// 保存配置
	if err := config.SaveToFile(jsonPath); err != nil {
		t.Fatalf("Failed to save JSON config: %v", err)
	}

	// Load config
	// 加载配置
	loadedConfig, err = LoadFromFile(jsonPath)
	if err != nil {
		t.Fatalf("Failed to load JSON config: %v", err)
	}

	// Verify loaded config
	// 验证加载的配置
	if loadedConfig.Cache.MaxEntries != 2000 {
		t.Errorf("Expected Cache.MaxEntries to be 2000, got %d", loadedConfig.Cache.MaxEntries)
	}
	if loadedConfig.Persist.Store != "file" {
		t.Errorf("Expected Persist.Store to be 'file', got '%s'", loadedConfig.Persist.Store)
	}
	if loadedConfig.Log.Format != "json" {
		t.Errorf("Expected Log.Format to be 'json', got '%s'", loadedConfig.Log.Format)
	}
}

// TestValidate tests the Validate method to ensure it correctly identifies
// valid and invalid configurations according to the defined constraints.
//
// TestValidate 测试Validate方法，确保它能根据定义的约束
// 正确识别有效和无效的配置。
func TestValidate(t *testing.T) {
	tests := []struct {
		name        string        // Test case name / 测试用例名称
		modifyFunc  func(*Config) // Function to modify config / 修改配置的函数
		expectError bool          // Whether validation should fail / 验证是否应该失败
	}{
		{
			name:        "Valid default config",
			modifyFunc:  func(c *Config) {},
			expectError: false,
		},
		{
			name: "Invalid cache.max_entries",
			modifyFunc: func(c *Config) {
				c.Cache.MaxEntries = -1
			},
			expectError: true,
		},
		{
			name: "Empty cache.name",
			modifyFunc: func(c *Config) {
				c.Cache.Name = ""
			},
			expectError: true,
		},
		{
			name: "Negative cache.default_ttl",
			modifyFunc: func(c *Config) {
				c.Cache.DefaultTTL = -time.Second
			},
			expectError: true,
		},
		{
			name: "Sub-second janitor.interval",
			modifyFunc: func(c *Config) {
				c.Janitor.Interval = 100 * time.Millisecond
			},
			expectError: true,
		},
		{
			name: "Disabled janitor ignores interval",
			modifyFunc: func(c *Config) {
				c.Janitor.Enable = false
				c.Janitor.Interval = 0
			},
			expectError: false,
		},
		{
			name: "Invalid persist.store",
			modifyFunc: func(c *Config) {
				c.Persist.Enable = true
				c.Persist.Store = "s3"
			},
			expectError: true,
		},
		{
			name: "Invalid persist.codec",
			modifyFunc: func(c *Config) {
				c.Persist.Enable = true
				c.Persist.Codec = "msgpack"
			},
			expectError: true,
		},
		{
			name: "Persist file store without path",
			modifyFunc: func(c *Config) {
				c.Persist.Enable = true
				c.Persist.File.Path = ""
			},
			expectError: true,
		},
		{
			name: "Persist redis store without addr",
			modifyFunc: func(c *Config) {
				c.Persist.Enable = true
				c.Persist.Store = "redis"
				c.Persist.Redis.Addr = ""
			},
			expectError: true,
		},
		{
			name: "Disabled persist ignores store settings",
			modifyFunc: func(c *Config) {
				c.Persist.Enable = false
				c.Persist.Store = "s3"
			},
			expectError: false,
		},
		{
			name: "Invalid log.level",
			modifyFunc: func(c *Config) {
				c.Log.Level = "invalid"
			},
			expectError: true,
		},
		{
			name: "Log file output without path",
			modifyFunc: func(c *Config) {
				c.Log.Output = "file"
				c.Log.FilePath = ""
			},
			expectError: true,
		},
		{
			name: "Hot reload with sub-second watch interval",
			modifyFunc: func(c *Config) {
				c.Extensions.HotReload.Enable = true
				c.Extensions.HotReload.WatchInterval = 100 * time.Millisecond
			},
			expectError: true,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			config := DefaultConfig()
			test.modifyFunc(config)
			err := config.Validate()
			if test.expectError && err == nil {
				t.Error("Expected validation error, but got nil")
			}
			if !test.expectError && err != nil {
				t.Errorf("Expected no validation error, but got: %v", err)
			}
		})
	}
}

// TestNewCacheConfig verifies the bridge from the file configuration to the
// typed cache configuration, including the janitor enable switch.
//
// TestNewCacheConfig 验证从文件配置到带类型缓存配置的转换，
// 包括janitor开关。
func TestNewCacheConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Cache.Name = "products"
	cfg.Cache.MaxEntries = 42
	cfg.Cache.MaxTotalSize = 4096
	cfg.Cache.DefaultTTL = time.Minute
	cfg.Cache.AllowStale = true
	cfg.Janitor.Enable = true
	cfg.Janitor.Interval = 10 * time.Second

	cc := NewCacheConfig[string, int](cfg)
	if cc.Name != "products" || cc.MaxEntries != 42 || cc.MaxTotalSize != 4096 {
		t.Errorf("cache config = %q/%d/%d, want products/42/4096", cc.Name, cc.MaxEntries, cc.MaxTotalSize)
	}
	if cc.DefaultTTL != time.Minute || !cc.AllowStale {
		t.Errorf("cache config TTL/stale = %v/%v, want 1m/true", cc.DefaultTTL, cc.AllowStale)
	}
	if cc.JanitorInterval != 10*time.Second {
		t.Errorf("JanitorInterval = %v, want 10s", cc.JanitorInterval)
	}

	// A disabled janitor maps to a zero interval.
	// 禁用janitor映射为零周期。
	cfg.Janitor.Enable = false
	if cc = NewCacheConfig[string, int](cfg); cc.JanitorInterval != 0 {
		t.Errorf("JanitorInterval with janitor disabled = %v, want 0", cc.JanitorInterval)
	}
}

// TestNewCacheFromFile verifies the one-call constructor: a valid file yields
// a working cache, an invalid one is rejected before construction.
//
// TestNewCacheFromFile 验证一步到位的构造函数：有效文件产生可用缓存，
// 无效文件在构建前即被拒绝。
func TestNewCacheFromFile(t *testing.T) {
	dir := t.TempDir()

	goodPath := filepath.Join(dir, "good.yaml")
	good := DefaultConfig()
	good.Cache.Name = "from-file"
	good.Cache.MaxEntries = 7
	if err := good.SaveToFile(goodPath); err != nil {
		t.Fatalf("SaveToFile() failed: %v", err)
	}

	c, err := NewCacheFromFile[string, int](goodPath)
	if err != nil {
		t.Fatalf("NewCacheFromFile() failed: %v", err)
	}
	c.Set("k", 1)
	if v, ok := c.Get("k"); !ok || v != 1 {
		t.Errorf("Get(k) = %d/%v, want 1/true", v, ok)
	}

	badPath := filepath.Join(dir, "bad.yaml")
	bad := DefaultConfig()
	bad.Cache.MaxEntries = -3
	if err := bad.SaveToFile(badPath); err != nil {
		t.Fatalf("SaveToFile() failed: %v", err)
	}
	if _, err := NewCacheFromFile[string, int](badPath); err == nil {
		t.Error("NewCacheFromFile() accepted an invalid configuration")
	}

	if _, err := NewCacheFromFile[string, int](filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("NewCacheFromFile() accepted a missing file")
	}
}

// TestNewLogger verifies logger construction for the supported outputs and a
// rejection for unknown ones.
//
// TestNewLogger 验证受支持输出的日志器构建，以及对未知输出的拒绝。
func TestNewLogger(t *testing.T) {
	lc := &LogConfig{Level: "debug", Format: "json", Output: "stderr"}
	logger, err := lc.NewLogger()
	if err != nil {
		t.Fatalf("NewLogger() failed: %v", err)
	}
	if logger == nil {
		t.Fatal("NewLogger() returned nil logger")
	}

	fileCfg := &LogConfig{
		Level:    "info",
		Format:   "text",
		Output:   "file",
		FilePath: filepath.Join(t.TempDir(), "lcache.log"),
	}
	if _, err = fileCfg.NewLogger(); err != nil {
		t.Errorf("NewLogger() with file output failed: %v", err)
	}

	bad := &LogConfig{Output: "syslog"}
	if _, err = bad.NewLogger(); err == nil {
		t.Error("NewLogger() accepted an unsupported output")
	}
}

// TestParseLogLevel checks the level name mapping, including the info default
// for unknown names.
//
// TestParseLogLevel 检查级别名称映射，包括未知名称默认为info。
func TestParseLogLevel(t *testing.T) {
	testCases := []struct {
		level    string     // Input level name / 输入级别名称
		expected slog.Level // Expected slog level / 预期slog级别
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"ERROR", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tc := range testCases {
		result := parseLogLevel(tc.level)
		if result != tc.expected {
			t.Errorf("parseLogLevel(%q) = %v, expected %v", tc.level, result, tc.expected)
		}
	}
}
