// Package configs provides configuration structures and utilities for LCache.
// This file contains tests for the Viper-based configuration functionality.
//
// Package configs 提供LCache的配置结构和工具。
// 本文件包含基于Viper的配置功能的测试。
package configs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// TestViperConfigWithReader tests the configuration loading using a reader
// instead of actual files to avoid filesystem dependencies. It verifies that
// configuration values are correctly parsed from YAML content.
//
// TestViperConfigWithReader 使用读取器而不是实际文件测试配置加载，
// 以避免文件系统依赖。它验证配置值是否正确地从YAML内容解析。
func TestViperConfigWithReader(t *testing.T) {
	// Create a YAML config as a string
	// 创建一个YAML配置字符串
	yamlConfig := `
cache:
  enable: true
  name: "test-cache"
  max_entries: 1000
  max_total_size: 536870912
  default_ttl: 60s
  allow_stale: true
janitor:
  enable: true
  interval: 15s
persist:
  enable: true
  store: "file"
  codec: "gob"
  file:
    path: "/tmp/test.snap"
`

	// Load config from reader
	// 从读取器加载配置
	reader := strings.NewReader(yamlConfig)
	config, err := LoadFromReader(reader, "yaml")
	if err != nil {
		t.Fatalf("Failed to load config from reader: %v", err)
	}

	// Verify config values
	// 验证配置值
	if config.Cache.MaxEntries != 1000 {
		t.Errorf("Expected Cache.MaxEntries to be 1000, got %d", config.Cache.MaxEntries)
	}
	if config.Cache.Name != "test-cache" {
		t.Errorf("Expected Cache.Name to be 'test-cache', got '%s'", config.Cache.Name)
	}
	if config.Cache.MaxTotalSize != 536870912 {
		t.Errorf("Expected Cache.MaxTotalSize to be 536870912, got %d", config.Cache.MaxTotalSize)
	}
	if config.Cache.DefaultTTL != 60*time.Second {
		t.Errorf("Expected Cache.DefaultTTL to be 60s, got %s", config.Cache.DefaultTTL)
	}
	if !config.Cache.AllowStale {
		t.Error("Expected Cache.AllowStale to be true")
	}
	if config.Janitor.Interval != 15*time.Second {
		t.Errorf("Expected Janitor.Interval to be 15s, got %v", config.Janitor.Interval)
	}
	if config.Persist.Codec != "gob" {
		t.Errorf("Expected Persist.Codec to be 'gob', got '%s'", config.Persist.Codec)
	}
}

// TestNewViperConfig loads a real file through Viper and checks that the
// snake_case keys land in the right struct fields, durations included.
//
// TestNewViperConfig 通过Viper加载真实文件，检查snake_case键
// （包括时长）落入正确的结构体字段。
func TestNewViperConfig(t *testing.T) {
	yamlConfig := `
cache:
  name: "viper-cache"
  max_entries: 2500
  default_ttl: 90s
janitor:
  enable: true
  interval: 20s
log:
  level: "debug"
  format: "json"
  output: "stderr"
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(yamlConfig), 0o644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	vc, err := NewViperConfig(path)
	if err != nil {
		t.Fatalf("NewViperConfig() failed: %v", err)
	}

	cfg := vc.Get()
	if cfg.Cache.Name != "viper-cache" {
		t.Errorf("Expected Cache.Name to be 'viper-cache', got '%s'", cfg.Cache.Name)
	}
	if cfg.Cache.MaxEntries != 2500 {
		t.Errorf("Expected Cache.MaxEntries to be 2500, got %d", cfg.Cache.MaxEntries)
	}
	if cfg.Cache.DefaultTTL != 90*time.Second {
		t.Errorf("Expected Cache.DefaultTTL to be 90s, got %v", cfg.Cache.DefaultTTL)
	}
	if cfg.Janitor.Interval != 20*time.Second {
		t.Errorf("Expected Janitor.Interval to be 20s, got %v", cfg.Janitor.Interval)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("Expected debug/json log settings, got %s/%s", cfg.Log.Level, cfg.Log.Format)
	}

	// Unset keys keep their defaults.
	// 未设置的键保持默认值。
	if !cfg.Cache.DisposeOnOverwrite {
		t.Error("Expected unset Cache.DisposeOnOverwrite to keep its default true")
	}
}

// TestNewViperConfigRejectsInvalid verifies that a file failing validation is
// rejected at load time.
//
// TestNewViperConfigRejectsInvalid 验证未通过校验的文件在加载时被拒绝。
func TestNewViperConfigRejectsInvalid(t *testing.T) {
	yamlConfig := `
cache:
  name: "bad-cache"
  max_entries: -5
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(yamlConfig), 0o644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	if _, err := NewViperConfig(path); err == nil {
		t.Error("NewViperConfig() accepted an invalid configuration")
	}
}

// TestConfigsEqual tests the configsEqual helper function to ensure it correctly
// identifies when two configurations are equal or different.
//
// TestConfigsEqual 测试configsEqual辅助函数，确保它能正确识别
// 两个配置何时相等或不同。
func TestConfigsEqual(t *testing.T) {
	config1 := DefaultConfig()
	config2 := DefaultConfig()

	// Same configs should be equal
	// 相同的配置应该相等
	if !configsEqual(config1, config2) {
		t.Error("configsEqual() returned false for identical configs")
	}

	// Different configs should not be equal
	// 不同的配置不应该相等
	config2.Cache.MaxEntries = 1000
	if configsEqual(config1, config2) {
		t.Error("configsEqual() returned true for different configs")
	}
}

// TestSubscribe verifies subscribers accumulate and receive the config they
// are handed.
//
// TestSubscribe 验证订阅者被累积并收到传入的配置。
func TestSubscribe(t *testing.T) {
	yamlConfig := `
cache:
  name: "sub-cache"
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(yamlConfig), 0o644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	vc, err := NewViperConfig(path)
	if err != nil {
		t.Fatalf("NewViperConfig() failed: %v", err)
	}

	var got *Config
	vc.Subscribe(func(c *Config) { got = c })

	vc.mu.RLock()
	count := len(vc.subscribers)
	vc.mu.RUnlock()
	if count != 1 {
		t.Fatalf("subscriber count = %d, want 1", count)
	}

	// Drive the subscriber directly; the fsnotify path needs a live watcher.
	// 直接驱动订阅者，fsnotify路径需要真实的监视器。
	next := DefaultConfig()
	vc.subscribers[0](next)
	if got != next {
		t.Error("subscriber did not receive the new config")
	}
}
