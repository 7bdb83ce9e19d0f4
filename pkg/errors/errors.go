// Package errors provides standardized error types for the cache.
// It defines the sentinel errors shared by the loader and persistence paths,
// error wrapping, and helper functions for error checking.
//
// Package errors 提供缓存的标准化错误类型。
// 它定义了加载器和持久化路径共用的哨兵错误、错误包装以及错误检查的辅助函数。
//
// Engine reads never return errors: Get, Peek, Has and Delete signal absence
// through boolean results. The sentinels here cover the paths where an error
// value is the right shape — loading through a data source and moving
// snapshots through an external store.
//
// 引擎的读操作不返回错误：Get、Peek、Has和Delete通过布尔结果表示缺失。
// 这里的哨兵错误覆盖确实需要错误值的路径——通过数据源加载以及快照的外部存取。
package errors

import (
	"errors"
	"fmt"
)

// Standard errors that can be returned by the cache.
// These provide consistent error types across the cache implementation.
//
// 缓存可能返回的标准错误。
// 这些提供了缓存实现中一致的错误类型。
var (
	// ErrNotFound is returned by GetOrLoad when a key is absent and no loader
	// is configured to fetch it.
	// 当键不存在且未配置加载器时，GetOrLoad返回ErrNotFound。
	ErrNotFound = errors.New("cache: key not found")

	// ErrLoadFailed is returned when the configured loader fails to produce a
	// value for a key.
	// 当配置的加载器未能为键产出值时返回ErrLoadFailed。
	ErrLoadFailed = errors.New("cache: load failed")

	// ErrUnknownCodec is returned when a codec name cannot be resolved.
	// 当无法解析编解码器名称时返回ErrUnknownCodec。
	ErrUnknownCodec = errors.New("cache: unknown codec")

	// ErrSnapshotCorrupt is returned when snapshot content cannot be decoded.
	// 当快照内容无法解码时返回ErrSnapshotCorrupt。
	ErrSnapshotCorrupt = errors.New("cache: snapshot corrupt")

	// ErrSnapshotVersion is returned when a snapshot container carries an
	// unsupported version.
	// 当快照容器携带不受支持的版本时返回ErrSnapshotVersion。
	ErrSnapshotVersion = errors.New("cache: unsupported snapshot version")
)

// KeyError represents an error related to a specific key.
// It wraps an underlying error with the key that caused the error.
//
// KeyError 表示与特定键相关的错误。
// 它用导致错误的键包装底层错误。
type KeyError struct {
	Key string // The key that caused the error / 导致错误的键
	Err error  // The underlying error / 底层错误
}

// Error returns the error message.
// It implements the error interface.
//
// Error 返回错误消息。
// 它实现了error接口。
//
// Returns:
//   - string: The formatted error message including the key
func (e *KeyError) Error() string {
	return fmt.Sprintf("%s: %s", e.Err, e.Key)
}

// Unwrap returns the underlying error.
// This allows errors.Is and errors.As to work with wrapped errors.
//
// Unwrap 返回底层错误。
// 这允许errors.Is和errors.As与包装的错误一起工作。
//
// Returns:
//   - error: The underlying error
func (e *KeyError) Unwrap() error {
	return e.Err
}

// NewKeyError creates a new KeyError.
// It associates a key with an error.
//
// NewKeyError 创建一个新的KeyError。
// 它将键与错误关联起来。
//
// Parameters:
//   - key: The key that caused the error
//   - err: The underlying error
//
// Returns:
//   - *KeyError: A new key error instance
func NewKeyError(key string, err error) *KeyError {
	return &KeyError{Key: key, Err: err}
}

// IsNotFound returns true if the error indicates that a key was not found.
//
// IsNotFound 如果错误表示未找到键，则返回true。
//
// Parameters:
//   - err: The error to check
//
// Returns:
//   - bool: True if the error is or wraps ErrNotFound
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsLoadFailed returns true if the error indicates a loader failure.
//
// IsLoadFailed 如果错误表示加载器失败，则返回true。
//
// Parameters:
//   - err: The error to check
//
// Returns:
//   - bool: True if the error is or wraps ErrLoadFailed
func IsLoadFailed(err error) bool {
	return errors.Is(err, ErrLoadFailed)
}

// IsUnknownCodec returns true if the error indicates an unresolvable codec name.
//
// IsUnknownCodec 如果错误表示无法解析的编解码器名称，则返回true。
//
// Parameters:
//   - err: The error to check
//
// Returns:
//   - bool: True if the error is or wraps ErrUnknownCodec
func IsUnknownCodec(err error) bool {
	return errors.Is(err, ErrUnknownCodec)
}

// IsSnapshotCorrupt returns true if the error indicates undecodable snapshot
// content.
//
// IsSnapshotCorrupt 如果错误表示快照内容无法解码，则返回true。
//
// Parameters:
//   - err: The error to check
//
// Returns:
//   - bool: True if the error is or wraps ErrSnapshotCorrupt
func IsSnapshotCorrupt(err error) bool {
	return errors.Is(err, ErrSnapshotCorrupt)
}

// IsSnapshotVersion returns true if the error indicates a snapshot version
// mismatch.
//
// IsSnapshotVersion 如果错误表示快照版本不匹配，则返回true。
//
// Parameters:
//   - err: The error to check
//
// Returns:
//   - bool: True if the error is or wraps ErrSnapshotVersion
func IsSnapshotVersion(err error) bool {
	return errors.Is(err, ErrSnapshotVersion)
}
