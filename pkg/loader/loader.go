// Package loader provides interfaces for loading data into the cache
// when a cache miss occurs, supporting cache-aside back-source strategies.
//
// Package loader 提供接口用于在缓存未命中时将数据加载到缓存中，
// 支持旁路缓存的回源策略。
package loader

import (
	"context"
	"time"
)

// Loader is the interface that wraps the basic Load method.
//
// Load retrieves data for the given key from a data source.
// It returns the loaded value, a TTL for the cache entry, and any error
// encountered. If the returned TTL is zero, the cache's default TTL is used.
//
// Loader 是包装基本Load方法的接口。
//
// Load 从数据源检索给定键的数据。
// 它返回加载的值、缓存条目的TTL以及遇到的任何错误。
// 如果返回的TTL为零，将使用缓存的默认TTL。
type Loader[K comparable, V any] interface {
	Load(ctx context.Context, key K) (value V, ttl time.Duration, err error)
}

// LoaderFunc is a function type that implements the Loader interface.
//
// LoaderFunc 是实现Loader接口的函数类型。
type LoaderFunc[K comparable, V any] func(ctx context.Context, key K) (V, time.Duration, error)

// Load calls the function itself.
//
// Load 调用函数本身。
func (f LoaderFunc[K, V]) Load(ctx context.Context, key K) (V, time.Duration, error) {
	return f(ctx, key)
}

// NewFunctionLoader creates a new Loader from a function that retrieves data.
// The function returns the value and an error; entries loaded through it use
// the cache's default TTL.
//
// NewFunctionLoader 从检索数据的函数创建一个新的Loader。
// 该函数返回值和错误，经由它加载的条目使用缓存的默认TTL。
func NewFunctionLoader[K comparable, V any](fn func(ctx context.Context, key K) (V, error)) Loader[K, V] {
	return LoaderFunc[K, V](func(ctx context.Context, key K) (V, time.Duration, error) {
		value, err := fn(ctx, key)
		return value, 0, err
	})
}

// NewFunctionLoaderWithTTL creates a new Loader from a function that
// retrieves data and specifies a per-entry TTL.
//
// NewFunctionLoaderWithTTL 从检索数据并指定条目TTL的函数创建一个新的Loader。
func NewFunctionLoaderWithTTL[K comparable, V any](fn func(ctx context.Context, key K) (V, time.Duration, error)) Loader[K, V] {
	return LoaderFunc[K, V](fn)
}

// FallbackLoader provides a fallback mechanism when the primary loader fails.
//
// FallbackLoader 提供当主加载器失败时的后备机制。
type FallbackLoader[K comparable, V any] struct {
	Primary   Loader[K, V]
	Secondary Loader[K, V]
}

// Load attempts to load data using the primary loader.
// If the primary loader fails, it falls back to the secondary loader.
//
// Load 尝试使用主加载器加载数据。
// 如果主加载器失败，它会回退到次要加载器。
func (f *FallbackLoader[K, V]) Load(ctx context.Context, key K) (V, time.Duration, error) {
	value, ttl, err := f.Primary.Load(ctx, key)
	if err != nil && f.Secondary != nil {
		return f.Secondary.Load(ctx, key)
	}
	return value, ttl, err
}

// NewFallbackLoader creates a new FallbackLoader with the given primary and
// secondary loaders.
//
// NewFallbackLoader 使用给定的主加载器和次要加载器创建一个新的FallbackLoader。
func NewFallbackLoader[K comparable, V any](primary, secondary Loader[K, V]) *FallbackLoader[K, V] {
	return &FallbackLoader[K, V]{
		Primary:   primary,
		Secondary: secondary,
	}
}
