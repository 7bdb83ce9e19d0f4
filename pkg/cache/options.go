package cache

import "time"

// SetOption overrides one attribute of a single Set call. Cache-wide behavior
// lives on Config; these cover the two attributes that vary per entry.
//
// SetOption 覆盖单次Set调用的一项属性。缓存级行为由Config承载，
// 这里覆盖的是会因条目而异的两项属性。
type SetOption func(*setOptions)

// setOptions carries the per-call overrides. The has* flags distinguish "not
// supplied" from an explicit zero: WithTTL(0) pins an entry as never expiring
// even when the cache has a DefaultTTL, and WithSize(0) stores a zero-cost
// entry regardless of the configured SizeOf.
//
// setOptions 承载单次调用的覆盖项。has*标志区分"未提供"与显式零值：
// WithTTL(0)可在缓存设有DefaultTTL时仍让条目永不过期，
// WithSize(0)则无视配置的SizeOf存入零开销条目。
type setOptions struct {
	ttl     time.Duration
	hasTTL  bool
	size    int64
	hasSize bool
}

// WithTTL sets the time-to-live for this entry only, overriding the cache's
// DefaultTTL. A value ≤ 0 means the entry never expires.
//
// WithTTL 仅为本条目设置生存时间，覆盖缓存的DefaultTTL。
// 取值 ≤ 0 时条目永不过期。
//
// Parameters:
//   - ttl: The time-to-live for this entry
//
// Returns:
//   - SetOption: A per-call option
func WithTTL(ttl time.Duration) SetOption {
	return func(o *setOptions) {
		o.ttl = ttl
		o.hasTTL = true
	}
}

// WithSize sets the size charged to this entry, bypassing the configured
// SizeOf function. Negative values are clamped to 0 at insert time.
//
// WithSize 设置本条目计入的大小，绕过配置的SizeOf函数。
// 负值在写入时按0处理。
//
// Parameters:
//   - size: The size to charge
//
// Returns:
//   - SetOption: A per-call option
func WithSize(size int64) SetOption {
	return func(o *setOptions) {
		o.size = size
		o.hasSize = true
	}
}
