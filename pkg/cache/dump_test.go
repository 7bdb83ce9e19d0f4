package cache

import (
	"testing"
	"time"
)

// TestDumpLoadRoundTrip verifies that dumping one cache and loading the items
// into another reproduces values, sizes and entry count.
//
// TestDumpLoadRoundTrip 验证从一个缓存导出并加载到另一个缓存后，
// 值、大小和条目数都得到复现。
func TestDumpLoadRoundTrip(t *testing.T) {
	clk := newFakeClock()
	src := newTestCache(t, clk, nil)

	src.Set("a", 1, WithSize(2))
	src.Set("b", 2, WithSize(3))
	src.Set("c", 3)

	items := src.Dump()
	if len(items) != 3 {
		t.Fatalf("Dump() returned %d items, want 3", len(items))
	}

	dst := newTestCache(t, clk, nil)
	if restored := dst.Load(items); restored != 3 {
		t.Fatalf("Load() = %d, want 3", restored)
	}

	for key, want := range map[string]int{"a": 1, "b": 2, "c": 3} {
		if v, ok := dst.Peek(key); !ok || v != want {
			t.Errorf("Peek(%s) = (%d, %v), want (%d, true)", key, v, ok, want)
		}
	}
	if dst.TotalSize() != src.TotalSize() {
		t.Errorf("TotalSize() = %d, want %d", dst.TotalSize(), src.TotalSize())
	}
	verifyIntegrity(t, dst)
}

// TestDumpOrderPreservesRecency verifies the least-recently-used-first dump
// order, so replaying items through Load rebuilds the original recency.
//
// TestDumpOrderPreservesRecency 验证导出顺序为最久未使用优先，
// 通过Load按序重放即可重建原有的访问顺序。
func TestDumpOrderPreservesRecency(t *testing.T) {
	clk := newFakeClock()
	src := newTestCache(t, clk, nil)

	src.Set("a", 1)
	src.Set("b", 2)
	src.Set("c", 3)
	src.Get("a")
	// Recency now, most to least recent: a, c, b.
	// 当前顺序（从新到旧）：a、c、b。

	items := src.Dump()
	wantOrder := []string{"b", "c", "a"}
	for i, want := range wantOrder {
		if items[i].Key != want {
			t.Fatalf("items[%d].Key = %q, want %q", i, items[i].Key, want)
		}
	}

	dst := newTestCache(t, clk, nil)
	dst.Load(items)
	if front := dst.order.Front(); front == nil || front.Key != "a" {
		t.Error("most recent entry after Load must be a")
	}
	if back := dst.order.Back(); back == nil || back.Key != "b" {
		t.Error("least recent entry after Load must be b")
	}
}

// TestDumpTTL verifies that dumped TTLs are the remaining lifetime, that
// never-expiring entries carry no TTL, and that expired entries are omitted.
//
// TestDumpTTL 验证导出的TTL为剩余存活时间、永不过期的条目不携带TTL、
// 已过期的条目被省略。
func TestDumpTTL(t *testing.T) {
	clk := newFakeClock()
	c := newTestCache(t, clk, nil)

	c.Set("ticking", 1, WithTTL(10*time.Second))
	c.Set("forever", 2)
	c.Set("gone", 3, WithTTL(2*time.Second))

	clk.Advance(4 * time.Second)

	items := c.Dump()
	if len(items) != 2 {
		t.Fatalf("Dump() returned %d items, want 2 (expired entry omitted)", len(items))
	}

	byKey := make(map[string]Item[string, int], len(items))
	for _, it := range items {
		byKey[it.Key] = it
	}
	if it := byKey["ticking"]; it.TTL != 6*time.Second {
		t.Errorf("ticking TTL = %v, want 6s (remaining lifetime)", it.TTL)
	}
	if it := byKey["forever"]; it.TTL != 0 {
		t.Errorf("forever TTL = %v, want 0", it.TTL)
	}
	if _, ok := byKey["gone"]; ok {
		t.Error("expired entry must not be dumped")
	}
}

// TestDumpStaleUnderAllowStale verifies that with AllowStale set, expired
// entries are dumped but without a TTL, matching their still-readable state.
//
// TestDumpStaleUnderAllowStale 验证启用AllowStale时过期条目仍会被导出
// 但不携带TTL，与其仍可读取的状态一致。
func TestDumpStaleUnderAllowStale(t *testing.T) {
	clk := newFakeClock()
	c := newTestCache(t, clk, func(cfg *Config[string, int]) {
		cfg.WithDefaultTTL(time.Second).WithAllowStale(true)
	})

	c.Set("stale", 7)
	clk.Advance(2 * time.Second)

	items := c.Dump()
	if len(items) != 1 {
		t.Fatalf("Dump() returned %d items, want 1", len(items))
	}
	if items[0].Key != "stale" || items[0].TTL != 0 {
		t.Errorf("item = %+v, want key stale with zero TTL", items[0])
	}
}

// TestLoadRebasesTTL verifies that item TTLs are measured from load time,
// not from the original insert.
//
// TestLoadRebasesTTL 验证条目TTL从加载时刻起算，而非原写入时刻。
func TestLoadRebasesTTL(t *testing.T) {
	clk := newFakeClock()
	c := newTestCache(t, clk, nil)

	c.Load([]Item[string, int]{{Key: "a", Value: 1, Size: 1, TTL: 5 * time.Second}})

	clk.Advance(4 * time.Second)
	if !c.Has("a") {
		t.Fatal("entry expired early, TTL must be rebased at load time")
	}
	clk.Advance(2 * time.Second)
	if c.Has("a") {
		t.Error("entry survived past its rebased TTL")
	}
}

// TestLoadReplacesContent verifies Load clears existing entries (disposed
// with ReasonCleared) before replaying the items.
//
// TestLoadReplacesContent 验证Load在重放条目前会清空现有条目
// （以ReasonCleared清理）。
func TestLoadReplacesContent(t *testing.T) {
	clk := newFakeClock()
	var records []disposeRecord
	c := newTestCache(t, clk, func(cfg *Config[string, int]) {
		cfg.WithOnDispose(func(key string, value int, reason Reason) {
			records = append(records, disposeRecord{key, value, reason})
		})
	})

	c.Set("old", 1)
	c.Load([]Item[string, int]{{Key: "new", Value: 2, Size: 1}})

	if c.Has("old") {
		t.Error("pre-existing entry must be gone after Load")
	}
	if !c.Has("new") {
		t.Error("loaded entry missing")
	}
	if len(records) != 1 || records[0].reason != ReasonCleared {
		t.Errorf("dispose records = %+v, want one cleared record for old", records)
	}
}

// TestLoadSkipsMalformed verifies that items with negative sizes or TTLs are
// skipped rather than aborting the whole load.
//
// TestLoadSkipsMalformed 验证大小或TTL为负的条目会被跳过，
// 而不是使整次加载失败。
func TestLoadSkipsMalformed(t *testing.T) {
	clk := newFakeClock()
	c := newTestCache(t, clk, nil)

	restored := c.Load([]Item[string, int]{
		{Key: "good", Value: 1, Size: 1},
		{Key: "badsize", Value: 2, Size: -5},
		{Key: "badttl", Value: 3, Size: 1, TTL: -time.Second},
		{Key: "alsogood", Value: 4, Size: 2},
	})

	if restored != 2 {
		t.Errorf("Load() = %d, want 2", restored)
	}
	if !c.Has("good") || !c.Has("alsogood") {
		t.Error("well-formed items must be restored")
	}
	if c.Has("badsize") || c.Has("badttl") {
		t.Error("malformed items must be skipped")
	}
	verifyIntegrity(t, c)
}

// TestLoadHonorsCapacity verifies that each replayed insert prunes, so a
// snapshot larger than the cache bounds settles on the most recent items.
//
// TestLoadHonorsCapacity 验证重放的每次写入都会触发清理，
// 因此超出缓存容量的快照最终只保留最新的条目。
func TestLoadHonorsCapacity(t *testing.T) {
	clk := newFakeClock()
	c := newTestCache(t, clk, func(cfg *Config[string, int]) {
		cfg.WithMaxEntries(2)
	})

	restored := c.Load([]Item[string, int]{
		{Key: "a", Value: 1, Size: 1},
		{Key: "b", Value: 2, Size: 1},
		{Key: "c", Value: 3, Size: 1},
	})

	if restored != 3 {
		t.Errorf("Load() = %d, want 3 (restored counts inserts, not survivors)", restored)
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
	if c.Has("a") {
		t.Error("oldest replayed entry must have been evicted")
	}
	if !c.Has("b") || !c.Has("c") {
		t.Error("most recent replayed entries must survive")
	}
}
