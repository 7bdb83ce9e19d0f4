// Package lru provides the intrusive recency list backing the cache engine.
// Package lru 提供支撑缓存引擎的侵入式最近使用链表。
//
// Nodes carry their own prev/next links, so moving an entry between recency
// positions never allocates or copies the cached value. The list is ordered
// most-recently-used at the front, least-recently-used at the back; the back
// is always the first eviction candidate.
//
// 节点自带前驱/后继指针，因此调整条目的访问顺序时不会发生分配或拷贝。
// 链表头部为最近使用的条目，尾部为最久未使用的条目，尾部始终是首个淘汰候选。
package lru

// Node is a single cache entry threaded into the recency list.
// Node 是串联在链表中的单个缓存条目。
type Node[K comparable, V any] struct {
	Key       K     // Entry key / 条目键
	Value     V     // Cached value / 缓存的值
	Size      int64 // Charged size / 计入总大小的尺寸
	ExpiresAt int64 // Expiration time (Unix nano, 0 means never expire) / 过期时间（Unix纳秒，0表示永不过期）

	prev, next *Node[K, V]
}

// Prev returns the neighbor closer to the front, or nil at the front.
// Prev 返回更靠近头部的相邻节点，头部节点返回nil。
func (n *Node[K, V]) Prev() *Node[K, V] { return n.prev }

// Next returns the neighbor closer to the back, or nil at the back.
// Next 返回更靠近尾部的相邻节点，尾部节点返回nil。
func (n *Node[K, V]) Next() *Node[K, V] { return n.next }

// List is a doubly-linked list of nodes ordered by recency of use.
// The zero value is an empty list ready to use.
//
// List 是按使用时间排序的双向链表，零值即为可用的空链表。
type List[K comparable, V any] struct {
	front  *Node[K, V] // Most recently used / 最近使用
	back   *Node[K, V] // Least recently used / 最久未使用
	length int
}

// Len returns the number of nodes currently linked.
// Len 返回当前链表中的节点数。
func (l *List[K, V]) Len() int { return l.length }

// Front returns the most recently used node, or nil when empty.
// Front 返回最近使用的节点，链表为空时返回nil。
func (l *List[K, V]) Front() *Node[K, V] { return l.front }

// Back returns the least recently used node, or nil when empty.
// Back 返回最久未使用的节点，链表为空时返回nil。
func (l *List[K, V]) Back() *Node[K, V] { return l.back }

// PushFront links n as the new front. If the list is empty, n becomes both
// front and back. n must not already be linked into a list.
//
// PushFront 将n作为新的头部节点。链表为空时n同时成为头部和尾部。
// n不能已经位于某个链表中。
func (l *List[K, V]) PushFront(n *Node[K, V]) {
	n.prev = nil
	n.next = l.front
	if l.front != nil {
		l.front.prev = n
	}
	l.front = n
	if l.back == nil {
		l.back = n
	}
	l.length++
}

// Remove unlinks n from wherever it sits (front, back, middle, or sole
// element), repairing neighbor links and nulling n's own links. The caller
// must ensure n is currently linked into this list; a node whose links are
// already nil and which is not the front is ignored.
//
// Remove 将n从链表中摘除（无论位于头部、尾部、中间还是唯一节点），
// 修复相邻节点的指针并清空n自身的指针。调用方需保证n当前位于本链表中；
// 指针已为空且不是头部的节点会被直接忽略。
func (l *List[K, V]) Remove(n *Node[K, V]) {
	if n.prev == nil && n.next == nil && l.front != n {
		return
	}
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		l.front = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		l.back = n.prev
	}
	n.prev = nil
	n.next = nil
	l.length--
}

// MoveToFront marks n as most recently used. Already-front nodes are left
// untouched to avoid redundant pointer churn.
//
// MoveToFront 将n标记为最近使用。n已位于头部时不做任何操作，避免无谓的指针更新。
func (l *List[K, V]) MoveToFront(n *Node[K, V]) {
	if l.front == n {
		return
	}
	l.Remove(n)
	l.PushFront(n)
}

// PopBack unlinks and returns the least recently used node, or nil when the
// list is empty.
//
// PopBack 摘除并返回最久未使用的节点，链表为空时返回nil。
func (l *List[K, V]) PopBack() *Node[K, V] {
	n := l.back
	if n == nil {
		return nil
	}
	l.Remove(n)
	return n
}

// Clear detaches every node in O(1) by resetting the list head, tail and
// length. Individual nodes are not unlinked; the caller owns their disposal.
//
// Clear 通过重置头尾指针和长度在O(1)时间内清空链表。
// 不逐个摘除节点，节点的后续处理由调用方负责。
func (l *List[K, V]) Clear() {
	l.front = nil
	l.back = nil
	l.length = 0
}
