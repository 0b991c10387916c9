// Package fifo implements the intrusive, insertion-ordered linked map
// used both for per-tick order queues and for the owner->open-order
// index. It is grounded on the intrusive prev/next order linking in
// ejyy-femto_go/orderbook.go (OrderID-linked PriceLevel with head/tail
// fields), generalized from a fixed MAX_PRICE_LEVELS array of levels to
// an unbounded map-backed doubly linked list, since the ladder here has
// no fixed price range.
package fifo

// node is one linked entry: its key, value, and links to its neighbors
// in insertion order.
type node[V any] struct {
	key        uint64
	value      V
	prev, next uint64
	hasPrev    bool
	hasNext    bool
}

// FIFO is an order-preserving map from uint64 key to V, supporting O(1)
// push-back, front/back peek, successor walk, and remove-by-key.
type FIFO[V any] struct {
	nodes      map[uint64]*node[V]
	head, tail uint64
	hasHead    bool
	hasTail    bool
}

// New creates an empty FIFO.
func New[V any]() *FIFO[V] {
	return &FIFO[V]{nodes: make(map[uint64]*node[V])}
}

// Len returns the number of entries.
func (f *FIFO[V]) Len() int { return len(f.nodes) }

// IsEmpty reports whether the FIFO has no entries.
func (f *FIFO[V]) IsEmpty() bool { return len(f.nodes) == 0 }

// PushBack appends key -> value at the tail. Overwriting an existing key
// is not supported — callers must Remove first.
func (f *FIFO[V]) PushBack(key uint64, value V) {
	n := &node[V]{key: key, value: value}
	if f.hasTail {
		n.prev = f.tail
		n.hasPrev = true
		f.nodes[f.tail].next = key
		f.nodes[f.tail].hasNext = true
	} else {
		f.head = key
		f.hasHead = true
	}
	f.tail = key
	f.hasTail = true
	f.nodes[key] = n
}

// Front returns the oldest entry.
func (f *FIFO[V]) Front() (uint64, V, bool) {
	if !f.hasHead {
		return 0, zero[V](), false
	}
	n := f.nodes[f.head]
	return n.key, n.value, true
}

// Back returns the newest entry.
func (f *FIFO[V]) Back() (uint64, V, bool) {
	if !f.hasTail {
		return 0, zero[V](), false
	}
	n := f.nodes[f.tail]
	return n.key, n.value, true
}

// Get returns the value stored at key.
func (f *FIFO[V]) Get(key uint64) (V, bool) {
	n, ok := f.nodes[key]
	if !ok {
		return zero[V](), false
	}
	return n.value, true
}

// Next returns the successor of key in insertion order.
func (f *FIFO[V]) Next(key uint64) (uint64, V, bool) {
	n, ok := f.nodes[key]
	if !ok || !n.hasNext {
		return 0, zero[V](), false
	}
	next := f.nodes[n.next]
	return next.key, next.value, true
}

// Remove deletes key, relinking its neighbors in O(1).
func (f *FIFO[V]) Remove(key uint64) (V, bool) {
	n, ok := f.nodes[key]
	if !ok {
		return zero[V](), false
	}
	if n.hasPrev {
		p := f.nodes[n.prev]
		p.next = n.next
		p.hasNext = n.hasNext
	} else {
		f.head = n.next
		f.hasHead = n.hasNext
	}
	if n.hasNext {
		nx := f.nodes[n.next]
		nx.prev = n.prev
		nx.hasPrev = n.hasPrev
	} else {
		f.tail = n.prev
		f.hasTail = n.hasPrev
	}
	delete(f.nodes, key)
	return n.value, true
}

// Each walks every entry front-to-back, stopping early if fn returns
// false.
func (f *FIFO[V]) Each(fn func(key uint64, value V) bool) {
	key, ok := f.head, f.hasHead
	for ok {
		n := f.nodes[key]
		if !fn(n.key, n.value) {
			return
		}
		key, ok = n.next, n.hasNext
	}
}

func zero[V any]() V {
	var v V
	return v
}
