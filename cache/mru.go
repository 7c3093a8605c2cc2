package cache

import "github.com/sharedcode/llist"

// mru manages MRU ordering and eviction for the generic cache type. Recency
// lives in a concurrent linked list: the tail is the most recently used
// entry, the head the least.
type mru[TK comparable, TV any] struct {
	minCapacity int
	maxCapacity int
	dll         *llist.List[TK]
	cache       *cache[TK, TV]
}

func newMru[TK comparable, TV any](c *cache[TK, TV], minCapacity, maxCapacity int) *mru[TK, TV] {
	return &mru[TK, TV]{
		cache:       c,
		minCapacity: minCapacity,
		maxCapacity: maxCapacity,
		dll:         llist.NewList[TK](),
	}
}

// add inserts the id at the tail of the MRU list and returns its node handle.
func (m *mru[TK, TV]) add(id TK) *llist.Node[TK] {
	return m.dll.PushBack(id)
}

// touch moves the node to the tail of the MRU list, marking it most recently
// used. The node handle stays valid, no reinsertion needed.
func (m *mru[TK, TV]) touch(n *llist.Node[TK]) {
	m.dll.PutBack(n)
}

// remove unchains the node from the MRU list.
func (m *mru[TK, TV]) remove(n *llist.Node[TK]) {
	n.Lock()
	n.Remove()
	n.Unlock()
}

// evict removes entries from the head (least recently used) while the cache
// exceeds its capacity, updating the index.
func (m *mru[TK, TV]) evict() {
	for {
		if !m.isFull() {
			break
		}
		h := m.dll.Head()
		if h == nil {
			break
		}
		h.Lock()
		id := h.Data
		h.Remove()
		h.Unlock()
		if v, found := m.cache.lookup[id]; found {
			v.node = nil
			delete(m.cache.lookup, id)
		}
	}
}

// isFull reports whether the cache has reached its maximum capacity.
func (m *mru[TK, TV]) isFull() bool {
	return m.cache.Count() >= m.maxCapacity
}
