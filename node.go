package llist

import (
	"fmt"
	"sync"
	"weak"
)

// Node is an element of a List. The caller owns the node's storage; parent,
// prev and next are weak references that resolve to nil once the referenced
// object's last strong handle is gone.
//
// One mutex guards both the structural fields and Data. Lock the node before
// reading or writing Data and before calling Remove or Next.
type Node[T any] struct {
	mu sync.Mutex

	// Data is the caller payload, opaque to the list logic. Guarded by the
	// node's lock.
	Data T

	parent weak.Pointer[List[T]]
	prev   weak.Pointer[Node[T]]
	next   weak.Pointer[Node[T]]
}

// NewNode creates a detached node carrying data. Use List.PutBack to attach
// it, or List.PushBack to create and attach in one call.
func NewNode[T any](data T) *Node[T] {
	return &Node[T]{Data: data}
}

// Lock acquires exclusive access to the node's contents.
func (n *Node[T]) Lock() {
	n.mu.Lock()
}

// Unlock releases exclusive access to the node's contents.
func (n *Node[T]) Unlock() {
	n.mu.Unlock()
}

// take resolves a weak reference and clears it, returning nil if the
// referent is already gone.
func take[T any](p *weak.Pointer[T]) *T {
	v := p.Value()
	*p = weak.Pointer[T]{}
	return v
}

// Remove unsplices the node from its parent list, restoring it to the
// detached state. Removing an already detached node is a no-op. The caller
// must hold the node's lock.
//
// Lock order, one branch per neighbor configuration:
//
//	n (held by caller) ({
//	  parent.tail {
//	    parent.head {}
//	  }
//	}|{
//	  parent.head {
//	    next {}
//	  }
//	}|{
//	  parent.tail {
//	    prev {}
//	  }
//	}|{
//	  prev {
//	    next {}
//	  }
//	})
//
// Wherever a boundary slot participates it is locked before the neighbor
// node; in the middle case the predecessor is locked before the successor.
func (n *Node[T]) Remove() {
	n.removeLocked()
}

func (n *Node[T]) removeLocked() {
	parent := take(&n.parent)
	if parent == nil {
		// Not in a list. A live neighbor link without a parent means the
		// chain was corrupted, e.g. a node was dropped while attached;
		// fail fast rather than operate on a broken structure.
		if n.prev.Value() != nil || n.next.Value() != nil {
			panic(Error{Code: CorruptedChain, Err: fmt.Errorf("detached node still has neighbor links")})
		}
		return
	}
	prev := take(&n.prev)
	next := take(&n.next)
	switch {
	case prev == nil && next == nil:
		// Only element of the list.
		parent.tail.mu.Lock()
		parent.head.mu.Lock()
		parent.head.ref = weak.Pointer[Node[T]]{}
		parent.head.mu.Unlock()
		parent.tail.ref = weak.Pointer[Node[T]]{}
		parent.tail.mu.Unlock()
	case prev == nil:
		// Head of the list.
		parent.head.mu.Lock()
		next.mu.Lock()
		parent.head.ref = weak.Make(next)
		next.prev = weak.Pointer[Node[T]]{}
		next.mu.Unlock()
		parent.head.mu.Unlock()
	case next == nil:
		// Tail of the list.
		parent.tail.mu.Lock()
		prev.mu.Lock()
		parent.tail.ref = weak.Make(prev)
		prev.next = weak.Pointer[Node[T]]{}
		prev.mu.Unlock()
		parent.tail.mu.Unlock()
	default:
		// Middle of the list, boundary slots are untouched.
		prev.mu.Lock()
		next.mu.Lock()
		prev.next = weak.Make(next)
		next.prev = weak.Make(prev)
		next.mu.Unlock()
		prev.mu.Unlock()
	}
}

// Next returns the node after this one, or nil at the tail (or if the
// successor's last strong handle is gone). The caller must hold the node's
// lock; Next takes no locks of its own.
func (n *Node[T]) Next() *Node[T] {
	return n.next.Value()
}
