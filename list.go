package llist

import (
	"runtime"
	"sync"
	"weak"
)

// boundary is one independently lockable end slot of a List (head or tail).
// The weak reference is guarded by the slot's own mutex.
type boundary[T any] struct {
	mu  sync.Mutex
	ref weak.Pointer[Node[T]]
}

// List is a concurrent doubly linked list whose nodes are owned by the
// caller. It holds only weak references to its boundary nodes; see the
// package documentation for the ownership contract.
type List[T any] struct {
	head boundary[T]
	tail boundary[T]
}

// NewList creates a new empty list.
func NewList[T any]() *List[T] {
	return &List[T]{}
}

// PushBack appends a new node carrying data at the tail of the list and
// returns it. The returned node is the only strong handle to it, so the
// caller has to store it externally for as long as the node is attached.
func (l *List[T]) PushBack(data T) *Node[T] {
	n := NewNode(data)
	l.PutBack(n)
	return n
}

// PutBack places n at the tail of the list, detaching it first from whatever
// position it currently occupies (in this list or another). After the call
// n's predecessor is the previous tail and n is the new tail; if the list was
// empty it is the new head as well.
//
// Lock order:
//
//	n {
//	  l.tail {
//	    old tail (TryLock, restart on failure) {}
//	    l.head {}
//	  }
//	}
//
// The old tail is acquired non-blocking: a concurrent Remove of that node
// locks it first and then the tail slot, the mirror order of this routine.
// Failing the attempt mutates nothing, so releasing the tail slot and
// restarting from the top breaks the cycle without a global lock.
func (l *List[T]) PutBack(n *Node[T]) {
	n.mu.Lock()
	defer n.mu.Unlock()
	// Unsplice from the current position so the insertion below starts from
	// a fully detached node.
	n.removeLocked()
	for {
		l.tail.mu.Lock()
		n.parent = weak.Make(l)
		n.prev = l.tail.ref
		if prev := l.tail.ref.Value(); prev != nil {
			// List isn't empty; the old tail's next pointer needs to point
			// at n.
			if !prev.mu.TryLock() {
				l.tail.mu.Unlock()
				runtime.Gosched()
				continue
			}
			prev.next = weak.Make(n)
			prev.mu.Unlock()
		}
		l.head.mu.Lock()
		if l.head.ref.Value() == nil {
			// List was empty, n becomes head as well.
			l.head.ref = weak.Make(n)
		}
		l.head.mu.Unlock()
		l.tail.ref = weak.Make(n)
		l.tail.mu.Unlock()
		return
	}
}

// Head returns the node at the head of the list, or nil if the list is empty
// or the head node's last strong handle is gone.
//
// Lock order:
//
//	l.head {}
func (l *List[T]) Head() *Node[T] {
	l.head.mu.Lock()
	defer l.head.mu.Unlock()
	return l.head.ref.Value()
}
