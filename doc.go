// Package llist provides a thread-safe, node-addressable doubly linked list
// intended as a low-level building block for higher-level structures such as
// MRU caches, work queues and ready-lists that need O(1) removal and O(1)
// move-to-tail of an arbitrarily chosen element under concurrent access.
// Concrete consumers live in subpackages: cache (MRU/TTL caching with an
// optional Redis L2 tier) and queue (a ready-list work queue).
//
// Ownership is inverted relative to container/list: callers own the nodes,
// the list merely threads them together. Every structural reference the list
// and its nodes hold (head, tail, parent, prev, next) is a weak reference
// that never extends a node's lifetime. A node stays alive only while the
// caller retains the handle returned by PushBack or NewNode, so retain every
// returned node for as long as it is attached. Dropping the last handle to an
// attached node without calling Remove leaves neighboring links permanently
// unresolvable; the list does not repair that on garbage collection.
//
// There is no global lock. The two boundary slots and every node are
// independently lockable, and mutations keep them consistent through fixed
// per-case lock orders plus a non-blocking acquire-and-restart loop on the
// tail insertion path.
package llist
