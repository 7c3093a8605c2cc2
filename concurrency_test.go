package llist

import (
	"runtime"
	"sync"
	"testing"
)

// verifyChain walks the list after all mutators quiesced and returns the
// visited payloads, failing the test on duplicate visits.
func verifyChain(t *testing.T, l *List[int]) []int {
	t.Helper()
	seen := make(map[int]bool)
	out := collect(l)
	for _, v := range out {
		if seen[v] {
			t.Fatalf("traversal visited %d twice", v)
		}
		seen[v] = true
	}
	return out
}

func TestConcurrentPushBack(t *testing.T) {
	const threadCount = 8
	const perThread = 200

	l := NewList[int]()
	nodes := make([][]*Node[int], threadCount)

	var wg sync.WaitGroup
	for i := 0; i < threadCount; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			owned := make([]*Node[int], 0, perThread)
			for j := 0; j < perThread; j++ {
				owned = append(owned, l.PushBack(id*perThread+j))
			}
			nodes[id] = owned
		}(i)
	}
	wg.Wait()

	got := verifyChain(t, l)
	if len(got) != threadCount*perThread {
		t.Fatalf("traversal visited %d nodes, expected %d", len(got), threadCount*perThread)
	}
	// Each goroutine's appends completed in order, so its values appear in
	// ascending order within the traversal.
	last := make(map[int]int)
	for _, v := range got {
		id := v / perThread
		if prev, ok := last[id]; ok && prev > v%perThread {
			t.Fatalf("values of pusher %d appear out of order", id)
		}
		last[id] = v % perThread
	}
	runtime.KeepAlive(nodes)
}

func TestConcurrentPushAndMove(t *testing.T) {
	const threadCount = 4
	const perThread = 100
	const moves = 500

	l := NewList[int]()

	// The mover owns a fixed set of nodes it keeps cycling to the tail while
	// pushers append fresh nodes.
	movers := make([]*Node[int], 0, 10)
	for i := 0; i < 10; i++ {
		movers = append(movers, l.PushBack(1_000_000+i))
	}

	nodes := make([][]*Node[int], threadCount)
	var wg sync.WaitGroup
	for i := 0; i < threadCount; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			owned := make([]*Node[int], 0, perThread)
			for j := 0; j < perThread; j++ {
				owned = append(owned, l.PushBack(id*perThread+j))
			}
			nodes[id] = owned
		}(i)
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		for j := 0; j < moves; j++ {
			l.PutBack(movers[j%len(movers)])
		}
	}()
	wg.Wait()

	got := verifyChain(t, l)
	if len(got) != threadCount*perThread+len(movers) {
		t.Fatalf("traversal visited %d nodes, expected %d", len(got), threadCount*perThread+len(movers))
	}
	runtime.KeepAlive(nodes)
	runtime.KeepAlive(movers)
}

func TestConcurrentPushAndRemove(t *testing.T) {
	const threadCount = 4
	const perThread = 100
	const victims = 200

	l := NewList[int]()

	// The remover detaches its own pre-inserted nodes while pushers append
	// fresh, disjoint ones.
	owned := make([]*Node[int], 0, victims)
	for i := 0; i < victims; i++ {
		owned = append(owned, l.PushBack(1_000_000+i))
	}

	nodes := make([][]*Node[int], threadCount)
	var wg sync.WaitGroup
	for i := 0; i < threadCount; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			mine := make([]*Node[int], 0, perThread)
			for j := 0; j < perThread; j++ {
				mine = append(mine, l.PushBack(id*perThread+j))
			}
			nodes[id] = mine
		}(i)
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		for _, n := range owned {
			n.Lock()
			n.Remove()
			n.Unlock()
		}
	}()
	wg.Wait()

	got := verifyChain(t, l)
	if len(got) != threadCount*perThread {
		t.Fatalf("traversal visited %d nodes, expected %d", len(got), threadCount*perThread)
	}
	for _, v := range got {
		if v >= 1_000_000 {
			t.Fatalf("removed node %d still reachable from head", v)
		}
	}
	// The boundary slots are consistent: appends still land at the tail.
	last := l.PushBack(2_000_000)
	got = verifyChain(t, l)
	if got[len(got)-1] != 2_000_000 {
		t.Fatalf("append after quiesce landed at %d, expected the tail", got[len(got)-1])
	}
	runtime.KeepAlive(nodes)
	runtime.KeepAlive(owned)
	runtime.KeepAlive(last)
}

func TestConcurrentHeadReads(t *testing.T) {
	const readers = 4
	const perThread = 200

	l := NewList[int]()
	seed := l.PushBack(-1)

	var wg sync.WaitGroup
	pushed := make([]*Node[int], perThread)
	wg.Add(1)
	go func() {
		defer wg.Done()
		for j := 0; j < perThread; j++ {
			pushed[j] = l.PushBack(j)
		}
	}()
	for i := 0; i < readers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perThread; j++ {
				if h := l.Head(); h == nil {
					// List is never empty here.
					t.Error("head resolved to nil on a non-empty list")
					return
				}
			}
		}()
	}
	wg.Wait()
	runtime.KeepAlive(seed)
	runtime.KeepAlive(pushed)
}
