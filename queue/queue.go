// Package queue implements a ready-list work queue on top of the concurrent
// linked list. Tasks wait on the list in FIFO order; dispatch pops the head,
// requeue moves an existing task to the back in O(1) without reallocating its
// node.
package queue

import (
	"context"
	log "log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sharedcode/llist"
	"github.com/sethvargo/go-retry"
)

// Action is the unit of work a task executes.
type Action func(ctx context.Context) error

type task struct {
	id     uuid.UUID
	action Action
	// node is the strong handle to this task's ready-list node. The ready
	// list itself holds only weak references.
	node *llist.Node[uuid.UUID]
}

// Queue is a ready-list work queue. Safe for concurrent use.
type Queue struct {
	mu    sync.Mutex
	ready *llist.List[uuid.UUID]
	tasks map[uuid.UUID]*task

	retryBase time.Duration
	retryMax  uint64
}

// NewQueue creates an empty queue with the default retry policy of up to 5
// retries on a 1s Fibonacci backoff.
func NewQueue() *Queue {
	return &Queue{
		ready:     llist.NewList[uuid.UUID](),
		tasks:     make(map[uuid.UUID]*task),
		retryBase: 1 * time.Second,
		retryMax:  5,
	}
}

// SetRetryPolicy overrides the backoff base delay and retry count applied to
// failing tasks.
func (q *Queue) SetRetryPolicy(base time.Duration, maxRetries uint64) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.retryBase = base
	q.retryMax = maxRetries
}

// Enqueue appends action at the back of the ready list and returns the task
// ID assigned to it.
func (q *Queue) Enqueue(action Action) uuid.UUID {
	id := uuid.New()
	q.mu.Lock()
	defer q.mu.Unlock()
	q.tasks[id] = &task{
		id:     id,
		action: action,
		node:   q.ready.PushBack(id),
	}
	return id
}

// Requeue moves a still-pending task to the back of the ready list, reusing
// its node. Reports whether the task was found.
func (q *Queue) Requeue(id uuid.UUID) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	t, ok := q.tasks[id]
	if !ok {
		return false
	}
	q.ready.PutBack(t.node)
	return true
}

// Count returns the number of pending tasks.
func (q *Queue) Count() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.tasks)
}

// dequeue pops the task at the head of the ready list.
func (q *Queue) dequeue() *task {
	q.mu.Lock()
	defer q.mu.Unlock()
	h := q.ready.Head()
	if h == nil {
		return nil
	}
	h.Lock()
	id := h.Data
	h.Remove()
	h.Unlock()
	t := q.tasks[id]
	delete(q.tasks, id)
	return t
}

// Drain runs pending tasks on up to workers goroutines until the ready list
// is empty, then waits for them. The first task that exhausts its retry
// budget aborts the drain and its error is returned.
func (q *Queue) Drain(ctx context.Context, workers int) error {
	tr := NewTaskRunner(ctx, workers)
	for {
		t := q.dequeue()
		if t == nil {
			break
		}
		tr.Go(func() error {
			return q.run(tr.GetContext(), t)
		})
	}
	return tr.Wait()
}

// Run keeps draining the queue until ctx is canceled, sleeping with jitter
// while the ready list is empty. Intended for long-lived consumers feeding
// the queue from other goroutines.
func (q *Queue) Run(ctx context.Context, workers int) error {
	tr := NewTaskRunner(ctx, workers)
	for ctx.Err() == nil {
		t := q.dequeue()
		if t == nil {
			llist.RandomSleep(ctx)
			continue
		}
		tr.Go(func() error {
			return q.run(tr.GetContext(), t)
		})
	}
	return tr.Wait()
}

// run executes a task under the queue's retry policy. Retry budget exhaustion
// surfaces as an Error with code TaskRetryExhausted.
func (q *Queue) run(ctx context.Context, t *task) error {
	q.mu.Lock()
	base, maxRetries := q.retryBase, q.retryMax
	q.mu.Unlock()

	err := llist.RetryWithPolicy(ctx, base, maxRetries, func(ctx context.Context) error {
		if err := t.action(ctx); err != nil {
			if llist.ShouldRetry(err) {
				return retry.RetryableError(err)
			}
			return err
		}
		return nil
	}, nil)
	if err != nil {
		log.Error("task failed", "task", t.id, "error", err)
		return llist.Error{Code: llist.TaskRetryExhausted, Err: err, UserData: t.id}
	}
	return nil
}
