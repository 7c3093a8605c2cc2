package queue

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// TaskRunner runs submitted work on a bounded number of goroutines and
// collects the first error, errgroup style.
type TaskRunner struct {
	maxThreadCount int
	eg             *errgroup.Group
	limiterChan    chan bool
	context        context.Context
}

func NewTaskRunner(ctx context.Context, maxThreadCount int) *TaskRunner {
	if maxThreadCount < 1 {
		maxThreadCount = 1
	}
	eg, ctx2 := errgroup.WithContext(ctx)
	return &TaskRunner{
		maxThreadCount: maxThreadCount,
		limiterChan:    make(chan bool, maxThreadCount),
		eg:             eg,
		context:        ctx2,
	}
}

func (tr *TaskRunner) GetContext() context.Context {
	return tr.context
}

func (tr *TaskRunner) Go(task func() error) {
	// Occupy a thread slot before spawning so that at most maxThreadCount
	// tasks run at once and submissions dispatch in order.
	tr.limiterChan <- true
	tr.eg.Go(func() error {
		// Free up this thread slot, also when the task errors; a leaked
		// slot would block every later submission.
		defer func() { <-tr.limiterChan }()
		return task()
	})
}

// Wrapper to errgroup.Wait.
func (tr *TaskRunner) Wait() error {
	defer close(tr.limiterChan)
	return tr.eg.Wait()
}
