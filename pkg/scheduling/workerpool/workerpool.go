package workerpool

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/hashicorp/go-multierror"

	lserrors "github.com/vnykmshr/lazystream/pkg/common/errors"
)

// Submit adds a task to the pool for execution.
// The task will be executed with context.Background().
// Use SubmitWithContext to provide a custom context.
func (p *workerPool) Submit(task Task) error {
	return p.SubmitWithContext(context.Background(), task)
}

// SubmitWithContext adds a task to the pool for execution with the given context.
func (p *workerPool) SubmitWithContext(ctx context.Context, task Task) error {
	return p.enqueue(ctx, taskWithContext{task: task, ctx: ctx})
}

func (p *workerPool) enqueue(ctx context.Context, twc taskWithContext) error {
	if twc.task == nil {
		return fmt.Errorf("task cannot be nil")
	}

	if ctx == nil {
		ctx = context.Background()
		twc.ctx = ctx
	}

	p.mu.Lock()
	if p.isShutdown {
		p.mu.Unlock()
		return fmt.Errorf("cannot submit task: %w", lserrors.ErrClosed)
	}
	p.totalSubmitted++
	p.mu.Unlock()

	// Check if context is already canceled before attempting to queue
	select {
	case <-ctx.Done():
		return fmt.Errorf("cannot submit task: context canceled: %w", ctx.Err())
	default:
	}

	select {
	case p.taskQueue <- twc:
		return nil
	case <-p.shutdownCh:
		return fmt.Errorf("cannot submit task: %w", lserrors.ErrClosed)
	case <-ctx.Done():
		return fmt.Errorf("cannot submit task: context canceled: %w", ctx.Err())
	}
}

// RunAll is the fork/join barrier: it queues every task, then waits for
// exactly len(tasks) results on a private channel.
func (p *workerPool) RunAll(ctx context.Context, tasks []Task) error {
	if ctx == nil {
		ctx = context.Background()
	}
	replies := make(chan Result, len(tasks))

	var merr *multierror.Error
	queued := 0
	for i, task := range tasks {
		err := p.enqueue(ctx, taskWithContext{task: task, ctx: ctx, index: i, reply: replies})
		if err != nil {
			merr = multierror.Append(merr, fmt.Errorf("task %d: %w", i, err))
			continue
		}
		queued++
	}

	for ; queued > 0; queued-- {
		result := <-replies
		if result.Error != nil {
			merr = multierror.Append(merr, fmt.Errorf("task %d: %w", result.Index, result.Error))
		}
	}

	if err := merr.ErrorOrNil(); err != nil {
		return fmt.Errorf("%w: %w", lserrors.ErrWorkerFailed, err)
	}
	return nil
}

// Results returns a channel of task results.
func (p *workerPool) Results() <-chan Result {
	return p.resultQueue
}

// Shutdown initiates a graceful shutdown of the pool.
func (p *workerPool) Shutdown() <-chan struct{} {
	p.shutdownOnce.Do(func() {
		p.mu.Lock()
		p.isShutdown = true
		p.mu.Unlock()

		// Signal shutdown to all workers
		close(p.shutdownCh)

		go func() {
			p.workerWg.Wait()
			close(p.resultQueue)
			close(p.done)
		}()
	})

	return p.done
}

// Size returns the number of workers in the pool.
func (p *workerPool) Size() int {
	return p.config.WorkerCount
}

// TotalSubmitted returns the total number of tasks submitted to the pool.
func (p *workerPool) TotalSubmitted() int64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.totalSubmitted
}

// TotalCompleted returns the total number of tasks completed by the pool.
func (p *workerPool) TotalCompleted() int64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.totalCompleted
}

// run is the main loop for a worker.
func (w *worker) run() {
	defer w.pool.workerWg.Done()

	for {
		select {
		case <-w.pool.shutdownCh:
			return
		case twc := <-w.pool.taskQueue:
			w.executeTask(twc)
		}
	}
}

// sendResult delivers a result to the batch that queued the task, or to the
// shared result queue for submitted tasks.
func (w *worker) sendResult(twc taskWithContext, result Result) {
	if twc.reply != nil {
		// buffered for the whole batch, never blocks
		twc.reply <- result
		return
	}

	select {
	case w.pool.resultQueue <- result:
	case <-w.pool.shutdownCh:
		// Worker is shutting down, don't block on result delivery
	case <-time.After(100 * time.Millisecond):
		// Result delivery timed out, which is acceptable during shutdown
	}
}

// executeTask executes a single task with the provided context.
func (w *worker) executeTask(twc taskWithContext) {
	start := time.Now()
	var err error

	// Handle panics during task execution
	defer func() {
		if r := recover(); r != nil {
			if w.pool.config.PanicHandler != nil {
				w.pool.config.PanicHandler(twc.task, r)
			}
			if cause, ok := r.(error); ok {
				err = fmt.Errorf("task panicked: %w\nStack trace:\n%s", cause, debug.Stack())
			} else {
				err = fmt.Errorf("task panicked: %v\nStack trace:\n%s", r, debug.Stack())
			}
		}

		result := Result{
			Task:     twc.task,
			Index:    twc.index,
			Error:    err,
			Duration: time.Since(start),
			WorkerID: w.id,
		}

		w.pool.mu.Lock()
		w.pool.totalCompleted++
		w.pool.mu.Unlock()

		w.pool.config.Metrics.ObserveTask(w.pool.config.Name, result.Duration, err)
		if w.pool.config.OnTaskComplete != nil {
			w.pool.config.OnTaskComplete(w.id, result)
		}

		w.sendResult(twc, result)
	}()

	err = twc.task.Execute(twc.ctx)
}
