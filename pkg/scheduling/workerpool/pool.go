package workerpool

import (
	"context"
	"sync"
	"time"

	"github.com/vnykmshr/lazystream/pkg/common/validation"
	"github.com/vnykmshr/lazystream/pkg/metrics"
)

// Task represents a unit of work that can be executed by a worker.
type Task interface {
	// Execute runs the task with the given context.
	Execute(ctx context.Context) error
}

// TaskFunc is a function type that implements the Task interface.
type TaskFunc func(ctx context.Context) error

// Execute implements the Task interface for TaskFunc.
func (f TaskFunc) Execute(ctx context.Context) error {
	return f(ctx)
}

// Result represents the result of a task execution.
type Result struct {
	// Task is the original task that was executed
	Task Task

	// Index is the task's position in a RunAll batch; zero for Submit.
	Index int

	// Error is any error that occurred during task execution
	Error error

	// Duration is how long the task took to execute
	Duration time.Duration

	// WorkerID identifies which worker executed the task
	WorkerID int
}

// Pool represents a worker pool that can execute tasks concurrently.
type Pool interface {
	// Submit adds a task to the pool for execution. Its Result is delivered
	// on Results.
	Submit(task Task) error

	// SubmitWithContext submits a task with a context for cancellation.
	// The context is passed to the task's Execute method.
	SubmitWithContext(ctx context.Context, task Task) error

	// Results returns a channel of results of submitted tasks.
	// The channel is closed when the pool is shut down.
	Results() <-chan Result

	// RunAll executes every task on the pool and blocks until all of them
	// have finished. Failures do not stop the batch; they are joined into
	// the returned error, which wraps errors.ErrWorkerFailed.
	RunAll(ctx context.Context, tasks []Task) error

	// Shutdown initiates a graceful shutdown of the pool.
	// Returns a channel that closes when every worker has stopped.
	Shutdown() <-chan struct{}

	// Size returns the number of workers in the pool.
	Size() int

	// TotalSubmitted returns the total number of tasks submitted to the pool.
	TotalSubmitted() int64

	// TotalCompleted returns the total number of tasks completed by the pool.
	TotalCompleted() int64
}

// Config holds configuration options for creating a worker pool.
type Config struct {
	// WorkerCount is the number of workers in the pool.
	// Must be greater than 0.
	WorkerCount int

	// QueueSize is the capacity of the task queue. Zero means submissions
	// wait for an idle worker.
	QueueSize int

	// Name labels the pool's metrics.
	Name string

	// Metrics receives task outcomes. Nil disables instrumentation.
	Metrics *metrics.Registry

	// PanicHandler is called when a task panics, before the panic is turned
	// into the task's error.
	PanicHandler func(task Task, recovered interface{})

	// OnTaskComplete is called after a task completes (success or failure).
	OnTaskComplete func(workerID int, result Result)
}

// taskWithContext is a queued task. Batch tasks carry their own reply channel.
type taskWithContext struct {
	task  Task
	ctx   context.Context
	index int
	reply chan<- Result
}

// workerPool implements the Pool interface.
type workerPool struct {
	config Config

	// Core pool state
	workers      []worker
	taskQueue    chan taskWithContext
	resultQueue  chan Result
	shutdownCh   chan struct{}
	shutdownOnce sync.Once
	done         chan struct{}

	// State tracking
	mu             sync.RWMutex
	isShutdown     bool
	totalSubmitted int64
	totalCompleted int64

	// Worker management
	workerWg sync.WaitGroup
}

// worker represents a single worker in the pool.
type worker struct {
	id   int
	pool *workerPool
}

// New creates a new worker pool with the specified number of workers and queue size.
func New(workerCount, queueSize int) Pool {
	return NewWithConfig(Config{
		WorkerCount: workerCount,
		QueueSize:   queueSize,
	})
}

// NewWithConfig creates a new worker pool with the specified configuration.
// It panics on an invalid configuration.
func NewWithConfig(config Config) Pool {
	if err := validation.ValidatePositive("workerpool", "WorkerCount", config.WorkerCount); err != nil {
		panic(err)
	}
	if err := validation.ValidateNonNegative("workerpool", "QueueSize", config.QueueSize); err != nil {
		panic(err)
	}

	pool := &workerPool{
		config:      config,
		taskQueue:   make(chan taskWithContext, config.QueueSize),
		resultQueue: make(chan Result, config.WorkerCount),
		shutdownCh:  make(chan struct{}),
		done:        make(chan struct{}),
	}

	// Create and start workers
	pool.workers = make([]worker, config.WorkerCount)
	for i := 0; i < config.WorkerCount; i++ {
		pool.workers[i] = worker{id: i, pool: pool}
		pool.workerWg.Add(1)
		go pool.workers[i].run()
	}

	config.Metrics.SetPoolSize(config.Name, config.WorkerCount)
	return pool
}
