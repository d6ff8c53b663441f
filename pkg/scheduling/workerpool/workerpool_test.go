package workerpool

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/vnykmshr/lazystream/internal/testutil"
	lserrors "github.com/vnykmshr/lazystream/pkg/common/errors"
	"github.com/vnykmshr/lazystream/pkg/metrics"
)

// TestTask is a simple task for testing.
type TestTask struct {
	ID          int
	Duration    time.Duration
	ShouldErr   bool
	ShouldPanic bool
	Executed    *int32 // Atomic counter
}

func (t *TestTask) Execute(ctx context.Context) error {
	atomic.AddInt32(t.Executed, 1)

	if t.ShouldPanic {
		panic("test panic")
	}

	if t.Duration > 0 {
		select {
		case <-time.After(t.Duration):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	if t.ShouldErr {
		return errors.New("test error")
	}

	return nil
}

func TestNew(t *testing.T) {
	tests := []struct {
		name        string
		workerCount int
		queueSize   int
		expectPanic bool
	}{
		{"valid params", 2, 10, false},
		{"single worker", 1, 5, false},
		{"unbuffered queue", 3, 0, false},
		{"zero workers", 0, 10, true},
		{"negative workers", -1, 10, true},
		{"invalid queue size", 2, -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.expectPanic {
				recovered := testutil.AssertPanics(t, func() { New(tt.workerCount, tt.queueSize) })
				if err, ok := recovered.(error); !ok || !lserrors.IsValidationError(err) {
					t.Errorf("expected ValidationError panic, got %v", recovered)
				}
				return
			}

			pool := New(tt.workerCount, tt.queueSize)
			testutil.AssertEqual(t, pool.Size(), tt.workerCount)
			<-pool.Shutdown()
		})
	}
}

func TestBasicTaskExecution(t *testing.T) {
	pool := New(2, 5)
	defer pool.Shutdown()

	var executed int32
	task := &TestTask{
		ID:       1,
		Duration: 10 * time.Millisecond,
		Executed: &executed,
	}

	testutil.AssertNoError(t, pool.Submit(task))

	select {
	case result := <-pool.Results():
		testutil.AssertEqual(t, result.Error, nil)
		testutil.AssertEqual(t, result.Task == Task(task), true)
		testutil.AssertEqual(t, result.Duration >= 10*time.Millisecond, true)
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for result")
	}

	testutil.AssertEqual(t, atomic.LoadInt32(&executed), int32(1))
}

func TestTaskPanic(t *testing.T) {
	var mu sync.Mutex
	var recoveredValue interface{}

	pool := NewWithConfig(Config{
		WorkerCount: 1,
		QueueSize:   1,
		PanicHandler: func(task Task, recovered interface{}) {
			mu.Lock()
			defer mu.Unlock()
			recoveredValue = recovered
		},
	})
	defer pool.Shutdown()

	var executed int32
	testutil.AssertNoError(t, pool.Submit(&TestTask{ShouldPanic: true, Executed: &executed}))

	select {
	case result := <-pool.Results():
		testutil.AssertError(t, result.Error)
		if !strings.Contains(result.Error.Error(), "task panicked: test panic") {
			t.Errorf("unexpected error: %v", result.Error)
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for result")
	}

	mu.Lock()
	defer mu.Unlock()
	testutil.AssertEqual(t, recoveredValue, interface{}("test panic"))
}

func TestPanickedErrorStaysReachable(t *testing.T) {
	pool := New(1, 0)
	defer pool.Shutdown()

	err := pool.RunAll(context.Background(), []Task{
		TaskFunc(func(ctx context.Context) error { panic(lserrors.ErrConsumed) }),
	})

	if !errors.Is(err, lserrors.ErrWorkerFailed) {
		t.Errorf("error should wrap ErrWorkerFailed: %v", err)
	}
	if !errors.Is(err, lserrors.ErrConsumed) {
		t.Errorf("error should wrap the panic value: %v", err)
	}
}

func TestRunAll(t *testing.T) {
	pool := New(3, 0)
	defer pool.Shutdown()

	const numTasks = 10
	var executed int32
	tasks := make([]Task, numTasks)
	for i := range tasks {
		tasks[i] = &TestTask{ID: i, Duration: 5 * time.Millisecond, Executed: &executed}
	}

	testutil.AssertNoError(t, pool.RunAll(context.Background(), tasks))
	testutil.AssertEqual(t, atomic.LoadInt32(&executed), int32(numTasks))
	testutil.AssertEqual(t, pool.TotalSubmitted(), int64(numTasks))
	testutil.AssertEqual(t, pool.TotalCompleted(), int64(numTasks))
}

func TestRunAllWaitsForEveryTask(t *testing.T) {
	pool := New(4, 0)
	defer pool.Shutdown()

	var executed int32
	tasks := []Task{
		&TestTask{ID: 0, ShouldErr: true, Executed: &executed},
		&TestTask{ID: 1, Duration: 30 * time.Millisecond, Executed: &executed},
		&TestTask{ID: 2, ShouldPanic: true, Executed: &executed},
		&TestTask{ID: 3, Duration: 30 * time.Millisecond, Executed: &executed},
	}

	err := pool.RunAll(context.Background(), tasks)

	testutil.AssertEqual(t, atomic.LoadInt32(&executed), int32(4))
	testutil.AssertEqual(t, pool.TotalCompleted(), int64(4))
	if !errors.Is(err, lserrors.ErrWorkerFailed) {
		t.Fatalf("expected ErrWorkerFailed, got %v", err)
	}
	var merr *multierror.Error
	if !errors.As(err, &merr) {
		t.Fatalf("expected a multierror, got %T", err)
	}
	testutil.AssertEqual(t, len(merr.Errors), 2)
}

func TestRunAllIsolatedFromSubmit(t *testing.T) {
	pool := New(2, 4)
	defer pool.Shutdown()

	var executed int32
	testutil.AssertNoError(t, pool.Submit(&TestTask{Executed: &executed}))
	testutil.AssertNoError(t, pool.RunAll(context.Background(), []Task{
		&TestTask{Executed: &executed},
		&TestTask{Executed: &executed},
	}))

	// Only the submitted task reports on Results.
	select {
	case <-pool.Results():
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for result")
	}
	select {
	case r := <-pool.Results():
		t.Fatalf("unexpected result from batch task %d", r.Index)
	case <-time.After(20 * time.Millisecond):
	}
}

func TestSubmitAfterShutdown(t *testing.T) {
	pool := New(1, 1)
	<-pool.Shutdown()

	var executed int32
	err := pool.Submit(&TestTask{Executed: &executed})
	if !errors.Is(err, lserrors.ErrClosed) {
		t.Errorf("expected ErrClosed, got %v", err)
	}

	err = pool.RunAll(context.Background(), []Task{&TestTask{Executed: &executed}})
	if !errors.Is(err, lserrors.ErrClosed) {
		t.Errorf("expected ErrClosed, got %v", err)
	}
	testutil.AssertEqual(t, atomic.LoadInt32(&executed), int32(0))
}

func TestSubmitNilAndCanceled(t *testing.T) {
	pool := New(1, 0)
	defer pool.Shutdown()

	testutil.AssertError(t, pool.Submit(nil))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var executed int32
	err := pool.SubmitWithContext(ctx, &TestTask{Executed: &executed})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestMetricsAndCallbacks(t *testing.T) {
	registry := metrics.NewRegistry(prometheus.NewRegistry())
	var completed int32

	pool := NewWithConfig(Config{
		WorkerCount: 2,
		Name:        "sieve",
		Metrics:     registry,
		OnTaskComplete: func(workerID int, result Result) {
			atomic.AddInt32(&completed, 1)
		},
	})
	defer pool.Shutdown()

	var executed int32
	_ = pool.RunAll(context.Background(), []Task{
		&TestTask{Executed: &executed},
		&TestTask{Executed: &executed},
		&TestTask{ShouldErr: true, Executed: &executed},
	})

	testutil.AssertEqual(t, atomic.LoadInt32(&completed), int32(3))
	testutil.AssertEqual(t, promtest.ToFloat64(registry.WorkerPoolSize.WithLabelValues("sieve")), float64(2))
	testutil.AssertEqual(t, promtest.ToFloat64(registry.TasksCompleted.WithLabelValues("sieve")), float64(2))
	testutil.AssertEqual(t, promtest.ToFloat64(registry.TasksFailed.WithLabelValues("sieve")), float64(1))
}
