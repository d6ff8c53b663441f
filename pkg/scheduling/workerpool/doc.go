/*
Package workerpool provides a fixed-size worker pool with a fork/join batch
barrier.

A worker pool manages a fixed number of worker goroutines that execute tasks
concurrently. The parallel sieve uses it to run one task per residue class and
wait for all of them before merging.

Basic usage:

	pool := workerpool.New(4, 0) // 4 workers, unbuffered queue
	defer pool.Shutdown()

	err := pool.RunAll(ctx, []workerpool.Task{
		workerpool.TaskFunc(func(ctx context.Context) error { return scan(0) }),
		workerpool.TaskFunc(func(ctx context.Context) error { return scan(1) }),
	})

Fire-and-forget submission is still available; results arrive on Results:

	if err := pool.Submit(task); err != nil {
		log.Printf("Failed to submit: %v", err)
	}
	result := <-pool.Results()

Error Handling:

A panicking task does not take its worker down. The panic is recovered,
turned into the task's error together with a stack trace, and passed to
Config.PanicHandler when set. If the panic value is an error it stays
reachable with errors.Is and errors.As.

RunAll never stops a batch early. It waits for every task and joins all
failures (github.com/hashicorp/go-multierror) into one error that wraps
errors.ErrWorkerFailed.

Metrics:

Set Config.Metrics to record pool size, completed and failed tasks, and task
durations under Config.Name.
*/
package workerpool
