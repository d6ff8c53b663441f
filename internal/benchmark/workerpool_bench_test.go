package benchmark

import (
	"context"
	"fmt"
	"testing"

	"github.com/vnykmshr/lazystream/pkg/scheduling/workerpool"
)

// BenchmarkWorkerPoolRunAll measures the fork/join barrier overhead.
func BenchmarkWorkerPoolRunAll(b *testing.B) {
	for _, workers := range []int{2, 4, 8} {
		b.Run(fmt.Sprintf("%d_workers", workers), func(b *testing.B) {
			pool := workerpool.New(workers, 0)
			defer func() { <-pool.Shutdown() }()

			tasks := make([]workerpool.Task, workers)
			for i := range tasks {
				tasks[i] = workerpool.TaskFunc(func(_ context.Context) error {
					return nil
				})
			}

			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if err := pool.RunAll(context.Background(), tasks); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
