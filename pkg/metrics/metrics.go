// Package metrics provides Prometheus instrumentation for lazystream components.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds all metric instances for lazystream components.
// A nil *Registry is valid and records nothing.
type Registry struct {
	// Sieve Metrics
	PrimesEmitted      *prometheus.CounterVec
	EliminationFilters *prometheus.GaugeVec
	RefillBatches      *prometheus.CounterVec
	RefillDuration     *prometheus.HistogramVec
	MergeBuffered      *prometheus.GaugeVec
	Watermark          *prometheus.GaugeVec

	// Cache Metrics
	CacheSize *prometheus.GaugeVec

	// Worker Pool Metrics
	WorkerPoolSize *prometheus.GaugeVec
	TasksCompleted *prometheus.CounterVec
	TasksFailed    *prometheus.CounterVec
	TaskDuration   *prometheus.HistogramVec
}

// DefaultRegistry is the default metrics registry used by lazystream components.
var DefaultRegistry *Registry

func init() {
	DefaultRegistry = NewRegistry(prometheus.DefaultRegisterer)
}

// NewRegistry creates a new metrics registry with the given Prometheus registerer.
func NewRegistry(reg prometheus.Registerer) *Registry {
	return newRegistry(reg, DefaultNamespace)
}

// New creates a registry from config. It returns nil when metrics are disabled.
func New(config Config) *Registry {
	if !config.Enabled {
		return nil
	}
	reg := config.Registry
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if len(config.Labels) > 0 {
		reg = prometheus.WrapRegistererWith(config.Labels, reg)
	}
	namespace := config.Namespace
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return newRegistry(reg, namespace)
}

func newRegistry(reg prometheus.Registerer, namespace string) *Registry {
	factory := promauto.With(reg)

	return &Registry{
		// Sieve Metrics
		PrimesEmitted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "sieve",
				Name:      "primes_emitted_total",
				Help:      "Total number of primes produced by Advance",
			},
			[]string{"sieve"},
		),

		EliminationFilters: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "sieve",
				Name:      "elimination_filters",
				Help:      "Number of difference filters installed in the multiples pipeline",
			},
			[]string{"sieve"},
		),

		RefillBatches: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "sieve",
				Name:      "refill_batches_total",
				Help:      "Total number of parallel refill batches",
			},
			[]string{"sieve"},
		),

		RefillDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "sieve",
				Name:      "refill_duration_seconds",
				Help:      "Time spent running one parallel refill batch",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"sieve"},
		),

		MergeBuffered: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "sieve",
				Name:      "merge_buffered",
				Help:      "Number of primes waiting in the merge set",
			},
			[]string{"sieve"},
		),

		Watermark: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "sieve",
				Name:      "watermark",
				Help:      "Largest value every worker has scanned past",
			},
			[]string{"sieve"},
		),

		// Cache Metrics
		CacheSize: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "cache",
				Name:      "size",
				Help:      "Number of values held by a memoized cache",
			},
			[]string{"cache"},
		),

		// Worker Pool Metrics
		WorkerPoolSize: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "workerpool",
				Name:      "size",
				Help:      "Current worker pool size",
			},
			[]string{"pool_name"},
		),

		TasksCompleted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "workerpool",
				Name:      "tasks_completed_total",
				Help:      "Total number of tasks completed successfully",
			},
			[]string{"pool_name"},
		),

		TasksFailed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "workerpool",
				Name:      "tasks_failed_total",
				Help:      "Total number of tasks that failed",
			},
			[]string{"pool_name"},
		),

		TaskDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "workerpool",
				Name:      "task_duration_seconds",
				Help:      "Time spent executing tasks",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"pool_name"},
		),
	}
}

// PrimeEmitted counts one value produced by the named sieve.
func (r *Registry) PrimeEmitted(sieve string) {
	if r == nil {
		return
	}
	r.PrimesEmitted.WithLabelValues(sieve).Inc()
}

// SetFilters records the depth of the named multiples pipeline.
func (r *Registry) SetFilters(sieve string, n int) {
	if r == nil {
		return
	}
	r.EliminationFilters.WithLabelValues(sieve).Set(float64(n))
}

// ObserveRefill records one parallel refill batch and the merge state it left.
func (r *Registry) ObserveRefill(sieve string, d time.Duration, buffered int, watermark int64) {
	if r == nil {
		return
	}
	r.RefillBatches.WithLabelValues(sieve).Inc()
	r.RefillDuration.WithLabelValues(sieve).Observe(d.Seconds())
	r.MergeBuffered.WithLabelValues(sieve).Set(float64(buffered))
	r.Watermark.WithLabelValues(sieve).Set(float64(watermark))
}

// SetCacheSize records how many values the named cache holds.
func (r *Registry) SetCacheSize(cache string, n int) {
	if r == nil {
		return
	}
	r.CacheSize.WithLabelValues(cache).Set(float64(n))
}

// SetPoolSize records the number of workers of the named pool.
func (r *Registry) SetPoolSize(pool string, n int) {
	if r == nil {
		return
	}
	r.WorkerPoolSize.WithLabelValues(pool).Set(float64(n))
}

// ObserveTask records the outcome of one worker pool task.
func (r *Registry) ObserveTask(pool string, d time.Duration, err error) {
	if r == nil {
		return
	}
	if err != nil {
		r.TasksFailed.WithLabelValues(pool).Inc()
	} else {
		r.TasksCompleted.WithLabelValues(pool).Inc()
	}
	r.TaskDuration.WithLabelValues(pool).Observe(d.Seconds())
}
