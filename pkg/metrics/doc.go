// Package metrics provides Prometheus instrumentation for lazystream components.
//
// # Overview
//
// The metrics package instruments:
//   - Sieves (primes emitted, elimination filters, refill batches and their duration)
//   - The parallel merge (buffered primes, watermark)
//   - Memoized caches (number of values held)
//   - Worker pools (pool size, completed and failed tasks, task duration)
//
// # Quick Start
//
// Pass a registry to the components you want to observe:
//
//	primes := sieve.Trial(sieve.WithMetrics(metrics.DefaultRegistry, "trial"))
//
// Then expose metrics via HTTP:
//
//	http.Handle("/metrics", promhttp.Handler())
//	log.Fatal(http.ListenAndServe(":8080", nil))
//
// # Custom Registry
//
// Use a custom Prometheus registry for isolation:
//
//	registry := metrics.New(metrics.Config{
//		Enabled:  true,
//		Registry: prometheus.NewRegistry(),
//	})
//
// A nil *Registry, as returned by New for a disabled Config, is accepted
// everywhere and records nothing.
package metrics
