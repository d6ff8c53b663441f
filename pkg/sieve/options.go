package sieve

import (
	"github.com/sirupsen/logrus"

	"github.com/vnykmshr/lazystream/pkg/metrics"
)

// Option configures the cross-cutting concerns of a sieve.
type Option func(*options)

type options struct {
	name    string
	metrics *metrics.Registry
	logger  logrus.FieldLogger
}

func newOptions(name string, opts []Option) options {
	o := options{
		name:   name,
		logger: logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithMetrics records the sieve's progress in reg. A nil registry disables
// instrumentation.
func WithMetrics(reg *metrics.Registry) Option {
	return func(o *options) {
		o.metrics = reg
	}
}

// WithName overrides the name used as the metrics label and log field.
func WithName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.name = name
		}
	}
}

// WithLogger sets the logger. The default is logrus.StandardLogger().
func WithLogger(logger logrus.FieldLogger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}
