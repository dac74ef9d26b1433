// SPDX-License-Identifier: MIT

package fastsum

import (
	"log/slog"
	"runtime"
)

// DefaultWorkers = 0 resolves to runtime.GOMAXPROCS(0) at plan build time.
const DefaultWorkers = 0

const (
	panicWorkersInvalid = "fastsum: WithWorkers: workers must be ≥ 1"
	panicLoggerNil      = "fastsum: WithLogger: logger must be non-nil"
)

// Option configures a Plan. Constructors panic only on nonsensical values.
type Option func(*options)

type options struct {
	workers int          // DefaultWorkers
	logger  *slog.Logger // discards by default
}

// WithWorkers bounds the goroutines used inside one Apply call and during
// plan construction. Results are identical for every worker count.
func WithWorkers(n int) Option {
	if n < 1 {
		panic(panicWorkersInvalid)
	}

	return func(o *options) { o.workers = n }
}

// WithLogger sets the structured logger for plan statistics.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic(panicLoggerNil)
	}

	return func(o *options) { o.logger = l }
}

func gatherOptions(opts ...Option) options {
	o := options{workers: DefaultWorkers, logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.workers < 1 {
		o.workers = runtime.GOMAXPROCS(0)
	}

	return o
}
