// SPDX-License-Identifier: MIT

package adjacency

import (
	"log/slog"

	"github.com/wagnertheresa/prescaledFastAdj/fastsum"
)

// Option configures construction.
type Option func(*config)

type config struct {
	plan   []fastsum.Option
	logger *slog.Logger
}

// WithWorkers bounds the goroutines used inside Apply. Panics if n < 1.
func WithWorkers(n int) Option {
	opt := fastsum.WithWorkers(n)

	return func(c *config) { c.plan = append(c.plan, opt) }
}

// WithLogger sets the logger for the matrix and its plan. Panics on nil.
func WithLogger(l *slog.Logger) Option {
	opt := fastsum.WithLogger(l)

	return func(c *config) {
		c.plan = append(c.plan, opt)
		c.logger = l
	}
}

func gatherOptions(opts ...Option) config {
	c := config{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		if opt != nil {
			opt(&c)
		}
	}

	return c
}
