// SPDX-License-Identifier: MIT

package spectral

import (
	"log/slog"
	"math"
)

// Defaults for the iterative routines.
const (
	// DefaultNormTolerance is the relative change of the Rayleigh quotient
	// below which power iteration stops. It measures stagnation, not error:
	// the top of a kernel Laplacian spectrum is clustered just below 1, and
	// 1e-6 is reached in a few hundred steps where 1e-8 takes thousands.
	DefaultNormTolerance = 1e-6

	// DefaultMaxIterations caps power iteration.
	DefaultMaxIterations = 1000

	// DefaultEigTolerance bounds the Ritz residual |β·s| relative to max(1, |θ|).
	DefaultEigTolerance = 1e-10

	// DefaultMaxRestarts caps the Lanczos restart cycles.
	DefaultMaxRestarts = 300

	// DefaultSeed seeds the start vectors.
	DefaultSeed = 42
)

const (
	panicTolerance   = "spectral: WithTolerance: tol must be finite and in (0, 1)"
	panicMaxIter     = "spectral: WithMaxIterations: n must be ≥ 1"
	panicMaxRestarts = "spectral: WithMaxRestarts: n must be ≥ 1"
	panicSubspace    = "spectral: WithSubspace: ncv must be ≥ 2"
	panicLogger      = "spectral: WithLogger: logger must be non-nil"
)

// Option configures LaplacianNorm and NormalizedEigs.
type Option func(*options)

type options struct {
	tol         float64 // 0 selects the routine's default
	maxIter     int
	maxRestarts int
	ncv         int // 0 selects the size rule of subspaceSize
	seed        uint64
	logger      *slog.Logger
}

// WithTolerance overrides the convergence tolerance of the called routine.
func WithTolerance(tol float64) Option {
	if math.IsNaN(tol) || !(tol > 0 && tol < 1) {
		panic(panicTolerance)
	}

	return func(o *options) { o.tol = tol }
}

// WithMaxIterations caps power iteration.
func WithMaxIterations(n int) Option {
	if n < 1 {
		panic(panicMaxIter)
	}

	return func(o *options) { o.maxIter = n }
}

// WithMaxRestarts caps Lanczos restart cycles.
func WithMaxRestarts(n int) Option {
	if n < 1 {
		panic(panicMaxRestarts)
	}

	return func(o *options) { o.maxRestarts = n }
}

// WithSubspace fixes the Lanczos basis size ncv. It is clamped to [k+1, n].
func WithSubspace(ncv int) Option {
	if ncv < 2 {
		panic(panicSubspace)
	}

	return func(o *options) { o.ncv = ncv }
}

// WithSeed changes the start-vector seed.
func WithSeed(seed uint64) Option {
	return func(o *options) { o.seed = seed }
}

// WithLogger sets the logger for convergence reports.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic(panicLogger)
	}

	return func(o *options) { o.logger = l }
}

func gatherOptions(opts ...Option) options {
	o := options{
		maxIter:     DefaultMaxIterations,
		maxRestarts: DefaultMaxRestarts,
		seed:        DefaultSeed,
		logger:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}

// tolerance returns the configured tolerance or def.
func (o options) tolerance(def float64) float64 {
	if o.tol > 0 {
		return o.tol
	}

	return def
}
