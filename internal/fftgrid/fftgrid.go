// SPDX-License-Identifier: MIT

// Package fftgrid implements unnormalized d-dimensional complex FFTs over
// row-major cubic grids by applying gonum's one-dimensional transform along
// every axis. Lines of one axis are independent, so they are split between
// workers; each worker owns its gonum plan and line buffers.
package fftgrid

import (
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/dsp/fourier"
)

// ErrBadShape is returned for non-positive dimensions or axis lengths, for
// grids with more than MaxLen cells, and for data slices whose length is not
// size^dims.
var ErrBadShape = errors.New("fftgrid: invalid grid shape")

// MaxLen bounds size^dims: 2^27 complex128 values take 2 GiB.
const MaxLen = 1 << 27

// Transform is an immutable description of a cubic grid with dims axes of
// length size each. It is safe for concurrent use; scratch space is allocated
// per call.
type Transform struct {
	dims    int
	size    int
	total   int
	workers int
}

// New returns a Transform for a size^dims grid using up to workers goroutines
// per axis sweep. workers < 1 is treated as 1.
func New(dims, size, workers int) (*Transform, error) {
	if dims < 1 || size < 1 {
		return nil, fmt.Errorf("New(%d,%d): %w", dims, size, ErrBadShape)
	}
	total := 1
	for i := 0; i < dims; i++ {
		if total > MaxLen/size {
			return nil, fmt.Errorf("New(%d,%d): more than %d cells: %w", dims, size, MaxLen, ErrBadShape)
		}
		total *= size
	}
	if workers < 1 {
		workers = 1
	}

	return &Transform{dims: dims, size: size, total: total, workers: workers}, nil
}

// Dims returns the number of axes.
func (t *Transform) Dims() int { return t.dims }

// Size returns the length of every axis.
func (t *Transform) Size() int { return t.size }

// Len returns size^dims, the required length of data slices.
func (t *Transform) Len() int { return t.total }

// Forward replaces data by its unnormalized discrete Fourier transform
// X[l] = Σ_t x[t]·exp(−2πi l·t/size).
func (t *Transform) Forward(data []complex128) error {
	return t.run(data, false)
}

// Inverse replaces data by the unnormalized backward transform
// x[t] = Σ_l X[l]·exp(+2πi l·t/size). Forward followed by Inverse scales the
// input by size^dims.
func (t *Transform) Inverse(data []complex128) error {
	return t.run(data, true)
}

func (t *Transform) run(data []complex128, inverse bool) error {
	if len(data) != t.total {
		return fmt.Errorf("len(data)=%d, want %d: %w", len(data), t.total, ErrBadShape)
	}
	stride := t.total
	for axis := 0; axis < t.dims; axis++ {
		stride /= t.size
		if err := t.sweep(data, stride, inverse); err != nil {
			return err
		}
	}

	return nil
}

// sweep transforms every line along the axis whose elements are stride apart.
func (t *Transform) sweep(data []complex128, stride int, inverse bool) error {
	lines := t.total / t.size
	workers := t.workers
	if workers > lines {
		workers = lines
	}
	chunk := (lines + workers - 1) / workers

	var g errgroup.Group
	for lo := 0; lo < lines; lo += chunk {
		hi := min(lo+chunk, lines)
		g.Go(func() error {
			fft := fourier.NewCmplxFFT(t.size)
			in := make([]complex128, t.size)
			out := make([]complex128, t.size)
			for q := lo; q < hi; q++ {
				// line q: inner offset below the axis, outer block above it
				base := (q/stride)*stride*t.size + q%stride
				for i := range in {
					in[i] = data[base+i*stride]
				}
				if inverse {
					fft.Sequence(out, in)
				} else {
					fft.Coefficients(out, in)
				}
				for i, c := range out {
					data[base+i*stride] = c
				}
			}

			return nil
		})
	}

	return g.Wait()
}
