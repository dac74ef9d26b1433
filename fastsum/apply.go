// SPDX-License-Identifier: MIT

package fastsum

import "golang.org/x/sync/errgroup"

// Apply returns the approximation of K·v, where K[j,k] = k(‖xⱼ − xₖ‖) for
// j ≠ k and K[j,j] = diagonal.
//
// Implementation:
//   - Stage 1: validate len(v) == n; for n == 1 return diagonal·v[0].
//   - Stage 2: spread v onto the oversampled grid (sequential).
//   - Stage 3: forward FFT, multiply by the deconvolved kernel coefficients,
//     inverse FFT.
//   - Stage 4: per output point, gather with the window, add the near-field
//     correction and (diagonal − K_R(0))·v[j].
//
// Errors:
//   - ErrDimensionMismatch if len(v) != Len().
//
// Determinism: results are bitwise identical across calls and worker counts.
func (p *Plan) Apply(v []float64) ([]float64, error) {
	if err := validateVector(v, p.n); err != nil {
		return nil, err
	}
	out := make([]float64, p.n)
	if p.n == 1 {
		out[0] = p.diagonal * v[0]
		return out, nil
	}

	grid := make([]complex128, p.fft.Len())
	ctr := make([]int, p.d)
	for j, vj := range v {
		p.window(j, ctr, func(flat int, w float64) {
			grid[flat] += complex(w*vj, 0)
		})
	}

	if err := p.fft.Forward(grid); err != nil {
		return nil, fastsumErrorf(opApply, "forward transform: %w", err)
	}
	for i, c := range p.mult {
		grid[i] *= complex(c, 0)
	}
	if err := p.fft.Inverse(grid); err != nil {
		return nil, fastsumErrorf(opApply, "inverse transform: %w", err)
	}

	err := p.parallel(p.n, func(lo, hi int) error {
		ctr := make([]int, p.d)
		off := make([]int, p.d)
		for j := lo; j < hi; j++ {
			var s float64
			p.window(j, ctr, func(flat int, w float64) {
				s += w * real(grid[flat])
			})
			if p.near != nil {
				s += p.nearCorrection(j, v, off)
			}
			out[j] = s + p.shift*v[j]
		}
		return nil
	})
	if err != nil {
		return nil, fastsumErrorf(opApply, "gather: %w", err)
	}

	return out, nil
}

// parallel splits [0, n) into at most p.workers contiguous chunks.
func (p *Plan) parallel(n int, fn func(lo, hi int) error) error {
	workers := min(p.workers, n)
	if workers <= 1 {
		return fn(0, n)
	}
	chunk := (n + workers - 1) / workers
	var g errgroup.Group
	for lo := 0; lo < n; lo += chunk {
		hi := min(lo+chunk, n)
		g.Go(func() error { return fn(lo, hi) })
	}

	return g.Wait()
}
