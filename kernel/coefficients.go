// SPDX-License-Identifier: MIT

package kernel

import (
	"math"

	"github.com/wagnertheresa/prescaledFastAdj/internal/fftgrid"
)

// Coefficients returns the Fourier coefficients of K_R on the frequency cube
// I_N = [−N/2, N/2)^d,
//
//	b_l = N^{−d} · Σ_{j∈I_N} K_R(‖j/N‖) · exp(−2πi j·l/N),
//
// in row-major order with every axis index taken modulo N (frequency −1 is
// stored at N−1). K_R is even, so the coefficients are real.
//
// Implementation:
//   - Stage 1: validate d ≥ 1 and an even N ≥ 2.
//   - Stage 2: sample K_R on the N^d grid of signed offsets j/N.
//   - Stage 3: one d-dimensional forward FFT, scale by N^{−d}, keep real parts.
//
// Errors:
//   - ErrInvalidParameter on a bad shape.
//
// Complexity: O(N^d·(p + d·log N)) time, O(N^d) memory.
func (g *Regularized) Coefficients(d, n int) ([]float64, error) {
	if d < 1 || n < 2 || n%2 != 0 {
		return nil, kernelErrorf(opCoefficients, "d=%d, N=%d: %w", d, n, ErrInvalidParameter)
	}
	tr, err := fftgrid.New(d, n, 1)
	if err != nil {
		return nil, kernelErrorf(opCoefficients, "%v: %w", err, ErrInvalidParameter)
	}

	samples := make([]complex128, tr.Len())
	idx := make([]int, d)
	for flat := range samples {
		// decode row-major multi-index, last axis fastest
		rem := flat
		for ax := d - 1; ax >= 0; ax-- {
			idx[ax] = rem % n
			rem /= n
		}
		var r2 float64
		for _, j := range idx {
			if j >= n/2 {
				j -= n
			}
			z := float64(j) / float64(n)
			r2 += z * z
		}
		samples[flat] = complex(g.Eval(math.Sqrt(r2)), 0)
	}

	if err = tr.Forward(samples); err != nil {
		return nil, kernelErrorf(opCoefficients, "%v: %w", err, ErrInvalidParameter)
	}
	norm := 1 / float64(tr.Len())
	out := make([]float64, len(samples))
	for i, c := range samples {
		out[i] = real(c) * norm
	}

	return out, nil
}
