// SPDX-License-Identifier: MIT

package fastsum_test

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wagnertheresa/prescaledFastAdj/kernel"
)

// randomPoints returns n points uniform in [0,1)^d from a fixed seed.
func randomPoints(seed uint64, n, d int) [][]float64 {
	rng := rand.New(rand.NewPCG(seed, 7))
	pts := make([][]float64, n)
	for i := range pts {
		pts[i] = make([]float64, d)
		for a := range pts[i] {
			pts[i][a] = rng.Float64()
		}
	}

	return pts
}

// randomVector returns entries uniform in [0,1).
func randomVector(seed uint64, n int) []float64 {
	rng := rand.New(rand.NewPCG(seed, 11))
	v := make([]float64, n)
	for i := range v {
		v[i] = rng.Float64()
	}

	return v
}

// signedVector returns standard normal entries, so K·v has no dominant
// constant component.
func signedVector(seed uint64, n int) []float64 {
	rng := rand.New(rand.NewPCG(seed, 13))
	v := make([]float64, n)
	for i := range v {
		v[i] = rng.NormFloat64()
	}

	return v
}

// exactApply forms K explicitly.
func exactApply(pts [][]float64, k kernel.Kernel, diagonal float64, v []float64) []float64 {
	out := make([]float64, len(pts))
	for j := range pts {
		s := diagonal * v[j]
		for i := range pts {
			if i == j {
				continue
			}
			var r2 float64
			for a := range pts[j] {
				dx := pts[j][a] - pts[i][a]
				r2 += dx * dx
			}
			s += k.Eval(math.Sqrt(r2)) * v[i]
		}
		out[j] = s
	}

	return out
}

func relErr(got, want []float64) float64 {
	var num, den float64
	for i := range got {
		num += (got[i] - want[i]) * (got[i] - want[i])
		den += want[i] * want[i]
	}

	return math.Sqrt(num / den)
}

func dot(a, b []float64) float64 {
	var s float64
	for i := range a {
		s += a[i] * b[i]
	}

	return s
}

func mustKernel(t testing.TB, v kernel.Variant, sigma float64) kernel.Kernel {
	t.Helper()
	k, err := kernel.New(v, sigma)
	require.NoError(t, err)

	return k
}
