// SPDX-License-Identifier: MIT
// Package kernel_test contains unit tests for kernel variants, derivatives and
// the regularized periodic expansion.
package kernel_test

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fastadj "github.com/wagnertheresa/prescaledFastAdj"
	"github.com/wagnertheresa/prescaledFastAdj/kernel"
)

// TestNew covers bandwidth and variant validation.
func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		variant kernel.Variant
		sigma   float64
		wantErr error
	}{
		{"gaussian ok", kernel.Gaussian, 1, nil},
		{"matern derivative ok", kernel.Matern12Derivative, 0.01, nil},
		{"zero sigma", kernel.Gaussian, 0, kernel.ErrInvalidParameter},
		{"negative sigma", kernel.Matern12, -1, kernel.ErrInvalidParameter},
		{"nan sigma", kernel.Matern12, math.NaN(), kernel.ErrInvalidParameter},
		{"inf sigma", kernel.Gaussian, math.Inf(1), kernel.ErrInvalidParameter},
		{"unknown variant", kernel.Variant(9), 1, kernel.ErrUnknownVariant},
		{"zero variant", kernel.Variant(0), 1, kernel.ErrUnknownVariant},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			k, err := kernel.New(tc.variant, tc.sigma)
			if tc.wantErr == nil {
				require.NoError(t, err)
				require.Equal(t, tc.sigma, k.Sigma())
				require.Equal(t, tc.variant, k.Variant())
				return
			}
			require.Error(t, err)
			require.Truef(t, errors.Is(err, tc.wantErr), "expected errors.Is(%v, %v)", err, tc.wantErr)
			require.True(t, errors.Is(err, fastadj.ErrInvalidParameter))
		})
	}
}

// TestParseVariant covers canonical names, legacy aliases and failures.
func TestParseVariant(t *testing.T) {
	t.Parallel()

	cases := map[string]kernel.Variant{
		"gaussian":            kernel.Gaussian,
		" Gaussian ":          kernel.Gaussian,
		"gaussian-derivative": kernel.GaussianDerivative,
		"xx_gaussian":         kernel.GaussianDerivative,
		"matern12":            kernel.Matern12,
		"laplacian_rbf":       kernel.Matern12,
		"matern12-derivative": kernel.Matern12Derivative,
	}
	for in, want := range cases {
		got, err := kernel.ParseVariant(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
	}

	_, err := kernel.ParseVariant("cauchy")
	require.ErrorIs(t, err, kernel.ErrUnknownVariant)

	for _, v := range kernel.Variants() {
		back, err := kernel.ParseVariant(v.String())
		require.NoError(t, err)
		require.Equal(t, v, back)
	}
	require.Equal(t, 1, int(kernel.Gaussian))
	require.Equal(t, 3, int(kernel.Matern12))
}

// TestEval checks closed forms and values at the origin.
func TestEval(t *testing.T) {
	t.Parallel()

	const sigma = 0.7
	r := 0.45
	u := r / sigma

	want := map[kernel.Variant]float64{
		kernel.Gaussian:           math.Exp(-u * u / 2),
		kernel.GaussianDerivative: -u * u * math.Exp(-u*u/2),
		kernel.Matern12:           math.Exp(-u),
		kernel.Matern12Derivative: -u * math.Exp(-u),
	}
	origin := map[kernel.Variant]float64{
		kernel.Gaussian:           1,
		kernel.GaussianDerivative: 0,
		kernel.Matern12:           1,
		kernel.Matern12Derivative: 0,
	}
	for v, w := range want {
		k, err := kernel.New(v, sigma)
		require.NoError(t, err)
		assert.InDelta(t, w, k.Eval(r), 1e-15, v.String())
		assert.InDelta(t, origin[v], k.Eval(0), 1e-15, v.String())
	}
}

// TestDerivative compares every closed-form derivative with a central
// difference of the next lower order.
func TestDerivative(t *testing.T) {
	t.Parallel()

	const h = 1e-5
	for _, v := range kernel.Variants() {
		k, err := kernel.New(v, 0.5)
		require.NoError(t, err)
		for _, r := range []float64{0.2, 0.6, 1.1} {
			for order := 1; order <= 6; order++ {
				fd := (k.Derivative(r+h, order-1) - k.Derivative(r-h, order-1)) / (2 * h)
				got := k.Derivative(r, order)
				tol := 1e-5 * math.Max(1, math.Abs(got))
				assert.InDeltaf(t, fd, got, tol, "%s r=%g order=%d", v, r, order)
			}
		}
	}
}

// TestScaledInvariance checks that scaling r and σ together leaves values unchanged.
func TestScaledInvariance(t *testing.T) {
	t.Parallel()

	for _, v := range kernel.Variants() {
		k, err := kernel.New(v, 1.3)
		require.NoError(t, err)
		s := k.Scaled(0.25)
		require.InDelta(t, 1.3*0.25, s.Sigma(), 1e-15)
		for _, r := range []float64{0, 0.1, 0.9, 2.5} {
			assert.InDelta(t, k.Eval(r), s.Eval(r*0.25), 1e-14)
		}
	}
}

// TestRegularize_Validation covers every rejected parameter combination.
func TestRegularize_Validation(t *testing.T) {
	t.Parallel()

	g, err := kernel.New(kernel.Gaussian, 0.3)
	require.NoError(t, err)
	m, err := kernel.New(kernel.Matern12, 0.3)
	require.NoError(t, err)

	tests := []struct {
		name string
		k    kernel.Kernel
		reg  kernel.Regularization
	}{
		{"zero boundary", g, kernel.Regularization{BoundaryWidth: 0, Degree: 4}},
		{"boundary too wide", g, kernel.Regularization{BoundaryWidth: 0.5, Degree: 4}},
		{"negative inner", g, kernel.Regularization{InnerRadius: -0.1, BoundaryWidth: 0.1, Degree: 4}},
		{"inner overlaps boundary", g, kernel.Regularization{InnerRadius: 0.4, BoundaryWidth: 0.1, Degree: 4}},
		{"zero degree", g, kernel.Regularization{BoundaryWidth: 0.1, Degree: 0}},
		{"degree too large", g, kernel.Regularization{BoundaryWidth: 0.1, Degree: kernel.MaxDegree + 1}},
		{"matern without near field", m, kernel.Regularization{BoundaryWidth: 0.1, Degree: 4}},
		{"zero kernel", kernel.Kernel{}, kernel.Regularization{BoundaryWidth: 0.1, Degree: 4}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.k.Regularize(tc.reg)
			require.ErrorIs(t, err, kernel.ErrInvalidParameter)
		})
	}
}

// TestRegularized_Pieces checks continuity at the piece boundaries and the
// identity K_R = k on the far-field range.
func TestRegularized_Pieces(t *testing.T) {
	t.Parallel()

	const epsI, epsB = 0.1, 0.125
	for _, v := range kernel.Variants() {
		k, err := kernel.New(v, 0.2)
		require.NoError(t, err)
		g, err := k.Regularize(kernel.Regularization{InnerRadius: epsI, BoundaryWidth: epsB, Degree: 5})
		require.NoError(t, err)

		for _, r := range []float64{epsI, 0.2, 0.3, 0.5 - epsB} {
			assert.InDelta(t, k.Eval(r), g.Eval(r), 1e-14, "%s far field r=%g", v, r)
			assert.Zero(t, g.NearField(r))
		}
		// continuity at both inner and boundary nodes
		assert.InDelta(t, g.Eval(epsI), g.Eval(epsI-1e-9), 1e-7, v.String())
		assert.InDelta(t, g.Eval(0.5-epsB), g.Eval(0.5-epsB+1e-9), 1e-7, v.String())
		assert.InDelta(t, g.Eval(0.5), g.Eval(0.5-1e-9), 1e-7, v.String())
		assert.Equal(t, g.Eval(0.5), g.Eval(0.8))
		// near field restores the exact kernel
		for _, r := range []float64{0, 0.01, 0.05, 0.099} {
			assert.InDelta(t, k.Eval(r), g.Eval(r)+g.NearField(r), 1e-14)
		}
		assert.Equal(t, g.Eval(0), g.Origin())
	}
}

// TestCoefficients checks the exactness of the discrete expansion on grid
// points, symmetry, and accuracy off the grid.
func TestCoefficients(t *testing.T) {
	t.Parallel()

	const n = 32
	k, err := kernel.New(kernel.Gaussian, 0.3)
	require.NoError(t, err)
	g, err := k.Regularize(kernel.Regularization{BoundaryWidth: 0.125, Degree: 6})
	require.NoError(t, err)

	b, err := g.Coefficients(2, n)
	require.NoError(t, err)
	require.Len(t, b, n*n)

	series := func(z0, z1 float64) float64 {
		var s complex128
		for i := 0; i < n; i++ {
			l0 := i
			if l0 >= n/2 {
				l0 -= n
			}
			for j := 0; j < n; j++ {
				l1 := j
				if l1 >= n/2 {
					l1 -= n
				}
				s += complex(b[i*n+j], 0) * cmplx.Exp(complex(0, 2*math.Pi*(float64(l0)*z0+float64(l1)*z1)))
			}
		}
		return real(s)
	}

	// Σ b_l reproduces K_R(0); grid samples are reproduced exactly.
	assert.InDelta(t, g.Origin(), series(0, 0), 1e-12)
	assert.InDelta(t, g.Eval(math.Hypot(3.0/n, 5.0/n)), series(3.0/n, 5.0/n), 1e-12)

	// even symmetry b_l = b_{-l}
	for _, l := range [][2]int{{1, 2}, {5, 0}, {7, 9}} {
		i, j := l[0], l[1]
		assert.InDelta(t, b[i*n+j], b[((n-i)%n)*n+(n-j)%n], 1e-15)
	}

	// off-grid the truncated series approximates K_R
	for _, z := range [][2]float64{{0.1, 0.05}, {-0.17, 0.11}, {0.013, -0.2}} {
		assert.InDelta(t, g.Eval(math.Hypot(z[0], z[1])), series(z[0], z[1]), 1e-3)
	}

	_, err = g.Coefficients(2, 15)
	require.ErrorIs(t, err, kernel.ErrInvalidParameter)
	_, err = g.Coefficients(0, 16)
	require.ErrorIs(t, err, kernel.ErrInvalidParameter)
}
