// SPDX-License-Identifier: MIT

package spectral

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// NormalizedLaplacian applies L = I − D^{−1/2}·K·D^{−1/2} through the
// operator K. The degrees are computed once at construction.
type NormalizedLaplacian struct {
	op      Operator
	degrees []float64
	dinv    []float64 // D^{−1/2}
}

// NewNormalizedLaplacian computes D = diag(K·1) with one operator call.
//
// Errors:
//   - ErrInvalidParameter for an empty operator.
//   - ErrNonPositiveDegree if some degree is ≤ 0 or NaN.
//   - any error returned by op.Apply.
func NewNormalizedLaplacian(op Operator) (*NormalizedLaplacian, error) {
	n := op.Len()
	if n < 1 {
		return nil, spectralErrorf(opLaplacian, "operator of size %d: %w", n, ErrInvalidParameter)
	}
	ones := make([]float64, n)
	for i := range ones {
		ones[i] = 1
	}
	deg, err := op.Apply(ones)
	if err != nil {
		return nil, spectralErrorf(opLaplacian, "degree: %w", err)
	}

	dinv := make([]float64, n)
	for i, d := range deg {
		if !(d > 0) || math.IsInf(d, 0) {
			return nil, spectralErrorf(opLaplacian, "degree[%d]=%g: %w", i, d, ErrNonPositiveDegree)
		}
		dinv[i] = 1 / math.Sqrt(d)
	}

	return &NormalizedLaplacian{op: op, degrees: deg, dinv: dinv}, nil
}

// Len returns n.
func (l *NormalizedLaplacian) Len() int { return len(l.dinv) }

// Degrees returns a copy of D's diagonal.
func (l *NormalizedLaplacian) Degrees() []float64 {
	return append([]float64(nil), l.degrees...)
}

// Apply returns L·v = v − D^{−1/2}·K(D^{−1/2}·v).
func (l *NormalizedLaplacian) Apply(v []float64) ([]float64, error) {
	if len(v) != len(l.dinv) {
		return nil, spectralErrorf("NormalizedLaplacian.Apply", "len(v)=%d, want %d: %w", len(v), len(l.dinv), ErrDimensionMismatch)
	}
	w := make([]float64, len(v))
	floats.MulTo(w, l.dinv, v)
	kw, err := l.op.Apply(w)
	if err != nil {
		return nil, err
	}
	floats.Mul(kw, l.dinv)
	floats.SubTo(kw, v, kw)

	return kw, nil
}
