// SPDX-License-Identifier: MIT

package spectral

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Residuals returns ‖L·u − λ·u‖₂ for every pair of res, with L applied
// through op exactly as NormalizedEigs does.
func Residuals(op Operator, res *EigenResult) ([]float64, error) {
	if res == nil || res.Vectors == nil {
		return nil, spectralErrorf(opResiduals, "nil result: %w", ErrInvalidParameter)
	}
	n, k := res.Vectors.Dims()
	if n != op.Len() || k != len(res.Values) {
		return nil, spectralErrorf(opResiduals, "result is %d×%d, operator has n=%d: %w", n, k, op.Len(), ErrDimensionMismatch)
	}
	l, err := NewNormalizedLaplacian(op)
	if err != nil {
		return nil, spectralErrorf(opResiduals, "%w", err)
	}

	out := make([]float64, k)
	u := make([]float64, n)
	for i := 0; i < k; i++ {
		mat.Col(u, i, res.Vectors)
		lu, err := l.Apply(u)
		if err != nil {
			return nil, spectralErrorf(opResiduals, "pair %d: %w", i, err)
		}
		floats.AddScaled(lu, -res.Values[i], u)
		out[i] = floats.Norm(lu, 2)
	}

	return out, nil
}
