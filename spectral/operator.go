// SPDX-License-Identifier: MIT

package spectral

import "gonum.org/v1/gonum/mat"

// Operator is a square linear map available only through matrix-vector
// products. Apply must not modify its argument and must return a fresh slice.
type Operator interface {
	Len() int
	Apply(v []float64) ([]float64, error)
}

// DenseOperator adapts an explicit symmetric matrix to Operator. It is meant
// for small problems and as a reference in tests.
type DenseOperator struct {
	a mat.Symmetric
}

// NewDenseOperator wraps a.
func NewDenseOperator(a mat.Symmetric) *DenseOperator {
	return &DenseOperator{a: a}
}

// Len returns the matrix order.
func (o *DenseOperator) Len() int { return o.a.SymmetricDim() }

// Apply returns a·v.
func (o *DenseOperator) Apply(v []float64) ([]float64, error) {
	n := o.Len()
	if len(v) != n {
		return nil, spectralErrorf("DenseOperator.Apply", "len(v)=%d, want %d: %w", len(v), n, ErrDimensionMismatch)
	}
	out := make([]float64, n)
	y := mat.NewVecDense(n, out)
	y.MulVec(o.a, mat.NewVecDense(n, v))

	return out, nil
}
