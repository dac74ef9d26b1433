// SPDX-License-Identifier: MIT

package adjacency

import (
	"log/slog"

	"gonum.org/v1/gonum/mat"

	"github.com/wagnertheresa/prescaledFastAdj/fastsum"
	"github.com/wagnertheresa/prescaledFastAdj/kernel"
	"github.com/wagnertheresa/prescaledFastAdj/spectral"
)

// Matrix is the kernel adjacency matrix of a fixed point set,
// K[i,j] = k(‖xᵢ − xⱼ‖) for i ≠ j and K[i,i] = diagonal.
type Matrix struct {
	points   [][]float64
	kern     kernel.Kernel
	diagonal float64
	plan     *fastsum.Plan
}

// New builds a Matrix.
//
// Inputs:
//   - points: n×d finite coordinates, n ≥ 1, d ≥ 1, all rows of equal length.
//     The slice is copied.
//   - sigma: kernel bandwidth, finite and > 0.
//   - variant: one of the four kernel variants.
//   - profile: accuracy profile name ("rough", "default", "fine").
//   - diagonal: value of every K[i,i].
//
// Errors:
//   - ErrInvalidParameter for any invalid argument.
func New(points [][]float64, sigma float64, variant kernel.Variant, profile string, diagonal float64, opts ...Option) (*Matrix, error) {
	prof, err := fastsum.LookupProfile(profile)
	if err != nil {
		return nil, adjacencyErrorf(opNew, "%w", err)
	}

	return NewWithProfile(points, sigma, variant, prof, diagonal, opts...)
}

// NewWithProfile is New with explicit approximation parameters.
func NewWithProfile(points [][]float64, sigma float64, variant kernel.Variant, profile fastsum.Profile, diagonal float64, opts ...Option) (*Matrix, error) {
	k, err := kernel.New(variant, sigma)
	if err != nil {
		return nil, adjacencyErrorf(opNew, "%w", err)
	}
	cfg := gatherOptions(opts...)

	own := make([][]float64, len(points))
	for i, row := range points {
		own[i] = append([]float64(nil), row...)
	}
	plan, err := fastsum.NewPlan(own, k, profile, diagonal, cfg.plan...)
	if err != nil {
		return nil, adjacencyErrorf(opNew, "%w", err)
	}

	cfg.logger.Debug("adjacency matrix ready",
		slog.Int("n", plan.Len()),
		slog.Int("d", plan.Dim()),
		slog.String("kernel", variant.String()),
		slog.Float64("sigma", sigma),
		slog.String("profile", profile.Name),
	)

	return &Matrix{points: own, kern: k, diagonal: diagonal, plan: plan}, nil
}

// FromDense builds a Matrix from the rows of a gonum matrix.
func FromDense(points mat.Matrix, sigma float64, variant kernel.Variant, profile string, diagonal float64, opts ...Option) (*Matrix, error) {
	if points == nil {
		return nil, adjacencyErrorf(opNew, "nil point matrix: %w", ErrInvalidParameter)
	}
	r, c := points.Dims()
	rows := make([][]float64, r)
	for i := range rows {
		rows[i] = make([]float64, c)
		for j := range rows[i] {
			rows[i][j] = points.At(i, j)
		}
	}

	return New(rows, sigma, variant, profile, diagonal, opts...)
}

// Apply returns the approximation of K·v.
// Errors: ErrDimensionMismatch if len(v) != Len().
func (m *Matrix) Apply(v []float64) ([]float64, error) {
	return m.plan.Apply(v)
}

// Degree returns K·1. It is recomputed on every call.
func (m *Matrix) Degree() ([]float64, error) {
	ones := make([]float64, m.Len())
	for i := range ones {
		ones[i] = 1
	}

	return m.plan.Apply(ones)
}

// Len returns the number of points.
func (m *Matrix) Len() int { return m.plan.Len() }

// Dim returns the point dimension.
func (m *Matrix) Dim() int { return m.plan.Dim() }

// Sigma returns the kernel bandwidth.
func (m *Matrix) Sigma() float64 { return m.kern.Sigma() }

// Variant returns the kernel variant.
func (m *Matrix) Variant() kernel.Variant { return m.kern.Variant() }

// Profile returns the accuracy profile name.
func (m *Matrix) Profile() string { return m.plan.Profile().Name }

// Diagonal returns the diagonal replacement value.
func (m *Matrix) Diagonal() float64 { return m.diagonal }

// Stats returns the statistics of the underlying plan.
func (m *Matrix) Stats() fastsum.Stats { return m.plan.Stats() }

// Points returns a copy of the point set.
func (m *Matrix) Points() [][]float64 {
	out := make([][]float64, len(m.points))
	for i, row := range m.points {
		out[i] = append([]float64(nil), row...)
	}

	return out
}

// NormalizedLaplacianNorm estimates ‖I − D^{−1/2}·K·D^{−1/2}‖₂ by power
// iteration. A result paired with ErrNotConverged is still usable.
func (m *Matrix) NormalizedLaplacianNorm(opts ...spectral.Option) (spectral.NormEstimate, error) {
	return spectral.LaplacianNorm(m, opts...)
}

// NormalizedEigs returns the k smallest eigenpairs of the normalized
// Laplacian, eigenvalues ascending. Requires 1 ≤ k < Len(). With
// ErrNotConverged the best pairs found are still returned; with any other
// error the result is nil.
func (m *Matrix) NormalizedEigs(k int, opts ...spectral.Option) (*spectral.EigenResult, error) {
	return spectral.NormalizedEigs(m, k, opts...)
}
