// SPDX-License-Identifier: MIT

package spectral

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// EigenResult holds the k smallest eigenpairs of L.
type EigenResult struct {
	// Values are the eigenvalues of L in ascending order.
	Values []float64
	// Vectors is n×k; column i belongs to Values[i].
	Vectors *mat.Dense
	// Restarts is the number of thick restarts performed.
	Restarts int
	// MatVecs counts applications of L.
	MatVecs int
	// Converged reports whether every pair met the residual tolerance.
	Converged bool
}

// AdjacencyValues returns 1 − λ, the eigenvalues of the normalized adjacency
// D^{−1/2}·K·D^{−1/2} in descending order.
func (r *EigenResult) AdjacencyValues() []float64 {
	out := make([]float64, len(r.Values))
	for i, v := range r.Values {
		out[i] = 1 - v
	}

	return out
}

// NormalizedEigs computes the k smallest eigenpairs of the normalized
// Laplacian of op.
//
// Implementation:
//   - Stage 1: validate 1 ≤ k < n and build L.
//   - Stage 2: run thick-restart Lanczos on M = 2I − L, whose largest
//     eigenvalues θ are 2 − λ for the smallest λ of L. Every new basis
//     vector is orthogonalized twice against the whole basis.
//   - Stage 3: after each sweep the projected matrix is diagonalized with
//     gonum's EigenSym; a Ritz pair is accepted when |β·s_m| ≤ tol·max(1,|θ|).
//   - Stage 4: restart with the k + (m−k)/2 best Ritz vectors and the
//     residual direction, until all k pairs are accepted or the restart cap
//     is reached.
//
// Errors:
//   - ErrInvalidParameter unless 1 ≤ k < n.
//   - errors from NewNormalizedLaplacian and op.Apply.
//   - ErrNotConverged together with the best Ritz pairs at the restart cap,
//     or with the previous sweep's pairs when the projected eigenproblem
//     fails after the first sweep.
//   - ErrEigensolver, with a nil result, when it fails on the first sweep.
func NormalizedEigs(op Operator, k int, opts ...Option) (*EigenResult, error) {
	n := op.Len()
	if k < 1 || k >= n {
		return nil, spectralErrorf(opEigs, "k=%d must satisfy 1 ≤ k < n=%d: %w", k, n, ErrInvalidParameter)
	}
	o := gatherOptions(opts...)
	l, err := NewNormalizedLaplacian(op)
	if err != nil {
		return nil, spectralErrorf(opEigs, "%w", err)
	}

	z := &lanczos{
		op:  shifted{l},
		n:   n,
		k:   k,
		m:   subspaceSize(n, k, o.ncv),
		tol: o.tolerance(DefaultEigTolerance),
		rng: newRand(o.seed),
	}
	res, err := z.run(o.maxRestarts)
	if err != nil {
		if res == nil {
			return nil, spectralErrorf(opEigs, "%w", err)
		}
		o.logger.Warn("lanczos stopped early",
			slog.Int("k", k),
			slog.Int("restarts", res.Restarts),
			slog.String("error", err.Error()))
		return res, spectralErrorf(opEigs, "%w", err)
	}
	if !res.Converged {
		o.logger.Warn("lanczos hit its restart cap",
			slog.Int("k", k),
			slog.Int("restarts", res.Restarts),
			slog.Int("matvecs", res.MatVecs))
		return res, spectralErrorf(opEigs, "%d restarts: %w", res.Restarts, ErrNotConverged)
	}
	o.logger.Debug("lanczos converged",
		slog.Int("k", k),
		slog.Int("ncv", z.m),
		slog.Int("restarts", res.Restarts),
		slog.Int("matvecs", res.MatVecs))

	return res, nil
}

// subspaceSize picks the basis size ncv: n if 2k ≥ n, 20 if k < 10 and
// 2k+1 otherwise, clamped to [k+1, n]. requested > 0 overrides the rule.
func subspaceSize(n, k, requested int) int {
	m := requested
	if m == 0 {
		switch {
		case 2*k >= n:
			m = n
		case k < 10:
			m = 20
		default:
			m = 2*k + 1
		}
	}

	return min(max(m, k+1), n)
}

// shifted applies 2I − L.
type shifted struct{ l *NormalizedLaplacian }

func (s shifted) Len() int { return s.l.Len() }

func (s shifted) Apply(v []float64) ([]float64, error) {
	lv, err := s.l.Apply(v)
	if err != nil {
		return nil, err
	}
	for i := range lv {
		lv[i] = 2*v[i] - lv[i]
	}

	return lv, nil
}

// breakdownRatio marks a new Krylov direction as lost when its norm after
// orthogonalization falls below this fraction of ‖M·v‖.
const breakdownRatio = 1e-12

type lanczos struct {
	op      Operator
	n, k, m int
	tol     float64
	rng     *rand.Rand

	// factorize diagonalizes the projected matrix; nil selects eigenSym.
	factorize func(*mat.SymDense) ([]float64, *mat.Dense, bool)

	basis   [][]float64 // m+1 orthonormal vectors
	h       [][]float64 // (m+1)×m projection coefficients
	matvecs int
}

// run returns a nil result only when no sweep has produced Ritz pairs yet.
// A failing eigensolver on a later sweep returns the previous sweep's pairs
// with ErrNotConverged.
func (z *lanczos) run(maxRestarts int) (*EigenResult, error) {
	z.basis = make([][]float64, z.m+1)
	z.basis[0] = randomUnit(z.rng, z.n)
	z.resetH()

	var last *EigenResult
	from := 0
	for restart := 0; ; restart++ {
		if err := z.extend(from); err != nil {
			return nil, err
		}

		theta, s, err := z.ritz()
		if err != nil {
			if last == nil {
				return nil, err
			}
			return last, fmt.Errorf("%w after %d restarts: %w", ErrNotConverged, last.Restarts, err)
		}
		beta := z.h[z.m][z.m-1]

		converged := 0
		for i := 0; i < z.k; i++ {
			c := z.m - 1 - i
			if math.Abs(beta*s.At(z.m-1, c)) <= z.tol*math.Max(1, math.Abs(theta[c])) {
				converged++
			}
		}
		if converged == z.k || restart == maxRestarts {
			return z.result(theta, s, restart, converged == z.k), nil
		}

		last = z.result(theta, s, restart, false)
		from = z.restart(theta, s, beta)
	}
}

func (z *lanczos) resetH() {
	z.h = make([][]float64, z.m+1)
	for i := range z.h {
		z.h[i] = make([]float64, z.m)
	}
}

// extend fills basis[from+1 … m] and columns from … m−1 of h.
func (z *lanczos) extend(from int) error {
	for j := from; j < z.m; j++ {
		w, err := z.op.Apply(z.basis[j])
		if err != nil {
			return err
		}
		z.matvecs++

		scale := floats.Norm(w, 2)
		for pass := 0; pass < 2; pass++ {
			for i := 0; i <= j; i++ {
				c := floats.Dot(z.basis[i], w)
				floats.AddScaled(w, -c, z.basis[i])
				z.h[i][j] += c
			}
		}

		beta := floats.Norm(w, 2)
		if beta <= breakdownRatio*scale {
			// invariant subspace found; continue with a fresh direction
			z.h[j+1][j] = 0
			z.basis[j+1] = z.orthogonalRandom(j + 1)
			continue
		}
		z.h[j+1][j] = beta
		floats.Scale(1/beta, w)
		z.basis[j+1] = w
	}

	return nil
}

// orthogonalRandom returns a unit vector orthogonal to basis[:count], or the
// zero vector when the basis already spans R^n.
func (z *lanczos) orthogonalRandom(count int) []float64 {
	if count >= z.n {
		return make([]float64, z.n)
	}
	for attempt := 0; attempt < 8; attempt++ {
		x := randomUnit(z.rng, z.n)
		for pass := 0; pass < 2; pass++ {
			for i := 0; i < count; i++ {
				floats.AddScaled(x, -floats.Dot(z.basis[i], x), z.basis[i])
			}
		}
		if nx := floats.Norm(x, 2); nx > 1e-8 {
			floats.Scale(1/nx, x)
			return x
		}
	}

	return make([]float64, z.n)
}

// ritz diagonalizes the symmetric part of the leading m×m block of h.
// Values are ascending; column c of s is the eigenvector of values[c].
func (z *lanczos) ritz() ([]float64, *mat.Dense, error) {
	t := mat.NewSymDense(z.m, nil)
	for i := 0; i < z.m; i++ {
		for j := i; j < z.m; j++ {
			t.SetSym(i, j, (z.h[i][j]+z.h[j][i])/2)
		}
	}
	factorize := z.factorize
	if factorize == nil {
		factorize = eigenSym
	}
	values, s, ok := factorize(t)
	if !ok {
		return nil, nil, fmt.Errorf("%d×%d matrix: %w", z.m, z.m, ErrEigensolver)
	}

	return values, s, nil
}

func eigenSym(t *mat.SymDense) ([]float64, *mat.Dense, bool) {
	var es mat.EigenSym
	if !es.Factorize(t, true) {
		return nil, nil, false
	}
	s := new(mat.Dense)
	es.VectorsTo(s)

	return es.Values(nil), s, true
}

// vector returns the Ritz vector Σ_i s[i,c]·basis[i].
func (z *lanczos) vector(s *mat.Dense, c int) []float64 {
	y := make([]float64, z.n)
	for i := 0; i < z.m; i++ {
		floats.AddScaled(y, s.At(i, c), z.basis[i])
	}

	return y
}

// restart compresses the basis to the keep largest Ritz pairs plus the
// residual direction and returns the index to continue from.
func (z *lanczos) restart(theta []float64, s *mat.Dense, beta float64) int {
	keep := min(z.k+(z.m-z.k)/2, z.m-1)

	next := make([][]float64, z.m+1)
	for i := 0; i < keep; i++ {
		next[i] = z.vector(s, z.m-1-i)
	}
	next[keep] = z.basis[z.m]

	z.resetH()
	for i := 0; i < keep; i++ {
		c := z.m - 1 - i
		z.h[i][i] = theta[c]
		z.h[keep][i] = beta * s.At(z.m-1, c)
	}
	z.basis = next

	return keep
}

func (z *lanczos) result(theta []float64, s *mat.Dense, restarts int, converged bool) *EigenResult {
	res := &EigenResult{
		Values:    make([]float64, z.k),
		Vectors:   mat.NewDense(z.n, z.k, nil),
		Restarts:  restarts,
		MatVecs:   z.matvecs,
		Converged: converged,
	}
	for i := 0; i < z.k; i++ {
		c := z.m - 1 - i
		y := z.vector(s, c)
		if y[floats.MaxIdx(absAll(y))] < 0 {
			floats.Scale(-1, y)
		}
		res.Vectors.SetCol(i, y)
		res.Values[i] = 2 - theta[c]
	}

	return res
}

func absAll(x []float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = math.Abs(v)
	}

	return out
}
