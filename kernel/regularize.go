// SPDX-License-Identifier: MIT

package kernel

// Regularization parameters of the periodic kernel K_R.
type Regularization struct {
	// InnerRadius εI ≥ 0 is the near-field cutoff. Zero disables the inner
	// polynomial; only valid for kernels that are smooth at the origin.
	InnerRadius float64

	// BoundaryWidth εB ∈ (0, ½) is the width of the shell ½−εB ≤ r ≤ ½ on
	// which K_R is blended into a constant.
	BoundaryWidth float64

	// Degree p ∈ [1, MaxDegree] is the number of matched derivatives at every
	// interpolation node; both polynomials have degree 2p−1 and K_R is C^{p−1}.
	Degree int
}

// Regularized is the smooth, 1-periodic surrogate K_R of a kernel:
//
//	K_R(r) = T_I(r)   for r < εI          (even two-point Taylor on [−εI, εI])
//	K_R(r) = k(r)     for εI ≤ r ≤ ½−εB
//	K_R(r) = T_B(r)   for ½−εB < r < ½    (two-point Taylor to a constant)
//	K_R(r) = k(½−εB)  for r ≥ ½
//
// Point differences of a cloud inside the ball of radius ¼−εB/2 never reach
// the boundary shell, so K_R equals k there except in the near field.
// Regularized is immutable and safe for concurrent use.
type Regularized struct {
	kernel   Kernel
	radial   func(float64) float64
	reg      Regularization
	inner    *twoPointTaylor // nil when εI == 0
	boundary *twoPointTaylor
	outer    float64
}

// Regularize builds K_R for k.
//
// Implementation:
//   - Stage 1: validate εB ∈ (0,½), εI ∈ [0, ½−εB), 1 ≤ p ≤ MaxDegree, and
//     reject εI == 0 for kernels with a kink at the origin.
//   - Stage 2: inner polynomial from derivatives at ±εI; at −εI the derivatives
//     of r ↦ k(|r|) are (−1)^j k^{(j)}(εI), which makes the interpolant even.
//   - Stage 3: boundary polynomial from derivatives at ½−εB, and the constant
//     k(½−εB) with vanishing derivatives at ½.
//
// Complexity: O(p²).
func (k Kernel) Regularize(r Regularization) (*Regularized, error) {
	if !k.variant.Valid() || k.sigma <= 0 {
		return nil, kernelErrorf(opRegularize, "uninitialised kernel: %w", ErrInvalidParameter)
	}
	if !(r.BoundaryWidth > 0 && r.BoundaryWidth < 0.5) {
		return nil, kernelErrorf(opRegularize, "boundary width %g outside (0, 0.5): %w", r.BoundaryWidth, ErrInvalidParameter)
	}
	if !(r.InnerRadius >= 0 && r.InnerRadius < 0.5-r.BoundaryWidth) {
		return nil, kernelErrorf(opRegularize, "inner radius %g outside [0, %g): %w", r.InnerRadius, 0.5-r.BoundaryWidth, ErrInvalidParameter)
	}
	if r.Degree < 1 || r.Degree > MaxDegree {
		return nil, kernelErrorf(opRegularize, "degree %d outside [1, %d]: %w", r.Degree, MaxDegree, ErrInvalidParameter)
	}
	if r.InnerRadius == 0 && !k.Smooth() {
		return nil, kernelErrorf(opRegularize, "%s needs a positive inner radius: %w", k.variant, ErrInvalidParameter)
	}

	p := r.Degree
	out := &Regularized{kernel: k, radial: k.radial(), reg: r}

	if r.InnerRadius > 0 {
		fa := make([]float64, p)
		fb := make([]float64, p)
		for j := 0; j < p; j++ {
			d := k.Derivative(r.InnerRadius, j)
			fb[j] = d
			if j%2 == 1 {
				d = -d
			}
			fa[j] = d
		}
		out.inner = newTwoPointTaylor(-r.InnerRadius, r.InnerRadius, fa, fb)
	}

	a := 0.5 - r.BoundaryWidth
	fa := make([]float64, p)
	fb := make([]float64, p)
	for j := 0; j < p; j++ {
		fa[j] = k.Derivative(a, j)
	}
	out.outer = fa[0]
	fb[0] = out.outer
	out.boundary = newTwoPointTaylor(a, 0.5, fa, fb)

	return out, nil
}

// Kernel returns the underlying kernel.
func (g *Regularized) Kernel() Kernel { return g.kernel }

// Regularization returns the parameters K_R was built with.
func (g *Regularized) Regularization() Regularization { return g.reg }

// InnerRadius returns εI.
func (g *Regularized) InnerRadius() float64 { return g.reg.InnerRadius }

// Eval returns K_R(r) for r ≥ 0.
func (g *Regularized) Eval(r float64) float64 {
	switch {
	case r < g.reg.InnerRadius:
		return g.inner.Eval(r)
	case r <= 0.5-g.reg.BoundaryWidth:
		return g.radial(r)
	case r < 0.5:
		return g.boundary.Eval(r)
	default:
		return g.outer
	}
}

// Exact returns the true kernel value k(r).
func (g *Regularized) Exact(r float64) float64 { return g.radial(r) }

// NearField returns the correction k(r) − K_R(r) for 0 ≤ r < εI and 0
// otherwise. Callers skip the self pair, whose value is fixed by the
// diagonal replacement; coincident distinct points still get corrected.
func (g *Regularized) NearField(r float64) float64 {
	if r < 0 || r >= g.reg.InnerRadius {
		return 0
	}

	return g.radial(r) - g.inner.Eval(r)
}

// Origin returns K_R(0), the value the periodic expansion assigns to the
// self pair.
func (g *Regularized) Origin() float64 { return g.Eval(0) }
