// SPDX-License-Identifier: MIT

package kernel

import "math"

// Kernel is an immutable (variant, σ) pair. The zero value is not usable;
// construct kernels with New.
type Kernel struct {
	variant Variant
	sigma   float64
}

// New validates the variant and bandwidth and returns the kernel.
//
// Errors:
//   - ErrUnknownVariant if v is outside the closed set.
//   - ErrInvalidParameter if sigma is NaN, ±Inf or ≤ 0.
//
// Complexity: O(1).
func New(v Variant, sigma float64) (Kernel, error) {
	if !v.Valid() {
		return Kernel{}, kernelErrorf(opNew, "variant %d: %w", int(v), ErrUnknownVariant)
	}
	if math.IsNaN(sigma) || math.IsInf(sigma, 0) || sigma <= 0 {
		return Kernel{}, kernelErrorf(opNew, "sigma=%g must be finite and > 0: %w", sigma, ErrInvalidParameter)
	}

	return Kernel{variant: v, sigma: sigma}, nil
}

// Variant returns the kernel variant.
func (k Kernel) Variant() Variant { return k.variant }

// Sigma returns the bandwidth σ.
func (k Kernel) Sigma() float64 { return k.sigma }

// Smooth reports whether the kernel is smooth at the origin.
func (k Kernel) Smooth() bool { return k.variant.Smooth() }

// Scaled returns the same kernel with bandwidth σ·f. Scaling all points and σ
// by the same factor leaves every kernel value unchanged.
func (k Kernel) Scaled(f float64) Kernel {
	return Kernel{variant: k.variant, sigma: k.sigma * f}
}

// Eval returns k(r) for a distance r ≥ 0.
func (k Kernel) Eval(r float64) float64 {
	return k.Derivative(r, 0)
}

// Derivative returns the order-th derivative d^j k/dr^j at r ≥ 0.
//
// Implementation:
//   - Stage 1: move to u = r/σ; every derivative picks up a factor σ^{-j}.
//   - Stage 2: closed forms per variant. With g(u) = exp(−u²/2) and the
//     probabilists' Hermite polynomials He_j, g^{(j)} = (−1)^j He_j(u) g(u), and
//     by Leibniz (u²g)^{(j)} = u²g^{(j)} + 2j·u·g^{(j−1)} + j(j−1)·g^{(j−2)}.
//     For the exponential family (u^a e^{−u})^{(j)} is a first-degree polynomial
//     in u times e^{−u}.
//
// Complexity: O(order).
func (k Kernel) Derivative(r float64, order int) float64 {
	if order < 0 {
		return math.NaN()
	}
	u := r / k.sigma
	scale := math.Pow(k.sigma, -float64(order))
	sign := 1.0
	if order%2 == 1 {
		sign = -1
	}

	switch k.variant {
	case Gaussian:
		he := hermiteE(u, order)
		return scale * sign * he[order] * math.Exp(-0.5*u*u)

	case GaussianDerivative:
		he := hermiteE(u, order)
		j := float64(order)
		poly := u * u * he[order]
		if order >= 1 {
			poly -= 2 * j * u * he[order-1]
		}
		if order >= 2 {
			poly += j * (j - 1) * he[order-2]
		}
		return -scale * sign * poly * math.Exp(-0.5*u*u)

	case Matern12:
		return scale * sign * math.Exp(-u)

	case Matern12Derivative:
		// (−u e^{−u})^{(j)} = (−1)^{j+1} (u − j) e^{−u}
		return -scale * sign * (u - float64(order)) * math.Exp(-u)
	}

	return math.NaN()
}

// hermiteE returns He_0(u) … He_n(u) via He_{j+1} = u·He_j − j·He_{j−1}.
func hermiteE(u float64, n int) []float64 {
	he := make([]float64, n+1)
	he[0] = 1
	if n >= 1 {
		he[1] = u
	}
	for j := 1; j < n; j++ {
		he[j+1] = u*he[j] - float64(j)*he[j-1]
	}

	return he
}

// radial returns the value-only closure for the variant so hot loops do not
// branch on the variant per evaluation.
func (k Kernel) radial() func(r float64) float64 {
	inv := 1 / k.sigma
	switch k.variant {
	case Gaussian:
		return func(r float64) float64 {
			u := r * inv
			return math.Exp(-0.5 * u * u)
		}
	case GaussianDerivative:
		return func(r float64) float64 {
			u := r * inv
			return -u * u * math.Exp(-0.5*u*u)
		}
	case Matern12:
		return func(r float64) float64 { return math.Exp(-r * inv) }
	case Matern12Derivative:
		return func(r float64) float64 {
			u := r * inv
			return -u * math.Exp(-u)
		}
	}

	return func(float64) float64 { return math.NaN() }
}
