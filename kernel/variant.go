// SPDX-License-Identifier: MIT

package kernel

import "strings"

// Variant is the closed set of supported kernels. The numeric values are
// stable kernel codes and appear in serialized output.
type Variant int

const (
	// Gaussian is exp(−r²/(2σ²)).
	Gaussian Variant = iota + 1
	// GaussianDerivative is r·∂ᵣ exp(−r²/(2σ²)) = −(r²/σ²)·exp(−r²/(2σ²)).
	GaussianDerivative
	// Matern12 is the exponential kernel exp(−r/σ).
	Matern12
	// Matern12Derivative is r·∂ᵣ exp(−r/σ) = −(r/σ)·exp(−r/σ).
	Matern12Derivative
)

var variantNames = map[Variant]string{
	Gaussian:           "gaussian",
	GaussianDerivative: "gaussian-derivative",
	Matern12:           "matern12",
	Matern12Derivative: "matern12-derivative",
}

// aliases accepted by ParseVariant besides the canonical names.
var variantAliases = map[string]Variant{
	"xx_gaussian":         GaussianDerivative,
	"gaussian_derivative": GaussianDerivative,
	"laplacian_rbf":       Matern12,
	"exponential":         Matern12,
	"matern12_derivative": Matern12Derivative,
}

// String returns the canonical lower-case name.
func (v Variant) String() string {
	if s, ok := variantNames[v]; ok {
		return s
	}

	return "unknown"
}

// Valid reports whether v is one of the four supported kernels.
func (v Variant) Valid() bool {
	_, ok := variantNames[v]

	return ok
}

// Smooth reports whether the kernel is infinitely differentiable at the
// origin as a function of the point difference. The Matérn family has a kink
// at r = 0 and always needs a near-field correction.
func (v Variant) Smooth() bool {
	return v == Gaussian || v == GaussianDerivative
}

// NonNegative reports whether all kernel values are ≥ 0.
func (v Variant) NonNegative() bool {
	return v == Gaussian || v == Matern12
}

// ParseVariant resolves a canonical name or a known alias (case-insensitive).
func ParseVariant(s string) (Variant, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for v, name := range variantNames {
		if name == key {
			return v, nil
		}
	}
	if v, ok := variantAliases[key]; ok {
		return v, nil
	}

	return 0, kernelErrorf(opParse, "%q: %w", s, ErrUnknownVariant)
}

// Variants lists the supported kernels in code order.
func Variants() []Variant {
	return []Variant{Gaussian, GaussianDerivative, Matern12, Matern12Derivative}
}
