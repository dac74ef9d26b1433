// SPDX-License-Identifier: MIT

package fastsum

import (
	"math"
	"sort"
	"strings"

	"github.com/wagnertheresa/prescaledFastAdj/kernel"
)

// Profile is a named bundle of approximation parameters. The table values
// returned by LookupProfile are the contract of each name: ‖Apply(v) − K·v‖₂
// stays below Tolerance·‖K·v‖₂ for every kernel and bandwidth, with signed or
// positive v, as long as σ is at most about 100 times the radius of the
// cloud. Beyond that the derivative kernels, which vanish at the origin,
// lose relative accuracy in proportion to (σ/R)².
type Profile struct {
	// Name identifies the profile in the table.
	Name string

	// Bandwidth N is the number of retained Fourier frequencies per axis (even).
	Bandwidth int

	// Window m is the truncated window half-width; the support has 2m+2 grid
	// points per axis.
	Window int

	// Degree p is the number of matched derivatives in the Taylor pieces of K_R.
	Degree int

	// BoundaryWidth εB is the width of the blending shell of K_R.
	BoundaryWidth float64

	// Tolerance is the declared relative error of Apply.
	Tolerance float64
}

// Profile names.
const (
	ProfileRough   = "rough"
	ProfileDefault = "default"
	ProfileFine    = "fine"
)

// profiles is the immutable lookup table; higher accuracy raises N, m and p together.
var profiles = map[string]Profile{
	ProfileRough:   {Name: ProfileRough, Bandwidth: 16, Window: 6, Degree: 4, BoundaryWidth: 0.125, Tolerance: 1e-2},
	ProfileDefault: {Name: ProfileDefault, Bandwidth: 32, Window: 8, Degree: 6, BoundaryWidth: 0.125, Tolerance: 1e-4},
	ProfileFine:    {Name: ProfileFine, Bandwidth: 64, Window: 10, Degree: 8, BoundaryWidth: 0.125, Tolerance: 1e-6},
}

// LookupProfile resolves a profile name (case-insensitive, surrounding spaces ignored).
func LookupProfile(name string) (Profile, error) {
	p, ok := profiles[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Profile{}, fastsumErrorf(opProfile, "%q: %w", name, ErrUnknownProfile)
	}

	return p, nil
}

// Profiles returns the table ordered from cheapest to most accurate.
func Profiles() []Profile {
	out := make([]Profile, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Bandwidth < out[j].Bandwidth })

	return out
}

// GridSize returns the oversampled grid length n_g, the smallest power of
// two with n_g ≥ 2N.
func (p Profile) GridSize() int {
	ng := 2
	for ng < 2*p.Bandwidth {
		ng *= 2
	}

	return ng
}

// Radius returns ρ = ¼ − εB/2, the largest radius of the ball the points are
// scaled into. Pairwise distances then stay below ½ − εB.
func (p Profile) Radius() float64 { return 0.25 - p.BoundaryWidth/2 }

// validate checks a possibly hand-built profile.
func (p Profile) validate() error {
	switch {
	case p.Bandwidth < 2 || p.Bandwidth%2 != 0:
		return fastsumErrorf(opNewPlan, "profile %q: bandwidth %d must be even and ≥ 2: %w", p.Name, p.Bandwidth, ErrInvalidParameter)
	case p.Window < 1 || 2*p.Window+2 > p.GridSize():
		return fastsumErrorf(opNewPlan, "profile %q: window %d outside [1, %d]: %w", p.Name, p.Window, p.GridSize()/2-1, ErrInvalidParameter)
	case p.Degree < 1 || p.Degree > kernel.MaxDegree:
		return fastsumErrorf(opNewPlan, "profile %q: degree %d outside [1, %d]: %w", p.Name, p.Degree, kernel.MaxDegree, ErrInvalidParameter)
	case !(p.BoundaryWidth > 0 && p.BoundaryWidth < 0.5):
		return fastsumErrorf(opNewPlan, "profile %q: boundary width %g outside (0, 0.5): %w", p.Name, p.BoundaryWidth, ErrInvalidParameter)
	case !(p.Tolerance > 0 && p.Tolerance < 1):
		return fastsumErrorf(opNewPlan, "profile %q: tolerance %g outside (0, 1): %w", p.Name, p.Tolerance, ErrInvalidParameter)
	case float64(p.Degree)/float64(p.Bandwidth) >= p.outerRadius():
		return fastsumErrorf(opNewPlan, "profile %q: near field p/N = %d/%d reaches the boundary shell: %w", p.Name, p.Degree, p.Bandwidth, ErrInvalidParameter)
	}

	return nil
}

// outerRadius is ½ − εB, where K_R starts blending into a constant.
func (p Profile) outerRadius() float64 { return 0.5 - p.BoundaryWidth }

// decay is ln(100/Tolerance): kernel tails and spectra are cut where they
// fall below Tolerance/100.
func (p Profile) decay() float64 { return math.Log(100 / p.Tolerance) }

// targetSigma is the largest bandwidth, in torus units, a kernel keeps after
// normalization. Wider kernels are shrunk together with the cloud so that
// they have decayed before the boundary shell.
//
// The Gaussian family balances the tail exp(−a²/2σ²) at a = ½ − εB against
// the spectrum exp(−π²σ²N²/2) at the edge of the frequency cube, which gives
// σ = √(a/(πN)). The Matérn family needs exp(−a/σ) ≤ Tolerance/100.
func (p Profile) targetSigma(k kernel.Kernel) float64 {
	a := p.outerRadius()
	if k.Smooth() {
		return math.Sqrt(a / (math.Pi * float64(p.Bandwidth)))
	}

	return a / p.decay()
}

// innerRadius picks εI for a kernel already scaled to the unit torus.
//
// The Matérn family has a kink at the origin and always gets εI = p/N.
// The Gaussian family is expanded without near field when its spectrum at
// the edge of the frequency cube is below Tolerance/100, σ'·N ≥ u/π with
// u = √(2·ln(100/Tolerance)). Narrower Gaussians get a near field wide
// enough for their tail to drop below Tolerance/100 as well, εI = u·σ', but
// never below p/N and never closer than 0.8·(½ − εB) to the boundary shell.
func (p Profile) innerRadius(k kernel.Kernel) float64 {
	near := float64(p.Degree) / float64(p.Bandwidth)
	if !k.Smooth() {
		return near
	}
	u := math.Sqrt(2 * p.decay())
	if k.Sigma()*float64(p.Bandwidth) >= u/math.Pi {
		return 0
	}

	return math.Min(math.Max(near, u*k.Sigma()), 0.8*p.outerRadius())
}
