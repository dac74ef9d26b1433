// SPDX-License-Identifier: MIT

package fastsum

import (
	"log/slog"
	"math"
	"time"

	"github.com/wagnertheresa/prescaledFastAdj/internal/fftgrid"
	"github.com/wagnertheresa/prescaledFastAdj/kernel"
)

// MaxDim is the largest point dimension NewPlan accepts. The grid holds
// n_g^d complex values, 128³ for the fine profile.
const MaxDim = 3

// Plan is the immutable fast-summation state for one point set, kernel,
// profile and diagonal value. Build it with NewPlan.
type Plan struct {
	n, d     int
	profile  Profile
	kern     kernel.Kernel      // caller's kernel, original coordinates
	reg      *kernel.Regularized // kernel rescaled to the torus
	diagonal float64
	shift    float64 // diagonal − K_R(0)

	center []float64
	scale  float64
	coords []float64 // n×d normalized coordinates, row-major

	ng      int
	width   int     // 2m+2
	shape   float64 // window parameter b
	fft     *fftgrid.Transform
	mult    []float64 // n_g^d deconvolved coefficients, zero outside the retained cube
	index   []int     // n×d×width wrapped grid indices
	weights []float64 // n×d×width window values

	near      *cellList // nil when εI == 0
	nearPairs int

	workers int
	logger  *slog.Logger
}

// Stats summarizes a built plan.
type Stats struct {
	Points      int
	Dim         int
	Profile     string
	Bandwidth   int     // N
	GridSize    int     // n_g
	Window      int     // m
	Scale       float64 // factor mapping centered input coordinates onto the torus
	InnerRadius float64 // εI in normalized coordinates; 0 without near field
	NearPairs   int     // ordered pairs j ≠ k closer than εI
}

// NewPlan builds the summation plan.
//
// Implementation:
//   - Stage 1: validate points (non-empty, rectangular, finite, d ≤ MaxDim),
//     kernel, profile and diagonal.
//   - Stage 2: center at the bounding-box midpoint and scale into the ball of
//     radius ρ = ¼ − εB/2; the kernel bandwidth is scaled by the same factor.
//     Kernels still wider than the profile's target bandwidth after that are
//     shrunk further, together with the cloud, so that they decay before the
//     boundary shell.
//   - Stage 3: regularize the scaled kernel, compute its N^d Fourier
//     coefficients and divide them by the window transform.
//   - Stage 4: tabulate window indices and weights per point and axis.
//   - Stage 5: bucket points into a cell list of side εI when a near field
//     is needed.
//
// Errors:
//   - ErrInvalidParameter on any invalid input. No partial plan is returned.
func NewPlan(points [][]float64, k kernel.Kernel, profile Profile, diagonal float64, opts ...Option) (*Plan, error) {
	began := time.Now()
	n, d, err := validatePoints(points)
	if err != nil {
		return nil, err
	}
	if d > MaxDim {
		return nil, fastsumErrorf(opNewPlan, "dimension %d above %d: %w", d, MaxDim, ErrInvalidParameter)
	}
	if !k.Variant().Valid() || !(k.Sigma() > 0) || math.IsInf(k.Sigma(), 0) {
		return nil, fastsumErrorf(opNewPlan, "kernel %s with sigma %g: %w", k.Variant(), k.Sigma(), ErrInvalidParameter)
	}
	if err = profile.validate(); err != nil {
		return nil, err
	}
	if math.IsNaN(diagonal) || math.IsInf(diagonal, 0) {
		return nil, fastsumErrorf(opNewPlan, "diagonal %v must be finite: %w", diagonal, ErrInvalidParameter)
	}
	o := gatherOptions(opts...)

	p := &Plan{
		n:        n,
		d:        d,
		profile:  profile,
		kern:     k,
		diagonal: diagonal,
		ng:       profile.GridSize(),
		width:    2*profile.Window + 2,
		workers:  o.workers,
		logger:   o.logger,
	}
	p.normalize(points, k)

	scaled := k.Scaled(p.scale)
	p.reg, err = scaled.Regularize(kernel.Regularization{
		InnerRadius:   profile.innerRadius(scaled),
		BoundaryWidth: profile.BoundaryWidth,
		Degree:        profile.Degree,
	})
	if err != nil {
		return nil, fastsumErrorf(opNewPlan, "profile %q: %w", profile.Name, err)
	}
	p.shift = diagonal - p.reg.Origin()

	if p.fft, err = fftgrid.New(d, p.ng, p.workers); err != nil {
		return nil, fastsumErrorf(opNewPlan, "%v: %w", err, ErrInvalidParameter)
	}
	p.shape = windowShape(p.ng, profile.Bandwidth, profile.Window)
	if err = p.buildMultiplier(); err != nil {
		return nil, err
	}
	p.buildWindows()

	if eps := p.reg.InnerRadius(); eps > 0 {
		p.near = newCellList(p.coords, d, eps, profile.Radius())
		if p.nearPairs, err = p.countNearPairs(); err != nil {
			return nil, fastsumErrorf(opNewPlan, "near field: %w", err)
		}
	}

	p.logger.Debug("fastsum plan built",
		slog.Int("points", n),
		slog.Int("dim", d),
		slog.String("kernel", k.Variant().String()),
		slog.String("profile", profile.Name),
		slog.Int("grid", p.ng),
		slog.Float64("scale", p.scale),
		slog.Float64("inner_radius", p.reg.InnerRadius()),
		slog.Int("near_pairs", p.nearPairs),
		slog.Duration("elapsed", time.Since(began)),
	)

	return p, nil
}

// normalize fills center, scale and coords. The scale maps the cloud into the
// ball of radius ρ unless k would then be wider than the target bandwidth, in
// which case the cloud shrinks further.
func (p *Plan) normalize(points [][]float64, k kernel.Kernel) {
	d := p.d
	lo := append([]float64(nil), points[0]...)
	hi := append([]float64(nil), points[0]...)
	for _, row := range points[1:] {
		for a, x := range row {
			lo[a] = math.Min(lo[a], x)
			hi[a] = math.Max(hi[a], x)
		}
	}
	p.center = make([]float64, d)
	for a := range p.center {
		p.center[a] = lo[a] + (hi[a]-lo[a])/2
	}

	var radius float64
	for _, row := range points {
		var r2 float64
		for a, x := range row {
			dx := x - p.center[a]
			r2 += dx * dx
		}
		radius = math.Max(radius, math.Sqrt(r2))
	}
	p.scale = p.profile.targetSigma(k) / k.Sigma()
	if radius > 0 {
		p.scale = math.Min(p.scale, p.profile.Radius()/radius)
	}

	p.coords = make([]float64, p.n*d)
	for j, row := range points {
		for a, x := range row {
			p.coords[j*d+a] = (x - p.center[a]) * p.scale
		}
	}
}

// buildMultiplier stores b_l / Π_a ĉ(l_a) at the grid position of every
// retained frequency l ∈ [−N/2, N/2)^d.
func (p *Plan) buildMultiplier() error {
	bw := p.profile.Bandwidth
	coef, err := p.reg.Coefficients(p.d, bw)
	if err != nil {
		return fastsumErrorf(opNewPlan, "coefficients: %w", err)
	}

	// per-axis deconvolution factors, indexed by l mod N
	axis := make([]float64, bw)
	for i := range axis {
		l := i
		if l >= bw/2 {
			l -= bw
		}
		axis[i] = 1 / windowTransform(float64(l), p.ng, p.shape)
	}

	p.mult = make([]float64, p.fft.Len())
	idx := make([]int, p.d)
	for f, c := range coef {
		rem := f
		for a := p.d - 1; a >= 0; a-- {
			idx[a] = rem % bw
			rem /= bw
		}
		flat, factor := 0, c
		for _, i := range idx {
			g := i // l mod n_g
			if i >= bw/2 {
				g = p.ng - (bw - i)
			}
			flat = flat*p.ng + g
			factor *= axis[i]
		}
		p.mult[flat] = factor
	}

	return nil
}

// Len returns the number of points n.
func (p *Plan) Len() int { return p.n }

// Dim returns the point dimension d.
func (p *Plan) Dim() int { return p.d }

// Profile returns the accuracy profile the plan was built with.
func (p *Plan) Profile() Profile { return p.profile }

// Kernel returns the kernel in the caller's coordinates.
func (p *Plan) Kernel() kernel.Kernel { return p.kern }

// Diagonal returns the diagonal replacement value.
func (p *Plan) Diagonal() float64 { return p.diagonal }

// Stats reports grid and near-field statistics.
func (p *Plan) Stats() Stats {
	return Stats{
		Points:      p.n,
		Dim:         p.d,
		Profile:     p.profile.Name,
		Bandwidth:   p.profile.Bandwidth,
		GridSize:    p.ng,
		Window:      p.profile.Window,
		Scale:       p.scale,
		InnerRadius: p.reg.InnerRadius(),
		NearPairs:   p.nearPairs,
	}
}
