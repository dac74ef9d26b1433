// SPDX-License-Identifier: MIT

package fastsum

import "math"

// windowShape returns b = (2σₒ/(2σₒ−1))·m/π with oversampling σₒ = n_g/N,
// the Gaussian window parameter that balances truncation and aliasing.
func windowShape(ng, bandwidth, m int) float64 {
	so := float64(ng) / float64(bandwidth)

	return 2 * so / (2*so - 1) * float64(m) / math.Pi
}

// windowTransform is n_g·ĉ(l) for the window φ(x) = exp(−(n_g x)²/b) and
// squared, since the window is applied twice (spread and gather):
// π·b·exp(−2b·π²·l²/n_g²).
func windowTransform(l float64, ng int, b float64) float64 {
	z := math.Pi * l / float64(ng)

	return math.Pi * b * math.Exp(-2*b*z*z)
}

// buildWindows tabulates, for every point and axis, the 2m+2 grid indices
// t = ⌊n_g x⌋ − m, …, ⌊n_g x⌋ + m + 1 (wrapped modulo n_g) and the weights
// exp(−(n_g x − t)²/b).
func (p *Plan) buildWindows() {
	m, w, ng := p.profile.Window, p.width, p.ng
	p.index = make([]int, p.n*p.d*w)
	p.weights = make([]float64, p.n*p.d*w)
	for e, x := range p.coords {
		u := float64(ng) * x
		t0 := int(math.Floor(u)) - m
		base := e * w
		for i := 0; i < w; i++ {
			t := t0 + i
			diff := u - float64(t)
			p.weights[base+i] = math.Exp(-diff * diff / p.shape)
			p.index[base+i] = ((t % ng) + ng) % ng
		}
	}
}

// window calls fn for each of the width^d grid cells supporting point j, in
// row-major order. ctr is scratch of length d.
func (p *Plan) window(j int, ctr []int, fn func(flat int, w float64)) {
	d, w := p.d, p.width
	base := j * d * w
	for a := range ctr {
		ctr[a] = 0
	}
	for {
		flat, wt := 0, 1.0
		for a := 0; a < d; a++ {
			e := base + a*w + ctr[a]
			flat = flat*p.ng + p.index[e]
			wt *= p.weights[e]
		}
		fn(flat, wt)

		a := d - 1
		for ; a >= 0; a-- {
			ctr[a]++
			if ctr[a] < w {
				break
			}
			ctr[a] = 0
		}
		if a < 0 {
			return
		}
	}
}
