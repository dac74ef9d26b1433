// SPDX-License-Identifier: MIT

package kernel

// MaxDegree bounds the number of matched derivatives p of a Regularization.
const MaxDegree = 24

// twoPointTaylor is the polynomial P of degree 2p−1 that matches a function
// and its first p−1 derivatives at both ends of [a, b]:
//
//	P(x) = Σ_{j<p} Σ_{k<p−j} C(p−1+k, k) · [ fa_j/j!·(x−a)^j·((b−x)/h)^p·((x−a)/h)^k
//	                                      + fb_j/j!·(x−b)^j·((x−a)/h)^p·((b−x)/h)^k ]
//
// with h = b − a. Coefficients are stored pre-multiplied by h^j/j! so Eval
// works on the normalized coordinate s = (x−a)/h only.
type twoPointTaylor struct {
	a, h   float64
	p      int
	fa, fb []float64 // f^{(j)}·h^j/j!
	binom  []float64 // C(p−1+k, k), k < p
}

// newTwoPointTaylor builds the interpolant from raw derivatives
// fa[j] = f^{(j)}(a) and fb[j] = f^{(j)}(b), j < p = len(fa) = len(fb).
func newTwoPointTaylor(a, b float64, fa, fb []float64) *twoPointTaylor {
	p := len(fa)
	h := b - a
	t := &twoPointTaylor{
		a:     a,
		h:     h,
		p:     p,
		fa:    make([]float64, p),
		fb:    make([]float64, p),
		binom: make([]float64, p),
	}
	hj := 1.0 // h^j / j!
	for j := 0; j < p; j++ {
		if j > 0 {
			hj *= h / float64(j)
		}
		t.fa[j] = fa[j] * hj
		t.fb[j] = fb[j] * hj
	}
	c := 1.0
	for k := 0; k < p; k++ {
		if k > 0 {
			c = c * float64(p-1+k) / float64(k)
		}
		t.binom[k] = c
	}

	return t
}

// Eval returns P(x). Complexity: O(p).
func (t *twoPointTaylor) Eval(x float64) float64 {
	s := (x - t.a) / t.h
	q := 1 - s

	// partial sums A_m(z) = Σ_{k≤m} C(p−1+k,k) z^k for z = s and z = q
	var sumS, sumQ [MaxDegree]float64
	zs, zq := 1.0, 1.0
	accS, accQ := 0.0, 0.0
	for k := 0; k < t.p; k++ {
		accS += t.binom[k] * zs
		accQ += t.binom[k] * zq
		sumS[k], sumQ[k] = accS, accQ
		zs *= s
		zq *= q
	}
	sp, qp := 1.0, 1.0
	for k := 0; k < t.p; k++ {
		sp *= s
		qp *= q
	}

	var left, right float64
	sj, mqj := 1.0, 1.0 // s^j and (−q)^j = ((x−b)/h)^j
	for j := 0; j < t.p; j++ {
		left += t.fa[j] * sj * sumS[t.p-1-j]
		right += t.fb[j] * mqj * sumQ[t.p-1-j]
		sj *= s
		mqj *= -q
	}

	return qp*left + sp*right
}
