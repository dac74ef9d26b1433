// SPDX-License-Identifier: MIT

package fastsum

import (
	"math"
	"sync/atomic"
)

// cellList buckets normalized points into cubic cells of side εI so that all
// partners closer than εI lie in the 3^d neighbouring cells.
type cellList struct {
	d      int
	radius float64 // εI
	lower  float64 // coordinate of the lower cube face
	cells  int     // cells per axis
	cell   []int   // n×d cell coordinates
	order  []int   // point indices grouped by cell
	begin  []int   // order[begin[c]:begin[c+1]] are the points of cell c
}

func newCellList(coords []float64, d int, radius, rho float64) *cellList {
	n := len(coords) / d
	c := &cellList{
		d:      d,
		radius: radius,
		lower:  -rho,
		cells:  int(math.Ceil(2*rho/radius)) + 1,
		cell:   make([]int, n*d),
		order:  make([]int, n),
	}
	total := 1
	for a := 0; a < d; a++ {
		total *= c.cells
	}
	c.begin = make([]int, total+1)

	flat := make([]int, n)
	for j := 0; j < n; j++ {
		f := 0
		for a := 0; a < d; a++ {
			ci := int((coords[j*d+a] - c.lower) / radius)
			ci = min(max(ci, 0), c.cells-1)
			c.cell[j*d+a] = ci
			f = f*c.cells + ci
		}
		flat[j] = f
		c.begin[f+1]++
	}
	for i := 1; i <= total; i++ {
		c.begin[i] += c.begin[i-1]
	}
	fill := append([]int(nil), c.begin[:total]...)
	for j, f := range flat {
		c.order[fill[f]] = j
		fill[f]++
	}

	return c
}

// neighbours calls fn for every point k ≠ j with ‖xⱼ − xₖ‖ < εI, passing the
// distance. Visiting order depends only on the cell layout. off is scratch
// of length d.
func (c *cellList) neighbours(coords []float64, j int, off []int, fn func(k int, r float64)) {
	d := c.d
	for a := range off {
		off[a] = -1
	}
	for {
		f, inside := 0, true
		for a := 0; a < d; a++ {
			ci := c.cell[j*d+a] + off[a]
			if ci < 0 || ci >= c.cells {
				inside = false
				break
			}
			f = f*c.cells + ci
		}
		if inside {
			for _, k := range c.order[c.begin[f]:c.begin[f+1]] {
				if k == j {
					continue
				}
				var r2 float64
				for a := 0; a < d; a++ {
					dx := coords[j*d+a] - coords[k*d+a]
					r2 += dx * dx
				}
				if r := math.Sqrt(r2); r < c.radius {
					fn(k, r)
				}
			}
		}

		a := d - 1
		for ; a >= 0; a-- {
			off[a]++
			if off[a] <= 1 {
				break
			}
			off[a] = -1
		}
		if a < 0 {
			return
		}
	}
}

// countNearPairs returns the number of ordered near pairs.
func (p *Plan) countNearPairs() (int, error) {
	var total atomic.Int64
	err := p.parallel(p.n, func(lo, hi int) error {
		off := make([]int, p.d)
		cnt := 0
		for j := lo; j < hi; j++ {
			p.near.neighbours(p.coords, j, off, func(int, float64) { cnt++ })
		}
		total.Add(int64(cnt))
		return nil
	})

	return int(total.Load()), err
}

// nearCorrection returns Σ_k (k − K_R)(‖xⱼ − xₖ‖)·v[k] over the near partners of j.
func (p *Plan) nearCorrection(j int, v []float64, off []int) float64 {
	var s float64
	p.near.neighbours(p.coords, j, off, func(k int, r float64) {
		s += p.reg.NearField(r) * v[k]
	})

	return s
}
