// SPDX-License-Identifier: MIT

package fastsum

import "math"

// validatePoints checks a non-empty, rectangular, finite point set and
// returns (n, d).
func validatePoints(points [][]float64) (int, int, error) {
	if len(points) == 0 {
		return 0, 0, fastsumErrorf(opNewPlan, "empty point set: %w", ErrInvalidParameter)
	}
	d := len(points[0])
	if d == 0 {
		return 0, 0, fastsumErrorf(opNewPlan, "points have zero dimension: %w", ErrInvalidParameter)
	}
	for i, row := range points {
		if len(row) != d {
			return 0, 0, fastsumErrorf(opNewPlan, "row %d has %d coordinates, want %d: %w", i, len(row), d, ErrInvalidParameter)
		}
		for a, x := range row {
			if math.IsNaN(x) || math.IsInf(x, 0) {
				return 0, 0, fastsumErrorf(opNewPlan, "point %d coordinate %d is %v: %w", i, a, x, ErrInvalidParameter)
			}
		}
	}

	return len(points), d, nil
}

// validateVector checks the length of an Apply argument.
func validateVector(v []float64, n int) error {
	if len(v) != n {
		return fastsumErrorf(opApply, "len(v)=%d, want %d: %w", len(v), n, ErrDimensionMismatch)
	}

	return nil
}
