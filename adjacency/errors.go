// SPDX-License-Identifier: MIT

package adjacency

import (
	"fmt"

	fastadj "github.com/wagnertheresa/prescaledFastAdj"
	"github.com/wagnertheresa/prescaledFastAdj/spectral"
)

// Sentinels re-exported so callers need a single import for errors.Is.
var (
	ErrInvalidParameter  = fastadj.ErrInvalidParameter
	ErrDimensionMismatch = fastadj.ErrDimensionMismatch
	ErrNotConverged      = fastadj.ErrNotConverged
	ErrNonPositiveDegree = spectral.ErrNonPositiveDegree
	ErrEigensolver       = spectral.ErrEigensolver
)

const opNew = "New"

func adjacencyErrorf(op string, format string, args ...any) error {
	return fmt.Errorf("adjacency.%s: %w", op, fmt.Errorf(format, args...))
}
