// SPDX-License-Identifier: MIT

package spectral

import (
	"errors"
	"fmt"

	fastadj "github.com/wagnertheresa/prescaledFastAdj"
)

// Shared sentinels.
var (
	ErrInvalidParameter  = fastadj.ErrInvalidParameter
	ErrDimensionMismatch = fastadj.ErrDimensionMismatch
	ErrNotConverged      = fastadj.ErrNotConverged
)

// ErrNonPositiveDegree is returned when D = diag(K·1) has an entry ≤ 0 or NaN,
// which leaves D^{−1/2} undefined. Derivative kernels always trigger it.
var ErrNonPositiveDegree = fmt.Errorf("spectral: non-positive degree: %w", ErrInvalidParameter)

// ErrEigensolver is returned when the dense eigensolver fails on the projected
// Lanczos matrix before any Ritz pairs exist. A failure after the first sweep
// is reported as ErrNotConverged with the previous sweep's pairs instead.
var ErrEigensolver = errors.New("spectral: projected eigenproblem failed")

const (
	opLaplacian = "NewNormalizedLaplacian"
	opNorm      = "LaplacianNorm"
	opEigs      = "NormalizedEigs"
	opResiduals = "Residuals"
)

func spectralErrorf(op string, format string, args ...any) error {
	return fmt.Errorf("spectral.%s: %w", op, fmt.Errorf(format, args...))
}
