// SPDX-License-Identifier: MIT

package kernel

import (
	"fmt"

	fastadj "github.com/wagnertheresa/prescaledFastAdj"
)

// ErrInvalidParameter aliases the shared sentinel so errors.Is works across layers.
var ErrInvalidParameter = fastadj.ErrInvalidParameter

// ErrUnknownVariant is returned for kernel identifiers outside the closed set.
var ErrUnknownVariant = fmt.Errorf("kernel: unknown variant: %w", ErrInvalidParameter)

// Operation tags used when wrapping errors.
const (
	opNew          = "New"
	opParse        = "ParseVariant"
	opRegularize   = "Regularize"
	opCoefficients = "Coefficients"
)

// kernelErrorf tags err with the failing operation, keeping errors.Is intact.
func kernelErrorf(op string, format string, args ...any) error {
	return fmt.Errorf("kernel.%s: %w", op, fmt.Errorf(format, args...))
}
