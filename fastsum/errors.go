// SPDX-License-Identifier: MIT

package fastsum

import (
	"fmt"

	fastadj "github.com/wagnertheresa/prescaledFastAdj"
)

// Shared sentinels, aliased so callers can use either import with errors.Is.
var (
	// ErrInvalidParameter reports bad construction input.
	ErrInvalidParameter = fastadj.ErrInvalidParameter

	// ErrDimensionMismatch reports a vector whose length differs from the number of points.
	ErrDimensionMismatch = fastadj.ErrDimensionMismatch
)

// ErrUnknownProfile is returned by LookupProfile for names outside the table.
var ErrUnknownProfile = fmt.Errorf("fastsum: unknown accuracy profile: %w", ErrInvalidParameter)

// Operation tags used when wrapping errors.
const (
	opNewPlan = "NewPlan"
	opApply   = "Apply"
	opProfile = "LookupProfile"
)

// fastsumErrorf tags an error with the failing operation, keeping errors.Is intact.
func fastsumErrorf(op string, format string, args ...any) error {
	return fmt.Errorf("fastsum.%s: %w", op, fmt.Errorf(format, args...))
}
