// SPDX-License-Identifier: MIT
// Package prescaledfastadj: shared sentinel error taxonomy.
//
// Every sub-package aliases these sentinels in its own errors.go so that callers
// can match failures with errors.Is regardless of which layer produced them.
// Sentinels are never returned bare from public entry points: call sites wrap them
// with an operation tag, fmt.Errorf("<Op>: %w", ErrX).

package prescaledfastadj

import "errors"

var (
	// ErrInvalidParameter reports structurally invalid input: a non-positive
	// bandwidth, an empty or ragged point set, an unknown kernel or accuracy
	// profile, an out-of-range eigenpair count. Always fatal to the call.
	ErrInvalidParameter = errors.New("fastadj: invalid parameter")

	// ErrDimensionMismatch reports a vector whose length differs from the
	// number of points the operator was built for. Fatal to that call only.
	ErrDimensionMismatch = errors.New("fastadj: dimension mismatch")

	// ErrNotConverged reports that an iterative routine hit its iteration cap.
	// It is recoverable: the routine still returns its best estimate.
	ErrNotConverged = errors.New("fastadj: iteration did not converge")
)
