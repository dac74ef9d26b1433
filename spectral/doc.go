// SPDX-License-Identifier: MIT

// Package spectral analyses the normalized graph Laplacian
//
//	L = I − D^{−1/2}·K·D^{−1/2},  D = diag(K·1),
//
// of a kernel adjacency matrix K that is only reachable through a matvec
// oracle (Operator). Nothing in this package forms K.
//
// What:
//   - NormalizedLaplacian wraps an Operator and applies L.
//   - LaplacianNorm estimates ‖L‖₂ by power iteration with a Rayleigh
//     quotient stopping rule.
//   - NormalizedEigs returns the k smallest eigenpairs of L with a
//     thick-restart Lanczos method and full re-orthogonalization, run on the
//     shifted operator 2I − L so that the wanted pairs are the largest.
//
// Conventions:
//   - Eigenvalues are returned in ascending order; the eigenvector matrix is
//     n×k with orthonormal columns, each column signed so that its entry of
//     largest magnitude is positive.
//   - Start vectors come from a seeded PCG generator; results are
//     reproducible for a fixed seed and operator.
//   - Hitting an iteration cap is not fatal: the best estimate is returned
//     together with ErrNotConverged. ErrEigensolver is the one numerical
//     failure without a result.
package spectral
