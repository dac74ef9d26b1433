// SPDX-License-Identifier: MIT

// Package adjacency is the entry point of the module: a Matrix owns a point
// set, a kernel specification and the fast-summation plan built from them,
// and exposes the adjacency matrix K only through matrix-vector products.
//
//	m, err := adjacency.New(points, 0.5, kernel.Gaussian, "default", 1)
//	deg, _ := m.Degree()                   // K·1
//	y, _ := m.Apply(v)                     // K·v
//	norm, _ := m.NormalizedLaplacianNorm() // ‖I − D^{−1/2}KD^{−1/2}‖
//	eig, _ := m.NormalizedEigs(6)          // 6 smallest eigenpairs of L
//
// A Matrix is immutable. Construction either succeeds completely or returns
// an error and no value. Apply may be called concurrently.
package adjacency
