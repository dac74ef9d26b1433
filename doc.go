// Package prescaledfastadj is a toolkit for fast matrix-vector products with dense
// kernel adjacency matrices over low-dimensional point clouds, and for the spectral
// analysis of the associated normalized graph Laplacian.
//
// 🚀 What is inside?
//
//	A pure-Go numerical core that never materialises the n×n kernel matrix:
//		• kernel/    — the four kernel variants, their radial derivatives and the
//		               regularized periodic expansion used by the grid transform
//		• fastsum/   — NFFT-based fast summation plans and accuracy profiles
//		• adjacency/ — the AdjacencyMatrix facade: Apply, Degree, spectral helpers
//		• spectral/  — power iteration and thick-restart Lanczos over a matvec oracle
//		• cmd/fastadj — command line front-end over CSV point clouds
//		• examples/  — runnable scenarios (two-blob spectral clustering)
//
// ✨ Typical flow:
//
//	adj, err := adjacency.New(points, 1.0, kernel.Gaussian, "default", 0)
//	if err != nil { ... }
//	deg, _ := adj.Degree()                 // K·1
//	nrm, _ := adj.NormalizedLaplacianNorm() // ‖I − D^{-1/2} K D^{-1/2}‖₂
//	res, _ := adj.NormalizedEigs(6)         // 6 smallest eigenpairs of L
//
// Errors are shared sentinels (ErrInvalidParameter, ErrDimensionMismatch,
// ErrNotConverged) re-exported by every sub-package; match them with errors.Is.
//
//	go get github.com/wagnertheresa/prescaledFastAdj
package prescaledfastadj
