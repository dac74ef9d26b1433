// Package kernel is the kernel expansion library of the fast adjacency toolkit.
//
// 🚀 What does it provide?
//
//	A closed set of four radial kernels, all functions of u = r/σ only:
//	  • Gaussian            k(r) = exp(−u²/2)
//	  • GaussianDerivative  k(r) = −u²·exp(−u²/2)      (Euler derivative r·∂ᵣ of the Gaussian)
//	  • Matern12            k(r) = exp(−u)
//	  • Matern12Derivative  k(r) = −u·exp(−u)          (r·∂ᵣ of the exponential kernel)
//
//	together with closed-form radial derivatives of every order and a
//	regularized, 1-periodic version K_R of each kernel whose Fourier series
//	converges fast enough for grid-based summation:
//	  • near the origin (r < εI) the kernel is replaced by an even two-point
//	    Taylor polynomial, the difference k − K_R is the near-field correction;
//	  • on the shell ½−εB ≤ r ≤ ½ it is blended into a constant by a second
//	    two-point Taylor polynomial, and kept constant beyond r = ½.
//
// ⚙️ Usage:
//
//	k, err := kernel.New(kernel.Gaussian, 0.3)
//	reg, err := k.Regularize(kernel.Regularization{BoundaryWidth: 0.125, Degree: 6})
//	b, err := reg.Coefficients(3, 32) // 32³ Fourier coefficients, row-major
//
// Complexity:
//
//	Eval/Derivative are O(order); Regularized.Eval is O(p);
//	Coefficients is O(N^d·(p + d·log N)).
package kernel
