// SPDX-License-Identifier: MIT

// Package fastsum evaluates y = K·v for dense kernel matrices
// K[j,k] = k(‖xⱼ − xₖ‖) without forming K, using NFFT-based fast summation.
//
// 🚀 What it does:
//   - Normalizes the point cloud into a ball of radius at most ¼ − εB/2 and
//     rescales the kernel bandwidth by the same factor (all kernels depend on
//     r/σ only). Kernels wider than the profile's target bandwidth shrink the
//     ball further: √((½ − εB)/(πN)) for the Gaussian family and
//     (½ − εB)/ln(100/tolerance) for the Matérn family.
//   - Replaces k by a smooth 1-periodic surrogate K_R with N^d Fourier
//     coefficients (package kernel).
//   - Spreads the weights onto an oversampled grid with a truncated Gaussian
//     window, transforms, multiplies by the deconvolved coefficients,
//     transforms back and gathers with the same window.
//   - Adds exact near-field corrections for pairs closer than εI and the
//     diagonal replacement.
//
// ⚙️ Accuracy profiles:
//
//	name     N   m   p  εB   tolerance
//	rough    16  6   4  1/8  1e-2
//	default  32  8   6  1/8  1e-4
//	fine     64  10  8  1/8  1e-6
//
// The oversampled grid has n_g = smallest power of two ≥ 2N points per axis,
// and d is at most MaxDim.
//
// The tolerance bounds ‖Apply(v) − K·v‖₂ / ‖K·v‖₂ for every kernel, for signed
// and positive v, and for σ from far below the point spacing up to about 100
// times the cloud radius. The derivative kernels vanish at r = 0, so for even
// wider σ their relative error grows like (σ/R)².
//
// The near field has radius εI = p/N for the Matérn family. Gaussians whose
// spectrum has decayed at the edge of the frequency cube run without near
// field; narrower ones get εI = max(p/N, √(2·ln(100/tolerance))·σ'). Narrow
// Gaussians and wide Matérn kernels therefore route most pairs of a dense
// cloud through the exact near field, which costs up to O(n²).
//
// ⏱ Complexity (n points, d dims):
//   - NewPlan: O(n·d·m + N^d·(p + d·log N) + n_g^d + near pairs).
//   - Apply:   O(n·(2m+2)^d + d·n_g^d·log n_g + near pairs).
//
// 🔒 Concurrency:
//   - A Plan is immutable; Apply allocates its scratch grid per call and may
//     be called concurrently. Within a call FFT lines, gathering and the near
//     field run on up to WithWorkers goroutines. Every output entry is owned
//     by exactly one goroutine, so results do not depend on the worker count.
package fastsum
