// SPDX-License-Identifier: MIT

package fastsum_test

import (
	"bytes"
	"fmt"
	"log/slog"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fastadj "github.com/wagnertheresa/prescaledFastAdj"
	"github.com/wagnertheresa/prescaledFastAdj/fastsum"
	"github.com/wagnertheresa/prescaledFastAdj/kernel"
)

// TestLookupProfile covers the profile table and its ordering.
func TestLookupProfile(t *testing.T) {
	t.Parallel()

	p, err := fastsum.LookupProfile(" Default ")
	require.NoError(t, err)
	require.Equal(t, 32, p.Bandwidth)
	require.Equal(t, 64, p.GridSize())
	require.InDelta(t, 0.1875, p.Radius(), 1e-15)

	_, err = fastsum.LookupProfile("ultra")
	require.ErrorIs(t, err, fastsum.ErrUnknownProfile)
	require.ErrorIs(t, err, fastadj.ErrInvalidParameter)

	all := fastsum.Profiles()
	require.Len(t, all, 3)
	for i := 1; i < len(all); i++ {
		// higher accuracy costs more on every axis of the table
		assert.Greater(t, all[i].Bandwidth, all[i-1].Bandwidth)
		assert.Greater(t, all[i].Window, all[i-1].Window)
		assert.Greater(t, all[i].Degree, all[i-1].Degree)
		assert.Less(t, all[i].Tolerance, all[i-1].Tolerance)
	}
	assert.Equal(t, fastsum.ProfileRough, all[0].Name)
	assert.Equal(t, fastsum.ProfileFine, all[2].Name)
}

// TestGridSize checks the power-of-two rule 2N ≤ n_g < 4N.
func TestGridSize(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct{ n, want int }{{2, 4}, {16, 32}, {24, 64}, {32, 64}, {50, 128}} {
		got := fastsum.Profile{Bandwidth: tc.n}.GridSize()
		assert.Equal(t, tc.want, got, "N=%d", tc.n)
	}
}

// TestNewPlan_Validation covers every construction failure.
func TestNewPlan_Validation(t *testing.T) {
	t.Parallel()

	def, err := fastsum.LookupProfile(fastsum.ProfileDefault)
	require.NoError(t, err)
	k := mustKernel(t, kernel.Gaussian, 1)
	pts := randomPoints(1, 4, 2)

	badProfile := def
	badProfile.Bandwidth = 31
	wideWindow := def
	wideWindow.Window = 40
	nearProfile := def
	nearProfile.Degree = 8
	nearProfile.Bandwidth = 16

	tests := []struct {
		name    string
		points  [][]float64
		kernel  kernel.Kernel
		profile fastsum.Profile
		diag    float64
	}{
		{"empty", nil, k, def, 1},
		{"zero width", [][]float64{{}, {}}, k, def, 1},
		{"ragged", [][]float64{{0, 1}, {0}}, k, def, 1},
		{"nan coordinate", [][]float64{{0, math.NaN()}}, k, def, 1},
		{"inf coordinate", [][]float64{{math.Inf(-1), 0}}, k, def, 1},
		{"zero kernel", pts, kernel.Kernel{}, def, 1},
		{"odd bandwidth", pts, k, badProfile, 1},
		{"window too wide", pts, k, wideWindow, 1},
		{"zero profile", pts, k, fastsum.Profile{}, 1},
		{"nan diagonal", pts, k, def, math.NaN()},
		{"too many dims", randomPoints(2, 3, fastsum.MaxDim+1), k, def, 1},
		{"huge dims", [][]float64{make([]float64, 64)}, k, def, 1},
		{"near field past boundary", pts, k, nearProfile, 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p, err := fastsum.NewPlan(tc.points, tc.kernel, tc.profile, tc.diag)
			require.Nil(t, p)
			require.ErrorIs(t, err, fastsum.ErrInvalidParameter)
		})
	}
}

// TestApply_Accuracy compares against the dense kernel matrix for every
// profile and kernel, bandwidths from below the point spacing to far above the
// cloud diameter, and both zero-mean and positive vectors.
func TestApply_Accuracy(t *testing.T) {
	t.Parallel()

	for _, prof := range fastsum.Profiles() {
		for _, variant := range kernel.Variants() {
			for _, sigma := range []float64{0.02, 0.3, 2, 20} {
				for d := 1; d <= fastsum.MaxDim; d++ {
					if d == 3 && prof.Name == fastsum.ProfileFine {
						continue
					}
					t.Run(fmt.Sprintf("%s/%s/sigma=%g/d=%d", prof.Name, variant, sigma, d), func(t *testing.T) {
						t.Parallel()
						k := mustKernel(t, variant, sigma)
						n := 100
						if d == 3 {
							n = 60
						}
						pts := randomPoints(uint64(d)+3, n, d)

						plan, err := fastsum.NewPlan(pts, k, prof, 0.5)
						require.NoError(t, err)

						for seed := uint64(1); seed <= 2; seed++ {
							for _, v := range [][]float64{signedVector(seed, n), randomVector(seed, n)} {
								got, err := plan.Apply(v)
								require.NoError(t, err)
								require.Less(t, relErr(got, exactApply(pts, k, 0.5, v)), prof.Tolerance)
							}
						}
					})
				}
			}
		}
	}
}

// TestApply_WideDerivative pins the documented scope for derivative kernels
// with σ a hundred times the cloud radius.
func TestApply_WideDerivative(t *testing.T) {
	t.Parallel()

	pts := randomPoints(4, 100, 2)
	for _, prof := range fastsum.Profiles() {
		for _, variant := range []kernel.Variant{kernel.GaussianDerivative, kernel.Matern12Derivative} {
			k := mustKernel(t, variant, 70)
			plan, err := fastsum.NewPlan(pts, k, prof, 0)
			require.NoError(t, err)

			v := signedVector(5, len(pts))
			got, err := plan.Apply(v)
			require.NoError(t, err)
			require.Less(t, relErr(got, exactApply(pts, k, 0, v)), prof.Tolerance, "%s/%s", prof.Name, variant)
		}
	}
}

// TestApply_CoincidentPoints checks duplicates, which only the near field
// separates from the self pair for the Matérn kernels.
func TestApply_CoincidentPoints(t *testing.T) {
	t.Parallel()

	pts := randomPoints(9, 40, 2)
	pts = append(pts, append([]float64(nil), pts[0]...), append([]float64(nil), pts[1]...))
	prof, err := fastsum.LookupProfile(fastsum.ProfileDefault)
	require.NoError(t, err)

	for _, variant := range []kernel.Variant{kernel.Matern12, kernel.Gaussian} {
		k := mustKernel(t, variant, 0.5)
		plan, err := fastsum.NewPlan(pts, k, prof, 1)
		require.NoError(t, err)

		v := randomVector(4, len(pts))
		got, err := plan.Apply(v)
		require.NoError(t, err)
		require.Less(t, relErr(got, exactApply(pts, k, 1, v)), prof.Tolerance, variant.String())
	}
}

// TestApply_Symmetry checks u·Kv = v·Ku.
func TestApply_Symmetry(t *testing.T) {
	t.Parallel()

	prof, err := fastsum.LookupProfile(fastsum.ProfileDefault)
	require.NoError(t, err)
	pts := randomPoints(5, 90, 2)

	for _, variant := range kernel.Variants() {
		plan, err := fastsum.NewPlan(pts, mustKernel(t, variant, 0.4), prof, 1)
		require.NoError(t, err)

		u, v := randomVector(1, 90), randomVector(2, 90)
		ku, err := plan.Apply(u)
		require.NoError(t, err)
		kv, err := plan.Apply(v)
		require.NoError(t, err)

		a, b := dot(u, kv), dot(v, ku)
		require.InDelta(t, a, b, 1e-10*math.Abs(a), variant.String())
	}
}

// TestApply_DegreeSign checks sign behaviour of Apply(ones) per kernel type.
func TestApply_DegreeSign(t *testing.T) {
	t.Parallel()

	prof, err := fastsum.LookupProfile(fastsum.ProfileRough)
	require.NoError(t, err)
	pts := randomPoints(6, 80, 3)
	ones := make([]float64, len(pts))
	for i := range ones {
		ones[i] = 1
	}

	for _, variant := range kernel.Variants() {
		plan, err := fastsum.NewPlan(pts, mustKernel(t, variant, 0.7), prof, 0)
		require.NoError(t, err)
		deg, err := plan.Apply(ones)
		require.NoError(t, err)
		for i, x := range deg {
			if variant.NonNegative() {
				require.Greaterf(t, x, 0.0, "%s degree[%d]", variant, i)
			} else {
				require.Lessf(t, x, 0.0, "%s degree[%d]", variant, i)
			}
		}
	}
}

// TestApply_SinglePoint checks that n = 1 returns diagonal·v[0] exactly.
func TestApply_SinglePoint(t *testing.T) {
	t.Parallel()

	prof, err := fastsum.LookupProfile(fastsum.ProfileDefault)
	require.NoError(t, err)
	for _, variant := range kernel.Variants() {
		plan, err := fastsum.NewPlan([][]float64{{3, -1}}, mustKernel(t, variant, 2), prof, 0.75)
		require.NoError(t, err)
		got, err := plan.Apply([]float64{4})
		require.NoError(t, err)
		require.Equal(t, []float64{3}, got)
	}
}

// TestApply_Mismatch checks length validation.
func TestApply_Mismatch(t *testing.T) {
	t.Parallel()

	prof, err := fastsum.LookupProfile(fastsum.ProfileRough)
	require.NoError(t, err)
	plan, err := fastsum.NewPlan(randomPoints(2, 5, 2), mustKernel(t, kernel.Gaussian, 1), prof, 1)
	require.NoError(t, err)

	for _, n := range []int{0, 4, 6} {
		_, err = plan.Apply(make([]float64, n))
		require.ErrorIs(t, err, fastsum.ErrDimensionMismatch)
		require.ErrorIs(t, err, fastadj.ErrDimensionMismatch)
	}
}

// TestApply_Deterministic checks bitwise equality across repeated calls and
// worker counts, including concurrent Apply on one plan.
func TestApply_Deterministic(t *testing.T) {
	t.Parallel()

	prof, err := fastsum.LookupProfile(fastsum.ProfileDefault)
	require.NoError(t, err)
	pts := randomPoints(8, 150, 2)
	k := mustKernel(t, kernel.Matern12, 0.5)
	v := randomVector(3, len(pts))

	serial, err := fastsum.NewPlan(pts, k, prof, 1, fastsum.WithWorkers(1))
	require.NoError(t, err)
	wide, err := fastsum.NewPlan(pts, k, prof, 1, fastsum.WithWorkers(7))
	require.NoError(t, err)

	want, err := serial.Apply(v)
	require.NoError(t, err)
	again, err := serial.Apply(v)
	require.NoError(t, err)
	require.Equal(t, want, again)

	results := make([][]float64, 4)
	done := make(chan int)
	for i := range results {
		go func() {
			results[i], _ = wide.Apply(v)
			done <- i
		}()
	}
	for range results {
		<-done
	}
	for _, got := range results {
		require.Equal(t, want, got)
	}
}

// TestStats checks the reported plan statistics and Debug logging.
func TestStats(t *testing.T) {
	t.Parallel()

	prof, err := fastsum.LookupProfile(fastsum.ProfileDefault)
	require.NoError(t, err)
	pts := randomPoints(10, 60, 2)

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	plan, err := fastsum.NewPlan(pts, mustKernel(t, kernel.Matern12, 0.5), prof, 1, fastsum.WithLogger(logger))
	require.NoError(t, err)

	st := plan.Stats()
	require.Equal(t, 60, st.Points)
	require.Equal(t, 2, st.Dim)
	require.Equal(t, 64, st.GridSize)
	require.Equal(t, 8, st.Window)
	require.InDelta(t, 6.0/32, st.InnerRadius, 1e-15)
	require.Positive(t, st.NearPairs)
	require.Zero(t, st.NearPairs%2, "near pairs are counted in both directions")
	require.Contains(t, buf.String(), "fastsum plan built")

	// a wide Gaussian is shrunk to √((½ − εB)/(πN)) and needs no near field
	target := math.Sqrt(0.375 / (math.Pi * 32))
	for _, sigma := range []float64{0.5, 40} {
		gauss, err := fastsum.NewPlan(pts, mustKernel(t, kernel.Gaussian, sigma), prof, 1)
		require.NoError(t, err)
		require.InDelta(t, target, sigma*gauss.Stats().Scale, 1e-12)
		require.Zero(t, gauss.Stats().InnerRadius)
		require.Zero(t, gauss.Stats().NearPairs)
	}

	// the Matérn target is (½ − εB)/ln(100/tolerance)
	wide, err := fastsum.NewPlan(pts, mustKernel(t, kernel.Matern12, 40), prof, 1)
	require.NoError(t, err)
	require.InDelta(t, 0.375/math.Log(1e6), 40*wide.Stats().Scale, 1e-12)

	// a Gaussian resolved by neither the grid nor p/N gets εI = u·σ'
	u := math.Sqrt(2 * math.Log(1e6))
	mid, err := fastsum.NewPlan(pts, mustKernel(t, kernel.Gaussian, 0.15), prof, 1)
	require.NoError(t, err)
	st = mid.Stats()
	require.Less(t, 0.15*st.Scale*32, u/math.Pi)
	require.InDelta(t, math.Max(6.0/32, u*0.15*st.Scale), st.InnerRadius, 1e-12)

	// a tiny bandwidth falls back to the p/N near field
	narrow, err := fastsum.NewPlan(pts, mustKernel(t, kernel.Gaussian, 0.01), prof, 1)
	require.NoError(t, err)
	require.InDelta(t, 6.0/32, narrow.Stats().InnerRadius, 1e-15)
	require.Less(t, 0.01*narrow.Stats().Scale, target)
}

// TestOptions_Panic checks option constructors reject nonsense.
func TestOptions_Panic(t *testing.T) {
	t.Parallel()

	require.Panics(t, func() { fastsum.WithWorkers(0) })
	require.Panics(t, func() { fastsum.WithLogger(nil) })
}
