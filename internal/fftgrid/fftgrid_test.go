// SPDX-License-Identifier: MIT
package fftgrid

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/require"
)

// naiveDFT evaluates the 2-D transform directly for comparison.
func naiveDFT(x []complex128, size int, sign float64) []complex128 {
	out := make([]complex128, len(x))
	for l0 := 0; l0 < size; l0++ {
		for l1 := 0; l1 < size; l1++ {
			var s complex128
			for t0 := 0; t0 < size; t0++ {
				for t1 := 0; t1 < size; t1++ {
					phase := sign * 2 * math.Pi * float64(l0*t0+l1*t1) / float64(size)
					s += x[t0*size+t1] * cmplx.Exp(complex(0, phase))
				}
			}
			out[l0*size+l1] = s
		}
	}
	return out
}

func TestTransform_MatchesNaiveDFT(t *testing.T) {
	t.Parallel()

	const size = 6
	x := make([]complex128, size*size)
	for i := range x {
		x[i] = complex(math.Sin(float64(i)), math.Cos(0.3*float64(i)))
	}

	for _, workers := range []int{1, 3, 64} {
		tr, err := New(2, size, workers)
		require.NoError(t, err)

		got := append([]complex128(nil), x...)
		require.NoError(t, tr.Forward(got))
		want := naiveDFT(x, size, -1)
		for i := range got {
			require.InDelta(t, real(want[i]), real(got[i]), 1e-9)
			require.InDelta(t, imag(want[i]), imag(got[i]), 1e-9)
		}

		require.NoError(t, tr.Inverse(got))
		for i := range got {
			require.InDelta(t, real(x[i])*size*size, real(got[i]), 1e-8)
			require.InDelta(t, imag(x[i])*size*size, imag(got[i]), 1e-8)
		}
	}
}

func TestTransform_BadShape(t *testing.T) {
	t.Parallel()

	_, err := New(0, 4, 1)
	require.True(t, errors.Is(err, ErrBadShape))

	tr, err := New(3, 4, 2)
	require.NoError(t, err)
	require.Equal(t, 64, tr.Len())
	require.True(t, errors.Is(tr.Forward(make([]complex128, 63)), ErrBadShape))
}

func TestTransform_TooManyCells(t *testing.T) {
	t.Parallel()

	tr, err := New(3, 512, 1)
	require.NoError(t, err)
	require.Equal(t, MaxLen, tr.Len())

	for _, dims := range []int{4, 12, 64} {
		_, err = New(dims, 128, 1)
		require.ErrorIs(t, err, ErrBadShape, "dims=%d", dims)
	}
	_, err = New(2, 1<<14+1, 1)
	require.ErrorIs(t, err, ErrBadShape)
}
