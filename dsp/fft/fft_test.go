package fft

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestComplexImpulseResponseIsFlat(t *testing.T) {
	for _, n := range []int{4, 8, 16, 32} {
		x := make([]complex128, n)
		x[0] = 1
		y := make([]complex128, n)
		Complex(n, false, x, y)
		for i, v := range x {
			assert.InDelta(t, 1.0, real(v), 1e-9, "n=%d bin %d real", n, i)
			assert.InDelta(t, 0.0, imag(v), 1e-9, "n=%d bin %d imag", n, i)
		}
	}
}

func TestComplexForwardInverseRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		logN := rapid.IntRange(2, 6).Draw(t, "log2n")
		n := 1 << logN
		x := make([]complex128, n)
		for i := range x {
			re := rapid.Float64Range(-10, 10).Draw(t, "re")
			im := rapid.Float64Range(-10, 10).Draw(t, "im")
			x[i] = complex(re, im)
		}
		orig := append([]complex128(nil), x...)

		y := make([]complex128, n)
		Complex(n, false, x, y)
		Complex(n, true, x, y)

		for i := range x {
			assert.InDelta(t, real(orig[i])*float64(n), real(x[i]), 1e-6*float64(n))
			assert.InDelta(t, imag(orig[i])*float64(n), imag(x[i]), 1e-6*float64(n))
		}
	})
}

func TestRealForwardInverseRoundTrip(t *testing.T) {
	for _, n := range []int{8, 16, 64} {
		x := make([]float64, n)
		for i := range x {
			x[i] = math.Sin(float64(i)) + 0.3*float64(i%5)
		}
		orig := append([]float64(nil), x...)

		RealForward(n, x)
		RealInverse(n, x)

		for i := range x {
			want := orig[i] * float64(n) / 2
			require.InDeltaf(t, want, x[i], 1e-6*float64(n), "n=%d index %d", n, i)
		}
	}
}
