package fft

import "math"

const twoPi = 2 * math.Pi

// Complex performs an unnormalized radix-4 (with a radix-2 finishing stage
// for non-power-of-4 lengths) Stockham FFT on x, using y as same-length
// scratch. n must be a power of 2. The result is always left in x; y's
// final contents are unspecified.
func Complex(n int, inverse bool, x, y []complex128) {
	flag := -1.0
	if inverse {
		flag = 1.0
	}

	cur, scratch := x, y
	m := n
	s := 1
	for m > 2 {
		n1 := m >> 2
		n2 := m >> 1
		n3 := n1 + n2
		theta0 := twoPi / float64(m)
		j := complex(0, -flag)

		for p := 0; p < n1; p++ {
			w1p := complex(math.Cos(float64(p)*theta0), flag*math.Sin(float64(p)*theta0))
			w2p := w1p * w1p
			w3p := w1p * w2p
			for q := 0; q < s; q++ {
				a := cur[q+s*(p+0)]
				b := cur[q+s*(p+n1)]
				c := cur[q+s*(p+n2)]
				d := cur[q+s*(p+n3)]
				apc := a + c
				amc := a - c
				bpd := b + d
				jbmd := j * (b - d)
				scratch[q+s*((p<<2)+0)] = apc + bpd
				scratch[q+s*((p<<2)+1)] = w1p * (amc - jbmd)
				scratch[q+s*((p<<2)+2)] = w2p * (apc - bpd)
				scratch[q+s*((p<<2)+3)] = w3p * (amc + jbmd)
			}
		}
		m >>= 2
		s <<= 2
		cur, scratch = scratch, cur
	}

	if m == 2 {
		for q := 0; q < s; q++ {
			a := cur[q]
			b := cur[q+s]
			scratch[q] = a + b
			scratch[q+s] = a - b
		}
		cur, scratch = scratch, cur
	}

	if len(cur) > 0 && &cur[0] != &x[0] {
		copy(x[:n], cur[:n])
	}
}

// RealForward computes the forward FFT of a real sequence of length n
// (n a power of 2, n>=4), packed in place in x: after the call, x[0] holds
// the DC bin's real part, x[1] the Nyquist bin's real part, and
// x[2*i]/x[2*i+1] hold the real/imaginary parts of bin i for 1<=i<n/2.
func RealForward(n int, x []float64) {
	realFFT(n, -1, x)
}

// RealInverse inverts the packing RealForward produces. The round trip
// RealInverse(n, RealForward(n, x)) scales x by n/2, matching Complex's
// unnormalized convention.
func RealInverse(n int, x []float64) {
	realFFT(n, 1, x)
}

func realFFT(n int, flag float64, x []float64) {
	theta := flag * twoPi / float64(n)
	wpi := math.Sin(theta)
	wpr := math.Cos(theta) - 1.0
	c2 := flag * 0.5

	if flag == -1 {
		complexHalfFFT(n>>1, false, x)
	}
	// bin n/4 is skipped by the loop below; it only needs conjugating.
	x[(n>>1)+1] = -x[(n>>1)+1]

	wr := 1.0 + wpr
	wi := wpi

	for i := 1; i < n>>2; i++ {
		i1 := i << 1
		i2 := i1 + 1
		i3 := n - i1
		i4 := i3 + 1
		h1r := 0.5 * (x[i1] + x[i3])
		h1i := 0.5 * (x[i2] - x[i4])
		h2r := -c2 * (x[i2] + x[i4])
		h2i := c2 * (x[i1] - x[i3])
		x[i1] = h1r + wr*h2r - wi*h2i
		x[i2] = h1i + wr*h2i + wi*h2r
		x[i3] = h1r - wr*h2r + wi*h2i
		x[i4] = -h1i + wr*h2i + wi*h2r

		wtmp := wr
		wr += wtmp*wpr - wi*wpi
		wi += wi*wpr + wtmp*wpi
	}

	h1r := x[0]
	if flag == -1 {
		x[0] = h1r + x[1]
		x[1] = h1r - x[1]
	} else {
		x[0] = 0.5 * (h1r + x[1])
		x[1] = 0.5 * (h1r - x[1])
		complexHalfFFT(n>>1, true, x)
	}
}

// complexHalfFFT reinterprets x's first 2*half float64s as half complex
// samples, runs Complex over them, and writes the result back into x.
func complexHalfFFT(half int, inverse bool, x []float64) {
	c := make([]complex128, half)
	for i := 0; i < half; i++ {
		c[i] = complex(x[2*i], x[2*i+1])
	}
	y := make([]complex128, half)
	Complex(half, inverse, c, y)
	for i := 0; i < half; i++ {
		x[2*i] = real(c[i])
		x[2*i+1] = imag(c[i])
	}
}
