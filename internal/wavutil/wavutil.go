// Package wavutil converts between go-audio/audio's integer PCM buffers and
// the float64 samples dsp/resample operates on.
//
// Conversion mirrors the original rsampler tool's normalization: integer
// samples are scaled by the full-scale value for their bit depth, and
// converted back with round-half-away-from-zero plus saturation on the way
// out.
package wavutil

import "math"

// ToFloat64 converts PCM integer samples at the given bit depth to float64
// samples in [-1, 1). dst and src must have the same length.
func ToFloat64(dst []float64, src []int, bitDepth int) {
	scale := 1.0 / float64(int64(1)<<(bitDepth-1))
	for i, v := range src {
		dst[i] = float64(v) * scale
	}
}

// FromFloat64 converts float64 samples back to PCM integers at the given
// bit depth, rounding half away from zero and saturating to the integer
// range. dst and src must have the same length.
func FromFloat64(dst []int, src []float64, bitDepth int) {
	fullScale := float64(int64(1) << (bitDepth - 1))
	maxVal := int64(1)<<(bitDepth-1) - 1
	minVal := -(int64(1) << (bitDepth - 1))
	for i, v := range src {
		pcm := int64(roundAwayFromZero(v * fullScale))
		if pcm > maxVal {
			pcm = maxVal
		} else if pcm < minVal {
			pcm = minVal
		}
		dst[i] = int(pcm)
	}
}

func roundAwayFromZero(x float64) float64 {
	if x >= 0 {
		return math.Floor(x + 0.5)
	}
	return -math.Floor(-x + 0.5)
}

// Deinterleave splits an interleaved multi-channel integer buffer into one
// slice per channel.
func Deinterleave(dst [][]int, interleaved []int, numChans int) {
	for ch := 0; ch < numChans; ch++ {
		for i := ch; i < len(interleaved); i += numChans {
			dst[ch][i/numChans] = interleaved[i]
		}
	}
}

// Interleave combines per-channel integer slices into one interleaved
// buffer. Every entry in src must have the same length.
func Interleave(dst []int, src [][]int) {
	numChans := len(src)
	for ch := 0; ch < numChans; ch++ {
		for i, v := range src[ch] {
			dst[i*numChans+ch] = v
		}
	}
}
