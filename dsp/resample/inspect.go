package resample

import (
	"math"
	"math/cmplx"

	"github.com/aikiriao/R2sampler/dsp/core"
)

// Response computes the FIR coefficient set's complex frequency response
// H(e^{-jw}) at freqHz under the given sampleRate, by direct evaluation of
// the transfer function at that single frequency rather than a full FFT.
// freqHz is clamped to [0, sampleRate/2]: a query above Nyquist does not
// name a distinct frequency for a real-valued filter.
func Response(coef []float64, freqHz, sampleRate float64) complex128 {
	freqHz = core.Clamp(freqHz, 0, sampleRate/2)
	w := 2 * math.Pi * freqHz / sampleRate
	var h complex128
	for k, c := range coef {
		h += complex(c, 0) * cmplx.Exp(complex(0, -w*float64(k)))
	}
	return h
}

// FrequencyResponseDB returns the magnitude response, in dB, of an FIR
// coefficient set at freqHz under the given sampleRate. It exists so a
// designed stage's anti-aliasing filter can be inspected (e.g. to confirm
// stopband attenuation) without running a full FFT for a single point.
func FrequencyResponseDB(coef []float64, freqHz, sampleRate float64) float64 {
	return core.LinearToDB(cmplx.Abs(Response(coef, freqHz, sampleRate)))
}

// ResponseDB reports the stage's anti-aliasing filter magnitude response, in
// dB, at freqHz. The filter runs on the interpolated (zero-inserted) stream,
// so interpolatedRate must be the stage's input rate multiplied by its
// reduced up-rate (equivalently its output rate multiplied by its reduced
// down-rate, since both equal the common upsampled rate).
func (s *SingleStageConverter) ResponseDB(freqHz, interpolatedRate float64) float64 {
	return FrequencyResponseDB(s.filterCoef, freqHz, interpolatedRate)
}

// MeetsStopbandAttenuation reports whether the stage's filter attenuates
// freqHz by at least minAttenuationDB, comparing linear magnitudes (via
// DBToLinear) rather than taking a second log.
func (s *SingleStageConverter) MeetsStopbandAttenuation(freqHz, interpolatedRate, minAttenuationDB float64) bool {
	magnitude := cmplx.Abs(Response(s.filterCoef, freqHz, interpolatedRate))
	threshold := core.DBToLinear(-minAttenuationDB)
	return magnitude <= threshold
}
