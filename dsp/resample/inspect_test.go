package resample

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResponseDBPassbandUnattenuatedStopbandAttenuated(t *testing.T) {
	const inputRate = 1000
	const up, down = 3, 1
	cfg := StageConfig{
		MaxNumInputSamples: 16,
		InputRate:          inputRate,
		OutputRate:         inputRate * up / down,
		FilterType:         FilterTypeHann,
		FilterOrder:        31,
	}
	ws, err := CalculateWorkSize(cfg)
	assert.NoError(t, err)
	stage, err := NewSingleStage(cfg, ws)
	assert.NoError(t, err)

	interpolatedRate := float64(inputRate * up)

	passbandDB := stage.ResponseDB(50, interpolatedRate)
	assert.Greater(t, passbandDB, -1.0, "passband response should not be attenuated (the taps carry the x3 up-rate gain, about +9.5 dB)")

	stopbandDB := stage.ResponseDB(1000, interpolatedRate)
	assert.Less(t, stopbandDB, -20.0, "stopband response should be well attenuated")
}

func TestFrequencyResponseDBIdentityCoefficientIsFlat(t *testing.T) {
	db := FrequencyResponseDB([]float64{1}, 123, 48000)
	assert.InDelta(t, 0.0, db, 1e-9)
}

func TestMeetsStopbandAttenuation(t *testing.T) {
	const inputRate = 1000
	const up, down = 3, 1
	cfg := StageConfig{
		MaxNumInputSamples: 16,
		InputRate:          inputRate,
		OutputRate:         inputRate * up / down,
		FilterType:         FilterTypeHann,
		FilterOrder:        31,
	}
	ws, err := CalculateWorkSize(cfg)
	assert.NoError(t, err)
	stage, err := NewSingleStage(cfg, ws)
	assert.NoError(t, err)

	interpolatedRate := float64(inputRate * up)

	assert.True(t, stage.MeetsStopbandAttenuation(1000, interpolatedRate, 20))
	assert.False(t, stage.MeetsStopbandAttenuation(50, interpolatedRate, 20))
}

func TestResponseClampsQueryFrequencyAboveNyquist(t *testing.T) {
	const sampleRate = 48000
	coef := []float64{1}
	atNyquist := Response(coef, sampleRate/2, sampleRate)
	aboveNyquist := Response(coef, sampleRate*10, sampleRate)
	assert.Equal(t, atNyquist, aboveNyquist)
}
