package resample

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestNewMultiStageRejectsBadConfig(t *testing.T) {
	_, err := NewMultiStage(MultiStageConfig{MaxNumInputSamples: 0, InputRate: 1, OutputRate: 2})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = NewMultiStage(MultiStageConfig{MaxNumInputSamples: 8, InputRate: 0, OutputRate: 2})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestNewMultiStageReducesRates(t *testing.T) {
	m, err := NewMultiStage(MultiStageConfig{
		MaxNumInputSamples: 32,
		InputRate:          44100,
		OutputRate:         88200,
		FilterType:         FilterTypeHann,
		FilterOrder:        31,
	})
	require.NoError(t, err)
	up, down := m.UpDownRate()
	assert.Equal(t, 2, up)
	assert.Equal(t, 1, down)
}

func TestMultiStageIdentityConversionIsPassThrough(t *testing.T) {
	m, err := NewMultiStage(MultiStageConfig{
		MaxNumInputSamples: 16,
		InputRate:          48000,
		OutputRate:         48000,
		FilterType:         FilterTypeHann,
		FilterOrder:        31,
	})
	require.NoError(t, err)
	m.Start()

	input := []float64{1, -1, 2, -2, 3, -3}
	output := make([]float64, MaxNumOutputSamples(len(input), 48000, 48000)+8)
	n, err := m.Process(input, output)
	require.NoError(t, err)
	assert.Equal(t, len(input), n)
	assert.Equal(t, input, output[:n])
}

func TestMultiStageTooManyInputs(t *testing.T) {
	m, err := NewMultiStage(MultiStageConfig{
		MaxNumInputSamples: 4,
		InputRate:          8000,
		OutputRate:         16000,
		FilterType:         FilterTypeHann,
		FilterOrder:        15,
	})
	require.NoError(t, err)

	_, err = m.Process(make([]float64, 5), make([]float64, 64))
	assert.ErrorIs(t, err, ErrTooManyNumInputs)
}

func TestMultiStageOutputNeverExceedsMaxNumOutputSamples(t *testing.T) {
	const inRate, outRate = 3, 7
	m, err := NewMultiStage(MultiStageConfig{
		MaxNumInputSamples: 32,
		InputRate:          inRate,
		OutputRate:         outRate,
		FilterType:         FilterTypeBlackman,
		FilterOrder:        31,
	})
	require.NoError(t, err)
	m.Start()

	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 32).Draw(t, "n")
		input := make([]float64, n)
		for i := range input {
			input[i] = rapid.Float64Range(-1, 1).Draw(t, "sample")
		}
		bound := MaxNumOutputSamples(n, inRate, outRate)
		output := make([]float64, bound)
		got, err := m.Process(input, output)
		require.NoError(t, err)
		assert.LessOrEqual(t, got, bound)
	})
}
