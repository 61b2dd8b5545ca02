package resample

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestCalculateWorkSizeRejectsEvenOrder(t *testing.T) {
	cfg := StageConfig{MaxNumInputSamples: 8, InputRate: 1, OutputRate: 1, FilterType: FilterTypeHann, FilterOrder: 10}
	_, err := CalculateWorkSize(cfg)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestCalculateWorkSizeRejectsNoneWithLongOrder(t *testing.T) {
	cfg := StageConfig{MaxNumInputSamples: 8, InputRate: 1, OutputRate: 1, FilterType: FilterTypeNone, FilterOrder: 3}
	_, err := CalculateWorkSize(cfg)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func newStage(t *testing.T, cfg StageConfig) *SingleStageConverter {
	t.Helper()
	ws, err := CalculateWorkSize(cfg)
	require.NoError(t, err)
	s, err := NewSingleStage(cfg, ws)
	require.NoError(t, err)
	return s
}

func TestPassThroughStageIsIdentity(t *testing.T) {
	cfg := StageConfig{MaxNumInputSamples: 8, InputRate: 1, OutputRate: 1, FilterType: FilterTypeNone, FilterOrder: 1}
	s := newStage(t, cfg)

	input := []float64{1, 2, 3, 4}
	output := make([]float64, 8)
	n, err := s.Process(input, output)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, input, output[:n])
}

func TestProcessTooManyInputs(t *testing.T) {
	cfg := StageConfig{MaxNumInputSamples: 4, InputRate: 1, OutputRate: 1, FilterType: FilterTypeNone, FilterOrder: 1}
	s := newStage(t, cfg)

	_, err := s.Process(make([]float64, 5), make([]float64, 16))
	assert.ErrorIs(t, err, ErrTooManyNumInputs)
}

func TestProcessInsufficientBuffer(t *testing.T) {
	cfg := StageConfig{MaxNumInputSamples: 4, InputRate: 1, OutputRate: 2, FilterType: FilterTypeHann, FilterOrder: 7}
	s := newStage(t, cfg)

	_, err := s.Process([]float64{1, 2, 3, 4}, make([]float64, 1))
	assert.ErrorIs(t, err, ErrInsufficientBuffer)
}

func TestZeroSkipSettlesToUnityDCGain(t *testing.T) {
	cfg := StageConfig{MaxNumInputSamples: 64, InputRate: 1, OutputRate: 2, FilterType: FilterTypeHann, FilterOrder: 15}
	s := newStage(t, cfg)

	input := make([]float64, 64)
	for i := range input {
		input[i] = 1.0
	}
	output := make([]float64, 256)
	n, err := s.Process(input, output)
	require.NoError(t, err)
	require.Greater(t, n, 20)

	for i := n - 10; i < n; i++ {
		assert.InDelta(t, 1.0, output[i], 0.1, "output[%d]", i)
	}
}

func TestSymmetricPathSettlesToUnityDCGain(t *testing.T) {
	cfg := StageConfig{MaxNumInputSamples: 64, InputRate: 3, OutputRate: 1, FilterType: FilterTypeBlackman, FilterOrder: 13}
	s := newStage(t, cfg)

	input := make([]float64, 64)
	for i := range input {
		input[i] = 1.0
	}
	output := make([]float64, 64)
	n, err := s.Process(input, output)
	require.NoError(t, err)
	require.Greater(t, n, 5)

	for i := n - 3; i < n; i++ {
		assert.InDelta(t, 1.0, output[i], 0.1, "output[%d]", i)
	}
}

func TestProcessMatchesNumOutputSamples(t *testing.T) {
	cfg := StageConfig{MaxNumInputSamples: 16, InputRate: 3, OutputRate: 5, FilterType: FilterTypeNuttall, FilterOrder: 25}
	s := newStage(t, cfg)

	rapid.Check(t, func(t *rapid.T) {
		s.Start()
		for i := 0; i < 10; i++ {
			n := rapid.IntRange(0, 16).Draw(t, "n")
			input := make([]float64, n)
			for j := range input {
				input[j] = rapid.Float64Range(-1, 1).Draw(t, "sample")
			}
			predicted := s.NumOutputSamples(n)
			out := make([]float64, predicted)
			got, err := s.Process(input, out)
			require.NoError(t, err)
			assert.Equal(t, predicted, got)
			for _, v := range out[:got] {
				if math.IsNaN(v) || math.IsInf(v, 0) {
					t.Fatalf("non-finite output sample: %v", v)
				}
			}
		}
	})
}
