package resample

import (
	"fmt"
	"math"
)

// FilterType selects the lowpass filter applied between the zero-insertion
// and decimation steps of a single stage.
type FilterType int

const (
	// FilterTypeNone disables filtering; valid only with FilterOrder == 1.
	// The stage then uses the single tap 1.0, so a 1/1 stage passes samples
	// through unchanged and any other ratio only inserts zeros and drops
	// samples. NewMultiStage selects it for a planned 1/1 stage.
	FilterTypeNone FilterType = iota
	// FilterTypeHann windows the sinc prototype with a Hann window.
	FilterTypeHann
	// FilterTypeBlackman windows the sinc prototype with a Blackman window.
	FilterTypeBlackman
	// FilterTypeNuttall windows the sinc prototype with a Nuttall window.
	FilterTypeNuttall
	// FilterTypeBlackmanNuttall windows the sinc prototype with a
	// Blackman-Nuttall window.
	FilterTypeBlackmanNuttall
)

func (t FilterType) String() string {
	switch t {
	case FilterTypeNone:
		return "none"
	case FilterTypeHann:
		return "hann"
	case FilterTypeBlackman:
		return "blackman"
	case FilterTypeNuttall:
		return "nuttall"
	case FilterTypeBlackmanNuttall:
		return "blackman-nuttall"
	default:
		return fmt.Sprintf("FilterType(%d)", int(t))
	}
}

// designLowpass synthesizes an odd-length, linear-phase FIR lowpass filter
// of the given order with normalized cutoff (Nyquist = 0.5) by windowing a
// sinc prototype. When order == 1 the single tap is left at 2*cutoff: this
// mirrors the reference design routine, which applies a no-op scale in that
// degenerate case rather than collapsing the tap to unity gain. Callers that
// want an identity stage instead set FilterTypeNone, which bypasses design
// entirely.
func designLowpass(filterType FilterType, order int, cutoff float64) ([]float64, error) {
	if order <= 0 {
		return nil, fmt.Errorf("resample: filter order must be > 0: %d", order)
	}
	if order%2 == 0 {
		return nil, fmt.Errorf("resample: filter order must be odd: %d", order)
	}
	if cutoff <= 0 || cutoff >= 0.5 {
		return nil, fmt.Errorf("resample: cutoff must be in (0, 0.5): %f", cutoff)
	}

	taps := make([]float64, order)
	half := float64(order-1) / 2
	for i := range taps {
		t := float64(i) - half
		taps[i] = 2 * cutoff * sincNormalized(2*math.Pi*cutoff*t)
	}

	if order == 1 {
		return taps, nil
	}

	denom := float64(order - 1)
	for i := range taps {
		x := float64(i) / denom
		taps[i] *= windowAt(filterType, x)
	}
	return taps, nil
}

// sincNormalized returns sin(x)/x, defined as 1 at x == 0.
func sincNormalized(x float64) float64 {
	if math.Abs(x) < 1e-8 {
		return 1
	}
	return math.Sin(x) / x
}

func windowAt(t FilterType, x float64) float64 {
	switch t {
	case FilterTypeNone:
		return 1
	case FilterTypeHann:
		return 0.5 - 0.5*math.Cos(2*math.Pi*x)
	case FilterTypeBlackman:
		return 0.42 - 0.5*math.Cos(2*math.Pi*x) + 0.08*math.Cos(4*math.Pi*x)
	case FilterTypeNuttall:
		return 0.355768 - 0.487396*math.Cos(2*math.Pi*x) + 0.144232*math.Cos(4*math.Pi*x) - 0.012604*math.Cos(6*math.Pi*x)
	case FilterTypeBlackmanNuttall:
		return 0.3635819 - 0.4891775*math.Cos(2*math.Pi*x) + 0.1365995*math.Cos(4*math.Pi*x) - 0.0106411*math.Cos(6*math.Pi*x)
	default:
		return 1
	}
}
