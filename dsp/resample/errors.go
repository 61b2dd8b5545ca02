package resample

import "errors"

var (
	// ErrInvalidArgument is returned when a config violates a construction
	// contract: a zero rate, an even filter order, a NONE filter type paired
	// with an order other than 1, or an up/down combination too small to
	// ever produce output for max_num_input_samples input samples.
	ErrInvalidArgument = errors.New("resample: invalid argument")
	// ErrTooManyNumInputs is returned by Process when the caller passes more
	// input samples than the converter was configured to accept per call.
	ErrTooManyNumInputs = errors.New("resample: too many input samples")
	// ErrInsufficientBuffer is returned by Process when the caller's output
	// buffer is too small to hold the samples this call would produce.
	ErrInsufficientBuffer = errors.New("resample: insufficient output buffer")
)
