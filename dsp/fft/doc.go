// Package fft implements an unnormalized radix-4 Stockham complex FFT and
// its packed real-sequence variant.
//
// It exists alongside dsp/resample as general-purpose spectral tooling (for
// inspecting a designed filter's frequency response, or analysing a
// converted signal) but the resampling path itself never calls it; the
// polyphase converter works entirely in the time domain.
//
// Transforms are unnormalized: a Complex forward transform followed by a
// Complex inverse transform scales the input by n. RealForward/RealInverse
// carry the same convention, with a factor of n/2.
package fft
