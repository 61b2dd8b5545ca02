// Package resample provides rational-factor (L/M) sample-rate conversion
// using streaming polyphase FIR filtering.
//
// A SingleStageConverter performs one upsample-by-L, lowpass-filter,
// downsample-by-M pass, skipping the zero-inserted taps the upsampling step
// would otherwise multiply against. A MultiStageConverter factors L/M into a
// cascade of single stages chosen so no one stage needs a very wide-band
// filter.
//
// Common workflows:
//   - NewSingleStage(cfg, workSize), with workSize from CalculateWorkSize(cfg),
//     for a single L/M conversion
//   - NewMultiStage(cfg) to let the planner cascade stages automatically
//   - Start, then repeated Process calls with any input block size
package resample
