// Package ringbuffer implements a byte-granular circular queue that hands
// back contiguous slices from Peek and Get even when the logical read
// straddles the wrap point.
//
// The trick is a small mirror region appended after the ring: every byte
// written within maxRequiredSize of the ring's start is duplicated there, so
// a read of up to maxRequiredSize bytes never needs to be stitched from two
// fragments.
package ringbuffer
