package ringbuffer

import "errors"

var (
	// ErrInvalidArgument is returned by New when the configured sizes are
	// nonsensical (zero, negative, or maxRequiredSize > maxSize).
	ErrInvalidArgument = errors.New("ringbuffer: invalid argument")
	// ErrExceedMaxCapacity is returned by Put when the write would overflow
	// the free space in the ring.
	ErrExceedMaxCapacity = errors.New("ringbuffer: put exceeds capacity")
	// ErrExceedMaxRemain is returned by Peek/Get when the requested size is
	// larger than the number of bytes currently buffered.
	ErrExceedMaxRemain = errors.New("ringbuffer: read exceeds remaining bytes")
	// ErrExceedMaxRequired is returned by Peek/Get when the requested size is
	// larger than the maxRequiredSize the buffer was configured with; such a
	// read could return a non-contiguous view and is refused outright.
	ErrExceedMaxRequired = errors.New("ringbuffer: read exceeds max required size")
)
