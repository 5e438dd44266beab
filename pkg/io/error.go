package io

import "fmt"

// ShortBufferError tells the caller that a destination, usually a decoded row or the
// engine's read buffer, cannot hold the bytes meant for it.
type ShortBufferError struct {
	Needed    int
	Available int
}

func (e *ShortBufferError) Error() string {
	return fmt.Sprintf("destination holds %d bytes, %d needed", e.Available, e.Needed)
}

// ShortReadError tells the caller that the source doesn't hold enough bytes to satisfy
// a read request. The PNG stream is either truncated or malformed.
type ShortReadError struct {
	Requested int
	Remaining int
}

func (e *ShortReadError) Error() string {
	return fmt.Sprintf("requested %d bytes, but only %d bytes remain", e.Requested, e.Remaining)
}
