// Package io provides the byte plumbing between an in-memory PNG datastream and a
// pull-style codec engine.
package io

// Copy copies all of src into dst. Nothing is copied and a ShortBufferError is
// returned when dst is smaller than src, a partial row is never written.
func Copy(dst, src []byte) (n int, err error) {
	if len(dst) < len(src) {
		return 0, &ShortBufferError{Needed: len(src), Available: len(dst)}
	}

	return copy(dst, src), nil
}
