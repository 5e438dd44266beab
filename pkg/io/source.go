package io

// ByteSource serves sequential reads out of a fixed, caller-owned buffer. The buffer
// is never copied or modified; callers must not mutate it while a decode is running.
type ByteSource struct {
	data   []byte
	offset int
}

// NewByteSource creates a source over data whose first consumed bytes have already
// been read by someone else (e.g. the 8 signature bytes).
func NewByteSource(data []byte, consumed int) *ByteSource {
	if consumed < 0 {
		consumed = 0
	}
	if consumed > len(data) {
		consumed = len(data)
	}
	return &ByteSource{data: data, offset: consumed}
}

// Next returns exactly n bytes starting at the current offset and advances the offset
// by n. The returned slice aliases the source buffer and has its capacity clipped to n.
// A request that would run past the end of the buffer returns a ShortReadError and
// leaves the offset untouched.
func (s *ByteSource) Next(n int) ([]byte, error) {
	remaining := len(s.data) - s.offset
	if n < 0 || n > remaining {
		return nil, &ShortReadError{Requested: n, Remaining: remaining}
	}

	b := s.data[s.offset : s.offset+n : s.offset+n]
	s.offset += n
	return b, nil
}

// Offset returns how many bytes of the buffer have been consumed.
func (s *ByteSource) Offset() int {
	return s.offset
}

// Len returns the number of unread bytes.
func (s *ByteSource) Len() int {
	return len(s.data) - s.offset
}
