package io

import (
	"errors"
	"reflect"
	"testing"
)

func TestByteSourceNext(t *testing.T) {
	data := []byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}
	src := NewByteSource(data, 8)

	if src.Offset() != 8 {
		t.Fatalf("expected offset to start at 8, but got %d", src.Offset())
	}

	b, err := src.Next(3)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(b, []byte{8, 9, 10}) {
		t.Errorf("Wrong read result,\nexpected:\n%v\ngot:\n%v", []byte{8, 9, 10}, b)
	}
	if cap(b) != 3 {
		t.Errorf("expected capacity to be clipped to 3, but got %d", cap(b))
	}
	if src.Offset() != 11 || src.Len() != 1 {
		t.Errorf("expected offset 11 and 1 remaining, but got %d and %d", src.Offset(), src.Len())
	}

	b, err = src.Next(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(b) != 0 {
		t.Errorf("expected an empty read, but got %d bytes", len(b))
	}
}

func TestByteSourceShortRead(t *testing.T) {
	src := NewByteSource([]byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, 8)

	testCases := map[string]int{
		"PastEnd":  3,
		"Negative": -1,
	}

	for name, n := range testCases {
		n := n
		t.Run(name, func(t *testing.T) {
			_, err := src.Next(n)
			var e *ShortReadError
			if !errors.As(err, &e) {
				t.Fatalf("expected ShortReadError, but got %v", err)
			}
			if e.Requested != n || e.Remaining != 2 {
				t.Errorf("expected requested %d with 2 remaining, but got %d and %d", n, e.Requested, e.Remaining)
			}
			if src.Offset() != 8 {
				t.Errorf("expected offset to stay at 8, but got %d", src.Offset())
			}
		})
	}
}

func TestByteSourceAliasesInput(t *testing.T) {
	data := []byte{0, 0, 0, 0, 0, 0, 0, 0, 0xaa}
	src := NewByteSource(data, 8)
	b, err := src.Next(1)
	if err != nil {
		t.Fatal(err)
	}
	if &b[0] != &data[8] {
		t.Errorf("expected Next to return a view into the input buffer")
	}
}

func TestNewByteSourceClampsConsumed(t *testing.T) {
	if src := NewByteSource([]byte{1, 2}, 8); src.Offset() != 2 || src.Len() != 0 {
		t.Errorf("expected offset clamped to 2, but got %d", src.Offset())
	}
	if src := NewByteSource([]byte{1, 2}, -4); src.Offset() != 0 {
		t.Errorf("expected offset clamped to 0, but got %d", src.Offset())
	}
}
