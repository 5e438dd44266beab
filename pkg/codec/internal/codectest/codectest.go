// Package codectest provides shared test for codec engine implementations.
package codectest

import (
	"bytes"
	"testing"

	"github.com/pion/pngimage/pkg/codec"
	mio "github.com/pion/pngimage/pkg/io"
)

const sigLen = 8

func assertNoPanic(t *testing.T, fn func() error, msg string) error {
	defer func() {
		if r := recover(); r != nil {
			t.Errorf("panic: %v: %s", r, msg)
		}
	}()
	return fn()
}

// Decode drives an engine through the full read protocol over data and returns the
// parsed header state together with the decoded rows.
func Decode(b codec.EngineBuilder, data []byte) (codec.Info, []byte, error) {
	e, err := b()
	if err != nil {
		return nil, nil, err
	}
	defer e.Close()

	src := mio.NewByteSource(data, sigLen)
	e.SetReadFunc(src.Next)
	e.SetSigBytes(sigLen)
	info, err := e.NewInfo()
	if err != nil {
		return nil, nil, err
	}
	if err := e.ReadInfo(info); err != nil {
		return info, nil, err
	}

	rowBytes, height := int(info.RowBytes()), int(info.Height())
	pix := make([]byte, rowBytes*height)
	if err := e.ReadImage(info, codec.NewRowTable(pix, rowBytes, height)); err != nil {
		return info, nil, err
	}
	return info, pix, nil
}

// EngineCloseTwiceTest checks that closing an engine twice doesn't panic.
func EngineCloseTwiceTest(t *testing.T, b codec.EngineBuilder) {
	e, err := b()
	if err != nil {
		t.Fatal(err)
	}

	if err := assertNoPanic(t, e.Close, "on first Close()"); err != nil {
		t.Fatal(err)
	}
	if err := assertNoPanic(t, e.Close, "on second Close()"); err != nil {
		t.Fatal(err)
	}
}

// EngineOutOfOrderTest checks that an engine reports an error, instead of
// panicking, when the read protocol isn't followed.
func EngineOutOfOrderTest(t *testing.T, b codec.EngineBuilder, data []byte) {
	e, err := b()
	if err != nil {
		t.Fatal(err)
	}
	defer e.Close()

	src := mio.NewByteSource(data, sigLen)
	e.SetReadFunc(src.Next)
	e.SetSigBytes(sigLen)
	info, err := e.NewInfo()
	if err != nil {
		t.Fatal(err)
	}

	err = assertNoPanic(t, func() error {
		return e.ReadImage(info, codec.NewRowTable(make([]byte, 16), 4, 4))
	}, "on ReadImage() before ReadInfo()")
	if err == nil {
		t.Error("expected ReadImage() before ReadInfo() to fail")
	}

	if err := e.ReadInfo(info); err != nil {
		t.Fatal(err)
	}
	if err := e.Close(); err != nil {
		t.Fatal(err)
	}
	err = assertNoPanic(t, func() error {
		return e.ReadImage(info, codec.NewRowTable(make([]byte, 16), 4, 4))
	}, "on ReadImage() after Close()")
	if err == nil {
		t.Error("expected ReadImage() after Close() to fail")
	}
}

// EngineDecodeTest checks that data decodes to exactly expected.
func EngineDecodeTest(t *testing.T, b codec.EngineBuilder, data, expected []byte) {
	_, pix, err := Decode(b, data)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(expected, pix) {
		t.Errorf("Wrong decode result,\nexpected:\n%v\ngot:\n%v", expected, pix)
	}
}
