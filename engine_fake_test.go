package pngimage

import (
	"image/color"
	"time"

	"github.com/pion/pngimage/pkg/codec"
)

type fakeInfo struct {
	width, height   uint32
	depth, channels uint8
	colorType       uint8
	interlace       uint8
	rowBytes        uint64
}

func (i *fakeInfo) Width() uint32 { return i.width }
func (i *fakeInfo) Height() uint32 { return i.height }
func (i *fakeInfo) BitDepth() uint8 { return i.depth }
func (i *fakeInfo) Channels() uint8 { return i.channels }
func (i *fakeInfo) ColorType() uint8 { return i.colorType }
func (i *fakeInfo) InterlaceType() uint8 { return i.interlace }
func (i *fakeInfo) RowBytes() uint64 { return i.rowBytes }
func (i *fakeInfo) XOffsetPixels() int32 { return 0 }
func (i *fakeInfo) YOffsetPixels() int32 { return 0 }
func (i *fakeInfo) XPixelsPerMeter() uint32 { return 0 }
func (i *fakeInfo) YPixelsPerMeter() uint32 { return 0 }
func (i *fakeInfo) Palette() color.Palette { return nil }
func (i *fakeInfo) Transparency() []byte { return nil }
func (i *fakeInfo) Background() (codec.Background, bool) { return codec.Background{}, false }
func (i *fakeInfo) Gamma() (float64, bool) { return 0, false }
func (i *fakeInfo) ModTime() (time.Time, bool) { return time.Time{}, false }
func (i *fakeInfo) Text() []codec.TextEntry { return nil }

// fakeEngine hands out a fixed fakeInfo and fails on demand.
type fakeEngine struct {
	info *fakeInfo

	newInfoErr   error
	readInfoErr  error
	readImageErr error

	readFn   codec.ReadFunc
	sigBytes int
	closed   int
}

func (e *fakeEngine) SetReadFunc(fn codec.ReadFunc) { e.readFn = fn }
func (e *fakeEngine) SetSigBytes(n int) { e.sigBytes = n }

func (e *fakeEngine) NewInfo() (codec.Info, error) {
	if e.newInfoErr != nil {
		return nil, e.newInfoErr
	}
	return e.info, nil
}

func (e *fakeEngine) ReadInfo(codec.Info) error { return e.readInfoErr }

func (e *fakeEngine) ReadImage(_ codec.Info, rows codec.RowTable) error {
	if e.readImageErr != nil {
		return e.readImageErr
	}
	for i := 0; i < rows.Len(); i++ {
		row := rows.Row(i)
		for j := range row {
			row[j] = byte(i)
		}
	}
	return nil
}

func (e *fakeEngine) Close() error {
	e.closed++
	return nil
}

func (e *fakeEngine) builder() codec.EngineBuilder {
	return func() (codec.Engine, error) { return e, nil }
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{
		info: &fakeInfo{width: 4, height: 2, depth: 8, channels: 1, colorType: codec.ColorTypeGray, rowBytes: 4},
	}
}
