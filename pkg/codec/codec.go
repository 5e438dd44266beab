// Package codec defines the narrow contract between the PNG decoding adapter and a
// PNG read engine. Engines report malformed input through returned errors; there is
// no out-of-band failure channel.
package codec

import (
	"errors"
	"image/color"
	"time"
)

// ErrState is returned by an engine when it's driven out of order, e.g. ReadImage
// before ReadInfo, or any call after Close.
var ErrState = errors.New("codec: engine used out of order")

// Color types, as per the PNG spec.
const (
	ColorTypeGray      uint8 = 0
	ColorTypeRGB       uint8 = 2
	ColorTypePalette   uint8 = 3
	ColorTypeGrayAlpha uint8 = 4
	ColorTypeRGBA      uint8 = 6
)

// Interlace methods, as per the PNG spec.
const (
	InterlaceNone  uint8 = 0
	InterlaceAdam7 uint8 = 1
)

// ReadFunc is the pull callback an engine uses to fetch the next n bytes of the
// datastream. It must either return exactly n bytes or an error.
type ReadFunc func(n int) ([]byte, error)

// Engine is a stateful PNG read engine.
type Engine interface {
	// SetReadFunc registers the byte source the engine pulls from.
	SetReadFunc(fn ReadFunc)
	// SetSigBytes tells the engine how many signature bytes were already consumed.
	SetSigBytes(n int)
	// NewInfo allocates the header state ReadInfo fills in.
	NewInfo() (Info, error)
	// ReadInfo reads every chunk up to the start of the image data.
	ReadInfo(info Info) error
	// ReadImage decodes the whole image into rows. Interlaced images are
	// delivered fully assembled.
	ReadImage(info Info, rows RowTable) error
	// Close releases the engine and any header state it handed out.
	Close() error
}

// EngineBuilder creates a fresh Engine.
type EngineBuilder func() (Engine, error)

// Background is the bKGD chunk content. Which fields are meaningful depends on the
// color type: Index for palette images, Gray for gray, R/G/B for truecolor.
type Background struct {
	Index   uint8
	Gray    uint16
	R, G, B uint16
}

// TextEntry is a tEXt keyword/value pair.
type TextEntry struct {
	Keyword string
	Text    string
}

// Info is the header state parsed by ReadInfo. Values are the zero value until
// ReadInfo succeeds.
type Info interface {
	Width() uint32
	Height() uint32
	BitDepth() uint8
	Channels() uint8
	ColorType() uint8
	InterlaceType() uint8
	// RowBytes is the byte length of one full-width decoded row.
	RowBytes() uint64
	// XOffsetPixels and YOffsetPixels are the oFFs values when expressed in pixels,
	// 0 otherwise.
	XOffsetPixels() int32
	YOffsetPixels() int32
	// XPixelsPerMeter and YPixelsPerMeter are the pHYs values when expressed in
	// meters, 0 otherwise.
	XPixelsPerMeter() uint32
	YPixelsPerMeter() uint32

	Palette() color.Palette
	Transparency() []byte
	Background() (Background, bool)
	Gamma() (float64, bool)
	ModTime() (time.Time, bool)
	Text() []TextEntry
}
