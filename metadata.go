package pngimage

import (
	"fmt"
	"image/color"
	"time"

	"github.com/pion/pngimage/pkg/codec"
)

// ColorType is the normalized PNG color type.
type ColorType string

// ColorType values. Any color type code the engine reports that is not listed
// here is ColorTypeUnknown.
const (
	ColorTypePalette   ColorType = "palette"
	ColorTypeGray      ColorType = "gray"
	ColorTypeGrayAlpha ColorType = "gray-alpha"
	ColorTypeRGB       ColorType = "rgb"
	ColorTypeRGBA      ColorType = "rgb-alpha"
	ColorTypeUnknown   ColorType = "unknown"
)

func colorTypeOf(code uint8) ColorType {
	switch code {
	case codec.ColorTypePalette:
		return ColorTypePalette
	case codec.ColorTypeGray:
		return ColorTypeGray
	case codec.ColorTypeGrayAlpha:
		return ColorTypeGrayAlpha
	case codec.ColorTypeRGB:
		return ColorTypeRGB
	case codec.ColorTypeRGBA:
		return ColorTypeRGBA
	default:
		return ColorTypeUnknown
	}
}

// InterlaceType is the normalized PNG interlace method.
type InterlaceType string

// InterlaceType values.
const (
	InterlaceNone    InterlaceType = "none"
	InterlaceAdam7   InterlaceType = "adam7"
	InterlaceUnknown InterlaceType = "unknown"
)

func interlaceTypeOf(code uint8) InterlaceType {
	switch code {
	case codec.InterlaceNone:
		return InterlaceNone
	case codec.InterlaceAdam7:
		return InterlaceAdam7
	default:
		return InterlaceUnknown
	}
}

// Metadata is a snapshot of everything the header and ancillary chunks told
// about an image.
type Metadata struct {
	Width           uint32
	Height          uint32
	BitDepth        uint8
	Channels        uint8
	BytesPerPixel   uint8
	RowBytes        uint64
	ColorType       ColorType
	InterlaceType   InterlaceType
	OffsetX         int32
	OffsetY         int32
	PixelsPerMeterX uint32
	PixelsPerMeterY uint32

	Palette    color.Palette
	Background color.Color // nil without a bKGD chunk
	Gamma      float64     // 0 without a gAMA chunk
	Time       time.Time   // zero without a tIME chunk
	Text       map[string]string
}

// headerInfo returns the engine info once the header has been parsed.
func (img *Image) headerInfo() (codec.Info, error) {
	if img == nil || img.info == nil {
		return nil, ErrNotReady
	}
	switch img.state {
	case StateHeaderParsed, StateDecoded:
		return img.info, nil
	default:
		return nil, ErrNotReady
	}
}

// Width returns the image width in pixels.
func (img *Image) Width() (uint32, error) {
	info, err := img.headerInfo()
	if err != nil {
		return 0, err
	}
	w := info.Width()
	if w == 0 {
		return 0, fmt.Errorf("%w: width", ErrDimensionUnavailable)
	}
	return w, nil
}

// Height returns the image height in pixels.
func (img *Image) Height() (uint32, error) {
	info, err := img.headerInfo()
	if err != nil {
		return 0, err
	}
	h := info.Height()
	if h == 0 {
		return 0, fmt.Errorf("%w: height", ErrDimensionUnavailable)
	}
	return h, nil
}

// BitDepth returns the number of bits per sample or palette index.
func (img *Image) BitDepth() (uint8, error) {
	info, err := img.headerInfo()
	if err != nil {
		return 0, err
	}
	return info.BitDepth(), nil
}

// Channels returns the number of samples per pixel.
func (img *Image) Channels() (uint8, error) {
	info, err := img.headerInfo()
	if err != nil {
		return 0, err
	}
	return info.Channels(), nil
}

// BytesPerPixel returns the number of whole bytes one pixel occupies, rounded
// up. Sub-byte images report 1.
func (img *Image) BytesPerPixel() (uint8, error) {
	info, err := img.headerInfo()
	if err != nil {
		return 0, err
	}
	return bytesPerPixel(info), nil
}

func bytesPerPixel(info codec.Info) uint8 {
	return uint8((uint(info.BitDepth())*uint(info.Channels()) + 7) / 8)
}

// RowBytes returns the length in bytes of one decoded row.
func (img *Image) RowBytes() (uint64, error) {
	info, err := img.headerInfo()
	if err != nil {
		return 0, err
	}
	return info.RowBytes(), nil
}

// ColorType returns the normalized color type.
func (img *Image) ColorType() (ColorType, error) {
	info, err := img.headerInfo()
	if err != nil {
		return "", err
	}
	return colorTypeOf(info.ColorType()), nil
}

// InterlaceType returns the normalized interlace method.
func (img *Image) InterlaceType() (InterlaceType, error) {
	info, err := img.headerInfo()
	if err != nil {
		return "", err
	}
	return interlaceTypeOf(info.InterlaceType()), nil
}

// OffsetX returns the oFFs horizontal position in pixels, 0 if absent or given
// in another unit.
func (img *Image) OffsetX() (int32, error) {
	info, err := img.headerInfo()
	if err != nil {
		return 0, err
	}
	return info.XOffsetPixels(), nil
}

// OffsetY returns the oFFs vertical position in pixels.
func (img *Image) OffsetY() (int32, error) {
	info, err := img.headerInfo()
	if err != nil {
		return 0, err
	}
	return info.YOffsetPixels(), nil
}

// PixelsPerMeterX returns the horizontal pHYs density, 0 if absent or not given
// in meters.
func (img *Image) PixelsPerMeterX() (uint32, error) {
	info, err := img.headerInfo()
	if err != nil {
		return 0, err
	}
	return info.XPixelsPerMeter(), nil
}

// PixelsPerMeterY returns the vertical pHYs density.
func (img *Image) PixelsPerMeterY() (uint32, error) {
	info, err := img.headerInfo()
	if err != nil {
		return 0, err
	}
	return info.YPixelsPerMeter(), nil
}

// Palette returns the PLTE entries with tRNS alpha applied, nil without PLTE.
func (img *Image) Palette() (color.Palette, error) {
	info, err := img.headerInfo()
	if err != nil {
		return nil, err
	}
	return info.Palette(), nil
}

// BackgroundColor returns the bKGD color resolved for the image color type. ok
// is false when the chunk is absent or names a palette entry that does not exist.
func (img *Image) BackgroundColor() (c color.Color, ok bool, err error) {
	info, err := img.headerInfo()
	if err != nil {
		return nil, false, err
	}
	c, ok = backgroundColor(info)
	return c, ok, nil
}

func backgroundColor(info codec.Info) (color.Color, bool) {
	bg, ok := info.Background()
	if !ok {
		return nil, false
	}
	wide := info.BitDepth() == 16
	switch info.ColorType() {
	case codec.ColorTypePalette:
		p := info.Palette()
		if int(bg.Index) >= len(p) {
			return nil, false
		}
		return p[bg.Index], true
	case codec.ColorTypeGray, codec.ColorTypeGrayAlpha:
		if wide {
			return color.Gray16{Y: bg.Gray}, true
		}
		return color.Gray16{Y: scaleSample(bg.Gray, info.BitDepth())}, true
	case codec.ColorTypeRGB, codec.ColorTypeRGBA:
		if wide {
			return color.RGBA64{R: bg.R, G: bg.G, B: bg.B, A: 0xffff}, true
		}
		return color.RGBA64{R: bg.R * 0x101, G: bg.G * 0x101, B: bg.B * 0x101, A: 0xffff}, true
	}
	return nil, false
}

// scaleSample widens a gray sample of the given depth to 16 bits.
func scaleSample(v uint16, depth uint8) uint16 {
	if depth == 0 || depth >= 16 {
		return v
	}
	maxIn := uint32(1)<<depth - 1
	return uint16(uint32(v) * 0xffff / maxIn)
}

// Gamma returns the gAMA file gamma. ok is false without the chunk.
func (img *Image) Gamma() (gamma float64, ok bool, err error) {
	info, err := img.headerInfo()
	if err != nil {
		return 0, false, err
	}
	gamma, ok = info.Gamma()
	return gamma, ok, nil
}

// Time returns the tIME last modification time in UTC. ok is false without the
// chunk.
func (img *Image) Time() (t time.Time, ok bool, err error) {
	info, err := img.headerInfo()
	if err != nil {
		return time.Time{}, false, err
	}
	t, ok = info.ModTime()
	return t, ok, nil
}

// Text returns the tEXt entries keyed by keyword. Later entries win.
func (img *Image) Text() (map[string]string, error) {
	info, err := img.headerInfo()
	if err != nil {
		return nil, err
	}
	return textMap(info.Text()), nil
}

func textMap(entries []codec.TextEntry) map[string]string {
	if len(entries) == 0 {
		return nil
	}
	m := make(map[string]string, len(entries))
	for _, e := range entries {
		m[e.Keyword] = e.Text
	}
	return m
}

// Metadata returns a snapshot of all header metadata.
func (img *Image) Metadata() (Metadata, error) {
	info, err := img.headerInfo()
	if err != nil {
		return Metadata{}, err
	}
	m := Metadata{
		Width:           info.Width(),
		Height:          info.Height(),
		BitDepth:        info.BitDepth(),
		Channels:        info.Channels(),
		BytesPerPixel:   bytesPerPixel(info),
		RowBytes:        info.RowBytes(),
		ColorType:       colorTypeOf(info.ColorType()),
		InterlaceType:   interlaceTypeOf(info.InterlaceType()),
		OffsetX:         info.XOffsetPixels(),
		OffsetY:         info.YOffsetPixels(),
		PixelsPerMeterX: info.XPixelsPerMeter(),
		PixelsPerMeterY: info.YPixelsPerMeter(),
		Palette:         info.Palette(),
		Text:            textMap(info.Text()),
	}
	if bg, ok := backgroundColor(info); ok {
		m.Background = bg
	}
	if g, ok := info.Gamma(); ok {
		m.Gamma = g
	}
	if t, ok := info.ModTime(); ok {
		m.Time = t
	}
	return m, nil
}

// ToIndex returns the byte offset of pixel (x, y) in Buffer. Sub-byte images
// report the offset of the byte holding the pixel.
func (img *Image) ToIndex(x, y uint32) (uint64, error) {
	info, err := img.headerInfo()
	if err != nil {
		return 0, err
	}
	if x >= info.Width() || y >= info.Height() {
		return 0, fmt.Errorf("%w: (%d, %d) in %dx%d", ErrOutOfBounds, x, y, info.Width(), info.Height())
	}
	bitsPerPixel := uint64(info.BitDepth()) * uint64(info.Channels())
	return uint64(y)*info.RowBytes() + uint64(x)*bitsPerPixel/8, nil
}

// ToXY returns the pixel whose data starts at byte offset index in Buffer. For
// sub-byte images the first pixel held by that byte is returned.
func (img *Image) ToXY(index uint64) (x, y uint32, err error) {
	info, err := img.headerInfo()
	if err != nil {
		return 0, 0, err
	}
	rowBytes := info.RowBytes()
	if rowBytes == 0 || index >= rowBytes*uint64(info.Height()) {
		return 0, 0, fmt.Errorf("%w: index %d", ErrOutOfBounds, index)
	}
	bitsPerPixel := uint64(info.BitDepth()) * uint64(info.Channels())
	if bitsPerPixel == 0 {
		return 0, 0, fmt.Errorf("%w: unknown pixel size", ErrOutOfBounds)
	}
	col := (index % rowBytes) * 8 / bitsPerPixel
	if col >= uint64(info.Width()) {
		return 0, 0, fmt.Errorf("%w: index %d is row padding", ErrOutOfBounds, index)
	}
	return uint32(col), uint32(index / rowBytes), nil
}
