package native

import (
	"encoding/binary"
	"fmt"
	"image/color"
	"time"

	"github.com/pion/pngimage/pkg/codec"
)

const ihdrLength = 13

// Units used by pHYs and oFFs.
const (
	physUnitMeter   = 1
	offsUnitPixel   = 0
	gammaResolution = 100000
)

// info is the header state filled in by ReadInfo.
type info struct {
	owner *engine

	width, height uint32
	depth         uint8
	colorType     uint8
	interlace     uint8
	bitsPerPixel  int

	palette      color.Palette
	transparency []byte
	background   codec.Background
	hasBKGD      bool
	gamma        float64
	hasGAMA      bool
	modTime      time.Time
	hasTIME      bool
	physX, physY uint32
	physUnit     uint8
	offX, offY   int32
	offUnit      uint8
	hasOFFS      bool
	text         []codec.TextEntry
}

var _ codec.Info = &info{}

func (i *info) Width() uint32 { return i.width }
func (i *info) Height() uint32 { return i.height }
func (i *info) BitDepth() uint8 { return i.depth }
func (i *info) ColorType() uint8 { return i.colorType }
func (i *info) InterlaceType() uint8 { return i.interlace }

func (i *info) Channels() uint8 {
	switch i.colorType {
	case codec.ColorTypeGray, codec.ColorTypePalette:
		return 1
	case codec.ColorTypeGrayAlpha:
		return 2
	case codec.ColorTypeRGB:
		return 3
	case codec.ColorTypeRGBA:
		return 4
	}
	return 0
}

func (i *info) RowBytes() uint64 {
	return rowBytes(i.bitsPerPixel, i.width)
}

func (i *info) XOffsetPixels() int32 {
	if !i.hasOFFS || i.offUnit != offsUnitPixel {
		return 0
	}
	return i.offX
}

func (i *info) YOffsetPixels() int32 {
	if !i.hasOFFS || i.offUnit != offsUnitPixel {
		return 0
	}
	return i.offY
}

func (i *info) XPixelsPerMeter() uint32 {
	if i.physUnit != physUnitMeter {
		return 0
	}
	return i.physX
}

func (i *info) YPixelsPerMeter() uint32 {
	if i.physUnit != physUnitMeter {
		return 0
	}
	return i.physY
}

func (i *info) Palette() color.Palette { return i.palette }
func (i *info) Transparency() []byte { return i.transparency }
func (i *info) Background() (codec.Background, bool) { return i.background, i.hasBKGD }
func (i *info) Gamma() (float64, bool) { return i.gamma, i.hasGAMA }
func (i *info) ModTime() (time.Time, bool) { return i.modTime, i.hasTIME }
func (i *info) Text() []codec.TextEntry { return i.text }

func rowBytes(bitsPerPixel int, width uint32) uint64 {
	return (uint64(bitsPerPixel)*uint64(width) + 7) / 8
}

// Parse IHDR chunk.
// http://www.libpng.org/pub/png/spec/1.2/PNG-Chunks.html#C.IHDR
//
//	width:              4 bytes
//	height:             4 bytes
//	Bit depth:          1 byte
//	Color type:         1 byte
//	Compression method: 1 byte
//	Filter method:      1 byte
//	Interlace method:   1 byte
func (i *info) parseIHDR(data []byte) error {
	if len(data) != ihdrLength {
		return FormatError(fmt.Sprintf("bad IHDR length: %d", len(data)))
	}

	i.width = binary.BigEndian.Uint32(data[0:4])
	i.height = binary.BigEndian.Uint32(data[4:8])
	if i.width == 0 || i.height == 0 || i.width > maxChunkLength || i.height > maxChunkLength {
		return FormatError(fmt.Sprintf("invalid dimensions %dx%d", i.width, i.height))
	}

	i.depth = data[8]
	i.colorType = data[9]
	valid := false
	switch i.colorType {
	case codec.ColorTypeGray:
		valid = i.depth == 1 || i.depth == 2 || i.depth == 4 || i.depth == 8 || i.depth == 16
	case codec.ColorTypePalette:
		valid = i.depth == 1 || i.depth == 2 || i.depth == 4 || i.depth == 8
	case codec.ColorTypeRGB, codec.ColorTypeGrayAlpha, codec.ColorTypeRGBA:
		valid = i.depth == 8 || i.depth == 16
	}
	if !valid {
		return FormatError(fmt.Sprintf("bit depth %d, color type %d", i.depth, i.colorType))
	}
	i.bitsPerPixel = int(i.depth) * int(i.Channels())

	// Only compression method 0 is supported
	if data[10] != 0 {
		return UnsupportedError(fmt.Sprintf("compression method %d", data[10]))
	}
	// Only filter method 0 is supported
	if data[11] != 0 {
		return UnsupportedError(fmt.Sprintf("filter method %d", data[11]))
	}
	// Only interlace methods 0 and 1 are supported
	if data[12] != codec.InterlaceNone && data[12] != codec.InterlaceAdam7 {
		return FormatError(fmt.Sprintf("invalid interlace method %d", data[12]))
	}
	i.interlace = data[12]

	return nil
}

func (i *info) parsePLTE(data []byte) error {
	switch i.colorType {
	case codec.ColorTypePalette, codec.ColorTypeRGB, codec.ColorTypeRGBA:
	default:
		return FormatError("PLTE, color type mismatch")
	}
	n := len(data) / 3
	if len(data)%3 != 0 || n == 0 || n > 256 {
		return FormatError(fmt.Sprintf("bad PLTE length: %d", len(data)))
	}
	if i.colorType == codec.ColorTypePalette && n > 1<<i.depth {
		return FormatError(fmt.Sprintf("PLTE has %d entries for bit depth %d", n, i.depth))
	}

	i.palette = make(color.Palette, n)
	for j := range i.palette {
		i.palette[j] = color.NRGBA{data[3*j], data[3*j+1], data[3*j+2], 0xff}
	}
	return nil
}

// parseTRNS keeps the raw transparency data. Malformed tRNS chunks are dropped, the
// image itself stays decodable.
func (i *info) parseTRNS(data []byte) {
	switch i.colorType {
	case codec.ColorTypeGray:
		if len(data) != 2 {
			return
		}
	case codec.ColorTypeRGB:
		if len(data) != 6 {
			return
		}
	case codec.ColorTypePalette:
		if len(data) > len(i.palette) {
			return
		}
		for j, a := range data {
			c := i.palette[j].(color.NRGBA)
			c.A = a
			i.palette[j] = c
		}
	default:
		return
	}
	i.transparency = data
}

func (i *info) parseBKGD(data []byte) {
	switch i.colorType {
	case codec.ColorTypePalette:
		if len(data) != 1 {
			return
		}
		i.background.Index = data[0]
	case codec.ColorTypeGray, codec.ColorTypeGrayAlpha:
		if len(data) != 2 {
			return
		}
		i.background.Gray = binary.BigEndian.Uint16(data)
	default:
		if len(data) != 6 {
			return
		}
		i.background.R = binary.BigEndian.Uint16(data[0:2])
		i.background.G = binary.BigEndian.Uint16(data[2:4])
		i.background.B = binary.BigEndian.Uint16(data[4:6])
	}
	i.hasBKGD = true
}

func (i *info) parseGAMA(data []byte) {
	if len(data) != 4 {
		return
	}
	i.gamma = float64(binary.BigEndian.Uint32(data)) / gammaResolution
	i.hasGAMA = true
}

func (i *info) parsePHYS(data []byte) {
	if len(data) != 9 {
		return
	}
	i.physX = binary.BigEndian.Uint32(data[0:4])
	i.physY = binary.BigEndian.Uint32(data[4:8])
	i.physUnit = data[8]
}

func (i *info) parseOFFS(data []byte) {
	if len(data) != 9 {
		return
	}
	i.offX = int32(binary.BigEndian.Uint32(data[0:4]))
	i.offY = int32(binary.BigEndian.Uint32(data[4:8]))
	i.offUnit = data[8]
	i.hasOFFS = true
}

func (i *info) parseTIME(data []byte) {
	if len(data) != 7 {
		return
	}
	year := int(binary.BigEndian.Uint16(data[0:2]))
	i.modTime = time.Date(year, time.Month(data[2]), int(data[3]), int(data[4]), int(data[5]), int(data[6]), 0, time.UTC)
	i.hasTIME = true
}

// parseTEXT decodes a Latin-1 keyword/text pair.
func (i *info) parseTEXT(data []byte) {
	sep := -1
	for j, b := range data {
		if b == 0 {
			sep = j
			break
		}
	}
	if sep < 1 || sep > 79 {
		return
	}
	i.text = append(i.text, codec.TextEntry{
		Keyword: latin1(data[:sep]),
		Text:    latin1(data[sep+1:]),
	})
}

func latin1(b []byte) string {
	r := make([]rune, len(b))
	for j, c := range b {
		r[j] = rune(c)
	}
	return string(r)
}
