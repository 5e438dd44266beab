package pngimage

import (
	"encoding/binary"
	"fmt"
	"image/color"

	"github.com/pion/pngimage/pkg/codec"
)

var opaqueBlack = color.NRGBA64{A: 0xffff}

// At returns pixel (x, y) of the decoded image widened to 16 bits per channel.
// It works for every bit depth, sub-byte samples included. Palette indices past
// the end of PLTE read as opaque black, and gray or RGB pixels matching a tRNS
// color key come back fully transparent.
func (img *Image) At(x, y uint32) (color.NRGBA64, error) {
	if err := img.decoded(); err != nil {
		return color.NRGBA64{}, err
	}
	info := img.info
	if x >= info.Width() || y >= info.Height() {
		return color.NRGBA64{}, fmt.Errorf("%w: (%d, %d) outside %dx%d", ErrOutOfBounds, x, y, info.Width(), info.Height())
	}

	row := img.rows.Row(int(y))
	depth := info.BitDepth()
	channels := uint64(info.Channels())
	sample := func(c uint64) uint16 {
		bit := (uint64(x)*channels + c) * uint64(depth)
		if depth == 16 {
			return binary.BigEndian.Uint16(row[bit/8:])
		}
		mask := byte(1)<<depth - 1
		return uint16(row[bit/8] >> (8 - uint64(depth) - bit%8) & mask)
	}
	wide := func(c uint64) uint16 { return scaleSample(sample(c), depth) }

	switch info.ColorType() {
	case codec.ColorTypePalette:
		return paletteColor(info.Palette(), int(sample(0))), nil
	case codec.ColorTypeGray:
		v := wide(0)
		c := color.NRGBA64{R: v, G: v, B: v, A: 0xffff}
		if keyMatches(img.colorKey(), sample(0)) {
			c.A = 0
		}
		return c, nil
	case codec.ColorTypeGrayAlpha:
		v := wide(0)
		return color.NRGBA64{R: v, G: v, B: v, A: wide(1)}, nil
	case codec.ColorTypeRGB:
		c := color.NRGBA64{R: wide(0), G: wide(1), B: wide(2), A: 0xffff}
		if keyMatches(img.colorKey(), sample(0), sample(1), sample(2)) {
			c.A = 0
		}
		return c, nil
	case codec.ColorTypeRGBA:
		return color.NRGBA64{R: wide(0), G: wide(1), B: wide(2), A: wide(3)}, nil
	}
	return color.NRGBA64{}, fmt.Errorf("%w: color type %d", ErrImageDecode, info.ColorType())
}

func paletteColor(p color.Palette, i int) color.NRGBA64 {
	if i >= len(p) {
		return opaqueBlack
	}
	if c, ok := p[i].(color.NRGBA); ok {
		return color.NRGBA64{
			R: uint16(c.R) * 0x101, G: uint16(c.G) * 0x101, B: uint16(c.B) * 0x101, A: uint16(c.A) * 0x101,
		}
	}
	return color.NRGBA64Model.Convert(p[i]).(color.NRGBA64)
}

// keyMatches compares raw samples against a big-endian tRNS key.
func keyMatches(key []byte, samples ...uint16) bool {
	if len(key) != 2*len(samples) {
		return false
	}
	for i, s := range samples {
		if binary.BigEndian.Uint16(key[2*i:]) != s {
			return false
		}
	}
	return true
}
