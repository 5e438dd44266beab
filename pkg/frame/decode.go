package frame

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

var errSubByteDepth = errors.New("sub-byte bit depths are not supported")

// NewDecoder returns a Decoder for format f. p is only used by FormatPaletted8
// and may be nil otherwise.
func NewDecoder(f Format, p color.Palette) (Decoder, error) {
	var buildDecoder func() decoderFunc

	switch f {
	case FormatGray8:
		buildDecoder = decodeGray8
	case FormatGray16:
		buildDecoder = decodeGray16
	case FormatRGB24:
		buildDecoder = decodeRGB24
	case FormatRGB48:
		buildDecoder = decodeRGB48
	case FormatNRGBA:
		buildDecoder = decodeNRGBA
	case FormatNRGBA64:
		buildDecoder = decodeNRGBA64
	case FormatGrayAlpha8:
		buildDecoder = decodeGrayAlpha8
	case FormatGrayAlpha16:
		buildDecoder = decodeGrayAlpha16
	case FormatPaletted8:
		if len(p) == 0 {
			return nil, fmt.Errorf("%s requires a palette", f)
		}
		padded := PadPalette(p)
		buildDecoder = func() decoderFunc { return decodePaletted8(padded) }
	default:
		return nil, fmt.Errorf("%s is not supported", f)
	}

	return buildDecoder(), nil
}

// PadPalette returns p extended to 256 entries with opaque black, so that every
// 8-bit index resolves to a color. Full palettes are returned as is.
func PadPalette(p color.Palette) color.Palette {
	if len(p) >= 256 {
		return p
	}
	padded := make(color.Palette, 256)
	copy(padded, p)
	for i := len(p); i < len(padded); i++ {
		padded[i] = color.NRGBA{A: 0xff}
	}
	return padded
}

// FormatFor resolves the Format that matches a PNG color type and bit depth.
func FormatFor(colorType, bitDepth uint8) (Format, error) {
	if bitDepth < 8 {
		return "", fmt.Errorf("color type %d at depth %d: %w", colorType, bitDepth, errSubByteDepth)
	}
	wide := bitDepth == 16
	switch {
	case colorType == colorTypeGray && !wide:
		return FormatGray8, nil
	case colorType == colorTypeGray:
		return FormatGray16, nil
	case colorType == colorTypeRGB && !wide:
		return FormatRGB24, nil
	case colorType == colorTypeRGB:
		return FormatRGB48, nil
	case colorType == colorTypePalette && bitDepth == 8:
		return FormatPaletted8, nil
	case colorType == colorTypeGrayAlpha && !wide:
		return FormatGrayAlpha8, nil
	case colorType == colorTypeGrayAlpha:
		return FormatGrayAlpha16, nil
	case colorType == colorTypeRGBA && !wide:
		return FormatNRGBA, nil
	case colorType == colorTypeRGBA:
		return FormatNRGBA64, nil
	}
	return "", fmt.Errorf("color type %d at depth %d is not supported", colorType, bitDepth)
}

func checkSize(frame []byte, f Format, width, height int) (int, error) {
	if width < 0 || height < 0 {
		return 0, fmt.Errorf("invalid frame size %dx%d", width, height)
	}
	stride := BytesPerPixel(f) * width
	if size := stride * height; size > len(frame) {
		return 0, fmt.Errorf("frame length (%d) less than expected (%d)", len(frame), size)
	}
	return stride, nil
}

func decodeGray8() decoderFunc {
	return func(frame []byte, width, height int) (image.Image, func(), error) {
		stride, err := checkSize(frame, FormatGray8, width, height)
		if err != nil {
			return nil, func() {}, err
		}
		size := stride * height
		return &image.Gray{
			Pix:    frame[:size:size],
			Stride: stride,
			Rect:   image.Rect(0, 0, width, height),
		}, func() {}, nil
	}
}

// image.Gray16 shares the big-endian sample layout of PNG.
func decodeGray16() decoderFunc {
	return func(frame []byte, width, height int) (image.Image, func(), error) {
		stride, err := checkSize(frame, FormatGray16, width, height)
		if err != nil {
			return nil, func() {}, err
		}
		size := stride * height
		return &image.Gray16{
			Pix:    frame[:size:size],
			Stride: stride,
			Rect:   image.Rect(0, 0, width, height),
		}, func() {}, nil
	}
}

func decodeNRGBA() decoderFunc {
	return func(frame []byte, width, height int) (image.Image, func(), error) {
		stride, err := checkSize(frame, FormatNRGBA, width, height)
		if err != nil {
			return nil, func() {}, err
		}
		size := stride * height
		return &image.NRGBA{
			Pix:    frame[:size:size],
			Stride: stride,
			Rect:   image.Rect(0, 0, width, height),
		}, func() {}, nil
	}
}

func decodeNRGBA64() decoderFunc {
	return func(frame []byte, width, height int) (image.Image, func(), error) {
		stride, err := checkSize(frame, FormatNRGBA64, width, height)
		if err != nil {
			return nil, func() {}, err
		}
		size := stride * height
		return &image.NRGBA64{
			Pix:    frame[:size:size],
			Stride: stride,
			Rect:   image.Rect(0, 0, width, height),
		}, func() {}, nil
	}
}

func decodePaletted8(p color.Palette) decoderFunc {
	return func(frame []byte, width, height int) (image.Image, func(), error) {
		stride, err := checkSize(frame, FormatPaletted8, width, height)
		if err != nil {
			return nil, func() {}, err
		}
		size := stride * height
		return &image.Paletted{
			Pix:     frame[:size:size],
			Stride:  stride,
			Rect:    image.Rect(0, 0, width, height),
			Palette: p,
		}, func() {}, nil
	}
}

// RGB48 has no standard library layout, samples are widened into an opaque
// RGBA64 copy.
func decodeRGB48() decoderFunc {
	return func(frame []byte, width, height int) (image.Image, func(), error) {
		stride, err := checkSize(frame, FormatRGB48, width, height)
		if err != nil {
			return nil, func() {}, err
		}
		img := image.NewRGBA64(image.Rect(0, 0, width, height))
		for y := 0; y < height; y++ {
			src := frame[y*stride : (y+1)*stride]
			dst := img.Pix[y*img.Stride : (y+1)*img.Stride]
			for x := 0; x < width; x++ {
				copy(dst[8*x:8*x+6], src[6*x:6*x+6])
				dst[8*x+6], dst[8*x+7] = 0xff, 0xff
			}
		}
		return img, func() {}, nil
	}
}

func decodeGrayAlpha16() decoderFunc {
	return func(frame []byte, width, height int) (image.Image, func(), error) {
		stride, err := checkSize(frame, FormatGrayAlpha16, width, height)
		if err != nil {
			return nil, func() {}, err
		}
		img := image.NewNRGBA64(image.Rect(0, 0, width, height))
		for y := 0; y < height; y++ {
			src := frame[y*stride : (y+1)*stride]
			dst := img.Pix[y*img.Stride : (y+1)*img.Stride]
			for x := 0; x < width; x++ {
				s, d := src[4*x:4*x+4:4*x+4], dst[8*x:8*x+8:8*x+8]
				d[0], d[1] = s[0], s[1]
				d[2], d[3] = s[0], s[1]
				d[4], d[5] = s[0], s[1]
				d[6], d[7] = s[2], s[3]
			}
		}
		return img, func() {}, nil
	}
}
