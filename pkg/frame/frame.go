package frame

import "image"

// Decoder wraps raw, unfiltered PNG rows as an image.Image. The returned
// release function must be called once the image is no longer used.
type Decoder interface {
	Decode(frame []byte, width, height int) (image.Image, func(), error)
}

// DecoderFunc is a proxy type for Decoder
type decoderFunc func(frame []byte, width, height int) (image.Image, func(), error)

func (f decoderFunc) Decode(frame []byte, width, height int) (image.Image, func(), error) {
	return f(frame, width, height)
}

// BytesPerPixel returns the number of bytes one pixel occupies in format f.
func BytesPerPixel(f Format) int {
	switch f {
	case FormatGray8, FormatPaletted8:
		return 1
	case FormatGray16, FormatGrayAlpha8:
		return 2
	case FormatRGB24:
		return 3
	case FormatNRGBA, FormatGrayAlpha16:
		return 4
	case FormatRGB48:
		return 6
	case FormatNRGBA64:
		return 8
	default:
		return 0
	}
}
