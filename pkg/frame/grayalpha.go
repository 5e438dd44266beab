package frame

import (
	"image"
	"image/color"
)

// GrayAlphaImg is an 8-bit gray image with a non-premultiplied alpha channel,
// stored as PNG lays out color type 4 rows.
type GrayAlphaImg struct {
	// Pix holds gray, alpha pairs. The pixel at (x, y) starts at
	// Pix[(y-Rect.Min.Y)*Stride + (x-Rect.Min.X)*2].
	Pix    []uint8
	Rect   image.Rectangle
	Stride int
}

func decodeGrayAlpha8() decoderFunc {
	return func(frame []byte, width, height int) (image.Image, func(), error) {
		stride, err := checkSize(frame, FormatGrayAlpha8, width, height)
		if err != nil {
			return nil, func() {}, err
		}
		size := stride * height
		return &GrayAlphaImg{
			Pix:    frame[:size:size],
			Rect:   image.Rect(0, 0, width, height),
			Stride: stride,
		}, func() {}, nil
	}
}

func (p *GrayAlphaImg) ColorModel() color.Model {
	return color.NRGBAModel
}

func (p *GrayAlphaImg) Bounds() image.Rectangle {
	return p.Rect
}

func (p *GrayAlphaImg) PixOffset(x, y int) int {
	return (y-p.Rect.Min.Y)*p.Stride + (x-p.Rect.Min.X)*2
}

func (p *GrayAlphaImg) At(x, y int) color.Color {
	return p.NRGBAAt(x, y)
}

func (p *GrayAlphaImg) NRGBAAt(x, y int) color.NRGBA {
	if !(image.Point{x, y}.In(p.Rect)) {
		return color.NRGBA{}
	}
	i := p.PixOffset(x, y)
	s := p.Pix[i : i+2 : i+2]
	return color.NRGBA{s[0], s[0], s[0], s[1]}
}
