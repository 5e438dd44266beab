package frame

import (
	"image"
	"image/color"
)

// RGB24Img is an opaque 8-bit RGB image backed by PNG's packed row layout.
type RGB24Img struct {
	// Pix holds the image's pixels, in R, G, B order. The pixel at
	// (x, y) starts at Pix[(y-Rect.Min.Y)*Stride + (x-Rect.Min.X)*3].
	Pix    []uint8
	Rect   image.Rectangle
	Stride int
}

func decodeRGB24() decoderFunc {
	return func(frame []byte, width, height int) (image.Image, func(), error) {
		stride, err := checkSize(frame, FormatRGB24, width, height)
		if err != nil {
			return nil, func() {}, err
		}
		size := stride * height
		return &RGB24Img{
			Pix:    frame[:size:size],
			Rect:   image.Rect(0, 0, width, height),
			Stride: stride,
		}, func() {}, nil
	}
}

func (p *RGB24Img) ColorModel() color.Model {
	return color.RGBAModel
}

func (p *RGB24Img) Bounds() image.Rectangle {
	return p.Rect
}

func (p *RGB24Img) PixOffset(x, y int) int {
	return (y-p.Rect.Min.Y)*p.Stride + (x-p.Rect.Min.X)*3
}

func (p *RGB24Img) At(x, y int) color.Color {
	return p.RGBAAt(x, y)
}

func (p *RGB24Img) RGBAAt(x, y int) color.RGBA {
	if !(image.Point{x, y}.In(p.Rect)) {
		return color.RGBA{}
	}
	i := p.PixOffset(x, y)
	s := p.Pix[i : i+3 : i+3] // Small capacity improves performance, see https://golang.org/issue/27857
	return color.RGBA{s[0], s[1], s[2], 0xff}
}

// Opaque reports whether the image is fully opaque, which always holds.
func (p *RGB24Img) Opaque() bool {
	return true
}
