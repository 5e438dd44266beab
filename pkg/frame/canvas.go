package frame

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// ResizeCanvas places region of src at offset on a new size canvas filled with
// bg. Parts of region that fall outside src or the canvas are dropped. region is
// relative to the top left corner of src.
func ResizeCanvas(src image.Image, size, offset image.Point, region image.Rectangle, bg color.Color) (*image.NRGBA, error) {
	if size.X <= 0 || size.Y <= 0 {
		return nil, fmt.Errorf("invalid canvas size %dx%d", size.X, size.Y)
	}
	if bg == nil {
		bg = color.Transparent
	}

	dst := image.NewNRGBA(image.Rectangle{Max: size})
	draw.Draw(dst, dst.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	b := src.Bounds()
	region = region.Add(b.Min).Intersect(b)
	if region.Empty() {
		return dst, nil
	}
	// Clip the destination on the left and top, draw.Draw handles the rest.
	if offset.X < 0 {
		region.Min.X -= offset.X
		offset.X = 0
	}
	if offset.Y < 0 {
		region.Min.Y -= offset.Y
		offset.Y = 0
	}
	if region.Empty() {
		return dst, nil
	}
	r := image.Rectangle{Min: offset, Max: offset.Add(region.Size())}
	draw.Draw(dst, r, src, region.Min, draw.Src)
	return dst, nil
}
