package frame

import (
	"errors"
	"image"

	"golang.org/x/image/draw"
)

// Scaler represents scaling algorithm
type Scaler draw.Scaler

// List of scaling algorithms
var (
	ScalerNearestNeighbor = Scaler(draw.NearestNeighbor)
	ScalerApproxBiLinear  = Scaler(draw.ApproxBiLinear)
	ScalerBiLinear        = Scaler(draw.BiLinear)
	ScalerCatmullRom      = Scaler(draw.CatmullRom)
)

var errInvalidScaleSize = errors.New("scaling: width and height are both non-positive")

// Scale returns a copy of src scaled to width x height.
// Setting scaler=nil to use default scaler. (ScalerNearestNeighbor)
// A non-positive width or height keeps the aspect ratio of src.
//
// Gray and 16-bit sources keep their sample model, everything else is scaled
// into an *image.NRGBA.
func Scale(src image.Image, width, height int, scaler Scaler) (image.Image, error) {
	if scaler == nil {
		scaler = ScalerNearestNeighbor
	}
	b := src.Bounds()
	switch {
	case width <= 0 && height <= 0:
		return nil, errInvalidScaleSize
	case b.Empty():
		return nil, errors.New("scaling: empty source image")
	case height <= 0:
		height = max(1, b.Dy()*width/b.Dx())
	case width <= 0:
		width = max(1, b.Dx()*height/b.Dy())
	}

	rect := image.Rect(0, 0, width, height)
	var dst draw.Image
	switch src.(type) {
	case *image.Gray:
		dst = image.NewGray(rect)
	case *image.Gray16:
		dst = image.NewGray16(rect)
	case *image.NRGBA64, *image.RGBA64:
		dst = image.NewNRGBA64(rect)
	default:
		dst = image.NewNRGBA(rect)
	}
	scaler.Scale(dst, rect, src, b, draw.Src, nil)
	return dst, nil
}
