package pngimage

import (
	"fmt"
	"image"

	"github.com/pion/pngimage/pkg/codec"
	"github.com/pion/pngimage/pkg/frame"
)

func (img *Image) decoded() error {
	if img == nil || img.state != StateDecoded || img.info == nil {
		return ErrNotReady
	}
	return nil
}

// Buffer returns the decoded image, RowBytes*Height bytes in row-major order.
// The slice aliases the Image's memory and must be treated as read-only.
func (img *Image) Buffer() ([]byte, error) {
	if err := img.decoded(); err != nil {
		return nil, err
	}
	return img.rows.Pix, nil
}

// Row returns row i of the decoded image.
func (img *Image) Row(i int) ([]byte, error) {
	if err := img.decoded(); err != nil {
		return nil, err
	}
	if i < 0 || i >= img.rows.Len() {
		return nil, fmt.Errorf("%w: row %d of %d", ErrOutOfBounds, i, img.rows.Len())
	}
	return img.rows.Row(i), nil
}

// Frame wraps the decoded buffer as an image.Image. Layouts with a matching
// image type are returned without copying. Gray and RGB images with a tRNS
// color key are copied into NRGBA with the keyed pixels transparent. Sub-byte
// depths are not supported, use At for those.
func (img *Image) Frame() (image.Image, error) {
	if err := img.decoded(); err != nil {
		return nil, err
	}
	f, err := frame.FormatFor(img.info.ColorType(), img.info.BitDepth())
	if err != nil {
		return nil, err
	}
	var decoder frame.Decoder
	if key := img.colorKey(); key != nil {
		decoder, err = frame.NewColorKeyDecoder(f, key)
	} else {
		decoder, err = frame.NewDecoder(f, img.info.Palette())
	}
	if err != nil {
		return nil, err
	}
	m, _, err := decoder.Decode(img.rows.Pix, int(img.info.Width()), int(img.info.Height()))
	return m, err
}

// colorKey returns the raw tRNS key of gray and RGB images, nil otherwise.
func (img *Image) colorKey() []byte {
	switch img.info.ColorType() {
	case codec.ColorTypeGray, codec.ColorTypeRGB:
		if key := img.info.Transparency(); len(key) > 0 {
			return key
		}
	}
	return nil
}
