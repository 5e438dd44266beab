package frame

import (
	"encoding/binary"
	"fmt"
	"image"
)

// NewColorKeyDecoder returns a Decoder for gray or RGB frames that carry a tRNS
// color key. key holds the raw tRNS payload: one big-endian 16-bit sample for
// gray, three for RGB. Pixels equal to the key become fully transparent, the
// rest opaque. 8-bit formats decode to *image.NRGBA, 16-bit ones to
// *image.NRGBA64.
func NewColorKeyDecoder(f Format, key []byte) (Decoder, error) {
	var channels int
	switch f {
	case FormatGray8, FormatGray16:
		channels = 1
	case FormatRGB24, FormatRGB48:
		channels = 3
	default:
		return nil, fmt.Errorf("%s does not take a color key", f)
	}
	if len(key) != 2*channels {
		return nil, fmt.Errorf("%s color key is %d bytes, want %d", f, len(key), 2*channels)
	}
	samples := make([]uint16, channels)
	for i := range samples {
		samples[i] = binary.BigEndian.Uint16(key[2*i:])
	}

	if f == FormatGray16 || f == FormatRGB48 {
		return decodeKeyed16(f, samples), nil
	}
	return decodeKeyed8(f, samples), nil
}

func decodeKeyed8(f Format, key []uint16) decoderFunc {
	channels := len(key)
	return func(frame []byte, width, height int) (image.Image, func(), error) {
		stride, err := checkSize(frame, f, width, height)
		if err != nil {
			return nil, func() {}, err
		}
		img := image.NewNRGBA(image.Rect(0, 0, width, height))
		for y := 0; y < height; y++ {
			src := frame[y*stride : (y+1)*stride]
			dst := img.Pix[y*img.Stride : (y+1)*img.Stride]
			for x := 0; x < width; x++ {
				s, d := src[channels*x:channels*(x+1)], dst[4*x:4*x+4:4*x+4]
				keyed := true
				for i, v := range s {
					keyed = keyed && uint16(v) == key[i]
				}
				if channels == 1 {
					d[0], d[1], d[2] = s[0], s[0], s[0]
				} else {
					d[0], d[1], d[2] = s[0], s[1], s[2]
				}
				d[3] = 0xff
				if keyed {
					d[3] = 0
				}
			}
		}
		return img, func() {}, nil
	}
}

func decodeKeyed16(f Format, key []uint16) decoderFunc {
	channels := len(key)
	return func(frame []byte, width, height int) (image.Image, func(), error) {
		stride, err := checkSize(frame, f, width, height)
		if err != nil {
			return nil, func() {}, err
		}
		img := image.NewNRGBA64(image.Rect(0, 0, width, height))
		for y := 0; y < height; y++ {
			src := frame[y*stride : (y+1)*stride]
			dst := img.Pix[y*img.Stride : (y+1)*img.Stride]
			for x := 0; x < width; x++ {
				s, d := src[2*channels*x:2*channels*(x+1)], dst[8*x:8*x+8:8*x+8]
				keyed := true
				for i := range key {
					keyed = keyed && binary.BigEndian.Uint16(s[2*i:]) == key[i]
				}
				if channels == 1 {
					copy(d[0:2], s)
					copy(d[2:4], s)
					copy(d[4:6], s)
				} else {
					copy(d[0:6], s)
				}
				d[6], d[7] = 0xff, 0xff
				if keyed {
					d[6], d[7] = 0, 0
				}
			}
		}
		return img, func() {}, nil
	}
}
