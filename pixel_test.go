package pngimage

import (
	"image/color"
	"testing"

	"github.com/pion/pngimage/internal/pngtest"
	"github.com/pion/pngimage/pkg/codec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gray(v uint16) color.NRGBA64 { return color.NRGBA64{R: v, G: v, B: v, A: 0xffff} }

func TestAt(t *testing.T) {
	red := color.NRGBA64{R: 0xffff, A: 0xffff}
	green := color.NRGBA64{G: 0xffff, A: 0xffff}

	cases := map[string]struct {
		img      pngtest.Image
		expected []color.NRGBA64
	}{
		"Gray1": {
			img: pngtest.Image{
				Width: 8, Height: 1, BitDepth: 1, ColorType: codec.ColorTypeGray,
				Rows: [][]byte{{0xb0}},
			},
			expected: []color.NRGBA64{
				gray(0xffff), gray(0), gray(0xffff), gray(0xffff), gray(0), gray(0), gray(0), gray(0),
			},
		},
		"Gray2": {
			img: pngtest.Image{
				Width: 4, Height: 1, BitDepth: 2, ColorType: codec.ColorTypeGray,
				Rows: [][]byte{{0x1b}},
			},
			expected: []color.NRGBA64{gray(0), gray(0x5555), gray(0xaaaa), gray(0xffff)},
		},
		"Gray4": {
			img: pngtest.Image{
				Width: 3, Height: 1, BitDepth: 4, ColorType: codec.ColorTypeGray,
				Rows: [][]byte{{0x3c, 0xf0}},
			},
			expected: []color.NRGBA64{gray(0x3333), gray(0xcccc), gray(0xffff)},
		},
		"Gray8Keyed": {
			img: pngtest.Image{
				Width: 2, Height: 1, BitDepth: 8, ColorType: codec.ColorTypeGray,
				Rows:      [][]byte{{0x10, 0x20}},
				Ancillary: []pngtest.Chunk{{Type: "tRNS", Data: []byte{0, 0x10}}},
			},
			expected: []color.NRGBA64{{R: 0x1010, G: 0x1010, B: 0x1010}, gray(0x2020)},
		},
		"Gray1Keyed": {
			img: pngtest.Image{
				Width: 2, Height: 1, BitDepth: 1, ColorType: codec.ColorTypeGray,
				Rows:      [][]byte{{0x80}},
				Ancillary: []pngtest.Chunk{{Type: "tRNS", Data: []byte{0, 1}}},
			},
			expected: []color.NRGBA64{{R: 0xffff, G: 0xffff, B: 0xffff}, gray(0)},
		},
		"GrayAlpha8": {
			img: pngtest.Image{
				Width: 1, Height: 1, BitDepth: 8, ColorType: codec.ColorTypeGrayAlpha,
				Rows: [][]byte{{0x40, 0x80}},
			},
			expected: []color.NRGBA64{{R: 0x4040, G: 0x4040, B: 0x4040, A: 0x8080}},
		},
		"RGB16Keyed": {
			img: pngtest.Image{
				Width: 2, Height: 1, BitDepth: 16, ColorType: codec.ColorTypeRGB,
				Rows: [][]byte{{0x12, 0x34, 0x56, 0x78, 0x9a, 0xbc, 0, 1, 0, 2, 0, 3}},
				Ancillary: []pngtest.Chunk{{Type: "tRNS", Data: []byte{0, 1, 0, 2, 0, 3}}},
			},
			expected: []color.NRGBA64{{R: 0x1234, G: 0x5678, B: 0x9abc, A: 0xffff}, {R: 1, G: 2, B: 3}},
		},
		"RGBA8": {
			img: pngtest.Image{
				Width: 1, Height: 1, BitDepth: 8, ColorType: codec.ColorTypeRGBA,
				Rows: [][]byte{{1, 2, 3, 0x80}},
			},
			expected: []color.NRGBA64{{R: 0x101, G: 0x202, B: 0x303, A: 0x8080}},
		},
		"Palette2": {
			img: pngtest.Image{
				Width: 3, Height: 1, BitDepth: 2, ColorType: codec.ColorTypePalette,
				Rows:      [][]byte{{0x70}},
				Palette:   []byte{0xff, 0, 0, 0, 0xff, 0},
				Ancillary: []pngtest.Chunk{{Type: "tRNS", Data: []byte{0x80}}},
			},
			expected: []color.NRGBA64{green, opaqueBlack, {R: 0xffff, A: 0x8080}},
		},
		"Palette8PastEnd": {
			img: pngtest.Image{
				Width: 2, Height: 1, BitDepth: 8, ColorType: codec.ColorTypePalette,
				Rows:    [][]byte{{0, 5}},
				Palette: []byte{0xff, 0, 0, 0, 0xff, 0},
			},
			expected: []color.NRGBA64{red, opaqueBlack},
		},
	}
	for name, c := range cases {
		c := c
		t.Run(name, func(t *testing.T) {
			img, err := NewImage(pngtest.Encode(c.img))
			require.NoError(t, err)
			defer img.Close()

			for x, expected := range c.expected {
				got, err := img.At(uint32(x), 0)
				require.NoError(t, err)
				assert.Equal(t, expected, got, "pixel %d", x)
			}
		})
	}
}

func TestAtInterlacedSubByte(t *testing.T) {
	rows := [][]byte{{0xa5, 0x80}, {0x5a, 0x00}, {0xff, 0x80}}
	img, err := NewImage(pngtest.Encode(pngtest.Image{
		Width: 9, Height: 3, BitDepth: 1, ColorType: codec.ColorTypeGray, Interlace: true, Rows: rows,
	}))
	require.NoError(t, err)
	defer img.Close()

	for y, row := range rows {
		for x := 0; x < 9; x++ {
			expected := gray(0)
			if row[x/8]&(0x80>>(x%8)) != 0 {
				expected = gray(0xffff)
			}
			got, err := img.At(uint32(x), uint32(y))
			require.NoError(t, err)
			assert.Equal(t, expected, got, "pixel (%d, %d)", x, y)
		}
	}
}

func TestAtErrors(t *testing.T) {
	img, err := NewImage(minimalGray())
	require.NoError(t, err)

	_, err = img.At(1, 0)
	assert.ErrorIs(t, err, ErrOutOfBounds)
	_, err = img.At(0, 1)
	assert.ErrorIs(t, err, ErrOutOfBounds)

	require.NoError(t, img.Close())
	_, err = img.At(0, 0)
	assert.ErrorIs(t, err, ErrNotReady)

	var nilImage *Image
	_, err = nilImage.At(0, 0)
	assert.ErrorIs(t, err, ErrNotReady)
}

func TestFrameColorKey(t *testing.T) {
	img, err := NewImage(pngtest.Encode(pngtest.Image{
		Width: 2, Height: 1, BitDepth: 8, ColorType: codec.ColorTypeRGB,
		Rows:      [][]byte{{1, 2, 3, 4, 5, 6}},
		Ancillary: []pngtest.Chunk{{Type: "tRNS", Data: []byte{0, 4, 0, 5, 0, 6}}},
	}))
	require.NoError(t, err)
	defer img.Close()

	f, err := img.Frame()
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{1, 2, 3, 0xff}, f.At(0, 0))
	assert.Equal(t, color.NRGBA{4, 5, 6, 0}, f.At(1, 0))
}

func TestFramePaletteIndexPastEnd(t *testing.T) {
	img, err := NewImage(pngtest.Encode(pngtest.Image{
		Width: 2, Height: 1, BitDepth: 8, ColorType: codec.ColorTypePalette,
		Rows:    [][]byte{{1, 5}},
		Palette: []byte{0xff, 0, 0, 0, 0xff, 0},
	}))
	require.NoError(t, err)
	defer img.Close()

	f, err := img.Frame()
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{0, 0xff, 0, 0xff}, f.At(0, 0))
	assert.Equal(t, color.NRGBA{0, 0, 0, 0xff}, f.At(1, 0))
}
