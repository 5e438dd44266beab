package frame

import (
	"image"
	"image/color"
	"testing"
)

func TestColorKeyDecoder(t *testing.T) {
	cases := map[string]struct {
		format   Format
		key      []byte
		input    []byte
		expected []color.Color
	}{
		"Gray8": {
			format: FormatGray8,
			key:    []byte{0, 0x10},
			input:  []byte{0x10, 0x20},
			expected: []color.Color{
				color.NRGBA{0x10, 0x10, 0x10, 0}, color.NRGBA{0x20, 0x20, 0x20, 0xff},
			},
		},
		"Gray8KeyOutOfRange": {
			format: FormatGray8,
			key:    []byte{1, 0x10},
			input:  []byte{0x10, 0x20},
			expected: []color.Color{
				color.NRGBA{0x10, 0x10, 0x10, 0xff}, color.NRGBA{0x20, 0x20, 0x20, 0xff},
			},
		},
		"Gray16": {
			format: FormatGray16,
			key:    []byte{0x12, 0x34},
			input:  []byte{0x12, 0x34, 0x12, 0x35},
			expected: []color.Color{
				color.NRGBA64{0x1234, 0x1234, 0x1234, 0}, color.NRGBA64{0x1235, 0x1235, 0x1235, 0xffff},
			},
		},
		"RGB24": {
			format: FormatRGB24,
			key:    []byte{0, 1, 0, 2, 0, 3},
			input:  []byte{1, 2, 3, 1, 2, 4},
			expected: []color.Color{
				color.NRGBA{1, 2, 3, 0}, color.NRGBA{1, 2, 4, 0xff},
			},
		},
		"RGB48": {
			format: FormatRGB48,
			key:    []byte{0, 1, 0, 2, 0, 3},
			input:  []byte{0, 1, 0, 2, 0, 3, 0, 1, 0, 2, 0, 4},
			expected: []color.Color{
				color.NRGBA64{1, 2, 3, 0}, color.NRGBA64{1, 2, 4, 0xffff},
			},
		},
	}
	for name, c := range cases {
		c := c
		t.Run(name, func(t *testing.T) {
			decoder, err := NewColorKeyDecoder(c.format, c.key)
			if err != nil {
				t.Fatal(err)
			}
			img, release, err := decoder.Decode(c.input, 2, 1)
			if err != nil {
				t.Fatal(err)
			}
			defer release()
			for x, expected := range c.expected {
				var got color.Color
				switch m := img.(type) {
				case *image.NRGBA:
					got = m.NRGBAAt(x, 0)
				case *image.NRGBA64:
					got = m.NRGBA64At(x, 0)
				default:
					t.Fatalf("unexpected image type %T", img)
				}
				if got != expected {
					t.Errorf("pixel %d: expected %v, got %v", x, expected, got)
				}
			}
		})
	}
}

func TestColorKeyDecoderInvalid(t *testing.T) {
	cases := map[string]struct {
		format Format
		key    []byte
	}{
		"Paletted":   {FormatPaletted8, []byte{0, 0}},
		"GrayAlpha":  {FormatGrayAlpha8, []byte{0, 0}},
		"ShortGray":  {FormatGray8, []byte{0}},
		"GrayForRGB": {FormatRGB24, []byte{0, 0}},
	}
	for name, c := range cases {
		if _, err := NewColorKeyDecoder(c.format, c.key); err == nil {
			t.Errorf("%s: expected an error", name)
		}
	}

	decoder, err := NewColorKeyDecoder(FormatRGB24, make([]byte, 6))
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := decoder.Decode(make([]byte, 5), 2, 1); err == nil {
		t.Error("expected a frame length mismatch")
	}
}
