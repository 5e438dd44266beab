package frame

import (
	"image"
	"image/color"
	"testing"
)

func TestResizeCanvas(t *testing.T) {
	orange := color.NRGBA{0xff, 0x80, 0, 0xff}
	navy := color.NRGBA{0, 0, 0x80, 0xff}

	src := image.NewNRGBA(image.Rect(0, 0, 6, 6))
	for i := 0; i < len(src.Pix); i += 4 {
		copy(src.Pix[i:i+4], []byte{orange.R, orange.G, orange.B, orange.A})
	}

	dst, err := ResizeCanvas(src, image.Pt(18, 18), image.Pt(10, 10), image.Rect(0, 0, 6, 6), navy)
	if err != nil {
		t.Fatal(err)
	}
	if b := dst.Bounds(); b != image.Rect(0, 0, 18, 18) {
		t.Fatalf("expected 18x18 canvas, got %v", b)
	}
	for y := 0; y < 18; y++ {
		for x := 0; x < 18; x++ {
			expected := navy
			if x >= 10 && x < 16 && y >= 10 && y < 16 {
				expected = orange
			}
			if c := dst.NRGBAAt(x, y); c != expected {
				t.Fatalf("(%d, %d): expected %v, got %v", x, y, expected, c)
			}
		}
	}
}

func TestResizeCanvasClipping(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 4, 4))
	for i := range src.Pix {
		src.Pix[i] = 0xff
	}
	bg := color.NRGBA{0x80, 0x80, 0x80, 0x80}

	cases := map[string]struct {
		offset image.Point
		region image.Rectangle
		white  image.Rectangle
	}{
		"Overflow":       {image.Pt(3, 3), image.Rect(0, 0, 4, 4), image.Rect(3, 3, 5, 5)},
		"NegativeOffset": {image.Pt(-2, -1), image.Rect(0, 0, 4, 4), image.Rect(0, 0, 2, 3)},
		"RegionPastSrc":  {image.Pt(0, 0), image.Rect(2, 2, 10, 10), image.Rect(0, 0, 2, 2)},
		"EmptyRegion":    {image.Pt(0, 0), image.Rect(8, 8, 10, 10), image.Rectangle{}},
	}
	for name, c := range cases {
		c := c
		t.Run(name, func(t *testing.T) {
			dst, err := ResizeCanvas(src, image.Pt(5, 5), c.offset, c.region, bg)
			if err != nil {
				t.Fatal(err)
			}
			for y := 0; y < 5; y++ {
				for x := 0; x < 5; x++ {
					expected := bg
					if image.Pt(x, y).In(c.white) {
						expected = color.NRGBA{0xff, 0xff, 0xff, 0xff}
					}
					if got := dst.NRGBAAt(x, y); got != expected {
						t.Fatalf("(%d, %d): expected %v, got %v", x, y, expected, got)
					}
				}
			}
		})
	}
}

func TestResizeCanvasInvalidSize(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 1, 1))
	if _, err := ResizeCanvas(src, image.Pt(0, 5), image.Point{}, src.Bounds(), nil); err == nil {
		t.Error("expected an invalid size error")
	}
}
