package native

// interlaceScan defines the placement and size of a pass for Adam7 interlacing.
type interlaceScan struct {
	xFactor, yFactor, xOffset, yOffset int
}

// interlacing defines Adam7 interlacing, with 7 passes of reduced images.
// See https://www.w3.org/TR/PNG/#8Interlace
var interlacing = []interlaceScan{
	{8, 8, 0, 0},
	{8, 8, 4, 0},
	{4, 8, 0, 4},
	{4, 4, 2, 0},
	{2, 4, 0, 2},
	{2, 2, 1, 0},
	{1, 2, 0, 1},
}

// size returns the reduced image size of the pass for a width x height image.
func (p interlaceScan) size(width, height int) (int, int) {
	// Add the multiplication factor and subtract one, effectively rounding up.
	w := (width - p.xOffset + p.xFactor - 1) / p.xFactor
	h := (height - p.yOffset + p.yFactor - 1) / p.yFactor
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return w, h
}

// scatter places the width pixels of a reconstructed pass row src at their
// full-resolution positions in dst.
func (p interlaceScan) scatter(dst, src []byte, width, bitsPerPixel int) {
	if bitsPerPixel >= 8 {
		bytesPerPixel := bitsPerPixel / 8
		for x := 0; x < width; x++ {
			d := (x*p.xFactor + p.xOffset) * bytesPerPixel
			s := x * bytesPerPixel
			copy(dst[d:d+bytesPerPixel], src[s:s+bytesPerPixel])
		}
		return
	}

	// Sub-byte pixels are packed most significant bits first.
	pixelsPerByte := 8 / bitsPerPixel
	mask := byte(1<<bitsPerPixel - 1)
	for x := 0; x < width; x++ {
		sShift := uint(8 - bitsPerPixel*(x%pixelsPerByte+1))
		v := (src[x/pixelsPerByte] >> sShift) & mask

		dx := x*p.xFactor + p.xOffset
		dShift := uint(8 - bitsPerPixel*(dx%pixelsPerByte+1))
		i := dx / pixelsPerByte
		dst[i] = dst[i]&^(mask<<dShift) | v<<dShift
	}
}
