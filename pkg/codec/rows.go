package codec

import "fmt"

// RowTable describes where each decoded row lives in a flat output buffer: row i
// starts at i*Stride. It replaces a table of raw row pointers; engines that need
// addresses translate at their own boundary. The table itself is constant size
// whatever the image height.
type RowTable struct {
	Pix    []byte
	Stride int
	Height int
}

// NewRowTable lays out height rows of rowBytes each, back to back, over pix.
// pix must be at least rowBytes*height long.
func NewRowTable(pix []byte, rowBytes, height int) RowTable {
	return RowTable{Pix: pix, Stride: rowBytes, Height: height}
}

// Row returns the bytes of row i. The slice capacity is clipped so that writes
// past the row end can't spill into the next row.
func (t RowTable) Row(i int) []byte {
	off := i * t.Stride
	return t.Pix[off : off+t.Stride : off+t.Stride]
}

// Len returns the number of rows.
func (t RowTable) Len() int {
	return t.Height
}

// Check reports whether the table holds height rows of at least rowBytes each.
func (t RowTable) Check(rowBytes, height int) error {
	switch {
	case t.Height != height:
		return fmt.Errorf("row table has %d rows, want %d", t.Height, height)
	case t.Stride < rowBytes || t.Stride < 0:
		return fmt.Errorf("row table stride is %d bytes, want %d", t.Stride, rowBytes)
	case t.Stride > 0 && len(t.Pix)/t.Stride < t.Height:
		return fmt.Errorf("row table buffer holds %d bytes, want %d", len(t.Pix), t.Stride*t.Height)
	}
	return nil
}
