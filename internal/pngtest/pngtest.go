// Package pngtest synthesizes PNG datastreams for tests. It writes exactly what it's
// told, including chunks a real encoder would refuse to emit.
package pngtest

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"

	"github.com/klauspost/compress/zlib"
)

// Signature is the 8-byte PNG file signature.
const Signature = "\x89PNG\r\n\x1a\n"

// Chunk is a raw chunk written verbatim.
type Chunk struct {
	Type string
	Data []byte
}

// Image describes the stream Encode writes.
type Image struct {
	Width, Height uint32
	BitDepth      uint8
	ColorType     uint8
	Interlace     bool
	// Rows are the full-resolution, unfiltered rows, RowBytes long each.
	Rows [][]byte
	// Palette is the raw PLTE payload, written when non-nil.
	Palette []byte
	// Ancillary chunks are written between PLTE and the first IDAT.
	Ancillary []Chunk
	// Filters are applied to scanlines in turn. Empty means filter type 0.
	Filters []byte
	// IDATSize splits the compressed data into IDAT chunks of at most this size.
	IDATSize int
}

// Channels returns the samples per pixel for a color type.
func Channels(colorType uint8) int {
	switch colorType {
	case 2:
		return 3
	case 4:
		return 2
	case 6:
		return 4
	}
	return 1
}

// BitsPerPixel returns the bits per pixel of img.
func (img Image) BitsPerPixel() int {
	return int(img.BitDepth) * Channels(img.ColorType)
}

// RowBytes returns the length of one unfiltered full-width row.
func (img Image) RowBytes() int {
	return (img.BitsPerPixel()*int(img.Width) + 7) / 8
}

// ChunkBytes frames data as a chunk with a valid CRC.
func ChunkBytes(typ string, data []byte) []byte {
	var b bytes.Buffer
	var n [4]byte
	binary.BigEndian.PutUint32(n[:], uint32(len(data)))
	b.Write(n[:])
	b.WriteString(typ)
	b.Write(data)
	crc := crc32.NewIEEE()
	crc.Write([]byte(typ))
	crc.Write(data)
	binary.BigEndian.PutUint32(n[:], crc.Sum32())
	b.Write(n[:])
	return b.Bytes()
}

// IHDR returns the IHDR payload of img.
func (img Image) IHDR() []byte {
	b := make([]byte, 13)
	binary.BigEndian.PutUint32(b[0:4], img.Width)
	binary.BigEndian.PutUint32(b[4:8], img.Height)
	b[8] = img.BitDepth
	b[9] = img.ColorType
	if img.Interlace {
		b[12] = 1
	}
	return b
}

// Encode writes img as a complete PNG datastream.
func Encode(img Image) []byte {
	var b bytes.Buffer
	b.WriteString(Signature)
	b.Write(ChunkBytes("IHDR", img.IHDR()))
	if img.Palette != nil {
		b.Write(ChunkBytes("PLTE", img.Palette))
	}
	for _, c := range img.Ancillary {
		b.Write(ChunkBytes(c.Type, c.Data))
	}

	data := img.Compressed()
	size := img.IDATSize
	if size <= 0 {
		size = len(data)
	}
	for len(data) > size {
		b.Write(ChunkBytes("IDAT", data[:size]))
		data = data[size:]
	}
	b.Write(ChunkBytes("IDAT", data))
	b.Write(ChunkBytes("IEND", nil))
	return b.Bytes()
}

// Compressed returns the zlib stream of the filtered scanlines.
func (img Image) Compressed() []byte {
	var b bytes.Buffer
	w := zlib.NewWriter(&b)
	w.Write(img.Scanlines())
	w.Close()
	return b.Bytes()
}

// Scanlines returns the filtered, uncompressed image data, pass by pass for
// interlaced images.
func (img Image) Scanlines() []byte {
	bpp := img.BitsPerPixel()
	if !img.Interlace {
		var out []byte
		filterRows(&out, img.Rows, bpp, img.Filters, 0)
		return out
	}

	var out []byte
	n := 0
	for _, p := range adam7 {
		pw := (int(img.Width) - p.xOffset + p.xFactor - 1) / p.xFactor
		ph := (int(img.Height) - p.yOffset + p.yFactor - 1) / p.yFactor
		if pw <= 0 || ph <= 0 {
			continue
		}
		rows := make([][]byte, ph)
		for y := range rows {
			rows[y] = make([]byte, (bpp*pw+7)/8)
			src := img.Rows[y*p.yFactor+p.yOffset]
			for x := 0; x < pw; x++ {
				setPixel(rows[y], x, bpp, pixel(src, x*p.xFactor+p.xOffset, bpp))
			}
		}
		n = filterRows(&out, rows, bpp, img.Filters, n)
	}
	return out
}

type pass struct {
	xFactor, yFactor, xOffset, yOffset int
}

var adam7 = []pass{
	{8, 8, 0, 0},
	{8, 8, 4, 0},
	{4, 8, 0, 4},
	{4, 4, 2, 0},
	{2, 4, 0, 2},
	{2, 2, 1, 0},
	{1, 2, 0, 1},
}

func pixel(row []byte, x, bpp int) []byte {
	if bpp >= 8 {
		n := bpp / 8
		return row[x*n : x*n+n]
	}
	ppb := 8 / bpp
	shift := uint(8 - bpp*(x%ppb+1))
	return []byte{(row[x/ppb] >> shift) & byte(1<<bpp-1)}
}

func setPixel(row []byte, x, bpp int, v []byte) {
	if bpp >= 8 {
		copy(row[x*bpp/8:], v)
		return
	}
	ppb := 8 / bpp
	shift := uint(8 - bpp*(x%ppb+1))
	row[x/ppb] |= v[0] << shift
}

// filterRows appends the filtered rows to out, cycling through filters starting at
// index n, and returns the next index.
func filterRows(out *[]byte, rows [][]byte, bpp int, filters []byte, n int) int {
	bytesPerPixel := (bpp + 7) / 8
	var prior []byte
	for _, raw := range rows {
		if prior == nil {
			prior = make([]byte, len(raw))
		}
		ft := byte(0)
		if len(filters) > 0 {
			ft = filters[n%len(filters)]
		}
		n++

		line := make([]byte, len(raw)+1)
		line[0] = ft
		for i := range raw {
			var a, c byte
			if i >= bytesPerPixel {
				a, c = raw[i-bytesPerPixel], prior[i-bytesPerPixel]
			}
			b := prior[i]
			switch ft {
			case 0:
				line[i+1] = raw[i]
			case 1:
				line[i+1] = raw[i] - a
			case 2:
				line[i+1] = raw[i] - b
			case 3:
				line[i+1] = raw[i] - byte((int(a)+int(b))/2)
			case 4:
				line[i+1] = raw[i] - paeth(a, b, c)
			default:
				line[i+1] = raw[i]
			}
		}
		*out = append(*out, line...)
		prior = raw
	}
	return n
}

func paeth(a, b, c byte) byte {
	p := int(a) + int(b) - int(c)
	pa, pb, pc := abs(p-int(a)), abs(p-int(b)), abs(p-int(c))
	if pa <= pb && pa <= pc {
		return a
	}
	if pb <= pc {
		return b
	}
	return c
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Gradient fills rows for a width x height image of bpp bits per pixel with a
// deterministic pattern.
func Gradient(width, height, bpp int) [][]byte {
	rowBytes := (bpp*width + 7) / 8
	rows := make([][]byte, height)
	for y := range rows {
		rows[y] = make([]byte, rowBytes)
		for i := range rows[y] {
			rows[y][i] = byte(i*7 + y*31 + i*y)
		}
		// Keep padding bits of the last byte clear.
		if pad := rowBytes*8 - bpp*width; pad > 0 {
			rows[y][rowBytes-1] &^= byte(1<<pad - 1)
		}
	}
	return rows
}

// Flatten concatenates rows.
func Flatten(rows [][]byte) []byte {
	var out []byte
	for _, r := range rows {
		out = append(out, r...)
	}
	return out
}
