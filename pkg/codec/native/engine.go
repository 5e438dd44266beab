// Package native is a pure Go PNG read engine. It parses the chunk stream, inflates
// the image data and undoes filtering and Adam7 interlacing, handing back rows in
// the layout the PNG stores them: no palette expansion, no bit-depth changes.
package native

import (
	"fmt"
	"hash"
	"hash/crc32"
	"io"

	"github.com/klauspost/compress/zlib"
	"github.com/pion/pngimage/internal/logging"
	"github.com/pion/pngimage/pkg/codec"
	mio "github.com/pion/pngimage/pkg/io"
)

const pngHeader = "\x89PNG\r\n\x1a\n"

var logger = logging.NewLogger("pngimage/codec/native")

// Decoding stage.
// The PNG specification says that the IHDR, PLTE (if present), tRNS (if
// present), IDAT and IEND chunks must appear in that order. There may be
// multiple IDAT chunks, and IDAT chunks must be sequential (i.e. they may not
// have any other chunks between them).
// https://www.w3.org/TR/PNG/#5ChunkOrdering
const (
	dsStart = iota
	dsSeenIHDR
	dsSeenPLTE
	dsSeenIDAT
	dsDecoded
)

type engine struct {
	readFn   codec.ReadFunc
	sigBytes int
	crc      hash.Hash32
	info     *info
	stage    int
	// idatLength is the unread data length of the current IDAT chunk.
	idatLength uint32
	closed     bool
}

var _ codec.Engine = &engine{}
var _ codec.EngineBuilder = codec.EngineBuilder(NewEngine)

// NewEngine creates a native PNG read engine.
func NewEngine() (codec.Engine, error) {
	return &engine{crc: crc32.NewIEEE()}, nil
}

func (e *engine) SetReadFunc(fn codec.ReadFunc) {
	e.readFn = fn
}

func (e *engine) SetSigBytes(n int) {
	if n < 0 {
		n = 0
	}
	if n > len(pngHeader) {
		n = len(pngHeader)
	}
	e.sigBytes = n
}

func (e *engine) NewInfo() (codec.Info, error) {
	if e.closed || e.info != nil {
		return nil, codec.ErrState
	}
	e.info = &info{owner: e}
	return e.info, nil
}

func (e *engine) read(n int) ([]byte, error) {
	b, err := e.readFn(n)
	if err != nil {
		return nil, err
	}
	if len(b) != n {
		return nil, io.ErrUnexpectedEOF
	}
	return b, nil
}

func (e *engine) checkHeader() error {
	if e.sigBytes == len(pngHeader) {
		return nil
	}
	b, err := e.read(len(pngHeader) - e.sigBytes)
	if err != nil {
		return err
	}
	if string(b) != pngHeader[e.sigBytes:] {
		return FormatError("not a PNG file")
	}
	return nil
}

func (e *engine) ReadInfo(ci codec.Info) error {
	i, ok := ci.(*info)
	if e.closed || !ok || i != e.info || e.readFn == nil || e.stage != dsStart {
		return codec.ErrState
	}
	if err := e.checkHeader(); err != nil {
		return err
	}

	for {
		length, typ, err := e.readChunkHeader()
		if err != nil {
			return err
		}
		if e.stage == dsStart && typ != chunkIHDR {
			return chunkOrderError
		}

		switch typ {
		case chunkIHDR:
			if e.stage != dsStart {
				return chunkOrderError
			}
			data, err := e.readChunkData(length)
			if err != nil {
				return err
			}
			if err := i.parseIHDR(data); err != nil {
				return err
			}
			e.stage = dsSeenIHDR
		case chunkPLTE:
			if e.stage != dsSeenIHDR {
				return chunkOrderError
			}
			data, err := e.readChunkData(length)
			if err != nil {
				return err
			}
			if err := i.parsePLTE(data); err != nil {
				return err
			}
			e.stage = dsSeenPLTE
		case chunkIDAT:
			if i.colorType == codec.ColorTypePalette && e.stage != dsSeenPLTE {
				return FormatError("missing palette")
			}
			// The IDAT payload is left in the stream for ReadImage.
			e.idatLength = length
			e.stage = dsSeenIDAT
			logger.Debugf("header read: %dx%d, depth %d, color type %d, interlace %d",
				i.width, i.height, i.depth, i.colorType, i.interlace)
			return nil
		case chunkIEND:
			return FormatError("no image data")
		default:
			data, err := e.readChunkData(length)
			if err != nil {
				return err
			}
			if err := e.parseAncillary(i, typ, data); err != nil {
				return err
			}
		}
	}
}

func (e *engine) parseAncillary(i *info, typ string, data []byte) error {
	switch typ {
	case chunkTRNS:
		i.parseTRNS(data)
	case chunkBKGD:
		i.parseBKGD(data)
	case chunkGAMA:
		i.parseGAMA(data)
	case chunkPHYS:
		i.parsePHYS(data)
	case chunkOFFS:
		i.parseOFFS(data)
	case chunkTIME:
		i.parseTIME(data)
	case chunkTEXT:
		i.parseTEXT(data)
	default:
		if isCritical(typ) {
			return UnsupportedError(fmt.Sprintf("critical chunk %q", typ))
		}
		logger.Tracef("skipping %q chunk (%d bytes)", typ, len(data))
	}
	return nil
}

func (e *engine) ReadImage(ci codec.Info, rows codec.RowTable) error {
	i, ok := ci.(*info)
	if e.closed || !ok || i != e.info || e.stage != dsSeenIDAT {
		return codec.ErrState
	}
	if err := rows.Check(int(i.RowBytes()), int(i.height)); err != nil {
		return err
	}

	r, err := zlib.NewReader(&idatReader{e: e})
	if err != nil {
		return err
	}
	defer r.Close()

	width, height := int(i.width), int(i.height)
	if i.interlace == codec.InterlaceNone {
		err = readPass(r, i.bitsPerPixel, width, height, func(y int, cdat []byte) error {
			_, err := mio.Copy(rows.Row(y), cdat)
			return err
		})
		if err != nil {
			return err
		}
	} else {
		for pass := 0; pass < len(interlacing); pass++ {
			p := interlacing[pass]
			pw, ph := p.size(width, height)
			// A PNG image can't have zero width or height, but for an interlaced
			// image, an individual pass might have zero width or height. If so, we
			// shouldn't even read a per-row filter type byte, so skip it.
			if pw == 0 || ph == 0 {
				continue
			}
			err = readPass(r, i.bitsPerPixel, pw, ph, func(y int, cdat []byte) error {
				p.scatter(rows.Row(y*p.yFactor+p.yOffset), cdat, pw, i.bitsPerPixel)
				return nil
			})
			if err != nil {
				return err
			}
		}
	}

	// Check for EOF, to verify the zlib checksum.
	var tmp [1]byte
	n := 0
	for i := 0; n == 0 && err == nil; i++ {
		if i == 100 {
			return io.ErrNoProgress
		}
		n, err = r.Read(tmp[:])
	}
	if err != nil && err != io.EOF {
		return err
	}
	if n != 0 || e.idatLength != 0 {
		return FormatError("too much pixel data")
	}
	if err := e.verifyChecksum(); err != nil {
		return err
	}

	e.stage = dsDecoded
	return nil
}

func (e *engine) Close() error {
	e.closed = true
	e.info = nil
	e.readFn = nil
	return nil
}

// readPass reads height filtered rows of width pixels from r and hands each
// reconstructed row, without its filter byte, to emit.
func readPass(r io.Reader, bitsPerPixel, width, height int, emit func(y int, cdat []byte) error) error {
	bytesPerPixel := (bitsPerPixel + 7) / 8

	// The +1 is for the per-row filter type, which is at cr[0].
	rowSize := 1 + rowBytes(bitsPerPixel, uint32(width))
	if rowSize != uint64(int(rowSize)) {
		return UnsupportedError("dimension overflow")
	}
	// cr and pr are the bytes for the current and previous row.
	cr := make([]uint8, rowSize)
	pr := make([]uint8, rowSize)

	for y := 0; y < height; y++ {
		// Read the decompressed bytes.
		if _, err := io.ReadFull(r, cr); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				return FormatError("not enough pixel data")
			}
			return err
		}

		if err := unfilter(cr[0], cr[1:], pr[1:], bytesPerPixel); err != nil {
			return err
		}
		if err := emit(y, cr[1:]); err != nil {
			return err
		}

		// The current row for y is the previous row for y+1.
		pr, cr = cr, pr
	}
	return nil
}

// idatReader streams the payload of consecutive IDAT chunks, verifying each
// chunk's CRC at its boundary.
type idatReader struct {
	e *engine
}

func (r *idatReader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	e := r.e
	for e.idatLength == 0 {
		// We have exhausted an IDAT chunk. Verify the checksum of that chunk.
		if err := e.verifyChecksum(); err != nil {
			return 0, err
		}
		// Read the length and chunk type of the next chunk, and check that
		// it is an IDAT chunk.
		length, typ, err := e.readChunkHeader()
		if err != nil {
			return 0, err
		}
		if typ != chunkIDAT {
			return 0, FormatError("not enough pixel data")
		}
		e.idatLength = length
	}

	n := len(p)
	if uint64(n) > uint64(e.idatLength) {
		n = int(e.idatLength)
	}
	b, err := e.read(n)
	if err != nil {
		return 0, err
	}
	copy(p, b)
	e.crc.Write(b)
	e.idatLength -= uint32(n)
	return n, nil
}
