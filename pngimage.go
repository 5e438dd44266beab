// Package pngimage decodes a single in-memory PNG image into a flat, row-major
// buffer and exposes its header metadata.
//
// NewImage runs the whole pipeline before it returns: signature check, header
// parse, buffer allocation and image decode. Rows are handed over exactly as the
// read engine produced them; palette indices, sub-byte packing and 16-bit big-endian
// samples are kept as they are.
//
// The input buffer is read in place and never copied. Callers must not modify it
// while NewImage is running.
package pngimage

import (
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/pion/logging"
	ilogging "github.com/pion/pngimage/internal/logging"
	"github.com/pion/pngimage/pkg/codec"
	"github.com/pion/pngimage/pkg/codec/native"
	mio "github.com/pion/pngimage/pkg/io"
)

// Signature is the fixed 8-byte PNG file signature.
const Signature = "\x89PNG\r\n\x1a\n"

// State is the decode state of an Image.
type State int

// Images move forward through Created, SignatureValidated, HeaderParsed and
// Decoded. Failed and Closed are terminal.
const (
	StateCreated State = iota
	StateSignatureValidated
	StateHeaderParsed
	StateDecoded
	StateFailed
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateSignatureValidated:
		return "signature validated"
	case StateHeaderParsed:
		return "header parsed"
	case StateDecoded:
		return "decoded"
	case StateFailed:
		return "failed"
	case StateClosed:
		return "closed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Image is a decoded PNG image. A nil or zero Image is inert: every accessor
// reports ErrNotReady.
type Image struct {
	id     string
	state  State
	src    *mio.ByteSource
	engine codec.Engine
	info   codec.Info
	rows   codec.RowTable
	log    logging.LeveledLogger
}

// NewImage decodes the PNG held in data.
func NewImage(data []byte, opts ...Option) (*Image, error) {
	o := Options{
		engineBuilder:  native.NewEngine,
		maxDecodedSize: DefaultMaxDecodedSize,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.engineBuilder == nil {
		o.engineBuilder = native.NewEngine
	}

	img := &Image{
		id:  uuid.NewString(),
		log: ilogging.NewLoggerFrom(o.loggerFactory, "pngimage"),
	}
	if err := img.decode(data, &o); err != nil {
		img.log.Warnf("%s: decode failed in state %q: %v", img.id, img.state, err)
		img.release()
		img.state = StateFailed
		return nil, err
	}
	return img, nil
}

func (img *Image) transition(s State) {
	if img.log != nil {
		img.log.Debugf("%s: %s -> %s", img.id, img.state, s)
	}
	img.state = s
}

func (img *Image) decode(data []byte, o *Options) error {
	if len(data) < len(Signature) || string(data[:len(Signature)]) != Signature {
		return ErrInvalidSignature
	}
	img.transition(StateSignatureValidated)

	engine, err := o.engineBuilder()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEngineInit, err)
	}
	if engine == nil {
		return ErrEngineInit
	}
	img.engine = engine

	info, err := engine.NewInfo()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEngineInit, err)
	}
	if info == nil {
		return ErrEngineInit
	}
	img.info = info

	// The signature has been checked above, the engine starts right after it.
	img.src = mio.NewByteSource(data, len(Signature))
	engine.SetReadFunc(img.src.Next)
	engine.SetSigBytes(len(Signature))

	if err := engine.ReadInfo(info); err != nil {
		return fmt.Errorf("%w: %w", ErrHeaderParse, err)
	}
	// Engines report unreadable dimensions as 0.
	if info.Width() == 0 || info.Height() == 0 {
		return ErrMissingDimension
	}

	rowBytes, height := info.RowBytes(), uint64(info.Height())
	if rowBytes != 0 && height > math.MaxUint64/rowBytes {
		return fmt.Errorf("%w: %d rows of %d bytes", ErrImageTooLarge, height, rowBytes)
	}
	size := rowBytes * height
	if size > o.maxDecodedSize || size > math.MaxInt || rowBytes > math.MaxInt {
		return fmt.Errorf("%w: %d bytes", ErrImageTooLarge, size)
	}
	img.transition(StateHeaderParsed)

	img.rows = codec.NewRowTable(make([]byte, size), int(rowBytes), int(height))
	if err := engine.ReadImage(info, img.rows); err != nil {
		return fmt.Errorf("%w: %w", ErrImageDecode, err)
	}
	img.transition(StateDecoded)
	img.log.Debugf("%s: decoded %dx%d, %d bytes", img.id, info.Width(), info.Height(), size)
	return nil
}

func (img *Image) release() {
	if img.engine != nil {
		if err := img.engine.Close(); err != nil {
			img.log.Warnf("%s: failed to close engine: %v", img.id, err)
		}
	}
	img.engine = nil
	img.info = nil
	img.src = nil
	img.rows = codec.RowTable{}
}

// Close releases the read engine. Every accessor reports ErrNotReady afterwards.
// Slices previously returned by Buffer or Row stay valid.
func (img *Image) Close() error {
	if img == nil || img.state == StateClosed {
		return nil
	}
	img.release()
	img.transition(StateClosed)
	return nil
}

// ID returns the identifier the decoder tags its log lines with.
func (img *Image) ID() string {
	if img == nil {
		return ""
	}
	return img.id
}

// State returns the decode state.
func (img *Image) State() State {
	if img == nil {
		return StateCreated
	}
	return img.state
}
