//go:build cgo && libpng

package libpng

/*
#cgo pkg-config: libpng
#include "bridge.h"
*/
import "C"
import (
	"errors"
	"fmt"
	"image/color"
	"runtime/cgo"
	"sync"
	"time"
	"unsafe"

	"github.com/pion/pngimage/internal/logging"
	"github.com/pion/pngimage/pkg/codec"
	mio "github.com/pion/pngimage/pkg/io"
)

var logger = logging.NewLogger("pngimage/codec/libpng")

type stage int

const (
	stageStart stage = iota
	stageInfo
	stageHeader
	stageDecoded
)

type engine struct {
	ctx    *C.pngctx
	handle cgo.Handle
	readFn codec.ReadFunc
	// readErr keeps the last ReadFunc failure, libpng only sees a generic error.
	readErr error
	stage   stage
	info    *info

	mu     sync.Mutex
	closed bool
}

var _ codec.EngineBuilder = codec.EngineBuilder(NewEngine)

// NewEngine creates a libpng read struct.
func NewEngine() (codec.Engine, error) {
	e := &engine{}
	e.handle = cgo.NewHandle(e)
	e.ctx = C.pngctx_new(C.uintptr_t(e.handle))
	if e.ctx == nil {
		e.handle.Delete()
		return nil, errors.New("png_create_read_struct failed")
	}
	return e, nil
}

func (e *engine) SetReadFunc(fn codec.ReadFunc) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.readFn = fn
}

func (e *engine) SetSigBytes(n int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	if n < 0 {
		n = 0
	}
	if n > 8 {
		n = 8
	}
	C.pngctx_set_sig_bytes(e.ctx, C.int(n))
}

func (e *engine) NewInfo() (codec.Info, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed || e.stage != stageStart {
		return nil, codec.ErrState
	}
	if C.pngctx_new_info(e.ctx) != 0 {
		return nil, errors.New("png_create_info_struct failed")
	}
	e.stage = stageInfo
	e.info = &info{owner: e}
	return e.info, nil
}

// lastError builds the error for a failed C call, preferring the ReadFunc cause.
func (e *engine) lastError() error {
	msg := C.GoString(&e.ctx.err[0])
	if e.readErr != nil {
		err := e.readErr
		e.readErr = nil
		return fmt.Errorf("libpng: %s: %w", msg, err)
	}
	return fmt.Errorf("libpng: %s", msg)
}

func (e *engine) ReadInfo(i codec.Info) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed || e.stage != stageInfo || i != codec.Info(e.info) {
		return codec.ErrState
	}
	if e.readFn == nil {
		return errors.New("libpng: no read function")
	}
	if C.pngctx_read_info(e.ctx) != 0 {
		return e.lastError()
	}
	e.stage = stageHeader
	logger.Debugf("read header %dx%d, color type %d, depth %d",
		e.info.width(), e.info.height(), e.info.colorType(), e.info.bitDepth())
	return nil
}

func (e *engine) ReadImage(i codec.Info, rows codec.RowTable) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed || e.stage != stageHeader || i != codec.Info(e.info) {
		return codec.ErrState
	}
	rowBytes, height := int(e.info.rowBytes()), int(e.info.height())
	if err := rows.Check(rowBytes, height); err != nil {
		return fmt.Errorf("libpng: %w", err)
	}

	passes := int(C.pngctx_start_image(e.ctx))
	if passes < 0 {
		return e.lastError()
	}
	// Rows are decoded straight into the table, libpng never holds on to them
	// past a single call.
	for pass := 0; pass < passes; pass++ {
		for j := 0; j < height; j++ {
			row := rows.Row(j)
			if len(row) == 0 {
				return fmt.Errorf("libpng: row %d is empty", j)
			}
			if C.pngctx_read_row(e.ctx, (*C.uint8_t)(unsafe.Pointer(&row[0]))) != 0 {
				return e.lastError()
			}
		}
	}
	if C.pngctx_read_end(e.ctx) != 0 {
		return e.lastError()
	}
	e.stage = stageDecoded
	return nil
}

func (e *engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil
	}
	e.closed = true
	C.pngctx_free(e.ctx)
	e.ctx = nil
	e.handle.Delete()
	e.info = nil
	e.readFn = nil
	return nil
}

// read serves libpng's read callback.
func (e *engine) read(dst []byte) error {
	if e.readFn == nil {
		return errors.New("no read function")
	}
	b, err := e.readFn(len(dst))
	if err != nil {
		e.readErr = err
		return err
	}
	if len(b) != len(dst) {
		e.readErr = fmt.Errorf("short read: %d of %d bytes", len(b), len(dst))
		return e.readErr
	}
	if _, err := mio.Copy(dst, b); err != nil {
		e.readErr = err
		return err
	}
	return nil
}

type info struct {
	owner *engine
}

// ctx returns the live context, nil once the engine is closed.
func (i *info) ctx() (*C.png_struct, *C.png_info) {
	e := i.owner
	if e == nil || e.closed || e.ctx == nil || e.ctx.info == nil {
		return nil, nil
	}
	return e.ctx.png, e.ctx.info
}

func (i *info) width() uint32 {
	p, in := i.ctx()
	if p == nil {
		return 0
	}
	return uint32(C.png_get_image_width(p, in))
}

func (i *info) height() uint32 {
	p, in := i.ctx()
	if p == nil {
		return 0
	}
	return uint32(C.png_get_image_height(p, in))
}

func (i *info) bitDepth() uint8 {
	p, in := i.ctx()
	if p == nil {
		return 0
	}
	return uint8(C.png_get_bit_depth(p, in))
}

func (i *info) colorType() uint8 {
	p, in := i.ctx()
	if p == nil {
		return 0
	}
	return uint8(C.png_get_color_type(p, in))
}

func (i *info) rowBytes() uint64 {
	p, in := i.ctx()
	if p == nil {
		return 0
	}
	return uint64(C.png_get_rowbytes(p, in))
}

func (i *info) Width() uint32 { return i.width() }
func (i *info) Height() uint32 { return i.height() }
func (i *info) BitDepth() uint8 { return i.bitDepth() }
func (i *info) ColorType() uint8 { return i.colorType() }
func (i *info) RowBytes() uint64 { return i.rowBytes() }

func (i *info) Channels() uint8 {
	p, in := i.ctx()
	if p == nil {
		return 0
	}
	return uint8(C.png_get_channels(p, in))
}

func (i *info) InterlaceType() uint8 {
	p, in := i.ctx()
	if p == nil {
		return 0
	}
	return uint8(C.png_get_interlace_type(p, in))
}

func (i *info) XOffsetPixels() int32 {
	p, in := i.ctx()
	if p == nil {
		return 0
	}
	return int32(C.png_get_x_offset_pixels(p, in))
}

func (i *info) YOffsetPixels() int32 {
	p, in := i.ctx()
	if p == nil {
		return 0
	}
	return int32(C.png_get_y_offset_pixels(p, in))
}

func (i *info) XPixelsPerMeter() uint32 {
	p, in := i.ctx()
	if p == nil {
		return 0
	}
	return uint32(C.png_get_x_pixels_per_meter(p, in))
}

func (i *info) YPixelsPerMeter() uint32 {
	p, in := i.ctx()
	if p == nil {
		return 0
	}
	return uint32(C.png_get_y_pixels_per_meter(p, in))
}

func (i *info) Palette() color.Palette {
	if p, _ := i.ctx(); p == nil {
		return nil
	}
	var rgb [256 * 3]C.uint8_t
	n := int(C.pngctx_palette(i.owner.ctx, &rgb[0], 256))
	if n == 0 {
		return nil
	}
	var alpha [256]C.uint8_t
	na := 0
	if i.colorType() == codec.ColorTypePalette {
		na = int(C.pngctx_trns(i.owner.ctx, &alpha[0], 256))
	}
	palette := make(color.Palette, n)
	for j := range palette {
		c := color.NRGBA{uint8(rgb[3*j]), uint8(rgb[3*j+1]), uint8(rgb[3*j+2]), 0xff}
		if j < na {
			c.A = uint8(alpha[j])
		}
		palette[j] = c
	}
	return palette
}

func (i *info) Transparency() []byte {
	if p, _ := i.ctx(); p == nil {
		return nil
	}
	var buf [256]C.uint8_t
	n := int(C.pngctx_trns(i.owner.ctx, &buf[0], 256))
	if n == 0 {
		return nil
	}
	return C.GoBytes(unsafe.Pointer(&buf[0]), C.int(n))
}

func (i *info) Background() (codec.Background, bool) {
	if p, _ := i.ctx(); p == nil {
		return codec.Background{}, false
	}
	var bg C.png_color_16
	if C.pngctx_bkgd(i.owner.ctx, &bg) == 0 {
		return codec.Background{}, false
	}
	return codec.Background{
		Index: uint8(bg.index),
		Gray:  uint16(bg.gray),
		R:     uint16(bg.red),
		G:     uint16(bg.green),
		B:     uint16(bg.blue),
	}, true
}

func (i *info) Gamma() (float64, bool) {
	if p, _ := i.ctx(); p == nil {
		return 0, false
	}
	var g C.double
	if C.pngctx_gamma(i.owner.ctx, &g) == 0 {
		return 0, false
	}
	return float64(g), true
}

func (i *info) ModTime() (time.Time, bool) {
	if p, _ := i.ctx(); p == nil {
		return time.Time{}, false
	}
	var t C.png_time
	if C.pngctx_time(i.owner.ctx, &t) == 0 {
		return time.Time{}, false
	}
	return time.Date(int(t.year), time.Month(t.month), int(t.day),
		int(t.hour), int(t.minute), int(t.second), 0, time.UTC), true
}

func (i *info) Text() []codec.TextEntry {
	if p, _ := i.ctx(); p == nil {
		return nil
	}
	n := int(C.pngctx_num_text(i.owner.ctx))
	if n == 0 {
		return nil
	}
	entries := make([]codec.TextEntry, 0, n)
	for j := 0; j < n; j++ {
		var key, text *C.char
		var textLen C.size_t
		if C.pngctx_text(i.owner.ctx, C.int(j), &key, &text, &textLen) == 0 {
			continue
		}
		entries = append(entries, codec.TextEntry{
			Keyword: latin1(C.GoString(key)),
			Text:    latin1(C.GoStringN(text, C.int(textLen))),
		})
	}
	return entries
}

// latin1 widens libpng's Latin-1 tEXt bytes to UTF-8.
func latin1(s string) string {
	r := make([]rune, len(s))
	for j := 0; j < len(s); j++ {
		r[j] = rune(s[j])
	}
	return string(r)
}
