//go:build cgo && libpng

package libpng

/*
#include <stddef.h>
#include <stdint.h>
*/
import "C"
import (
	"runtime/cgo"
	"unsafe"
)

//export goPngRead
func goPngRead(handle C.uintptr_t, data *C.uchar, length C.size_t) C.int {
	e, ok := cgo.Handle(handle).Value().(*engine)
	if !ok {
		return 1
	}
	dst := unsafe.Slice((*byte)(unsafe.Pointer(data)), int(length))
	if err := e.read(dst); err != nil {
		return 1
	}
	return 0
}
