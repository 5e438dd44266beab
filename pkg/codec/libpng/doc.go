// Package libpng implements codec.Engine on top of the system libpng.
//
// The engine is only built with cgo and the libpng build tag:
//
//	go build -tags libpng
//
// It needs libpng 1.6 development files discoverable through pkg-config.
package libpng
