package pngimage

import "errors"

// Every failure NewImage or an accessor reports wraps exactly one of these. Engine
// causes stay reachable through errors.Unwrap/errors.As.
var (
	ErrInvalidSignature     = errors.New("pngimage: invalid PNG buffer")
	ErrEngineInit           = errors.New("pngimage: could not create PNG read engine")
	ErrHeaderParse          = errors.New("pngimage: error decoding PNG header")
	ErrMissingDimension     = errors.New("pngimage: PNG header has no width or height")
	ErrImageDecode          = errors.New("pngimage: error decoding PNG image data")
	ErrImageTooLarge        = errors.New("pngimage: decoded image exceeds size limit")
	ErrDimensionUnavailable = errors.New("pngimage: unable to read dimension from PNG")
	ErrNotReady             = errors.New("pngimage: image not ready")
	ErrOutOfBounds          = errors.New("pngimage: position out of bounds")
)
