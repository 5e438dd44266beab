package frame

type Format string

const (
	// Formats with a direct standard library counterpart

	// FormatGray8 is 8-bit grayscale
	FormatGray8 Format = "Gray8"
	// FormatGray16 is 16-bit big-endian grayscale
	FormatGray16 Format = "Gray16"
	// FormatNRGBA is 8-bit R, G, B, A with non-premultiplied alpha
	FormatNRGBA Format = "NRGBA"
	// FormatNRGBA64 is 16-bit big-endian R, G, B, A with non-premultiplied alpha
	FormatNRGBA64 Format = "NRGBA64"
	// FormatPaletted8 is one 8-bit palette index per pixel
	FormatPaletted8 Format = "Paletted8"

	// Formats without alpha or with a separate gray alpha channel

	// FormatRGB24 is 8-bit R, G, B
	FormatRGB24 Format = "RGB24"
	// FormatRGB48 is 16-bit big-endian R, G, B
	FormatRGB48 Format = "RGB48"
	// FormatGrayAlpha8 is 8-bit gray followed by 8-bit alpha
	FormatGrayAlpha8 Format = "GrayAlpha8"
	// FormatGrayAlpha16 is 16-bit big-endian gray followed by 16-bit alpha
	FormatGrayAlpha16 Format = "GrayAlpha16"
)

// PNG color type codes as they appear in IHDR.
const (
	colorTypeGray      = 0
	colorTypeRGB       = 2
	colorTypePalette   = 3
	colorTypeGrayAlpha = 4
	colorTypeRGBA      = 6
)
