// Package imagebuf provides the pixel buffer used to decode, transform and
// composite texture patches.
//
// Two storage formats are supported: palette-indexed pixels with a per-pixel
// mask, as produced by legacy picture and flat lumps, and 8-bit RGBA. Indexed
// buffers resolve colours through their own palette when they carry one, and
// through a caller-supplied palette otherwise.
package imagebuf

// Format represents a pixel storage format.
type Format uint8

const (
	// FormatPalMask is a palette index byte followed by a mask (alpha) byte.
	FormatPalMask Format = iota

	// FormatRGBA8 is 32-bit non-premultiplied RGBA (4 bytes per pixel).
	FormatRGBA8

	formatCount
)

// FormatInfo contains metadata about a pixel format.
type FormatInfo struct {
	// BytesPerPixel is the number of bytes per pixel.
	BytesPerPixel int

	// Indexed indicates colours are looked up through a palette.
	Indexed bool
}

var formatInfoTable = [formatCount]FormatInfo{
	FormatPalMask: {BytesPerPixel: 2, Indexed: true},
	FormatRGBA8:   {BytesPerPixel: 4, Indexed: false},
}

// Info returns the FormatInfo for this format.
func (f Format) Info() FormatInfo {
	if f >= formatCount {
		return FormatInfo{}
	}
	return formatInfoTable[f]
}

// BytesPerPixel returns the number of bytes per pixel for this format.
func (f Format) BytesPerPixel() int {
	return f.Info().BytesPerPixel
}

// IsIndexed returns true for palette-indexed formats.
func (f Format) IsIndexed() bool {
	return f.Info().Indexed
}

// IsValid returns true if the format is a valid known format.
func (f Format) IsValid() bool {
	return f < formatCount
}

// RowBytes calculates the number of bytes needed for a row of the given width.
func (f Format) RowBytes(width int) int {
	return width * f.BytesPerPixel()
}

// String returns a string representation of the format.
func (f Format) String() string {
	switch f {
	case FormatPalMask:
		return "PalMask"
	case FormatRGBA8:
		return "RGBA8"
	default:
		return "Unknown"
	}
}
