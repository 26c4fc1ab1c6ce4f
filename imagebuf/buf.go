package imagebuf

import (
	"errors"
	"image/color"

	"github.com/wadtools/ctexture/palette"
)

// Common errors for image operations.
var (
	// ErrInvalidDimensions is returned when width or height is non-positive.
	ErrInvalidDimensions = errors.New("imagebuf: invalid dimensions")

	// ErrInvalidFormat is returned when the format is not recognized.
	ErrInvalidFormat = errors.New("imagebuf: invalid format")

	// ErrOutOfBounds is returned when pixel coordinates are outside image bounds.
	ErrOutOfBounds = errors.New("imagebuf: coordinates out of bounds")
)

// ImageBuf is a pixel buffer with an optional palette and an embedded offset.
//
// The embedded offset is the origin stored by the source lump (a picture's
// left/top offsets or a PNG grAb chunk). It is not applied by any operation
// here; callers read it through Offset.
//
// ImageBuf is not safe for concurrent mutation.
type ImageBuf struct {
	data   []byte
	width  int
	height int
	stride int
	format Format

	pal     *palette.Palette
	offsetX int
	offsetY int
}

// NewImageBuf creates a new zeroed image buffer with the given dimensions and format.
// Returns an error if dimensions are invalid or format is unknown.
func NewImageBuf(width, height int, format Format) (*ImageBuf, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	if !format.IsValid() {
		return nil, ErrInvalidFormat
	}

	stride := format.RowBytes(width)
	return &ImageBuf{
		data:   make([]byte, stride*height),
		width:  width,
		height: height,
		stride: stride,
		format: format,
	}, nil
}

// Clone creates a deep copy of the image buffer. The palette is shared.
func (b *ImageBuf) Clone() *ImageBuf {
	c := *b
	c.data = make([]byte, len(b.data))
	copy(c.data, b.data)
	return &c
}

// Resize reallocates the buffer to width x height, discarding all pixels.
func (b *ImageBuf) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return ErrInvalidDimensions
	}
	b.width = width
	b.height = height
	b.stride = b.format.RowBytes(width)
	b.data = make([]byte, b.stride*height)
	return nil
}

// Width returns the image width in pixels.
func (b *ImageBuf) Width() int {
	return b.width
}

// Height returns the image height in pixels.
func (b *ImageBuf) Height() int {
	return b.height
}

// Format returns the pixel format.
func (b *ImageBuf) Format() Format {
	return b.format
}

// Palette returns the palette carried by the image, or nil.
func (b *ImageBuf) Palette() *palette.Palette {
	return b.pal
}

// SetPalette attaches p to the image. An attached palette takes precedence
// over any palette passed to colour operations.
func (b *ImageBuf) SetPalette(p *palette.Palette) {
	b.pal = p
}

// Offset returns the embedded offset of the image.
func (b *ImageBuf) Offset() (x, y int) {
	return b.offsetX, b.offsetY
}

// SetOffset sets the embedded offset of the image.
func (b *ImageBuf) SetOffset(x, y int) {
	b.offsetX = x
	b.offsetY = y
}

// paletteFor returns the palette used to resolve indexed pixels: the image's
// own, then pal, then the greyscale ramp.
func (b *ImageBuf) paletteFor(pal *palette.Palette) *palette.Palette {
	if b.pal != nil {
		return b.pal
	}
	if pal != nil {
		return pal
	}
	return palette.Greyscale()
}

// PixelOffset returns the byte offset of pixel (x, y) in the data slice.
// Returns -1 if coordinates are out of bounds.
func (b *ImageBuf) PixelOffset(x, y int) int {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return -1
	}
	return y*b.stride + x*b.format.BytesPerPixel()
}

// At returns the colour at (x, y), resolving indexed pixels through pal.
// Returns transparent black if coordinates are out of bounds.
func (b *ImageBuf) At(x, y int, pal *palette.Palette) color.NRGBA {
	off := b.PixelOffset(x, y)
	if off < 0 {
		return color.NRGBA{}
	}
	switch b.format {
	case FormatPalMask:
		c := b.paletteFor(pal).Colour(b.data[off])
		c.A = b.data[off+1]
		return c
	case FormatRGBA8:
		return color.NRGBA{R: b.data[off], G: b.data[off+1], B: b.data[off+2], A: b.data[off+3]}
	default:
		return color.NRGBA{}
	}
}

// Set writes c at (x, y). Indexed images store the nearest entry of pal.
func (b *ImageBuf) Set(x, y int, c color.NRGBA, pal *palette.Palette) error {
	off := b.PixelOffset(x, y)
	if off < 0 {
		return ErrOutOfBounds
	}
	b.write(off, c, pal)
	return nil
}

func (b *ImageBuf) write(off int, c color.NRGBA, pal *palette.Palette) {
	switch b.format {
	case FormatPalMask:
		b.data[off] = b.paletteFor(pal).Nearest(c)
		b.data[off+1] = c.A
	case FormatRGBA8:
		b.data[off] = c.R
		b.data[off+1] = c.G
		b.data[off+2] = c.B
		b.data[off+3] = c.A
	}
}

// Index returns the palette index and mask at (x, y) of an indexed image.
// ok is false for out-of-bounds coordinates or non-indexed images.
func (b *ImageBuf) Index(x, y int) (index, mask uint8, ok bool) {
	off := b.PixelOffset(x, y)
	if off < 0 || b.format != FormatPalMask {
		return 0, 0, false
	}
	return b.data[off], b.data[off+1], true
}

// SetIndex sets the palette index and mask at (x, y) of an indexed image.
func (b *ImageBuf) SetIndex(x, y int, index, mask uint8) error {
	off := b.PixelOffset(x, y)
	if off < 0 {
		return ErrOutOfBounds
	}
	if b.format != FormatPalMask {
		return ErrInvalidFormat
	}
	b.data[off] = index
	b.data[off+1] = mask
	return nil
}

// transparent reports whether the pixel at byte offset off is fully transparent.
func (b *ImageBuf) transparent(off int) bool {
	switch b.format {
	case FormatPalMask:
		return b.data[off+1] == 0
	case FormatRGBA8:
		return b.data[off+3] == 0
	default:
		return true
	}
}
