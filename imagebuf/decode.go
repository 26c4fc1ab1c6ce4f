package imagebuf

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"  // register GIF decoding
	_ "image/jpeg" // register JPEG decoding
	_ "image/png"  // register PNG decoding

	"github.com/h2non/filetype"
	_ "golang.org/x/image/bmp"  // register BMP decoding
	_ "golang.org/x/image/tiff" // register TIFF decoding
	_ "golang.org/x/image/webp" // register WebP decoding

	"github.com/wadtools/ctexture/palette"
)

// Decoding errors.
var (
	// ErrEmptyData is returned when image data is empty.
	ErrEmptyData = errors.New("imagebuf: empty data")

	// ErrUnsupportedFormat is returned when the data is not a recognised image.
	ErrUnsupportedFormat = errors.New("imagebuf: unsupported format")
)

const (
	maxPictureSize    = 4096
	pictureHeaderSize = 8
	postEnd           = 0xFF
)

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

// Decode decodes an image from raw lump bytes.
//
// Standard formats (PNG, JPEG, GIF, BMP, TIFF, WebP) are detected by content.
// Anything else is tried as a column-based picture lump, then as a raw flat.
// Paletted standard images keep their palette and become indexed buffers.
func Decode(data []byte) (*ImageBuf, error) {
	if len(data) == 0 {
		return nil, ErrEmptyData
	}

	if kind, _ := filetype.Image(data); kind != filetype.Unknown {
		img, _, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("imagebuf: decode %s: %w", kind.Extension, err)
		}
		buf := FromStdImage(img)
		if bytes.HasPrefix(data, pngSignature) {
			if x, y, ok := pngGrabOffset(data); ok {
				buf.SetOffset(x, y)
			}
		}
		return buf, nil
	}

	if IsPicture(data) {
		return DecodePicture(data)
	}
	if w, h, ok := flatSize(len(data)); ok {
		return DecodeFlat(data, w, h)
	}
	return nil, ErrUnsupportedFormat
}

// IsPicture reports whether data looks like a column-based picture lump.
func IsPicture(data []byte) bool {
	if len(data) < pictureHeaderSize {
		return false
	}
	w := int(binary.LittleEndian.Uint16(data[0:]))
	h := int(binary.LittleEndian.Uint16(data[2:]))
	if w <= 0 || h <= 0 || w > maxPictureSize || h > maxPictureSize {
		return false
	}
	colStart := pictureHeaderSize + w*4
	if len(data) < colStart {
		return false
	}
	for x := range w {
		ofs := int(binary.LittleEndian.Uint32(data[pictureHeaderSize+x*4:]))
		if ofs < colStart || ofs >= len(data) {
			return false
		}
	}
	return true
}

// DecodePicture decodes a column-based picture lump into an indexed buffer.
// The header's left/top offsets become the embedded offset. Posts use the
// tall-picture rule: a top delta not greater than the previous one is relative.
func DecodePicture(data []byte) (*ImageBuf, error) {
	if !IsPicture(data) {
		return nil, ErrUnsupportedFormat
	}
	w := int(binary.LittleEndian.Uint16(data[0:]))
	h := int(binary.LittleEndian.Uint16(data[2:]))
	left := int(int16(binary.LittleEndian.Uint16(data[4:])))
	top := int(int16(binary.LittleEndian.Uint16(data[6:])))

	buf, err := NewImageBuf(w, h, FormatPalMask)
	if err != nil {
		return nil, err
	}
	buf.SetOffset(left, top)

	for x := range w {
		p := int(binary.LittleEndian.Uint32(data[pictureHeaderSize+x*4:]))
		lastTop := -1
		for p < len(data) && data[p] != postEnd {
			if p+2 > len(data) {
				return nil, fmt.Errorf("imagebuf: picture column %d: truncated post header", x)
			}
			delta := int(data[p])
			length := int(data[p+1])
			rowStart := delta
			if delta <= lastTop {
				rowStart = lastTop + delta
			}
			lastTop = rowStart

			pix := p + 3
			if pix+length > len(data) {
				return nil, fmt.Errorf("imagebuf: picture column %d: truncated post", x)
			}
			for i := range length {
				_ = buf.SetIndex(x, rowStart+i, data[pix+i], 255)
			}
			p = pix + length + 1
		}
	}
	return buf, nil
}

// flatSize maps the byte size of a raw flat to its dimensions.
func flatSize(n int) (w, h int, ok bool) {
	switch n {
	case 4096, 4160:
		return 64, 64, true
	case 8192:
		return 64, 128, true
	case 16384:
		return 128, 128, true
	case 65536:
		return 256, 256, true
	}
	return 0, 0, false
}

// DecodeFlat decodes raw row-major palette indices into an opaque indexed buffer.
func DecodeFlat(data []byte, width, height int) (*ImageBuf, error) {
	if len(data) < width*height {
		return nil, ErrUnsupportedFormat
	}
	buf, err := NewImageBuf(width, height, FormatPalMask)
	if err != nil {
		return nil, err
	}
	for i := range width * height {
		buf.data[i*2] = data[i]
		buf.data[i*2+1] = 255
	}
	return buf, nil
}

// pngGrabOffset reads the offsets stored in a PNG grAb chunk.
func pngGrabOffset(data []byte) (x, y int, ok bool) {
	p := len(pngSignature)
	for p+8 <= len(data) {
		length := int(binary.BigEndian.Uint32(data[p:]))
		typ := string(data[p+4 : p+8])
		body := p + 8
		if length < 0 || body+length > len(data) {
			return 0, 0, false
		}
		switch typ {
		case "grAb":
			if length < 8 {
				return 0, 0, false
			}
			x = int(int32(binary.BigEndian.Uint32(data[body:])))
			y = int(int32(binary.BigEndian.Uint32(data[body+4:])))
			return x, y, true
		case "IDAT", "IEND":
			return 0, 0, false
		}
		p = body + length + 4
	}
	return 0, 0, false
}

// FromStdImage creates an ImageBuf from a standard library image.Image.
// Paletted images become indexed buffers carrying their palette; every other
// image becomes RGBA8.
func FromStdImage(img image.Image) *ImageBuf {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	if pm, ok := img.(*image.Paletted); ok && len(pm.Palette) > 0 {
		buf, err := NewImageBuf(width, height, FormatPalMask)
		if err != nil {
			return &ImageBuf{format: FormatPalMask}
		}
		pal := palette.FromColorPalette(pm.Palette)
		buf.SetPalette(pal)
		for y := range height {
			for x := range width {
				idx := pm.ColorIndexAt(bounds.Min.X+x, bounds.Min.Y+y)
				mask := uint8(0)
				if int(idx) < len(pm.Palette) {
					mask = pal.Colour(idx).A
				}
				_ = buf.SetIndex(x, y, idx, mask)
			}
		}
		return buf
	}

	buf, err := NewImageBuf(width, height, FormatRGBA8)
	if err != nil {
		return &ImageBuf{format: FormatRGBA8}
	}

	// Fast path for NRGBA images
	if nrgba, ok := img.(*image.NRGBA); ok {
		for y := range height {
			srcStart := y * nrgba.Stride
			copy(buf.data[y*buf.stride:], nrgba.Pix[srcStart:srcStart+width*4])
		}
		return buf
	}

	for y := range height {
		for x := range width {
			c := color.NRGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
			off := y*buf.stride + x*4
			buf.data[off] = c.R
			buf.data[off+1] = c.G
			buf.data[off+2] = c.B
			buf.data[off+3] = c.A
		}
	}
	return buf
}
