package imagebuf

import (
	"image/color"

	"github.com/wadtools/ctexture/palette"
)

// Luminance weights used to greyscale a colour before colourising.
const (
	greyR = 0.3
	greyG = 0.59
	greyB = 0.11
)

// ConvertRGBA converts an indexed image to RGBA8 in place, resolving indices
// through the image's own palette or pal. RGBA8 images are left untouched.
func (b *ImageBuf) ConvertRGBA(pal *palette.Palette) {
	b.ConvertRGBAFunc(pal, nil)
}

// ConvertRGBAFunc converts an indexed image to RGBA8 in place. When fn is not
// nil, the colour of every visible pixel is fn(index, paletteColour); the
// pixel mask is kept as alpha either way.
func (b *ImageBuf) ConvertRGBAFunc(pal *palette.Palette, fn func(index uint8, c color.NRGBA) color.NRGBA) {
	if b.format != FormatPalMask {
		return
	}
	p := b.paletteFor(pal)
	stride := FormatRGBA8.RowBytes(b.width)
	out := make([]byte, stride*b.height)
	n := b.width * b.height
	for i := range n {
		idx := b.data[i*2]
		c := p.Colour(idx)
		if fn != nil && b.data[i*2+1] != 0 {
			c = fn(idx, c)
		}
		out[i*4] = c.R
		out[i*4+1] = c.G
		out[i*4+2] = c.B
		out[i*4+3] = b.data[i*2+1]
	}
	b.data = out
	b.stride = stride
	b.format = FormatRGBA8
}

// Colourise recolours every visible pixel to c, scaled by the pixel's luminance.
func (b *ImageBuf) Colourise(c color.NRGBA, pal *palette.Palette) {
	b.MapColours(pal, func(col color.NRGBA) color.NRGBA {
		grey := (float64(col.R)*greyR + float64(col.G)*greyG + float64(col.B)*greyB) / 255
		grey = min(grey, 1)
		col.R = uint8(float64(c.R) * grey)
		col.G = uint8(float64(c.G) * grey)
		col.B = uint8(float64(c.B) * grey)
		return col
	})
}

// Tint moves every visible pixel towards c by amount (0 to 1).
func (b *ImageBuf) Tint(c color.NRGBA, amount float64, pal *palette.Palette) {
	amount = max(0, min(1, amount))
	inv := 1 - amount
	b.MapColours(pal, func(col color.NRGBA) color.NRGBA {
		col.R = uint8(float64(col.R)*inv + float64(c.R)*amount)
		col.G = uint8(float64(col.G)*inv + float64(c.G)*amount)
		col.B = uint8(float64(col.B)*inv + float64(c.B)*amount)
		return col
	})
}

// MapIndices replaces the index of every visible pixel of an indexed image
// with fn(index). RGBA8 images are left untouched.
func (b *ImageBuf) MapIndices(fn func(uint8) uint8) {
	if b.format != FormatPalMask {
		return
	}
	for off := 0; off < len(b.data); off += 2 {
		if b.data[off+1] == 0 {
			continue
		}
		b.data[off] = fn(b.data[off])
	}
}

// MapColours applies fn to the colour of every visible pixel. Indexed images
// store the nearest palette entry of the result; alpha is never changed.
func (b *ImageBuf) MapColours(pal *palette.Palette, fn func(color.NRGBA) color.NRGBA) {
	p := b.paletteFor(pal)
	bpp := b.format.BytesPerPixel()
	for off := 0; off < len(b.data); off += bpp {
		if b.transparent(off) {
			continue
		}
		switch b.format {
		case FormatPalMask:
			col := fn(p.Colour(b.data[off]))
			b.data[off] = p.Nearest(col)
		case FormatRGBA8:
			col := fn(color.NRGBA{R: b.data[off], G: b.data[off+1], B: b.data[off+2], A: b.data[off+3]})
			b.data[off] = col.R
			b.data[off+1] = col.G
			b.data[off+2] = col.B
		}
	}
}
