package imagebuf

import (
	"image/color"

	"github.com/wadtools/ctexture/palette"
)

// BlendMode defines how source pixels are combined with destination pixels.
type BlendMode uint8

const (
	// BlendNormal interpolates from destination to source by source alpha.
	BlendNormal BlendMode = iota

	// BlendAdd adds the alpha-scaled source to the destination.
	BlendAdd

	// BlendSubtract subtracts the alpha-scaled source from the destination.
	BlendSubtract

	// BlendReverseSubtract subtracts the destination from the alpha-scaled source.
	BlendReverseSubtract

	// BlendModulate multiplies source and destination colours.
	BlendModulate
)

const unknownBlendMode = "Unknown"

// String returns a string representation of the blend mode.
func (b BlendMode) String() string {
	switch b {
	case BlendNormal:
		return "Normal"
	case BlendAdd:
		return "Add"
	case BlendSubtract:
		return "Subtract"
	case BlendReverseSubtract:
		return "ReverseSubtract"
	case BlendModulate:
		return "Modulate"
	default:
		return unknownBlendMode
	}
}

// DrawProps specifies how DrawImage combines pixels.
type DrawProps struct {
	// Blend is the colour combination operator.
	Blend BlendMode

	// Alpha is the overall opacity (0.0 to 1.0).
	Alpha float64

	// SrcAlpha makes each source pixel's own alpha scale Alpha. When false,
	// every visible source pixel is drawn with exactly Alpha.
	SrcAlpha bool
}

// Opaque are the props for a plain opaque copy.
var Opaque = DrawProps{Blend: BlendNormal, Alpha: 1}

// DrawImage draws src onto dst with its top-left corner at (x, y).
//
// Fully transparent source pixels are always skipped. Indexed pixels on either
// side are resolved through the respective image's palette, falling back to pal.
// The destination is modified in place; pixels outside it are clipped.
func DrawImage(dst, src *ImageBuf, x, y int, props DrawProps, pal *palette.Palette) {
	alpha := max(0.0, min(1.0, props.Alpha))
	srcPal := src.paletteFor(pal)
	sbpp := src.format.BytesPerPixel()

	for sy := range src.height {
		dy := y + sy
		if dy < 0 || dy >= dst.height {
			continue
		}
		for sx := range src.width {
			dx := x + sx
			if dx < 0 || dx >= dst.width {
				continue
			}
			soff := sy*src.stride + sx*sbpp
			if src.transparent(soff) {
				continue
			}

			var c color.NRGBA
			switch src.format {
			case FormatPalMask:
				c = srcPal.Colour(src.data[soff])
				c.A = src.data[soff+1]
			case FormatRGBA8:
				c = color.NRGBA{R: src.data[soff], G: src.data[soff+1], B: src.data[soff+2], A: src.data[soff+3]}
			}
			dst.drawPixel(dx, dy, c, props.Blend, alpha, props.SrcAlpha, pal)
		}
	}
}

// drawPixel combines c into the pixel at (x, y). Coordinates must be in bounds.
func (b *ImageBuf) drawPixel(x, y int, c color.NRGBA, mode BlendMode, alpha float64, srcAlpha bool, pal *palette.Palette) {
	if srcAlpha {
		c.A = uint8(float64(c.A) * alpha)
	} else {
		c.A = uint8(alpha * 255)
	}
	if c.A == 0 {
		return
	}

	off := y*b.stride + x*b.format.BytesPerPixel()
	if c.A == 255 && mode == BlendNormal {
		b.write(off, c, pal)
		return
	}

	var d color.NRGBA
	switch b.format {
	case FormatPalMask:
		d = b.paletteFor(pal).Colour(b.data[off])
		d.A = b.data[off+1]
	case FormatRGBA8:
		d = color.NRGBA{R: b.data[off], G: b.data[off+1], B: b.data[off+2], A: b.data[off+3]}
	}

	b.write(off, blend(c, d, mode), pal)
}

// blend combines source s into destination d. Output alpha is always the
// saturated sum of both alphas.
func blend(s, d color.NRGBA, mode BlendMode) color.NRGBA {
	a := float64(s.A) / 255
	out := color.NRGBA{A: clamp255(float64(d.A) + float64(s.A))}

	switch mode {
	case BlendAdd:
		out.R = clamp255(float64(d.R) + float64(s.R)*a)
		out.G = clamp255(float64(d.G) + float64(s.G)*a)
		out.B = clamp255(float64(d.B) + float64(s.B)*a)
	case BlendSubtract:
		out.R = clamp255(float64(d.R) - float64(s.R)*a)
		out.G = clamp255(float64(d.G) - float64(s.G)*a)
		out.B = clamp255(float64(d.B) - float64(s.B)*a)
	case BlendReverseSubtract:
		out.R = clamp255(float64(s.R)*a - float64(d.R))
		out.G = clamp255(float64(s.G)*a - float64(d.G))
		out.B = clamp255(float64(s.B)*a - float64(d.B))
	case BlendModulate:
		out.R = clamp255(float64(s.R) * float64(d.R) / 255)
		out.G = clamp255(float64(s.G) * float64(d.G) / 255)
		out.B = clamp255(float64(s.B) * float64(d.B) / 255)
	default:
		inv := 1 - a
		out.R = clamp255(float64(d.R)*inv + float64(s.R)*a)
		out.G = clamp255(float64(d.G)*inv + float64(s.G)*a)
		out.B = clamp255(float64(d.B)*inv + float64(s.B)*a)
	}
	return out
}

func clamp255(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}
