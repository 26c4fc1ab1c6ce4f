package imagebuf

import "image/color"

// fill sets every pixel of b to (r, g, bl, a).
func fill(b *ImageBuf, r, g, bl, a uint8) {
	c := color.NRGBA{R: r, G: g, B: bl, A: a}
	for y := range b.Height() {
		for x := range b.Width() {
			_ = b.Set(x, y, c, nil)
		}
	}
}

// rgbaAt returns the components of the pixel at (x, y), resolving indexed
// pixels through the image's own palette or the greyscale ramp.
func rgbaAt(b *ImageBuf, x, y int) (r, g, bl, a uint8) {
	c := b.At(x, y, nil)
	return c.R, c.G, c.B, c.A
}

func setRGBA(b *ImageBuf, x, y int, r, g, bl, a uint8) error {
	return b.Set(x, y, color.NRGBA{R: r, G: g, B: bl, A: a}, nil)
}
