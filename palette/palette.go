// Package palette provides the 256-colour tables used by palette-indexed images.
package palette

import (
	"errors"
	"image/color"
	"sync"
)

// Size is the number of entries in a palette.
const Size = 256

// ErrShortPLAYPAL is returned when PLAYPAL data is smaller than one palette.
var ErrShortPLAYPAL = errors.New("palette: PLAYPAL data too small")

// Palette is a fixed 256-entry colour table.
//
// Entries are non-premultiplied; alpha is 255 unless a palette was built
// from an image that carries per-entry transparency.
type Palette struct {
	colours [Size]color.NRGBA
}

// New returns a palette with all entries set to opaque black.
func New() *Palette {
	p := &Palette{}
	for i := range p.colours {
		p.colours[i] = color.NRGBA{A: 255}
	}
	return p
}

var (
	greyOnce sync.Once
	grey     *Palette
)

// Greyscale returns the shared greyscale ramp used when no palette is supplied.
// The returned palette must not be modified.
func Greyscale() *Palette {
	greyOnce.Do(func() {
		grey = &Palette{}
		for i := range grey.colours {
			v := uint8(i)
			grey.colours[i] = color.NRGBA{R: v, G: v, B: v, A: 255}
		}
	})
	return grey
}

// FromPLAYPAL reads the first palette of a PLAYPAL lump: 256 RGB triplets.
func FromPLAYPAL(data []byte) (*Palette, error) {
	if len(data) < Size*3 {
		return nil, ErrShortPLAYPAL
	}
	p := &Palette{}
	for i := range p.colours {
		p.colours[i] = color.NRGBA{R: data[i*3], G: data[i*3+1], B: data[i*3+2], A: 255}
	}
	return p, nil
}

// FromColorPalette builds a palette from a standard library palette, such as
// the one carried by a decoded *image.Paletted. Missing entries are black.
func FromColorPalette(cp color.Palette) *Palette {
	p := New()
	for i, c := range cp {
		if i >= Size {
			break
		}
		p.colours[i] = color.NRGBAModel.Convert(c).(color.NRGBA)
	}
	return p
}

// Colour returns the colour at index i.
func (p *Palette) Colour(i uint8) color.NRGBA {
	return p.colours[i]
}

// SetColour sets the colour at index i.
func (p *Palette) SetColour(i uint8, c color.NRGBA) {
	p.colours[i] = c
}

// Nearest returns the index of the entry closest to c by squared RGB distance.
// Ties resolve to the lowest index.
func (p *Palette) Nearest(c color.NRGBA) uint8 {
	best := 0
	bestDist := -1
	for i, e := range p.colours {
		dr := int(e.R) - int(c.R)
		dg := int(e.G) - int(c.G)
		db := int(e.B) - int(c.B)
		d := dr*dr + dg*dg + db*db
		if d == 0 {
			return uint8(i)
		}
		if bestDist < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return uint8(best)
}

// ColorPalette converts p to a standard library palette.
func (p *Palette) ColorPalette() color.Palette {
	cp := make(color.Palette, Size)
	for i, c := range p.colours {
		cp[i] = c
	}
	return cp
}

// Clone returns a copy of p.
func (p *Palette) Clone() *Palette {
	c := *p
	return &c
}
