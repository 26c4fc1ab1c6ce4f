// Package translation implements palette translation tables in their text
// form: comma-separated ranges such as "0:15=16:31" (palette remap),
// "0:15=[255,0,0]:[0,0,0]" (colour gradient) and "0:15=%[0,0,0]:[2,1,1]"
// (desaturated gradient). Names without '=' are kept as built-in references
// and round-trip untouched.
package translation

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/wadtools/ctexture/imagebuf"
	"github.com/wadtools/ctexture/palette"
)

// ErrInvalidRange is returned when a translation range cannot be parsed.
var ErrInvalidRange = errors.New("translation: invalid range")

// Kind identifies the target of a translation range.
type Kind uint8

const (
	// KindPalette remaps an index range onto another index range.
	KindPalette Kind = iota

	// KindColour maps an index range onto a linear colour gradient.
	KindColour

	// KindDesaturate maps the luminance of each index onto a colour gradient.
	KindDesaturate

	// KindBuiltin is a named translation kept as text only.
	KindBuiltin
)

// Range is a single entry of a translation.
type Range struct {
	Kind       Kind
	Start, End uint8

	// KindPalette
	DestStart, DestEnd uint8

	// KindColour
	ColourStart, ColourEnd color.NRGBA

	// KindDesaturate, each component in [0, 2]
	DesatStart, DesatEnd [3]float64

	// KindBuiltin
	Name string
}

// Translation is an ordered list of ranges. Later ranges override earlier ones
// where they overlap.
type Translation struct {
	ranges []Range
}

// Parse parses the text form of a translation. Entries are separated by commas
// outside brackets; each entry may be quoted.
func Parse(def string) (*Translation, error) {
	t := &Translation{}
	for _, part := range splitEntries(def) {
		part = strings.Trim(strings.TrimSpace(part), `"`)
		if part == "" {
			continue
		}
		if !strings.Contains(part, "=") {
			t.ranges = append(t.ranges, Range{Kind: KindBuiltin, Name: part})
			continue
		}
		r, err := parseRange(part)
		if err != nil {
			return nil, err
		}
		t.ranges = append(t.ranges, r)
	}
	return t, nil
}

func splitEntries(s string) []string {
	var parts []string
	depth := 0
	quoted := false
	start := 0
	for i := range len(s) {
		switch s[i] {
		case '"':
			quoted = !quoted
		case '[':
			depth++
		case ']':
			depth--
		case ',':
			if depth == 0 && !quoted {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, s[start:])
}

func parseRange(s string) (Range, error) {
	var r Range
	src, dst, _ := strings.Cut(s, "=")
	a, b, ok := strings.Cut(strings.TrimSpace(src), ":")
	if !ok {
		return r, fmt.Errorf("%w: %q", ErrInvalidRange, s)
	}
	var err error
	if r.Start, err = parseIndex(a); err != nil {
		return r, fmt.Errorf("%w: %q", ErrInvalidRange, s)
	}
	if r.End, err = parseIndex(b); err != nil {
		return r, fmt.Errorf("%w: %q", ErrInvalidRange, s)
	}

	dst = strings.TrimSpace(dst)
	first, second, ok := strings.Cut(dst, ":")
	if !ok {
		return r, fmt.Errorf("%w: %q", ErrInvalidRange, s)
	}

	switch {
	case strings.HasPrefix(dst, "%"):
		r.Kind = KindDesaturate
		if r.DesatStart, err = parseTriple(strings.TrimPrefix(first, "%")); err != nil {
			return r, fmt.Errorf("%w: %q", ErrInvalidRange, s)
		}
		if r.DesatEnd, err = parseTriple(second); err != nil {
			return r, fmt.Errorf("%w: %q", ErrInvalidRange, s)
		}
	case strings.HasPrefix(dst, "["):
		r.Kind = KindColour
		c1, err1 := parseTriple(first)
		c2, err2 := parseTriple(second)
		if err1 != nil || err2 != nil {
			return r, fmt.Errorf("%w: %q", ErrInvalidRange, s)
		}
		r.ColourStart = tripleColour(c1)
		r.ColourEnd = tripleColour(c2)
	default:
		r.Kind = KindPalette
		if r.DestStart, err = parseIndex(first); err != nil {
			return r, fmt.Errorf("%w: %q", ErrInvalidRange, s)
		}
		if r.DestEnd, err = parseIndex(second); err != nil {
			return r, fmt.Errorf("%w: %q", ErrInvalidRange, s)
		}
	}
	return r, nil
}

func parseIndex(s string) (uint8, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 8)
	return uint8(v), err
}

// parseTriple parses "[a,b,c]".
func parseTriple(s string) ([3]float64, error) {
	var out [3]float64
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "[") || !strings.HasSuffix(s, "]") {
		return out, ErrInvalidRange
	}
	fields := strings.Split(s[1:len(s)-1], ",")
	if len(fields) != 3 {
		return out, ErrInvalidRange
	}
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return out, err
		}
		out[i] = v
	}
	return out, nil
}

func tripleColour(v [3]float64) color.NRGBA {
	return color.NRGBA{R: clampByte(v[0]), G: clampByte(v[1]), B: clampByte(v[2]), A: 255}
}

func clampByte(v float64) uint8 {
	return uint8(max(0, min(255, v)))
}

// Ranges returns a copy of the translation's ranges.
func (t *Translation) Ranges() []Range {
	return append([]Range(nil), t.ranges...)
}

// Add appends a range.
func (t *Translation) Add(r Range) {
	t.ranges = append(t.ranges, r)
}

// IsEmpty reports whether the translation has no ranges.
func (t *Translation) IsEmpty() bool {
	return t == nil || len(t.ranges) == 0
}

// Clone returns an independent copy.
func (t *Translation) Clone() *Translation {
	if t == nil {
		return nil
	}
	return &Translation{ranges: t.Ranges()}
}

// Equal reports whether both translations hold the same ranges.
func (t *Translation) Equal(o *Translation) bool {
	if t.IsEmpty() || o.IsEmpty() {
		return t.IsEmpty() == o.IsEmpty()
	}
	if len(t.ranges) != len(o.ranges) {
		return false
	}
	for i := range t.ranges {
		if t.ranges[i] != o.ranges[i] {
			return false
		}
	}
	return true
}

// String returns the text form: quoted ranges and bare built-in names,
// separated by ", ".
func (t *Translation) String() string {
	if t == nil {
		return ""
	}
	parts := make([]string, 0, len(t.ranges))
	for _, r := range t.ranges {
		parts = append(parts, r.String())
	}
	return strings.Join(parts, ", ")
}

// String returns the text form of a single range.
func (r Range) String() string {
	switch r.Kind {
	case KindBuiltin:
		return r.Name
	case KindColour:
		return fmt.Sprintf(`"%d:%d=[%d,%d,%d]:[%d,%d,%d]"`, r.Start, r.End,
			r.ColourStart.R, r.ColourStart.G, r.ColourStart.B,
			r.ColourEnd.R, r.ColourEnd.G, r.ColourEnd.B)
	case KindDesaturate:
		return fmt.Sprintf(`"%d:%d=%%[%s]:[%s]"`, r.Start, r.End,
			formatTriple(r.DesatStart), formatTriple(r.DesatEnd))
	default:
		return fmt.Sprintf(`"%d:%d=%d:%d"`, r.Start, r.End, r.DestStart, r.DestEnd)
	}
}

func formatTriple(v [3]float64) string {
	return strconv.FormatFloat(v[0], 'f', -1, 64) + "," +
		strconv.FormatFloat(v[1], 'f', -1, 64) + "," +
		strconv.FormatFloat(v[2], 'f', -1, 64)
}

// hasColourRanges reports whether any range produces colours outside the palette.
func (t *Translation) hasColourRanges() bool {
	for _, r := range t.ranges {
		if r.Kind == KindColour || r.Kind == KindDesaturate {
			return true
		}
	}
	return false
}

// position returns where index i falls within [Start, End] as 0..1.
func (r Range) position(i uint8) float64 {
	if r.End == r.Start {
		return 0
	}
	return float64(int(i)-int(r.Start)) / float64(int(r.End)-int(r.Start))
}

func (r Range) contains(i uint8) bool {
	lo, hi := min(r.Start, r.End), max(r.Start, r.End)
	return i >= lo && i <= hi
}

// Translate maps palette index i. It returns the colour the index becomes, the
// destination palette index when the result is a palette entry, and whether
// any range matched.
func (t *Translation) Translate(i uint8, pal *palette.Palette) (c color.NRGBA, index uint8, isIndex, ok bool) {
	if pal == nil {
		pal = palette.Greyscale()
	}
	var match *Range
	for k := range t.ranges {
		if t.ranges[k].Kind != KindBuiltin && t.ranges[k].contains(i) {
			match = &t.ranges[k]
		}
	}
	if match == nil {
		return pal.Colour(i), i, true, false
	}

	pos := match.position(i)
	switch match.Kind {
	case KindColour:
		s, e := match.ColourStart, match.ColourEnd
		c = color.NRGBA{
			R: lerpByte(float64(s.R), float64(e.R), pos),
			G: lerpByte(float64(s.G), float64(e.G), pos),
			B: lerpByte(float64(s.B), float64(e.B), pos),
			A: 255,
		}
		return c, pal.Nearest(c), false, true
	case KindDesaturate:
		src := pal.Colour(i)
		grey := (float64(src.R)*0.3 + float64(src.G)*0.59 + float64(src.B)*0.11) / 255
		s, e := match.DesatStart, match.DesatEnd
		c = color.NRGBA{
			R: clampByte((s[0] + (e[0]-s[0])*grey) * 127.5),
			G: clampByte((s[1] + (e[1]-s[1])*grey) * 127.5),
			B: clampByte((s[2] + (e[2]-s[2])*grey) * 127.5),
			A: 255,
		}
		return c, pal.Nearest(c), false, true
	default:
		d := lerpByte(float64(match.DestStart), float64(match.DestEnd), pos)
		return pal.Colour(d), d, true, true
	}
}

func lerpByte(a, b, t float64) uint8 {
	return clampByte(a + (b-a)*t + 0.5)
}

// Apply translates the pixels of img in place. Indexed images are remapped by
// index; when truecolor is set and the translation produces colours outside the
// palette, the image is converted to RGBA8 with the exact colours instead.
// RGBA8 pixels are matched to their nearest palette index first.
func (t *Translation) Apply(img *imagebuf.ImageBuf, pal *palette.Palette, truecolor bool) {
	if t.IsEmpty() {
		return
	}
	if p := img.Palette(); p != nil {
		pal = p
	}
	if pal == nil {
		pal = palette.Greyscale()
	}

	if img.Format().IsIndexed() {
		if truecolor && t.hasColourRanges() {
			img.ConvertRGBAFunc(pal, func(i uint8, c color.NRGBA) color.NRGBA {
				out, _, _, ok := t.Translate(i, pal)
				if !ok {
					return c
				}
				return out
			})
			return
		}
		img.MapIndices(func(i uint8) uint8 {
			_, idx, _, _ := t.Translate(i, pal)
			return idx
		})
		return
	}

	img.MapColours(pal, func(c color.NRGBA) color.NRGBA {
		out, _, _, ok := t.Translate(pal.Nearest(c), pal)
		if !ok {
			return c
		}
		out.A = c.A
		return out
	})
}
