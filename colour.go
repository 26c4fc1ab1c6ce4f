package ctexture

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// ParseColour parses a colour as written in TEXTURES: "#RRGGBB", "#RGB",
// bare "RRGGBB", three space-separated hex bytes "rr gg bb", or an SVG
// colour name. The result is opaque.
func ParseColour(s string) (color.NRGBA, bool) {
	s = strings.TrimSpace(s)
	if c, ok := colornames.Map[strings.ToLower(s)]; ok {
		return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255}, true
	}

	if fields := strings.Fields(s); len(fields) == 3 {
		var rgb [3]uint8
		for i, f := range fields {
			v, err := strconv.ParseUint(f, 16, 8)
			if err != nil {
				return color.NRGBA{}, false
			}
			rgb[i] = uint8(v)
		}
		return color.NRGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 255}, true
	}

	hex := strings.TrimPrefix(s, "#")
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, false
	}
	switch len(hex) {
	case 6:
		return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, true
	case 3:
		r, g, b := uint8(v>>8&0xF), uint8(v>>4&0xF), uint8(v&0xF)
		return color.NRGBA{R: r<<4 | r, G: g<<4 | g, B: b<<4 | b, A: 255}, true
	}
	return color.NRGBA{}, false
}

// FormatColour returns c as "#RRGGBB".
func FormatColour(c color.NRGBA) string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}
