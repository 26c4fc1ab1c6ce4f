package ctexture

import (
	"fmt"
	"strings"
)

// AsText returns the patch as a TEXTURES patch definition. Properties at
// their default value are omitted, and a patch without any non-default
// property is written as its header line alone. Basic patches are written as
// default extended patches.
func (p *PatchEntry) AsText() string {
	var b strings.Builder
	fmt.Fprintf(&b, "\t%s \"%s\", %d, %d\n", p.Kind, p.Name, p.OffsetX, p.OffsetY)
	if !p.IsExtended() || p.IsDefault() {
		return b.String()
	}

	b.WriteString("\t{\n")
	if p.FlipX {
		b.WriteString("\t\tFlipX\n")
	}
	if p.FlipY {
		b.WriteString("\t\tFlipY\n")
	}
	if p.UseOffsets {
		b.WriteString("\t\tUseOffsets\n")
	}
	if p.Rotation != 0 {
		fmt.Fprintf(&b, "\t\tRotate %d\n", p.Rotation)
	}
	if p.blend == BlendTranslation && !p.translation.IsEmpty() {
		fmt.Fprintf(&b, "\t\tTranslation %s\n", p.translation)
	}
	if p.blend == BlendColour || p.blend == BlendTint {
		fmt.Fprintf(&b, "\t\tBlend \"%s\"", FormatColour(p.colour))
		if p.blend == BlendTint {
			fmt.Fprintf(&b, ", %1.1f", p.TintAmount())
		}
		b.WriteString("\n")
	}
	if p.Alpha < 1 {
		fmt.Fprintf(&b, "\t\tAlpha %1.2f\n", p.Alpha)
	}
	if p.Style != StyleCopy {
		fmt.Fprintf(&b, "\t\tStyle %s\n", p.Style)
	}
	b.WriteString("\t}\n")
	return b.String()
}

// AsText returns the texture as a TEXTURES definition. A regular texture has
// no text form and yields "". A shortcut define is written as a single define
// line. Texture properties at their default value are omitted.
func (t *Texture) AsText() string {
	switch t.format {
	case FormatRegular:
		return ""
	case FormatShortcutDefine:
		return fmt.Sprintf("define \"%s\" %d %d\n", t.Name, t.NominalWidth, t.NominalHeight)
	}

	typ := t.Type
	if typ == "" || strings.EqualFold(typ, "Define") {
		typ = "Texture"
	}

	var b strings.Builder
	if t.Optional {
		fmt.Fprintf(&b, "%s Optional \"%s\", %d, %d\n{\n", typ, t.Name, t.Width, t.Height)
	} else {
		fmt.Fprintf(&b, "%s \"%s\", %d, %d\n{\n", typ, t.Name, t.Width, t.Height)
	}
	if t.ScaleX != 1 {
		fmt.Fprintf(&b, "\tXScale %1.3f\n", t.ScaleX)
	}
	if t.ScaleY != 1 {
		fmt.Fprintf(&b, "\tYScale %1.3f\n", t.ScaleY)
	}
	if t.OffsetX != 0 || t.OffsetY != 0 {
		fmt.Fprintf(&b, "\tOffset %d, %d\n", t.OffsetX, t.OffsetY)
	}
	if t.WorldPanning {
		b.WriteString("\tWorldPanning\n")
	}
	if t.NoDecals {
		b.WriteString("\tNoDecals\n")
	}
	if t.NullTexture {
		b.WriteString("\tNullTexture\n")
	}
	for _, p := range t.patches {
		b.WriteString(p.AsText())
	}
	b.WriteString("}\n\n")
	return b.String()
}
