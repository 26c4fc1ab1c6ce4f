package ctexture

import (
	"image/color"
	"strings"

	"github.com/wadtools/ctexture/translation"
)

// Variant distinguishes legacy patches from extended ones.
type Variant uint8

const (
	// VariantBasic carries a name and offsets only.
	VariantBasic Variant = iota

	// VariantExtended adds transforms, style and colour effects.
	VariantExtended
)

// PatchEntry is one layer of a composite texture.
//
// The extended fields are meaningful only for VariantExtended and are reset to
// their defaults by Basic. The colour effect is chosen with SetTranslation,
// SetColour, SetTint or ClearBlend; Blend reports the current one.
type PatchEntry struct {
	Name    string
	OffsetX int16
	OffsetY int16
	Variant Variant

	Kind       PatchKind
	FlipX      bool
	FlipY      bool
	UseOffsets bool
	Rotation   int
	Alpha      float64
	Style      DrawStyle

	blend       BlendType
	colour      color.NRGBA
	translation *translation.Translation
}

// NewBasicPatch returns a legacy patch.
func NewBasicPatch(name string, x, y int16) *PatchEntry {
	return &PatchEntry{Name: name, OffsetX: x, OffsetY: y, Variant: VariantBasic, Alpha: 1}
}

// NewExtendedPatch returns an extended patch with default attributes.
func NewExtendedPatch(name string, x, y int16, kind PatchKind) *PatchEntry {
	return &PatchEntry{Name: name, OffsetX: x, OffsetY: y, Variant: VariantExtended, Kind: kind, Alpha: 1}
}

// IsExtended reports whether the patch is the extended variant.
func (p *PatchEntry) IsExtended() bool {
	return p.Variant == VariantExtended
}

// Blend returns the colour effect last set on the patch.
func (p *PatchEntry) Blend() BlendType {
	return p.blend
}

// Colour returns the blend colour. For BlendTint its alpha is the tint amount
// scaled to 0-255.
func (p *PatchEntry) Colour() color.NRGBA {
	return p.colour
}

// TintAmount returns the tint factor in [0, 1].
func (p *PatchEntry) TintAmount() float64 {
	return float64(p.colour.A) / 255
}

// Translation returns the translation, or nil when none is set.
func (p *PatchEntry) Translation() *translation.Translation {
	return p.translation
}

// SetTranslation sets a palette translation as the colour effect.
func (p *PatchEntry) SetTranslation(t *translation.Translation) {
	p.translation = t
	p.blend = BlendTranslation
}

// SetColour recolours the patch uniformly to c.
func (p *PatchEntry) SetColour(c color.NRGBA) {
	c.A = 255
	p.colour = c
	p.blend = BlendColour
}

// SetTint tints the patch towards c by amount (0 to 1). The amount is stored
// in the colour's alpha, truncated to 0-255.
func (p *PatchEntry) SetTint(c color.NRGBA, amount float64) {
	c.A = uint8(max(0, min(1, amount)) * 255)
	p.colour = c
	p.blend = BlendTint
}

// ClearBlend removes any colour effect.
func (p *PatchEntry) ClearBlend() {
	p.blend = BlendNone
	p.colour = color.NRGBA{}
	p.translation = nil
}

// Extended converts the patch to the extended variant in place. A basic patch
// gains default attributes; an extended one is unchanged.
func (p *PatchEntry) Extended() *PatchEntry {
	if p.Variant == VariantExtended {
		return p
	}
	*p = *NewExtendedPatch(p.Name, p.OffsetX, p.OffsetY, PatchKindPatch)
	return p
}

// Basic converts the patch to the basic variant in place, discarding every
// attribute except the name and offsets.
func (p *PatchEntry) Basic() *PatchEntry {
	*p = *NewBasicPatch(p.Name, p.OffsetX, p.OffsetY)
	return p
}

// Clone returns an independent copy.
func (p *PatchEntry) Clone() *PatchEntry {
	c := *p
	c.translation = p.translation.Clone()
	return &c
}

// IsDefault reports whether an extended patch has no non-default attributes,
// in which case it is written as a single header line.
func (p *PatchEntry) IsDefault() bool {
	return !p.FlipX && !p.FlipY && !p.UseOffsets && p.Rotation == 0 &&
		p.blend == BlendNone && p.Alpha == 1 && p.Style == StyleCopy
}

// Equal reports whether two patches are identical. Names compare without case.
func (p *PatchEntry) Equal(o *PatchEntry) bool {
	if p == nil || o == nil {
		return p == o
	}
	if !strings.EqualFold(p.Name, o.Name) || p.OffsetX != o.OffsetX || p.OffsetY != o.OffsetY ||
		p.Variant != o.Variant {
		return false
	}
	if p.Variant == VariantBasic {
		return true
	}
	return p.Kind == o.Kind && p.FlipX == o.FlipX && p.FlipY == o.FlipY &&
		p.UseOffsets == o.UseOffsets && p.Rotation == o.Rotation &&
		p.Alpha == o.Alpha && p.Style == o.Style && p.blend == o.blend &&
		p.colour == o.colour && p.translation.Equal(o.translation)
}
